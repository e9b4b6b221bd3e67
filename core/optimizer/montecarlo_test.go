package optimizer

import (
	"reflect"
	"testing"

	"github.com/mgallet/horaire/core/model"
)

func TestMonteCarlo_FindsFeasibleOrdering(t *testing.T) {
	p := params(2, 8)
	p.Seed = 11
	res, err := NewMonteCarloOptimizer().Optimize(orderSensitive(), nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(res.Tasks) != 2 {
		t.Fatalf("expected both tasks scheduled, failures: %v", res.Failures)
	}
	checkInvariants(t, res, nil, p)
}

func TestMonteCarlo_SeededRunsAreDeterministic(t *testing.T) {
	tasks := []*model.Task{
		task("a", 6, deadlineAt(5), 2),
		task("b", 4, nil, 5),
		task("c", 9, deadlineAt(13), 1),
	}
	p := params(2, 6)
	p.Seed = 13
	m := NewMonteCarloOptimizer()
	first, err := m.Optimize(tasks, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	second, err := m.Optimize(tasks, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("seeded monte carlo runs diverged")
	}
}

func TestMonteCarlo_RejectsBadParams(t *testing.T) {
	if _, err := NewMonteCarloOptimizer().Optimize(nil, nil, Params{}); err == nil {
		t.Fatal("expected error for non-positive capacity")
	}
}
