package optimizer

import (
	"reflect"
	"testing"

	"github.com/mgallet/horaire/core/model"
)

// orderSensitive builds a batch where only one allocation order schedules
// everything: the tight-deadline task must claim the first day before the
// loose one fills it.
func orderSensitive() []*model.Task {
	return []*model.Task{
		task("loose", 8, deadlineAt(3), 0),
		task("tight", 8, deadlineAt(2), 0),
	}
}

func TestGenetic_FindsFeasibleOrdering(t *testing.T) {
	p := params(2, 8)
	p.Seed = 42
	g := NewGeneticOptimizer()
	res, err := g.Optimize(orderSensitive(), nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(res.Tasks) != 2 {
		t.Fatalf("expected both tasks scheduled, failures: %v", res.Failures)
	}
	checkInvariants(t, res, nil, p)
}

func TestGenetic_SeededRunsAreDeterministic(t *testing.T) {
	tasks := []*model.Task{
		task("a", 6, deadlineAt(5), 2),
		task("b", 4, nil, 5),
		task("c", 9, deadlineAt(13), 1),
	}
	p := params(2, 6)
	p.Seed = 7
	g := NewGeneticOptimizer()
	first, err := g.Optimize(tasks, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	second, err := g.Optimize(tasks, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("seeded genetic runs diverged")
	}
}

func TestGenetic_EmptyBatch(t *testing.T) {
	p := params(2, 8)
	p.Seed = 1
	res, err := NewGeneticOptimizer().Optimize(nil, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(res.Tasks) != 0 || len(res.Failures) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestOrderCrossover_PreservesMembership(t *testing.T) {
	rng := newRand(3)
	a := rng.Perm(8)
	b := rng.Perm(8)
	child := orderCrossover(a, b, rng)
	seen := make(map[int]bool, len(child))
	for _, v := range child {
		if seen[v] {
			t.Fatalf("duplicate %d in child %v", v, child)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("child is not a permutation: %v", child)
	}
}
