package optimizer

import (
	"testing"

	"github.com/mgallet/horaire/core/model"
)

func TestFitness_MoreTasksAlwaysWins(t *testing.T) {
	p := params(2, 8)
	two := &Result{
		Tasks: []*model.Task{
			{ID: "a", DailyAllocations: map[string]float64{key(2): 8}},
			{ID: "b", DailyAllocations: map[string]float64{key(3): 1}},
		},
		DailyAllocations: map[string]float64{key(2): 8, key(3): 1},
	}
	one := &Result{
		Tasks: []*model.Task{
			{ID: "a", DailyAllocations: map[string]float64{key(2): 4, key(3): 4}},
		},
		DailyAllocations: map[string]float64{key(2): 4, key(3): 4},
	}
	// Two scheduled tasks with lumpy days still beat one with a flat load.
	if fitness(two, p) <= fitness(one, p) {
		t.Errorf("expected two-task result to outrank one-task result")
	}
}

func TestFitness_PrefersEvenLoad(t *testing.T) {
	p := params(2, 8)
	flat := &Result{
		Tasks:            []*model.Task{{ID: "a"}},
		DailyAllocations: map[string]float64{key(2): 4, key(3): 4},
	}
	lumpy := &Result{
		Tasks:            []*model.Task{{ID: "a"}},
		DailyAllocations: map[string]float64{key(2): 8, key(3): 0},
	}
	if fitness(flat, p) <= fitness(lumpy, p) {
		t.Errorf("expected flat load to outrank lumpy load at equal task count")
	}
}

func TestFitness_PenalizesTardiness(t *testing.T) {
	p := params(2, 8)
	onTime := &Result{
		Tasks: []*model.Task{
			task("a", 4, deadlineAt(4), 0),
		},
	}
	onTime.Tasks[0].DailyAllocations = map[string]float64{key(3): 4}
	late := &Result{
		Tasks: []*model.Task{
			task("a", 4, deadlineAt(4), 0),
		},
	}
	late.Tasks[0].DailyAllocations = map[string]float64{key(6): 4}
	if fitness(onTime, p) <= fitness(late, p) {
		t.Errorf("expected on-time result to outrank late result")
	}
}
