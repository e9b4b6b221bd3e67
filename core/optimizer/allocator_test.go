package optimizer

import (
	"testing"
	"time"

	"github.com/mgallet/horaire/core/model"
)

// 2026-03-02 is a Monday.
func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func key(d int) string { return model.DayKey(day(d)) }

type holidayList map[string]bool

func (h holidayList) IsExcluded(date time.Time) bool { return h[model.DayKey(date)] }

func task(id string, hours float64, deadline *time.Time, priority int) *model.Task {
	return &model.Task{ID: id, EstimatedHours: hours, Deadline: deadline, Priority: priority}
}

func deadlineAt(d int) *time.Time {
	t := day(d).Add(17 * time.Hour)
	return &t
}

func params(startDay int, maxHours float64) Params {
	return Params{StartDate: day(startDay), MaxHoursPerDay: maxHours}
}

func scheduled(t *testing.T, res *Result, id string) *model.Task {
	t.Helper()
	for _, task := range res.Tasks {
		if task.ID == id {
			return task
		}
	}
	t.Fatalf("task %s not scheduled; failures: %v", id, res.Failures)
	return nil
}

// checkInvariants asserts the capacity cap, deadline and duration
// conservation properties for a successful run.
func checkInvariants(t *testing.T, res *Result, existing map[string]float64, p Params) {
	t.Helper()
	totals := make(map[string]float64)
	for k, v := range existing {
		totals[k] = v
	}
	for _, task := range res.Tasks {
		var sum float64
		for k, h := range task.DailyAllocations {
			totals[k] += h
			sum += h
			if task.Deadline != nil {
				d, err := model.ParseDayKey(k)
				if err != nil {
					t.Fatalf("bad day key %s", k)
				}
				if d.After(model.Midnight(*task.Deadline)) {
					t.Errorf("task %s allocated %s past deadline", task.ID, k)
				}
			}
		}
		if diff := sum - task.EstimatedHours; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("task %s allocated %v hours, estimate %v", task.ID, sum, task.EstimatedHours)
		}
	}
	for k, total := range totals {
		if total > p.MaxHoursPerDay+1e-6 {
			t.Errorf("day %s overbooked: %v > %v", k, total, p.MaxHoursPerDay)
		}
		if got := res.DailyAllocations[k]; got-total > 1e-6 || total-got > 1e-6 {
			t.Errorf("day %s running total %v, expected %v", k, got, total)
		}
	}
}

func TestGreedy_TwoTasksShareDay(t *testing.T) {
	a := task("a", 4, deadlineAt(4), 1)
	b := task("b", 4, nil, 10)
	p := params(2, 8)

	res, err := GreedyAllocator{}.Optimize([]*model.Task{b, a}, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(res.Failures) != 0 {
		t.Fatalf("unexpected failures: %v", res.Failures)
	}
	// A's deadline urgency beats B's priority: both land on day one.
	if got := scheduled(t, res, "a").DailyAllocations[key(2)]; got != 4 {
		t.Errorf("expected a to get 4h on monday, got %v", got)
	}
	if got := scheduled(t, res, "b").DailyAllocations[key(2)]; got != 4 {
		t.Errorf("expected b to get 4h on monday, got %v", got)
	}
	if got := res.DailyAllocations[key(2)]; got != 8 {
		t.Errorf("expected monday full at 8h, got %v", got)
	}
	if res.Tasks[0].ID != "a" {
		t.Errorf("expected a allocated first, got %s", res.Tasks[0].ID)
	}
	checkInvariants(t, res, nil, p)
}

func TestGreedy_OverflowSkipsExcludedDay(t *testing.T) {
	// 10h task, 6h/day cap, tuesday is a holiday: 6h monday, 4h wednesday.
	p := params(2, 6)
	p.Holidays = holidayList{key(3): true}

	res, err := GreedyAllocator{}.Optimize([]*model.Task{task("t", 10, nil, 0)}, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	tk := scheduled(t, res, "t")
	if got := tk.DailyAllocations[key(2)]; got != 6 {
		t.Errorf("expected 6h on monday, got %v", got)
	}
	if _, ok := tk.DailyAllocations[key(3)]; ok {
		t.Error("holiday must stay empty")
	}
	if got := tk.DailyAllocations[key(4)]; got != 4 {
		t.Errorf("expected 4h on wednesday, got %v", got)
	}
	if tk.PlannedEnd == nil || model.DayKey(*tk.PlannedEnd) != key(4) {
		t.Errorf("expected planned end on wednesday, got %v", tk.PlannedEnd)
	}
	if tk.PlannedStart == nil || !tk.PlannedStart.Before(*tk.PlannedEnd) {
		t.Errorf("planned start must precede planned end")
	}
	checkInvariants(t, res, nil, p)
}

func TestGreedy_OverflowAcrossWeekend(t *testing.T) {
	// Start friday: 6h friday, weekend skipped, 4h monday.
	p := params(6, 6)
	res, err := GreedyAllocator{}.Optimize([]*model.Task{task("t", 10, nil, 0)}, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	tk := scheduled(t, res, "t")
	if got := tk.DailyAllocations[key(6)]; got != 6 {
		t.Errorf("expected 6h friday, got %v", got)
	}
	if got := tk.DailyAllocations[key(9)]; got != 4 {
		t.Errorf("expected 4h next monday, got %v", got)
	}
	checkInvariants(t, res, nil, p)
}

func TestGreedy_DeadlineInfeasibleRollsBack(t *testing.T) {
	baseline := map[string]float64{key(2): 2}
	p := params(2, 6)

	res, err := GreedyAllocator{}.Optimize([]*model.Task{task("big", 20, deadlineAt(3), 0)}, baseline, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(res.Tasks) != 0 {
		t.Fatalf("expected no scheduled tasks, got %d", len(res.Tasks))
	}
	if len(res.Failures) != 1 || res.Failures[0].Reason != ReasonDeadlineInfeasible {
		t.Fatalf("expected deadline failure, got %v", res.Failures)
	}
	// Rollback is complete: the running map equals the baseline.
	if len(res.DailyAllocations) != 1 || res.DailyAllocations[key(2)] != 2 {
		t.Errorf("running map not restored: %v", res.DailyAllocations)
	}
}

func TestGreedy_InvalidDurationIsSkippedNotFatal(t *testing.T) {
	p := params(2, 8)
	res, err := GreedyAllocator{}.Optimize([]*model.Task{
		task("bad", 0, nil, 0),
		task("ok", 3, nil, 0),
	}, nil, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if len(res.Failures) != 1 || res.Failures[0].Reason != ReasonInvalidDuration {
		t.Fatalf("expected invalid duration failure, got %v", res.Failures)
	}
	scheduled(t, res, "ok")
	checkInvariants(t, res, nil, p)
}

func TestGreedy_RespectsExistingAllocations(t *testing.T) {
	existing := map[string]float64{key(2): 6}
	p := params(2, 8)
	res, err := GreedyAllocator{}.Optimize([]*model.Task{task("t", 5, nil, 0)}, existing, p)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	tk := scheduled(t, res, "t")
	if got := tk.DailyAllocations[key(2)]; got != 2 {
		t.Errorf("expected 2h monday on top of baseline, got %v", got)
	}
	if got := tk.DailyAllocations[key(3)]; got != 3 {
		t.Errorf("expected 3h tuesday, got %v", got)
	}
	// The caller's map is never mutated.
	if len(existing) != 1 || existing[key(2)] != 6 {
		t.Errorf("caller map mutated: %v", existing)
	}
	checkInvariants(t, res, existing, p)
}

func TestOptimize_RejectsBadParams(t *testing.T) {
	_, err := GreedyAllocator{}.Optimize(nil, nil, Params{MaxHoursPerDay: 0})
	if err == nil {
		t.Fatal("expected error for non-positive capacity")
	}
}

func TestInputTasksNotMutated(t *testing.T) {
	orig := task("t", 4, deadlineAt(4), 1)
	p := params(2, 8)
	if _, err := (GreedyAllocator{}).Optimize([]*model.Task{orig}, nil, p); err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if orig.PlannedStart != nil || len(orig.DailyAllocations) != 0 {
		t.Errorf("input task mutated: %+v", orig)
	}
}
