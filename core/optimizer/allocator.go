package optimizer

import (
	"time"

	"github.com/mgallet/horaire/core/calendar"
	"github.com/mgallet/horaire/core/model"
)

// hourTol absorbs floating point drift when comparing remaining hours.
const hourTol = 1e-9

// prepare validates and clones a task for allocation. It returns nil when the
// task has no usable duration estimate; callers record the failure.
func prepare(t *model.Task) *model.Task {
	if !t.Schedulable() {
		return nil
	}
	cp := t.Clone()
	cp.PlannedStart = nil
	cp.PlannedEnd = nil
	cp.DailyAllocations = make(map[string]float64)
	return cp
}

// commitSchedule writes the computed plan onto the task copy. No validation
// happens here; feasibility is the allocator's job.
func commitSchedule(t *model.Task, start, end time.Time, perDay map[string]float64) {
	t.PlannedStart = &start
	t.PlannedEnd = &end
	t.DailyAllocations = perDay
}

// rollback subtracts a partial per-day allocation from the running map,
// restoring it to its pre-attempt state.
func rollback(res *Result, perDay map[string]float64) {
	for k, h := range perDay {
		res.DailyAllocations[k] -= h
		if res.DailyAllocations[k] <= hourTol {
			delete(res.DailyAllocations, k)
		}
	}
}

// deadlineDay returns the last day allocations may touch, or nil.
func deadlineDay(t *model.Task) *time.Time {
	if t.Deadline == nil {
		return nil
	}
	d := model.Midnight(*t.Deadline)
	return &d
}

// perDayBounds returns the chronological first and last allocated days.
func perDayBounds(perDay map[string]float64) (time.Time, time.Time) {
	var first, last time.Time
	for k := range perDay {
		d, err := model.ParseDayKey(k)
		if err != nil {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	return first, last
}

// commit finalizes a fully allocated task: planned start at the configured
// start-of-day hour on the first allocated day, planned end at the end-of-day
// hour on the last.
func commit(res *Result, t *model.Task, p Params, perDay map[string]float64) {
	first, last := perDayBounds(perDay)
	start := first.Add(time.Duration(p.DayStartHour) * time.Hour)
	end := last.Add(time.Duration(p.DayEndHour) * time.Hour)
	commitSchedule(t, start, end, perDay)
	res.Tasks = append(res.Tasks, t)
}

// allocateForward walks day by day from the start date, booking capacity for
// the task until its estimate is covered. A positive target caps each day's
// booking (balanced mode); zero means fill to capacity. Crossing the task's
// deadline rolls the attempt back and records a failure.
func allocateForward(res *Result, t *model.Task, p Params, target float64) {
	remaining := t.EstimatedHours
	perDay := make(map[string]float64)
	limit := deadlineDay(t)

	for cursor := model.Midnight(p.StartDate); remaining > hourTol; cursor = cursor.AddDate(0, 0, 1) {
		if limit != nil && cursor.After(*limit) {
			rollback(res, perDay)
			res.fail(t, ReasonDeadlineInfeasible)
			return
		}
		if calendar.Excluded(cursor, p.Holidays, p.IncludeAllDays) {
			continue
		}
		avail := calendar.AvailableHours(res.DailyAllocations, cursor, p.MaxHoursPerDay)
		if target > 0 && avail > target {
			avail = target
		}
		take := avail
		if take > remaining {
			take = remaining
		}
		if take > hourTol {
			key := model.DayKey(cursor)
			perDay[key] += take
			res.DailyAllocations[key] += take
			remaining -= take
		}
	}
	commit(res, t, p, perDay)
}

// allocateBackward anchors the task to its deadline and walks toward the
// start date, filling the latest days first. Deadline-less tasks anchor to
// the planning horizon instead. Reaching the start date with hours left over
// fails the task and rolls the attempt back.
func allocateBackward(res *Result, t *model.Task, p Params) {
	start := model.Midnight(p.StartDate)
	anchor := start.AddDate(0, 0, p.HorizonDays)
	if d := deadlineDay(t); d != nil {
		anchor = *d
	}

	remaining := t.EstimatedHours
	perDay := make(map[string]float64)

	for cursor := anchor; remaining > hourTol; cursor = cursor.AddDate(0, 0, -1) {
		if cursor.Before(start) {
			rollback(res, perDay)
			res.fail(t, ReasonInsufficientLeadTime)
			return
		}
		if calendar.Excluded(cursor, p.Holidays, p.IncludeAllDays) {
			continue
		}
		take := calendar.AvailableHours(res.DailyAllocations, cursor, p.MaxHoursPerDay)
		if take > remaining {
			take = remaining
		}
		if take > hourTol {
			key := model.DayKey(cursor)
			perDay[key] += take
			res.DailyAllocations[key] += take
			remaining -= take
		}
	}
	commit(res, t, p, perDay)
}

// balancedTarget computes the per-day cap that spreads the task evenly over
// the workdays between the start date and its deadline or the horizon.
func balancedTarget(t *model.Task, p Params) float64 {
	start := model.Midnight(p.StartDate)
	until := start.AddDate(0, 0, p.HorizonDays)
	if d := deadlineDay(t); d != nil {
		until = *d
	}
	days := calendar.CountWorkdays(start, until, p.Holidays, p.IncludeAllDays)
	if days < 1 {
		days = 1
	}
	return t.EstimatedHours / float64(days)
}

// runForward is the shared template behind the forward allocation family:
// seed the running map, order the tasks, then place each one in turn.
// Failures never abort the batch.
func runForward(tasks []*model.Task, existing map[string]float64, p Params, order OrderFunc, balanced bool) (*Result, error) {
	p.setDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	res := newResult(existing)
	for _, t := range order(tasks, p.StartDate) {
		c := prepare(t)
		if c == nil {
			res.fail(t.Clone(), ReasonInvalidDuration)
			continue
		}
		target := 0.0
		if balanced {
			target = balancedTarget(c, p)
		}
		allocateForward(res, c, p, target)
	}
	return res, nil
}
