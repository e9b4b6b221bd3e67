package optimizer

import (
	"time"

	"github.com/mgallet/horaire/core/calendar"
	"github.com/mgallet/horaire/core/model"
)

// GreedyAllocator fills each day to capacity, most urgent deadline first.
type GreedyAllocator struct{}

func (GreedyAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	return runForward(tasks, existing, p, DeadlinePriorityOrder, false)
}

// BalancedAllocator spreads each task evenly over the workdays available
// before its deadline instead of front-loading it.
type BalancedAllocator struct{}

func (BalancedAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	return runForward(tasks, existing, p, DeadlinePriorityOrder, true)
}

// PriorityAllocator is the greedy fill ordered purely by priority.
type PriorityAllocator struct{}

func (PriorityAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	return runForward(tasks, existing, p, PriorityOrder, false)
}

// DeadlineAllocator is the greedy fill with earliest-deadline-first order.
type DeadlineAllocator struct{}

func (DeadlineAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	return runForward(tasks, existing, p, DeadlineOrder, false)
}

// DependencyAllocator is the greedy fill ordered by blocking count, a
// critical-path style heuristic.
type DependencyAllocator struct{}

func (DependencyAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	return runForward(tasks, existing, p, DependencyOrder, false)
}

// BackwardAllocator anchors tasks to their deadlines and fills the latest
// available days first, leaving the near-term calendar open.
type BackwardAllocator struct{}

func (BackwardAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	p.setDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	res := newResult(existing)
	for _, t := range BackwardOrder(tasks, p.StartDate) {
		c := prepare(t)
		if c == nil {
			res.fail(t.Clone(), ReasonInvalidDuration)
			continue
		}
		allocateBackward(res, c, p)
	}
	return res, nil
}

// DefaultSliceHours is the round-robin time slice granted per task per pass.
const DefaultSliceHours = 2.0

// RoundRobinAllocator interleaves tasks in fixed-size slices instead of
// completing one before starting the next, so concurrent work shares the
// same days.
type RoundRobinAllocator struct {
	SliceHours float64
}

type rrState struct {
	task      *model.Task
	remaining float64
	perDay    map[string]float64
	cursor    time.Time
	limit     *time.Time
}

func (r RoundRobinAllocator) Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error) {
	p.setDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}
	slice := r.SliceHours
	if slice <= 0 {
		slice = DefaultSliceHours
	}

	res := newResult(existing)
	var active []*rrState
	for _, t := range InputOrder(tasks, p.StartDate) {
		c := prepare(t)
		if c == nil {
			res.fail(t.Clone(), ReasonInvalidDuration)
			continue
		}
		active = append(active, &rrState{
			task:      c,
			remaining: c.EstimatedHours,
			perDay:    make(map[string]float64),
			cursor:    model.Midnight(p.StartDate),
			limit:     deadlineDay(c),
		})
	}

	for len(active) > 0 {
		next := active[:0]
		for _, s := range active {
			switch r.advance(res, s, p, slice) {
			case rrDone:
				commit(res, s.task, p, s.perDay)
			case rrFailed:
				// advance already rolled back and recorded the failure
			default:
				next = append(next, s)
			}
		}
		active = next
	}
	return res, nil
}

type rrOutcome int

const (
	rrRunning rrOutcome = iota
	rrDone
	rrFailed
)

// advance books up to slice hours for one task, moving its cursor across
// days as they fill. The usual deadline rollback rule applies.
func (r RoundRobinAllocator) advance(res *Result, s *rrState, p Params, slice float64) rrOutcome {
	budget := slice
	if budget > s.remaining {
		budget = s.remaining
	}
	for budget > hourTol {
		if s.limit != nil && s.cursor.After(*s.limit) {
			rollback(res, s.perDay)
			res.fail(s.task, ReasonDeadlineInfeasible)
			return rrFailed
		}
		if calendar.Excluded(s.cursor, p.Holidays, p.IncludeAllDays) {
			s.cursor = s.cursor.AddDate(0, 0, 1)
			continue
		}
		avail := calendar.AvailableHours(res.DailyAllocations, s.cursor, p.MaxHoursPerDay)
		if avail <= hourTol {
			s.cursor = s.cursor.AddDate(0, 0, 1)
			continue
		}
		take := avail
		if take > budget {
			take = budget
		}
		key := model.DayKey(s.cursor)
		s.perDay[key] += take
		res.DailyAllocations[key] += take
		s.remaining -= take
		budget -= take
	}
	if s.remaining <= hourTol {
		return rrDone
	}
	return rrRunning
}
