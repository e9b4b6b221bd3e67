package optimizer

import (
	"math"
	"sort"
	"time"

	"github.com/mgallet/horaire/core/model"
)

// OrderFunc produces the allocation order for a batch of tasks. now is the
// reference point for deadline urgency. Implementations must not mutate the
// input slice and must be deterministic, breaking ties by task id.
type OrderFunc func(tasks []*model.Task, now time.Time) []*model.Task

// daysUntil measures whole days from now to the task's deadline. Tasks
// without a deadline sort as infinitely far away.
func daysUntil(t *model.Task, now time.Time) float64 {
	if t.Deadline == nil {
		return math.Inf(1)
	}
	return model.Midnight(*t.Deadline).Sub(model.Midnight(now)).Hours() / 24
}

func sortCopy(tasks []*model.Task, less func(a, b *model.Task) bool) []*model.Task {
	out := append([]*model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// DeadlinePriorityOrder is the default order: most urgent deadline first,
// then highest priority, then id.
func DeadlinePriorityOrder(tasks []*model.Task, now time.Time) []*model.Task {
	return sortCopy(tasks, func(a, b *model.Task) bool {
		da, db := daysUntil(a, now), daysUntil(b, now)
		if da != db {
			return da < db
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.ID < b.ID
	})
}

// BackwardOrder serves the deadline-anchored allocator: deadline-less tasks
// first, then deadlines descending, so the furthest-out work is placed onto
// the latest days before tighter deadlines claim the earlier ones.
func BackwardOrder(tasks []*model.Task, now time.Time) []*model.Task {
	return sortCopy(tasks, func(a, b *model.Task) bool {
		an, bn := a.Deadline == nil, b.Deadline == nil
		if an != bn {
			return an
		}
		if an && bn {
			return a.ID < b.ID
		}
		da, db := model.Midnight(*a.Deadline), model.Midnight(*b.Deadline)
		if !da.Equal(db) {
			return da.After(db)
		}
		return a.ID < b.ID
	})
}

// PriorityOrder ignores deadlines entirely: highest priority first.
func PriorityOrder(tasks []*model.Task, _ time.Time) []*model.Task {
	return sortCopy(tasks, func(a, b *model.Task) bool {
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.ID < b.ID
	})
}

// DeadlineOrder is earliest-deadline-first; priority is ignored.
func DeadlineOrder(tasks []*model.Task, now time.Time) []*model.Task {
	return sortCopy(tasks, func(a, b *model.Task) bool {
		da, db := daysUntil(a, now), daysUntil(b, now)
		if da != db {
			return da < db
		}
		return a.ID < b.ID
	})
}

// BlockingCounts tallies, per task id, how many other tasks in the batch
// depend on it.
func BlockingCounts(tasks []*model.Task) map[string]int {
	counts := make(map[string]int, len(tasks))
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			counts[dep]++
		}
	}
	return counts
}

// DependencyOrder sorts by blocking count descending, so tasks that gate the
// most downstream work are placed first. Dependency edges are an ordering
// signal only: no strategy enforces that a dependent task starts after its
// dependency ends.
func DependencyOrder(tasks []*model.Task, now time.Time) []*model.Task {
	counts := BlockingCounts(tasks)
	return sortCopy(tasks, func(a, b *model.Task) bool {
		if counts[a.ID] != counts[b.ID] {
			return counts[a.ID] > counts[b.ID]
		}
		da, db := daysUntil(a, now), daysUntil(b, now)
		if da != db {
			return da < db
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.ID < b.ID
	})
}

// InputOrder keeps the caller-supplied order untouched.
func InputOrder(tasks []*model.Task, _ time.Time) []*model.Task {
	return append([]*model.Task(nil), tasks...)
}
