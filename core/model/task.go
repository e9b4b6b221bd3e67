package model

import (
	"time"
)

// DayKeyFormat is the layout used for daily allocation map keys.
const DayKeyFormat = "2006-01-02"

// Task is a unit of work to be placed on the calendar. EstimatedHours at or
// below zero marks the task as unschedulable. Deadline is optional; a nil
// deadline means the task can be pushed arbitrarily far into the future.
type Task struct {
	ID             string             `json:"id"`
	Title          string             `json:"title,omitempty"`
	EstimatedHours float64            `json:"estimated_hours"`
	Deadline       *time.Time         `json:"deadline,omitempty"`
	Priority       int                `json:"priority"`
	DependsOn      []string           `json:"depends_on,omitempty"`
	Fixed          bool               `json:"fixed,omitempty"`
	Completed      bool               `json:"completed,omitempty"`
	PlannedStart   *time.Time         `json:"planned_start,omitempty"`
	PlannedEnd     *time.Time         `json:"planned_end,omitempty"`
	// DailyAllocations maps YYYY-MM-DD day keys to the hours this task
	// occupies on that day.
	DailyAllocations map[string]float64 `json:"daily_allocations,omitempty"`
}

// Schedulable reports whether the task carries a usable duration estimate.
func (t *Task) Schedulable() bool {
	return t != nil && t.EstimatedHours > 0
}

// Clone returns an independent deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	if t.Deadline != nil {
		d := *t.Deadline
		cp.Deadline = &d
	}
	if t.PlannedStart != nil {
		s := *t.PlannedStart
		cp.PlannedStart = &s
	}
	if t.PlannedEnd != nil {
		e := *t.PlannedEnd
		cp.PlannedEnd = &e
	}
	if t.DependsOn != nil {
		cp.DependsOn = append([]string(nil), t.DependsOn...)
	}
	if t.DailyAllocations != nil {
		cp.DailyAllocations = make(map[string]float64, len(t.DailyAllocations))
		for k, v := range t.DailyAllocations {
			cp.DailyAllocations[k] = v
		}
	}
	return &cp
}

// AllocatedHours sums the task's daily allocations.
func (t *Task) AllocatedHours() float64 {
	var sum float64
	for _, h := range t.DailyAllocations {
		sum += h
	}
	return sum
}

// DayKey formats t as a daily allocation map key in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyFormat)
}

// ParseDayKey parses a YYYY-MM-DD key back into a UTC midnight timestamp.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyFormat, key, time.UTC)
}

// Midnight truncates t to the start of its day in UTC.
func Midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
