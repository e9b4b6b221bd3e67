package optimizer

import (
	"errors"
	"time"

	"github.com/mgallet/horaire/core/calendar"
	"github.com/mgallet/horaire/core/model"
)

// Failure reasons reported to callers. Per-task infeasibility is data, not an
// error: one task failing never aborts the batch.
const (
	ReasonInvalidDuration      = "invalid or missing estimated duration"
	ReasonDeadlineInfeasible   = "cannot meet deadline within capacity constraints"
	ReasonInsufficientLeadTime = "insufficient capacity before start date"
)

// Default planning knobs applied by Params.setDefaults.
const (
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 18
	DefaultHorizonDays  = 90
)

var errMaxHours = errors.New("max_hours_per_day must be positive")

// Params carries the planning constraints shared by every strategy.
type Params struct {
	// StartDate is the earliest day eligible for allocation.
	StartDate time.Time
	// MaxHoursPerDay caps the total hours booked on any single day,
	// pre-existing commitments included.
	MaxHoursPerDay float64
	// Holidays optionally excludes extra dates beyond weekends.
	Holidays calendar.HolidayChecker
	// IncludeAllDays disables weekend and holiday exclusion.
	IncludeAllDays bool
	// DayStartHour and DayEndHour anchor the planned start/end timestamps
	// within their first and last allocated days.
	DayStartHour int
	DayEndHour   int
	// HorizonDays bounds backward planning and balanced spreading for
	// tasks without a deadline.
	HorizonDays int
	// Seed makes the stochastic strategies reproducible. Zero selects a
	// time-based seed.
	Seed int64
}

func (p *Params) setDefaults() {
	if p.DayStartHour == 0 {
		p.DayStartHour = DefaultDayStartHour
	}
	if p.DayEndHour == 0 {
		p.DayEndHour = DefaultDayEndHour
	}
	if p.HorizonDays <= 0 {
		p.HorizonDays = DefaultHorizonDays
	}
}

func (p *Params) validate() error {
	if p.MaxHoursPerDay <= 0 {
		return errMaxHours
	}
	return nil
}

// Failure records a task the optimizer could not place.
type Failure struct {
	Task   *model.Task `json:"task"`
	Reason string      `json:"reason"`
}

// Result is the outcome of one optimization run. DailyAllocations is the
// running day occupancy, seeded from the caller's existing commitments and
// grown as tasks are placed; it only ever reflects committed allocations.
type Result struct {
	Tasks            []*model.Task      `json:"tasks"`
	DailyAllocations map[string]float64 `json:"daily_allocations"`
	Failures         []Failure          `json:"failures"`
}

func newResult(existing map[string]float64) *Result {
	alloc := make(map[string]float64, len(existing))
	for k, v := range existing {
		alloc[k] = v
	}
	return &Result{DailyAllocations: alloc}
}

func (r *Result) fail(t *model.Task, reason string) {
	r.Failures = append(r.Failures, Failure{Task: t, Reason: reason})
}

// Strategy is the contract every allocation algorithm implements. Tasks and
// the existing allocation map are never mutated; scheduled copies are
// returned in the result.
type Strategy interface {
	Optimize(tasks []*model.Task, existing map[string]float64, p Params) (*Result, error)
}
