package calendar

import (
	"time"

	"github.com/mgallet/horaire/core/model"
)

// HolidayChecker reports whether a date is excluded from scheduling.
// Implementations are injected by the caller; the optimizer never fetches
// holiday data itself.
type HolidayChecker interface {
	IsExcluded(date time.Time) bool
}

// AvailableHours returns the remaining capacity on day given the hours already
// booked in alloc. The result is never negative.
func AvailableHours(alloc map[string]float64, day time.Time, maxHoursPerDay float64) float64 {
	avail := maxHoursPerDay - alloc[model.DayKey(day)]
	if avail < 0 {
		return 0
	}
	return avail
}

// Excluded reports whether day contributes zero capacity. Weekends and
// holiday-checker dates are excluded unless includeAllDays is set.
func Excluded(day time.Time, checker HolidayChecker, includeAllDays bool) bool {
	if includeAllDays {
		return false
	}
	wd := day.UTC().Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return true
	}
	return checker != nil && checker.IsExcluded(day)
}

// CountWorkdays counts the non-excluded days in [from, to], inclusive.
// It returns zero when to precedes from.
func CountWorkdays(from, to time.Time, checker HolidayChecker, includeAllDays bool) int {
	from = model.Midnight(from)
	to = model.Midnight(to)
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !Excluded(d, checker, includeAllDays) {
			count++
		}
	}
	return count
}
