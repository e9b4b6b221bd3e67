// Package holiday provides calendar.HolidayChecker implementations. Holiday
// data acquisition stays outside the optimizer; this adapter only consumes a
// configured list of dates.
package holiday

import (
	"fmt"
	"time"

	"github.com/mgallet/horaire/core/model"
)

// ListChecker excludes a fixed set of dates supplied as YYYY-MM-DD strings.
type ListChecker struct {
	days map[string]struct{}
}

// NewListChecker parses the date list. Invalid dates are a configuration
// error.
func NewListChecker(dates []string) (*ListChecker, error) {
	days := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		if _, err := model.ParseDayKey(d); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
		days[d] = struct{}{}
	}
	return &ListChecker{days: days}, nil
}

// IsExcluded implements calendar.HolidayChecker.
func (c *ListChecker) IsExcluded(date time.Time) bool {
	if c == nil {
		return false
	}
	_, ok := c.days[model.DayKey(date)]
	return ok
}
