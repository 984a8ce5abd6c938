package payroll

import (
	"fmt"
	"time"
)

const MonthLayout = "2006-01"

// MaxReportMonths caps the inclusive month range of a report.
const MaxReportMonths = 24

func ParseMonth(value string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, value)
	if err != nil || t.Format(MonthLayout) != value {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}
	return t, nil
}

// MonthRange lists every month from start to end inclusive.
func MonthRange(start, end string) ([]string, error) {
	from, err := ParseMonth(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseMonth(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	var months []string
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		if len(months) == MaxReportMonths {
			return nil, ErrRangeTooLarge
		}
		months = append(months, m.Format(MonthLayout))
	}
	return months, nil
}
