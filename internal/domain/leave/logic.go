package leave

import (
	"errors"
	"time"

	"hrpay/internal/domain/core"
)

var ErrEndBeforeStart = errors.New("end date before start date")

// CalculateDays returns the inclusive calendar day count between start and end.
func CalculateDays(start, end time.Time) (int, error) {
	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Overlaps reports whether two inclusive date ranges share at least one day.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return !truncateDay(startA).After(truncateDay(endB)) && !truncateDay(startB).After(truncateDay(endA))
}

// FindOverlap returns the first leave record of the employee whose range
// intersects [start, end].
func FindOverlap(recs []core.Record, start, end time.Time) (core.Record, bool) {
	for _, rec := range recs {
		lv, ok := rec.Event.(core.Leave)
		if !ok {
			continue
		}
		otherStart, err1 := time.Parse(core.DateLayout, lv.StartDate)
		otherEnd, err2 := time.Parse(core.DateLayout, lv.EndDate)
		if err1 != nil || err2 != nil {
			continue
		}
		if Overlaps(start, end, otherStart, otherEnd) {
			return rec, true
		}
	}
	return core.Record{}, false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
