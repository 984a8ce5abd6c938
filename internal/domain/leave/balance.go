package leave

import (
	"strconv"
	"strings"

	"hrpay/internal/domain/core"
)

type Balance struct {
	Type      core.LeaveType `json:"type"`
	Total     int            `json:"total"`
	Used      int            `json:"used"`
	Remaining int            `json:"remaining"`
}

// Used sums the days of leave records of the given type starting in year.
func Used(recs []core.Record, leaveType core.LeaveType, year int) int {
	prefix := strconv.Itoa(year) + "-"
	used := 0
	for _, rec := range recs {
		lv, ok := rec.Event.(core.Leave)
		if !ok || lv.LeaveType != leaveType {
			continue
		}
		if strings.HasPrefix(lv.StartDate, prefix) {
			used += lv.Days
		}
	}
	return used
}

// Balances reports allowance and usage for every paid leave type. recs may
// include other employees' records; they are ignored.
func Balances(emp core.Employee, recs []core.Record, year int) []Balance {
	own := make([]core.Record, 0, len(recs))
	for _, rec := range recs {
		if rec.EmployeeID == emp.ID {
			own = append(own, rec)
		}
	}
	out := make([]Balance, 0, len(core.PaidLeaveTypes))
	for _, leaveType := range core.PaidLeaveTypes {
		total, _ := emp.Agreement.Allowance(leaveType)
		used := Used(own, leaveType, year)
		out = append(out, Balance{Type: leaveType, Total: total, Used: used, Remaining: total - used})
	}
	return out
}
