package records

import (
	"strings"

	"hrpay/internal/domain/core"
)

type commonInput struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

type leaveInput struct {
	LeaveType string `json:"leaveType" validate:"required,oneof=vacation sick marriage bereavement paternity maternity study military unpaid"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type amountInput struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// normalize trims text fields and, for leave, defaults the event date to the
// first day of leave.
func normalize(rec core.Record) core.Record {
	rec.EmployeeID = strings.TrimSpace(rec.EmployeeID)
	rec.Date = strings.TrimSpace(rec.Date)
	rec.Description = strings.TrimSpace(rec.Description)
	if lv, ok := rec.Event.(core.Leave); ok {
		lv.LeaveType = core.LeaveType(strings.ToLower(strings.TrimSpace(string(lv.LeaveType))))
		lv.StartDate = strings.TrimSpace(lv.StartDate)
		lv.EndDate = strings.TrimSpace(lv.EndDate)
		if rec.Date == "" {
			rec.Date = lv.StartDate
		}
		rec.Event = lv
	}
	return rec
}

// validateShape checks the fields that do not need the employee or existing
// records.
func validateShape(rec core.Record) []core.Issue {
	issues := core.ValidateStruct(commonInput{EmployeeID: rec.EmployeeID, Date: rec.Date})

	switch ev := rec.Event.(type) {
	case nil:
		issues = append(issues, core.Issue{Field: "type", Reason: "must be one of: leave, overtime, bonus, deduction"})
	case core.Leave:
		issues = append(issues, core.ValidateStruct(leaveInput{
			LeaveType: string(ev.LeaveType),
			StartDate: ev.StartDate,
			EndDate:   ev.EndDate,
		})...)
	default:
		issues = append(issues, core.ValidateStruct(amountInput{Amount: rec.Amount()})...)
	}

	core.SortIssues(issues)
	return issues
}
