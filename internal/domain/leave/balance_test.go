package leave

import (
	"testing"

	"hrpay/internal/domain/core"
)

func TestBalances(t *testing.T) {
	emp := core.Employee{
		ID: "emp-001",
		Agreement: core.Agreement{
			VacationDaysPerYear: 21,
			SickLeavePerYear:    14,
			PaidLeaves:          core.PaidLeaves{Marriage: 3},
		},
	}
	recs := []core.Record{
		{EmployeeID: "emp-001", Event: core.Leave{LeaveType: core.LeaveVacation, StartDate: "2024-03-01", EndDate: "2024-03-05", Days: 5}},
		{EmployeeID: "emp-001", Event: core.Leave{LeaveType: core.LeaveVacation, StartDate: "2023-12-30", EndDate: "2024-01-02", Days: 4}},
		{EmployeeID: "emp-001", Event: core.Leave{LeaveType: core.LeaveSick, StartDate: "2024-03-20", EndDate: "2024-03-22", Days: 3}},
		{EmployeeID: "emp-001", Event: core.Leave{LeaveType: core.LeaveUnpaid, StartDate: "2024-04-01", EndDate: "2024-04-10", Days: 10}},
		{EmployeeID: "emp-002", Event: core.Leave{LeaveType: core.LeaveVacation, StartDate: "2024-03-01", EndDate: "2024-03-05", Days: 5}},
		{EmployeeID: "emp-001", Event: core.Overtime{Hours: 8}},
	}

	balances := Balances(emp, recs, 2024)
	if len(balances) != len(core.PaidLeaveTypes) {
		t.Fatalf("expected %d balances, got %d", len(core.PaidLeaveTypes), len(balances))
	}

	byType := map[core.LeaveType]Balance{}
	for _, b := range balances {
		byType[b.Type] = b
	}
	if got := byType[core.LeaveVacation]; got.Total != 21 || got.Used != 5 || got.Remaining != 16 {
		t.Fatalf("unexpected vacation balance %+v", got)
	}
	if got := byType[core.LeaveSick]; got.Used != 3 || got.Remaining != 11 {
		t.Fatalf("unexpected sick balance %+v", got)
	}
	if got := byType[core.LeaveMarriage]; got.Total != 3 || got.Used != 0 {
		t.Fatalf("unexpected marriage balance %+v", got)
	}
	if _, ok := byType[core.LeaveUnpaid]; ok {
		t.Fatal("unpaid leave has no balance")
	}
}
