package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecordJSONLeave(t *testing.T) {
	amount := 1136363.64
	rec := Record{
		ID:         "r1",
		EmployeeID: "emp-001",
		Date:       "2024-03-01",
		Event: Leave{
			LeaveType: LeaveVacation,
			StartDate: "2024-03-01",
			EndDate:   "2024-03-05",
			Days:      5,
			IsPaid:    true,
			Amount:    &amount,
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"type":"leave"`, `"leaveType":"vacation"`, `"days":5`, `"isPaid":true`, `"amount":1136363.64`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}

	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	leave, ok := decoded.Event.(Leave)
	if !ok || leave.Days != 5 || !leave.IsPaid || decoded.Amount() != amount {
		t.Fatalf("unexpected decoded leave %+v", decoded)
	}
}

func TestRecordJSONOvertimeKeepsHours(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"employeeId":"emp-001","type":"overtime","date":"2024-03-15","amount":8}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Type() != RecordTypeOvertime || rec.Amount() != 8 {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestRecordJSONUnknownType(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"type":"gift","amount":5}`), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Event != nil || rec.Type() != "" {
		t.Fatalf("unknown type should leave event empty, got %+v", rec.Event)
	}
}
