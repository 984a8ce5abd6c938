package records

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/leave"
	"hrpay/internal/domain/payroll"
)

type EmployeeSource interface {
	Get(ctx context.Context, employeeID string) (core.Employee, error)
}

type Service struct {
	store     StoreAPI
	employees EmployeeSource
	calendar  payroll.Calendar
}

func NewService(store StoreAPI, employees EmployeeSource, calendar payroll.Calendar) *Service {
	return &Service{store: store, employees: employees, calendar: calendar}
}

// Create validates and stores a new record. Leave days, paid flag and amount
// are derived here; any values sent by the client are replaced. Every record
// gets its informational taxes attached.
func (s *Service) Create(ctx context.Context, rec core.Record) (core.Record, error) {
	rec = normalize(rec)
	if issues := validateShape(rec); len(issues) > 0 {
		return core.Record{}, &core.ValidationError{Issues: issues}
	}

	emp, err := s.employees.Get(ctx, rec.EmployeeID)
	if err != nil {
		return core.Record{}, err
	}

	if lv, ok := rec.Event.(core.Leave); ok {
		lv, err = s.prepareLeave(ctx, emp, lv)
		if err != nil {
			return core.Record{}, err
		}
		rec.Event = lv
	}

	taxes := payroll.ComputeTaxes(rec.Amount(), emp, rec.Type())
	rec.Taxes = &taxes
	rec.ID = uuid.NewString()

	if err := s.store.Create(ctx, rec); err != nil {
		return core.Record{}, fmt.Errorf("create record: %w", err)
	}
	log.Info().Str("record_id", rec.ID).Str("employee_id", rec.EmployeeID).Str("type", string(rec.Type())).Msg("record created")
	return rec, nil
}

func (s *Service) prepareLeave(ctx context.Context, emp core.Employee, lv core.Leave) (core.Leave, error) {
	start, _ := time.Parse(core.DateLayout, lv.StartDate)
	end, _ := time.Parse(core.DateLayout, lv.EndDate)

	days, err := leave.CalculateDays(start, end)
	if err != nil {
		return core.Leave{}, &core.ValidationError{Issues: []core.Issue{
			{Field: "endDate", Reason: "must be on or after startDate"},
			{Field: "startDate", Reason: "must be on or before endDate"},
		}}
	}

	var issues []core.Issue
	if hired, err := time.Parse(core.DateLayout, emp.StartDate); err == nil && start.Before(hired) {
		issues = append(issues, core.Issue{Field: "startDate", Reason: "cannot be before employment start date"})
	}

	existing, err := s.store.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return core.Leave{}, err
	}
	if _, overlap := leave.FindOverlap(existing, start, end); overlap {
		issues = append(issues, core.Issue{Field: "startDate", Reason: "overlaps with an existing leave record"})
	}
	if allowance, limited := emp.Agreement.Allowance(lv.LeaveType); limited {
		remaining := allowance - leave.Used(existing, lv.LeaveType, start.Year())
		if days > remaining {
			issues = append(issues, core.Issue{
				Field:  "days",
				Reason: fmt.Sprintf("insufficient %s days remaining (%d days left)", lv.LeaveType, max(remaining, 0)),
			})
		}
	}
	if len(issues) > 0 {
		core.SortIssues(issues)
		return core.Leave{}, &core.ValidationError{Issues: issues}
	}

	lv.Days = days
	lv.IsPaid = lv.LeaveType != core.LeaveUnpaid
	amount := 0.0
	if lv.IsPaid {
		amount = float64(days) * s.calendar.DailyRate(s.calendar.BaseSalary(emp))
	}
	lv.Amount = &amount
	return lv, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]core.Record, error) {
	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) ListByType(ctx context.Context, recordType string) ([]core.Record, error) {
	if !core.IsRecordType(recordType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, recordType)
	}
	return s.store.ListByType(ctx, core.RecordType(recordType))
}

// ListForMonth returns the employee's records dated within month.
func (s *Service) ListForMonth(ctx context.Context, employeeID, month string) ([]core.Record, error) {
	if _, err := payroll.ParseMonth(month); err != nil {
		return nil, err
	}
	recs, err := s.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return payroll.SelectRecords(employeeID, recs, month), nil
}

func (s *Service) DeleteByEmployee(ctx context.Context, employeeID string) error {
	return s.store.DeleteByEmployee(ctx, employeeID)
}
