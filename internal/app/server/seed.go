package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hrpay/internal/domain/core"
	"hrpay/internal/domain/records"
)

var sampleAgreement = core.Agreement{
	VacationDaysPerYear: 24,
	SickLeavePerYear:    15,
	OvertimeRate:        1.5,
	PaidLeaves: core.PaidLeaves{
		Marriage: 3, Bereavement: 3, Paternity: 5, Maternity: 126, Study: 14, Military: 14,
	},
}

var sampleEmployees = []core.Employee{
	{
		Name:             "John Smith",
		Position:         "Software Engineer",
		PINFL:            "12345678901234",
		PassportSeries:   "AA",
		PassportNumber:   "1234567",
		DateOfBirth:      "1990-01-15",
		PaymentType:      core.PaymentTypeSalary,
		PaymentFrequency: core.PaymentFrequencyMonthly,
		Rate:             5000000,
		StartDate:        "2024-01-01",
		TaxRate:          12,
		Agreement:        sampleAgreement,
	},
	{
		Name:             "Sarah Johnson",
		Position:         "Project Manager",
		PINFL:            "98765432109876",
		PassportSeries:   "BB",
		PassportNumber:   "7654321",
		DateOfBirth:      "1985-05-20",
		PaymentType:      core.PaymentTypeSalary,
		PaymentFrequency: core.PaymentFrequencyMonthly,
		Rate:             7000000,
		StartDate:        "2024-01-01",
		TaxRate:          12,
		Agreement:        sampleAgreement,
	},
}

// sampleRecords are keyed by the index of their employee in sampleEmployees.
var sampleRecords = []struct {
	employee int
	record   core.Record
}{
	{0, core.Record{Date: "2024-03-01", Description: "Annual vacation",
		Event: core.Leave{LeaveType: core.LeaveVacation, StartDate: "2024-03-01", EndDate: "2024-03-05"}}},
	{0, core.Record{Date: "2024-03-15", Description: "Project deadline work", Event: core.Overtime{Hours: 8}}},
	{1, core.Record{Date: "2024-03-10", Description: "Project completion bonus", Event: core.Bonus{Amount: 1000000}}},
	{1, core.Record{Date: "2024-03-20", Description: "Medical leave",
		Event: core.Leave{LeaveType: core.LeaveSick, StartDate: "2024-03-20", EndDate: "2024-03-22"}}},
}

// Seed creates the sample employees and records when no employee exists yet.
func Seed(ctx context.Context, employees *core.Service, recs *records.Service) error {
	count, err := employees.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int("employees", count).Msg("seed skipped, store not empty")
		return nil
	}

	ids := make([]string, len(sampleEmployees))
	for i, emp := range sampleEmployees {
		created, err := employees.Create(ctx, emp)
		if err != nil {
			return fmt.Errorf("seed employee %s: %w", emp.Name, err)
		}
		ids[i] = created.ID
	}
	for _, sample := range sampleRecords {
		rec := sample.record
		rec.EmployeeID = ids[sample.employee]
		if _, err := recs.Create(ctx, rec); err != nil {
			return fmt.Errorf("seed record %s: %w", rec.Description, err)
		}
	}
	log.Info().Int("employees", len(sampleEmployees)).Int("records", len(sampleRecords)).Msg("sample data seeded")
	return nil
}
