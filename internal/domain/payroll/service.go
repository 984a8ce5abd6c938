package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hrpay/internal/domain/core"
)

type EmployeeSource interface {
	Get(ctx context.Context, employeeID string) (core.Employee, error)
	All(ctx context.Context) ([]core.Employee, error)
}

type RecordSource interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]core.Record, error)
}

type Service struct {
	employees EmployeeSource
	records   RecordSource
	store     StoreAPI
	calendar  Calendar
	workers   int

	Now func() time.Time
	// Observe, when set, is told how many snapshots each run produced.
	Observe func(count int, duration time.Duration)
}

func NewService(employees EmployeeSource, records RecordSource, store StoreAPI, calendar Calendar, workers int) *Service {
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		employees: employees,
		records:   records,
		store:     store,
		calendar:  calendar,
		workers:   workers,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Calendar() Calendar {
	return s.calendar
}

// Calculate computes and stores the snapshot for one employee and month,
// replacing any earlier snapshot with the same id.
func (s *Service) Calculate(ctx context.Context, employeeID, month string) (SalaryCalculation, error) {
	if _, err := ParseMonth(month); err != nil {
		return SalaryCalculation{}, err
	}
	start := time.Now()
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return SalaryCalculation{}, err
	}
	calc, err := s.compute(ctx, emp, month)
	if err != nil {
		return SalaryCalculation{}, err
	}
	if err := s.store.Save(ctx, calc); err != nil {
		return SalaryCalculation{}, fmt.Errorf("save calculation: %w", err)
	}
	s.observe(1, time.Since(start))
	return calc, nil
}

// CalculateMonth computes every employee for month concurrently and returns
// the stored snapshots ordered by employee name.
func (s *Service) CalculateMonth(ctx context.Context, month string) ([]SalaryCalculation, error) {
	if _, err := ParseMonth(month); err != nil {
		return nil, err
	}
	start := time.Now()
	emps, err := s.employees.All(ctx)
	if err != nil {
		return nil, err
	}

	calcs := make([]SalaryCalculation, len(emps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range emps {
		i, emp := i, emp
		g.Go(func() error {
			calc, err := s.compute(gctx, emp, month)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			calcs[i] = calc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortCalculations(calcs)
	if err := s.store.Save(ctx, calcs...); err != nil {
		return nil, fmt.Errorf("save calculations: %w", err)
	}
	s.observe(len(calcs), time.Since(start))
	log.Info().Str("month", month).Int("employees", len(calcs)).Dur("took", time.Since(start)).Msg("payroll calculated")
	return calcs, nil
}

func (s *Service) ListByMonth(ctx context.Context, month string) ([]SalaryCalculation, error) {
	if _, err := ParseMonth(month); err != nil {
		return nil, err
	}
	return s.store.ListByMonth(ctx, month)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]SalaryCalculation, error) {
	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.store.ListByEmployee(ctx, employeeID)
}

func (s *Service) DeleteByEmployee(ctx context.Context, employeeID string) error {
	return s.store.DeleteByEmployee(ctx, employeeID)
}

// Report recomputes every employee for every month in the inclusive range.
// Nothing is stored.
func (s *Service) Report(ctx context.Context, startMonth, endMonth string) (Report, error) {
	months, err := MonthRange(startMonth, endMonth)
	if err != nil {
		return Report{}, err
	}
	emps, err := s.employees.All(ctx)
	if err != nil {
		return Report{}, err
	}

	perEmployee := make([][]SalaryCalculation, len(emps))
	now := s.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, emp := range emps {
		i, emp := i, emp
		g.Go(func() error {
			recs, err := s.records.ListByEmployee(gctx, emp.ID)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			out := make([]SalaryCalculation, 0, len(months))
			for _, month := range months {
				out = append(out, s.calendar.ComputeSalary(emp, recs, month, now))
			}
			perEmployee[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{StartMonth: startMonth, EndMonth: endMonth, Calculations: []SalaryCalculation{}}
	for _, calcs := range perEmployee {
		for _, calc := range calcs {
			report.Calculations = append(report.Calculations, calc)
			report.Totals = report.Totals.Add(calc.Amounts)
		}
	}
	sortCalculations(report.Calculations)
	return report, nil
}

// Preview computes a fresh snapshot without storing it.
func (s *Service) Preview(ctx context.Context, employeeID, month string) (core.Employee, SalaryCalculation, error) {
	if _, err := ParseMonth(month); err != nil {
		return core.Employee{}, SalaryCalculation{}, err
	}
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return core.Employee{}, SalaryCalculation{}, err
	}
	calc, err := s.compute(ctx, emp, month)
	if err != nil {
		return core.Employee{}, SalaryCalculation{}, err
	}
	return emp, calc, nil
}

func (s *Service) compute(ctx context.Context, emp core.Employee, month string) (SalaryCalculation, error) {
	recs, err := s.records.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return SalaryCalculation{}, err
	}
	return s.calendar.ComputeSalary(emp, recs, month, s.Now()), nil
}

func (s *Service) observe(count int, duration time.Duration) {
	if s.Observe != nil {
		s.Observe(count, duration)
	}
}
