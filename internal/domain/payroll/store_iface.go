package payroll

import "context"

type StoreAPI interface {
	Save(ctx context.Context, calcs ...SalaryCalculation) error
	ListByMonth(ctx context.Context, month string) ([]SalaryCalculation, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryCalculation, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
