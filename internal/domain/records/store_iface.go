package records

import (
	"context"

	"hrpay/internal/domain/core"
)

type StoreAPI interface {
	Create(ctx context.Context, rec core.Record) error
	ListByEmployee(ctx context.Context, employeeID string) ([]core.Record, error)
	ListByType(ctx context.Context, recordType core.RecordType) ([]core.Record, error)
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
