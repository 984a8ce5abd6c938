package core

import "context"

type StoreAPI interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]Employee, error)
	All(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, employeeID string) (*Employee, error)
	ExistsByPINFL(ctx context.Context, pinfl, exceptID string) (bool, error)
	Create(ctx context.Context, emp Employee) error
	Update(ctx context.Context, emp Employee) error
	Delete(ctx context.Context, employeeID string) error
	Ping(ctx context.Context) error
}
