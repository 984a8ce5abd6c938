package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DeleteHook removes data owned by an employee before the employee itself is
// deleted.
type DeleteHook func(ctx context.Context, employeeID string) error

type Service struct {
	store         StoreAPI
	socialTaxRate float64
	inpsTaxRate   float64
	onDelete      []DeleteHook

	Now func() time.Time
}

func NewService(store StoreAPI, socialTaxRate, inpsTaxRate float64) *Service {
	return &Service{
		store:         store,
		socialTaxRate: socialTaxRate,
		inpsTaxRate:   inpsTaxRate,
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) OnDelete(hook DeleteHook) {
	s.onDelete = append(s.onDelete, hook)
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *Service) All(ctx context.Context) ([]Employee, error) {
	return s.store.All(ctx)
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	emp, err := s.store.Get(ctx, employeeID)
	if err != nil {
		return Employee{}, err
	}
	return *emp, nil
}

func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	emp, err := s.prepare(ctx, emp, "")
	if err != nil {
		return Employee{}, err
	}
	emp.ID = uuid.NewString()
	if err := s.store.Create(ctx, emp); err != nil {
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	log.Info().Str("employee_id", emp.ID).Str("pinfl", MaskIdentity(emp).PINFL).Msg("employee created")
	return emp, nil
}

// Update replaces every field of an existing employee. The id in the payload is
// ignored.
func (s *Service) Update(ctx context.Context, employeeID string, emp Employee) (Employee, error) {
	if _, err := s.store.Get(ctx, employeeID); err != nil {
		return Employee{}, err
	}
	emp, err := s.prepare(ctx, emp, employeeID)
	if err != nil {
		return Employee{}, err
	}
	emp.ID = employeeID
	if err := s.store.Update(ctx, emp); err != nil {
		return Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return emp, nil
}

// Delete removes the employee together with everything registered through
// OnDelete.
func (s *Service) Delete(ctx context.Context, employeeID string) error {
	if _, err := s.store.Get(ctx, employeeID); err != nil {
		return err
	}
	for _, hook := range s.onDelete {
		if err := hook(ctx, employeeID); err != nil {
			return fmt.Errorf("delete employee data: %w", err)
		}
	}
	if err := s.store.Delete(ctx, employeeID); err != nil {
		return err
	}
	log.Info().Str("employee_id", employeeID).Msg("employee deleted")
	return nil
}

type ImportRow struct {
	Line     int
	Employee Employee
	Issues   []Issue
}

type ImportResult struct {
	Line       int     `json:"line"`
	Name       string  `json:"name"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Created    bool    `json:"created"`
	Issues     []Issue `json:"issues,omitempty"`
}

// ImportMany creates each row independently. A rejected row does not stop the
// rest of the import.
func (s *Service) ImportMany(ctx context.Context, rows []ImportRow) ([]ImportResult, error) {
	results := make([]ImportResult, 0, len(rows))
	created := 0
	for _, row := range rows {
		result := ImportResult{Line: row.Line, Name: row.Employee.Name}
		if len(row.Issues) > 0 {
			result.Issues = row.Issues
			results = append(results, result)
			continue
		}
		emp, err := s.Create(ctx, row.Employee)
		var verr *ValidationError
		switch {
		case err == nil:
			result.EmployeeID = emp.ID
			result.Created = true
			created++
		case errors.As(err, &verr):
			result.Issues = verr.Issues
		case errors.Is(err, ErrEmployeeExists):
			result.Issues = []Issue{{Field: "pinfl", Reason: "already exists"}}
		default:
			return nil, err
		}
		results = append(results, result)
	}
	log.Info().Int("rows", len(rows)).Int("created", created).Msg("employee import finished")
	return results, nil
}

func (s *Service) prepare(ctx context.Context, emp Employee, exceptID string) (Employee, error) {
	emp = NormalizeEmployee(emp)
	emp.SocialTaxRate = s.socialTaxRate
	emp.INPSTaxRate = s.inpsTaxRate
	if issues := ValidateEmployee(emp, s.Now()); len(issues) > 0 {
		return Employee{}, &ValidationError{Issues: issues}
	}
	exists, err := s.store.ExistsByPINFL(ctx, emp.PINFL, exceptID)
	if err != nil {
		return Employee{}, err
	}
	if exists {
		return Employee{}, ErrEmployeeExists
	}
	return emp, nil
}
