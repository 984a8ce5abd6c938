package payroll

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	calcs map[string]SalaryCalculation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{calcs: map[string]SalaryCalculation{}}
}

func (s *MemoryStore) Save(_ context.Context, calcs ...SalaryCalculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, calc := range calcs {
		s.calcs[calc.ID] = calc
	}
	return nil
}

func (s *MemoryStore) ListByMonth(_ context.Context, month string) ([]SalaryCalculation, error) {
	return s.filter(func(c SalaryCalculation) bool { return c.Month == month }), nil
}

func (s *MemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]SalaryCalculation, error) {
	return s.filter(func(c SalaryCalculation) bool { return c.EmployeeID == employeeID }), nil
}

func (s *MemoryStore) DeleteByEmployee(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, calc := range s.calcs {
		if calc.EmployeeID == employeeID {
			delete(s.calcs, id)
		}
	}
	return nil
}

func (s *MemoryStore) filter(keep func(SalaryCalculation) bool) []SalaryCalculation {
	s.mu.RLock()
	out := []SalaryCalculation{}
	for _, calc := range s.calcs {
		if keep(calc) {
			out = append(out, calc)
		}
	}
	s.mu.RUnlock()
	sortCalculations(out)
	return out
}

// sortCalculations orders by month, then employee name, then id.
func sortCalculations(calcs []SalaryCalculation) {
	sort.Slice(calcs, func(i, j int) bool {
		a, b := calcs[i], calcs[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.ID < b.ID
	})
}
