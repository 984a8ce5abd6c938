package core

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps employees in process memory. It is the default store when
// no database is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	employees map[string]Employee
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{employees: map[string]Employee{}}
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees), nil
}

func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	all, _ := s.All(ctx)
	if offset >= len(all) {
		return []Employee{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (s *MemoryStore) All(_ context.Context) ([]Employee, error) {
	s.mu.RLock()
	out := make([]Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		out = append(out, emp)
	}
	s.mu.RUnlock()
	sortEmployees(out)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, employeeID string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[employeeID]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return &emp, nil
}

func (s *MemoryStore) ExistsByPINFL(_ context.Context, pinfl, exceptID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, emp := range s.employees {
		if id != exceptID && emp.PINFL == pinfl {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Create(_ context.Context, emp Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
	return nil
}

func (s *MemoryStore) Update(_ context.Context, emp Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[emp.ID]; !ok {
		return ErrEmployeeNotFound
	}
	s.employees[emp.ID] = emp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[employeeID]; !ok {
		return ErrEmployeeNotFound
	}
	delete(s.employees, employeeID)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func sortEmployees(emps []Employee) {
	sort.Slice(emps, func(i, j int) bool {
		if emps[i].Name == emps[j].Name {
			return emps[i].ID < emps[j].ID
		}
		return emps[i].Name < emps[j].Name
	})
}
