package records

import (
	"context"
	"sort"
	"sync"

	"hrpay/internal/domain/core"
)

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]core.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]core.Record{}}
}

func (s *MemoryStore) Create(_ context.Context, rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *MemoryStore) ListByEmployee(_ context.Context, employeeID string) ([]core.Record, error) {
	return s.filter(func(rec core.Record) bool { return rec.EmployeeID == employeeID }), nil
}

func (s *MemoryStore) ListByType(_ context.Context, recordType core.RecordType) ([]core.Record, error) {
	return s.filter(func(rec core.Record) bool { return rec.Type() == recordType }), nil
}

func (s *MemoryStore) DeleteByEmployee(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.records {
		if rec.EmployeeID == employeeID {
			delete(s.records, id)
		}
	}
	return nil
}

func (s *MemoryStore) filter(keep func(core.Record) bool) []core.Record {
	s.mu.RLock()
	out := []core.Record{}
	for _, rec := range s.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()
	sortRecords(out)
	return out
}

func sortRecords(recs []core.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Date != recs[j].Date {
			return recs[i].Date < recs[j].Date
		}
		return recs[i].ID < recs[j].ID
	})
}
