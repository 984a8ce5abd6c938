package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionImport    = "import"
	ActionCalculate = "calculate"

	EntityEmployee = "employee"
	EntityRecord   = "record"
	EntitySalary   = "salary"
)

type Event struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Details    json.RawMessage `json:"details,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EntityID   string
}

func (f Filter) matches(evt Event) bool {
	if f.Action != "" && evt.Action != f.Action {
		return false
	}
	if f.EntityType != "" && evt.EntityType != f.EntityType {
		return false
	}
	if f.EntityID != "" && evt.EntityID != f.EntityID {
		return false
	}
	return true
}

type StoreAPI interface {
	Insert(ctx context.Context, evt Event) error
	Count(ctx context.Context, filter Filter) (int, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error)
}

type Service struct {
	store StoreAPI

	Now func() time.Time
}

func New(store StoreAPI) *Service {
	return &Service{store: store, Now: func() time.Time { return time.Now().UTC() }}
}

// Record stores evt with a fresh id and timestamp. details, when non-nil, is
// kept as JSON next to the event.
func (s *Service) Record(ctx context.Context, evt Event, details any) error {
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("audit details: %w", err)
		}
		evt.Details = payload
	}
	evt.ID = uuid.NewString()
	evt.CreatedAt = s.Now()
	return s.store.Insert(ctx, evt)
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	return s.store.Count(ctx, filter)
}

// List returns matching events newest first. Details are dropped unless
// includeDetails is set.
func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	events, err := s.store.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if !includeDetails {
		for i := range events {
			events[i].Details = nil
		}
	}
	return events, nil
}
