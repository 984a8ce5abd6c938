package audit

import (
	"context"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// ExportLimit caps the number of events written by an export.
const ExportLimit = 10000

type exportRow struct {
	ID         string `csv:"id"`
	Action     string `csv:"action"`
	EntityType string `csv:"entity_type"`
	EntityID   string `csv:"entity_id"`
	RequestID  string `csv:"request_id"`
	IP         string `csv:"ip"`
	CreatedAt  string `csv:"created_at"`
}

// Export returns up to ExportLimit matching events, newest first, without
// details.
func (s *Service) Export(ctx context.Context, filter Filter) ([]Event, error) {
	return s.List(ctx, filter, false, ExportLimit, 0)
}

func WriteCSV(w io.Writer, events []Event) error {
	rows := make([]exportRow, 0, len(events))
	for _, evt := range events {
		rows = append(rows, exportRow{
			ID:         evt.ID,
			Action:     evt.Action,
			EntityType: evt.EntityType,
			EntityID:   evt.EntityID,
			RequestID:  evt.RequestID,
			IP:         evt.IP,
			CreatedAt:  evt.CreatedAt.Format(time.RFC3339),
		})
	}
	return gocsv.Marshal(rows, w)
}
