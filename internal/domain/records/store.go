package records

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/domain/core"
)

// PGStore keeps each record's full JSON shape in a JSONB column.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Create(ctx context.Context, rec core.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO employee_records (id, employee_id, type, date, payload)
    VALUES ($1, $2, $3, $4, $5)
  `, rec.ID, rec.EmployeeID, string(rec.Type()), rec.Date, payload)
	return err
}

func (s *PGStore) ListByEmployee(ctx context.Context, employeeID string) ([]core.Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT payload FROM employee_records
    WHERE employee_id = $1
    ORDER BY date, id
  `, employeeID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *PGStore) ListByType(ctx context.Context, recordType core.RecordType) ([]core.Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT payload FROM employee_records
    WHERE type = $1
    ORDER BY date, id
  `, string(recordType))
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (s *PGStore) DeleteByEmployee(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employee_records WHERE employee_id = $1", employeeID)
	return err
}

func collect(rows pgx.Rows) ([]core.Record, error) {
	defer rows.Close()
	out := []core.Record{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rec core.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
