package payroll

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps calculation snapshots as JSONB keyed by calculation id.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) Save(ctx context.Context, calcs ...SalaryCalculation) error {
	if len(calcs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, calc := range calcs {
		payload, err := json.Marshal(calc)
		if err != nil {
			return err
		}
		batch.Queue(`
      INSERT INTO salary_calculations (id, employee_id, month, payload, calculated_at)
      VALUES ($1, $2, $3, $4, $5)
      ON CONFLICT (id) DO UPDATE
      SET payload = EXCLUDED.payload, calculated_at = EXCLUDED.calculated_at
    `, calc.ID, calc.EmployeeID, calc.Month, payload, calc.CalculatedAt)
	}
	return s.DB.SendBatch(ctx, batch).Close()
}

func (s *PGStore) ListByMonth(ctx context.Context, month string) ([]SalaryCalculation, error) {
	return s.query(ctx, "SELECT payload FROM salary_calculations WHERE month = $1", month)
}

func (s *PGStore) ListByEmployee(ctx context.Context, employeeID string) ([]SalaryCalculation, error) {
	return s.query(ctx, "SELECT payload FROM salary_calculations WHERE employee_id = $1", employeeID)
}

func (s *PGStore) DeleteByEmployee(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM salary_calculations WHERE employee_id = $1", employeeID)
	return err
}

func (s *PGStore) query(ctx context.Context, sql string, arg any) ([]SalaryCalculation, error) {
	rows, err := s.DB.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SalaryCalculation{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var calc SalaryCalculation
		if err := json.Unmarshal(payload, &calc); err != nil {
			return nil, err
		}
		out = append(out, calc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortCalculations(out)
	return out, nil
}
