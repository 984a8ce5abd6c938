package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "hrpay/internal/platform/crypto"
)

// PGStore persists employees in Postgres. PINFL and passport number are
// sealed with the crypto service when a key is configured; a SHA-256 digest of
// the PINFL backs the uniqueness check.
type PGStore struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewPGStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *PGStore {
	return &PGStore{DB: db, Crypto: crypto}
}

const employeeColumns = `
    id, name, position,
    COALESCE(pinfl, ''), pinfl_enc,
    passport_series,
    COALESCE(passport_number, ''), passport_number_enc,
    to_char(date_of_birth, 'YYYY-MM-DD'),
    payment_type, payment_frequency, rate,
    to_char(start_date, 'YYYY-MM-DD'),
    tax_rate, social_tax_rate, inps_tax_rate, agreement`

func (s *PGStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PGStore) List(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+employeeColumns+`
    FROM employees
    ORDER BY name, id
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

func (s *PGStore) All(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+employeeColumns+`
    FROM employees
    ORDER BY name, id
  `)
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

func (s *PGStore) Get(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID)
	emp, err := s.scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *PGStore) ExistsByPINFL(ctx context.Context, pinfl, exceptID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employees WHERE pinfl_hash = $1 AND id <> $2
  `, pinflHash(pinfl), exceptID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *PGStore) Create(ctx context.Context, emp Employee) error {
	args, err := s.writeArgs(emp)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO employees (id, name, position, pinfl, pinfl_enc, pinfl_hash, passport_series,
      passport_number, passport_number_enc, date_of_birth, payment_type, payment_frequency, rate,
      start_date, tax_rate, social_tax_rate, inps_tax_rate, agreement)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
  `, args...)
	return mapWriteErr(err)
}

func (s *PGStore) Update(ctx context.Context, emp Employee) error {
	args, err := s.writeArgs(emp)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2, position = $3, pinfl = $4, pinfl_enc = $5, pinfl_hash = $6, passport_series = $7,
        passport_number = $8, passport_number_enc = $9, date_of_birth = $10, payment_type = $11,
        payment_frequency = $12, rate = $13, start_date = $14, tax_rate = $15, social_tax_rate = $16,
        inps_tax_rate = $17, agreement = $18, updated_at = now()
    WHERE id = $1
  `, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, employeeID string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.DB.Ping(ctx)
}

func (s *PGStore) writeArgs(emp Employee) ([]any, error) {
	agreementJSON, err := json.Marshal(emp.Agreement)
	if err != nil {
		return nil, err
	}
	var pinflPlain, passportPlain any = emp.PINFL, emp.PassportNumber
	var pinflEnc, passportEnc []byte
	if s.Crypto.Configured() {
		if pinflEnc, err = s.Crypto.EncryptString(emp.PINFL); err != nil {
			return nil, err
		}
		if passportEnc, err = s.Crypto.EncryptString(emp.PassportNumber); err != nil {
			return nil, err
		}
		pinflPlain, passportPlain = nil, nil
	}
	return []any{
		emp.ID, emp.Name, emp.Position, pinflPlain, pinflEnc, pinflHash(emp.PINFL), emp.PassportSeries,
		passportPlain, passportEnc, emp.DateOfBirth, string(emp.PaymentType), string(emp.PaymentFrequency), emp.Rate,
		emp.StartDate, emp.TaxRate, emp.SocialTaxRate, emp.INPSTaxRate, agreementJSON,
	}, nil
}

func (s *PGStore) collect(rows pgx.Rows) ([]Employee, error) {
	defer rows.Close()
	out := []Employee{}
	for rows.Next() {
		emp, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *PGStore) scan(row pgx.Row) (*Employee, error) {
	var emp Employee
	var pinflPlain, passportPlain string
	var pinflEnc, passportEnc, agreementJSON []byte
	var paymentType, paymentFrequency string
	if err := row.Scan(
		&emp.ID, &emp.Name, &emp.Position,
		&pinflPlain, &pinflEnc,
		&emp.PassportSeries,
		&passportPlain, &passportEnc,
		&emp.DateOfBirth,
		&paymentType, &paymentFrequency, &emp.Rate,
		&emp.StartDate,
		&emp.TaxRate, &emp.SocialTaxRate, &emp.INPSTaxRate, &agreementJSON,
	); err != nil {
		return nil, err
	}
	emp.PaymentType = PaymentType(paymentType)
	emp.PaymentFrequency = PaymentFrequency(paymentFrequency)
	if err := json.Unmarshal(agreementJSON, &emp.Agreement); err != nil {
		return nil, err
	}
	emp.PINFL = decryptStringFallback(s.Crypto, pinflEnc, pinflPlain)
	emp.PassportNumber = decryptStringFallback(s.Crypto, passportEnc, passportPlain)
	return &emp, nil
}

func decryptStringFallback(crypto *cryptoutil.Service, encrypted []byte, plain string) string {
	if !crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}

func pinflHash(pinfl string) string {
	sum := sha256.Sum256([]byte(pinfl))
	return hex.EncodeToString(sum[:])
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmployeeExists
	}
	return err
}
