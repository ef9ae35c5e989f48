package employee

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `id, full_name, national_id, designation, ctc::text, increment_per_month::text,
           resignation_date, created_at, updated_at`

// Upsert matches on (full_name, national_id). A match has its designation,
// pay and resignation date refreshed from the submission.
func (s *Store) Upsert(ctx context.Context, sub Submission) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO employees (full_name, national_id, designation, ctc, increment_per_month, resignation_date)
    VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6)
    ON CONFLICT (full_name, national_id) DO UPDATE
      SET designation = EXCLUDED.designation,
          ctc = EXCLUDED.ctc,
          increment_per_month = EXCLUDED.increment_per_month,
          resignation_date = EXCLUDED.resignation_date,
          updated_at = now()
    RETURNING `+employeeColumns,
		sub.FullName, sub.NationalID, sub.Designation,
		sub.AnnualCTC.String(), sub.IncrementPerMonth.String(), sub.ResignationDate,
	)
	return scanEmployee(row)
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return emp, err
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var ctc, increment string
	var resignation *time.Time
	if err := row.Scan(&emp.ID, &emp.FullName, &emp.NationalID, &emp.Designation, &ctc, &increment,
		&resignation, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return Employee{}, err
	}
	emp.AnnualCTC = decimalOrZero(ctc)
	emp.IncrementPerMonth = decimalOrZero(increment)
	emp.ResignationDate = resignation
	return emp, nil
}

func decimalOrZero(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
