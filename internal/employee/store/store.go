// Package store persists employees in Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/employee"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/ledger"
	"github.com/finchbooks/finch/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const employeeColumns = `
	id, company_id, first_name, last_name, email, phone,
	address_line1, address_line2, city, state, zip_code,
	hire_date, pay_type, hourly_rate, annual_salary,
	version, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(s scanner) (*employee.Employee, error) {
	var (
		e       employee.Employee
		payType string
	)

	if err := s.Scan(
		&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.AddressLine1, &e.AddressLine2, &e.City, &e.State, &e.ZipCode,
		&e.HireDate, &payType, &e.HourlyRate, &e.AnnualSalary,
		&e.Version, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.PayType = employee.PayType(payType)

	return &e, nil
}

func (s *Store) Create(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (
			company_id, first_name, last_name, email, phone,
			address_line1, address_line2, city, state, zip_code,
			hire_date, pay_type, hourly_rate, annual_salary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.CompanyID, e.FirstName, e.LastName, e.Email, e.Phone,
		e.AddressLine1, e.AddressLine2, e.City, e.State, e.ZipCode,
		e.HireDate, string(e.PayType),
		ledger.RoundMoney(e.HourlyRate), ledger.RoundMoney(e.AnnualSalary),
	).Scan(&e.ID, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating employee: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	e, err := scanEmployee(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("employee", id.String())
		}

		return nil, fmt.Errorf("getting employee: %w", err)
	}

	return e, nil
}

var sortColumns = map[string]string{
	"last_name":  "last_name",
	"first_name": "first_name",
	"hire_date":  "hire_date",
	"created_at": "created_at",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*employee.Employee, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees WHERE company_id = $1 AND status = 'active'`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employees
		WHERE company_id = $1 AND status = 'active'
		ORDER BY %s LIMIT $2 OFFSET $3`,
		employeeColumns, page.OrderBy(sortColumns, "last_name"))

	rows, err := s.db.QueryContext(ctx, query, companyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*employee.Employee

	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning employee: %w", err)
		}

		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating employees: %w", err)
	}

	return employees, total, nil
}

func (s *Store) Update(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
			address_line1 = $5, address_line2 = $6, city = $7, state = $8,
			zip_code = $9, hire_date = $10, pay_type = $11, hourly_rate = $12,
			annual_salary = $13, version = version + 1, updated_at = NOW()
		WHERE id = $14 AND company_id = $15 AND version = $16 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		e.FirstName, e.LastName, e.Email, e.Phone,
		e.AddressLine1, e.AddressLine2, e.City, e.State,
		e.ZipCode, e.HireDate, string(e.PayType),
		ledger.RoundMoney(e.HourlyRate), ledger.RoundMoney(e.AnnualSalary),
		e.ID, e.CompanyID, e.Version)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("employee was modified concurrently")
	}

	e.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE employees
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("employee", id.String())
	}

	return nil
}
