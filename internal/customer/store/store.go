// Package store persists customers in Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/customer"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const customerColumns = `
	id, company_id, customer_name, customer_type, first_name, last_name,
	company_name, email, phone, address_line1, address_line2, city, state,
	zip_code, country, version, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*customer.Customer, error) {
	var (
		c       customer.Customer
		typeStr string
	)

	if err := s.Scan(
		&c.ID, &c.CompanyID, &c.CustomerName, &typeStr, &c.FirstName, &c.LastName,
		&c.CompanyName, &c.Email, &c.Phone, &c.AddressLine1, &c.AddressLine2, &c.City, &c.State,
		&c.ZipCode, &c.Country, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.CustomerType = customer.Type(typeStr)

	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (
			company_id, customer_name, customer_type, first_name, last_name,
			company_name, email, phone, address_line1, address_line2, city, state,
			zip_code, country
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.CompanyID, c.CustomerName, string(c.CustomerType), c.FirstName, c.LastName,
		c.CompanyName, c.Email, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.State,
		c.ZipCode, c.Country,
	).Scan(&c.ID, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("customer", id.String())
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

var sortColumns = map[string]string{
	"customer_name": "customer_name",
	"created_at":    "created_at",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*customer.Customer, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE company_id = $1 AND status = 'active'`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers
		WHERE company_id = $1 AND status = 'active'
		ORDER BY %s LIMIT $2 OFFSET $3`,
		customerColumns, page.OrderBy(sortColumns, "customer_name"))

	rows, err := s.db.QueryContext(ctx, query, companyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, total, nil
}

func (s *Store) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET customer_name = $1, customer_type = $2, first_name = $3, last_name = $4,
			company_name = $5, email = $6, phone = $7, address_line1 = $8,
			address_line2 = $9, city = $10, state = $11, zip_code = $12, country = $13,
			version = version + 1, updated_at = NOW()
		WHERE id = $14 AND company_id = $15 AND version = $16 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		c.CustomerName, string(c.CustomerType), c.FirstName, c.LastName,
		c.CompanyName, c.Email, c.Phone, c.AddressLine1,
		c.AddressLine2, c.City, c.State, c.ZipCode, c.Country,
		c.ID, c.CompanyID, c.Version)
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("customer was modified concurrently")
	}

	c.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE customers
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("customer", id.String())
	}

	return nil
}
