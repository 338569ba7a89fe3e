// Package store persists vendors in Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/vendorpkg"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const vendorColumns = `
	id, company_id, vendor_name, vendor_type, company_name, contact_person,
	email, phone, address_line1, address_line2, city, state, zip_code, country,
	eligible_1099, version, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanVendor(s scanner) (*vendor.Vendor, error) {
	var v vendor.Vendor

	if err := s.Scan(
		&v.ID, &v.CompanyID, &v.VendorName, &v.VendorType, &v.CompanyName, &v.ContactPerson,
		&v.Email, &v.Phone, &v.AddressLine1, &v.AddressLine2, &v.City, &v.State, &v.ZipCode, &v.Country,
		&v.Eligible1099, &v.Version, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &v, nil
}

func (s *Store) Create(ctx context.Context, v *vendor.Vendor) error {
	query := `
		INSERT INTO vendors (
			company_id, vendor_name, vendor_type, company_name, contact_person,
			email, phone, address_line1, address_line2, city, state, zip_code,
			country, eligible_1099
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		v.CompanyID, v.VendorName, v.VendorType, v.CompanyName, v.ContactPerson,
		v.Email, v.Phone, v.AddressLine1, v.AddressLine2, v.City, v.State, v.ZipCode,
		v.Country, v.Eligible1099,
	).Scan(&v.ID, &v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating vendor: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*vendor.Vendor, error) {
	query := `SELECT ` + vendorColumns + `
		FROM vendors
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	v, err := scanVendor(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("vendor", id.String())
		}

		return nil, fmt.Errorf("getting vendor: %w", err)
	}

	return v, nil
}

var sortColumns = map[string]string{
	"vendor_name": "vendor_name",
	"created_at":  "created_at",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*vendor.Vendor, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vendors WHERE company_id = $1 AND status = 'active'`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting vendors: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM vendors
		WHERE company_id = $1 AND status = 'active'
		ORDER BY %s LIMIT $2 OFFSET $3`,
		vendorColumns, page.OrderBy(sortColumns, "vendor_name"))

	rows, err := s.db.QueryContext(ctx, query, companyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*vendor.Vendor

	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning vendor: %w", err)
		}

		vendors = append(vendors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating vendors: %w", err)
	}

	return vendors, total, nil
}

func (s *Store) Update(ctx context.Context, v *vendor.Vendor) error {
	query := `
		UPDATE vendors
		SET vendor_name = $1, vendor_type = $2, company_name = $3, contact_person = $4,
			email = $5, phone = $6, address_line1 = $7, address_line2 = $8, city = $9,
			state = $10, zip_code = $11, country = $12, eligible_1099 = $13,
			version = version + 1, updated_at = NOW()
		WHERE id = $14 AND company_id = $15 AND version = $16 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		v.VendorName, v.VendorType, v.CompanyName, v.ContactPerson,
		v.Email, v.Phone, v.AddressLine1, v.AddressLine2, v.City,
		v.State, v.ZipCode, v.Country, v.Eligible1099,
		v.ID, v.CompanyID, v.Version)
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("vendor was modified concurrently")
	}

	v.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE vendors
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("vendor", id.String())
	}

	return nil
}
