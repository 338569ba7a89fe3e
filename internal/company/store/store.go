// Package store persists companies, memberships, and settings in Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/company"
	"github.com/finchbooks/finch/internal/errs"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const companyColumns = `
	id, company_name, legal_name, company_type, industry,
	address_line1, address_line2, city, state, zip_code, country,
	phone, email, website, fiscal_year_start, tax_year_start,
	currency, language, version, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(s scanner) (*company.Company, error) {
	var c company.Company

	if err := s.Scan(
		&c.ID, &c.CompanyName, &c.LegalName, &c.CompanyType, &c.Industry,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.ZipCode, &c.Country,
		&c.Phone, &c.Email, &c.Website, &c.FiscalYearStart, &c.TaxYearStart,
		&c.Currency, &c.Language, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

// Create inserts the company and the owner's membership in one transaction
// so a company can never exist without at least one member.
func (s *Store) Create(ctx context.Context, c *company.Company, ownerID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning create: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO companies (
			company_name, legal_name, company_type, industry,
			address_line1, address_line2, city, state, zip_code, country,
			phone, email, website, fiscal_year_start, tax_year_start,
			currency, language
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, version, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		c.CompanyName, c.LegalName, c.CompanyType, c.Industry,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.ZipCode, c.Country,
		c.Phone, c.Email, c.Website, c.FiscalYearStart, c.TaxYearStart,
		c.Currency, c.Language,
	).Scan(&c.ID, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating company: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO company_memberships (company_id, user_id, role) VALUES ($1, $2, 'owner')`,
		c.ID, ownerID)
	if err != nil {
		return fmt.Errorf("creating owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing create: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	query := `SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1 AND status = 'active'`

	c, err := scanCompany(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("company", id.String())
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	return c, nil
}

func (s *Store) ListForUser(ctx context.Context, userID uuid.UUID) ([]*company.Company, error) {
	query := `SELECT ` + companyColumns + `
		FROM companies
		WHERE status = 'active' AND id IN (
			SELECT company_id FROM company_memberships WHERE user_id = $1
		)
		ORDER BY company_name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*company.Company

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		companies = append(companies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}

	return companies, nil
}

func (s *Store) Update(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET company_name = $1, legal_name = $2, company_type = $3, industry = $4,
			address_line1 = $5, address_line2 = $6, city = $7, state = $8,
			zip_code = $9, country = $10, phone = $11, email = $12, website = $13,
			fiscal_year_start = $14, tax_year_start = $15, currency = $16,
			language = $17, version = version + 1, updated_at = NOW()
		WHERE id = $18 AND version = $19 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		c.CompanyName, c.LegalName, c.CompanyType, c.Industry,
		c.AddressLine1, c.AddressLine2, c.City, c.State,
		c.ZipCode, c.Country, c.Phone, c.Email, c.Website,
		c.FiscalYearStart, c.TaxYearStart, c.Currency,
		c.Language, c.ID, c.Version)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("company was modified concurrently")
	}

	c.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE companies
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("company", id.String())
	}

	return nil
}

func (s *Store) Settings(ctx context.Context, companyID uuid.UUID) ([]company.Setting, error) {
	query := `
		SELECT category, key, value
		FROM company_settings
		WHERE company_id = $1
		ORDER BY category ASC, key ASC
	`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	defer rows.Close()

	var settings []company.Setting

	for rows.Next() {
		var setting company.Setting
		if err := rows.Scan(&setting.Category, &setting.Key, &setting.Value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}

		settings = append(settings, setting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}

	return settings, nil
}

func (s *Store) PutSettings(ctx context.Context, companyID uuid.UUID, settings []company.Setting) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning settings save: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO company_settings (company_id, category, key, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, category, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	for _, setting := range settings {
		if _, err := tx.ExecContext(ctx, query, companyID, setting.Category, setting.Key, setting.Value); err != nil {
			return fmt.Errorf("saving setting %s.%s: %w", setting.Category, setting.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settings save: %w", err)
	}

	return nil
}
