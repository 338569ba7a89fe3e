package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail    = "demo@finchbooks.com"
	demoPassword = "Password123!"
)

// Seed creates the demo login and its company so a fresh database is usable
// immediately. It runs on every boot and bails out once the user exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, demoEmail,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking demo user: %w", err)
	}

	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name)
		 VALUES ($1, $2, 'Demo', 'User')
		 RETURNING id`,
		demoEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	var companyID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`INSERT INTO companies (company_name, legal_name, company_type, industry, currency, language)
		 VALUES ('Demo Company', 'Demo Company LLC', 'llc', 'services', 'USD', 'en-US')
		 RETURNING id`,
	).Scan(&companyID)
	if err != nil {
		return fmt.Errorf("seeding demo company: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO company_memberships (company_id, user_id, role) VALUES ($1, $2, 'owner')`,
		companyID, userID,
	)
	if err != nil {
		return fmt.Errorf("seeding demo membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	return nil
}
