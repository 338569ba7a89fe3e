// Package store persists the chart of accounts in Postgres. Merge runs the
// reference redirect and the source soft-delete inside one database
// transaction; both accounts are locked first, in id order, so concurrent
// merges touching the same pair cannot deadlock.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/account"
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

const accountColumns = `
	id, company_id, account_name, account_type, account_number, description,
	opening_balance, current_balance, parent_account_id, version, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*account.Account, error) {
	var (
		a       account.Account
		typeStr string
	)

	if err := s.Scan(
		&a.ID, &a.CompanyID, &a.AccountName, &typeStr, &a.AccountNumber, &a.Description,
		&a.OpeningBalance, &a.CurrentBalance, &a.ParentAccountID, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.AccountType = account.Type(typeStr)

	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (
			company_id, account_name, account_type, account_number, description,
			opening_balance, current_balance, parent_account_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.CompanyID,
		a.AccountName,
		string(a.AccountType),
		a.AccountNumber,
		a.Description,
		ledger.RoundMoney(a.OpeningBalance),
		ledger.RoundMoney(a.CurrentBalance),
		a.ParentAccountID,
	).Scan(&a.ID, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("account", id.String())
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

var sortColumns = map[string]string{
	"account_name":   "account_name",
	"account_type":   "account_type",
	"account_number": "account_number",
	"created_at":     "created_at",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, filter account.ListFilter, page pagination.Params) ([]*account.Account, int, error) {
	where := `company_id = $1 AND status = 'active'`
	args := []any{companyID}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		where += fmt.Sprintf(" AND account_type = $%d", len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE `+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting accounts: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		accountColumns, where, page.OrderBy(sortColumns, "account_name"), len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating accounts: %w", err)
	}

	return accounts, total, nil
}

func (s *Store) Update(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET account_name = $1, account_number = $2, description = $3,
			version = version + 1, updated_at = NOW()
		WHERE id = $4 AND company_id = $5 AND version = $6 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		a.AccountName, a.AccountNumber, a.Description,
		a.ID, a.CompanyID, a.Version)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("account was modified concurrently")
	}

	a.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE accounts
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("account", id.String())
	}

	return nil
}

// Merge redirects transaction lines, child accounts, and payment deposit
// references from the source account to the target, then soft-deletes the
// source. Everything happens in one transaction or not at all.
func (s *Store) Merge(ctx context.Context, companyID, sourceID, targetID, mergedBy uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning merge: %w", err)
	}
	defer tx.Rollback()

	first, second := sourceID, targetID
	if bytes.Compare(targetID[:], sourceID[:]) < 0 {
		first, second = targetID, sourceID
	}

	for _, id := range []uuid.UUID{first, second} {
		if err := lockAccount(ctx, tx, companyID, id); err != nil {
			return err
		}
	}

	redirects := []struct {
		desc  string
		query string
	}{
		{"transaction lines", `
			UPDATE transaction_lines SET account_id = $1
			WHERE account_id = $2 AND transaction_id IN (
				SELECT id FROM transactions WHERE company_id = $3
			)`},
		{"child accounts", `
			UPDATE accounts SET parent_account_id = $1
			WHERE parent_account_id = $2 AND company_id = $3`},
		{"payment deposits", `
			UPDATE payments SET deposit_to_account_id = $1
			WHERE deposit_to_account_id = $2 AND company_id = $3`},
	}

	for _, r := range redirects {
		if _, err := tx.ExecContext(ctx, r.query, targetID, sourceID, companyID); err != nil {
			return fmt.Errorf("redirecting %s: %w", r.desc, err)
		}
	}

	deleteQuery := `
		UPDATE accounts
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	if _, err := tx.ExecContext(ctx, deleteQuery, mergedBy, sourceID, companyID); err != nil {
		return fmt.Errorf("deleting source account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing merge: %w", err)
	}

	return nil
}

func lockAccount(ctx context.Context, tx *sql.Tx, companyID, id uuid.UUID) error {
	var locked uuid.UUID

	err := tx.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE id = $1 AND company_id = $2 AND status = 'active' FOR UPDATE`,
		id, companyID,
	).Scan(&locked)
	if err != nil {
		if err == sql.ErrNoRows {
			return errs.NotFound("account", id.String())
		}

		return fmt.Errorf("locking account: %w", err)
	}

	return nil
}
