// Package store persists payments and their applications in Postgres. All
// writes for one payment run inside a single database transaction so a
// payment row can never exist without its balance updates, or vice versa.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/ledger"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/payment"
	"github.com/finchbooks/finch/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const paymentColumns = `
	id, company_id, customer_id, payment_date, payment_type, payment_method,
	reference_number, amount_received, deposit_to_account_id, memo, created_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	if err := s.Scan(
		&p.ID, &p.CompanyID, &p.CustomerID, &p.PaymentDate, &p.PaymentType, &p.PaymentMethod,
		&p.ReferenceNumber, &p.AmountReceived, &p.DepositToAccountID, &p.Memo, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("payment", id.String())
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	if p.Applications, err = s.loadApplications(ctx, p.ID); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Store) loadApplications(ctx context.Context, paymentID uuid.UUID) ([]payment.Application, error) {
	query := `
		SELECT transaction_id, amount_applied, discount_taken
		FROM payment_applications
		WHERE payment_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("loading payment applications: %w", err)
	}
	defer rows.Close()

	var applications []payment.Application

	for rows.Next() {
		var a payment.Application
		if err := rows.Scan(&a.TransactionID, &a.AmountApplied, &a.DiscountTaken); err != nil {
			return nil, fmt.Errorf("scanning payment application: %w", err)
		}

		applications = append(applications, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment applications: %w", err)
	}

	return applications, nil
}

var sortColumns = map[string]string{
	"payment_date":    "payment_date",
	"amount_received": "amount_received",
	"created_at":      "created_at",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*payment.Payment, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE company_id = $1 AND status = 'active'`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting payments: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM payments
		WHERE company_id = $1 AND status = 'active'
		ORDER BY %s LIMIT $2 OFFSET $3`,
		paymentColumns, page.OrderBy(sortColumns, "payment_date"))

	rows, err := s.db.QueryContext(ctx, query, companyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating payments: %w", err)
	}

	for _, p := range payments {
		if p.Applications, err = s.loadApplications(ctx, p.ID); err != nil {
			return nil, 0, err
		}
	}

	return payments, total, nil
}

type paymentTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (payment.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: dbTx}, nil
}

func (t *paymentTx) Commit() error   { return t.tx.Commit() }
func (t *paymentTx) Rollback() error { return t.tx.Rollback() }

// LockTarget loads the lifecycle columns of a target document under FOR
// UPDATE. Lines and header details stay unloaded; balance math needs neither.
func (t *paymentTx) LockTarget(ctx context.Context, companyID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT id, company_id, transaction_type, total_amount, balance_due,
			is_posted, is_void, version
		FROM transactions
		WHERE id = $1 AND company_id = $2 AND status = 'active'
		FOR UPDATE
	`

	var (
		tx      transaction.Transaction
		typeStr string
	)

	err := t.tx.QueryRowContext(ctx, query, id, companyID).Scan(
		&tx.ID, &tx.CompanyID, &typeStr, &tx.TotalAmount, &tx.BalanceDue,
		&tx.IsPosted, &tx.IsVoid, &tx.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("transaction", id.String())
		}

		return nil, fmt.Errorf("locking payment target: %w", err)
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

func (t *paymentTx) SaveBalance(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET balance_due = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND version = $4
	`

	res, err := t.tx.ExecContext(ctx, query,
		ledger.RoundMoney(tx.BalanceDue), tx.ID, tx.CompanyID, tx.Version)
	if err != nil {
		return fmt.Errorf("saving balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving balance: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("transaction was modified concurrently")
	}

	tx.Version++

	return nil
}

func (t *paymentTx) CreatePayment(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (
			company_id, customer_id, payment_date, payment_type, payment_method,
			reference_number, amount_received, deposit_to_account_id, memo, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		p.CompanyID,
		p.CustomerID,
		p.PaymentDate,
		p.PaymentType,
		p.PaymentMethod,
		p.ReferenceNumber,
		ledger.RoundMoney(p.AmountReceived),
		p.DepositToAccountID,
		p.Memo,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	applicationQuery := `
		INSERT INTO payment_applications (payment_id, transaction_id, position, amount_applied, discount_taken)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i, a := range p.Applications {
		_, err := t.tx.ExecContext(ctx, applicationQuery,
			p.ID,
			a.TransactionID,
			i+1,
			ledger.RoundMoney(a.AmountApplied),
			ledger.RoundMoney(a.DiscountTaken),
		)
		if err != nil {
			return fmt.Errorf("creating payment application %d: %w", i+1, err)
		}
	}

	return nil
}
