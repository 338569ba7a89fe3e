// Package store persists transactions in Postgres. Lifecycle transitions run
// through lifecycleTx: a database transaction holding a FOR UPDATE row lock,
// with a version check on save as a second guard.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/ledger"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const transactionColumns = `
	id, company_id, transaction_type, reference_number, transaction_date, due_date,
	customer_id, vendor_id, memo, payment_terms, billing_address, shipping_address,
	subtotal, tax_amount, total_amount, balance_due,
	is_posted, posting_date, is_void, void_reason, version,
	created_at, updated_at, deleted_at, deleted_by
`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx          transaction.Transaction
		typeStr     string
		billingRaw  []byte
		shippingRaw []byte
	)

	if err := s.Scan(
		&tx.ID, &tx.CompanyID, &typeStr, &tx.ReferenceNumber, &tx.TransactionDate, &tx.DueDate,
		&tx.CustomerID, &tx.VendorID, &tx.Memo, &tx.PaymentTerms, &billingRaw, &shippingRaw,
		&tx.Subtotal, &tx.TaxAmount, &tx.TotalAmount, &tx.BalanceDue,
		&tx.IsPosted, &tx.PostingDate, &tx.IsVoid, &tx.VoidReason, &tx.Version,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt, &tx.DeletedBy,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	var err error
	if tx.BillingAddress, err = unmarshalAddress(billingRaw); err != nil {
		return nil, fmt.Errorf("decoding billing address: %w", err)
	}

	if tx.ShippingAddress, err = unmarshalAddress(shippingRaw); err != nil {
		return nil, fmt.Errorf("decoding shipping address: %w", err)
	}

	return &tx, nil
}

func marshalAddress(a *transaction.Address) ([]byte, error) {
	if a == nil {
		return nil, nil
	}

	return json.Marshal(a)
}

func unmarshalAddress(raw []byte) (*transaction.Address, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var a transaction.Address
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func (s *Store) Create(ctx context.Context, tx *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	billing, err := marshalAddress(tx.BillingAddress)
	if err != nil {
		return fmt.Errorf("encoding billing address: %w", err)
	}

	shipping, err := marshalAddress(tx.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encoding shipping address: %w", err)
	}

	query := `
		INSERT INTO transactions (
			company_id, transaction_type, reference_number, transaction_date, due_date,
			customer_id, vendor_id, memo, payment_terms, billing_address, shipping_address,
			subtotal, tax_amount, total_amount, balance_due, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id, version, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.CompanyID,
		tx.Type,
		tx.ReferenceNumber,
		tx.TransactionDate,
		tx.DueDate,
		tx.CustomerID,
		tx.VendorID,
		tx.Memo,
		tx.PaymentTerms,
		billing,
		shipping,
		ledger.RoundMoney(tx.Subtotal),
		ledger.RoundMoney(tx.TaxAmount),
		ledger.RoundMoney(tx.TotalAmount),
		ledger.RoundMoney(tx.BalanceDue),
	).Scan(&tx.ID, &tx.Version, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if err := insertLines(ctx, dbTx, tx.ID, tx.Lines); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing create: %w", err)
	}

	return nil
}

func insertLines(ctx context.Context, q dbtx, txID uuid.UUID, lines []transaction.Line) error {
	query := `
		INSERT INTO transaction_lines (
			transaction_id, line_number, line_type, item_id, account_id, description,
			quantity, unit_price, discount_amount, tax_rate, tax_amount, line_total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	for _, line := range lines {
		_, err := q.ExecContext(ctx, query,
			txID,
			line.LineNumber,
			line.LineType,
			line.ItemID,
			line.AccountID,
			line.Description,
			line.Quantity,
			ledger.RoundMoney(line.UnitPrice),
			ledger.RoundMoney(line.DiscountAmount),
			line.TaxRate,
			ledger.RoundMoney(line.TaxAmount),
			ledger.RoundMoney(line.LineTotal),
		)
		if err != nil {
			return fmt.Errorf("creating transaction line %d: %w", line.LineNumber, err)
		}
	}

	return nil
}

func loadLines(ctx context.Context, q dbtx, txID uuid.UUID) ([]transaction.Line, error) {
	query := `
		SELECT line_number, line_type, item_id, account_id, description,
			quantity, unit_price, discount_amount, tax_rate, tax_amount, line_total
		FROM transaction_lines
		WHERE transaction_id = $1
		ORDER BY line_number ASC
	`

	rows, err := q.QueryContext(ctx, query, txID)
	if err != nil {
		return nil, fmt.Errorf("loading transaction lines: %w", err)
	}
	defer rows.Close()

	var lines []transaction.Line

	for rows.Next() {
		var (
			line    transaction.Line
			typeStr string
		)

		if err := rows.Scan(
			&line.LineNumber, &typeStr, &line.ItemID, &line.AccountID, &line.Description,
			&line.Quantity, &line.UnitPrice, &line.DiscountAmount, &line.TaxRate, &line.TaxAmount, &line.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction line: %w", err)
		}

		line.LineType = transaction.LineType(typeStr)
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction lines: %w", err)
	}

	return lines, nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("transaction", id.String())
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	if tx.Lines, err = loadLines(ctx, s.db, tx.ID); err != nil {
		return nil, err
	}

	return tx, nil
}

var sortColumns = map[string]string{
	"transaction_date": "transaction_date",
	"due_date":         "due_date",
	"total_amount":     "total_amount",
	"balance_due":      "balance_due",
	"reference_number": "reference_number",
	"created_at":       "created_at",
}

func listConditions(companyID uuid.UUID, filter transaction.ListFilter) (string, []any) {
	where := `WHERE company_id = $1 AND status = 'active'`
	args := []any{companyID}
	argIdx := 2

	if filter.Type != nil {
		where += fmt.Sprintf(" AND transaction_type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.CustomerID != nil {
		where += fmt.Sprintf(" AND customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.VendorID != nil {
		where += fmt.Sprintf(" AND vendor_id = $%d", argIdx)

		args = append(args, *filter.VendorID)
		argIdx++
	}

	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND transaction_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND transaction_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil {
		switch *filter.Status {
		case transaction.StatusDraft:
			where += " AND NOT is_posted AND NOT is_void"
		case transaction.StatusPosted:
			where += " AND is_posted AND NOT is_void AND balance_due > 0"
		case transaction.StatusPaid:
			where += " AND is_posted AND NOT is_void AND balance_due = 0"
		case transaction.StatusVoid:
			where += " AND is_void"
		}
	}

	return where, args
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, filter transaction.ListFilter, page pagination.Params) ([]*transaction.Transaction, int, error) {
	where, args := listConditions(companyID, filter)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		transactionColumns, where, page.OrderBy(sortColumns, "transaction_date"), len(args)+1, len(args)+2)

	rows, err := s.db.QueryContext(ctx, query, append(args, page.PageSize, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transactions: %w", err)
	}

	for _, tx := range txs {
		if tx.Lines, err = loadLines(ctx, s.db, tx.ID); err != nil {
			return nil, 0, err
		}
	}

	return txs, total, nil
}

// Update rewrites a draft's header and lines. The version check rejects
// writes against a row that changed since it was loaded.
func (s *Store) Update(ctx context.Context, tx *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	billing, err := marshalAddress(tx.BillingAddress)
	if err != nil {
		return fmt.Errorf("encoding billing address: %w", err)
	}

	shipping, err := marshalAddress(tx.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encoding shipping address: %w", err)
	}

	query := `
		UPDATE transactions
		SET reference_number = $1, transaction_date = $2, due_date = $3, memo = $4,
			payment_terms = $5, billing_address = $6, shipping_address = $7,
			subtotal = $8, tax_amount = $9, total_amount = $10, balance_due = $11,
			version = version + 1, updated_at = NOW()
		WHERE id = $12 AND company_id = $13 AND version = $14 AND status = 'active'
	`

	res, err := dbTx.ExecContext(ctx, query,
		tx.ReferenceNumber,
		tx.TransactionDate,
		tx.DueDate,
		tx.Memo,
		tx.PaymentTerms,
		billing,
		shipping,
		ledger.RoundMoney(tx.Subtotal),
		ledger.RoundMoney(tx.TaxAmount),
		ledger.RoundMoney(tx.TotalAmount),
		ledger.RoundMoney(tx.BalanceDue),
		tx.ID,
		tx.CompanyID,
		tx.Version,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("transaction was modified concurrently")
	}

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transaction_lines WHERE transaction_id = $1`, tx.ID); err != nil {
		return fmt.Errorf("clearing transaction lines: %w", err)
	}

	if err := insertLines(ctx, dbTx, tx.ID, tx.Lines); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing update: %w", err)
	}

	tx.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE transactions
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("transaction", id.String())
	}

	return nil
}

func (s *Store) ListByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.listByParty(ctx, companyID, "customer_id", customerID)
}

func (s *Store) ListByVendor(ctx context.Context, companyID, vendorID uuid.UUID) ([]*transaction.Transaction, error) {
	return s.listByParty(ctx, companyID, "vendor_id", vendorID)
}

func (s *Store) listByParty(ctx context.Context, companyID uuid.UUID, column string, partyID uuid.UUID) ([]*transaction.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions
		WHERE company_id = $1 AND %s = $2 AND status = 'active'
		ORDER BY transaction_date DESC`, transactionColumns, column)

	rows, err := s.db.QueryContext(ctx, query, companyID, partyID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions by party: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// CustomerBalance sums balance_due over posted, non-void documents. Void
// documents carry a zero balance by construction, but the predicate excludes
// them anyway so the aggregation never depends on that invariant.
func (s *Store) CustomerBalance(ctx context.Context, companyID, customerID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(balance_due), 0)
		FROM transactions
		WHERE company_id = $1 AND customer_id = $2
			AND is_posted AND NOT is_void AND status = 'active'
	`

	var balance decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, companyID, customerID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("summing customer balance: %w", err)
	}

	return balance, nil
}

type lifecycleTx struct {
	tx        *sql.Tx
	companyID uuid.UUID
	id        uuid.UUID
}

func (s *Store) BeginLifecycle(ctx context.Context, companyID, id uuid.UUID) (transaction.LifecycleTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning lifecycle tx: %w", err)
	}

	return &lifecycleTx{tx: dbTx, companyID: companyID, id: id}, nil
}

func (l *lifecycleTx) Commit() error   { return l.tx.Commit() }
func (l *lifecycleTx) Rollback() error { return l.tx.Rollback() }

// Get loads the document under FOR UPDATE, blocking concurrent transitions
// on the same row until this one commits or rolls back.
func (l *lifecycleTx) Get(ctx context.Context) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND company_id = $2 AND status = 'active'
		FOR UPDATE`

	tx, err := scanTransaction(l.tx.QueryRowContext(ctx, query, l.id, l.companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("transaction", l.id.String())
		}

		return nil, fmt.Errorf("locking transaction: %w", err)
	}

	if tx.Lines, err = loadLines(ctx, l.tx, tx.ID); err != nil {
		return nil, err
	}

	return tx, nil
}

// Save writes the lifecycle columns back. The row is already locked; the
// version predicate is the optimistic fallback should a caller ever save
// without having locked first.
func (l *lifecycleTx) Save(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET is_posted = $1, posting_date = $2, is_void = $3, void_reason = $4,
			balance_due = $5, version = version + 1, updated_at = NOW()
		WHERE id = $6 AND company_id = $7 AND version = $8
	`

	res, err := l.tx.ExecContext(ctx, query,
		tx.IsPosted,
		tx.PostingDate,
		tx.IsVoid,
		tx.VoidReason,
		ledger.RoundMoney(tx.BalanceDue),
		tx.ID,
		tx.CompanyID,
		tx.Version,
	)
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("transaction was modified concurrently")
	}

	tx.Version++

	return nil
}

// Party directory lookups consumed by the transaction service.

func (s *Store) CustomerActive(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return s.active(ctx, "customers", companyID, id)
}

func (s *Store) VendorActive(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return s.active(ctx, "vendors", companyID, id)
}

func (s *Store) ItemActive(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return s.active(ctx, "items", companyID, id)
}

func (s *Store) AccountActive(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return s.active(ctx, "accounts", companyID, id)
}

func (s *Store) active(ctx context.Context, table string, companyID, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (
		SELECT 1 FROM %s WHERE id = $1 AND company_id = $2 AND status = 'active'
	)`, table)

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, id, companyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking %s: %w", table, err)
	}

	return exists, nil
}
