package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied at startup. Every statement is idempotent, so booting
// against an existing database changes nothing. Soft-deleted rows keep their
// data; queries filter on status = 'active'.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS companies (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_name      TEXT NOT NULL,
	legal_name        TEXT NOT NULL DEFAULT '',
	company_type      TEXT NOT NULL DEFAULT '',
	industry          TEXT NOT NULL DEFAULT '',
	address_line1     TEXT NOT NULL DEFAULT '',
	address_line2     TEXT NOT NULL DEFAULT '',
	city              TEXT NOT NULL DEFAULT '',
	state             TEXT NOT NULL DEFAULT '',
	zip_code          TEXT NOT NULL DEFAULT '',
	country           TEXT NOT NULL DEFAULT '',
	phone             TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	website           TEXT NOT NULL DEFAULT '',
	fiscal_year_start TEXT NOT NULL DEFAULT 'january',
	tax_year_start    TEXT NOT NULL DEFAULT 'january',
	currency          TEXT NOT NULL DEFAULT 'USD',
	language          TEXT NOT NULL DEFAULT 'en',
	status            TEXT NOT NULL DEFAULT 'active',
	version           INTEGER NOT NULL DEFAULT 1,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at        TIMESTAMPTZ,
	deleted_by        UUID
);

CREATE TABLE IF NOT EXISTS company_memberships (
	company_id UUID NOT NULL REFERENCES companies(id),
	user_id    UUID NOT NULL REFERENCES users(id),
	role       TEXT NOT NULL DEFAULT 'member',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (company_id, user_id)
);

CREATE TABLE IF NOT EXISTS company_settings (
	company_id UUID NOT NULL REFERENCES companies(id),
	category   TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (company_id, category, key)
);

CREATE TABLE IF NOT EXISTS accounts (
	id                UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id        UUID NOT NULL REFERENCES companies(id),
	account_name      TEXT NOT NULL,
	account_type      TEXT NOT NULL,
	account_number    TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	opening_balance   NUMERIC(15,2) NOT NULL DEFAULT 0,
	current_balance   NUMERIC(15,2) NOT NULL DEFAULT 0,
	parent_account_id UUID REFERENCES accounts(id),
	status            TEXT NOT NULL DEFAULT 'active',
	version           INTEGER NOT NULL DEFAULT 1,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at        TIMESTAMPTZ,
	deleted_by        UUID
);

CREATE INDEX IF NOT EXISTS idx_accounts_company ON accounts(company_id);

CREATE TABLE IF NOT EXISTS customers (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id    UUID NOT NULL REFERENCES companies(id),
	customer_name TEXT NOT NULL,
	customer_type TEXT NOT NULL DEFAULT '',
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	company_name  TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	address_line1 TEXT NOT NULL DEFAULT '',
	address_line2 TEXT NOT NULL DEFAULT '',
	city          TEXT NOT NULL DEFAULT '',
	state         TEXT NOT NULL DEFAULT '',
	zip_code      TEXT NOT NULL DEFAULT '',
	country       TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'active',
	version       INTEGER NOT NULL DEFAULT 1,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at    TIMESTAMPTZ,
	deleted_by    UUID
);

CREATE INDEX IF NOT EXISTS idx_customers_company ON customers(company_id);

CREATE TABLE IF NOT EXISTS vendors (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id     UUID NOT NULL REFERENCES companies(id),
	vendor_name    TEXT NOT NULL,
	vendor_type    TEXT NOT NULL DEFAULT '',
	company_name   TEXT NOT NULL DEFAULT '',
	contact_person TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	address_line1  TEXT NOT NULL DEFAULT '',
	address_line2  TEXT NOT NULL DEFAULT '',
	city           TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL DEFAULT '',
	zip_code       TEXT NOT NULL DEFAULT '',
	country        TEXT NOT NULL DEFAULT '',
	eligible_1099  BOOLEAN NOT NULL DEFAULT FALSE,
	status         TEXT NOT NULL DEFAULT 'active',
	version        INTEGER NOT NULL DEFAULT 1,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at     TIMESTAMPTZ,
	deleted_by     UUID
);

CREATE INDEX IF NOT EXISTS idx_vendors_company ON vendors(company_id);

CREATE TABLE IF NOT EXISTS items (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id       UUID NOT NULL REFERENCES companies(id),
	item_name        TEXT NOT NULL,
	item_type        TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	sales_price      NUMERIC(15,2) NOT NULL DEFAULT 0,
	purchase_cost    NUMERIC(15,2) NOT NULL DEFAULT 0,
	quantity_on_hand NUMERIC NOT NULL DEFAULT 0,
	reorder_point    NUMERIC NOT NULL DEFAULT 0,
	manufacturer     TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'active',
	version          INTEGER NOT NULL DEFAULT 1,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at       TIMESTAMPTZ,
	deleted_by       UUID
);

CREATE INDEX IF NOT EXISTS idx_items_company ON items(company_id);

CREATE TABLE IF NOT EXISTS employees (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id    UUID NOT NULL REFERENCES companies(id),
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	address_line1 TEXT NOT NULL DEFAULT '',
	address_line2 TEXT NOT NULL DEFAULT '',
	city          TEXT NOT NULL DEFAULT '',
	state         TEXT NOT NULL DEFAULT '',
	zip_code      TEXT NOT NULL DEFAULT '',
	hire_date     TIMESTAMPTZ NOT NULL,
	pay_type      TEXT NOT NULL DEFAULT '',
	hourly_rate   NUMERIC(15,2) NOT NULL DEFAULT 0,
	annual_salary NUMERIC(15,2) NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'active',
	version       INTEGER NOT NULL DEFAULT 1,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	deleted_at    TIMESTAMPTZ,
	deleted_by    UUID
);

CREATE INDEX IF NOT EXISTS idx_employees_company ON employees(company_id);

CREATE TABLE IF NOT EXISTS transactions (
	id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id       UUID NOT NULL REFERENCES companies(id),
	transaction_type TEXT NOT NULL,
	reference_number TEXT NOT NULL DEFAULT '',
	transaction_date TIMESTAMPTZ NOT NULL,
	due_date         TIMESTAMPTZ,
	customer_id      UUID REFERENCES customers(id),
	vendor_id        UUID REFERENCES vendors(id),
	memo             TEXT NOT NULL DEFAULT '',
	payment_terms    TEXT NOT NULL DEFAULT '',
	billing_address  JSONB,
	shipping_address JSONB,
	subtotal         NUMERIC(15,2) NOT NULL DEFAULT 0,
	tax_amount       NUMERIC(15,2) NOT NULL DEFAULT 0,
	total_amount     NUMERIC(15,2) NOT NULL DEFAULT 0,
	balance_due      NUMERIC(15,2) NOT NULL DEFAULT 0,
	is_posted        BOOLEAN NOT NULL DEFAULT FALSE,
	posting_date     TIMESTAMPTZ,
	is_void          BOOLEAN NOT NULL DEFAULT FALSE,
	void_reason      TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'active',
	version          INTEGER NOT NULL DEFAULT 1,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at       TIMESTAMPTZ,
	deleted_at       TIMESTAMPTZ,
	deleted_by       UUID
);

CREATE INDEX IF NOT EXISTS idx_transactions_company ON transactions(company_id, transaction_date);
CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id) WHERE customer_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_transactions_vendor ON transactions(vendor_id) WHERE vendor_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS transaction_lines (
	id              BIGSERIAL PRIMARY KEY,
	transaction_id  UUID NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
	line_number     INTEGER NOT NULL,
	line_type       TEXT NOT NULL,
	item_id         UUID REFERENCES items(id),
	account_id      UUID REFERENCES accounts(id),
	description     TEXT NOT NULL DEFAULT '',
	quantity        NUMERIC NOT NULL DEFAULT 0,
	unit_price      NUMERIC(15,2) NOT NULL DEFAULT 0,
	discount_amount NUMERIC(15,2) NOT NULL DEFAULT 0,
	tax_rate        NUMERIC NOT NULL DEFAULT 0,
	tax_amount      NUMERIC(15,2) NOT NULL DEFAULT 0,
	line_total      NUMERIC(15,2) NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_transaction_lines_transaction ON transaction_lines(transaction_id);

CREATE TABLE IF NOT EXISTS payments (
	id                    UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id            UUID NOT NULL REFERENCES companies(id),
	customer_id           UUID REFERENCES customers(id),
	payment_date          TIMESTAMPTZ NOT NULL,
	payment_type          TEXT NOT NULL DEFAULT '',
	payment_method        TEXT NOT NULL DEFAULT '',
	reference_number      TEXT NOT NULL DEFAULT '',
	amount_received       NUMERIC(15,2) NOT NULL DEFAULT 0,
	deposit_to_account_id UUID REFERENCES accounts(id),
	memo                  TEXT NOT NULL DEFAULT '',
	status                TEXT NOT NULL DEFAULT 'active',
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payments_company ON payments(company_id, payment_date);

CREATE TABLE IF NOT EXISTS payment_applications (
	id              BIGSERIAL PRIMARY KEY,
	payment_id      UUID NOT NULL REFERENCES payments(id) ON DELETE CASCADE,
	transaction_id  UUID NOT NULL REFERENCES transactions(id),
	position        INTEGER NOT NULL,
	amount_applied  NUMERIC(15,2) NOT NULL DEFAULT 0,
	discount_taken  NUMERIC(15,2) NOT NULL DEFAULT 0,
	UNIQUE (payment_id, position)
);

CREATE INDEX IF NOT EXISTS idx_payment_applications_payment ON payment_applications(payment_id);

CREATE TABLE IF NOT EXISTS audit_logs (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	company_id    UUID NOT NULL REFERENCES companies(id),
	user_id       UUID NOT NULL,
	action        TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id   TEXT NOT NULL DEFAULT '',
	detail        TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_company ON audit_logs(company_id, created_at);
`

// Migrate creates every table the application expects. gen_random_uuid()
// requires PostgreSQL 13 or later.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	return nil
}
