// Package payment models money received and its application to open
// transactions. A payment is created once and immutable afterward; applying
// it mutates the target transactions' balances as a side effect, all inside
// one database transaction.
package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Application directs part of a payment at one transaction.
type Application struct {
	TransactionID uuid.UUID
	AmountApplied decimal.Decimal
	DiscountTaken decimal.Decimal
}

// Payment is money received from a customer, optionally applied across
// transactions. Σ(amount_applied + discount_taken) never exceeds
// AmountReceived; the remainder stays unapplied.
type Payment struct {
	ID                 uuid.UUID
	CompanyID          uuid.UUID
	CustomerID         *uuid.UUID
	PaymentDate        time.Time
	PaymentType        string
	PaymentMethod      string
	ReferenceNumber    string
	AmountReceived     decimal.Decimal
	DepositToAccountID *uuid.UUID
	Memo               string
	Applications       []Application

	CreatedAt time.Time
}

// Applied returns the total directed at transactions, including discounts.
func (p *Payment) Applied() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Applications {
		total = total.Add(a.AmountApplied).Add(a.DiscountTaken)
	}

	return total
}

// Unapplied returns the portion of the received amount not directed at any
// transaction.
func (p *Payment) Unapplied() decimal.Decimal {
	return p.AmountReceived.Sub(p.Applied())
}
