// Package transaction holds the financial document entity and its lifecycle:
// draft → posted → paid or void. Transitions validate preconditions before
// mutating, so a failed transition leaves the entity unchanged.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/ledger"
)

// Type represents the kind of financial document.
type Type string

const (
	TypeInvoice      Type = "invoice"
	TypeBill         Type = "bill"
	TypePayment      Type = "payment"
	TypeSalesReceipt Type = "sales_receipt"
	TypeJournalEntry Type = "journal_entry"
)

// Valid reports whether t is a known document type.
func (t Type) Valid() bool {
	switch t {
	case TypeInvoice, TypeBill, TypePayment, TypeSalesReceipt, TypeJournalEntry:
		return true
	}

	return false
}

// CustomerSide reports whether t references a customer.
func (t Type) CustomerSide() bool {
	switch t {
	case TypeInvoice, TypeSalesReceipt, TypePayment:
		return true
	}

	return false
}

// VendorSide reports whether t references a vendor.
func (t Type) VendorSide() bool {
	return t == TypeBill
}

// Status is the derived lifecycle label. It is never stored: paid means a
// posted, non-void document whose balance due reached zero.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusPosted Status = "posted"
	StatusPaid   Status = "paid"
	StatusVoid   Status = "void"
)

// LineType distinguishes item lines from direct account postings.
type LineType string

const (
	LineTypeItem    LineType = "item"
	LineTypeAccount LineType = "account"
)

// Address is a postal address attached to a document.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Line is one row of a document. TaxAmount is always resolved: when a caller
// supplies a tax rate instead, the amount is derived at construction.
type Line struct {
	LineNumber     int
	LineType       LineType
	ItemID         *uuid.UUID
	AccountID      *uuid.UUID
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

// Transaction is a financial document owned by a company. Monetary totals
// are derived from lines and never set directly by callers.
type Transaction struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Type            Type
	ReferenceNumber string
	TransactionDate time.Time
	DueDate         *time.Time
	CustomerID      *uuid.UUID
	VendorID        *uuid.UUID
	Memo            string
	PaymentTerms    string
	BillingAddress  *Address
	ShippingAddress *Address
	Lines           []Line

	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	BalanceDue  decimal.Decimal

	IsPosted    bool
	PostingDate *time.Time
	IsVoid      bool
	VoidReason  string

	// Version guards concurrent saves: every successful save increments it,
	// and a save against a stale version is rejected.
	Version int

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	DeletedBy *uuid.UUID
}

// Status derives the lifecycle label from the stored flags and balance.
func (t *Transaction) Status() Status {
	switch {
	case t.IsVoid:
		return StatusVoid
	case t.IsPosted && t.BalanceDue.IsZero():
		return StatusPaid
	case t.IsPosted:
		return StatusPosted
	default:
		return StatusDraft
	}
}

// SetLines replaces the document's lines and recomputes totals. Rejected once
// the document is posted or void: posted lines are frozen.
func (t *Transaction) SetLines(lines []Line) error {
	if t.IsVoid {
		return errs.Conflict("transaction is void")
	}

	if t.IsPosted {
		return errs.Conflict("lines are frozen once a transaction is posted")
	}

	totals, err := ledger.ComputeTotals(ledgerLines(lines))
	if err != nil {
		return err
	}

	t.Lines = lines
	t.Subtotal = totals.Subtotal
	t.TaxAmount = totals.TaxAmount
	t.TotalAmount = totals.Total
	t.BalanceDue = decimal.Zero

	return nil
}

// Post finalizes a draft: stamps the posting date, freezes lines, and opens
// the balance due at the full document total.
func (t *Transaction) Post(postingDate time.Time) error {
	if t.IsVoid {
		return errs.Conflict("cannot post a void transaction")
	}

	if t.IsPosted {
		return errs.Conflict("transaction is already posted")
	}

	t.IsPosted = true
	t.PostingDate = &postingDate
	t.BalanceDue = t.TotalAmount

	return nil
}

// ApplyPayment reduces the balance due by amount + discount. Requires a
// posted, non-void document; an application exceeding the balance due is
// rejected with no change.
func (t *Transaction) ApplyPayment(amount, discount decimal.Decimal) error {
	if t.IsVoid {
		return errs.Conflict("cannot apply a payment to a void transaction")
	}

	if !t.IsPosted {
		return errs.Conflict("cannot apply a payment to an unposted transaction")
	}

	if amount.IsNegative() {
		return errs.Validation("amount_applied", "must not be negative")
	}

	if discount.IsNegative() {
		return errs.Validation("discount_taken", "must not be negative")
	}

	applied := amount.Add(discount)
	if applied.GreaterThan(t.BalanceDue) {
		return &errs.OverpaymentError{
			TransactionID: t.ID.String(),
			BalanceDue:    t.BalanceDue.String(),
			Requested:     applied.String(),
		}
	}

	t.BalanceDue = t.BalanceDue.Sub(applied)

	return nil
}

// HasPayments reports whether any payment has been applied: a posted
// document whose balance due dropped below its total.
func (t *Transaction) HasPayments() bool {
	return t.IsPosted && t.BalanceDue.LessThan(t.TotalAmount)
}

// Void cancels a draft or posted document. A document with applied payments
// cannot be voided until those payments are reversed. Voiding zeroes the
// balance due so the document carries no effect on any aggregation.
func (t *Transaction) Void(reason string) error {
	if t.IsVoid {
		return errs.Conflict("transaction is already void")
	}

	if t.HasPayments() {
		return errs.Conflict("cannot void a transaction with applied payments")
	}

	t.IsVoid = true
	t.VoidReason = reason
	t.BalanceDue = decimal.Zero

	return nil
}

func ledgerLines(lines []Line) []ledger.Line {
	out := make([]ledger.Line, len(lines))
	for i, l := range lines {
		out[i] = ledger.Line{
			LineNumber:     l.LineNumber,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.DiscountAmount,
			TaxAmount:      l.TaxAmount,
		}
	}

	return out
}
