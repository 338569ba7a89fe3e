package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/ledger"
	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, companyID uuid.UUID, filter ListFilter, page pagination.Params) ([]*Transaction, int, error)
	Update(ctx context.Context, tx *Transaction) error
	SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error

	ListByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]*Transaction, error)
	ListByVendor(ctx context.Context, companyID, vendorID uuid.UUID) ([]*Transaction, error)
	CustomerBalance(ctx context.Context, companyID, customerID uuid.UUID) (decimal.Decimal, error)

	BeginLifecycle(ctx context.Context, companyID, id uuid.UUID) (LifecycleTx, error)
}

// LifecycleTx wraps one post/void transition in a database transaction. Get
// loads the document under a row lock; Save writes it back with a version
// check, so two concurrent transitions cannot both succeed.
type LifecycleTx interface {
	Get(ctx context.Context) (*Transaction, error)
	Save(ctx context.Context, tx *Transaction) error
	Commit() error
	Rollback() error
}

// PartyDirectory answers existence checks against the company's directory of
// customers, vendors, items, and accounts. Only active records count.
type PartyDirectory interface {
	CustomerActive(ctx context.Context, companyID, id uuid.UUID) (bool, error)
	VendorActive(ctx context.Context, companyID, id uuid.UUID) (bool, error)
	ItemActive(ctx context.Context, companyID, id uuid.UUID) (bool, error)
	AccountActive(ctx context.Context, companyID, id uuid.UUID) (bool, error)
}

type Service struct {
	repo    Repository
	parties PartyDirectory
}

func NewService(repo Repository, parties PartyDirectory) *Service {
	return &Service{repo: repo, parties: parties}
}

type LineParams struct {
	LineNumber     int
	LineType       LineType
	ItemID         *uuid.UUID
	AccountID      *uuid.UUID
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxRate        *decimal.Decimal
	TaxAmount      *decimal.Decimal
}

type CreateParams struct {
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
	Lines           []LineParams
}

type UpdateParams struct {
	ReferenceNumber *string
	TransactionDate *time.Time
	DueDate         *time.Time
	Memo            *string
	PaymentTerms    *string
	BillingAddress  *Address
	ShippingAddress *Address
	Lines           *[]LineParams
}

type ListFilter struct {
	Type       *Type
	Status     *Status
	CustomerID *uuid.UUID
	VendorID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Transaction, error) {
	if err := validateHeader(params.Type, params.CustomerID, params.VendorID, params.TransactionDate); err != nil {
		return nil, err
	}

	lines, err := buildLines(params.Lines)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		CompanyID:       companyID,
		Type:            params.Type,
		ReferenceNumber: params.ReferenceNumber,
		TransactionDate: params.TransactionDate,
		DueDate:         params.DueDate,
		CustomerID:      params.CustomerID,
		VendorID:        params.VendorID,
		Memo:            params.Memo,
		PaymentTerms:    params.PaymentTerms,
		BillingAddress:  params.BillingAddress,
		ShippingAddress: params.ShippingAddress,
	}

	if err := tx.SetLines(lines); err != nil {
		return nil, err
	}

	if err := s.checkParties(ctx, companyID, tx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Transaction, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter ListFilter, page pagination.Params) ([]*Transaction, int, error) {
	return s.repo.List(ctx, companyID, filter, page)
}

// Update modifies a draft document. Posted documents are immutable apart
// from lifecycle transitions; void documents are immutable entirely.
func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if tx.IsVoid {
		return nil, errs.Conflict("transaction is void")
	}

	if tx.IsPosted {
		return nil, errs.Conflict("posted transactions cannot be updated")
	}

	if params.ReferenceNumber != nil {
		tx.ReferenceNumber = *params.ReferenceNumber
	}

	if params.TransactionDate != nil {
		tx.TransactionDate = *params.TransactionDate
	}

	if params.DueDate != nil {
		tx.DueDate = params.DueDate
	}

	if params.Memo != nil {
		tx.Memo = *params.Memo
	}

	if params.PaymentTerms != nil {
		tx.PaymentTerms = *params.PaymentTerms
	}

	if params.BillingAddress != nil {
		tx.BillingAddress = params.BillingAddress
	}

	if params.ShippingAddress != nil {
		tx.ShippingAddress = params.ShippingAddress
	}

	if params.Lines != nil {
		lines, err := buildLines(*params.Lines)
		if err != nil {
			return nil, err
		}

		if err := tx.SetLines(lines); err != nil {
			return nil, err
		}

		if err := s.checkParties(ctx, companyID, tx); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Post transitions a draft to posted inside a single database transaction.
func (s *Service) Post(ctx context.Context, companyID, id uuid.UUID, postingDate time.Time) (*Transaction, error) {
	if postingDate.IsZero() {
		return nil, errs.Validation("posting_date", "required")
	}

	ltx, err := s.repo.BeginLifecycle(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("beginning lifecycle: %w", err)
	}
	defer ltx.Rollback()

	tx, err := ltx.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Post(postingDate); err != nil {
		return nil, err
	}

	if err := ltx.Save(ctx, tx); err != nil {
		return nil, err
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("committing post: %w", err)
	}

	return tx, nil
}

// Void cancels a draft or posted document inside a single database
// transaction. Documents with applied payments cannot be voided.
func (s *Service) Void(ctx context.Context, companyID, id uuid.UUID, reason string) (*Transaction, error) {
	if reason == "" {
		return nil, errs.Validation("reason", "required")
	}

	ltx, err := s.repo.BeginLifecycle(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("beginning lifecycle: %w", err)
	}
	defer ltx.Rollback()

	tx, err := ltx.Get(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Void(reason); err != nil {
		return nil, err
	}

	if err := ltx.Save(ctx, tx); err != nil {
		return nil, err
	}

	if err := ltx.Commit(); err != nil {
		return nil, fmt.Errorf("committing void: %w", err)
	}

	return tx, nil
}

// Delete soft-deletes a draft or void document. Posted documents stay on the
// books until voided.
func (s *Service) Delete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	tx, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return err
	}

	if tx.IsPosted && !tx.IsVoid {
		return errs.Conflict("posted transactions cannot be deleted; void first")
	}

	return s.repo.SoftDelete(ctx, companyID, id, deletedBy)
}

// CustomerTransactions lists a customer's non-deleted documents.
func (s *Service) CustomerTransactions(ctx context.Context, companyID, customerID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListByCustomer(ctx, companyID, customerID)
}

// VendorTransactions lists a vendor's non-deleted documents.
func (s *Service) VendorTransactions(ctx context.Context, companyID, vendorID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListByVendor(ctx, companyID, vendorID)
}

// CustomerBalance sums balance due across the customer's posted, non-void
// documents.
func (s *Service) CustomerBalance(ctx context.Context, companyID, customerID uuid.UUID) (decimal.Decimal, error) {
	return s.repo.CustomerBalance(ctx, companyID, customerID)
}

func (s *Service) checkParties(ctx context.Context, companyID uuid.UUID, tx *Transaction) error {
	if tx.CustomerID != nil {
		ok, err := s.parties.CustomerActive(ctx, companyID, *tx.CustomerID)
		if err != nil {
			return fmt.Errorf("checking customer: %w", err)
		}

		if !ok {
			return errs.NotFound("customer", tx.CustomerID.String())
		}
	}

	if tx.VendorID != nil {
		ok, err := s.parties.VendorActive(ctx, companyID, *tx.VendorID)
		if err != nil {
			return fmt.Errorf("checking vendor: %w", err)
		}

		if !ok {
			return errs.NotFound("vendor", tx.VendorID.String())
		}
	}

	for _, line := range tx.Lines {
		if line.ItemID != nil {
			ok, err := s.parties.ItemActive(ctx, companyID, *line.ItemID)
			if err != nil {
				return fmt.Errorf("checking item: %w", err)
			}

			if !ok {
				return errs.NotFound("item", line.ItemID.String())
			}
		}

		if line.AccountID != nil {
			ok, err := s.parties.AccountActive(ctx, companyID, *line.AccountID)
			if err != nil {
				return fmt.Errorf("checking account: %w", err)
			}

			if !ok {
				return errs.NotFound("account", line.AccountID.String())
			}
		}
	}

	return nil
}

func validateHeader(t Type, customerID, vendorID *uuid.UUID, transactionDate time.Time) error {
	if !t.Valid() {
		return errs.Validation("transaction_type", "unknown transaction type")
	}

	if transactionDate.IsZero() {
		return errs.Validation("transaction_date", "required")
	}

	switch {
	case t.CustomerSide():
		if customerID == nil {
			return errs.Validation("customer_id", fmt.Sprintf("required for %s", t))
		}

		if vendorID != nil {
			return errs.Validation("vendor_id", fmt.Sprintf("not allowed for %s", t))
		}
	case t.VendorSide():
		if vendorID == nil {
			return errs.Validation("vendor_id", fmt.Sprintf("required for %s", t))
		}

		if customerID != nil {
			return errs.Validation("customer_id", fmt.Sprintf("not allowed for %s", t))
		}
	default:
		if customerID != nil {
			return errs.Validation("customer_id", fmt.Sprintf("not allowed for %s", t))
		}

		if vendorID != nil {
			return errs.Validation("vendor_id", fmt.Sprintf("not allowed for %s", t))
		}
	}

	return nil
}

func buildLines(params []LineParams) ([]Line, error) {
	lines := make([]Line, len(params))

	for i, p := range params {
		number := p.LineNumber
		if number <= 0 {
			number = i + 1
		}

		lineType := p.LineType
		if lineType == "" {
			lineType = LineTypeItem
		}

		if lineType != LineTypeItem && lineType != LineTypeAccount {
			return nil, errs.LineValidation(number, "line_type", "must be item or account")
		}

		rate := decimal.Zero
		if p.TaxRate != nil {
			if p.TaxRate.IsNegative() {
				return nil, errs.LineValidation(number, "tax_rate", "must not be negative")
			}

			rate = *p.TaxRate
		}

		tax := decimal.Zero

		switch {
		case p.TaxAmount != nil:
			tax = *p.TaxAmount
		case p.TaxRate != nil:
			tax = ledger.TaxFromRate(p.Quantity, p.UnitPrice, rate)
		}

		line := Line{
			LineNumber:     number,
			LineType:       lineType,
			ItemID:         p.ItemID,
			AccountID:      p.AccountID,
			Description:    p.Description,
			Quantity:       p.Quantity,
			UnitPrice:      p.UnitPrice,
			DiscountAmount: p.DiscountAmount,
			TaxRate:        rate,
			TaxAmount:      tax,
		}
		line.LineTotal = ledger.Line{
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			DiscountAmount: line.DiscountAmount,
			TaxAmount:      line.TaxAmount,
		}.Total()

		lines[i] = line
	}

	return lines, nil
}
