package payment

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	Get(ctx context.Context, companyID, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Payment, int, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx wraps payment creation and every balance update in one database
// transaction. LockTarget loads a target document under FOR UPDATE; targets
// are locked in sorted id order so two concurrent payments touching the same
// documents cannot deadlock.
type Tx interface {
	LockTarget(ctx context.Context, companyID, id uuid.UUID) (*transaction.Transaction, error)
	SaveBalance(ctx context.Context, tx *transaction.Transaction) error
	CreatePayment(ctx context.Context, p *Payment) error
	Commit() error
	Rollback() error
}

// CustomerDirectory answers whether a customer id is active in the company.
type CustomerDirectory interface {
	CustomerActive(ctx context.Context, companyID, id uuid.UUID) (bool, error)
}

type Service struct {
	repo      Repository
	customers CustomerDirectory
}

func NewService(repo Repository, customers CustomerDirectory) *Service {
	return &Service{repo: repo, customers: customers}
}

type ApplicationParams struct {
	TransactionID uuid.UUID
	AmountApplied decimal.Decimal
	DiscountTaken decimal.Decimal
}

type CreateParams struct {
	CustomerID         *uuid.UUID
	PaymentDate        time.Time
	PaymentType        string
	PaymentMethod      string
	ReferenceNumber    string
	AmountReceived     decimal.Decimal
	DepositToAccountID *uuid.UUID
	Memo               string
	Applications       []ApplicationParams
}

// Create records a payment and applies it to its target transactions as a
// single atomic unit: either the payment row and every balance update commit
// together, or nothing does.
func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Payment, error) {
	p, err := buildPayment(companyID, params)
	if err != nil {
		return nil, err
	}

	if p.CustomerID != nil {
		ok, err := s.customers.CustomerActive(ctx, companyID, *p.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("checking customer: %w", err)
		}

		if !ok {
			return nil, errs.NotFound("customer", p.CustomerID.String())
		}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}
	defer tx.Rollback()

	targets, err := lockTargets(ctx, tx, companyID, p.Applications)
	if err != nil {
		return nil, err
	}

	for _, a := range p.Applications {
		target := targets[a.TransactionID]
		if err := target.ApplyPayment(a.AmountApplied, a.DiscountTaken); err != nil {
			return nil, err
		}
	}

	for _, target := range targets {
		if err := tx.SaveBalance(ctx, target); err != nil {
			return nil, err
		}
	}

	if err := tx.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment: %w", err)
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Payment, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Payment, int, error) {
	return s.repo.List(ctx, companyID, page)
}

// lockTargets locks each distinct target once, in ascending id order.
func lockTargets(ctx context.Context, tx Tx, companyID uuid.UUID, applications []Application) (map[uuid.UUID]*transaction.Transaction, error) {
	ids := make([]uuid.UUID, 0, len(applications))
	seen := make(map[uuid.UUID]struct{}, len(applications))

	for _, a := range applications {
		if _, ok := seen[a.TransactionID]; ok {
			continue
		}

		seen[a.TransactionID] = struct{}{}
		ids = append(ids, a.TransactionID)
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	targets := make(map[uuid.UUID]*transaction.Transaction, len(ids))

	for _, id := range ids {
		target, err := tx.LockTarget(ctx, companyID, id)
		if err != nil {
			return nil, err
		}

		targets[id] = target
	}

	return targets, nil
}

func buildPayment(companyID uuid.UUID, params CreateParams) (*Payment, error) {
	if params.PaymentDate.IsZero() {
		return nil, errs.Validation("payment_date", "required")
	}

	if params.AmountReceived.IsNegative() {
		return nil, errs.Validation("amount_received", "must not be negative")
	}

	applications := make([]Application, len(params.Applications))
	applied := decimal.Zero

	for i, a := range params.Applications {
		if a.AmountApplied.IsNegative() {
			return nil, errs.Validation("amount_applied", "must not be negative")
		}

		if a.DiscountTaken.IsNegative() {
			return nil, errs.Validation("discount_taken", "must not be negative")
		}

		applications[i] = Application(a)
		applied = applied.Add(a.AmountApplied).Add(a.DiscountTaken)
	}

	if applied.GreaterThan(params.AmountReceived) {
		return nil, errs.Validation("applications",
			fmt.Sprintf("applied %s exceeds amount received %s", applied, params.AmountReceived))
	}

	return &Payment{
		CompanyID:          companyID,
		CustomerID:         params.CustomerID,
		PaymentDate:        params.PaymentDate,
		PaymentType:        params.PaymentType,
		PaymentMethod:      params.PaymentMethod,
		ReferenceNumber:    params.ReferenceNumber,
		AmountReceived:     params.AmountReceived,
		DepositToAccountID: params.DepositToAccountID,
		Memo:               params.Memo,
		Applications:       applications,
	}, nil
}
