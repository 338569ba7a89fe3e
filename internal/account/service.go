package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account

// Repository persists accounts. Merge must redirect every reference from the
// source account to the target and soft-delete the source as one atomic
// unit; a partial redirect corrupts the books.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*Account, error)
	List(ctx context.Context, companyID uuid.UUID, filter ListFilter, page pagination.Params) ([]*Account, int, error)
	Update(ctx context.Context, account *Account) error
	SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error
	Merge(ctx context.Context, companyID, sourceID, targetID, mergedBy uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	AccountName     string
	AccountType     Type
	AccountNumber   string
	Description     string
	OpeningBalance  *decimal.Decimal
	ParentAccountID *uuid.UUID
}

type UpdateParams struct {
	AccountName   *string
	AccountNumber *string
	Description   *string
}

type ListFilter struct {
	Type *Type
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Account, error) {
	if params.AccountName == "" {
		return nil, errs.Validation("account_name", "required")
	}

	if !params.AccountType.Valid() {
		return nil, errs.Validation("account_type", fmt.Sprintf("unknown account type %q", params.AccountType))
	}

	opening := decimal.Zero
	if params.OpeningBalance != nil {
		opening = *params.OpeningBalance
	}

	if params.ParentAccountID != nil {
		parent, err := s.repo.Get(ctx, companyID, *params.ParentAccountID)
		if err != nil {
			return nil, err
		}

		if parent.AccountType != params.AccountType {
			return nil, errs.Validation("parent_account_id", "parent account must have the same account type")
		}
	}

	account := &Account{
		CompanyID:       companyID,
		AccountName:     params.AccountName,
		AccountType:     params.AccountType,
		AccountNumber:   params.AccountNumber,
		Description:     params.Description,
		OpeningBalance:  opening,
		CurrentBalance:  opening,
		ParentAccountID: params.ParentAccountID,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	return account, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Account, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, filter ListFilter, page pagination.Params) ([]*Account, int, error) {
	return s.repo.List(ctx, companyID, filter, page)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, params UpdateParams) (*Account, error) {
	account, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if params.AccountName != nil {
		if *params.AccountName == "" {
			return nil, errs.Validation("account_name", "required")
		}

		account.AccountName = *params.AccountName
	}

	if params.AccountNumber != nil {
		account.AccountNumber = *params.AccountNumber
	}

	if params.Description != nil {
		account.Description = *params.Description
	}

	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id, deletedBy)
}

// Merge folds the source account into the target: every transaction line,
// child account, and payment deposit reference moves to the target, then the
// source is soft-deleted. The repository runs the whole redirect atomically.
func (s *Service) Merge(ctx context.Context, companyID, sourceID, targetID, mergedBy uuid.UUID) error {
	if sourceID == targetID {
		return errs.Validation("target_account_id", "cannot merge an account into itself")
	}

	if err := s.repo.Merge(ctx, companyID, sourceID, targetID, mergedBy); err != nil {
		return fmt.Errorf("merging accounts: %w", err)
	}

	return nil
}
