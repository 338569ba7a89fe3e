package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=item
type Repository interface {
	Create(ctx context.Context, i *Item) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*Item, error)
	List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Item, int, error)
	ListLowStock(ctx context.Context, companyID uuid.UUID) ([]*Item, error)
	Update(ctx context.Context, i *Item) error
	SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ItemName       string
	ItemType       Type
	Description    string
	SalesPrice     *decimal.Decimal
	PurchaseCost   *decimal.Decimal
	QuantityOnHand *decimal.Decimal
	ReorderPoint   *decimal.Decimal
	Manufacturer   string
}

type UpdateParams struct {
	ItemName       *string
	Description    *string
	SalesPrice     *decimal.Decimal
	PurchaseCost   *decimal.Decimal
	QuantityOnHand *decimal.Decimal
	ReorderPoint   *decimal.Decimal
	Manufacturer   *string
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Item, error) {
	if params.ItemName == "" {
		return nil, errs.Validation("item_name", "required")
	}

	if params.ItemType == "" {
		params.ItemType = TypeService
	}

	if !params.ItemType.Valid() {
		return nil, errs.Validation("item_type", fmt.Sprintf("unknown item type %q", params.ItemType))
	}

	orZero := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}

		return *d
	}

	i := &Item{
		CompanyID:      companyID,
		ItemName:       params.ItemName,
		ItemType:       params.ItemType,
		Description:    params.Description,
		SalesPrice:     orZero(params.SalesPrice),
		PurchaseCost:   orZero(params.PurchaseCost),
		QuantityOnHand: orZero(params.QuantityOnHand),
		ReorderPoint:   orZero(params.ReorderPoint),
		Manufacturer:   params.Manufacturer,
	}

	if i.SalesPrice.IsNegative() {
		return nil, errs.Validation("sales_price", "must not be negative")
	}

	if i.PurchaseCost.IsNegative() {
		return nil, errs.Validation("purchase_cost", "must not be negative")
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return i, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Item, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Item, int, error) {
	return s.repo.List(ctx, companyID, page)
}

// LowStock returns inventory items whose quantity on hand has fallen to or
// below their reorder point.
func (s *Service) LowStock(ctx context.Context, companyID uuid.UUID) ([]*Item, error) {
	return s.repo.ListLowStock(ctx, companyID)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, params UpdateParams) (*Item, error) {
	i, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if params.ItemName != nil {
		if *params.ItemName == "" {
			return nil, errs.Validation("item_name", "required")
		}

		i.ItemName = *params.ItemName
	}

	if params.Description != nil {
		i.Description = *params.Description
	}

	if params.Manufacturer != nil {
		i.Manufacturer = *params.Manufacturer
	}

	applyAmount := func(field string, dst *decimal.Decimal, src *decimal.Decimal, allowNegative bool) error {
		if src == nil {
			return nil
		}

		if !allowNegative && src.IsNegative() {
			return errs.Validation(field, "must not be negative")
		}

		*dst = *src

		return nil
	}

	if err := applyAmount("sales_price", &i.SalesPrice, params.SalesPrice, false); err != nil {
		return nil, err
	}

	if err := applyAmount("purchase_cost", &i.PurchaseCost, params.PurchaseCost, false); err != nil {
		return nil, err
	}

	// Quantity may legitimately go negative when sales outrun receiving.
	if err := applyAmount("quantity_on_hand", &i.QuantityOnHand, params.QuantityOnHand, true); err != nil {
		return nil, err
	}

	if err := applyAmount("reorder_point", &i.ReorderPoint, params.ReorderPoint, false); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}

	return i, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id, deletedBy)
}
