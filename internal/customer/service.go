package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*Customer, error)
	List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Customer, int, error)
	Update(ctx context.Context, c *Customer) error
	SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	CustomerName string
	CustomerType Type
	FirstName    string
	LastName     string
	CompanyName  string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Country      string
}

type UpdateParams struct {
	CustomerName *string
	CustomerType *Type
	FirstName    *string
	LastName     *string
	CompanyName  *string
	Email        *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	ZipCode      *string
	Country      *string
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Customer, error) {
	if params.CustomerName == "" {
		return nil, errs.Validation("customer_name", "required")
	}

	if params.CustomerType == "" {
		params.CustomerType = TypeBusiness
	}

	if !params.CustomerType.Valid() {
		return nil, errs.Validation("customer_type", fmt.Sprintf("unknown customer type %q", params.CustomerType))
	}

	c := &Customer{
		CompanyID:    companyID,
		CustomerName: params.CustomerName,
		CustomerType: params.CustomerType,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		CompanyName:  params.CompanyName,
		Email:        params.Email,
		Phone:        params.Phone,
		AddressLine1: params.AddressLine1,
		AddressLine2: params.AddressLine2,
		City:         params.City,
		State:        params.State,
		ZipCode:      params.ZipCode,
		Country:      params.Country,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Customer, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Customer, int, error) {
	return s.repo.List(ctx, companyID, page)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, params UpdateParams) (*Customer, error) {
	c, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if params.CustomerName != nil {
		if *params.CustomerName == "" {
			return nil, errs.Validation("customer_name", "required")
		}

		c.CustomerName = *params.CustomerName
	}

	if params.CustomerType != nil {
		if !params.CustomerType.Valid() {
			return nil, errs.Validation("customer_type", fmt.Sprintf("unknown customer type %q", *params.CustomerType))
		}

		c.CustomerType = *params.CustomerType
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&c.FirstName, params.FirstName)
	apply(&c.LastName, params.LastName)
	apply(&c.CompanyName, params.CompanyName)
	apply(&c.Email, params.Email)
	apply(&c.Phone, params.Phone)
	apply(&c.AddressLine1, params.AddressLine1)
	apply(&c.AddressLine2, params.AddressLine2)
	apply(&c.City, params.City)
	apply(&c.State, params.State)
	apply(&c.ZipCode, params.ZipCode)
	apply(&c.Country, params.Country)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id, deletedBy)
}
