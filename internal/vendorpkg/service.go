package vendor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=vendor
type Repository interface {
	Create(ctx context.Context, v *Vendor) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*Vendor, error)
	List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Vendor, int, error)
	Update(ctx context.Context, v *Vendor) error
	SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	VendorName    string
	VendorType    string
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	ZipCode       string
	Country       string
	Eligible1099  bool
}

type UpdateParams struct {
	VendorName    *string
	VendorType    *string
	CompanyName   *string
	ContactPerson *string
	Email         *string
	Phone         *string
	AddressLine1  *string
	AddressLine2  *string
	City          *string
	State         *string
	ZipCode       *string
	Country       *string
	Eligible1099  *bool
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Vendor, error) {
	if params.VendorName == "" {
		return nil, errs.Validation("vendor_name", "required")
	}

	v := &Vendor{
		CompanyID:     companyID,
		VendorName:    params.VendorName,
		VendorType:    params.VendorType,
		CompanyName:   params.CompanyName,
		ContactPerson: params.ContactPerson,
		Email:         params.Email,
		Phone:         params.Phone,
		AddressLine1:  params.AddressLine1,
		AddressLine2:  params.AddressLine2,
		City:          params.City,
		State:         params.State,
		ZipCode:       params.ZipCode,
		Country:       params.Country,
		Eligible1099:  params.Eligible1099,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("creating vendor: %w", err)
	}

	return v, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Vendor, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Vendor, int, error) {
	return s.repo.List(ctx, companyID, page)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, params UpdateParams) (*Vendor, error) {
	v, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if params.VendorName != nil {
		if *params.VendorName == "" {
			return nil, errs.Validation("vendor_name", "required")
		}

		v.VendorName = *params.VendorName
	}

	if params.Eligible1099 != nil {
		v.Eligible1099 = *params.Eligible1099
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&v.VendorType, params.VendorType)
	apply(&v.CompanyName, params.CompanyName)
	apply(&v.ContactPerson, params.ContactPerson)
	apply(&v.Email, params.Email)
	apply(&v.Phone, params.Phone)
	apply(&v.AddressLine1, params.AddressLine1)
	apply(&v.AddressLine2, params.AddressLine2)
	apply(&v.City, params.City)
	apply(&v.State, params.State)
	apply(&v.ZipCode, params.ZipCode)
	apply(&v.Country, params.Country)

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id, deletedBy)
}
