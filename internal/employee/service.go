package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=employee
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	Get(ctx context.Context, companyID, id uuid.UUID) (*Employee, error)
	List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Employee, int, error)
	Update(ctx context.Context, e *Employee) error
	SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	HireDate     time.Time
	PayType      PayType
	HourlyRate   *decimal.Decimal
	AnnualSalary *decimal.Decimal
}

type UpdateParams struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	ZipCode      *string
	HireDate     *time.Time
	PayType      *PayType
	HourlyRate   *decimal.Decimal
	AnnualSalary *decimal.Decimal
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, params CreateParams) (*Employee, error) {
	if params.FirstName == "" {
		return nil, errs.Validation("first_name", "required")
	}

	if params.LastName == "" {
		return nil, errs.Validation("last_name", "required")
	}

	if params.PayType == "" {
		params.PayType = PayHourly
	}

	if !params.PayType.Valid() {
		return nil, errs.Validation("pay_type", fmt.Sprintf("unknown pay type %q", params.PayType))
	}

	e := &Employee{
		CompanyID:    companyID,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		Phone:        params.Phone,
		AddressLine1: params.AddressLine1,
		AddressLine2: params.AddressLine2,
		City:         params.City,
		State:        params.State,
		ZipCode:      params.ZipCode,
		HireDate:     params.HireDate,
		PayType:      params.PayType,
	}

	if params.HourlyRate != nil {
		e.HourlyRate = *params.HourlyRate
	}

	if params.AnnualSalary != nil {
		e.AnnualSalary = *params.AnnualSalary
	}

	if err := validateCompensation(e); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, companyID, id uuid.UUID) (*Employee, error) {
	return s.repo.Get(ctx, companyID, id)
}

func (s *Service) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*Employee, int, error) {
	return s.repo.List(ctx, companyID, page)
}

func (s *Service) Update(ctx context.Context, companyID, id uuid.UUID, params UpdateParams) (*Employee, error) {
	e, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	if params.FirstName != nil {
		if *params.FirstName == "" {
			return nil, errs.Validation("first_name", "required")
		}

		e.FirstName = *params.FirstName
	}

	if params.LastName != nil {
		if *params.LastName == "" {
			return nil, errs.Validation("last_name", "required")
		}

		e.LastName = *params.LastName
	}

	if params.PayType != nil {
		if !params.PayType.Valid() {
			return nil, errs.Validation("pay_type", fmt.Sprintf("unknown pay type %q", *params.PayType))
		}

		e.PayType = *params.PayType
	}

	if params.HireDate != nil {
		e.HireDate = *params.HireDate
	}

	if params.HourlyRate != nil {
		e.HourlyRate = *params.HourlyRate
	}

	if params.AnnualSalary != nil {
		e.AnnualSalary = *params.AnnualSalary
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&e.Email, params.Email)
	apply(&e.Phone, params.Phone)
	apply(&e.AddressLine1, params.AddressLine1)
	apply(&e.AddressLine2, params.AddressLine2)
	apply(&e.City, params.City)
	apply(&e.State, params.State)
	apply(&e.ZipCode, params.ZipCode)

	if err := validateCompensation(e); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	return s.repo.SoftDelete(ctx, companyID, id, deletedBy)
}

func validateCompensation(e *Employee) error {
	if e.HourlyRate.IsNegative() {
		return errs.Validation("hourly_rate", "must not be negative")
	}

	if e.AnnualSalary.IsNegative() {
		return errs.Validation("annual_salary", "must not be negative")
	}

	return nil
}
