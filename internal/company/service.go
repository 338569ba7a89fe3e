package company

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/finchbooks/finch/internal/errs"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company

// Repository persists companies. Create must also record the owner's
// membership so the new company is immediately visible to its creator.
type Repository interface {
	Create(ctx context.Context, c *Company, ownerID uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*Company, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Company, error)
	Update(ctx context.Context, c *Company) error
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error

	Settings(ctx context.Context, companyID uuid.UUID) ([]Setting, error)
	PutSettings(ctx context.Context, companyID uuid.UUID, settings []Setting) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var months = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

type CreateParams struct {
	CompanyName     string
	LegalName       string
	CompanyType     string
	Industry        string
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	ZipCode         string
	Country         string
	Phone           string
	Email           string
	Website         string
	FiscalYearStart string
	TaxYearStart    string
	Currency        string
	Language        string
}

type UpdateParams struct {
	CompanyName     *string
	LegalName       *string
	CompanyType     *string
	Industry        *string
	AddressLine1    *string
	AddressLine2    *string
	City            *string
	State           *string
	ZipCode         *string
	Country         *string
	Phone           *string
	Email           *string
	Website         *string
	FiscalYearStart *string
	TaxYearStart    *string
	Currency        *string
	Language        *string
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Company, error) {
	if params.CompanyName == "" {
		return nil, errs.Validation("company_name", "required")
	}

	cur, err := normalizeCurrency(params.Currency)
	if err != nil {
		return nil, err
	}

	lang, err := normalizeLanguage(params.Language)
	if err != nil {
		return nil, err
	}

	fiscal, err := normalizeMonth("fiscal_year_start", params.FiscalYearStart)
	if err != nil {
		return nil, err
	}

	tax, err := normalizeMonth("tax_year_start", params.TaxYearStart)
	if err != nil {
		return nil, err
	}

	c := &Company{
		CompanyName:     params.CompanyName,
		LegalName:       params.LegalName,
		CompanyType:     params.CompanyType,
		Industry:        params.Industry,
		AddressLine1:    params.AddressLine1,
		AddressLine2:    params.AddressLine2,
		City:            params.City,
		State:           params.State,
		ZipCode:         params.ZipCode,
		Country:         params.Country,
		Phone:           params.Phone,
		Email:           params.Email,
		Website:         params.Website,
		FiscalYearStart: fiscal,
		TaxYearStart:    tax,
		Currency:        cur,
		Language:        lang,
	}

	if err := s.repo.Create(ctx, c, ownerID); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Company, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Company, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Company, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CompanyName != nil {
		if *params.CompanyName == "" {
			return nil, errs.Validation("company_name", "required")
		}

		c.CompanyName = *params.CompanyName
	}

	if params.Currency != nil {
		cur, err := normalizeCurrency(*params.Currency)
		if err != nil {
			return nil, err
		}

		c.Currency = cur
	}

	if params.Language != nil {
		lang, err := normalizeLanguage(*params.Language)
		if err != nil {
			return nil, err
		}

		c.Language = lang
	}

	if params.FiscalYearStart != nil {
		fiscal, err := normalizeMonth("fiscal_year_start", *params.FiscalYearStart)
		if err != nil {
			return nil, err
		}

		c.FiscalYearStart = fiscal
	}

	if params.TaxYearStart != nil {
		tax, err := normalizeMonth("tax_year_start", *params.TaxYearStart)
		if err != nil {
			return nil, err
		}

		c.TaxYearStart = tax
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	apply(&c.LegalName, params.LegalName)
	apply(&c.CompanyType, params.CompanyType)
	apply(&c.Industry, params.Industry)
	apply(&c.AddressLine1, params.AddressLine1)
	apply(&c.AddressLine2, params.AddressLine2)
	apply(&c.City, params.City)
	apply(&c.State, params.State)
	apply(&c.ZipCode, params.ZipCode)
	apply(&c.Country, params.Country)
	apply(&c.Phone, params.Phone)
	apply(&c.Email, params.Email)
	apply(&c.Website, params.Website)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id, deletedBy uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id, deletedBy)
}

func (s *Service) Settings(ctx context.Context, companyID uuid.UUID) ([]Setting, error) {
	return s.repo.Settings(ctx, companyID)
}

// PutSettings upserts the given triples. Existing settings not named in the
// request are left untouched.
func (s *Service) PutSettings(ctx context.Context, companyID uuid.UUID, settings []Setting) error {
	for i, setting := range settings {
		if setting.Category == "" {
			return errs.LineValidation(i+1, "category", "required")
		}

		if setting.Key == "" {
			return errs.LineValidation(i+1, "key", "required")
		}
	}

	if err := s.repo.PutSettings(ctx, companyID, settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}

// normalizeCurrency validates an ISO 4217 code. Empty defaults to USD.
func normalizeCurrency(code string) (string, error) {
	if code == "" {
		return currency.USD.String(), nil
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", errs.Validation("currency", fmt.Sprintf("unknown currency %q", code))
	}

	return unit.String(), nil
}

// normalizeLanguage validates a BCP 47 tag. Empty defaults to en-US.
func normalizeLanguage(tag string) (string, error) {
	if tag == "" {
		return language.AmericanEnglish.String(), nil
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return "", errs.Validation("language", fmt.Sprintf("unknown language %q", tag))
	}

	return parsed.String(), nil
}

func normalizeMonth(field, month string) (string, error) {
	if month == "" {
		return "january", nil
	}

	normalized := strings.ToLower(month)
	if !slices.Contains(months, normalized) {
		return "", errs.Validation(field, fmt.Sprintf("unknown month %q", month))
	}

	return normalized, nil
}
