package company

import (
	"time"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/company"
)

type companyResponse struct {
	CompanyID       uuid.UUID `json:"company_id"`
	CompanyName     string    `json:"company_name"`
	LegalName       string    `json:"legal_name,omitempty"`
	CompanyType     string    `json:"company_type,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	AddressLine1    string    `json:"address_line1,omitempty"`
	AddressLine2    string    `json:"address_line2,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	ZipCode         string    `json:"zip_code,omitempty"`
	Country         string    `json:"country,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	Website         string    `json:"website,omitempty"`
	FiscalYearStart string    `json:"fiscal_year_start"`
	TaxYearStart    string    `json:"tax_year_start"`
	Currency        string    `json:"currency"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toResponse(c *company.Company) companyResponse {
	return companyResponse{
		CompanyID:       c.ID,
		CompanyName:     c.CompanyName,
		LegalName:       c.LegalName,
		CompanyType:     c.CompanyType,
		Industry:        c.Industry,
		AddressLine1:    c.AddressLine1,
		AddressLine2:    c.AddressLine2,
		City:            c.City,
		State:           c.State,
		ZipCode:         c.ZipCode,
		Country:         c.Country,
		Phone:           c.Phone,
		Email:           c.Email,
		Website:         c.Website,
		FiscalYearStart: c.FiscalYearStart,
		TaxYearStart:    c.TaxYearStart,
		Currency:        c.Currency,
		Language:        c.Language,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toResponseList(companies []*company.Company) []companyResponse {
	resp := make([]companyResponse, len(companies))
	for i, c := range companies {
		resp[i] = toResponse(c)
	}

	return resp
}

type settingResponse struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

func toSettingList(settings []company.Setting) []settingResponse {
	resp := make([]settingResponse, len(settings))
	for i, s := range settings {
		resp[i] = settingResponse(s)
	}

	return resp
}
