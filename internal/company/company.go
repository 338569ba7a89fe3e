// Package company manages companies, their memberships, and per-company
// settings. Every other domain object in the system hangs off a company.
package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID           uuid.UUID
	CompanyName  string
	LegalName    string
	CompanyType  string
	Industry     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Country      string
	Phone        string
	Email        string
	Website      string

	// FiscalYearStart and TaxYearStart name the first month of the
	// respective year, lowercase ("january").
	FiscalYearStart string
	TaxYearStart    string

	// Currency is an ISO 4217 code, Language a BCP 47 tag.
	Currency string
	Language string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Setting is one per-company configuration triple. Settings are namespaced
// by category so unrelated features cannot collide on key names.
type Setting struct {
	Category string
	Key      string
	Value    string
}
