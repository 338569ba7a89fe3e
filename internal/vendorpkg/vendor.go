// Package vendor manages the vendor directory of a company.
package vendor

import (
	"time"

	"github.com/google/uuid"
)

type Vendor struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
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

	// Eligible1099 marks vendors whose payments must be reported on a
	// form 1099 at year end.
	Eligible1099 bool

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
