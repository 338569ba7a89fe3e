// Package customer manages the customer directory of a company.
package customer

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBusiness   Type = "business"
	TypeIndividual Type = "individual"
)

func (t Type) Valid() bool {
	return t == TypeBusiness || t == TypeIndividual
}

type Customer struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
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

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
