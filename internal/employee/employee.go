// Package employee manages the employee roster of a company.
package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayType string

const (
	PayHourly PayType = "hourly"
	PaySalary PayType = "salary"
)

func (p PayType) Valid() bool {
	return p == PayHourly || p == PaySalary
}

type Employee struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
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
	HourlyRate   decimal.Decimal
	AnnualSalary decimal.Decimal

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
