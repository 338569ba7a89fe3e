// Package account manages a company's chart of accounts.
package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type classifies an account within the five-way accounting split.
type Type string

const (
	TypeAssets      Type = "assets"
	TypeLiabilities Type = "liabilities"
	TypeEquity      Type = "equity"
	TypeIncome      Type = "income"
	TypeExpenses    Type = "expenses"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAssets, TypeLiabilities, TypeEquity, TypeIncome, TypeExpenses:
		return true
	}

	return false
}

type Account struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	AccountName     string
	AccountType     Type
	AccountNumber   string
	Description     string
	OpeningBalance  decimal.Decimal
	CurrentBalance  decimal.Decimal
	ParentAccountID *uuid.UUID

	// Version guards concurrent saves; the store rejects writes whose
	// version no longer matches the stored row.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}
