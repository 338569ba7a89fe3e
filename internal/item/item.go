// Package item manages products and services a company sells or buys.
package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeInventory    Type = "inventory"
	TypeService      Type = "service"
	TypeNonInventory Type = "non_inventory"
)

func (t Type) Valid() bool {
	switch t {
	case TypeInventory, TypeService, TypeNonInventory:
		return true
	}

	return false
}

type Item struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	ItemName       string
	ItemType       Type
	Description    string
	SalesPrice     decimal.Decimal
	PurchaseCost   decimal.Decimal
	QuantityOnHand decimal.Decimal
	ReorderPoint   decimal.Decimal
	Manufacturer   string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock reports whether the on-hand quantity has fallen to or below the
// reorder point. Only inventory items ever count as low stock.
func (i *Item) LowStock() bool {
	if i.ItemType != TypeInventory {
		return false
	}

	return i.QuantityOnHand.LessThanOrEqual(i.ReorderPoint)
}
