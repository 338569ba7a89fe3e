package item

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/item"
)

type itemResponse struct {
	ItemID         uuid.UUID       `json:"item_id"`
	CompanyID      uuid.UUID       `json:"company_id"`
	ItemName       string          `json:"item_name"`
	ItemType       item.Type       `json:"item_type"`
	Description    string          `json:"description,omitempty"`
	SalesPrice     decimal.Decimal `json:"sales_price"`
	PurchaseCost   decimal.Decimal `json:"purchase_cost"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	Manufacturer   string          `json:"manufacturer,omitempty"`
	LowStock       bool            `json:"low_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type lowStockResponse struct {
	Items []itemResponse `json:"items"`
	Total int            `json:"total"`
}

func toResponse(i *item.Item) itemResponse {
	return itemResponse{
		ItemID:         i.ID,
		CompanyID:      i.CompanyID,
		ItemName:       i.ItemName,
		ItemType:       i.ItemType,
		Description:    i.Description,
		SalesPrice:     i.SalesPrice,
		PurchaseCost:   i.PurchaseCost,
		QuantityOnHand: i.QuantityOnHand,
		ReorderPoint:   i.ReorderPoint,
		Manufacturer:   i.Manufacturer,
		LowStock:       i.LowStock(),
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func toResponseList(items []*item.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toResponse(it)
	}

	return resp
}
