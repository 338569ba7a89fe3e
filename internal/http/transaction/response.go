package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/transaction"
)

type lineResponse struct {
	LineNumber     int                  `json:"line_number"`
	LineType       transaction.LineType `json:"line_type"`
	ItemID         *uuid.UUID           `json:"item_id,omitempty"`
	AccountID      *uuid.UUID           `json:"account_id,omitempty"`
	Description    string               `json:"description,omitempty"`
	Quantity       decimal.Decimal      `json:"quantity"`
	UnitPrice      decimal.Decimal      `json:"unit_price"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	TaxRate        decimal.Decimal      `json:"tax_rate"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	LineTotal      decimal.Decimal      `json:"line_total"`
}

type transactionResponse struct {
	TransactionID   uuid.UUID            `json:"transaction_id"`
	CompanyID       uuid.UUID            `json:"company_id"`
	TransactionType transaction.Type     `json:"transaction_type"`
	ReferenceNumber string               `json:"reference_number,omitempty"`
	TransactionDate string               `json:"transaction_date"`
	DueDate         string               `json:"due_date,omitempty"`
	CustomerID      *uuid.UUID           `json:"customer_id,omitempty"`
	VendorID        *uuid.UUID           `json:"vendor_id,omitempty"`
	Memo            string               `json:"memo,omitempty"`
	PaymentTerms    string               `json:"payment_terms,omitempty"`
	BillingAddress  *transaction.Address `json:"billing_address,omitempty"`
	ShippingAddress *transaction.Address `json:"shipping_address,omitempty"`
	Lines           []lineResponse       `json:"lines"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	BalanceDue  decimal.Decimal `json:"balance_due"`

	Status      transaction.Status `json:"status"`
	IsPosted    bool               `json:"is_posted"`
	PostingDate string             `json:"posting_date,omitempty"`
	IsVoid      bool               `json:"is_void"`
	VoidReason  string             `json:"void_reason,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	lines := make([]lineResponse, len(tx.Lines))
	for i, l := range tx.Lines {
		lines[i] = lineResponse{
			LineNumber:     l.LineNumber,
			LineType:       l.LineType,
			ItemID:         l.ItemID,
			AccountID:      l.AccountID,
			Description:    l.Description,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.DiscountAmount,
			TaxRate:        l.TaxRate,
			TaxAmount:      l.TaxAmount,
			LineTotal:      l.LineTotal,
		}
	}

	return transactionResponse{
		TransactionID:   tx.ID,
		CompanyID:       tx.CompanyID,
		TransactionType: tx.Type,
		ReferenceNumber: tx.ReferenceNumber,
		TransactionDate: tx.TransactionDate.Format(time.DateOnly),
		DueDate:         dateString(tx.DueDate),
		CustomerID:      tx.CustomerID,
		VendorID:        tx.VendorID,
		Memo:            tx.Memo,
		PaymentTerms:    tx.PaymentTerms,
		BillingAddress:  tx.BillingAddress,
		ShippingAddress: tx.ShippingAddress,
		Lines:           lines,
		Subtotal:        tx.Subtotal,
		TaxAmount:       tx.TaxAmount,
		TotalAmount:     tx.TotalAmount,
		BalanceDue:      tx.BalanceDue,
		Status:          tx.Status(),
		IsPosted:        tx.IsPosted,
		PostingDate:     dateString(tx.PostingDate),
		IsVoid:          tx.IsVoid,
		VoidReason:      tx.VoidReason,
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(time.DateOnly)
}
