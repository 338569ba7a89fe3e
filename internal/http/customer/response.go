package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/customer"
	"github.com/finchbooks/finch/internal/transaction"
)

type customerResponse struct {
	CustomerID   uuid.UUID     `json:"customer_id"`
	CompanyID    uuid.UUID     `json:"company_id"`
	CustomerName string        `json:"customer_name"`
	CustomerType customer.Type `json:"customer_type"`
	FirstName    string        `json:"first_name,omitempty"`
	LastName     string        `json:"last_name,omitempty"`
	CompanyName  string        `json:"company_name,omitempty"`
	Email        string        `json:"email,omitempty"`
	Phone        string        `json:"phone,omitempty"`
	AddressLine1 string        `json:"address_line1,omitempty"`
	AddressLine2 string        `json:"address_line2,omitempty"`
	City         string        `json:"city,omitempty"`
	State        string        `json:"state,omitempty"`
	ZipCode      string        `json:"zip_code,omitempty"`
	Country      string        `json:"country,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		CustomerID:   c.ID,
		CompanyID:    c.CompanyID,
		CustomerName: c.CustomerName,
		CustomerType: c.CustomerType,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		CompanyName:  c.CompanyName,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		Country:      c.Country,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toResponseList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}

// transactionSummary is the compact document view in a customer's history;
// the full document lives under /invoices and /transactions.
type transactionSummary struct {
	TransactionID   uuid.UUID          `json:"transaction_id"`
	TransactionType transaction.Type   `json:"transaction_type"`
	ReferenceNumber string             `json:"reference_number,omitempty"`
	TransactionDate string             `json:"transaction_date"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	BalanceDue      decimal.Decimal    `json:"balance_due"`
	Status          transaction.Status `json:"status"`
}

func toTransactionList(txs []*transaction.Transaction) []transactionSummary {
	resp := make([]transactionSummary, len(txs))
	for i, tx := range txs {
		resp[i] = transactionSummary{
			TransactionID:   tx.ID,
			TransactionType: tx.Type,
			ReferenceNumber: tx.ReferenceNumber,
			TransactionDate: tx.TransactionDate.Format(time.DateOnly),
			TotalAmount:     tx.TotalAmount,
			BalanceDue:      tx.BalanceDue,
			Status:          tx.Status(),
		}
	}

	return resp
}

type balanceResponse struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}
