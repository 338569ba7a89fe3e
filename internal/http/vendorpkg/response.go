package vendor

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/transaction"
	"github.com/finchbooks/finch/internal/vendorpkg"
)

type vendorResponse struct {
	VendorID      uuid.UUID `json:"vendor_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	VendorName    string    `json:"vendor_name"`
	VendorType    string    `json:"vendor_type,omitempty"`
	CompanyName   string    `json:"company_name,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	AddressLine1  string    `json:"address_line1,omitempty"`
	AddressLine2  string    `json:"address_line2,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	ZipCode       string    `json:"zip_code,omitempty"`
	Country       string    `json:"country,omitempty"`
	Eligible1099  bool      `json:"eligible_1099"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toResponse(v *vendor.Vendor) vendorResponse {
	return vendorResponse{
		VendorID:      v.ID,
		CompanyID:     v.CompanyID,
		VendorName:    v.VendorName,
		VendorType:    v.VendorType,
		CompanyName:   v.CompanyName,
		ContactPerson: v.ContactPerson,
		Email:         v.Email,
		Phone:         v.Phone,
		AddressLine1:  v.AddressLine1,
		AddressLine2:  v.AddressLine2,
		City:          v.City,
		State:         v.State,
		ZipCode:       v.ZipCode,
		Country:       v.Country,
		Eligible1099:  v.Eligible1099,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toResponseList(vendors []*vendor.Vendor) []vendorResponse {
	resp := make([]vendorResponse, len(vendors))
	for i, v := range vendors {
		resp[i] = toResponse(v)
	}

	return resp
}

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
