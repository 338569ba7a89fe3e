package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/payment"
)

type applicationResponse struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	DiscountTaken decimal.Decimal `json:"discount_taken"`
}

type paymentResponse struct {
	PaymentID          uuid.UUID             `json:"payment_id"`
	CompanyID          uuid.UUID             `json:"company_id"`
	CustomerID         *uuid.UUID            `json:"customer_id,omitempty"`
	PaymentDate        string                `json:"payment_date"`
	PaymentType        string                `json:"payment_type,omitempty"`
	PaymentMethod      string                `json:"payment_method,omitempty"`
	ReferenceNumber    string                `json:"reference_number,omitempty"`
	AmountReceived     decimal.Decimal       `json:"amount_received"`
	UnappliedAmount    decimal.Decimal       `json:"unapplied_amount"`
	DepositToAccountID *uuid.UUID            `json:"deposit_to_account_id,omitempty"`
	Memo               string                `json:"memo,omitempty"`
	Applications       []applicationResponse `json:"applications"`
	CreatedAt          time.Time             `json:"created_at"`
}

func toResponse(p *payment.Payment) paymentResponse {
	applications := make([]applicationResponse, len(p.Applications))
	for i, a := range p.Applications {
		applications[i] = applicationResponse(a)
	}

	return paymentResponse{
		PaymentID:          p.ID,
		CompanyID:          p.CompanyID,
		CustomerID:         p.CustomerID,
		PaymentDate:        p.PaymentDate.Format(time.DateOnly),
		PaymentType:        p.PaymentType,
		PaymentMethod:      p.PaymentMethod,
		ReferenceNumber:    p.ReferenceNumber,
		AmountReceived:     p.AmountReceived,
		UnappliedAmount:    p.Unapplied(),
		DepositToAccountID: p.DepositToAccountID,
		Memo:               p.Memo,
		Applications:       applications,
		CreatedAt:          p.CreatedAt,
	}
}

func toResponseList(payments []*payment.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	return resp
}
