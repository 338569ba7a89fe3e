package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/account"
)

type accountResponse struct {
	AccountID       uuid.UUID       `json:"account_id"`
	CompanyID       uuid.UUID       `json:"company_id"`
	AccountName     string          `json:"account_name"`
	AccountType     account.Type    `json:"account_type"`
	AccountNumber   string          `json:"account_number,omitempty"`
	Description     string          `json:"description,omitempty"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	ParentAccountID *uuid.UUID      `json:"parent_account_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		AccountID:       a.ID,
		CompanyID:       a.CompanyID,
		AccountName:     a.AccountName,
		AccountType:     a.AccountType,
		AccountNumber:   a.AccountNumber,
		Description:     a.Description,
		OpeningBalance:  a.OpeningBalance,
		CurrentBalance:  a.CurrentBalance,
		ParentAccountID: a.ParentAccountID,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}
