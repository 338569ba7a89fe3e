package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/company"
)

type userResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type sessionResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *userResponse `json:"user,omitempty"`
}

func toSessionResponse(s *auth.Session) sessionResponse {
	resp := sessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}

	if s.User != nil {
		resp.User = &userResponse{
			UserID:    s.User.ID,
			Email:     s.User.Email,
			FirstName: s.User.FirstName,
			LastName:  s.User.LastName,
		}
	}

	return resp
}

// companySummary is the trimmed company view inside a membership. The full
// resource lives under /companies.
type companySummary struct {
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Currency    string    `json:"currency"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
}

type membershipResponse struct {
	Company companySummary `json:"company"`
}

func toMembershipList(companies []*company.Company) []membershipResponse {
	resp := make([]membershipResponse, len(companies))
	for i, c := range companies {
		resp[i] = membershipResponse{
			Company: companySummary{
				CompanyID:   c.ID,
				CompanyName: c.CompanyName,
				Currency:    c.Currency,
				Language:    c.Language,
				CreatedAt:   c.CreatedAt,
			},
		}
	}

	return resp
}
