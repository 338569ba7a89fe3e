// Package auth handles user credentials, token issuance, and the membership
// checks that scope every company route to its members.
package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Membership ties a user to a company. Role is advisory for now; every
// member has full access within the company.
type Membership struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      string
	CreatedAt time.Time
}

// Session is what a successful login or refresh hands back to the client.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}
