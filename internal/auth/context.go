package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	contextKeyUser    contextKey = "auth.user_id"
	contextKeyCompany contextKey = "auth.company_id"
)

// WithUser stores the authenticated user id in the context.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKeyUser, userID)
}

// UserFromContext extracts the authenticated user id. The second return is
// false on unauthenticated requests.
func UserFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(contextKeyUser).(uuid.UUID)
	return userID, ok
}

// WithCompany stores the company id the request is operating under, set by
// the route guard after the membership check.
func WithCompany(ctx context.Context, companyID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKeyCompany, companyID)
}

// CompanyFromContext extracts the company id set by the route guard.
func CompanyFromContext(ctx context.Context) (uuid.UUID, bool) {
	companyID, ok := ctx.Value(contextKeyCompany).(uuid.UUID)
	return companyID, ok
}
