package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finchbooks/finch/internal/errs"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth

// Repository persists users and company memberships.
type Repository interface {
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*User, error)
	Member(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
}

type Service struct {
	repo    Repository
	tokens  *TokenManager
	limiter *LoginLimiter
}

func NewService(repo Repository, tokens *TokenManager, limiter *LoginLimiter) *Service {
	return &Service{repo: repo, tokens: tokens, limiter: limiter}
}

// Login checks the credentials and mints a token pair. Failures are
// deliberately indistinguishable between unknown email and wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errs.Validation("email", "required")
	}

	if password == "" {
		return nil, errs.Validation("password", "required")
	}

	if !s.limiter.Allow(email) {
		return nil, errs.RateLimited("too many login attempts; slow down")
	}

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errs.Expected(err) {
			return nil, errs.Unauthorized("invalid email or password")
		}

		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.Unauthorized("invalid email or password")
	}

	access, refresh, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh trades a valid refresh token for a fresh pair. The refresh token
// is stateless; revocation happens by rotating the signing secret.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UserByID(ctx, userID)
	if err != nil {
		if errs.Expected(err) {
			return nil, errs.Unauthorized("unknown user")
		}

		return nil, fmt.Errorf("looking up user: %w", err)
	}

	access, refresh, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Authenticate validates a bearer token and returns the user id for the
// request context.
func (s *Service) Authenticate(token string) (uuid.UUID, error) {
	return s.tokens.VerifyAccess(token)
}

// Authorize confirms the user belongs to the company. Non-members get a
// ForbiddenError, not a 404: the company's existence is not a secret, its
// books are.
func (s *Service) Authorize(ctx context.Context, userID, companyID uuid.UUID) error {
	member, err := s.repo.Member(ctx, userID, companyID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}

	if !member {
		return errs.Forbidden("not a member of this company")
	}

	return nil
}
