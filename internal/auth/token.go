package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/errs"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the JWT payload. TokenType keeps refresh tokens from being
// presented as access tokens and vice versa.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenManager signs and verifies the HS256 token pair.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret []byte, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssuePair mints a fresh access and refresh token for the user.
func (m *TokenManager) IssuePair(userID uuid.UUID) (access, refresh string, err error) {
	now := time.Now()

	access, err = m.sign(userID, tokenTypeAccess, now, m.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("signing access token: %w", err)
	}

	refresh, err = m.sign(userID, tokenTypeRefresh, now, m.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("signing refresh token: %w", err)
	}

	return access, refresh, nil
}

func (m *TokenManager) sign(userID uuid.UUID, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// VerifyAccess validates an access token and returns the user id it names.
func (m *TokenManager) VerifyAccess(token string) (uuid.UUID, error) {
	return m.verify(token, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns the user id it names.
func (m *TokenManager) VerifyRefresh(token string) (uuid.UUID, error) {
	return m.verify(token, tokenTypeRefresh)
}

func (m *TokenManager) verify(token, wantType string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, errs.Unauthorized("missing token")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &Claims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, errs.Unauthorized("invalid token")
	}

	if claims.TokenType != wantType {
		return uuid.Nil, errs.Unauthorized(fmt.Sprintf("%s token required", wantType))
	}

	userID, err := claims.UserID()
	if err != nil {
		return uuid.Nil, errs.Unauthorized("invalid token subject")
	}

	return userID, nil
}
