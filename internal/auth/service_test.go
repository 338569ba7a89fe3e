package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/errs"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
}

func newLimiter() *auth.LoginLimiter {
	return auth.NewLoginLimiter(rate.Limit(100), 100)
}

func hash(t *testing.T, password string) string {
	t.Helper()

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(h)
}

func TestService_Login(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	user := &auth.User{ID: userID, Email: "demo@finchbooks.com", PasswordHash: hash(t, "Password123!")}
	repo.EXPECT().UserByEmail(gomock.Any(), "demo@finchbooks.com").Return(user, nil)

	svc := auth.NewService(repo, newTokens(), newLimiter())

	session, err := svc.Login(context.Background(), " Demo@FinchBooks.com ", "Password123!")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, userID, session.User.ID)

	got, err := svc.Authenticate(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	user := &auth.User{ID: uuid.New(), Email: "demo@finchbooks.com", PasswordHash: hash(t, "Password123!")}
	repo.EXPECT().UserByEmail(gomock.Any(), "demo@finchbooks.com").Return(user, nil)

	svc := auth.NewService(repo, newTokens(), newLimiter())

	_, err := svc.Login(context.Background(), "demo@finchbooks.com", "wrong")
	require.Error(t, err)

	var uerr *errs.UnauthorizedError
	assert.ErrorAs(t, err, &uerr)
}

func TestService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().UserByEmail(gomock.Any(), "nobody@example.com").
		Return(nil, errs.NotFound("user", "nobody@example.com"))

	svc := auth.NewService(repo, newTokens(), newLimiter())

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.Error(t, err)

	var uerr *errs.UnauthorizedError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "invalid email or password", uerr.Msg)
}

func TestService_Login_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	user := &auth.User{ID: uuid.New(), Email: "demo@finchbooks.com", PasswordHash: hash(t, "Password123!")}
	repo.EXPECT().UserByEmail(gomock.Any(), "demo@finchbooks.com").Return(user, nil).Times(2)

	// Two attempts allowed, then the bucket is dry.
	svc := auth.NewService(repo, newTokens(), auth.NewLoginLimiter(rate.Limit(0.001), 2))

	ctx := context.Background()

	for range 2 {
		_, err := svc.Login(ctx, "demo@finchbooks.com", "Password123!")
		require.NoError(t, err)
	}

	_, err := svc.Login(ctx, "demo@finchbooks.com", "Password123!")
	require.Error(t, err)

	var rerr *errs.RateLimitError
	assert.ErrorAs(t, err, &rerr)
}

func TestService_Refresh(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	user := &auth.User{ID: userID, Email: "demo@finchbooks.com"}
	repo.EXPECT().UserByEmail(gomock.Any(), "demo@finchbooks.com").Return(&auth.User{
		ID: userID, Email: "demo@finchbooks.com", PasswordHash: hash(t, "Password123!"),
	}, nil)
	repo.EXPECT().UserByID(gomock.Any(), userID).Return(user, nil)

	svc := auth.NewService(repo, newTokens(), newLimiter())

	session, err := svc.Login(context.Background(), "demo@finchbooks.com", "Password123!")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, userID, refreshed.User.ID)
}

func TestService_Refresh_AccessTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)

	tokens := newTokens()
	access, _, err := tokens.IssuePair(uuid.New())
	require.NoError(t, err)

	svc := auth.NewService(repo, tokens, newLimiter())

	_, err = svc.Refresh(context.Background(), access)
	require.Error(t, err)

	var uerr *errs.UnauthorizedError
	assert.ErrorAs(t, err, &uerr)
}

func TestService_Authorize(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().Member(gomock.Any(), userID, companyID).Return(true, nil)

	svc := auth.NewService(repo, newTokens(), newLimiter())

	require.NoError(t, svc.Authorize(context.Background(), userID, companyID))
}

func TestService_Authorize_NonMemberForbidden(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	repo.EXPECT().Member(gomock.Any(), userID, companyID).Return(false, nil)

	svc := auth.NewService(repo, newTokens(), newLimiter())

	err := svc.Authorize(context.Background(), userID, companyID)
	require.Error(t, err)

	var ferr *errs.ForbiddenError
	assert.ErrorAs(t, err, &ferr)
}
