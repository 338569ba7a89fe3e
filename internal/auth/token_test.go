package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/errs"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := auth.NewTokenManager([]byte("secret"), time.Minute, time.Hour)
	userID := uuid.New()

	access, refresh, err := m.IssuePair(userID)
	require.NoError(t, err)

	got, err := m.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = m.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_TypeConfusionRejected(t *testing.T) {
	m := auth.NewTokenManager([]byte("secret"), time.Minute, time.Hour)

	access, refresh, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.VerifyAccess(refresh)
	assertUnauthorized(t, err)

	_, err = m.VerifyRefresh(access)
	assertUnauthorized(t, err)
}

func TestTokenManager_ExpiredRejected(t *testing.T) {
	m := auth.NewTokenManager([]byte("secret"), -time.Minute, -time.Minute)

	access, _, err := m.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = m.VerifyAccess(access)
	assertUnauthorized(t, err)
}

func TestTokenManager_WrongSecretRejected(t *testing.T) {
	issuer := auth.NewTokenManager([]byte("secret-a"), time.Minute, time.Hour)
	verifier := auth.NewTokenManager([]byte("secret-b"), time.Minute, time.Hour)

	access, _, err := issuer.IssuePair(uuid.New())
	require.NoError(t, err)

	_, err = verifier.VerifyAccess(access)
	assertUnauthorized(t, err)
}

func TestTokenManager_GarbageRejected(t *testing.T) {
	m := auth.NewTokenManager([]byte("secret"), time.Minute, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.VerifyAccess(token)
		assertUnauthorized(t, err)
	}
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)

	var uerr *errs.UnauthorizedError
	assert.ErrorAs(t, err, &uerr)
}
