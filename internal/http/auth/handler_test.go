package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/company"
	"github.com/finchbooks/finch/internal/errs"
	api "github.com/finchbooks/finch/internal/http/auth"
	"github.com/finchbooks/finch/internal/validate"
)

type fixture struct {
	repo        *auth.MockRepository
	companyRepo *company.MockRepository
	tokens      *auth.TokenManager
	router      chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := auth.NewMockRepository(ctrl)
	companyRepo := company.NewMockRepository(ctrl)

	tokens := auth.NewTokenManager([]byte("test-secret"), 15*time.Minute, 24*time.Hour)
	limiter := auth.NewLoginLimiter(rate.Every(time.Second), 10)
	svc := auth.NewService(repo, tokens, limiter)

	h := api.NewHandler(svc, company.NewService(companyRepo), validate.New())

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		h.Routes(r)
		h.AuthenticatedRoutes(r)
	})

	return &fixture{repo: repo, companyRepo: companyRepo, tokens: tokens, router: router}
}

func (f *fixture) do(t *testing.T, ctx context.Context, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		require.NoError(t, json.NewEncoder(buf).Encode(body))
		reader = buf
	}

	req := httptest.NewRequest(method, target, reader).WithContext(ctx)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func testUser(t *testing.T, password string) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &auth.User{
		ID:           uuid.New(),
		Email:        "dana@example.com",
		PasswordHash: string(hash),
		FirstName:    "Dana",
		LastName:     "Okafor",
	}
}

type sessionBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		UserID    uuid.UUID `json:"user_id"`
		Email     string    `json:"email"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
	} `json:"user"`
}

func TestHandler_Login(t *testing.T) {
	f := newFixture(t)
	user := testUser(t, "Password123!")

	// The service lowercases the email before the lookup; asserting the exact
	// argument here pins that down.
	f.repo.EXPECT().UserByEmail(gomock.Any(), "dana@example.com").Return(user, nil)

	rec := f.do(t, context.Background(), http.MethodPost, "/auth/login", map[string]any{
		"email":    "Dana@Example.com",
		"password": "Password123!",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got sessionBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, user.ID, got.User.UserID)
	assert.Equal(t, "dana@example.com", got.User.Email)
	assert.Equal(t, "Dana", got.User.FirstName)

	subject, err := f.tokens.VerifyAccess(got.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	subject, err = f.tokens.VerifyRefresh(got.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestHandler_LoginFailuresAreUniform(t *testing.T) {
	f := newFixture(t)
	user := testUser(t, "Password123!")

	f.repo.EXPECT().UserByEmail(gomock.Any(), "dana@example.com").Return(user, nil)
	f.repo.EXPECT().UserByEmail(gomock.Any(), "nobody@example.com").
		Return(nil, errs.NotFound("user", "nobody@example.com"))

	wrongPassword := f.do(t, context.Background(), http.MethodPost, "/auth/login", map[string]any{
		"email":    "dana@example.com",
		"password": "not-it",
	})
	unknownEmail := f.do(t, context.Background(), http.MethodPost, "/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "Password123!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Contains(t, wrongPassword.Body.String(), "invalid email or password")
	assert.Contains(t, unknownEmail.Body.String(), "invalid email or password")
}

func TestHandler_LoginRejectsMalformedEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, context.Background(), http.MethodPost, "/auth/login", map[string]any{
		"email":    "not-an-email",
		"password": "Password123!",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestHandler_Refresh(t *testing.T) {
	f := newFixture(t)
	user := testUser(t, "Password123!")

	_, refresh, err := f.tokens.IssuePair(user.ID)
	require.NoError(t, err)

	f.repo.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	rec := f.do(t, context.Background(), http.MethodPost, "/auth/refresh-token", map[string]any{
		"refresh_token": refresh,
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got sessionBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.AccessToken)
	assert.NotEmpty(t, got.RefreshToken)
	assert.Equal(t, user.ID, got.User.UserID)
}

func TestHandler_RefreshRejectsAccessToken(t *testing.T) {
	f := newFixture(t)

	access, _, err := f.tokens.IssuePair(uuid.New())
	require.NoError(t, err)

	rec := f.do(t, context.Background(), http.MethodPost, "/auth/refresh-token", map[string]any{
		"refresh_token": access,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ListCompanies(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.companyRepo.EXPECT().ListForUser(gomock.Any(), userID).Return([]*company.Company{
		{ID: uuid.New(), CompanyName: "Finch Demo Co", Currency: "USD"},
		{ID: uuid.New(), CompanyName: "Second Books LLC", Currency: "EUR"},
	}, nil)

	ctx := auth.WithUser(context.Background(), userID)
	rec := f.do(t, ctx, http.MethodGet, "/auth/companies", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got []struct {
		Company struct {
			CompanyID   uuid.UUID `json:"company_id"`
			CompanyName string    `json:"company_name"`
			Currency    string    `json:"currency"`
		} `json:"company"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "Finch Demo Co", got[0].Company.CompanyName)
	assert.Equal(t, "EUR", got[1].Company.Currency)
}

func TestHandler_GrantAccess(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	companyID := uuid.New()

	f.repo.EXPECT().Member(gomock.Any(), userID, companyID).Return(true, nil)

	ctx := auth.WithUser(context.Background(), userID)
	rec := f.do(t, ctx, http.MethodPost, "/auth/companies/"+companyID.String()+"/access", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Company access granted")
}

func TestHandler_GrantAccessNonMember(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	companyID := uuid.New()

	f.repo.EXPECT().Member(gomock.Any(), userID, companyID).Return(false, nil)

	ctx := auth.WithUser(context.Background(), userID)
	rec := f.do(t, ctx, http.MethodPost, "/auth/companies/"+companyID.String()+"/access", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not a member")
}
