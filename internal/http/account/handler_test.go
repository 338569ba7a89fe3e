package account_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/finchbooks/finch/internal/account"
	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	api "github.com/finchbooks/finch/internal/http/account"
	"github.com/finchbooks/finch/internal/validate"
)

type fixture struct {
	repo      *account.MockRepository
	router    chi.Router
	companyID uuid.UUID
	userID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := account.NewMockRepository(ctrl)

	auditRepo := audit.NewMockRepository(ctrl)
	auditRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h := api.NewHandler(
		account.NewService(repo),
		audit.NewService(auditRepo, slog.New(slog.DiscardHandler)),
		validate.New(),
	)

	router := chi.NewRouter()
	router.Route("/accounts", h.Routes)

	return &fixture{
		repo:      repo,
		router:    router,
		companyID: uuid.New(),
		userID:    uuid.New(),
	}
}

func (f *fixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		require.NoError(t, json.NewEncoder(buf).Encode(body))
		reader = buf
	}

	ctx := auth.WithUser(context.Background(), f.userID)
	ctx = auth.WithCompany(ctx, f.companyID)

	req := httptest.NewRequest(method, target, reader).WithContext(ctx)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestHandler_Create(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *account.Account) error {
			a.ID = id
			a.CreatedAt = time.Now()
			return nil
		})

	rec := f.do(t, http.MethodPost, "/accounts/", map[string]any{
		"account_name":    "Checking",
		"account_type":    "assets",
		"account_number":  "1000",
		"opening_balance": "500.00",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		AccountID      uuid.UUID       `json:"account_id"`
		AccountName    string          `json:"account_name"`
		AccountType    string          `json:"account_type"`
		OpeningBalance decimal.Decimal `json:"opening_balance"`
		CurrentBalance decimal.Decimal `json:"current_balance"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, id, got.AccountID)
	assert.Equal(t, "Checking", got.AccountName)
	assert.Equal(t, "assets", got.AccountType)
	assert.True(t, got.OpeningBalance.Equal(dec("500")))
	assert.True(t, got.CurrentBalance.Equal(dec("500")), "opening balance seeds the running balance")
}

func TestHandler_CreateRejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/accounts/", map[string]any{
		"account_name": "Petty Cash",
		"account_type": "slush",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "account_type")
}

func TestHandler_Merge(t *testing.T) {
	f := newFixture(t)

	sourceID := uuid.New()
	targetID := uuid.New()

	f.repo.EXPECT().Merge(gomock.Any(), f.companyID, sourceID, targetID, f.userID).Return(nil)

	rec := f.do(t, http.MethodPost,
		"/accounts/"+sourceID.String()+"/merge?target_account_id="+targetID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Account merged successfully", got.Message)
}

func TestHandler_MergeRequiresTarget(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/accounts/"+uuid.New().String()+"/merge", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "target_account_id")
}

func TestHandler_MergeIntoItself(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	rec := f.do(t, http.MethodPost,
		"/accounts/"+id.String()+"/merge?target_account_id="+id.String(), nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot merge an account into itself")
}

func TestHandler_Delete(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().SoftDelete(gomock.Any(), f.companyID, id, f.userID).Return(nil)

	rec := f.do(t, http.MethodDelete, "/accounts/"+id.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Account deleted successfully")
}
