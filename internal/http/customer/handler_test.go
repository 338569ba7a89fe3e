package customer_test

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

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/customer"
	"github.com/finchbooks/finch/internal/errs"
	api "github.com/finchbooks/finch/internal/http/customer"
	"github.com/finchbooks/finch/internal/transaction"
	"github.com/finchbooks/finch/internal/validate"
)

type fixture struct {
	repo      *customer.MockRepository
	txRepo    *transaction.MockRepository
	router    chi.Router
	companyID uuid.UUID
	userID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)
	txRepo := transaction.NewMockRepository(ctrl)
	parties := transaction.NewMockPartyDirectory(ctrl)

	auditRepo := audit.NewMockRepository(ctrl)
	auditRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	h := api.NewHandler(
		customer.NewService(repo),
		transaction.NewService(txRepo, parties),
		audit.NewService(auditRepo, slog.New(slog.DiscardHandler)),
		validate.New(),
	)

	router := chi.NewRouter()
	router.Route("/customers", h.Routes)

	return &fixture{
		repo:      repo,
		txRepo:    txRepo,
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

func (f *fixture) someCustomer(id uuid.UUID) *customer.Customer {
	return &customer.Customer{
		ID:           id,
		CompanyID:    f.companyID,
		CustomerName: "Acme Corp",
		CustomerType: customer.TypeBusiness,
		Email:        "billing@acme.example",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestHandler_Create(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *customer.Customer) error {
			c.ID = id
			c.CreatedAt = time.Now()
			return nil
		})

	rec := f.do(t, http.MethodPost, "/customers/", map[string]any{
		"customer_name": "Acme Corp",
		"customer_type": "business",
		"company_name":  "Acme Corporation",
		"email":         "billing@acme.example",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		CustomerID   uuid.UUID `json:"customer_id"`
		CustomerName string    `json:"customer_name"`
		CustomerType string    `json:"customer_type"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, id, got.CustomerID)
	assert.Equal(t, "Acme Corp", got.CustomerName)
	assert.Equal(t, "business", got.CustomerType)
}

func TestHandler_CreateRejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/customers/", map[string]any{
		"customer_name": "Acme Corp",
		"customer_type": "alien",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer_type")
}

func TestHandler_Balance(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().Get(gomock.Any(), f.companyID, id).Return(f.someCustomer(id), nil)
	f.txRepo.EXPECT().CustomerBalance(gomock.Any(), f.companyID, id).Return(dec("270"), nil)

	rec := f.do(t, http.MethodGet, "/customers/"+id.String()+"/balance", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		CustomerID uuid.UUID       `json:"customer_id"`
		Balance    decimal.Decimal `json:"balance"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, id, got.CustomerID)
	assert.True(t, got.Balance.Equal(dec("270")), "balance %s", got.Balance)
}

func TestHandler_BalanceUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()

	// An unknown customer must 404 rather than report an empty balance.
	f.repo.EXPECT().Get(gomock.Any(), f.companyID, id).
		Return(nil, errs.NotFound("customer", id.String()))

	rec := f.do(t, http.MethodGet, "/customers/"+id.String()+"/balance", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Transactions(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().Get(gomock.Any(), f.companyID, id).Return(f.someCustomer(id), nil)

	posted := &transaction.Transaction{
		ID:              uuid.New(),
		CompanyID:       f.companyID,
		Type:            transaction.TypeInvoice,
		ReferenceNumber: "INV-1001",
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerID:      &id,
		TotalAmount:     dec("270"),
		BalanceDue:      dec("150"),
		IsPosted:        true,
	}
	draft := &transaction.Transaction{
		ID:              uuid.New(),
		CompanyID:       f.companyID,
		Type:            transaction.TypeInvoice,
		TransactionDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CustomerID:      &id,
		TotalAmount:     dec("50"),
	}

	f.txRepo.EXPECT().ListByCustomer(gomock.Any(), f.companyID, id).
		Return([]*transaction.Transaction{posted, draft}, nil)

	rec := f.do(t, http.MethodGet, "/customers/"+id.String()+"/transactions", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got []struct {
		TransactionID   uuid.UUID       `json:"transaction_id"`
		TransactionType string          `json:"transaction_type"`
		TransactionDate string          `json:"transaction_date"`
		TotalAmount     decimal.Decimal `json:"total_amount"`
		BalanceDue      decimal.Decimal `json:"balance_due"`
		Status          string          `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)

	assert.Equal(t, posted.ID, got[0].TransactionID)
	assert.Equal(t, "invoice", got[0].TransactionType)
	assert.Equal(t, "2024-03-01", got[0].TransactionDate)
	assert.True(t, got[0].BalanceDue.Equal(dec("150")))
	assert.Equal(t, "posted", got[0].Status)

	assert.Equal(t, "draft", got[1].Status)
}

func TestHandler_Delete(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.repo.EXPECT().SoftDelete(gomock.Any(), f.companyID, id, f.userID).Return(nil)

	rec := f.do(t, http.MethodDelete, "/customers/"+id.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Customer deleted successfully")
}
