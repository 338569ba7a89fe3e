package payment_test

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
	api "github.com/finchbooks/finch/internal/http/payment"
	"github.com/finchbooks/finch/internal/payment"
	"github.com/finchbooks/finch/internal/transaction"
	"github.com/finchbooks/finch/internal/validate"
)

type fixture struct {
	repo      *payment.MockRepository
	customers *payment.MockCustomerDirectory
	tx        *payment.MockTx
	router    chi.Router
	companyID uuid.UUID
	userID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := payment.NewMockRepository(ctrl)
	customers := payment.NewMockCustomerDirectory(ctrl)
	svc := payment.NewService(repo, customers)

	auditRepo := audit.NewMockRepository(ctrl)
	auditRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	auditSvc := audit.NewService(auditRepo, slog.New(slog.DiscardHandler))

	h := api.NewHandler(svc, auditSvc, validate.New())

	router := chi.NewRouter()
	router.Route("/payments", h.Routes)

	return &fixture{
		repo:      repo,
		customers: customers,
		tx:        payment.NewMockTx(ctrl),
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

func postedInvoice(companyID uuid.UUID, customerID *uuid.UUID, balance decimal.Decimal) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Type:        transaction.TypeInvoice,
		CustomerID:  customerID,
		TotalAmount: balance,
		BalanceDue:  balance,
		IsPosted:    true,
		Version:     1,
	}
}

func TestHandler_CreateSettlesInvoice(t *testing.T) {
	f := newFixture(t)

	customerID := uuid.New()
	invoice := postedInvoice(f.companyID, &customerID, dec("270"))
	paymentID := uuid.New()

	f.customers.EXPECT().CustomerActive(gomock.Any(), f.companyID, customerID).Return(true, nil)
	f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
	f.tx.EXPECT().LockTarget(gomock.Any(), f.companyID, invoice.ID).Return(invoice, nil)
	f.tx.EXPECT().
		SaveBalance(gomock.Any(), invoice).
		DoAndReturn(func(_ context.Context, target *transaction.Transaction) error {
			assert.True(t, target.BalanceDue.IsZero(), "balance due %s", target.BalanceDue)
			return nil
		})
	f.tx.EXPECT().
		CreatePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *payment.Payment) error {
			p.ID = paymentID
			p.CreatedAt = time.Now()
			return nil
		})
	f.tx.EXPECT().Commit().Return(nil)
	f.tx.EXPECT().Rollback().Return(nil)

	rec := f.do(t, http.MethodPost, "/payments/", map[string]any{
		"customer_id":      customerID.String(),
		"payment_date":     "2024-04-01",
		"payment_method":   "check",
		"reference_number": "CHK-2201",
		"amount_received":  "270",
		"applications": []map[string]any{
			{"transaction_id": invoice.ID.String(), "amount_applied": "270"},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		PaymentID      uuid.UUID       `json:"payment_id"`
		PaymentDate    string          `json:"payment_date"`
		AmountReceived decimal.Decimal `json:"amount_received"`
		Unapplied      decimal.Decimal `json:"unapplied_amount"`
		Applications   []struct {
			TransactionID uuid.UUID       `json:"transaction_id"`
			AmountApplied decimal.Decimal `json:"amount_applied"`
		} `json:"applications"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, paymentID, got.PaymentID)
	assert.Equal(t, "2024-04-01", got.PaymentDate)
	assert.True(t, got.AmountReceived.Equal(dec("270")))
	assert.True(t, got.Unapplied.IsZero(), "unapplied %s", got.Unapplied)
	require.Len(t, got.Applications, 1)
	assert.Equal(t, invoice.ID, got.Applications[0].TransactionID)
}

func TestHandler_CreateRejectsOverpayment(t *testing.T) {
	f := newFixture(t)

	customerID := uuid.New()
	invoice := postedInvoice(f.companyID, &customerID, dec("100"))

	f.customers.EXPECT().CustomerActive(gomock.Any(), f.companyID, customerID).Return(true, nil)
	f.repo.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
	f.tx.EXPECT().LockTarget(gomock.Any(), f.companyID, invoice.ID).Return(invoice, nil)
	f.tx.EXPECT().Rollback().Return(nil)

	rec := f.do(t, http.MethodPost, "/payments/", map[string]any{
		"customer_id":     customerID.String(),
		"payment_date":    "2024-04-01",
		"amount_received": "300",
		"applications": []map[string]any{
			{"transaction_id": invoice.ID.String(), "amount_applied": "300"},
		},
	})

	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var got struct {
		Error      string `json:"error"`
		StatusCode int    `json:"status_code"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, http.StatusConflict, got.StatusCode)
	assert.Contains(t, got.Error, "exceeds balance due")
}

func TestHandler_CreateRequiresPaymentDate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/payments/", map[string]any{
		"amount_received": "50",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "payment_date")
}

func TestHandler_NoUpdateOrDeleteRoutes(t *testing.T) {
	f := newFixture(t)

	id := uuid.New().String()

	rec := f.do(t, http.MethodPut, "/payments/"+id, map[string]any{"memo": "edited"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = f.do(t, http.MethodDelete, "/payments/"+id, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
