package transaction_test

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
	api "github.com/finchbooks/finch/internal/http/transaction"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/transaction"
	"github.com/finchbooks/finch/internal/validate"
)

type fixture struct {
	repo      *transaction.MockRepository
	parties   *transaction.MockPartyDirectory
	router    chi.Router
	companyID uuid.UUID
	userID    uuid.UUID
}

// newFixture mounts a handler the way the router does: documents at /invoices
// and /bills, the untyped collection at /transactions. The company and user
// ids are injected into the request context in place of the route guards.
func newFixture(t *testing.T, mount string, docType transaction.Type) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	parties := transaction.NewMockPartyDirectory(ctrl)
	svc := transaction.NewService(repo, parties)

	auditRepo := audit.NewMockRepository(ctrl)
	auditRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	auditSvc := audit.NewService(auditRepo, slog.New(slog.DiscardHandler))

	var h *api.Handler
	if docType == "" {
		h = api.NewHandler(svc, auditSvc, validate.New())
	} else {
		h = api.NewDocumentHandler(svc, auditSvc, validate.New(), docType)
	}

	router := chi.NewRouter()
	router.Route(mount, h.Routes)

	return &fixture{
		repo:      repo,
		parties:   parties,
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

func TestHandler_CreateInvoice(t *testing.T) {
	f := newFixture(t, "/invoices", transaction.TypeInvoice)

	customerID := uuid.New()
	txID := uuid.New()

	f.parties.EXPECT().CustomerActive(gomock.Any(), f.companyID, customerID).Return(true, nil)
	f.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			tx.ID = txID
			tx.CreatedAt = time.Now()
			return nil
		})

	rec := f.do(t, http.MethodPost, "/invoices/", map[string]any{
		"reference_number": "INV-1001",
		"transaction_date": "2024-03-01",
		"due_date":         "2024-03-31",
		"customer_id":      customerID.String(),
		"billing_address": map[string]any{
			"line1": "100 Main St",
			"city":  "Springfield",
		},
		"lines": []map[string]any{
			{
				"description":     "Design work",
				"quantity":        "2",
				"unit_price":      "100.00",
				"discount_amount": "10.00",
				"tax_amount":      "15.00",
			},
			{
				"quantity":        "1",
				"unit_price":      "50.00",
				"discount_amount": "5.00",
				"tax_amount":      "20.00",
			},
		},
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		TransactionID   uuid.UUID       `json:"transaction_id"`
		TransactionType string          `json:"transaction_type"`
		TransactionDate string          `json:"transaction_date"`
		DueDate         string          `json:"due_date"`
		Status          string          `json:"status"`
		Subtotal        decimal.Decimal `json:"subtotal"`
		TaxAmount       decimal.Decimal `json:"tax_amount"`
		TotalAmount     decimal.Decimal `json:"total_amount"`
		BalanceDue      decimal.Decimal `json:"balance_due"`
		IsPosted        bool            `json:"is_posted"`
		Lines           []struct {
			LineNumber int             `json:"line_number"`
			LineTotal  decimal.Decimal `json:"line_total"`
		} `json:"lines"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, txID, got.TransactionID)
	assert.Equal(t, "invoice", got.TransactionType)
	assert.Equal(t, "2024-03-01", got.TransactionDate)
	assert.Equal(t, "2024-03-31", got.DueDate)
	assert.Equal(t, "draft", got.Status)
	assert.False(t, got.IsPosted)
	assert.True(t, got.Subtotal.Equal(dec("235")), "subtotal %s", got.Subtotal)
	assert.True(t, got.TaxAmount.Equal(dec("35")), "tax %s", got.TaxAmount)
	assert.True(t, got.TotalAmount.Equal(dec("270")), "total %s", got.TotalAmount)
	assert.True(t, got.BalanceDue.IsZero(), "drafts carry no balance until posted, got %s", got.BalanceDue)

	require.Len(t, got.Lines, 2)
	assert.Equal(t, 1, got.Lines[0].LineNumber)
	assert.True(t, got.Lines[0].LineTotal.Equal(dec("205")), "line 1 total %s", got.Lines[0].LineTotal)
	assert.Equal(t, 2, got.Lines[1].LineNumber)
	assert.True(t, got.Lines[1].LineTotal.Equal(dec("65")), "line 2 total %s", got.Lines[1].LineTotal)
}

func TestHandler_CreateRejectsForeignType(t *testing.T) {
	f := newFixture(t, "/bills", transaction.TypeBill)

	customerID := uuid.New()

	rec := f.do(t, http.MethodPost, "/bills/", map[string]any{
		"transaction_type": "invoice",
		"transaction_date": "2024-03-01",
		"customer_id":      customerID.String(),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var got struct {
		Error      string `json:"error"`
		StatusCode int    `json:"status_code"`
		Path       string `json:"path"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Equal(t, "/bills/", got.Path)
	assert.Contains(t, got.Error, "must be bill")
}

func TestHandler_CreateRejectsBadDate(t *testing.T) {
	f := newFixture(t, "/invoices", transaction.TypeInvoice)

	rec := f.do(t, http.MethodPost, "/invoices/", map[string]any{
		"transaction_date": "03/01/2024",
		"customer_id":      uuid.New().String(),
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "transaction_date")
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestHandler_GetHidesForeignType(t *testing.T) {
	f := newFixture(t, "/bills", transaction.TypeBill)

	id := uuid.New()
	customerID := uuid.New()
	f.repo.EXPECT().Get(gomock.Any(), f.companyID, id).Return(&transaction.Transaction{
		ID:         id,
		CompanyID:  f.companyID,
		Type:       transaction.TypeInvoice,
		CustomerID: &customerID,
	}, nil)

	rec := f.do(t, http.MethodGet, "/bills/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestHandler_ListParsesFilters(t *testing.T) {
	f := newFixture(t, "/transactions", "")

	customerID := uuid.New()

	f.repo.EXPECT().
		List(gomock.Any(), f.companyID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter, page pagination.Params) ([]*transaction.Transaction, int, error) {
			require.NotNil(t, filter.Type)
			assert.Equal(t, transaction.TypeInvoice, *filter.Type)
			require.NotNil(t, filter.Status)
			assert.Equal(t, transaction.StatusDraft, *filter.Status)
			require.NotNil(t, filter.CustomerID)
			assert.Equal(t, customerID, *filter.CustomerID)
			require.NotNil(t, filter.StartDate)
			assert.Equal(t, "2024-01-01", filter.StartDate.Format(time.DateOnly))
			require.NotNil(t, filter.EndDate)
			assert.Equal(t, "2024-06-30", filter.EndDate.Format(time.DateOnly))
			assert.Equal(t, 2, page.Page)
			assert.Equal(t, 10, page.PageSize)
			return nil, 0, nil
		})

	rec := f.do(t, http.MethodGet,
		"/transactions/?transaction_type=invoice&status=draft&customer_id="+customerID.String()+
			"&start_date=2024-01-01&end_date=2024-06-30&page=2&page_size=10", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Items    []json.RawMessage `json:"items"`
		Total    int               `json:"total"`
		Page     int               `json:"page"`
		PageSize int               `json:"page_size"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotNil(t, got.Items)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.PageSize)
}

func TestHandler_Post(t *testing.T) {
	f := newFixture(t, "/transactions", "")

	id := uuid.New()
	customerID := uuid.New()
	draft := &transaction.Transaction{
		ID:              id,
		CompanyID:       f.companyID,
		Type:            transaction.TypeInvoice,
		CustomerID:      &customerID,
		TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:        dec("235"),
		TaxAmount:       dec("35"),
		TotalAmount:     dec("270"),
		BalanceDue:      dec("270"),
		Version:         1,
	}

	ctrl := gomock.NewController(t)
	ltx := transaction.NewMockLifecycleTx(ctrl)
	ltx.EXPECT().Get(gomock.Any()).Return(draft, nil)
	ltx.EXPECT().Save(gomock.Any(), draft).Return(nil)
	ltx.EXPECT().Commit().Return(nil)
	ltx.EXPECT().Rollback().Return(nil)
	f.repo.EXPECT().BeginLifecycle(gomock.Any(), f.companyID, id).Return(ltx, nil)

	rec := f.do(t, http.MethodPost, "/transactions/"+id.String()+"/post", map[string]any{
		"posting_date": "2024-03-05",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		IsPosted    bool   `json:"is_posted"`
		PostingDate string `json:"posting_date"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.True(t, got.IsPosted)
	assert.Equal(t, "2024-03-05", got.PostingDate)
	assert.Equal(t, "posted", got.Status)
}

func TestHandler_VoidRequiresReason(t *testing.T) {
	f := newFixture(t, "/transactions", "")

	rec := f.do(t, http.MethodPost, "/transactions/"+uuid.New().String()+"/void", map[string]any{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "reason")
}

func TestHandler_LifecycleRoutesOnlyOnGenericCollection(t *testing.T) {
	f := newFixture(t, "/invoices", transaction.TypeInvoice)

	rec := f.do(t, http.MethodPost, "/invoices/"+uuid.New().String()+"/post", map[string]any{
		"posting_date": "2024-03-05",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteRejectsPosted(t *testing.T) {
	f := newFixture(t, "/transactions", "")

	id := uuid.New()
	customerID := uuid.New()
	posted := &transaction.Transaction{
		ID:         id,
		CompanyID:  f.companyID,
		Type:       transaction.TypeInvoice,
		CustomerID: &customerID,
		IsPosted:   true,
		BalanceDue: dec("100"),
	}

	f.repo.EXPECT().Get(gomock.Any(), f.companyID, id).Return(posted, nil).Times(2)

	rec := f.do(t, http.MethodDelete, "/transactions/"+id.String(), nil)

	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "void first")
}
