package payment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/payment"
	"github.com/finchbooks/finch/internal/validate"
)

type Handler struct {
	svc   *payment.Service
	audit *audit.Service
	check *validate.Validator
}

func NewHandler(svc *payment.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, audit: audit, check: check}
}

// Routes mounts the payment endpoints. There is no update or delete:
// payments are immutable once recorded.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type applicationPayload struct {
	TransactionID uuid.UUID       `json:"transaction_id" validate:"required"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	DiscountTaken decimal.Decimal `json:"discount_taken"`
}

type createPaymentRequest struct {
	CustomerID         *uuid.UUID           `json:"customer_id"`
	PaymentDate        string               `json:"payment_date" validate:"required"`
	PaymentType        string               `json:"payment_type"`
	PaymentMethod      string               `json:"payment_method"`
	ReferenceNumber    string               `json:"reference_number"`
	AmountReceived     decimal.Decimal      `json:"amount_received"`
	DepositToAccountID *uuid.UUID           `json:"deposit_to_account_id"`
	Memo               string               `json:"memo"`
	Applications       []applicationPayload `json:"applications" validate:"dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	paymentDate, err := time.Parse(time.DateOnly, req.PaymentDate)
	if err != nil {
		respond.Error(w, r, errs.Validation("payment_date", "must be YYYY-MM-DD"))
		return
	}

	applications := make([]payment.ApplicationParams, len(req.Applications))
	for i, a := range req.Applications {
		applications[i] = payment.ApplicationParams(a)
	}

	p, err := h.svc.Create(r.Context(), companyID, payment.CreateParams{
		CustomerID:         req.CustomerID,
		PaymentDate:        paymentDate,
		PaymentType:        req.PaymentType,
		PaymentMethod:      req.PaymentMethod,
		ReferenceNumber:    req.ReferenceNumber,
		AmountReceived:     req.AmountReceived,
		DepositToAccountID: req.DepositToAccountID,
		Memo:               req.Memo,
		Applications:       applications,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionPayment, "payment", p.ID.String(), p.ReferenceNumber)

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	page := pagination.FromRequest(r)

	payments, total, err := h.svc.List(r.Context(), companyID, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.List(w, toResponseList(payments), total, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	p, err := h.svc.Get(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}
