package transaction

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
	"github.com/finchbooks/finch/internal/transaction"
	"github.com/finchbooks/finch/internal/validate"
)

// Handler serves one document collection. A fixed docType scopes the
// collection to a single type, backing /invoices and /bills; the untyped
// handler behind /transactions serves every document and carries the
// lifecycle endpoints.
type Handler struct {
	svc     *transaction.Service
	audit   *audit.Service
	check   *validate.Validator
	docType transaction.Type
}

func NewHandler(svc *transaction.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, audit: audit, check: check}
}

func NewDocumentHandler(svc *transaction.Service, audit *audit.Service, check *validate.Validator, docType transaction.Type) *Handler {
	return &Handler{svc: svc, audit: audit, check: check, docType: docType}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)

	if h.docType == "" {
		r.Post("/{id}/post", h.post)
		r.Post("/{id}/void", h.void)
	}
}

type addressPayload struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

func (a *addressPayload) toAddress() *transaction.Address {
	if a == nil {
		return nil
	}

	addr := transaction.Address(*a)

	return &addr
}

type linePayload struct {
	LineNumber     int              `json:"line_number"`
	LineType       string           `json:"line_type"`
	ItemID         *uuid.UUID       `json:"item_id"`
	AccountID      *uuid.UUID       `json:"account_id"`
	Description    string           `json:"description"`
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	TaxRate        *decimal.Decimal `json:"tax_rate"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
}

func toLineParams(lines []linePayload) []transaction.LineParams {
	params := make([]transaction.LineParams, len(lines))
	for i, l := range lines {
		params[i] = transaction.LineParams{
			LineNumber:     l.LineNumber,
			LineType:       transaction.LineType(l.LineType),
			ItemID:         l.ItemID,
			AccountID:      l.AccountID,
			Description:    l.Description,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			DiscountAmount: l.DiscountAmount,
			TaxRate:        l.TaxRate,
			TaxAmount:      l.TaxAmount,
		}
	}

	return params
}

type createTransactionRequest struct {
	TransactionType string          `json:"transaction_type" validate:"omitempty,oneof=invoice bill payment sales_receipt journal_entry"`
	ReferenceNumber string          `json:"reference_number"`
	TransactionDate string          `json:"transaction_date" validate:"required"`
	DueDate         string          `json:"due_date"`
	CustomerID      *uuid.UUID      `json:"customer_id"`
	VendorID        *uuid.UUID      `json:"vendor_id"`
	Memo            string          `json:"memo"`
	PaymentTerms    string          `json:"payment_terms"`
	BillingAddress  *addressPayload `json:"billing_address"`
	ShippingAddress *addressPayload `json:"shipping_address"`
	Lines           []linePayload   `json:"lines"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	docType := transaction.Type(req.TransactionType)

	if h.docType != "" {
		switch docType {
		case "":
			docType = h.docType
		case h.docType:
		default:
			respond.Error(w, r, errs.Validation("transaction_type", "must be "+string(h.docType)))
			return
		}
	}

	transactionDate, err := time.Parse(time.DateOnly, req.TransactionDate)
	if err != nil {
		respond.Error(w, r, errs.Validation("transaction_date", "must be YYYY-MM-DD"))
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			respond.Error(w, r, errs.Validation("due_date", "must be YYYY-MM-DD"))
			return
		}

		dueDate = &d
	}

	tx, err := h.svc.Create(r.Context(), companyID, transaction.CreateParams{
		Type:            docType,
		ReferenceNumber: req.ReferenceNumber,
		TransactionDate: transactionDate,
		DueDate:         dueDate,
		CustomerID:      req.CustomerID,
		VendorID:        req.VendorID,
		Memo:            req.Memo,
		PaymentTerms:    req.PaymentTerms,
		BillingAddress:  req.BillingAddress.toAddress(),
		ShippingAddress: req.ShippingAddress.toAddress(),
		Lines:           toLineParams(req.Lines),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionCreate, string(tx.Type), tx.ID.String(), tx.ReferenceNumber)

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	filter := transaction.ListFilter{}
	q := r.URL.Query()

	if h.docType != "" {
		docType := h.docType
		filter.Type = &docType
	} else if s := q.Get("transaction_type"); s != "" {
		t := transaction.Type(s)
		if !t.Valid() {
			respond.Error(w, r, errs.Validation("transaction_type", "unknown transaction type"))
			return
		}

		filter.Type = &t
	}

	if s := q.Get("status"); s != "" {
		status := transaction.Status(s)
		filter.Status = &status
	}

	if s := q.Get("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, errs.Validation("customer_id", "must be a valid UUID"))
			return
		}

		filter.CustomerID = &id
	}

	if s := q.Get("vendor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.Error(w, r, errs.Validation("vendor_id", "must be a valid UUID"))
			return
		}

		filter.VendorID = &id
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.Error(w, r, errs.Validation("start_date", "must be YYYY-MM-DD"))
			return
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.Error(w, r, errs.Validation("end_date", "must be YYYY-MM-DD"))
			return
		}

		filter.EndDate = &t
	}

	page := pagination.FromRequest(r)

	txs, total, err := h.svc.List(r.Context(), companyID, filter, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.List(w, toResponseList(txs), total, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	tx, err := h.fetch(r, companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	ReferenceNumber *string         `json:"reference_number"`
	TransactionDate *string         `json:"transaction_date"`
	DueDate         *string         `json:"due_date"`
	Memo            *string         `json:"memo"`
	PaymentTerms    *string         `json:"payment_terms"`
	BillingAddress  *addressPayload `json:"billing_address"`
	ShippingAddress *addressPayload `json:"shipping_address"`
	Lines           *[]linePayload  `json:"lines"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if _, err := h.fetch(r, companyID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	params := transaction.UpdateParams{
		ReferenceNumber: req.ReferenceNumber,
		Memo:            req.Memo,
		PaymentTerms:    req.PaymentTerms,
		BillingAddress:  req.BillingAddress.toAddress(),
		ShippingAddress: req.ShippingAddress.toAddress(),
	}

	if req.TransactionDate != nil {
		t, err := time.Parse(time.DateOnly, *req.TransactionDate)
		if err != nil {
			respond.Error(w, r, errs.Validation("transaction_date", "must be YYYY-MM-DD"))
			return
		}

		params.TransactionDate = &t
	}

	if req.DueDate != nil {
		t, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			respond.Error(w, r, errs.Validation("due_date", "must be YYYY-MM-DD"))
			return
		}

		params.DueDate = &t
	}

	if req.Lines != nil {
		lines := toLineParams(*req.Lines)
		params.Lines = &lines
	}

	tx, err := h.svc.Update(r.Context(), companyID, id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, string(tx.Type), tx.ID.String(), tx.ReferenceNumber)

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	userID, _ := auth.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	tx, err := h.fetch(r, companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), companyID, id, userID); err != nil {
		respond.Error(w, r, err)
		return
	}

	h.audit.Record(r.Context(), companyID, userID, audit.ActionDelete, string(tx.Type), id.String(), tx.ReferenceNumber)

	respond.Message(w, http.StatusOK, "Transaction deleted successfully")
}

type postRequest struct {
	PostingDate string `json:"posting_date" validate:"required"`
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	postingDate, err := time.Parse(time.DateOnly, req.PostingDate)
	if err != nil {
		respond.Error(w, r, errs.Validation("posting_date", "must be YYYY-MM-DD"))
		return
	}

	tx, err := h.svc.Post(r.Context(), companyID, id, postingDate)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionPost, string(tx.Type), tx.ID.String(), tx.ReferenceNumber)

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type voidRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req voidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := h.svc.Void(r.Context(), companyID, id, req.Reason)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionVoid, string(tx.Type), tx.ID.String(), req.Reason)

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

// fetch loads a document and hides documents outside the handler's type
// scope: an invoice id requested under /bills is a NotFound, not a leak.
func (h *Handler) fetch(r *http.Request, companyID, id uuid.UUID) (*transaction.Transaction, error) {
	tx, err := h.svc.Get(r.Context(), companyID, id)
	if err != nil {
		return nil, err
	}

	if h.docType != "" && tx.Type != h.docType {
		return nil, errs.NotFound(string(h.docType), id.String())
	}

	return tx, nil
}
