package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/customer"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/transaction"
	"github.com/finchbooks/finch/internal/validate"
)

// Handler serves the customer directory. The transaction service backs the
// per-customer transaction and balance reads.
type Handler struct {
	svc   *customer.Service
	txs   *transaction.Service
	audit *audit.Service
	check *validate.Validator
}

func NewHandler(svc *customer.Service, txs *transaction.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, txs: txs, audit: audit, check: check}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/transactions", h.transactions)
	r.Get("/{id}/balance", h.balance)
}

type createCustomerRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	CustomerType string `json:"customer_type" validate:"omitempty,oneof=business individual"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	CompanyName  string `json:"company_name"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), companyID, customer.CreateParams{
		CustomerName: req.CustomerName,
		CustomerType: customer.Type(req.CustomerType),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionCreate, "customer", c.ID.String(), c.CustomerName)

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	page := pagination.FromRequest(r)

	customers, total, err := h.svc.List(r.Context(), companyID, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.List(w, toResponseList(customers), total, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	c, err := h.svc.Get(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateCustomerRequest struct {
	CustomerName *string `json:"customer_name"`
	CustomerType *string `json:"customer_type"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	CompanyName  *string `json:"company_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	params := customer.UpdateParams{
		CustomerName: req.CustomerName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CompanyName:  req.CompanyName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
	}

	if req.CustomerType != nil {
		t := customer.Type(*req.CustomerType)
		params.CustomerType = &t
	}

	c, err := h.svc.Update(r.Context(), companyID, id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, "customer", c.ID.String(), c.CustomerName)

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	userID, _ := auth.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	if err := h.svc.Delete(r.Context(), companyID, id, userID); err != nil {
		respond.Error(w, r, err)
		return
	}

	h.audit.Record(r.Context(), companyID, userID, audit.ActionDelete, "customer", id.String(), "")

	respond.Message(w, http.StatusOK, "Customer deleted successfully")
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	// The customer must exist; an empty history and an unknown id should not
	// look the same.
	if _, err := h.svc.Get(r.Context(), companyID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.txs.CustomerTransactions(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTransactionList(txs))
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	if _, err := h.svc.Get(r.Context(), companyID, id); err != nil {
		respond.Error(w, r, err)
		return
	}

	balance, err := h.txs.CustomerBalance(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, balanceResponse{CustomerID: id, Balance: balance})
}
