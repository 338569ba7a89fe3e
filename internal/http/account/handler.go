package account

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/account"
	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/validate"
)

type Handler struct {
	svc   *account.Service
	audit *audit.Service
	check *validate.Validator
}

func NewHandler(svc *account.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, audit: audit, check: check}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/merge", h.merge)
}

type createAccountRequest struct {
	AccountName     string           `json:"account_name" validate:"required"`
	AccountType     string           `json:"account_type" validate:"required,oneof=assets liabilities equity income expenses"`
	AccountNumber   string           `json:"account_number"`
	Description     string           `json:"description"`
	OpeningBalance  *decimal.Decimal `json:"opening_balance"`
	ParentAccountID *uuid.UUID       `json:"parent_account_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	a, err := h.svc.Create(r.Context(), companyID, account.CreateParams{
		AccountName:     req.AccountName,
		AccountType:     account.Type(req.AccountType),
		AccountNumber:   req.AccountNumber,
		Description:     req.Description,
		OpeningBalance:  req.OpeningBalance,
		ParentAccountID: req.ParentAccountID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionCreate, "account", a.ID.String(), a.AccountName)

	respond.JSON(w, http.StatusCreated, toResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	filter := account.ListFilter{}
	if s := r.URL.Query().Get("account_type"); s != "" {
		t := account.Type(s)
		if !t.Valid() {
			respond.Error(w, r, errs.Validation("account_type", "unknown account type"))
			return
		}

		filter.Type = &t
	}

	page := pagination.FromRequest(r)

	accounts, total, err := h.svc.List(r.Context(), companyID, filter, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.List(w, toResponseList(accounts), total, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	a, err := h.svc.Get(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(a))
}

type updateAccountRequest struct {
	AccountName   *string `json:"account_name"`
	AccountNumber *string `json:"account_number"`
	Description   *string `json:"description"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	a, err := h.svc.Update(r.Context(), companyID, id, account.UpdateParams{
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		Description:   req.Description,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, "account", a.ID.String(), a.AccountName)

	respond.JSON(w, http.StatusOK, toResponse(a))
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

	h.audit.Record(r.Context(), companyID, userID, audit.ActionDelete, "account", id.String(), "")

	respond.Message(w, http.StatusOK, "Account deleted successfully")
}

// merge folds the account in the URL into the one named by the
// target_account_id query parameter.
func (h *Handler) merge(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	userID, _ := auth.UserFromContext(r.Context())

	sourceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	targetID, err := uuid.Parse(r.URL.Query().Get("target_account_id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("target_account_id", "must be a valid UUID"))
		return
	}

	if err := h.svc.Merge(r.Context(), companyID, sourceID, targetID, userID); err != nil {
		respond.Error(w, r, err)
		return
	}

	h.audit.Record(r.Context(), companyID, userID, audit.ActionMerge, "account", sourceID.String(), "into "+targetID.String())

	respond.Message(w, http.StatusOK, "Account merged successfully")
}
