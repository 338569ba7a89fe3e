package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/company"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/validate"
)

type Handler struct {
	svc       *auth.Service
	companies *company.Service
	check     *validate.Validator
}

func NewHandler(svc *auth.Service, companies *company.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, companies: companies, check: check}
}

// Routes mounts the credential endpoints reachable without a token.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/refresh-token", h.refresh)
}

// AuthenticatedRoutes mounts the endpoints behind the bearer middleware.
func (h *Handler) AuthenticatedRoutes(r chi.Router) {
	r.Get("/companies", h.listCompanies)
	r.Post("/companies/{companyID}/access", h.grantAccess)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSessionResponse(session))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	session, err := h.svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *Handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())

	companies, err := h.companies.ListForUser(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMembershipList(companies))
}

// grantAccess asserts the caller's membership in a company. Clients call it
// once before switching their session to company-scoped endpoints.
func (h *Handler) grantAccess(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
	if err != nil {
		respond.Error(w, r, errs.Validation("company_id", "must be a valid UUID"))
		return
	}

	userID, _ := auth.UserFromContext(r.Context())

	if err := h.svc.Authorize(r.Context(), userID, companyID); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, http.StatusOK, "Company access granted")
}
