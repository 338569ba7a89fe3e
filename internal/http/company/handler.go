package company

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/company"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/validate"
)

type Handler struct {
	svc   *company.Service
	audit *audit.Service
	check *validate.Validator
}

func NewHandler(svc *company.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, audit: audit, check: check}
}

// Routes mounts the collection endpoints; the caller only needs a token.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
}

// CompanyRoutes mounts the per-company endpoints behind the membership guard.
func (h *Handler) CompanyRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Delete("/", h.delete)
	r.Get("/settings", h.settings)
	r.Put("/settings", h.putSettings)
}

type createCompanyRequest struct {
	CompanyName     string `json:"company_name" validate:"required"`
	LegalName       string `json:"legal_name"`
	CompanyType     string `json:"company_type"`
	Industry        string `json:"industry"`
	AddressLine1    string `json:"address_line1"`
	AddressLine2    string `json:"address_line2"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zip_code"`
	Country         string `json:"country"`
	Phone           string `json:"phone"`
	Email           string `json:"email" validate:"omitempty,email"`
	Website         string `json:"website"`
	FiscalYearStart string `json:"fiscal_year_start"`
	TaxYearStart    string `json:"tax_year_start"`
	Currency        string `json:"currency"`
	Language        string `json:"language"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())

	c, err := h.svc.Create(r.Context(), userID, company.CreateParams{
		CompanyName:     req.CompanyName,
		LegalName:       req.LegalName,
		CompanyType:     req.CompanyType,
		Industry:        req.Industry,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Country:         req.Country,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		FiscalYearStart: req.FiscalYearStart,
		TaxYearStart:    req.TaxYearStart,
		Currency:        req.Currency,
		Language:        req.Language,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.audit.Record(r.Context(), c.ID, userID, audit.ActionCreate, "company", c.ID.String(), c.CompanyName)

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserFromContext(r.Context())

	companies, err := h.svc.ListForUser(r.Context(), userID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(companies))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	c, err := h.svc.Get(r.Context(), companyID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateCompanyRequest struct {
	CompanyName     *string `json:"company_name"`
	LegalName       *string `json:"legal_name"`
	CompanyType     *string `json:"company_type"`
	Industry        *string `json:"industry"`
	AddressLine1    *string `json:"address_line1"`
	AddressLine2    *string `json:"address_line2"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	ZipCode         *string `json:"zip_code"`
	Country         *string `json:"country"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
	Website         *string `json:"website"`
	FiscalYearStart *string `json:"fiscal_year_start"`
	TaxYearStart    *string `json:"tax_year_start"`
	Currency        *string `json:"currency"`
	Language        *string `json:"language"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req updateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	c, err := h.svc.Update(r.Context(), companyID, company.UpdateParams{
		CompanyName:     req.CompanyName,
		LegalName:       req.LegalName,
		CompanyType:     req.CompanyType,
		Industry:        req.Industry,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Country:         req.Country,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		FiscalYearStart: req.FiscalYearStart,
		TaxYearStart:    req.TaxYearStart,
		Currency:        req.Currency,
		Language:        req.Language,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, "company", companyID.String(), c.CompanyName)

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	userID, _ := auth.UserFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), companyID, userID); err != nil {
		respond.Error(w, r, err)
		return
	}

	h.audit.Record(r.Context(), companyID, userID, audit.ActionDelete, "company", companyID.String(), "")

	respond.Message(w, http.StatusOK, "Company deleted successfully")
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	settings, err := h.svc.Settings(r.Context(), companyID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSettingList(settings))
}

type putSettingsRequest struct {
	Settings []settingPayload `json:"settings" validate:"required"`
}

type settingPayload struct {
	Category string `json:"category"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// putSettings upserts the supplied triples and returns the full settings
// list afterward, unchanged keys included.
func (h *Handler) putSettings(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req putSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	settings := make([]company.Setting, len(req.Settings))
	for i, s := range req.Settings {
		settings[i] = company.Setting(s)
	}

	if err := h.svc.PutSettings(r.Context(), companyID, settings); err != nil {
		respond.Error(w, r, err)
		return
	}

	updated, err := h.svc.Settings(r.Context(), companyID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, "company_settings", companyID.String(), "")

	respond.JSON(w, http.StatusOK, toSettingList(updated))
}
