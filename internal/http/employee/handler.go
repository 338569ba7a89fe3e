package employee

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/employee"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/validate"
)

type Handler struct {
	svc   *employee.Service
	audit *audit.Service
	check *validate.Validator
}

func NewHandler(svc *employee.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, audit: audit, check: check}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createEmployeeRequest struct {
	FirstName    string           `json:"first_name" validate:"required"`
	LastName     string           `json:"last_name" validate:"required"`
	Email        string           `json:"email" validate:"omitempty,email"`
	Phone        string           `json:"phone"`
	AddressLine1 string           `json:"address_line1"`
	AddressLine2 string           `json:"address_line2"`
	City         string           `json:"city"`
	State        string           `json:"state"`
	ZipCode      string           `json:"zip_code"`
	HireDate     string           `json:"hire_date"`
	PayType      string           `json:"pay_type" validate:"omitempty,oneof=hourly salary"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate"`
	AnnualSalary *decimal.Decimal `json:"annual_salary"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	var hireDate time.Time
	if req.HireDate != "" {
		var err error
		hireDate, err = time.Parse(time.DateOnly, req.HireDate)
		if err != nil {
			respond.Error(w, r, errs.Validation("hire_date", "must be YYYY-MM-DD"))
			return
		}
	}

	e, err := h.svc.Create(r.Context(), companyID, employee.CreateParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		HireDate:     hireDate,
		PayType:      employee.PayType(req.PayType),
		HourlyRate:   req.HourlyRate,
		AnnualSalary: req.AnnualSalary,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionCreate, "employee", e.ID.String(), e.FirstName+" "+e.LastName)

	respond.JSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	page := pagination.FromRequest(r)

	employees, total, err := h.svc.List(r.Context(), companyID, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.List(w, toResponseList(employees), total, page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	e, err := h.svc.Get(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

type updateEmployeeRequest struct {
	FirstName    *string          `json:"first_name"`
	LastName     *string          `json:"last_name"`
	Email        *string          `json:"email"`
	Phone        *string          `json:"phone"`
	AddressLine1 *string          `json:"address_line1"`
	AddressLine2 *string          `json:"address_line2"`
	City         *string          `json:"city"`
	State        *string          `json:"state"`
	ZipCode      *string          `json:"zip_code"`
	HireDate     *string          `json:"hire_date"`
	PayType      *string          `json:"pay_type"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate"`
	AnnualSalary *decimal.Decimal `json:"annual_salary"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	params := employee.UpdateParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		HourlyRate:   req.HourlyRate,
		AnnualSalary: req.AnnualSalary,
	}

	if req.HireDate != nil {
		hireDate, err := time.Parse(time.DateOnly, *req.HireDate)
		if err != nil {
			respond.Error(w, r, errs.Validation("hire_date", "must be YYYY-MM-DD"))
			return
		}

		params.HireDate = &hireDate
	}

	if req.PayType != nil {
		payType := employee.PayType(*req.PayType)
		params.PayType = &payType
	}

	e, err := h.svc.Update(r.Context(), companyID, id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, "employee", e.ID.String(), e.FirstName+" "+e.LastName)

	respond.JSON(w, http.StatusOK, toResponse(e))
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

	h.audit.Record(r.Context(), companyID, userID, audit.ActionDelete, "employee", id.String(), "")

	respond.Message(w, http.StatusOK, "Employee deleted successfully")
}
