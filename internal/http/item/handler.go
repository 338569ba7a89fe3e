package item

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/item"
	"github.com/finchbooks/finch/internal/pagination"
	"github.com/finchbooks/finch/internal/validate"
)

type Handler struct {
	svc   *item.Service
	audit *audit.Service
	check *validate.Validator
}

func NewHandler(svc *item.Service, audit *audit.Service, check *validate.Validator) *Handler {
	return &Handler{svc: svc, audit: audit, check: check}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/low-stock", h.lowStock)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createItemRequest struct {
	ItemName       string           `json:"item_name" validate:"required"`
	ItemType       string           `json:"item_type" validate:"omitempty,oneof=inventory service non_inventory"`
	Description    string           `json:"description"`
	SalesPrice     *decimal.Decimal `json:"sales_price"`
	PurchaseCost   *decimal.Decimal `json:"purchase_cost"`
	QuantityOnHand *decimal.Decimal `json:"quantity_on_hand"`
	ReorderPoint   *decimal.Decimal `json:"reorder_point"`
	Manufacturer   string           `json:"manufacturer"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	if err := h.check.Struct(req); err != nil {
		respond.Error(w, r, err)
		return
	}

	i, err := h.svc.Create(r.Context(), companyID, item.CreateParams{
		ItemName:       req.ItemName,
		ItemType:       item.Type(req.ItemType),
		Description:    req.Description,
		SalesPrice:     req.SalesPrice,
		PurchaseCost:   req.PurchaseCost,
		QuantityOnHand: req.QuantityOnHand,
		ReorderPoint:   req.ReorderPoint,
		Manufacturer:   req.Manufacturer,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionCreate, "item", i.ID.String(), i.ItemName)

	respond.JSON(w, http.StatusCreated, toResponse(i))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	page := pagination.FromRequest(r)

	items, total, err := h.svc.List(r.Context(), companyID, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.List(w, toResponseList(items), total, page)
}

// lowStock lists inventory items at or below their reorder point.
func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	items, err := h.svc.LowStock(r.Context(), companyID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := toResponseList(items)
	if resp == nil {
		resp = []itemResponse{}
	}

	respond.JSON(w, http.StatusOK, lowStockResponse{Items: resp, Total: len(resp)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	i, err := h.svc.Get(r.Context(), companyID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(i))
}

type updateItemRequest struct {
	ItemName       *string          `json:"item_name"`
	Description    *string          `json:"description"`
	SalesPrice     *decimal.Decimal `json:"sales_price"`
	PurchaseCost   *decimal.Decimal `json:"purchase_cost"`
	QuantityOnHand *decimal.Decimal `json:"quantity_on_hand"`
	ReorderPoint   *decimal.Decimal `json:"reorder_point"`
	Manufacturer   *string          `json:"manufacturer"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, errs.Validation("id", "must be a valid UUID"))
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, errs.Validation("body", "invalid JSON"))
		return
	}

	i, err := h.svc.Update(r.Context(), companyID, id, item.UpdateParams{
		ItemName:       req.ItemName,
		Description:    req.Description,
		SalesPrice:     req.SalesPrice,
		PurchaseCost:   req.PurchaseCost,
		QuantityOnHand: req.QuantityOnHand,
		ReorderPoint:   req.ReorderPoint,
		Manufacturer:   req.Manufacturer,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	userID, _ := auth.UserFromContext(r.Context())
	h.audit.Record(r.Context(), companyID, userID, audit.ActionUpdate, "item", i.ID.String(), i.ItemName)

	respond.JSON(w, http.StatusOK, toResponse(i))
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

	h.audit.Record(r.Context(), companyID, userID, audit.ActionDelete, "item", id.String(), "")

	respond.Message(w, http.StatusOK, "Item deleted successfully")
}
