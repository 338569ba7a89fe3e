package audit

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/pagination"
)

// Handler serves the read side of the audit trail. Entries are written by
// the other handlers; nothing deletes or edits them.
type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	AuditID      uuid.UUID    `json:"audit_id"`
	UserID       uuid.UUID    `json:"user_id"`
	Action       audit.Action `json:"action"`
	ResourceType string       `json:"resource_type"`
	ResourceID   string       `json:"resource_id"`
	Detail       string       `json:"detail,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	companyID, _ := auth.CompanyFromContext(r.Context())
	page := pagination.FromRequest(r)

	entries, total, err := h.svc.List(r.Context(), companyID, page)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			AuditID:      e.ID,
			UserID:       e.UserID,
			Action:       e.Action,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			Detail:       e.Detail,
			CreatedAt:    e.CreatedAt,
		}
	}

	respond.List(w, resp, total, page)
}
