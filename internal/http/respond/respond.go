// Package respond writes the wire shapes shared by every endpoint: plain
// JSON bodies, the {items, total, page, page_size} list envelope, and the
// {error, status_code, path} error shape.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/pagination"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// Message writes a {"message": ...} body, used by delete, merge, and access
// confirmations.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageResponse{Message: msg})
}

type listResponse[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// List writes a page of items in the uniform list envelope. A nil slice
// becomes an empty items array, never null.
func List[T any](w http.ResponseWriter, items []T, total int, page pagination.Params) {
	if items == nil {
		items = []T{}
	}

	JSON(w, http.StatusOK, listResponse[T]{
		Items:    items,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
}

type errorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Path       string `json:"path"`
}

// Error writes err in the uniform error shape. Taxonomy errors keep their
// message; anything else is logged and returned as a generic internal error.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.Status(err)

	msg := err.Error()
	if !errs.Expected(err) {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = "internal error"
	}

	JSON(w, status, errorResponse{
		Error:      msg,
		StatusCode: status,
		Path:       r.URL.Path,
	})
}
