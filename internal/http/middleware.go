package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/http/respond"
)

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// authenticate resolves the bearer token into a user id and stores it in the
// request context. Everything behind it can assume an authenticated user.
func authenticate(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				respond.Error(w, r, errs.Unauthorized("missing bearer token"))
				return
			}

			userID, err := svc.Authenticate(token)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), userID)))
		})
	}
}

// requireCompany guards the /companies/{companyID} subtree: it parses the
// company id, checks the caller's membership, and stores the id in the
// context so handlers never re-parse the URL.
func requireCompany(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			companyID, err := uuid.Parse(chi.URLParam(r, "companyID"))
			if err != nil {
				respond.Error(w, r, errs.Validation("company_id", "must be a valid UUID"))
				return
			}

			userID, ok := auth.UserFromContext(r.Context())
			if !ok {
				respond.Error(w, r, errs.Unauthorized("missing bearer token"))
				return
			}

			if err := svc.Authorize(r.Context(), userID, companyID); err != nil {
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithCompany(r.Context(), companyID)))
		})
	}
}
