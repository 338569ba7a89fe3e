package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finchbooks/finch/internal/auth"
	"github.com/finchbooks/finch/internal/http/account"
	"github.com/finchbooks/finch/internal/http/audit"
	authapi "github.com/finchbooks/finch/internal/http/auth"
	"github.com/finchbooks/finch/internal/http/company"
	"github.com/finchbooks/finch/internal/http/customer"
	"github.com/finchbooks/finch/internal/http/employee"
	"github.com/finchbooks/finch/internal/http/item"
	"github.com/finchbooks/finch/internal/http/payment"
	"github.com/finchbooks/finch/internal/http/respond"
	"github.com/finchbooks/finch/internal/http/transaction"
	"github.com/finchbooks/finch/internal/http/vendorpkg"
	"github.com/finchbooks/finch/internal/metrics"
)

type Deps struct {
	Log            *slog.Logger
	Metrics        *metrics.Metrics
	Auth           *auth.Service
	AllowedOrigins []string
	Timeout        time.Duration

	AuthAPI      *authapi.Handler
	Companies    *company.Handler
	Accounts     *account.Handler
	Customers    *customer.Handler
	Vendors      *vendor.Handler
	Items        *item.Handler
	Employees    *employee.Handler
	Invoices     *transaction.Handler
	Bills        *transaction.Handler
	Transactions *transaction.Handler
	Payments     *payment.Handler
	AuditLogs    *audit.Handler
}

func New(d Deps) http.Handler {
	router := chi.NewRouter()

	router.Use(requestLogger(d.Log))
	router.Use(middleware.Recoverer)
	if d.Timeout > 0 {
		router.Use(middleware.Timeout(d.Timeout))
	}
	router.Use(d.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/", root)
		r.Get("/health", health)

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			d.AuthAPI.Routes(r)

			r.Group(func(r chi.Router) {
				r.Use(authenticate(d.Auth))
				d.AuthAPI.AuthenticatedRoutes(r)
			})
		})

		r.Route("/companies", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Use(authenticate(d.Auth))

			d.Companies.Routes(r)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Use(requireCompany(d.Auth))

				d.Companies.CompanyRoutes(r)

				r.Route("/accounts", d.Accounts.Routes)
				r.Route("/customers", d.Customers.Routes)
				r.Route("/vendors", d.Vendors.Routes)
				r.Route("/items", d.Items.Routes)
				r.Route("/employees", d.Employees.Routes)
				r.Route("/invoices", d.Invoices.Routes)
				r.Route("/bills", d.Bills.Routes)
				r.Route("/transactions", d.Transactions.Routes)
				r.Route("/payments", d.Payments.Routes)
				r.Route("/audit-logs", d.AuditLogs.Routes)
			})
		})
	})

	return router
}

func root(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "Finch accounting API",
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
