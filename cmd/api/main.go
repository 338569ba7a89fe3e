package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/finchbooks/finch/internal/account"
	accountStore "github.com/finchbooks/finch/internal/account/store"
	"github.com/finchbooks/finch/internal/audit"
	auditStore "github.com/finchbooks/finch/internal/audit/store"
	"github.com/finchbooks/finch/internal/auth"
	authStore "github.com/finchbooks/finch/internal/auth/store"
	"github.com/finchbooks/finch/internal/company"
	companyStore "github.com/finchbooks/finch/internal/company/store"
	"github.com/finchbooks/finch/internal/config"
	"github.com/finchbooks/finch/internal/customer"
	customerStore "github.com/finchbooks/finch/internal/customer/store"
	"github.com/finchbooks/finch/internal/database"
	"github.com/finchbooks/finch/internal/employee"
	employeeStore "github.com/finchbooks/finch/internal/employee/store"
	finchHttp "github.com/finchbooks/finch/internal/http"
	accountHandler "github.com/finchbooks/finch/internal/http/account"
	auditHandler "github.com/finchbooks/finch/internal/http/audit"
	authHandler "github.com/finchbooks/finch/internal/http/auth"
	companyHandler "github.com/finchbooks/finch/internal/http/company"
	customerHandler "github.com/finchbooks/finch/internal/http/customer"
	employeeHandler "github.com/finchbooks/finch/internal/http/employee"
	itemHandler "github.com/finchbooks/finch/internal/http/item"
	paymentHandler "github.com/finchbooks/finch/internal/http/payment"
	txHandler "github.com/finchbooks/finch/internal/http/transaction"
	vendorHandler "github.com/finchbooks/finch/internal/http/vendorpkg"
	"github.com/finchbooks/finch/internal/item"
	itemStore "github.com/finchbooks/finch/internal/item/store"
	"github.com/finchbooks/finch/internal/metrics"
	"github.com/finchbooks/finch/internal/payment"
	paymentStore "github.com/finchbooks/finch/internal/payment/store"
	"github.com/finchbooks/finch/internal/transaction"
	txStore "github.com/finchbooks/finch/internal/transaction/store"
	"github.com/finchbooks/finch/internal/validate"
	"github.com/finchbooks/finch/internal/vendorpkg"
	vendorStore "github.com/finchbooks/finch/internal/vendorpkg/store"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	if err := database.Seed(ctx, db); err != nil {
		log.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	limiter := auth.NewLoginLimiter(rate.Limit(cfg.Auth.LoginPerMinute/60), cfg.Auth.LoginBurst)

	// The transaction store doubles as the party directory for transactions
	// and the customer directory for payments.
	transactions := txStore.New(db)

	var (
		authService        = auth.NewService(authStore.New(db), tokens, limiter)
		auditService       = audit.NewService(auditStore.New(db), log)
		companyService     = company.NewService(companyStore.New(db))
		accountService     = account.NewService(accountStore.New(db))
		customerService    = customer.NewService(customerStore.New(db))
		vendorService      = vendor.NewService(vendorStore.New(db))
		itemService        = item.NewService(itemStore.New(db))
		employeeService    = employee.NewService(employeeStore.New(db))
		transactionService = transaction.NewService(transactions, transactions)
		paymentService     = payment.NewService(paymentStore.New(db), transactions)
	)

	check := validate.New()
	observe := metrics.New()

	router := finchHttp.New(finchHttp.Deps{
		Log:            log,
		Metrics:        observe,
		Auth:           authService,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,

		AuthAPI:      authHandler.NewHandler(authService, companyService, check),
		Companies:    companyHandler.NewHandler(companyService, auditService, check),
		Accounts:     accountHandler.NewHandler(accountService, auditService, check),
		Customers:    customerHandler.NewHandler(customerService, transactionService, auditService, check),
		Vendors:      vendorHandler.NewHandler(vendorService, transactionService, auditService, check),
		Items:        itemHandler.NewHandler(itemService, auditService, check),
		Employees:    employeeHandler.NewHandler(employeeService, auditService, check),
		Invoices:     txHandler.NewDocumentHandler(transactionService, auditService, check, transaction.TypeInvoice),
		Bills:        txHandler.NewDocumentHandler(transactionService, auditService, check, transaction.TypeBill),
		Transactions: txHandler.NewHandler(transactionService, auditService, check),
		Payments:     paymentHandler.NewHandler(paymentService, auditService, check),
		AuditLogs:    auditHandler.NewHandler(auditService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-shutdownCtx.Done()

		timeout, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(timeout); err != nil {
			log.Error("shutdown failed", "error", err)
		}
	}()

	log.Info("starting server", "app", cfg.App.Name, "port", cfg.App.Port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
