package main

import (
	"log"
	"net/http"

	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/config"
	"fintrack/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Accounts
	mux.HandleFunc("/api/accounts", deps.AccountHandler.HandleAccounts)
	mux.HandleFunc("/api/accounts/{id}", deps.AccountHandler.HandleAccountByID)

	// Movements
	mux.HandleFunc("/api/transactions", deps.MovementHandler.HandleMovements)
	mux.HandleFunc("/api/transactions/{id}", deps.MovementHandler.HandleMovementByID)

	// Categories
	mux.HandleFunc("/api/categories", deps.CategoryHandler.HandleCategories)
	mux.HandleFunc("/api/categories/{id}", deps.CategoryHandler.HandleCategoryByID)

	// Credit cards and card transactions
	mux.HandleFunc("/api/cards", deps.CreditCardHandler.HandleCards)
	mux.HandleFunc("/api/cards/{id}", deps.CreditCardHandler.HandleCardByID)
	mux.HandleFunc("/api/cards/{id}/transactions", deps.CreditCardHandler.HandleCardTransactions)
	mux.HandleFunc("/api/card-transactions/{id}", deps.CreditCardHandler.HandleCardTransactionByID)

	// Bills
	mux.HandleFunc("/api/bills", deps.BillHandler.HandleBills)
	mux.HandleFunc("/api/bills/{id}", deps.BillHandler.HandleBillByID)

	// Apply global middleware
	var handler http.Handler = middleware.Tracing(middleware.CORS(cfg.Server.AllowedHosts)(mux))
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}
	handler = middleware.Logging(handler)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
