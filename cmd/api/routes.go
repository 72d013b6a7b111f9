package main

import (
	"log"
	"net/http"

	"tally/internal/shared/config"
	"tally/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", handleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.Issuer)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("/api/accounts", protected(deps.AccountHandler.HandleAccounts))
	mux.Handle("/api/accounts/summary", protected(deps.AccountHandler.HandleAccountSummaries))
	mux.Handle("/api/accounts/{id}", protected(deps.AccountHandler.HandleAccountByID))
	mux.Handle("/api/accounts/{id}/balance", protected(deps.AccountHandler.HandleAccountBalance))
	mux.Handle("/api/accounts/{id}/monthly-total", protected(deps.AccountHandler.HandleAccountMonthlyTotal))
	mux.Handle("/api/accounts/{id}/summary", protected(deps.AccountHandler.HandleAccountSummary))

	mux.Handle("/api/categories", protected(deps.CategoryHandler.HandleCategories))
	mux.Handle("/api/categories/{id}", protected(deps.CategoryHandler.HandleCategoryByID))
	mux.Handle("/api/categories/{id}/transactions", protected(deps.CategoryHandler.HandleCategoryTransactions))

	mux.Handle("/api/month-references", protected(deps.MonthReferenceHandler.HandleMonthReferences))
	mux.Handle("/api/month-references/{id}", protected(deps.MonthReferenceHandler.HandleMonthReferenceByID))
	mux.Handle("/api/month-references/{id}/toggle", protected(deps.MonthReferenceHandler.HandleToggleActive))

	mux.Handle("/api/transactions", protected(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/transactions/{id}", protected(deps.TransactionHandler.HandleTransactionByID))
	mux.Handle("/api/transactions/{id}/related", protected(deps.TransactionHandler.HandleTransactionRelated))
	mux.Handle("DELETE /api/transactions/{id}/related/{relatedId}", protected(deps.TransactionHandler.HandleTransactionRelated))
	mux.Handle("/api/transactions/{id}/move", protected(deps.TransactionHandler.HandleMoveTransaction))
	mux.Handle("/api/transactions/{id}/category", protected(deps.TransactionHandler.HandleChangeCategory))

	mux.Handle("/api/reports/monthly-summary", protected(deps.TransactionHandler.HandleMonthlySummary))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
