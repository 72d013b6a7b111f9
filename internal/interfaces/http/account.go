package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"tally/internal/domain/account"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// Request/Response DTOs

type CreateAccountRequest struct {
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
}

type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	AccountType *string `json:"accountType,omitempty"`
}

type AccountResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type BalanceResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}

type MonthlyTotalResponse struct {
	AccountID string          `json:"accountId"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Total     decimal.Decimal `json:"total"`
}

type AccountSummaryResponse struct {
	Account           AccountResponse `json:"account"`
	TotalTransactions int64           `json:"totalTransactions"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	MonthlyTotal      decimal.Decimal `json:"monthlyTotal"`
}

func toAccountResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:          acc.ID,
		Name:        acc.Name,
		AccountType: string(acc.AccountType),
		CreatedAt:   acc.CreatedAt.Format(timeFormat),
		UpdatedAt:   acc.UpdatedAt.Format(timeFormat),
	}
}

func toAccountSummaryResponse(s *account.Summary) AccountSummaryResponse {
	return AccountSummaryResponse{
		Account:           toAccountResponse(s.Account),
		TotalTransactions: s.TotalTransactions,
		CurrentBalance:    s.CurrentBalance,
		MonthlyTotal:      s.MonthlyTotal,
	}
}

// HandleAccounts routes requests to the appropriate handler based on method
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListAccounts(w, r)
	case http.MethodPost:
		h.handleCreateAccount(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleAccountByID routes requests for a specific account
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetAccount(w, r)
	case http.MethodPut:
		h.handleUpdateAccount(w, r)
	case http.MethodDelete:
		h.handleDeleteAccount(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []*account.Account
		err      error
	)

	if accountType := r.URL.Query().Get("type"); accountType != "" {
		if !account.IsValidType(account.Type(accountType)) {
			http.Error(w, "Invalid account type", http.StatusBadRequest)
			return
		}
		accounts, err = h.service.ListAccountsByType(r.Context(), account.Type(accountType))
	} else {
		accounts, err = h.service.ListAccounts(r.Context())
	}

	if err != nil {
		log.Printf("Error listing accounts: %v", err)
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		response = append(response, toAccountResponse(acc))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create account request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	acc, err := h.service.CreateAccount(r.Context(), account.CreateParams{
		Name:        req.Name,
		AccountType: account.Type(req.AccountType),
	})
	if err != nil {
		if errors.Is(err, account.ErrInvalidType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating account: %v", err)
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(acc))
}

func (h *AccountHandler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	acc, err := h.service.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting account %s: %v", accountID, err)
		http.Error(w, "Failed to get account", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

func (h *AccountHandler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update account request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := account.UpdateParams{Name: req.Name}
	if req.AccountType != nil {
		accountType := account.Type(*req.AccountType)
		params.AccountType = &accountType
	}

	acc, err := h.service.UpdateAccount(r.Context(), accountID, params)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		case errors.Is(err, account.ErrInvalidType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error updating account %s: %v", accountID, err)
			http.Error(w, "Failed to update account", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

func (h *AccountHandler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), accountID); err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		case errors.Is(err, account.ErrAccountInUse):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("Error deleting account %s: %v", accountID, err)
			http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAccountBalance returns the type-adjusted balance of an account
func (h *AccountHandler) HandleAccountBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	balance, err := h.service.CalculateBalance(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Printf("Error calculating balance for account %s: %v", accountID, err)
		http.Error(w, "Failed to calculate balance", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{AccountID: accountID, Balance: balance})
}

// HandleAccountMonthlyTotal returns the raw sum of an account's transactions
// for a calendar month
func (h *AccountHandler) HandleAccountMonthlyTotal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	month, year, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if month == 0 || year == 0 {
		http.Error(w, "month and year query parameters are required", http.StatusBadRequest)
		return
	}

	total, err := h.service.TotalForMonth(r.Context(), accountID, month, year)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Printf("Error computing monthly total for account %s: %v", accountID, err)
		http.Error(w, "Failed to compute monthly total", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, MonthlyTotalResponse{
		AccountID: accountID,
		Month:     month,
		Year:      year,
		Total:     total,
	})
}

// HandleAccountSummary returns the summary for one account. The month/year
// pair is optional; without it the monthly total is zero.
func (h *AccountHandler) HandleAccountSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	month, year, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), accountID, month, year)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Printf("Error building summary for account %s: %v", accountID, err)
		http.Error(w, "Failed to build account summary", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toAccountSummaryResponse(summary))
}

// HandleAccountSummaries returns summaries for every account
func (h *AccountHandler) HandleAccountSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	month, year, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries, err := h.service.GetAllSummaries(r.Context(), month, year)
	if err != nil {
		log.Printf("Error building account summaries: %v", err)
		http.Error(w, "Failed to build account summaries", http.StatusInternalServerError)
		return
	}

	response := make([]AccountSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, toAccountSummaryResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// parsePeriod reads the optional month/year query parameters. Both are zero
// when absent.
func parsePeriod(r *http.Request) (month, year int, err error) {
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.New("month must be a number")
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.New("year must be a number")
		}
	}
	return month, year, nil
}
