package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"tally/internal/domain/account"
	"tally/internal/domain/category"
	"tally/internal/domain/monthref"
	"tally/internal/domain/transaction"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Request/Response DTOs

type CreateTransactionRequest struct {
	DateTime              time.Time       `json:"dateTime"`
	ThirdParty            string          `json:"thirdParty"`
	Value                 decimal.Decimal `json:"value"`
	Address               string          `json:"address,omitempty"`
	Description           string          `json:"description"`
	InvoiceData           string          `json:"invoiceData,omitempty"`
	AccountID             string          `json:"accountId"`
	CategoryID            string          `json:"categoryId"`
	MonthReferenceID      string          `json:"monthReferenceId"`
	RelatedTransactionIDs []string        `json:"relatedTransactionIds,omitempty"`
}

type UpdateTransactionRequest struct {
	DateTime    *time.Time       `json:"dateTime,omitempty"`
	ThirdParty  *string          `json:"thirdParty,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Description *string          `json:"description,omitempty"`
	InvoiceData *string          `json:"invoiceData,omitempty"`
	AccountID   *string          `json:"accountId,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
}

type LinkTransactionRequest struct {
	RelatedTransactionID string `json:"relatedTransactionId"`
}

type MoveTransactionRequest struct {
	AccountID string `json:"accountId"`
}

type ChangeCategoryRequest struct {
	CategoryID string `json:"categoryId"`
}

type TransactionResponse struct {
	ID               string          `json:"id"`
	DateTime         string          `json:"dateTime"`
	ThirdParty       string          `json:"thirdParty"`
	Value            decimal.Decimal `json:"value"`
	Address          string          `json:"address,omitempty"`
	Description      string          `json:"description"`
	InvoiceData      string          `json:"invoiceData,omitempty"`
	AccountID        string          `json:"accountId"`
	CategoryID       string          `json:"categoryId"`
	MonthReferenceID string          `json:"monthReferenceId"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

func toTransactionResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               tx.ID,
		DateTime:         tx.DateTime.Format(timeFormat),
		ThirdParty:       tx.ThirdParty,
		Value:            tx.Value,
		Address:          tx.Address,
		Description:      tx.Description,
		InvoiceData:      tx.InvoiceData,
		AccountID:        tx.AccountID,
		CategoryID:       tx.CategoryID,
		MonthReferenceID: tx.MonthReferenceID,
		CreatedAt:        tx.CreatedAt.Format(timeFormat),
		UpdatedAt:        tx.UpdatedAt.Format(timeFormat),
	}
}

func writeTransactionList(w http.ResponseWriter, txs []*transaction.Transaction) {
	response := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		response = append(response, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, response)
}

// HandleTransactions routes requests to the appropriate handler based on method
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListTransactions(w, r)
	case http.MethodPost:
		h.handleCreateTransaction(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleTransactionByID routes requests for a specific transaction
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetTransaction(w, r)
	case http.MethodPut:
		h.handleUpdateTransaction(w, r)
	case http.MethodDelete:
		h.handleDeleteTransaction(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListTransactions lists all transactions, or searches when any filter
// query parameter is present
func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filters, hasFilters, err := parseSearchFilters(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var txs []*transaction.Transaction
	if hasFilters {
		txs, err = h.service.SearchTransactions(r.Context(), filters)
	} else {
		txs, err = h.service.ListTransactions(r.Context())
	}

	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	writeTransactionList(w, txs)
}

func (h *TransactionHandler) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create transaction request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := transaction.CreateParams{
		DateTime:              req.DateTime,
		ThirdParty:            req.ThirdParty,
		Value:                 req.Value,
		Address:               req.Address,
		Description:           req.Description,
		InvoiceData:           req.InvoiceData,
		AccountID:             req.AccountID,
		CategoryID:            req.CategoryID,
		MonthReferenceID:      req.MonthReferenceID,
		RelatedTransactionIDs: req.RelatedTransactionIDs,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.service.CreateTransaction(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, monthref.ErrMonthReferenceNotFound):
			http.Error(w, "Month reference not found", http.StatusNotFound)
		case errors.Is(err, transaction.ErrInactiveMonthReference):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, transaction.ErrSelfLink):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, transaction.ErrRelatedTransactionAbsent):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			log.Printf("Error creating transaction: %v", err)
			http.Error(w, "Failed to create transaction", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

func (h *TransactionHandler) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("id")
	if txID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	tx, err := h.service.GetTransaction(r.Context(), txID)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting transaction %s: %v", txID, err)
		http.Error(w, "Failed to get transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("id")
	if txID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update transaction request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := transaction.UpdateParams{
		DateTime:    req.DateTime,
		ThirdParty:  req.ThirdParty,
		Value:       req.Value,
		Address:     req.Address,
		Description: req.Description,
		InvoiceData: req.InvoiceData,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.service.UpdateTransaction(r.Context(), txID, params)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating transaction %s: %v", txID, err)
		http.Error(w, "Failed to update transaction", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("id")
	if txID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), txID); err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting transaction %s: %v", txID, err)
		http.Error(w, "Failed to delete transaction", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleTransactionRelated serves the link graph of one transaction:
// GET lists linked transactions, POST links, DELETE unlinks.
func (h *TransactionHandler) HandleTransactionRelated(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("id")
	if txID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListRelated(w, r, txID)
	case http.MethodPost:
		h.handleLink(w, r, txID)
	case http.MethodDelete:
		h.handleUnlink(w, r, txID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleListRelated(w http.ResponseWriter, r *http.Request, txID string) {
	txs, err := h.service.ListRelatedTransactions(r.Context(), txID)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Error listing related transactions for %s: %v", txID, err)
		http.Error(w, "Failed to list related transactions", http.StatusInternalServerError)
		return
	}

	writeTransactionList(w, txs)
}

func (h *TransactionHandler) handleLink(w http.ResponseWriter, r *http.Request, txID string) {
	var req LinkTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding link transaction request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.RelatedTransactionID == "" {
		http.Error(w, "Related transaction ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.LinkTransactions(r.Context(), txID, req.RelatedTransactionID); err != nil {
		switch {
		case errors.Is(err, transaction.ErrSelfLink):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, transaction.ErrTransactionNotFound):
			http.Error(w, "Transaction not found", http.StatusNotFound)
		default:
			log.Printf("Error linking transactions %s and %s: %v", txID, req.RelatedTransactionID, err)
			http.Error(w, "Failed to link transactions", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) handleUnlink(w http.ResponseWriter, r *http.Request, txID string) {
	relatedID := r.PathValue("relatedId")
	if relatedID == "" {
		relatedID = r.URL.Query().Get("relatedTransactionId")
	}
	if relatedID == "" {
		http.Error(w, "Related transaction ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.UnlinkTransactions(r.Context(), txID, relatedID); err != nil {
		log.Printf("Error unlinking transactions %s and %s: %v", txID, relatedID, err)
		http.Error(w, "Failed to unlink transactions", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMoveTransaction reassigns a transaction to another account
func (h *TransactionHandler) HandleMoveTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txID := r.PathValue("id")
	if txID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	var req MoveTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding move transaction request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.AccountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	tx, err := h.service.MoveToAccount(r.Context(), txID, req.AccountID)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrAccountNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		case errors.Is(err, transaction.ErrTransactionNotFound):
			http.Error(w, "Transaction not found", http.StatusNotFound)
		default:
			log.Printf("Error moving transaction %s: %v", txID, err)
			http.Error(w, "Failed to move transaction", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// HandleChangeCategory reassigns a transaction to another category
func (h *TransactionHandler) HandleChangeCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txID := r.PathValue("id")
	if txID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	var req ChangeCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding change category request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CategoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	tx, err := h.service.UpdateCategory(r.Context(), txID, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, category.ErrCategoryNotFound):
			http.Error(w, "Category not found", http.StatusNotFound)
		case errors.Is(err, transaction.ErrTransactionNotFound):
			http.Error(w, "Transaction not found", http.StatusNotFound)
		default:
			log.Printf("Error changing category of transaction %s: %v", txID, err)
			http.Error(w, "Failed to change transaction category", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(tx))
}

// HandleMonthlySummary returns per-account raw sums for a period
func (h *TransactionHandler) HandleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
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

	summary, err := h.service.GenerateMonthlySummary(r.Context(), month, year)
	if err != nil {
		log.Printf("Error generating monthly summary for %d/%d: %v", month, year, err)
		http.Error(w, "Failed to generate monthly summary", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func parseSearchFilters(r *http.Request) (transaction.SearchFilters, bool, error) {
	q := r.URL.Query()
	var filters transaction.SearchFilters

	filters.AccountID = q.Get("accountId")
	filters.CategoryID = q.Get("categoryId")
	filters.MonthReferenceID = q.Get("monthReferenceId")
	filters.ThirdParty = q.Get("thirdParty")
	filters.Query = q.Get("q")

	month, year, err := parsePeriod(r)
	if err != nil {
		return filters, false, err
	}
	filters.Month, filters.Year = month, year

	if raw := q.Get("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, false, errors.New("startDate must be RFC 3339")
		}
		filters.StartDate = &t
	}
	if raw := q.Get("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filters, false, errors.New("endDate must be RFC 3339")
		}
		filters.EndDate = &t
	}
	if raw := q.Get("minValue"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, false, errors.New("minValue must be a number")
		}
		filters.MinValue = &v
	}
	if raw := q.Get("maxValue"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, false, errors.New("maxValue must be a number")
		}
		filters.MaxValue = &v
	}

	return filters, !filters.IsEmpty(), nil
}
