package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tally/internal/domain/category"
	"tally/internal/domain/transaction"
)

type CategoryHandler struct {
	service      *category.Service
	transactions *transaction.Service
}

func NewCategoryHandler(service *category.Service, transactions *transaction.Service) *CategoryHandler {
	return &CategoryHandler{service: service, transactions: transactions}
}

// Request/Response DTOs

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
}

type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toCategoryResponse(cat *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		CreatedAt: cat.CreatedAt.Format(timeFormat),
		UpdatedAt: cat.UpdatedAt.Format(timeFormat),
	}
}

// HandleCategories routes requests to the appropriate handler based on method
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListCategories(w, r)
	case http.MethodPost:
		h.handleCreateCategory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCategoryByID routes requests for a specific category
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetCategory(w, r)
	case http.MethodPut:
		h.handleUpdateCategory(w, r)
	case http.MethodDelete:
		h.handleDeleteCategory(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CategoryHandler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, toCategoryResponse(cat))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create category request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := category.CreateParams{Name: req.Name}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cat, err := h.service.CreateCategory(r.Context(), params)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(cat))
}

func (h *CategoryHandler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	cat, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting category %s: %v", categoryID, err)
		http.Error(w, "Failed to get category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update category request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := category.UpdateParams{Name: req.Name}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cat, err := h.service.UpdateCategory(r.Context(), categoryID, params)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating category %s: %v", categoryID, err)
		http.Error(w, "Failed to update category", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		switch {
		case errors.Is(err, category.ErrCategoryNotFound):
			http.Error(w, "Category not found", http.StatusNotFound)
		case errors.Is(err, category.ErrCategoryInUse):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("Error deleting category %s: %v", categoryID, err)
			http.Error(w, "Failed to delete category", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCategoryTransactions lists the transactions of a category
func (h *CategoryHandler) HandleCategoryTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categoryID := r.PathValue("id")
	if categoryID == "" {
		http.Error(w, "Category ID is required", http.StatusBadRequest)
		return
	}

	if _, err := h.service.GetCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) {
			http.Error(w, "Category not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting category %s: %v", categoryID, err)
		http.Error(w, "Failed to get category", http.StatusInternalServerError)
		return
	}

	txs, err := h.transactions.SearchTransactions(r.Context(), transaction.SearchFilters{CategoryID: categoryID})
	if err != nil {
		log.Printf("Error listing transactions for category %s: %v", categoryID, err)
		http.Error(w, "Failed to list category transactions", http.StatusInternalServerError)
		return
	}

	response := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		response = append(response, toTransactionResponse(tx))
	}

	writeJSON(w, http.StatusOK, response)
}
