package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tally/internal/domain/monthref"
)

type MonthReferenceHandler struct {
	service *monthref.Service
}

func NewMonthReferenceHandler(service *monthref.Service) *MonthReferenceHandler {
	return &MonthReferenceHandler{service: service}
}

// Request/Response DTOs

type CreateMonthReferenceRequest struct {
	Month  int   `json:"month"`
	Year   int   `json:"year"`
	Active *bool `json:"active,omitempty"`
}

type UpdateMonthReferenceRequest struct {
	Month  *int  `json:"month,omitempty"`
	Year   *int  `json:"year,omitempty"`
	Active *bool `json:"active,omitempty"`
}

type MonthReferenceResponse struct {
	ID        string `json:"id"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toMonthReferenceResponse(ref *monthref.MonthReference) MonthReferenceResponse {
	return MonthReferenceResponse{
		ID:        ref.ID,
		Month:     ref.Month,
		Year:      ref.Year,
		Active:    ref.Active,
		CreatedAt: ref.CreatedAt.Format(timeFormat),
		UpdatedAt: ref.UpdatedAt.Format(timeFormat),
	}
}

// HandleMonthReferences routes requests to the appropriate handler based on method
func (h *MonthReferenceHandler) HandleMonthReferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListMonthReferences(w, r)
	case http.MethodPost:
		h.handleCreateMonthReference(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMonthReferenceByID routes requests for a specific month reference
func (h *MonthReferenceHandler) HandleMonthReferenceByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetMonthReference(w, r)
	case http.MethodPut:
		h.handleUpdateMonthReference(w, r)
	case http.MethodDelete:
		h.handleDeleteMonthReference(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MonthReferenceHandler) handleListMonthReferences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// A month/year pair means a period lookup rather than a listing
	if q.Get("month") != "" || q.Get("year") != "" {
		h.handleFindByPeriod(w, r)
		return
	}

	var (
		refs []*monthref.MonthReference
		err  error
	)
	if q.Get("active") == "true" {
		refs, err = h.service.ListActiveMonthReferences(r.Context())
	} else {
		refs, err = h.service.ListMonthReferences(r.Context())
	}

	if err != nil {
		log.Printf("Error listing month references: %v", err)
		http.Error(w, "Failed to list month references", http.StatusInternalServerError)
		return
	}

	response := make([]MonthReferenceResponse, 0, len(refs))
	for _, ref := range refs {
		response = append(response, toMonthReferenceResponse(ref))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *MonthReferenceHandler) handleFindByPeriod(w http.ResponseWriter, r *http.Request) {
	month, year, err := parsePeriod(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref, err := h.service.FindByPeriod(r.Context(), month, year)
	if err != nil {
		if errors.Is(err, monthref.ErrMonthReferenceNotFound) {
			http.Error(w, "Month reference not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toMonthReferenceResponse(ref))
}

func (h *MonthReferenceHandler) handleCreateMonthReference(w http.ResponseWriter, r *http.Request) {
	var req CreateMonthReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create month reference request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := monthref.CreateParams{
		Month:  req.Month,
		Year:   req.Year,
		Active: req.Active,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref, err := h.service.CreateMonthReference(r.Context(), params)
	if err != nil {
		if errors.Is(err, monthref.ErrPeriodExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Printf("Error creating month reference: %v", err)
		http.Error(w, "Failed to create month reference", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toMonthReferenceResponse(ref))
}

func (h *MonthReferenceHandler) handleGetMonthReference(w http.ResponseWriter, r *http.Request) {
	refID := r.PathValue("id")
	if refID == "" {
		http.Error(w, "Month reference ID is required", http.StatusBadRequest)
		return
	}

	ref, err := h.service.GetMonthReference(r.Context(), refID)
	if err != nil {
		if errors.Is(err, monthref.ErrMonthReferenceNotFound) {
			http.Error(w, "Month reference not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting month reference %s: %v", refID, err)
		http.Error(w, "Failed to get month reference", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMonthReferenceResponse(ref))
}

func (h *MonthReferenceHandler) handleUpdateMonthReference(w http.ResponseWriter, r *http.Request) {
	refID := r.PathValue("id")
	if refID == "" {
		http.Error(w, "Month reference ID is required", http.StatusBadRequest)
		return
	}

	var req UpdateMonthReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update month reference request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := monthref.UpdateParams{
		Month:  req.Month,
		Year:   req.Year,
		Active: req.Active,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref, err := h.service.UpdateMonthReference(r.Context(), refID, params)
	if err != nil {
		switch {
		case errors.Is(err, monthref.ErrMonthReferenceNotFound):
			http.Error(w, "Month reference not found", http.StatusNotFound)
		case errors.Is(err, monthref.ErrPeriodExists):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Printf("Error updating month reference %s: %v", refID, err)
			http.Error(w, "Failed to update month reference", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, toMonthReferenceResponse(ref))
}

func (h *MonthReferenceHandler) handleDeleteMonthReference(w http.ResponseWriter, r *http.Request) {
	refID := r.PathValue("id")
	if refID == "" {
		http.Error(w, "Month reference ID is required", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteMonthReference(r.Context(), refID); err != nil {
		if errors.Is(err, monthref.ErrMonthReferenceNotFound) {
			http.Error(w, "Month reference not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting month reference %s: %v", refID, err)
		http.Error(w, "Failed to delete month reference", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleActive flips the active flag of a month reference
func (h *MonthReferenceHandler) HandleToggleActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	refID := r.PathValue("id")
	if refID == "" {
		http.Error(w, "Month reference ID is required", http.StatusBadRequest)
		return
	}

	ref, err := h.service.ToggleActive(r.Context(), refID)
	if err != nil {
		if errors.Is(err, monthref.ErrMonthReferenceNotFound) {
			http.Error(w, "Month reference not found", http.StatusNotFound)
			return
		}
		log.Printf("Error toggling month reference %s: %v", refID, err)
		http.Error(w, "Failed to toggle month reference", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toMonthReferenceResponse(ref))
}
