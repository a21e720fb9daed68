package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"fintrack/internal/domain/movement"
)

type MovementHandler struct {
	movementService *movement.Service
}

func NewMovementHandler(movementService *movement.Service) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

type CreateMovementRequest struct {
	AccountID   string  `json:"accountId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"` // INCOME or EXPENSE
	Date        string  `json:"date,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

type UpdateMovementRequest struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Date        *string  `json:"date,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
}

// HandleMovements handles the movement collection (GET list, POST create)
func (h *MovementHandler) HandleMovements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListMovements(w, r)
	case http.MethodPost:
		h.handleCreateMovement(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MovementHandler) handleListMovements(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		http.Error(w, "accountId is required", http.StatusBadRequest)
		return
	}

	// Parse pagination parameters
	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	movements, err := h.movementService.ListByAccount(r.Context(), accountID, limit, offset)
	if err != nil {
		log.Printf("Error listing movements for account %s: %v", accountID, err)
		http.Error(w, "Failed to list movements", http.StatusInternalServerError)
		return
	}

	if movements == nil {
		movements = []*movement.Movement{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(movements)
}

func (h *MovementHandler) handleCreateMovement(w http.ResponseWriter, r *http.Request) {
	var req CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create movement request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "Invalid date format (use RFC 3339 or YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	params := movement.CreateParams{
		AccountID:   req.AccountID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        date,
		CategoryID:  req.CategoryID,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.movementService.CreateMovement(r.Context(), params)
	if err != nil {
		if errors.Is(err, movement.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		log.Printf("Error creating movement for account %s: %v", req.AccountID, err)
		http.Error(w, "Failed to create movement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// HandleMovementByID handles operations on a specific movement (GET, PUT and DELETE)
func (h *MovementHandler) HandleMovementByID(w http.ResponseWriter, r *http.Request) {
	movementID := r.PathValue("id")
	if movementID == "" {
		http.Error(w, "Movement ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetMovement(w, r, movementID)
	case http.MethodPut:
		h.handleUpdateMovement(w, r, movementID)
	case http.MethodDelete:
		h.handleDeleteMovement(w, r, movementID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MovementHandler) handleGetMovement(w http.ResponseWriter, r *http.Request, movementID string) {
	m, err := h.movementService.GetMovement(r.Context(), movementID)
	if err != nil {
		if errors.Is(err, movement.ErrMovementNotFound) {
			http.Error(w, "Movement not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting movement %s: %v", movementID, err)
		http.Error(w, "Failed to get movement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func (h *MovementHandler) handleUpdateMovement(w http.ResponseWriter, r *http.Request, movementID string) {
	var req UpdateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update movement request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			http.Error(w, "Invalid date format (use RFC 3339 or YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		date = &parsed
	}

	params := movement.UpdateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        date,
		CategoryID:  req.CategoryID,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.movementService.UpdateMovement(r.Context(), movementID, params)
	if err != nil {
		if errors.Is(err, movement.ErrMovementNotFound) {
			http.Error(w, "Movement not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating movement %s: %v", movementID, err)
		http.Error(w, "Failed to update movement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

func (h *MovementHandler) handleDeleteMovement(w http.ResponseWriter, r *http.Request, movementID string) {
	if err := h.movementService.DeleteMovement(r.Context(), movementID); err != nil {
		if errors.Is(err, movement.ErrMovementNotFound) {
			http.Error(w, "Movement not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting movement %s: %v", movementID, err)
		http.Error(w, "Failed to delete movement", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
