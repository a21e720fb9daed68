package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fintrack/internal/domain/bill"
)

type BillHandler struct {
	billService *bill.Service
}

func NewBillHandler(billService *bill.Service) *BillHandler {
	return &BillHandler{billService: billService}
}

type CreateBillRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
	Frequency   string  `json:"frequency"` // monthly, yearly, one-time
}

type UpdateBillRequest struct {
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Frequency   *string  `json:"frequency,omitempty"`
}

// HandleBills handles the bill collection (GET list, POST create)
func (h *BillHandler) HandleBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListBills(w, r)
	case http.MethodPost:
		h.handleCreateBill(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BillHandler) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billService.ListBills(r.Context())
	if err != nil {
		log.Printf("Error listing bills: %v", err)
		http.Error(w, "Failed to list bills", http.StatusInternalServerError)
		return
	}

	if bills == nil {
		bills = []*bill.Bill{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bills)
}

func (h *BillHandler) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create bill request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := parseDate(req.DueDate)
		if err != nil {
			http.Error(w, "Invalid dueDate format (use RFC 3339 or YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		dueDate = parsed
	}

	params := bill.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Frequency:   req.Frequency,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.billService.CreateBill(r.Context(), params)
	if err != nil {
		log.Printf("Error creating bill: %v", err)
		http.Error(w, "Failed to create bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

// HandleBillByID handles operations on a specific bill (PUT and DELETE)
func (h *BillHandler) HandleBillByID(w http.ResponseWriter, r *http.Request) {
	billID := r.PathValue("id")
	if billID == "" {
		http.Error(w, "Bill ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handleUpdateBill(w, r, billID)
	case http.MethodDelete:
		h.handleDeleteBill(w, r, billID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BillHandler) handleUpdateBill(w http.ResponseWriter, r *http.Request, billID string) {
	var req UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update bill request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := parseDate(*req.DueDate)
		if err != nil {
			http.Error(w, "Invalid dueDate format (use RFC 3339 or YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		dueDate = &parsed
	}

	params := bill.UpdateParams{
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Frequency:   req.Frequency,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.billService.UpdateBill(r.Context(), billID, params)
	if err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating bill %s: %v", billID, err)
		http.Error(w, "Failed to update bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func (h *BillHandler) handleDeleteBill(w http.ResponseWriter, r *http.Request, billID string) {
	if err := h.billService.DeleteBill(r.Context(), billID); err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting bill %s: %v", billID, err)
		http.Error(w, "Failed to delete bill", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
