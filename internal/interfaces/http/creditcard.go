package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fintrack/internal/domain/creditcard"
)

type CreditCardHandler struct {
	cardService *creditcard.Service
}

func NewCreditCardHandler(cardService *creditcard.Service) *CreditCardHandler {
	return &CreditCardHandler{cardService: cardService}
}

type CreateCardRequest struct {
	Name       string  `json:"name"`
	Limit      float64 `json:"limit"`
	ClosingDay int     `json:"closingDay"`
	DueDay     int     `json:"dueDay"`
}

type UpdateCardRequest struct {
	Name       *string  `json:"name,omitempty"`
	Limit      *float64 `json:"limit,omitempty"`
	ClosingDay *int     `json:"closingDay,omitempty"`
	DueDay     *int     `json:"dueDay,omitempty"`
}

type CreateCardTransactionRequest struct {
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date,omitempty"`
	Installments int     `json:"installments,omitempty"`
	CategoryID   *string `json:"categoryId,omitempty"`
}

type UpdateCardTransactionRequest struct {
	Description  *string  `json:"description,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Installments *int     `json:"installments,omitempty"`
	CategoryID   *string  `json:"categoryId,omitempty"`
}

// HandleCards handles the card collection (GET list, POST create)
func (h *CreditCardHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListCards(w, r)
	case http.MethodPost:
		h.handleCreateCard(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CreditCardHandler) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		log.Printf("Error listing credit cards: %v", err)
		http.Error(w, "Failed to list credit cards", http.StatusInternalServerError)
		return
	}

	if cards == nil {
		cards = []*creditcard.CreditCard{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}

func (h *CreditCardHandler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create card request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := creditcard.CreateCardParams{
		Name:       req.Name,
		Limit:      req.Limit,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), params)
	if err != nil {
		log.Printf("Error creating credit card: %v", err)
		http.Error(w, "Failed to create credit card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(card)
}

// HandleCardByID handles operations on a specific card (GET, PUT and DELETE)
func (h *CreditCardHandler) HandleCardByID(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGetCard(w, r, cardID)
	case http.MethodPut:
		h.handleUpdateCard(w, r, cardID)
	case http.MethodDelete:
		h.handleDeleteCard(w, r, cardID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CreditCardHandler) handleGetCard(w http.ResponseWriter, r *http.Request, cardID string) {
	card, err := h.cardService.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, creditcard.ErrCardNotFound) {
			http.Error(w, "Credit card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting credit card %s: %v", cardID, err)
		http.Error(w, "Failed to get credit card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

func (h *CreditCardHandler) handleUpdateCard(w http.ResponseWriter, r *http.Request, cardID string) {
	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update card request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := creditcard.UpdateCardParams{
		Name:       req.Name,
		Limit:      req.Limit,
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), cardID, params)
	if err != nil {
		if errors.Is(err, creditcard.ErrCardNotFound) {
			http.Error(w, "Credit card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating credit card %s: %v", cardID, err)
		http.Error(w, "Failed to update credit card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(card)
}

func (h *CreditCardHandler) handleDeleteCard(w http.ResponseWriter, r *http.Request, cardID string) {
	if err := h.cardService.DeleteCard(r.Context(), cardID); err != nil {
		if errors.Is(err, creditcard.ErrCardNotFound) {
			http.Error(w, "Credit card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting credit card %s: %v", cardID, err)
		http.Error(w, "Failed to delete credit card", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCardTransactions handles a card's transaction collection (GET list, POST create)
func (h *CreditCardHandler) HandleCardTransactions(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListCardTransactions(w, r, cardID)
	case http.MethodPost:
		h.handleCreateCardTransaction(w, r, cardID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CreditCardHandler) handleListCardTransactions(w http.ResponseWriter, r *http.Request, cardID string) {
	transactions, err := h.cardService.ListTransactions(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, creditcard.ErrCardNotFound) {
			http.Error(w, "Credit card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error listing transactions for card %s: %v", cardID, err)
		http.Error(w, "Failed to list card transactions", http.StatusInternalServerError)
		return
	}

	if transactions == nil {
		transactions = []*creditcard.CardTransaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

func (h *CreditCardHandler) handleCreateCardTransaction(w http.ResponseWriter, r *http.Request, cardID string) {
	var req CreateCardTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create card transaction request: %v", err)
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

	params := creditcard.CreateTransactionParams{
		CardID:       cardID,
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         date,
		Installments: req.Installments,
		CategoryID:   req.CategoryID,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.cardService.CreateTransaction(r.Context(), params)
	if err != nil {
		if errors.Is(err, creditcard.ErrCardNotFound) {
			http.Error(w, "Credit card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error creating transaction for card %s: %v", cardID, err)
		http.Error(w, "Failed to create card transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

// HandleCardTransactionByID handles operations on a specific card transaction (PUT and DELETE)
func (h *CreditCardHandler) HandleCardTransactionByID(w http.ResponseWriter, r *http.Request) {
	transactionID := r.PathValue("id")
	if transactionID == "" {
		http.Error(w, "Transaction ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.handleUpdateCardTransaction(w, r, transactionID)
	case http.MethodDelete:
		h.handleDeleteCardTransaction(w, r, transactionID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CreditCardHandler) handleUpdateCardTransaction(w http.ResponseWriter, r *http.Request, transactionID string) {
	var req UpdateCardTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update card transaction request: %v", err)
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

	params := creditcard.UpdateTransactionParams{
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         date,
		Installments: req.Installments,
		CategoryID:   req.CategoryID,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.cardService.UpdateTransaction(r.Context(), transactionID, params)
	if err != nil {
		if errors.Is(err, creditcard.ErrTransactionNotFound) {
			http.Error(w, "Card transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating card transaction %s: %v", transactionID, err)
		http.Error(w, "Failed to update card transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func (h *CreditCardHandler) handleDeleteCardTransaction(w http.ResponseWriter, r *http.Request, transactionID string) {
	if err := h.cardService.DeleteTransaction(r.Context(), transactionID); err != nil {
		if errors.Is(err, creditcard.ErrTransactionNotFound) {
			http.Error(w, "Card transaction not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting card transaction %s: %v", transactionID, err)
		http.Error(w, "Failed to delete card transaction", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
