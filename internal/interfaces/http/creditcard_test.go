package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/domain/creditcard"
)

// MockCardRepo is a mock implementation of creditcard.Repository
type MockCardRepo struct {
	CreateCardFunc               func(ctx context.Context, id string, params creditcard.CreateCardParams) (*creditcard.CreditCard, error)
	GetCardByIDFunc              func(ctx context.Context, id string) (*creditcard.CreditCard, error)
	ListCardsFunc                func(ctx context.Context) ([]*creditcard.CreditCard, error)
	UpdateCardFunc               func(ctx context.Context, id string, params creditcard.UpdateCardParams) (*creditcard.CreditCard, error)
	DeleteCardFunc               func(ctx context.Context, id string) error
	CreateTransactionFunc        func(ctx context.Context, id string, params creditcard.CreateTransactionParams) (*creditcard.CardTransaction, error)
	GetTransactionByIDFunc       func(ctx context.Context, id string) (*creditcard.CardTransaction, error)
	ListTransactionsByCardIDFunc func(ctx context.Context, cardID string) ([]*creditcard.CardTransaction, error)
	UpdateTransactionFunc        func(ctx context.Context, id string, params creditcard.UpdateTransactionParams) (*creditcard.CardTransaction, error)
	DeleteTransactionFunc        func(ctx context.Context, id string) error
}

func (m *MockCardRepo) CreateCard(ctx context.Context, id string, params creditcard.CreateCardParams) (*creditcard.CreditCard, error) {
	if m.CreateCardFunc != nil {
		return m.CreateCardFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCardRepo) GetCardByID(ctx context.Context, id string) (*creditcard.CreditCard, error) {
	if m.GetCardByIDFunc != nil {
		return m.GetCardByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCardRepo) ListCards(ctx context.Context) ([]*creditcard.CreditCard, error) {
	if m.ListCardsFunc != nil {
		return m.ListCardsFunc(ctx)
	}
	return nil, nil
}

func (m *MockCardRepo) UpdateCard(ctx context.Context, id string, params creditcard.UpdateCardParams) (*creditcard.CreditCard, error) {
	if m.UpdateCardFunc != nil {
		return m.UpdateCardFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCardRepo) DeleteCard(ctx context.Context, id string) error {
	if m.DeleteCardFunc != nil {
		return m.DeleteCardFunc(ctx, id)
	}
	return nil
}

func (m *MockCardRepo) CreateTransaction(ctx context.Context, id string, params creditcard.CreateTransactionParams) (*creditcard.CardTransaction, error) {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCardRepo) GetTransactionByID(ctx context.Context, id string) (*creditcard.CardTransaction, error) {
	if m.GetTransactionByIDFunc != nil {
		return m.GetTransactionByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCardRepo) ListTransactionsByCardID(ctx context.Context, cardID string) ([]*creditcard.CardTransaction, error) {
	if m.ListTransactionsByCardIDFunc != nil {
		return m.ListTransactionsByCardIDFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockCardRepo) UpdateTransaction(ctx context.Context, id string, params creditcard.UpdateTransactionParams) (*creditcard.CardTransaction, error) {
	if m.UpdateTransactionFunc != nil {
		return m.UpdateTransactionFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCardRepo) DeleteTransaction(ctx context.Context, id string) error {
	if m.DeleteTransactionFunc != nil {
		return m.DeleteTransactionFunc(ctx, id)
	}
	return nil
}

func newCardHandler(repo *MockCardRepo) *CreditCardHandler {
	return NewCreditCardHandler(creditcard.NewService(repo))
}

func TestHandleCards_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"name":       "Visa",
				"limit":      5000.0,
				"closingDay": 10,
				"dueDay":     17,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Invalid Closing Day",
			body: map[string]interface{}{
				"name":       "Visa",
				"limit":      5000.0,
				"closingDay": 32,
				"dueDay":     17,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Name",
			body: map[string]interface{}{
				"limit":      5000.0,
				"closingDay": 10,
				"dueDay":     17,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newCardHandler(&MockCardRepo{
				CreateCardFunc: func(ctx context.Context, id string, params creditcard.CreateCardParams) (*creditcard.CreditCard, error) {
					return &creditcard.CreditCard{ID: id, Name: params.Name, Limit: params.Limit}, nil
				},
			})

			bodyBytes, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPost, "/api/cards", bytes.NewBuffer(bodyBytes))
			rr := httptest.NewRecorder()
			handler.HandleCards(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCardByID_Get_UsedLimit(t *testing.T) {
	handler := newCardHandler(&MockCardRepo{
		GetCardByIDFunc: func(ctx context.Context, id string) (*creditcard.CreditCard, error) {
			return &creditcard.CreditCard{ID: id, Name: "Visa", Limit: 5000, UsedLimit: 1234.56}, nil
		},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cards/{id}", handler.HandleCardByID)

	req, _ := http.NewRequest(http.MethodGet, "/api/cards/card-1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var card creditcard.CreditCard
	if err := json.NewDecoder(rr.Body).Decode(&card); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if card.UsedLimit != 1234.56 {
		t.Errorf("used limit = %v, want 1234.56", card.UsedLimit)
	}
}

func TestHandleCardTransactions(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		cardID         string
		body           map[string]interface{}
		mockRepo       func() *MockCardRepo
		expectedStatus int
	}{
		{
			name:   "Create Success",
			method: http.MethodPost,
			cardID: "card-1",
			body: map[string]interface{}{
				"description":  "laptop",
				"amount":       3200.0,
				"installments": 12,
			},
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					GetCardByIDFunc: func(ctx context.Context, id string) (*creditcard.CreditCard, error) {
						return &creditcard.CreditCard{ID: id, Name: "Visa"}, nil
					},
					CreateTransactionFunc: func(ctx context.Context, id string, params creditcard.CreateTransactionParams) (*creditcard.CardTransaction, error) {
						if params.CardID != "card-1" {
							t.Errorf("card id = %q, want card-1", params.CardID)
						}
						return &creditcard.CardTransaction{
							ID:                 id,
							CardID:             params.CardID,
							Amount:             params.Amount,
							Installments:       params.Installments,
							CurrentInstallment: 1,
						}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "Create Card Not Found",
			method: http.MethodPost,
			cardID: "card-999",
			body: map[string]interface{}{
				"description": "laptop",
				"amount":      3200.0,
			},
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					GetCardByIDFunc: func(ctx context.Context, id string) (*creditcard.CreditCard, error) {
						return nil, creditcard.ErrCardNotFound
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "List Success",
			method: http.MethodGet,
			cardID: "card-1",
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					GetCardByIDFunc: func(ctx context.Context, id string) (*creditcard.CreditCard, error) {
						return &creditcard.CreditCard{ID: id}, nil
					},
					ListTransactionsByCardIDFunc: func(ctx context.Context, cardID string) ([]*creditcard.CardTransaction, error) {
						return []*creditcard.CardTransaction{{ID: "tx-1", CardID: cardID}}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newCardHandler(tt.mockRepo())

			mux := http.NewServeMux()
			mux.HandleFunc("GET /api/cards/{id}/transactions", handler.HandleCardTransactions)
			mux.HandleFunc("POST /api/cards/{id}/transactions", handler.HandleCardTransactions)

			var body *bytes.Buffer
			if tt.body != nil {
				bodyBytes, _ := json.Marshal(tt.body)
				body = bytes.NewBuffer(bodyBytes)
			} else {
				body = bytes.NewBuffer(nil)
			}

			req, _ := http.NewRequest(tt.method, "/api/cards/"+tt.cardID+"/transactions", body)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCardTransactionByID_Delete(t *testing.T) {
	handler := newCardHandler(&MockCardRepo{
		DeleteTransactionFunc: func(ctx context.Context, id string) error {
			if id != "tx-1" {
				return creditcard.ErrTransactionNotFound
			}
			return nil
		},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/card-transactions/{id}", handler.HandleCardTransactionByID)

	req, _ := http.NewRequest(http.MethodDelete, "/api/card-transactions/tx-1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}

	req, _ = http.NewRequest(http.MethodDelete, "/api/card-transactions/tx-999", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
