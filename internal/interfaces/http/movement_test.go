package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/domain/movement"
)

// MockMovementRepo is a mock implementation of movement.Repository. InTx
// runs fn against the embedded Tx mock so handler tests can exercise the
// full create/update/delete path.
type MockMovementRepo struct {
	Tx MockMovementTx

	GetByIDFunc         func(ctx context.Context, id string) (*movement.Movement, error)
	ListByAccountIDFunc func(ctx context.Context, accountID string, limit, offset int) ([]*movement.Movement, error)
	BalanceSnapshotFunc func(ctx context.Context, accountID string) (float64, float64, float64, error)
}

func (m *MockMovementRepo) GetByID(ctx context.Context, id string) (*movement.Movement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockMovementRepo) ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*movement.Movement, error) {
	if m.ListByAccountIDFunc != nil {
		return m.ListByAccountIDFunc(ctx, accountID, limit, offset)
	}
	return nil, nil
}

func (m *MockMovementRepo) InTx(ctx context.Context, fn func(tx movement.TxRepository) error) error {
	return fn(&m.Tx)
}

func (m *MockMovementRepo) BalanceSnapshot(ctx context.Context, accountID string) (float64, float64, float64, error) {
	if m.BalanceSnapshotFunc != nil {
		return m.BalanceSnapshotFunc(ctx, accountID)
	}
	return 0, 0, 0, nil
}

// MockMovementTx is a mock implementation of movement.TxRepository
type MockMovementTx struct {
	AccountExistsFunc func(ctx context.Context, accountID string) (bool, error)
	GetByIDFunc       func(ctx context.Context, id string) (*movement.Movement, error)
	InsertFunc        func(ctx context.Context, id string, params movement.CreateParams) (*movement.Movement, error)
	UpdateFunc        func(ctx context.Context, id string, params movement.UpdateParams) (*movement.Movement, error)
	DeleteFunc        func(ctx context.Context, id string) error
	AdjustBalanceFunc func(ctx context.Context, accountID string, delta float64) error
}

func (m *MockMovementTx) AccountExists(ctx context.Context, accountID string) (bool, error) {
	if m.AccountExistsFunc != nil {
		return m.AccountExistsFunc(ctx, accountID)
	}
	return true, nil
}

func (m *MockMovementTx) GetByID(ctx context.Context, id string) (*movement.Movement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, movement.ErrMovementNotFound
}

func (m *MockMovementTx) Insert(ctx context.Context, id string, params movement.CreateParams) (*movement.Movement, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, id, params)
	}
	return &movement.Movement{
		ID:          id,
		AccountID:   params.AccountID,
		Description: params.Description,
		Amount:      params.Amount,
		Type:        params.Type,
		Date:        params.Date,
	}, nil
}

func (m *MockMovementTx) Update(ctx context.Context, id string, params movement.UpdateParams) (*movement.Movement, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, movement.ErrMovementNotFound
}

func (m *MockMovementTx) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockMovementTx) AdjustBalance(ctx context.Context, accountID string, delta float64) error {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, accountID, delta)
	}
	return nil
}

func newMovementHandler(repo *MockMovementRepo) *MovementHandler {
	return NewMovementHandler(movement.NewService(repo))
}

func TestHandleMovements_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockMovementRepo
		expectedStatus int
		expectedDelta  float64
	}{
		{
			name: "Income",
			body: map[string]interface{}{
				"accountId":   "acc-1",
				"description": "salary",
				"amount":      1000.0,
				"type":        "INCOME",
			},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusCreated,
			expectedDelta:  1000,
		},
		{
			name: "Expense",
			body: map[string]interface{}{
				"accountId":   "acc-1",
				"description": "groceries",
				"amount":      80.0,
				"type":        "EXPENSE",
			},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusCreated,
			expectedDelta:  -80,
		},
		{
			name: "Account Not Found",
			body: map[string]interface{}{
				"accountId":   "acc-999",
				"description": "salary",
				"amount":      1000.0,
				"type":        "INCOME",
			},
			mockRepo: func() *MockMovementRepo {
				return &MockMovementRepo{
					Tx: MockMovementTx{
						AccountExistsFunc: func(ctx context.Context, accountID string) (bool, error) {
							return false, nil
						},
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Zero Amount",
			body: map[string]interface{}{
				"accountId":   "acc-1",
				"description": "salary",
				"amount":      0.0,
				"type":        "INCOME",
			},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Type",
			body: map[string]interface{}{
				"accountId":   "acc-1",
				"description": "salary",
				"amount":      10.0,
				"type":        "TRANSFER",
			},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Date",
			body: map[string]interface{}{
				"accountId":   "acc-1",
				"description": "salary",
				"amount":      10.0,
				"type":        "INCOME",
				"date":        "31/12/2025",
			},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tt.mockRepo()

			var gotDelta float64
			var adjusted bool
			repo.Tx.AdjustBalanceFunc = func(ctx context.Context, accountID string, delta float64) error {
				gotDelta = delta
				adjusted = true
				return nil
			}

			handler := newMovementHandler(repo)

			bodyBytes, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPost, "/api/transactions", bytes.NewBuffer(bodyBytes))
			rr := httptest.NewRecorder()
			handler.HandleMovements(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusCreated {
				if !adjusted {
					t.Error("balance was not adjusted on create")
				}
				if gotDelta != tt.expectedDelta {
					t.Errorf("balance delta = %v, want %v", gotDelta, tt.expectedDelta)
				}
			}
		})
	}
}

func TestHandleMovements_List(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockRepo       func() *MockMovementRepo
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "Success",
			url:  "/api/transactions?accountId=acc-1",
			mockRepo: func() *MockMovementRepo {
				return &MockMovementRepo{
					ListByAccountIDFunc: func(ctx context.Context, accountID string, limit, offset int) ([]*movement.Movement, error) {
						if limit != 50 || offset != 0 {
							t.Errorf("limit/offset = %d/%d, want 50/0", limit, offset)
						}
						return []*movement.Movement{
							{ID: "mov-1", AccountID: accountID, Amount: 10, Type: movement.TypeIncome},
						}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name: "Custom Pagination",
			url:  "/api/transactions?accountId=acc-1&limit=10&offset=20",
			mockRepo: func() *MockMovementRepo {
				return &MockMovementRepo{
					ListByAccountIDFunc: func(ctx context.Context, accountID string, limit, offset int) ([]*movement.Movement, error) {
						if limit != 10 || offset != 20 {
							t.Errorf("limit/offset = %d/%d, want 10/20", limit, offset)
						}
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:           "Missing Account ID",
			url:            "/api/transactions",
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newMovementHandler(tt.mockRepo())

			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			rr := httptest.NewRecorder()
			handler.HandleMovements(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var movements []*movement.Movement
			if err := json.NewDecoder(rr.Body).Decode(&movements); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(movements) != tt.expectedLen {
				t.Errorf("len = %d, want %d", len(movements), tt.expectedLen)
			}
		})
	}
}

func TestHandleMovementByID_Update(t *testing.T) {
	existing := &movement.Movement{
		ID:        "mov-1",
		AccountID: "acc-1",
		Amount:    100,
		Type:      movement.TypeIncome,
		Date:      time.Now(),
	}

	tests := []struct {
		name           string
		movementID     string
		body           map[string]interface{}
		mockRepo       func() *MockMovementRepo
		expectedStatus int
	}{
		{
			name:       "Success",
			movementID: "mov-1",
			body:       map[string]interface{}{"amount": 150.0},
			mockRepo: func() *MockMovementRepo {
				return &MockMovementRepo{
					Tx: MockMovementTx{
						GetByIDFunc: func(ctx context.Context, id string) (*movement.Movement, error) {
							copied := *existing
							return &copied, nil
						},
						UpdateFunc: func(ctx context.Context, id string, params movement.UpdateParams) (*movement.Movement, error) {
							copied := *existing
							copied.Amount = *params.Amount
							return &copied, nil
						},
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not Found",
			movementID:     "mov-999",
			body:           map[string]interface{}{"amount": 150.0},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid Amount",
			movementID:     "mov-1",
			body:           map[string]interface{}{"amount": -5.0},
			mockRepo:       func() *MockMovementRepo { return &MockMovementRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newMovementHandler(tt.mockRepo())

			mux := http.NewServeMux()
			mux.HandleFunc("PUT /api/transactions/{id}", handler.HandleMovementByID)

			bodyBytes, _ := json.Marshal(tt.body)
			req, _ := http.NewRequest(http.MethodPut, "/api/transactions/"+tt.movementID, bytes.NewBuffer(bodyBytes))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleMovementByID_Delete(t *testing.T) {
	var deltas []float64
	repo := &MockMovementRepo{
		Tx: MockMovementTx{
			GetByIDFunc: func(ctx context.Context, id string) (*movement.Movement, error) {
				return &movement.Movement{ID: id, AccountID: "acc-1", Amount: 60, Type: movement.TypeExpense}, nil
			},
			AdjustBalanceFunc: func(ctx context.Context, accountID string, delta float64) error {
				deltas = append(deltas, delta)
				return nil
			},
		},
	}
	handler := newMovementHandler(repo)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/transactions/{id}", handler.HandleMovementByID)

	req, _ := http.NewRequest(http.MethodDelete, "/api/transactions/mov-1", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	// Deleting an expense of 60 credits the balance back.
	if len(deltas) != 1 || deltas[0] != 60 {
		t.Errorf("balance deltas = %v, want [60]", deltas)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-08-31", false},
		{"2026-08-31T14:30:00Z", false},
		{"2026-08-31T14:30:00-03:00", false},
		{"31/08/2026", true},
		{"not a date", true},
	}

	for _, tt := range tests {
		_, err := parseDate(tt.input)
		if tt.wantErr && err == nil {
			t.Errorf("parseDate(%q): expected error", tt.input)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("parseDate(%q) error: %v", tt.input, err)
		}
	}
}
