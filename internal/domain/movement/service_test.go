package movement

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

// fakeLedger is an in-memory Repository with real transaction semantics:
// each InTx call works on a copy of the state and only commits it back
// when fn succeeds, so rollback behavior can be asserted.
type fakeLedger struct {
	mu        sync.Mutex
	balances  map[string]float64
	initials  map[string]float64
	movements map[string]*Movement

	// failure injection
	insertErr error
	updateErr error
	deleteErr error
	adjustErr error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances:  make(map[string]float64),
		initials:  make(map[string]float64),
		movements: make(map[string]*Movement),
	}
}

func (f *fakeLedger) addAccount(id string, balance float64) {
	f.balances[id] = balance
	f.initials[id] = balance
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.movements[id]
	if !ok {
		return nil, ErrMovementNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeLedger) ListByAccountID(ctx context.Context, accountID string, limit, offset int) ([]*Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*Movement
	for _, m := range f.movements {
		if m.AccountID == accountID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeLedger) InTx(ctx context.Context, fn func(tx TxRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tx := &fakeTx{
		ledger:    f,
		balances:  make(map[string]float64, len(f.balances)),
		movements: make(map[string]*Movement, len(f.movements)),
	}
	for k, v := range f.balances {
		tx.balances[k] = v
	}
	for k, v := range f.movements {
		copied := *v
		tx.movements[k] = &copied
	}

	if err := fn(tx); err != nil {
		return err
	}

	// Commit
	f.balances = tx.balances
	f.movements = tx.movements
	return nil
}

func (f *fakeLedger) BalanceSnapshot(ctx context.Context, accountID string) (float64, float64, float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	balance, ok := f.balances[accountID]
	if !ok {
		return 0, 0, 0, ErrAccountNotFound
	}

	var sum float64
	for _, m := range f.movements {
		if m.AccountID == accountID {
			sum += m.SignedAmount()
		}
	}
	return balance, f.initials[accountID], sum, nil
}

type fakeTx struct {
	ledger    *fakeLedger
	balances  map[string]float64
	movements map[string]*Movement
}

func (t *fakeTx) AccountExists(ctx context.Context, accountID string) (bool, error) {
	_, ok := t.balances[accountID]
	return ok, nil
}

func (t *fakeTx) GetByID(ctx context.Context, id string) (*Movement, error) {
	m, ok := t.movements[id]
	if !ok {
		return nil, ErrMovementNotFound
	}
	copied := *m
	return &copied, nil
}

func (t *fakeTx) Insert(ctx context.Context, id string, params CreateParams) (*Movement, error) {
	if t.ledger.insertErr != nil {
		return nil, t.ledger.insertErr
	}

	m := &Movement{
		ID:          id,
		AccountID:   params.AccountID,
		Description: params.Description,
		Amount:      params.Amount,
		Type:        params.Type,
		Date:        params.Date,
		CategoryID:  params.CategoryID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	t.movements[id] = m
	copied := *m
	return &copied, nil
}

func (t *fakeTx) Update(ctx context.Context, id string, params UpdateParams) (*Movement, error) {
	if t.ledger.updateErr != nil {
		return nil, t.ledger.updateErr
	}

	m, ok := t.movements[id]
	if !ok {
		return nil, ErrMovementNotFound
	}
	if params.Description != nil {
		m.Description = *params.Description
	}
	if params.Amount != nil {
		m.Amount = *params.Amount
	}
	if params.Type != nil {
		m.Type = *params.Type
	}
	if params.Date != nil {
		m.Date = *params.Date
	}
	if params.CategoryID != nil {
		m.CategoryID = params.CategoryID
	}
	m.UpdatedAt = time.Now()
	copied := *m
	return &copied, nil
}

func (t *fakeTx) Delete(ctx context.Context, id string) error {
	if t.ledger.deleteErr != nil {
		return t.ledger.deleteErr
	}

	if _, ok := t.movements[id]; !ok {
		return ErrMovementNotFound
	}
	delete(t.movements, id)
	return nil
}

func (t *fakeTx) AdjustBalance(ctx context.Context, accountID string, delta float64) error {
	if t.ledger.adjustErr != nil {
		return t.ledger.adjustErr
	}

	if _, ok := t.balances[accountID]; !ok {
		return ErrAccountNotFound
	}
	t.balances[accountID] += delta
	return nil
}

func (f *fakeLedger) balance(accountID string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[accountID]
}

func (f *fakeLedger) movementCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.movements)
}

func TestCreateMovement(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		movementTyp string
		amount      float64
		wantBalance float64
	}{
		{
			name:        "income increases balance",
			movementTyp: TypeIncome,
			amount:      250.50,
			wantBalance: 1250.50,
		},
		{
			name:        "expense decreases balance",
			movementTyp: TypeExpense,
			amount:      99.99,
			wantBalance: 900.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			ledger.addAccount("acc-1", 1000)
			service := NewService(ledger)

			m, err := service.CreateMovement(ctx, CreateParams{
				AccountID:   "acc-1",
				Description: "test",
				Amount:      tt.amount,
				Type:        tt.movementTyp,
			})
			if err != nil {
				t.Fatalf("CreateMovement() error: %v", err)
			}
			if m.ID == "" {
				t.Error("expected generated movement ID")
			}
			if m.Date.IsZero() {
				t.Error("expected defaulted movement date")
			}
			if got := ledger.balance("acc-1"); math.Abs(got-tt.wantBalance) > 1e-9 {
				t.Errorf("balance = %v, want %v", got, tt.wantBalance)
			}
		})
	}
}

func TestCreateMovement_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{
			name:    "zero amount",
			params:  CreateParams{AccountID: "acc-1", Description: "x", Amount: 0, Type: TypeIncome},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			params:  CreateParams{AccountID: "acc-1", Description: "x", Amount: -10, Type: TypeIncome},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN amount",
			params:  CreateParams{AccountID: "acc-1", Description: "x", Amount: math.NaN(), Type: TypeIncome},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			params:  CreateParams{AccountID: "acc-1", Description: "x", Amount: 10, Type: "TRANSFER"},
			wantErr: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger()
			ledger.addAccount("acc-1", 500)
			service := NewService(ledger)

			_, err := service.CreateMovement(ctx, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got := ledger.balance("acc-1"); got != 500 {
				t.Errorf("balance changed on rejected create: %v", got)
			}
			if ledger.movementCount() != 0 {
				t.Error("movement persisted on rejected create")
			}
		})
	}
}

func TestCreateMovement_AccountNotFound(t *testing.T) {
	ledger := newFakeLedger()
	service := NewService(ledger)

	_, err := service.CreateMovement(context.Background(), CreateParams{
		AccountID:   "missing",
		Description: "x",
		Amount:      10,
		Type:        TypeIncome,
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}

func TestCreateMovement_AdjustFailureRollsBack(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 100)
	ledger.adjustErr = errors.New("write failed")
	service := NewService(ledger)

	_, err := service.CreateMovement(context.Background(), CreateParams{
		AccountID:   "acc-1",
		Description: "x",
		Amount:      50,
		Type:        TypeIncome,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if ledger.movementCount() != 0 {
		t.Error("insert survived a failed transaction")
	}
	if got := ledger.balance("acc-1"); got != 100 {
		t.Errorf("balance = %v, want 100", got)
	}
}

func TestUpdateMovement_AmountChange(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 0)
	service := NewService(ledger)

	m, err := service.CreateMovement(ctx, CreateParams{
		AccountID: "acc-1", Description: "salary", Amount: 1000, Type: TypeIncome,
	})
	if err != nil {
		t.Fatalf("CreateMovement() error: %v", err)
	}

	newAmount := 1500.0
	if _, err := service.UpdateMovement(ctx, m.ID, UpdateParams{Amount: &newAmount}); err != nil {
		t.Fatalf("UpdateMovement() error: %v", err)
	}

	if got := ledger.balance("acc-1"); math.Abs(got-1500) > 1e-9 {
		t.Errorf("balance = %v, want 1500", got)
	}
}

func TestUpdateMovement_TypeFlip(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 0)
	service := NewService(ledger)

	m, err := service.CreateMovement(ctx, CreateParams{
		AccountID: "acc-1", Description: "oops", Amount: 200, Type: TypeIncome,
	})
	if err != nil {
		t.Fatalf("CreateMovement() error: %v", err)
	}
	if got := ledger.balance("acc-1"); got != 200 {
		t.Fatalf("balance after create = %v, want 200", got)
	}

	// Flipping income to expense swings the balance by twice the amount.
	expense := TypeExpense
	if _, err := service.UpdateMovement(ctx, m.ID, UpdateParams{Type: &expense}); err != nil {
		t.Fatalf("UpdateMovement() error: %v", err)
	}
	if got := ledger.balance("acc-1"); math.Abs(got-(-200)) > 1e-9 {
		t.Errorf("balance = %v, want -200", got)
	}
}

func TestUpdateMovement_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 0)
	service := NewService(ledger)

	m, err := service.CreateMovement(ctx, CreateParams{
		AccountID: "acc-1", Description: "x", Amount: 300, Type: TypeIncome,
	})
	if err != nil {
		t.Fatalf("CreateMovement() error: %v", err)
	}

	ledger.updateErr = errors.New("write failed")
	newAmount := 999.0
	if _, err := service.UpdateMovement(ctx, m.ID, UpdateParams{Amount: &newAmount}); err == nil {
		t.Fatal("expected error")
	}

	// The reversal applied before the failing update must not commit.
	if got := ledger.balance("acc-1"); got != 300 {
		t.Errorf("balance = %v, want 300", got)
	}
	stored, _ := ledger.GetByID(ctx, m.ID)
	if stored.Amount != 300 {
		t.Errorf("amount = %v, want 300", stored.Amount)
	}
}

func TestUpdateMovement_NotFound(t *testing.T) {
	ledger := newFakeLedger()
	service := NewService(ledger)

	amount := 10.0
	_, err := service.UpdateMovement(context.Background(), "missing", UpdateParams{Amount: &amount})
	if !errors.Is(err, ErrMovementNotFound) {
		t.Errorf("error = %v, want ErrMovementNotFound", err)
	}
}

func TestDeleteMovement(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 50)
	service := NewService(ledger)

	m, err := service.CreateMovement(ctx, CreateParams{
		AccountID: "acc-1", Description: "groceries", Amount: 30, Type: TypeExpense,
	})
	if err != nil {
		t.Fatalf("CreateMovement() error: %v", err)
	}
	if got := ledger.balance("acc-1"); got != 20 {
		t.Fatalf("balance after create = %v, want 20", got)
	}

	if err := service.DeleteMovement(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMovement() error: %v", err)
	}

	// Round trip: create then delete leaves the balance untouched.
	if got := ledger.balance("acc-1"); got != 50 {
		t.Errorf("balance = %v, want 50", got)
	}
	if ledger.movementCount() != 0 {
		t.Error("movement still present after delete")
	}
}

func TestDeleteMovement_NotFound(t *testing.T) {
	ledger := newFakeLedger()
	service := NewService(ledger)

	err := service.DeleteMovement(context.Background(), "missing")
	if !errors.Is(err, ErrMovementNotFound) {
		t.Errorf("error = %v, want ErrMovementNotFound", err)
	}
}

func TestConcurrentCreates_BalanceMatchesSum(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 0)
	service := NewService(ledger)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			typ := TypeIncome
			if i%2 == 1 {
				typ = TypeExpense
			}
			_, err := service.CreateMovement(ctx, CreateParams{
				AccountID: "acc-1", Description: "concurrent", Amount: 10, Type: typ,
			})
			if err != nil {
				t.Errorf("CreateMovement() error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	rec, err := service.ReconcileAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ReconcileAccount() error: %v", err)
	}
	if !rec.InSync() {
		t.Errorf("ledger out of sync after concurrent creates: drift=%v", rec.Drift)
	}
	// 25 incomes and 25 expenses of 10 cancel out.
	if math.Abs(rec.StoredBalance) > 1e-9 {
		t.Errorf("stored balance = %v, want 0", rec.StoredBalance)
	}
}

func TestReconcileAccount_DetectsDrift(t *testing.T) {
	ctx := context.Background()
	ledger := newFakeLedger()
	ledger.addAccount("acc-1", 100)
	service := NewService(ledger)

	if _, err := service.CreateMovement(ctx, CreateParams{
		AccountID: "acc-1", Description: "x", Amount: 40, Type: TypeIncome,
	}); err != nil {
		t.Fatalf("CreateMovement() error: %v", err)
	}

	rec, err := service.ReconcileAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ReconcileAccount() error: %v", err)
	}
	if !rec.InSync() {
		t.Errorf("expected ledger in sync, drift=%v", rec.Drift)
	}

	// Corrupt the stored balance behind the ledger engine's back.
	ledger.mu.Lock()
	ledger.balances["acc-1"] += 7
	ledger.mu.Unlock()

	rec, err = service.ReconcileAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ReconcileAccount() error: %v", err)
	}
	if rec.InSync() {
		t.Error("expected drift to be detected")
	}
	if math.Abs(rec.Drift-7) > 1e-9 {
		t.Errorf("drift = %v, want 7", rec.Drift)
	}
}

func TestReconcileAccount_NotFound(t *testing.T) {
	ledger := newFakeLedger()
	service := NewService(ledger)

	_, err := service.ReconcileAccount(context.Background(), "missing")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}
