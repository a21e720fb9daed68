package main

import (
	"log"

	"fintrack/internal/domain/account"
	"fintrack/internal/domain/bill"
	"fintrack/internal/domain/category"
	"fintrack/internal/domain/creditcard"
	"fintrack/internal/domain/movement"
	"fintrack/internal/infrastructure/postgres"
	httphandlers "fintrack/internal/interfaces/http"
	"fintrack/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AccountHandler    *httphandlers.AccountHandler
	MovementHandler   *httphandlers.MovementHandler
	CategoryHandler   *httphandlers.CategoryHandler
	CreditCardHandler *httphandlers.CreditCardHandler
	BillHandler       *httphandlers.BillHandler

	// Services (for the audit scheduler)
	AccountService  *account.Service
	MovementService *movement.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	movementRepo := postgres.NewMovementRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	creditCardRepo := postgres.NewCreditCardRepository(db)
	billRepo := postgres.NewBillRepository(db)

	// Initialize domain services
	accountService := account.NewService(accountRepo)
	movementService := movement.NewService(movementRepo)
	categoryService := category.NewService(categoryRepo)
	creditCardService := creditcard.NewService(creditCardRepo)
	billService := bill.NewService(billRepo)

	return &Dependencies{
		DB:                db,
		AccountHandler:    httphandlers.NewAccountHandler(accountService),
		MovementHandler:   httphandlers.NewMovementHandler(movementService),
		CategoryHandler:   httphandlers.NewCategoryHandler(categoryService),
		CreditCardHandler: httphandlers.NewCreditCardHandler(creditCardService),
		BillHandler:       httphandlers.NewBillHandler(billService),
		AccountService:    accountService,
		MovementService:   movementService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
