package main

import (
	"log"

	"tally/internal/domain/account"
	"tally/internal/domain/category"
	"tally/internal/domain/monthref"
	"tally/internal/domain/transaction"
	"tally/internal/infrastructure/postgres"
	httphandlers "tally/internal/interfaces/http"
	"tally/internal/shared/auth"
	"tally/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler           *httphandlers.AuthHandler
	AccountHandler        *httphandlers.AccountHandler
	CategoryHandler       *httphandlers.CategoryHandler
	MonthReferenceHandler *httphandlers.MonthReferenceHandler
	TransactionHandler    *httphandlers.TransactionHandler

	// Auth
	Issuer   *auth.TokenIssuer
	Sessions *auth.SessionStore
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	monthRefRepo := postgres.NewMonthReferenceRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	// Initialize domain services
	accountService := account.NewService(accountRepo)
	categoryService := category.NewService(categoryRepo)
	monthRefService := monthref.NewService(monthRefRepo)
	transactionService := transaction.NewService(transactionRepo, monthRefRepo, accountRepo, categoryRepo)

	// Initialize auth components
	sessions := auth.NewSessionStore()
	issuer := auth.NewTokenIssuer(cfg.Auth.Secret, sessions)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(cfg.Auth.Username, cfg.Auth.PasswordHash, issuer, sessions)
	accountHandler := httphandlers.NewAccountHandler(accountService)
	categoryHandler := httphandlers.NewCategoryHandler(categoryService, transactionService)
	monthRefHandler := httphandlers.NewMonthReferenceHandler(monthRefService)
	transactionHandler := httphandlers.NewTransactionHandler(transactionService)

	return &Dependencies{
		DB:                    db,
		AuthHandler:           authHandler,
		AccountHandler:        accountHandler,
		CategoryHandler:       categoryHandler,
		MonthReferenceHandler: monthRefHandler,
		TransactionHandler:    transactionHandler,
		Issuer:                issuer,
		Sessions:              sessions,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
