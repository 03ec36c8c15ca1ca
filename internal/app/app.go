package app

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/mkadlec/shutterbook/internal/config"
	"github.com/mkadlec/shutterbook/internal/crypto"
	"github.com/mkadlec/shutterbook/internal/db"
	"github.com/mkadlec/shutterbook/internal/notify"
	"github.com/mkadlec/shutterbook/internal/repository"
	"github.com/mkadlec/shutterbook/internal/service"
	"github.com/mkadlec/shutterbook/internal/store"
	"golang.org/x/term"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB
	Store  store.Store

	// Collections
	ClientRepo  *repository.ClientRepo
	OrderRepo   *repository.OrderRepo
	ExpenseRepo *repository.ExpenseRepo

	// Services
	Ledger    *service.ClientLedger
	Orders    *service.OrderBook
	Expenses  *service.ExpenseService
	Invoices  *service.InvoiceWriter
	Reminders *notify.Book
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening database
// 4. Running migrations
// 5. Creating the document store and collections
// 6. Creating services (which load, migrate and reconcile collections)
func New(ctx context.Context) (*App, error) {
	// Load config from default path
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	// Get keyring for secure password storage
	keyring := crypto.NewKeyring()

	// Try to get existing encryption key
	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		fmt.Println("Setting up database encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return nil, fmt.Errorf("failed to set password: %w", err)
		}

		// Store the key in keyring
		if err := keyring.SetKey(password); err != nil {
			return nil, fmt.Errorf("failed to store encryption key: %w", err)
		}
	}

	// Open the database with encryption
	database, err := db.Open(cfg.Database.Path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations to ensure schema is up to date
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	documents := store.NewSQLite(database)

	clientRepo := repository.NewClientRepo(documents)
	orderRepo := repository.NewOrderRepo(documents)
	expenseRepo := repository.NewExpenseRepo(documents)

	reminders := notify.NewBook(documents)

	// Load failures degrade to empty collections rather than blocking
	// startup; warn and continue.
	ledger, err := service.NewClientLedger(ctx, clientRepo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	orders, err := service.NewOrderBook(ctx, orderRepo, ledger, reminders, cfg.Orders.NotificationLeadHours)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	expenses, err := service.NewExpenseService(ctx, expenseRepo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	return &App{
		Config:      cfg,
		DB:          database,
		Store:       documents,
		ClientRepo:  clientRepo,
		OrderRepo:   orderRepo,
		ExpenseRepo: expenseRepo,
		Ledger:      ledger,
		Orders:      orders,
		Expenses:    expenses,
		Invoices:    service.NewInvoiceWriter(cfg),
		Reminders:   reminders,
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// promptForPassword prompts user for a new database password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your booking data will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	// Read password securely (no echo)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	// Confirm password
	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // New line after confirmation
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	// Check if passwords match
	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
