package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Order defaults and reminder lead time
	Orders OrdersConfig `yaml:"orders"`

	// Invoice output settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Business profile printed on invoices
	Business BusinessConfig `yaml:"business"`

	// Currency suffix used in rendered amounts
	Currency string `yaml:"currency"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type OrdersConfig struct {
	DefaultDeposit        float64 `yaml:"default_deposit"`         // Deposit prefilled on new orders
	NotificationLeadHours int     `yaml:"notification_lead_hours"` // Reminder fires this long before a session
}

type InvoiceConfig struct {
	OutputDir    string `yaml:"output_dir"`    // Directory for generated PDFs
	NumberPrefix string `yaml:"number_prefix"` // Invoice number prefix (e.g., "INV")
}

type BusinessConfig struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	TaxID   string `yaml:"tax_id"`
	Address string `yaml:"address"`
}

// DefaultConfigPath returns ~/.config/shutterbook/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "shutterbook", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "shutterbook", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".config", "shutterbook", "shutterbook.db"),
		},
		Orders: OrdersConfig{
			DefaultDeposit:        0,
			NotificationLeadHours: 1,
		},
		Invoice: InvoiceConfig{
			OutputDir:    filepath.Join(homeDir, ".config", "shutterbook", "invoices"),
			NumberPrefix: "INV",
		},
		Business: BusinessConfig{},
		Currency: "Kč",
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (database, invoices)
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	return os.MkdirAll(c.Invoice.OutputDir, 0755)
}
