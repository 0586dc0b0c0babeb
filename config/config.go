package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"lottobot/database"
)

// Config holds all application configuration
type Config struct {
	// Telegram configuration
	TelegramToken string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Bot configuration
	StartingBalance decimal.Decimal
	AdminIDs        []int64 // Telegram IDs allowed to resolve deposits and withdrawals

	// Announcement configuration
	AnnounceChatID int64 // Chat where settlement summaries are broadcast (0 disables)

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated, empty disables)

	// Settlement configuration
	SettlementHour int // Hour in UTC when the daily draw settles (0-23)

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.TelegramToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// A local .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{
		// Telegram
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Bot settings with defaults
		StartingBalance: decimal.Zero,

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Settlement
		SettlementHour: 20, // 8pm UTC

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsedBalance, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
		}
		config.StartingBalance = parsedBalance
	}
	if hour := os.Getenv("SETTLEMENT_HOUR"); hour != "" {
		parsedHour, err := strconv.Atoi(hour)
		if err != nil || parsedHour < 0 || parsedHour > 23 {
			return nil, fmt.Errorf("SETTLEMENT_HOUR must be an hour between 0 and 23")
		}
		config.SettlementHour = parsedHour
	}
	if chatID := os.Getenv("ANNOUNCE_CHAT_ID"); chatID != "" {
		if parsedChatID, err := strconv.ParseInt(chatID, 10, 64); err == nil {
			config.AnnounceChatID = parsedChatID
		}
	}

	// Parse admin Telegram IDs
	if adminIDs := os.Getenv("ADMIN_IDS"); adminIDs != "" {
		idStrings := strings.Split(adminIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr != "" {
				if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
					config.AdminIDs = append(config.AdminIDs, id)
				}
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.TelegramToken == "" {
			return nil, fmt.Errorf("TELEGRAM_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		AdminIDs:        []int64{999999, 999991, 999998}, // Default test admin IDs
		StartingBalance: decimal.NewFromInt(10),
		SettlementHour:  20,
	}
}
