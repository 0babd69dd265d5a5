package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port            int
	APIKey          string
	CORSAllowOrigin string

	// Database
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// Market data provider
	QuoteBaseURL           string
	SummaryBaseURL         string
	ChartBaseURL           string
	SearchBaseURL          string
	ProviderTimeoutSeconds int

	// Notifications
	WebhookURL string
	BotName    string

	// Universe file (optional; built-in defaults when empty)
	UniverseFile string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Server
		Port:            envInt("PORT", 3001),
		APIKey:          envStr("API_KEY", ""),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		// Database
		DBHost:     envStr("DB_HOST", "localhost"),
		DBPort:     envInt("DB_PORT", 5432),
		DBName:     envStr("DB_NAME", "nivesh_markets"),
		DBUser:     envStr("DB_USER", ""),
		DBPassword: envStr("DB_PASSWORD", ""),

		// Provider endpoints default to Yahoo Finance public hosts.
		QuoteBaseURL:           envStr("QUOTE_BASE_URL", "https://query1.finance.yahoo.com/v7/finance/quote"),
		SummaryBaseURL:         envStr("SUMMARY_BASE_URL", "https://query1.finance.yahoo.com/v10/finance/quoteSummary"),
		ChartBaseURL:           envStr("CHART_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
		SearchBaseURL:          envStr("SEARCH_BASE_URL", "https://query1.finance.yahoo.com/v1/finance/search"),
		ProviderTimeoutSeconds: envInt("PROVIDER_TIMEOUT_SECONDS", 10),

		// Notifications
		WebhookURL: envStr("WEBHOOK_URL", ""),
		BotName:    envStr("BOT_NAME", "NiveshMarkets"),

		UniverseFile: envStr("UNIVERSE_FILE", ""),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, "PORT must be a valid TCP port")
	}
	if c.DBUser == "" {
		errs = append(errs, "DB_USER is required")
	}
	if c.ProviderTimeoutSeconds <= 0 {
		errs = append(errs, "PROVIDER_TIMEOUT_SECONDS must be positive")
	}
	if c.APIKey == "" {
		fmt.Println("[WARN] API_KEY not set - watchlist/portfolio mutations have no authentication")
	}
	if c.WebhookURL == "" {
		fmt.Println("[WARN] WEBHOOK_URL not set - outage notifications disabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	fmt.Println("=== Nivesh Markets Backend Configuration ===")
	fmt.Printf("Port: %d\n", c.Port)
	fmt.Printf("Database: %s:%d/%s\n", c.DBHost, c.DBPort, c.DBName)
	fmt.Println("--------------------------------------")
	fmt.Println("Market Data Provider:")
	fmt.Printf("  Quote:   %s\n", c.QuoteBaseURL)
	fmt.Printf("  Summary: %s\n", c.SummaryBaseURL)
	fmt.Printf("  Chart:   %s\n", c.ChartBaseURL)
	fmt.Printf("  Search:  %s\n", c.SearchBaseURL)
	fmt.Printf("  Timeout: %ds\n", c.ProviderTimeoutSeconds)
	fmt.Println("--------------------------------------")
	fmt.Printf("Auth: %s\n", boolLabel(c.APIKey != "", "enabled (Bearer token)", "disabled"))
	fmt.Printf("Webhook: %s\n", boolLabel(c.WebhookURL != "", "configured", "not set"))
	if c.UniverseFile != "" {
		fmt.Printf("Universe file: %s\n", c.UniverseFile)
	} else {
		fmt.Println("Universe: built-in defaults")
	}
	fmt.Println("======================================")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
