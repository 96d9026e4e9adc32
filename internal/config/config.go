package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Holdings backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Missing quote policies
const (
	MissingQuoteFail = "fail"
	MissingQuoteSkip = "skip"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Holdings  HoldingsConfig
	Database  DatabaseConfig
	Quotes    QuotesConfig
	Valuation ValuationConfig
	Alerts    AlertsConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// HoldingsConfig selects where holdings are stored.
type HoldingsConfig struct {
	Backend string // json or sqlite
	Path    string // JSON holdings file
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// QuotesConfig holds configuration of the CoinGecko quote client.
type QuotesConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// ValuationConfig holds the quote currencies and the missing quote policy.
type ValuationConfig struct {
	PrimaryCurrency    string
	SecondaryCurrency  string
	MissingQuotePolicy string
}

// AlertsConfig holds the alert watch schedule. An empty schedule disables the watch.
type AlertsConfig struct {
	Schedule string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Holdings: HoldingsConfig{
			Backend: strings.ToLower(getEnv("HOLDINGS_BACKEND", BackendJSON)),
			Path:    getEnv("HOLDINGS_PATH", "./portfolio.json"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio.db"),
		},
		Quotes: QuotesConfig{
			BaseURL: strings.TrimRight(getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"), "/"),
		},
		Valuation: ValuationConfig{
			PrimaryCurrency:    strings.ToLower(getEnv("PRIMARY_CURRENCY", "usd")),
			SecondaryCurrency:  strings.ToLower(getEnv("SECONDARY_CURRENCY", "inr")),
			MissingQuotePolicy: strings.ToLower(getEnv("MISSING_QUOTE_POLICY", MissingQuoteFail)),
		},
		Alerts: AlertsConfig{
			Schedule: os.Getenv("ALERT_SCHEDULE"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	timeout, err := time.ParseDuration(getEnv("QUOTE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid QUOTE_TIMEOUT: must be positive")
	}
	config.Quotes.Timeout = timeout

	pretty, err := strconv.ParseBool(getEnv("LOG_PRETTY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY: %w", err)
	}
	config.Log.Pretty = pretty

	apiKey, err := resolveAPIKey(
		os.Getenv("COINGECKO_API_KEY"),
		os.Getenv("COINGECKO_API_KEY_ENCRYPTED"),
		os.Getenv("SECRET_KEY"),
	)
	if err != nil {
		return nil, err
	}
	config.Quotes.APIKey = apiKey

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Holdings.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid HOLDINGS_BACKEND %q: must be %q or %q", c.Holdings.Backend, BackendJSON, BackendSQLite)
	}

	switch c.Valuation.MissingQuotePolicy {
	case MissingQuoteFail, MissingQuoteSkip:
	default:
		return fmt.Errorf("invalid MISSING_QUOTE_POLICY %q: must be %q or %q",
			c.Valuation.MissingQuotePolicy, MissingQuoteFail, MissingQuoteSkip)
	}

	if c.Valuation.PrimaryCurrency == "" || c.Valuation.SecondaryCurrency == "" {
		return fmt.Errorf("PRIMARY_CURRENCY and SECONDARY_CURRENCY cannot be empty")
	}
	if c.Valuation.PrimaryCurrency == c.Valuation.SecondaryCurrency {
		return fmt.Errorf("PRIMARY_CURRENCY and SECONDARY_CURRENCY must differ")
	}
	return nil
}

// resolveAPIKey returns the plain API key, or decrypts the fernet token with the
// secret key when no plain key is set.
func resolveAPIKey(plain, encrypted, secret string) (string, error) {
	if plain != "" || encrypted == "" {
		return plain, nil
	}
	if secret == "" {
		return "", fmt.Errorf("COINGECKO_API_KEY_ENCRYPTED is set but SECRET_KEY is empty")
	}
	return DecryptSecret(encrypted, secret)
}

// EncryptSecret encrypts value into a fernet token with the base64 encoded secret key.
func EncryptSecret(value, secret string) (string, error) {
	key, err := fernet.DecodeKey(secret)
	if err != nil {
		return "", fmt.Errorf("invalid SECRET_KEY: %w", err)
	}
	tok, err := fernet.EncryptAndSign([]byte(value), key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(tok), nil
}

// DecryptSecret reverses EncryptSecret. Tokens never expire.
func DecryptSecret(token, secret string) (string, error) {
	key, err := fernet.DecodeKey(secret)
	if err != nil {
		return "", fmt.Errorf("invalid SECRET_KEY: %w", err)
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), -1, []*fernet.Key{key})
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt secret: invalid token or key")
	}
	return string(msg), nil
}

// GenerateSecretKey returns a new base64 encoded fernet key.
func GenerateSecretKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", err
	}
	return key.Encode(), nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
