package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecretKey is the signing secret used when SECRET_KEY is unset.
// Running with it outside development is unsafe; see UsingDefaultSecret.
const DefaultSecretKey = "precedent-secret-key-2025"

// Config holds all application configuration
type Config struct {
	// Server settings
	Host        string
	Port        string
	Transport   string
	CORSOrigins []string

	// Store settings
	DatabaseURL  string
	StoreTimeout time.Duration

	// Logging settings
	LogLevel  string
	LogFormat string

	// Auth settings
	SecretKey    string
	TokenTTL     time.Duration
	AuthUsername string
	AuthPassword string

	// Analysis settings
	MaxInfoWords int

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "8001"),
		Transport:    strings.ToLower(getEnv("TRANSPORT", "gin")),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		SecretKey:    getEnv("SECRET_KEY", DefaultSecretKey),
		AuthUsername: getEnv("AUTH_USERNAME", "onebaldegg"),
		AuthPassword: getEnv("AUTH_PASSWORD", "4life"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
	}

	// An explicitly empty DATABASE_URL disables persistence.
	if _, set := os.LookupEnv("DATABASE_URL"); !set {
		cfg.DatabaseURL = "./data/precedent.db"
	}

	tokenTTL, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}
	cfg.TokenTTL = time.Duration(tokenTTL) * time.Hour

	cfg.MaxInfoWords, err = strconv.Atoi(getEnv("MAX_INFO_WORDS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_INFO_WORDS: %w", err)
	}

	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	storeTimeout, err := strconv.Atoi(getEnv("STORE_TIMEOUT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT: %w", err)
	}
	cfg.StoreTimeout = time.Duration(storeTimeout) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be caught while parsing.
func (c *Config) Validate() error {
	switch c.Transport {
	case "gin", "chi":
	default:
		return fmt.Errorf("invalid TRANSPORT %q: must be gin or chi", c.Transport)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("invalid TOKEN_TTL_HOURS: must be positive")
	}
	if c.MaxInfoWords <= 0 {
		return fmt.Errorf("invalid MAX_INFO_WORDS: must be positive")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("invalid CACHE_SIZE: must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("invalid CACHE_TTL: must be positive")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("invalid STORE_TIMEOUT: must be positive")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}
	return nil
}

// UsingDefaultSecret reports whether tokens are signed with the built-in
// secret.
func (c *Config) UsingDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// Address returns the listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
