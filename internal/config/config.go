package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendMemory   = "memory"
	BackendMock     = "mock"
	BackendEmailJS  = "emailjs"
	BackendLog      = "log"
)

type Config struct {
	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// Backend selection
	OrderStore    string
	SettingsStore string
	TicketStorage string
	Mailer        string

	// EmailJS
	EmailJSURL         string
	EmailJSServiceID   string
	EmailJSTemplateID  string
	EmailJSPublicKey   string
	EmailJSAccessToken string

	// Redis, used for idempotent operator requests when set
	RedisAddr      string
	IdempotencyTTL time.Duration

	// Operators
	OperatorEmails []string

	// Fulfillment
	EventTitle       string
	DeleteConfirmTTL time.Duration
	UploadTimeout    time.Duration
	MaxUploadBytes   int64

	// Server
	Port               string
	Environment        string
	BaseURL            string
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{
		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "tickets"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		OrderStore:    getEnv("ORDER_STORE", BackendPostgres),
		SettingsStore: getEnv("SETTINGS_STORE", BackendPostgres),
		TicketStorage: getEnv("TICKET_STORAGE", BackendSupabase),
		Mailer:        getEnv("MAILER", BackendEmailJS),

		EmailJSURL:         getEnv("EMAILJS_URL", "https://api.emailjs.com/api/v1.0/email/send"),
		EmailJSServiceID:   getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID:  getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:   getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSAccessToken: getEnv("EMAILJS_ACCESS_TOKEN", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		IdempotencyTTL: getDuration("IDEMPOTENCY_TTL", 24*time.Hour),

		OperatorEmails: getList("OPERATOR_EMAILS", nil),

		EventTitle:       getEnv("EVENT_TITLE", "Event"),
		DeleteConfirmTTL: getDuration("DELETE_CONFIRM_TTL", 5*time.Minute),
		UploadTimeout:    getDuration("UPLOAD_TIMEOUT", 60*time.Second),
		MaxUploadBytes:   getInt64("MAX_UPLOAD_BYTES", 64<<20),

		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}

	switch c.OrderStore {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when ORDER_STORE=postgres")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown ORDER_STORE %q", c.OrderStore)
	}

	switch c.SettingsStore {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SETTINGS_STORE=postgres")
		}
	case BackendSupabase:
		if err := c.requireSupabase("SETTINGS_STORE"); err != nil {
			return err
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown SETTINGS_STORE %q", c.SettingsStore)
	}

	switch c.TicketStorage {
	case BackendSupabase:
		if err := c.requireSupabase("TICKET_STORAGE"); err != nil {
			return err
		}
		if c.SupabaseStorageBucket == "" {
			return fmt.Errorf("SUPABASE_STORAGE_BUCKET is required when TICKET_STORAGE=supabase")
		}
	case BackendMock:
	default:
		return fmt.Errorf("unknown TICKET_STORAGE %q", c.TicketStorage)
	}

	switch c.Mailer {
	case BackendEmailJS:
		if c.EmailJSServiceID == "" || c.EmailJSTemplateID == "" || c.EmailJSPublicKey == "" {
			return fmt.Errorf("EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY are required when MAILER=emailjs")
		}
	case BackendLog:
	default:
		return fmt.Errorf("unknown MAILER %q", c.Mailer)
	}

	if c.DeleteConfirmTTL <= 0 {
		return fmt.Errorf("DELETE_CONFIRM_TTL must be positive")
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("UPLOAD_TIMEOUT must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// NeedsDatabase reports whether any selected backend talks to Postgres directly.
func (c *Config) NeedsDatabase() bool {
	return c.OrderStore == BackendPostgres || c.SettingsStore == BackendPostgres
}

func (c *Config) requireSupabase(setting string) error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required when %s=supabase", setting)
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required when %s=supabase", setting)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// getList splits a comma separated variable, dropping empty entries.
func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
