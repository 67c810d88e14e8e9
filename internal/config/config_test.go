package config_test

import (
	"testing"
	"time"

	"event-ticketing-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localConfig() *config.Config {
	return &config.Config{
		SupabaseJWTSecret: "secret",
		OrderStore:        config.BackendMemory,
		SettingsStore:     config.BackendMemory,
		TicketStorage:     config.BackendMock,
		Mailer:            config.BackendLog,
		DeleteConfirmTTL:  time.Minute,
		UploadTimeout:     time.Minute,
		MaxUploadBytes:    1 << 20,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/tickets")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "key")
	t.Setenv("EMAILJS_SERVICE_ID", "service")
	t.Setenv("EMAILJS_TEMPLATE_ID", "template")
	t.Setenv("EMAILJS_PUBLIC_KEY", "public")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.BackendPostgres, cfg.OrderStore)
	assert.Equal(t, config.BackendPostgres, cfg.SettingsStore)
	assert.Equal(t, config.BackendSupabase, cfg.TicketStorage)
	assert.Equal(t, config.BackendEmailJS, cfg.Mailer)
	assert.Equal(t, "tickets", cfg.SupabaseStorageBucket)
	assert.Equal(t, 5*time.Minute, cfg.DeleteConfirmTTL)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.NeedsDatabase())
}

func TestLoad_LocalBackends(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("ORDER_STORE", "memory")
	t.Setenv("SETTINGS_STORE", "memory")
	t.Setenv("TICKET_STORAGE", "mock")
	t.Setenv("MAILER", "log")
	t.Setenv("DELETE_CONFIRM_TTL", "90s")
	t.Setenv("OPERATOR_EMAILS", " ops@example.com, ,lead@example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.NeedsDatabase())
	assert.Equal(t, 90*time.Second, cfg.DeleteConfirmTTL)
	assert.Equal(t, []string{"ops@example.com", "lead@example.com"}, cfg.OperatorEmails)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "local backends", mutate: func(c *config.Config) {}},
		{name: "missing jwt secret", mutate: func(c *config.Config) { c.SupabaseJWTSecret = "" }, wantErr: "SUPABASE_JWT_SECRET"},
		{name: "postgres orders without url", mutate: func(c *config.Config) { c.OrderStore = config.BackendPostgres }, wantErr: "DATABASE_URL"},
		{name: "postgres settings without url", mutate: func(c *config.Config) { c.SettingsStore = config.BackendPostgres }, wantErr: "DATABASE_URL"},
		{name: "supabase settings without url", mutate: func(c *config.Config) { c.SettingsStore = config.BackendSupabase }, wantErr: "SUPABASE_URL"},
		{name: "supabase storage without key", mutate: func(c *config.Config) {
			c.TicketStorage = config.BackendSupabase
			c.SupabaseURL = "https://project.supabase.co"
		}, wantErr: "SUPABASE_PUBLISHABLE_KEY"},
		{name: "emailjs without ids", mutate: func(c *config.Config) { c.Mailer = config.BackendEmailJS }, wantErr: "EMAILJS_SERVICE_ID"},
		{name: "unknown order store", mutate: func(c *config.Config) { c.OrderStore = "sqlite" }, wantErr: "unknown ORDER_STORE"},
		{name: "unknown storage", mutate: func(c *config.Config) { c.TicketStorage = "s3" }, wantErr: "unknown TICKET_STORAGE"},
		{name: "zero delete ttl", mutate: func(c *config.Config) { c.DeleteConfirmTTL = 0 }, wantErr: "DELETE_CONFIRM_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := localConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
