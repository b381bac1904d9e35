package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("POSTGRES_URL", "postgres://localhost/storefront_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "console", cfg.Mail.Provider)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
	assert.True(t, cfg.AutoMigrate)
	assert.Nil(t, cfg.TrustedProxies)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CURRENCY", "pkr")
	t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example,")
	t.Setenv("STORAGE_BASE_URL", "mem://localhost/bucket/")
	t.Setenv("ADMIN_EMAIL", "Admin@Example.com")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "PKR", cfg.Currency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "mem://localhost/bucket", cfg.StorageBaseURL)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, cfg.TrustedProxies)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("POSTGRES_URL", "postgres://localhost/x")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsUnknownMailProvider(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_PROVIDER", "pigeon")

	_, err := Load()
	assert.ErrorContains(t, err, "MAIL_PROVIDER")
}

func TestLoadSendgridNeedsKey(t *testing.T) {
	setRequired(t)
	t.Setenv("MAIL_PROVIDER", "sendgrid")
	t.Setenv("SENDGRID_API_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "SENDGRID_API_KEY")
}
