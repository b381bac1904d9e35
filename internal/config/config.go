package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from the environment.
type Config struct {
	AppEnv      string
	Port        string
	PostgresURL string
	AutoMigrate bool

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins    []string
	TrustedProxies []string
	RateLimitRPS   float64
	RateLimitBurst int

	StorageBaseURL string
	PublicAssetURL string
	MaxUploadBytes int64

	AppBaseURL string
	Currency   string
	Timezone   string

	AdminEmail    string
	AdminPassword string

	Mail MailConfig
}

type MailConfig struct {
	Provider         string // smtp | sendgrid | console
	From             string
	FromName         string
	AdminNotifyEmail string
	SendGridAPIKey   string

	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPUseSSL     bool
	SMTPRequireTLS bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("STORAGE_BASE_URL", "file:///tmp/storefront")
	v.SetDefault("PUBLIC_ASSET_URL", "http://localhost:8080/assets")
	v.SetDefault("MAX_UPLOAD_BYTES", 5<<20)
	v.SetDefault("APP_BASE_URL", "http://localhost:5173")
	v.SetDefault("CURRENCY", "USD")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("MAIL_PROVIDER", "console")
	v.SetDefault("MAIL_FROM", "no-reply@storefront.local")
	v.SetDefault("MAIL_FROM_NAME", "Storefront")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_REQUIRE_TLS", true)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		PostgresURL:    v.GetString("POSTGRES_URL"),
		AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		StorageBaseURL: strings.TrimRight(v.GetString("STORAGE_BASE_URL"), "/"),
		PublicAssetURL: strings.TrimRight(v.GetString("PUBLIC_ASSET_URL"), "/"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		AppBaseURL:     strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		Currency:       strings.ToUpper(v.GetString("CURRENCY")),
		Timezone:       v.GetString("TIMEZONE"),
		AdminEmail:     strings.ToLower(v.GetString("ADMIN_EMAIL")),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		Mail: MailConfig{
			Provider:         strings.ToLower(v.GetString("MAIL_PROVIDER")),
			From:             v.GetString("MAIL_FROM"),
			FromName:         v.GetString("MAIL_FROM_NAME"),
			AdminNotifyEmail: v.GetString("ADMIN_NOTIFY_EMAIL"),
			SendGridAPIKey:   v.GetString("SENDGRID_API_KEY"),
			SMTPHost:         v.GetString("SMTP_HOST"),
			SMTPPort:         v.GetInt("SMTP_PORT"),
			SMTPUsername:     v.GetString("SMTP_USERNAME"),
			SMTPPassword:     v.GetString("SMTP_PASSWORD"),
			SMTPUseSSL:       v.GetBool("SMTP_USE_SSL"),
			SMTPRequireTLS:   v.GetBool("SMTP_REQUIRE_TLS"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is required")
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	if len(cfg.Currency) != 3 {
		return nil, fmt.Errorf("CURRENCY must be an ISO 4217 code, got %q", cfg.Currency)
	}
	switch cfg.Mail.Provider {
	case "smtp", "sendgrid", "console":
	default:
		return nil, fmt.Errorf("unsupported MAIL_PROVIDER %q", cfg.Mail.Provider)
	}
	if cfg.Mail.Provider == "sendgrid" && cfg.Mail.SendGridAPIKey == "" {
		return nil, errors.New("SENDGRID_API_KEY is required when MAIL_PROVIDER=sendgrid")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
