package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Billing BillingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for rendered PDF storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings. ShareBaseURL is the public
// frontend origin that document share links are built against.
type EmailConfig struct {
	Provider     string `mapstructure:"provider"`
	Region       string `mapstructure:"region"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	ShareBaseURL string `mapstructure:"share_base_url"`
}

// BillingConfig holds the fallback defaults applied to new accounts. The
// per-account settings row is authoritative once it exists.
type BillingConfig struct {
	DefaultLabourRate float64 `mapstructure:"default_labour_rate"`
	DefaultVatPercent float64 `mapstructure:"default_vat_percent"`
	DefaultCisPercent float64 `mapstructure:"default_cis_percent"`
	EnableVat         bool    `mapstructure:"enable_vat"`
	EnableCis         bool    `mapstructure:"enable_cis"`
}

// Load reads configuration from environment variables with the TRADEBOOK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRADEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tradebook")
	v.SetDefault("db.password", "tradebook_secret")
	v.SetDefault("db.name", "tradebook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "tradebook")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-2")
	v.SetDefault("s3.bucket", "tradebook-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 604800)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-2")
	v.SetDefault("email.from_address", "noreply@tradebook.app")
	v.SetDefault("email.from_name", "Tradebook")
	v.SetDefault("email.share_base_url", "http://localhost:3000")

	// Billing defaults
	v.SetDefault("billing.default_labour_rate", 45.0)
	v.SetDefault("billing.default_vat_percent", 20.0)
	v.SetDefault("billing.default_cis_percent", 20.0)
	v.SetDefault("billing.enable_vat", true)
	v.SetDefault("billing.enable_cis", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "TRADEBOOK_SERVER_PORT",
		"server.read_timeout":         "TRADEBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "TRADEBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":          "TRADEBOOK_SERVER_ENVIRONMENT",
		"db.host":                     "TRADEBOOK_DB_HOST",
		"db.port":                     "TRADEBOOK_DB_PORT",
		"db.user":                     "TRADEBOOK_DB_USER",
		"db.password":                 "TRADEBOOK_DB_PASSWORD",
		"db.name":                     "TRADEBOOK_DB_NAME",
		"db.sslmode":                  "TRADEBOOK_DB_SSLMODE",
		"db.max_open":                 "TRADEBOOK_DB_MAX_OPEN",
		"db.max_idle":                 "TRADEBOOK_DB_MAX_IDLE",
		"jwt.secret":                  "TRADEBOOK_JWT_SECRET",
		"jwt.access_expiry":           "TRADEBOOK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":          "TRADEBOOK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                  "TRADEBOOK_JWT_ISSUER",
		"s3.region":                   "TRADEBOOK_S3_REGION",
		"s3.bucket":                   "TRADEBOOK_S3_BUCKET",
		"s3.endpoint":                 "TRADEBOOK_S3_ENDPOINT",
		"s3.access_key":               "TRADEBOOK_S3_ACCESS_KEY",
		"s3.secret_key":               "TRADEBOOK_S3_SECRET_KEY",
		"s3.presign_expiry":           "TRADEBOOK_S3_PRESIGN_EXPIRY",
		"log.level":                   "TRADEBOOK_LOG_LEVEL",
		"log.format":                  "TRADEBOOK_LOG_FORMAT",
		"cors.allowed_origins":        "TRADEBOOK_CORS_ALLOWED_ORIGINS",
		"email.provider":              "TRADEBOOK_EMAIL_PROVIDER",
		"email.region":                "TRADEBOOK_EMAIL_REGION",
		"email.from_address":          "TRADEBOOK_EMAIL_FROM_ADDRESS",
		"email.from_name":             "TRADEBOOK_EMAIL_FROM_NAME",
		"email.share_base_url":        "TRADEBOOK_EMAIL_SHARE_BASE_URL",
		"billing.default_labour_rate": "TRADEBOOK_BILLING_DEFAULT_LABOUR_RATE",
		"billing.default_vat_percent": "TRADEBOOK_BILLING_DEFAULT_VAT_PERCENT",
		"billing.default_cis_percent": "TRADEBOOK_BILLING_DEFAULT_CIS_PERCENT",
		"billing.enable_vat":          "TRADEBOOK_BILLING_ENABLE_VAT",
		"billing.enable_cis":          "TRADEBOOK_BILLING_ENABLE_CIS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TRADEBOOK_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRADEBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Email = EmailConfig{
		Provider:     v.GetString("email.provider"),
		Region:       v.GetString("email.region"),
		FromAddress:  v.GetString("email.from_address"),
		FromName:     v.GetString("email.from_name"),
		ShareBaseURL: v.GetString("email.share_base_url"),
	}
	cfg.Billing = BillingConfig{
		DefaultLabourRate: v.GetFloat64("billing.default_labour_rate"),
		DefaultVatPercent: v.GetFloat64("billing.default_vat_percent"),
		DefaultCisPercent: v.GetFloat64("billing.default_cis_percent"),
		EnableVat:         v.GetBool("billing.enable_vat"),
		EnableCis:         v.GetBool("billing.enable_cis"),
	}

	return cfg, nil
}
