package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database for containers without /usr/share/zoneinfo

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Reminders RemindersConfig
	Entries   EntriesConfig
	App       AppConfig
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

// S3Config holds attachment storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
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

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// RemindersConfig holds settings for the missed-check reminder worker.
type RemindersConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Concurrency  int           `mapstructure:"concurrency"`
}

// EntriesConfig holds rules for submitting form entries.
type EntriesConfig struct {
	// MaxBackdateDays limits how far in the past an entry may be dated; 0 disables the limit.
	MaxBackdateDays int `mapstructure:"max_backdate_days"`
}

// AppConfig holds business-calendar settings.
type AppConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured business timezone, falling back to UTC.
func (a *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables with the HACCP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("HACCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "haccp")
	v.SetDefault("db.password", "haccp_secret")
	v.SetDefault("db.name", "haccp_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "30m")
	v.SetDefault("jwt.refresh_expiry", "24h")
	v.SetDefault("jwt.issuer", "haccp")

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "haccp-attachments")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 900)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-central-1")
	v.SetDefault("email.from_address", "noreply@haccp.local")
	v.SetDefault("email.from_name", "HACCP Dokumentation")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Reminder defaults
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.poll_interval", "15m")
	v.SetDefault("reminders.concurrency", 4)

	v.SetDefault("entries.max_backdate_days", 31)
	v.SetDefault("app.timezone", "Europe/Berlin")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "HACCP_SERVER_PORT",
		"server.read_timeout":       "HACCP_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "HACCP_SERVER_WRITE_TIMEOUT",
		"server.environment":        "HACCP_SERVER_ENVIRONMENT",
		"db.host":                   "HACCP_DB_HOST",
		"db.port":                   "HACCP_DB_PORT",
		"db.user":                   "HACCP_DB_USER",
		"db.password":               "HACCP_DB_PASSWORD",
		"db.name":                   "HACCP_DB_NAME",
		"db.sslmode":                "HACCP_DB_SSLMODE",
		"db.max_open":               "HACCP_DB_MAX_OPEN",
		"db.max_idle":               "HACCP_DB_MAX_IDLE",
		"jwt.secret":                "HACCP_JWT_SECRET",
		"jwt.access_expiry":         "HACCP_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":        "HACCP_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                "HACCP_JWT_ISSUER",
		"s3.region":                 "HACCP_S3_REGION",
		"s3.bucket":                 "HACCP_S3_BUCKET",
		"s3.endpoint":               "HACCP_S3_ENDPOINT",
		"s3.access_key":             "HACCP_S3_ACCESS_KEY",
		"s3.secret_key":             "HACCP_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "HACCP_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "HACCP_S3_PRESIGN_EXPIRY",
		"log.level":                 "HACCP_LOG_LEVEL",
		"log.format":                "HACCP_LOG_FORMAT",
		"cors.allowed_origins":      "HACCP_CORS_ALLOWED_ORIGINS",
		"email.provider":            "HACCP_EMAIL_PROVIDER",
		"email.region":              "HACCP_EMAIL_REGION",
		"email.from_address":        "HACCP_EMAIL_FROM_ADDRESS",
		"email.from_name":           "HACCP_EMAIL_FROM_NAME",
		"email.frontend_url":        "HACCP_EMAIL_FRONTEND_URL",
		"reminders.enabled":         "HACCP_REMINDERS_ENABLED",
		"reminders.poll_interval":   "HACCP_REMINDERS_POLL_INTERVAL",
		"reminders.concurrency":     "HACCP_REMINDERS_CONCURRENCY",
		"entries.max_backdate_days": "HACCP_ENTRIES_MAX_BACKDATE_DAYS",
		"app.timezone":              "HACCP_APP_TIMEZONE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platform-provided PORT wins unless HACCP_SERVER_PORT is set explicitly.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HACCP_SERVER_PORT") == "" {
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
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Reminders = RemindersConfig{
		Enabled:      v.GetBool("reminders.enabled"),
		PollInterval: v.GetDuration("reminders.poll_interval"),
		Concurrency:  v.GetInt("reminders.concurrency"),
	}
	cfg.Entries = EntriesConfig{
		MaxBackdateDays: v.GetInt("entries.max_backdate_days"),
	}
	cfg.App = AppConfig{
		Timezone: v.GetString("app.timezone"),
	}

	if cfg.Reminders.Concurrency < 1 {
		cfg.Reminders.Concurrency = 1
	}
	if cfg.Reminders.Enabled && cfg.Reminders.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid reminders.poll_interval %q: must be positive", v.GetString("reminders.poll_interval"))
	}
	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return nil, fmt.Errorf("invalid app.timezone %q: %w", cfg.App.Timezone, err)
	}

	return cfg, nil
}
