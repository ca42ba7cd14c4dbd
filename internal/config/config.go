package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Database types supported by the persistence layer.
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// Log level constants
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// DefaultCatalogURL is the games endpoint of the catalog API.
const DefaultCatalogURL = "https://api.igdb.com/v4/games/"

// Config holds the application configuration.
type Config struct {
	DatabaseURL  string `mapstructure:"DATABASE_URL" validate:"required_if=DatabaseType postgres"`
	DatabaseType string `mapstructure:"DATABASE_TYPE" validate:"required,oneof=postgres sqlite"`

	ClientID       string        `mapstructure:"CLIENT_ID" validate:"required"`
	AccessToken    string        `mapstructure:"ACCESS_TOKEN" validate:"required"`
	CatalogURL     string        `mapstructure:"CATALOG_URL" validate:"required,url"`
	CatalogTimeout time.Duration `mapstructure:"CATALOG_TIMEOUT" validate:"gt=0"`

	SessionSecret       string  `mapstructure:"SESSION_SECRET" validate:"required"`
	SessionCookieSecure bool    `mapstructure:"SESSION_COOKIE_SECURE"`
	BcryptCost          int     `mapstructure:"BCRYPT_COST" validate:"min=4,max=31"`
	AuthRatePerSecond   float64 `mapstructure:"AUTH_RATE_PER_SECOND" validate:"gt=0"`
	AuthRateBurst       int     `mapstructure:"AUTH_RATE_BURST" validate:"min=1"`

	Port           string   `mapstructure:"PORT" validate:"required,numeric"`
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	LogType       string `mapstructure:"LOG_TYPE" validate:"required,oneof=console file"`
	LogLevel      string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warning error"`
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSize    int    `mapstructure:"LOG_MAX_SIZE"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAge     int    `mapstructure:"LOG_MAX_AGE"`
}

// LoggerSettings holds configuration settings for logging, including log level, type and file rotation.
type LoggerSettings struct {
	LogLevel   string `validate:"required,oneof=debug info warning error"`
	LogType    string `validate:"required,oneof=console file"`
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	if s.LogType == LogTypeFile {
		if s.FilePath == "" {
			return errors.New("file path is required for file logger")
		}
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return errors.New("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 50 {
			return errors.New("max backups must be between 1 and 50")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return errors.New("max age must be between 1 and 365 days")
		}
	}

	return nil
}

// DatabaseSettings selects and addresses the database.
type DatabaseSettings struct {
	Type string
	DSN  string
}

var defaults = map[string]any{
	"DATABASE_URL":          "",
	"DATABASE_TYPE":         PostgresDbType,
	"CLIENT_ID":             "",
	"ACCESS_TOKEN":          "",
	"CATALOG_URL":           DefaultCatalogURL,
	"CATALOG_TIMEOUT":       "10s",
	"SESSION_SECRET":        "",
	"SESSION_COOKIE_SECURE": false,
	"BCRYPT_COST":           10,
	"AUTH_RATE_PER_SECOND":  1.0,
	"AUTH_RATE_BURST":       5,
	"PORT":                  "8080",
	"TRUSTED_PROXIES":       "",
	"LOG_TYPE":              LogTypeConsole,
	"LOG_LEVEL":             LogLevelInfo,
	"LOG_FILE":              "instance/gamelist.log",
	"LOG_MAX_SIZE":          16,
	"LOG_MAX_BACKUPS":       20,
	"LOG_MAX_AGE":           30,
}

// Load reads the configuration from an optional .env file in dir and the process environment.
// Environment variables take precedence over the file.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	cfg.DatabaseURL = NormalizeDatabaseURL(cfg.DatabaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	ls := c.LoggerSettings()
	return ls.Validate()
}

// LoggerSettings extracts the logger section.
func (c *Config) LoggerSettings() LoggerSettings {
	return LoggerSettings{
		LogLevel:   c.LogLevel,
		LogType:    c.LogType,
		FilePath:   c.LogFile,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
	}
}

// DatabaseSettings extracts the database section.
func (c *Config) DatabaseSettings() DatabaseSettings {
	return DatabaseSettings{Type: c.DatabaseType, DSN: c.DatabaseURL}
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme to postgresql://.
// Only the leading occurrence is replaced.
func NormalizeDatabaseURL(dsn string) string {
	const legacy = "postgres://"
	if strings.HasPrefix(dsn, legacy) {
		return "postgresql://" + strings.TrimPrefix(dsn, legacy)
	}
	return dsn
}
