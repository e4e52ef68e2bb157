package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Record store backends selectable through RECORD_STORE.
const (
	StorePostgres = "postgres"
	StoreREST     = "rest"
	StoreMemory   = "memory"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Reporting ReportingConfig
	Store     StoreConfig
	CORS      CORSConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

// ReportingConfig decides how instants become calendar days.
type ReportingConfig struct {
	Timezone  string
	WeeksBack int
}

// StoreConfig selects and tunes the record store.
type StoreConfig struct {
	Type           string
	URL            string
	Timeout        time.Duration
	BreakerTimeout time.Duration
	TripAfter      uint32
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads .env when present and builds the configuration from the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "hris_attendance"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    int32(dbMaxConns),
		AutoMigrate: autoMigrate,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:     getEnv("APP_NAME", "hris-attendance"),
		Version:  getEnv("APP_VERSION", "v1.0.0"),
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Reporting configuration
	weeksBack, err := strconv.Atoi(getEnv("TIMESHEET_WEEKS_BACK", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMESHEET_WEEKS_BACK: %w", err)
	}

	config.Reporting = ReportingConfig{
		Timezone:  getEnv("REPORTING_TIMEZONE", "Asia/Jakarta"),
		WeeksBack: weeksBack,
	}

	// Record store configuration
	storeTimeout, err := time.ParseDuration(getEnv("RECORD_STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECORD_STORE_TIMEOUT: %w", err)
	}
	breakerTimeout, err := time.ParseDuration(getEnv("RECORD_STORE_BREAKER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECORD_STORE_BREAKER_TIMEOUT: %w", err)
	}
	tripAfter, err := strconv.ParseUint(getEnv("RECORD_STORE_TRIP_AFTER", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid RECORD_STORE_TRIP_AFTER: %w", err)
	}

	config.Store = StoreConfig{
		Type:           strings.ToLower(getEnv("RECORD_STORE", StorePostgres)),
		URL:            strings.TrimRight(getEnv("RECORD_STORE_URL", ""), "/"),
		Timeout:        storeTimeout,
		BreakerTimeout: breakerTimeout,
		TripAfter:      uint32(tripAfter),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("invalid REPORTING_TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}
	if c.Reporting.WeeksBack < 1 || c.Reporting.WeeksBack > 52 {
		return fmt.Errorf("TIMESHEET_WEEKS_BACK must be between 1 and 52")
	}

	switch c.Store.Type {
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreREST:
		if c.Store.URL == "" {
			return fmt.Errorf("RECORD_STORE_URL is required when RECORD_STORE=rest")
		}
		if c.Store.Timeout <= 0 {
			return fmt.Errorf("RECORD_STORE_TIMEOUT must be positive")
		}
	case StoreMemory:
		if c.App.Env == "production" {
			return fmt.Errorf("RECORD_STORE=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown RECORD_STORE %q", c.Store.Type)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
