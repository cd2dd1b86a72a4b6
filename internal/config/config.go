package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreMemory  = "memory"
	StoreSurreal = "surrealdb"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	Scheduling SchedulingConfig
	Auth       AuthConfig
	Notify     NotifyConfig
	Retention  RetentionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StoreConfig selects the calendar store backend and holds SurrealDB
// connection settings when the surrealdb backend is chosen.
type StoreConfig struct {
	Backend   string
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// SchedulingConfig holds availability search settings
type SchedulingConfig struct {
	SearchHorizon time.Duration
	CandidateStep time.Duration
	DayStartHour  int
	DayEndHour    int
}

// AuthConfig holds API key settings. An empty hash disables
// authentication.
type AuthConfig struct {
	APIKeyHash string
}

// NotifyConfig holds invitation dispatch settings
type NotifyConfig struct {
	OutboxDir string
	QueueSize int
}

// RetentionConfig holds past-event cleanup settings
type RetentionConfig struct {
	Schedule string
	MaxAge   time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Store: StoreConfig{
			Backend:   getEnv("STORE_BACKEND", StoreMemory),
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "tempo"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		Scheduling: SchedulingConfig{
			SearchHorizon: getDurationEnv("SCHEDULING_SEARCH_HORIZON", 7*24*time.Hour),
			CandidateStep: getDurationEnv("SCHEDULING_CANDIDATE_STEP", 30*time.Minute),
			DayStartHour:  getIntEnv("SCHEDULING_DAY_START_HOUR", 9),
			DayEndHour:    getIntEnv("SCHEDULING_DAY_END_HOUR", 17),
		},
		Auth: AuthConfig{
			APIKeyHash: getEnv("API_KEY_HASH", ""),
		},
		Notify: NotifyConfig{
			OutboxDir: getEnv("NOTIFY_OUTBOX_DIR", ""),
			QueueSize: getIntEnv("NOTIFY_QUEUE_SIZE", 128),
		},
		Retention: RetentionConfig{
			Schedule: getEnv("RETENTION_SCHEDULE", "@daily"),
			MaxAge:   getDurationEnv("RETENTION_MAX_AGE", 90*24*time.Hour),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreSurreal:
		if c.Store.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required for the surrealdb backend"))
		}
		if c.Store.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required for the surrealdb backend"))
		}
		if c.Store.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required for the surrealdb backend"))
		}
		if c.Store.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required for the surrealdb backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be '%s' or '%s', got '%s'", StoreMemory, StoreSurreal, c.Store.Backend))
	}

	if c.Scheduling.SearchHorizon <= 0 {
		errs = append(errs, errors.New("SCHEDULING_SEARCH_HORIZON must be positive"))
	}
	if c.Scheduling.CandidateStep <= 0 {
		errs = append(errs, errors.New("SCHEDULING_CANDIDATE_STEP must be positive"))
	}
	if c.Scheduling.DayStartHour < 0 || c.Scheduling.DayStartHour > 23 {
		errs = append(errs, errors.New("SCHEDULING_DAY_START_HOUR must be between 0 and 23"))
	}
	if c.Scheduling.DayEndHour < 1 || c.Scheduling.DayEndHour > 24 {
		errs = append(errs, errors.New("SCHEDULING_DAY_END_HOUR must be between 1 and 24"))
	}
	if c.Scheduling.DayEndHour <= c.Scheduling.DayStartHour {
		errs = append(errs, errors.New("SCHEDULING_DAY_END_HOUR must be after SCHEDULING_DAY_START_HOUR"))
	}

	if c.IsProduction() && c.Auth.APIKeyHash == "" {
		errs = append(errs, errors.New("API_KEY_HASH is required in production"))
	}

	if c.Notify.QueueSize <= 0 {
		errs = append(errs, errors.New("NOTIFY_QUEUE_SIZE must be positive"))
	}

	if c.Retention.Schedule == "" {
		errs = append(errs, errors.New("RETENTION_SCHEDULE is required"))
	}
	if c.Retention.MaxAge <= 0 {
		errs = append(errs, errors.New("RETENTION_MAX_AGE must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
