package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	HRAPI       HRAPIConfig
	Fetch       FetchConfig
	Breaker     BreakerConfig
	ActivityLog ActivityLogConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// HRAPIConfig describes the remote HR REST API
type HRAPIConfig struct {
	BaseURL              string
	Timeout              time.Duration
	MaxRetries           int
	RetryInitialInterval time.Duration
	// WarmupInterval is how often the API host is pinged. Zero disables it.
	WarmupInterval time.Duration
}

// FetchConfig controls the per-employee attendance fan-out
type FetchConfig struct {
	Concurrency    int
	RequestTimeout time.Duration
}

type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
}

type ActivityLogConfig struct {
	Capacity int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	// HR API configuration
	apiTimeout, err := getEnvDuration("HR_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	maxRetries, err := getEnvInt("HR_API_MAX_RETRIES", 2)
	if err != nil {
		return nil, err
	}
	retryInterval, err := getEnvDuration("HR_API_RETRY_INITIAL_INTERVAL", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}
	warmupInterval, err := getEnvDuration("HR_API_WARMUP_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}

	config.HRAPI = HRAPIConfig{
		BaseURL:              strings.TrimRight(getEnv("HR_API_BASE_URL", "https://hrms-backend-q2l1.onrender.com"), "/"),
		Timeout:              apiTimeout,
		MaxRetries:           maxRetries,
		RetryInitialInterval: retryInterval,
		WarmupInterval:       warmupInterval,
	}

	// Attendance fan-out configuration
	concurrency, err := getEnvInt("FETCH_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	config.Fetch = FetchConfig{
		Concurrency:    concurrency,
		RequestTimeout: fetchTimeout,
	}

	// Circuit breaker configuration
	threshold, err := getEnvInt("BREAKER_FAILURE_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}
	openTimeout, err := getEnvDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	config.Breaker = BreakerConfig{
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
	}

	capacity, err := getEnvInt("ACTIVITY_LOG_CAPACITY", 100)
	if err != nil {
		return nil, err
	}
	config.ActivityLog = ActivityLogConfig{Capacity: capacity}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.HRAPI.BaseURL == "" {
		return fmt.Errorf("HR_API_BASE_URL is required")
	}
	u, err := url.Parse(c.HRAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("HR_API_BASE_URL must be an absolute URL")
	}
	if c.HRAPI.MaxRetries < 0 {
		return fmt.Errorf("HR_API_MAX_RETRIES must not be negative")
	}
	if c.HRAPI.WarmupInterval < 0 {
		return fmt.Errorf("HR_API_WARMUP_INTERVAL must not be negative")
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.Fetch.RequestTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Breaker.FailureThreshold < 1 || int64(c.Breaker.FailureThreshold) > math.MaxUint32 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be between 1 and %d", uint32(math.MaxUint32))
	}
	if c.ActivityLog.Capacity < 1 {
		return fmt.Errorf("ACTIVITY_LOG_CAPACITY must be at least 1")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
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

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
