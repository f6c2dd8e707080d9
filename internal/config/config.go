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

	"github.com/dezGusty/mgmt-sim-25-sub002/internal/domain/calendar"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Weekend  WeekendConfig
	Debounce DebounceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds the session token settings
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	SecureCookie     bool
}

// AppConfig holds application configuration
type AppConfig struct {
	Name        string
	Version     string
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// WeekendConfig is the weekend used when the database holds none.
type WeekendConfig struct {
	Days          []string
	DayCount      int
	Configuration calendar.WeekendConfiguration
}

type DebounceConfig struct {
	SearchWindow time.Duration
	// SweepInterval is how often idle per-client limiters are dropped.
	SweepInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, reading configuration from the environment", "error", err)
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "management_sim"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:        getEnv("APP_NAME", "management-sim"),
		Version:     getEnv("APP_VERSION", "dev"),
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:4200"),
	}

	secureCookie, err := strconv.ParseBool(getEnv("JWT_SECURE_COOKIE", strconv.FormatBool(config.App.Env == "production")))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_SECURE_COOKIE: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
		SecureCookie:     secureCookie,
	}

	config.Weekend, err = loadWeekend()
	if err != nil {
		return nil, err
	}

	searchWindow, err := time.ParseDuration(getEnv("SEARCH_DEBOUNCE", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("SEARCH_DEBOUNCE_SWEEP", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEARCH_DEBOUNCE_SWEEP: %w", err)
	}

	config.Debounce = DebounceConfig{
		SearchWindow:  searchWindow,
		SweepInterval: sweepInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadWeekend() (WeekendConfig, error) {
	days := getEnvSlice("WEEKEND_DAYS")
	if len(days) == 0 {
		days = []string{"Saturday", "Sunday"}
	}

	count := len(days)
	if raw := getEnv("WEEKEND_DAY_COUNT", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return WeekendConfig{}, fmt.Errorf("invalid WEEKEND_DAY_COUNT: %w", err)
		}
		count = n
	}

	parsed, err := calendar.ParseWeekendConfiguration(days, count)
	if err != nil {
		slog.Warn("Invalid weekend configuration, using Saturday and Sunday", "days", days, "count", count, "error", err)
		parsed = calendar.DefaultWeekend()
	}

	return WeekendConfig{
		Days:          days,
		DayCount:      count,
		Configuration: parsed,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return errors.New("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Debounce.SearchWindow <= 0 {
		return errors.New("SEARCH_DEBOUNCE must be positive")
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

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
