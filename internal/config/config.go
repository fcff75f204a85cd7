package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Security SecurityConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings. URL accepts a
// postgres URL or a sqlite file path; an empty URL with UseMock set runs the
// server against a seeded in-memory store.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level string
}

// SecurityConfig holds the optional shared-device PIN gate settings. An
// empty PIN disables the gate entirely.
type SecurityConfig struct {
	PIN             string
	SessionLifetime time.Duration
	CookieName      string
	CookieDomain    string
	CookieSecure    bool
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Addr: firstNonEmpty(
				os.Getenv("SERVER_ADDR"),
				os.Getenv("ADDR"),
				":8080",
			),
		},
		Database: DatabaseConfig{
			URL: firstNonEmpty(
				os.Getenv("DATABASE_URL"),
				os.Getenv("DB_URL"),
				"",
			),
			UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
			MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 2),
			MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 10),
			ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), time.Hour),
			ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 10*time.Minute),
		},
		Logging: LoggingConfig{
			Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		},
		Security: SecurityConfig{
			PIN:             strings.TrimSpace(os.Getenv("APP_PIN")),
			SessionLifetime: parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 12*time.Hour),
			CookieName:      firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "bakery_session"),
			CookieDomain:    os.Getenv("SESSION_COOKIE_DOMAIN"),
			CookieSecure:    parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
		},
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := time.ParseDuration(trimmed)
	if err != nil {
		return def
	}
	return parsed
}
