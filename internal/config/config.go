// Package config loads application configuration from the environment into
// an immutable Config value. godotenv is loaded by main before this runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration. It is constructed once in main and
// passed to the components that need it.
type Config struct {
	HTTPPort string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	JWTSecret     string
	TokenLifetime time.Duration

	AllowOrigins []string

	// Description enrichment. Disabled when OpenAIAPIKey is empty.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	EnrichTimeout time.Duration
}

// Load reads configuration from environment variables. JWT_SECRET is the only
// variable without a usable default.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DBUser:        getEnv("DB_USER", "root"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "todos"),
		JWTSecret:     secret,
		TokenLifetime: time.Duration(getIntEnv("TOKEN_LIFETIME_MIN", 60)) * time.Minute,
		AllowOrigins:  getSliceEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		EnrichTimeout: time.Duration(getIntEnv("ENRICH_TIMEOUT_SEC", 10)) * time.Second,
	}
	return cfg, nil
}

// DSN returns the MySQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// EnrichEnabled reports whether the description enrichment adapter should run.
func (c *Config) EnrichEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getSliceEnv(key, defaultVal string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = defaultVal
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
