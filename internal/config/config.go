// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Client configures the storefront CLI.
type Client struct {
	Endpoint       string
	Timeout        time.Duration
	SearchDebounce time.Duration
	SessionBackend string // "file" or "redis"
	SessionFile    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	LogLevel       string
	LogFormat      string
	OTLPEndpoint   string
}

// Server configures the reference storefront API.
type Server struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	RateLimit       float64
	RateBurst       int
	AuthRateLimit   float64
	AuthRateBurst   int
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
	OTLPEndpoint    string
}

// LoadEnv reads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadClient reads the CLI configuration from the environment.
func LoadClient() Client {
	return Client{
		Endpoint:       getEnv("STOREFRONT_ENDPOINT", "http://localhost:8082/api/v1"),
		Timeout:        getEnvAsDuration("STOREFRONT_TIMEOUT", 10*time.Second),
		SearchDebounce: getEnvAsDuration("STOREFRONT_SEARCH_DEBOUNCE", 500*time.Millisecond),
		SessionBackend: getEnv("STOREFRONT_SESSION_BACKEND", "file"),
		SessionFile:    getEnv("STOREFRONT_SESSION_FILE", defaultSessionFile()),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// LoadServer reads the API server configuration from the environment.
func LoadServer() Server {
	return Server{
		Port:            getEnv("PORT", "8082"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTL:        getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		RateLimit:       getEnvAsFloat("RATE_LIMIT", 50),
		RateBurst:       getEnvAsInt("RATE_BURST", 100),
		AuthRateLimit:   getEnvAsFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:   getEnvAsInt("AUTH_RATE_BURST", 10),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront-session.yaml"
	}
	return filepath.Join(dir, "storefront", "session.yaml")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
