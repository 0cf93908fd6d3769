package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerAddr        = ":8080"
	defaultSearchDebounce    = 300 * time.Millisecond
	defaultHTTPClientTimeout = 10 * time.Second
	defaultSessionSecret     = "tour-of-heroes-dev-secret"
	defaultWriteRateLimit    = 10.0
)

// Provider is the read-only view of the configuration handed to the rest of
// the application.
type Provider interface {
	GetServerAddr() string
	GetAPIBaseURL() string
	GetSeedFile() string
	GetSeedWatch() bool
	GetSearchDebounce() time.Duration
	GetHTTPClientTimeout() time.Duration
	GetSessionSecret() string
	GetWriteRateLimit() float64
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr        string
	APIBaseURL        string
	SeedFile          string
	SeedWatch         bool
	SearchDebounce    time.Duration
	HTTPClientTimeout time.Duration
	SessionSecret     string
	WriteRateLimit    float64
}

// New loads configuration from a .env file, if present, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		ServerAddr:        getEnv("SERVER_ADDR", defaultServerAddr),
		APIBaseURL:        strings.TrimRight(os.Getenv("HEROES_API_URL"), "/"),
		SeedFile:          os.Getenv("HEROES_SEED_FILE"),
		SeedWatch:         getEnvAsBool("HEROES_SEED_WATCH", false),
		SearchDebounce:    getEnvAsDuration("SEARCH_DEBOUNCE", defaultSearchDebounce),
		HTTPClientTimeout: getEnvAsDuration("HTTP_CLIENT_TIMEOUT", defaultHTTPClientTimeout),
		SessionSecret:     getEnv("SESSION_SECRET", defaultSessionSecret),
		WriteRateLimit:    getEnvAsFloat("WRITE_RATE_LIMIT", defaultWriteRateLimit),
	}
}

func (c *Config) GetServerAddr() string { return c.ServerAddr }
func (c *Config) GetAPIBaseURL() string { return c.APIBaseURL }
func (c *Config) GetSeedFile() string { return c.SeedFile }
func (c *Config) GetSeedWatch() bool { return c.SeedWatch }
func (c *Config) GetSearchDebounce() time.Duration { return c.SearchDebounce }
func (c *Config) GetHTTPClientTimeout() time.Duration { return c.HTTPClientTimeout }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetWriteRateLimit() float64 { return c.WriteRateLimit }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("Invalid duration %q for %s, using %s", value, key, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		log.Printf("Invalid number %q for %s, using %v", value, key, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean %q for %s, using %v", value, key, defaultValue)
		return defaultValue
	}
	return b
}
