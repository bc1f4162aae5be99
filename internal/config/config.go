package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends understood by the server.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Store    StoreConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Server   ServerConfig
	CORS     CORSConfig
	Logging  LoggingConfig

	// SeedDemo inserts demo playlists when the store is empty.
	SeedDemo bool
}

// StoreConfig selects the playlist store implementation.
type StoreConfig struct {
	Backend        string
	ConnectTimeout time.Duration
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI      string
	Database string
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int
	Host            string
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from the environment, after merging an optional
// .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{}

	if err := cfg.loadStore(); err != nil {
		return nil, fmt.Errorf("load store config: %w", err)
	}
	cfg.loadMongo()
	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	cfg.loadCORS()
	cfg.loadLogging()

	seed, err := strconv.ParseBool(getEnvOrDefault("SEED_DEMO", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO: %w", err)
	}
	cfg.SeedDemo = seed

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the PostgreSQL settings. It is used by the
// migration tool, which runs regardless of STORE_BACKEND.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cfg.loadDatabase(); err != nil {
		return DatabaseConfig{}, err
	}
	if cfg.Database.URL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	return cfg.Database, nil
}

func (c *Config) loadStore() error {
	c.Store.Backend = strings.ToLower(getEnvOrDefault("STORE_BACKEND", BackendMongo))

	timeout, err := time.ParseDuration(getEnvOrDefault("STORE_CONNECT_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid STORE_CONNECT_TIMEOUT: %w", err)
	}
	c.Store.ConnectTimeout = timeout
	return nil
}

func (c *Config) loadMongo() {
	c.Mongo.URI = os.Getenv("MONGODB_URI")
	c.Mongo.Database = getEnvOrDefault("MONGODB_DATABASE", "tracklist")
}

func (c *Config) loadDatabase() error {
	// Try to load DATABASE_URL first
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	// If not present, construct from individual parameters
	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.Port = port

	if c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")

	timeout, err := time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	c.Server.ShutdownTimeout = timeout
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv != "" {
		var origins []string
		for _, origin := range strings.Split(originsEnv, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		c.CORS.AllowedOrigins = origins
	} else {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	switch c.Store.Backend {
	case BackendMongo:
		if c.Mongo.URI == "" {
			errors = append(errors, "MONGODB_URI is required when STORE_BACKEND=mongo")
		}
		if c.Mongo.Database == "" {
			errors = append(errors, "MONGODB_DATABASE must not be empty")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME) when STORE_BACKEND=postgres")
		}
	case BackendMemory:
	default:
		errors = append(errors, "STORE_BACKEND must be one of: mongo, postgres, memory")
	}

	if c.Store.ConnectTimeout <= 0 {
		errors = append(errors, "STORE_CONNECT_TIMEOUT must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
