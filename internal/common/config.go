package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Store   StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	MaxUploadsBytes int64
	RequestTimeout  time.Duration
}

// ExtractConfig holds extraction-related configuration
type ExtractConfig struct {
	// Template selects the deployed rule-set profile ("template-a" or
	// "template-b"). The profiles are mutually exclusive and fixed for the
	// lifetime of the process.
	Template string
}

// StoreConfig holds batch-store configuration
type StoreConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			MaxUploadsBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 32<<20),
			RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		},
		Extract: ExtractConfig{
			Template: getEnv("INVOICE_TEMPLATE", "template-a"),
		},
		Store: StoreConfig{
			Path: getEnv("BATCH_DB_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Extract.Template != "template-a" && c.Extract.Template != "template-b" {
		return NewAppError("CONFIG_ERROR", "INVOICE_TEMPLATE must be template-a or template-b", ErrInvalidInput)
	}
	return nil
}
