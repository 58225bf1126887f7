package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the tenant auth service
type Config struct {
	// Server
	Port     string `yaml:"port" env:"PORT" default:"9500"`
	Host     string `yaml:"host" env:"HOST" default:"0.0.0.0"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseURL      string `yaml:"database_url" env:"DATABASE_URL" required:"true"`
	DatabaseHost     string `yaml:"database_host" env:"DB_HOST" default:"auth-postgres"`
	DatabasePort     string `yaml:"database_port" env:"DB_PORT" default:"5432"`
	DatabaseName     string `yaml:"database_name" env:"DB_NAME" default:"auth_db"`
	DatabaseUser     string `yaml:"database_user" env:"DB_USER" default:"auth_user"`
	DatabasePassword string `yaml:"database_password" env:"DB_PASSWORD" required:"true"`
	DatabaseSSLMode  string `yaml:"database_ssl_mode" env:"DB_SSL_MODE" default:"require"`

	// Kratos
	KratosPublicURL string `yaml:"kratos_public_url" env:"KRATOS_PUBLIC_URL" required:"true"`
	KratosAdminURL  string `yaml:"kratos_admin_url" env:"KRATOS_ADMIN_URL" required:"true"`

	// Redis session slot
	RedisAddr      string `yaml:"redis_addr" env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB        int    `yaml:"redis_db" env:"REDIS_DB" default:"0"`
	SessionSlotKey string `yaml:"session_slot_key" env:"SESSION_SLOT_KEY" default:"auth:session:slot"`

	// Auth policy
	AdminEmailDomain string `yaml:"admin_email_domain" env:"ADMIN_EMAIL_DOMAIN" required:"true"`
	BcryptCost       int    `yaml:"bcrypt_cost" env:"BCRYPT_COST" default:"12"`
}

// Load reads configuration from environment variables, with an optional
// YAML file overlay pointed at by CONFIG_FILE. Environment values win
// over file values.
func Load() (*Config, error) {
	config := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(config, path); err != nil {
			return nil, err
		}
	}

	// Server configuration
	config.Port = envOrFallback("PORT", config.Port, "9500")
	config.Host = envOrFallback("HOST", config.Host, "0.0.0.0")
	config.LogLevel = envOrFallback("LOG_LEVEL", config.LogLevel, "info")

	// Database configuration
	config.DatabaseURL = envOrFallback("DATABASE_URL", config.DatabaseURL, "")
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	config.DatabaseHost = envOrFallback("DB_HOST", config.DatabaseHost, "auth-postgres")
	config.DatabasePort = envOrFallback("DB_PORT", config.DatabasePort, "5432")
	config.DatabaseName = envOrFallback("DB_NAME", config.DatabaseName, "auth_db")
	config.DatabaseUser = envOrFallback("DB_USER", config.DatabaseUser, "auth_user")
	config.DatabasePassword = envOrFallback("DB_PASSWORD", config.DatabasePassword, "")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = envOrFallback("DB_SSL_MODE", config.DatabaseSSLMode, "require")

	// Kratos configuration
	config.KratosPublicURL = envOrFallback("KRATOS_PUBLIC_URL", config.KratosPublicURL, "")
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	config.KratosAdminURL = envOrFallback("KRATOS_ADMIN_URL", config.KratosAdminURL, "")
	if config.KratosAdminURL == "" {
		return nil, fmt.Errorf("KRATOS_ADMIN_URL is required")
	}

	// Redis configuration
	config.RedisAddr = envOrFallback("REDIS_ADDR", config.RedisAddr, "localhost:6379")
	config.RedisPassword = envOrFallback("REDIS_PASSWORD", config.RedisPassword, "")
	redisDB, err := intEnvOrFallback("REDIS_DB", config.RedisDB, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	config.RedisDB = redisDB
	config.SessionSlotKey = envOrFallback("SESSION_SLOT_KEY", config.SessionSlotKey, "auth:session:slot")

	// Auth policy
	config.AdminEmailDomain = envOrFallback("ADMIN_EMAIL_DOMAIN", config.AdminEmailDomain, "")
	if config.AdminEmailDomain == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL_DOMAIN is required")
	}

	bcryptCost, err := intEnvOrFallback("BCRYPT_COST", config.BcryptCost, 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	config.BcryptCost = bcryptCost

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// bcrypt caps cost at 31; anything above 15 is already impractical
	// for a login path but still valid.
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31, got: %d", c.BcryptCost)
	}

	domain := strings.TrimPrefix(c.AdminEmailDomain, "@")
	if domain == "" || strings.ContainsAny(domain, "@ ") {
		return fmt.Errorf("invalid admin email domain: %s", c.AdminEmailDomain)
	}

	if c.SessionSlotKey == "" {
		return fmt.Errorf("session slot key must not be empty")
	}

	return nil
}

// NormalizedAdminDomain returns the admin email domain lowercased and
// without a leading "@".
func (c *Config) NormalizedAdminDomain() string {
	return strings.ToLower(strings.TrimPrefix(c.AdminEmailDomain, "@"))
}

// loadFile overlays values from a YAML config file
func loadFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Helper functions

func envOrFallback(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func intEnvOrFallback(key string, fileValue, defaultValue int) (int, error) {
	if value := os.Getenv(key); value != "" {
		return strconv.Atoi(value)
	}
	if fileValue != 0 {
		return fileValue, nil
	}
	return defaultValue, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
