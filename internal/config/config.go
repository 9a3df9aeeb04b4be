package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	JWTSecret      string
	AllowedOrigins []string
}

// DSN builds the postgres connection string the gorm driver expects.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// Load reads configuration from the environment, picking up a .env file when
// one is present. Missing values fall back to local-dev defaults.
func Load() (*Config, error) {
	godotenv.Load()

	serverPort, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	dbPort, err := envInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: &ServerConfig{
			Host: envString("HOST", "0.0.0.0"),
			Port: serverPort,
		},
		Database: &DatabaseConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     envString("DB_USER", "postgres"),
			Password: envString("DB_PASSWORD", "postgres"),
			Name:     envString("DB_NAME", "univoz"),
			SSLMode:  envString("DB_SSLMODE", "disable"),
		},
		JWTSecret:      envString("JWT_SECRET", ""),
		AllowedOrigins: []string{"*"},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
