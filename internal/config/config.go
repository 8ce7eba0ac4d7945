// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
	Admin    AdminConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds the store location.
// URL is parsed by dburl: postgres://, mysql://, sqlite:path.
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds password and token settings.
type AuthConfig struct {
	JWTSecret      string
	AccessTokenTTL int // seconds
	BcryptCost     int
}

// TokenTTL returns AccessTokenTTL as a duration.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTL) * time.Second
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool
	Migrations bool
	LogLevel   string
}

// AdminConfig describes an optional admin account created at startup.
type AdminConfig struct {
	Email    string
	Username string
	Password string
}

// Enabled reports whether enough is set to seed the admin account.
func (a AdminConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

const devJWTSecret = "devjwtsecret"

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "sqlite:press.db"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", devJWTSecret),
			AccessTokenTTL: getEnvInt("ACCESS_TOKEN_TTL", 900),
			BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		},
		App: AppConfig{
			Dev:        getEnvBool("DEV", true),
			Migrations: getEnvBool("MIGRATIONS", true),
			LogLevel:   getEnv("LOG_LEVEL", "info"),
		},
		Admin: AdminConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
	}
}

// UsesDevSecret reports whether tokens are signed with the built-in development secret.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.JWTSecret == devJWTSecret
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
