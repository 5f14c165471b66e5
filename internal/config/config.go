package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the client reads from its environment.
type Config struct {
	Server ServerConfig
	API    APIConfig
	Store  StoreConfig
	CORS   CORSConfig
}

// ServerConfig holds the local HTTP facade settings.
type ServerConfig struct {
	Port string
	Host string
	Env  string
}

// APIConfig points at the remote marketplace API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StoreConfig locates the durable client-local storage.
type StoreConfig struct {
	Path string
}

// CORSConfig lists the browser origins allowed to call the facade.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from .env files and the process environment.
func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "https://jamaltech.alwaysdata.net/api"),
			Timeout: time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Store: StoreConfig{
			Path: getEnv("LOCAL_STORE_PATH", "boomplan.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

// IsDevelopment reports whether the client runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
