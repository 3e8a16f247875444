package config

import (
	"os"
	"time"
)

// Config holds everything the server needs to start, read from the
// environment with sensible development defaults.
type Config struct {
	HTTPAddr        string
	APIToken        string
	DatabaseURL     string
	DataDir         string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. If DatabaseURL is empty the
// server falls back to the file-backed store under DataDir.
func Load() *Config {
	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		APIToken:        getEnv("API_TOKEN", "dev-token"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
