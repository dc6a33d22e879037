package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabaseURL       string
	APIToken          string
	AIProvider        string
	AIKey             string
	AIBaseURL         string
	AIModel           string
	AITimeoutSeconds  int
	GraphTenantID     string
	GraphClientID     string
	GraphClientSecret string
	Env               string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              GetEnv("PORT", "8080"),
		DatabaseURL:       GetEnv("DATABASE_URL", ""),
		APIToken:          GetEnv("API_TOKEN", ""),
		AIProvider:        GetEnv("AI_PROVIDER", "openai"),
		AIKey:             GetEnv("AI_API_KEY", ""),
		AIBaseURL:         GetEnv("AI_BASE_URL", ""),
		AIModel:           GetEnv("AI_MODEL", ""),
		AITimeoutSeconds:  GetEnvInt("AI_TIMEOUT_SECONDS", 30),
		GraphTenantID:     GetEnv("GRAPH_TENANT_ID", ""),
		GraphClientID:     GetEnv("GRAPH_CLIENT_ID", ""),
		GraphClientSecret: GetEnv("GRAPH_CLIENT_SECRET", ""),
		Env:               GetEnv("ENV", "development"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.AIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}
	if c.Env == "production" && c.APIToken == "" {
		return fmt.Errorf("API_TOKEN is required in production")
	}
	return nil
}
