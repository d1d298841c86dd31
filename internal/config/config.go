package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	AdminToken  string
	GinMode     string
	CORSOrigins []string

	// AllowFallbackRegistration keeps the registration form "working" without
	// a database by returning synthetic success responses. Off unless
	// explicitly requested; a missing DATABASE_URL is otherwise fatal.
	AllowFallbackRegistration bool
}

func Load() *Config {
	// .env is optional; deployments inject real env vars directly
	_ = godotenv.Load()

	return &Config{
		Port:                      getEnv("PORT", "8080"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		AdminToken:                getEnv("ADMIN_TOKEN", ""),
		GinMode:                   getEnv("GIN_MODE", "debug"),
		CORSOrigins:               splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AllowFallbackRegistration: getEnv("ALLOW_FALLBACK_REGISTRATION", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
