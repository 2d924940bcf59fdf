package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Email dispatch configuration.
	// RESEND_API_KEY selects the primary HTTP API provider; without it the
	// service falls back to SMTP, and without SMTP credentials the contact
	// form is unavailable (warning at startup, not a crash).
	ResendAPIKey   string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	ContactEmailTo string
	EmailFrom      string
	// Overall wall-clock budget for a single send, in seconds.
	SendTimeoutSeconds int
	// Upload storage
	UploadDir string
	// Redis/Upstash Configuration (rate limiting)
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	RateLimitUploadThreshold  int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when no .env file exists.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Email configuration
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		ContactEmailTo:     getEnv("CONTACT_EMAIL_TO", "waiphyoaung.dev@gmail.com"),
		EmailFrom:          getEnv("EMAIL_FROM", "Portfolio Contact <onboarding@resend.dev>"),
		SendTimeoutSeconds: getEnvInt("EMAIL_SEND_TIMEOUT_SECONDS", 45),
		// Upload storage
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),   // 1 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5), // 5 sends per window
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold:  getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
	}

	// Basic validation to avoid confusing failures later.
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}

	if cfg.ResendAPIKey == "" && (cfg.SMTPUsername == "" || cfg.SMTPPassword == "") {
		log.Println("WARNING: no email provider configured (RESEND_API_KEY or SMTP credentials). Contact form will be unavailable.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
