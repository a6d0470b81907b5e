package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Placeholder addresses used when no recipient/sender is configured.
// The service still runs with these, but the loader warns loudly so
// operators notice before mail disappears into the void.
const (
	DefaultFromEmail = "Portfolio Contact <onboarding@resend.dev>"
	DefaultToEmail   = "your-email@example.com"
)

type Config struct {
	Port        string
	FrontendURL string
	// Resend (transactional email) configuration
	ResendAPIKey    string
	ResendFromEmail string // verified sender identity
	ContactEmail    string // where contact submissions land
	// Redis/Upstash configuration (shared rate-limit counter store)
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate limiting configuration
	RateLimitWindowSeconds int
	RateLimitMaxRequests   int
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Resend configuration
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		ResendFromEmail: getEnv("RESEND_FROM_EMAIL", ""),
		ContactEmail:    getEnv("CONTACT_EMAIL", ""),
		// Redis/Upstash configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate limiting: 3 requests per 15 minute window per IP
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 900),
		RateLimitMaxRequests:   getEnvInt("RATE_LIMIT_MAX_REQUESTS", 3),
	}

	if cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY is missing. Contact form will return 503 until configured.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use the in-memory fallback (per-instance only).")
	}
	if cfg.ContactEmail == "" && cfg.ResendFromEmail == "" {
		log.Printf("WARNING: neither CONTACT_EMAIL nor RESEND_FROM_EMAIL is set. Submissions will be sent to the placeholder %q.", DefaultToEmail)
	}

	return cfg, nil
}

// FromEmail returns the sender identity for outbound mail.
func (c *Config) FromEmail() string {
	if c.ResendFromEmail != "" {
		return c.ResendFromEmail
	}
	return DefaultFromEmail
}

// ToEmail returns the contact recipient, falling back to the sender
// address and finally a placeholder.
func (c *Config) ToEmail() string {
	if c.ContactEmail != "" {
		return c.ContactEmail
	}
	if c.ResendFromEmail != "" {
		return c.ResendFromEmail
	}
	return DefaultToEmail
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
