package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported lead store backends.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	LeadsBackend string
	LeadsTable   string

	// Supabase (PostgREST) hosted store
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseTimeout time.Duration

	DatabaseURL string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	LeadCacheTTL  time.Duration

	AdminJWTSecret     string
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int

	// New-lead alert email
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	LeadAlertEmail    string
}

// ConfigError reports required settings that are absent. It is fatal at startup.
type ConfigError struct {
	Missing []string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: missing required environment variables: %s", strings.Join(e.Missing, ", "))
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		LeadsBackend: strings.ToLower(strings.TrimSpace(getEnv("LEADS_BACKEND", BackendSupabase))),
		LeadsTable:   getEnv("LEADS_TABLE", "leads"),

		SupabaseURL:     strings.TrimSpace(getEnv("SUPABASE_URL", "")),
		SupabaseAnonKey: strings.TrimSpace(getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseTimeout: getEnvAsDuration("SUPABASE_TIMEOUT", 30*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		LeadCacheTTL:  getEnvAsDuration("LEAD_CACHE_TTL", 30*time.Second),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", ""))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Lead Manager"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		LeadAlertEmail:    getEnv("LEAD_ALERT_EMAIL", ""),
	}
}

// Validate checks that the selected backend has everything it needs.
func (c *Config) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	switch c.LeadsBackend {
	case BackendSupabase:
		require("SUPABASE_URL", c.SupabaseURL)
		require("SUPABASE_ANON_KEY", c.SupabaseAnonKey)
	case BackendPostgres:
		require("DATABASE_URL", c.DatabaseURL)
	case BackendDynamoDB:
		require("AWS_REGION", c.AWSRegion)
	case BackendMemory:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown LEADS_BACKEND %q", c.LeadsBackend)}
	}
	require("LEADS_TABLE", c.LeadsTable)

	switch c.EmailProvider {
	case "":
	case "sendgrid":
		require("SENDGRID_API_KEY", c.SendGridAPIKey)
		require("SENDGRID_FROM_EMAIL", c.SendGridFromEmail)
	case "ses":
		require("SES_FROM_EMAIL", c.SESFromEmail)
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown EMAIL_PROVIDER %q", c.EmailProvider)}
	}

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
