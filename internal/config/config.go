// Package config loads and validates environment variables at startup.
// Required values fail fast; optional integrations are disabled when unset.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "8080"
	defaultGeminiModel     = "gemini-2.5-flash"
	defaultClerkAPIURL     = "https://api.clerk.com/v1"
	defaultRefreshSchedule = "0 0 * * 0" // every Sunday at midnight
)

// R2Config holds Cloudflare R2 credentials for the raw response archive.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// ClerkConfig holds what the service needs to trust Clerk session tokens and
// look up user profiles.
type ClerkConfig struct {
	SecretKey         string
	JWTKey            string // PEM encoded instance public key
	AuthorizedParties []string
	APIURL            string
}

// Config holds all runtime configuration.
type Config struct {
	Port             string
	DBURL            string
	GoogleAPIKey     string
	GeminiModel      string
	Clerk            ClerkConfig
	RefreshSchedule  string
	AIRetryAttempts  int
	AIRetryBaseDelay time.Duration
	RabbitMQURL      string // empty disables event publishing
	RedisURL         string // empty disables the refresh lock
	R2               *R2Config
	LogMode          string
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("empty DB_URL in environment")
	}

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("empty GOOGLE_API_KEY in environment")
	}

	attempts := 1
	if s := os.Getenv("AI_RETRY_ATTEMPTS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("AI_RETRY_ATTEMPTS must be a positive integer, got %q", s)
		}
		attempts = v
	}

	baseDelay := 500 * time.Millisecond
	if s := os.Getenv("AI_RETRY_BASE_DELAY"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("parse AI_RETRY_BASE_DELAY %q: invalid duration", s)
		}
		baseDelay = d
	}

	r2, err := loadR2()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         getEnv("PORT", defaultPort),
		DBURL:        dbURL,
		GoogleAPIKey: apiKey,
		GeminiModel:  getEnv("GEMINI_MODEL", defaultGeminiModel),
		Clerk: ClerkConfig{
			SecretKey:         os.Getenv("CLERK_SECRET_KEY"),
			JWTKey:            strings.ReplaceAll(os.Getenv("CLERK_JWT_KEY"), `\n`, "\n"),
			AuthorizedParties: splitList(os.Getenv("CLERK_AUTHORIZED_PARTIES")),
			APIURL:            strings.TrimRight(getEnv("CLERK_API_URL", defaultClerkAPIURL), "/"),
		},
		RefreshSchedule:  getEnv("REFRESH_SCHEDULE", defaultRefreshSchedule),
		AIRetryAttempts:  attempts,
		AIRetryBaseDelay: baseDelay,
		RabbitMQURL:      os.Getenv("RABBITMQ_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		R2:               r2,
		LogMode:          getEnv("LOG_MODE", "dev"),
	}, nil
}

// ValidateServe checks the settings only the HTTP server needs.
func (c *Config) ValidateServe() error {
	if c.Clerk.JWTKey == "" {
		return fmt.Errorf("empty CLERK_JWT_KEY in environment")
	}
	if c.Clerk.SecretKey == "" {
		return fmt.Errorf("empty CLERK_SECRET_KEY in environment")
	}
	return nil
}

// loadR2 returns nil when no R2 variable is set and an error when only some are.
func loadR2() (*R2Config, error) {
	r2 := R2Config{
		AccountID: os.Getenv("R2_ACCCOUNT_ID"),
		Bucket:    os.Getenv("R2_BUCKET"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
	}
	set := 0
	for _, v := range []string{r2.AccountID, r2.Bucket, r2.AccessKey, r2.SecretKey} {
		if v != "" {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 4:
		return &r2, nil
	default:
		return nil, fmt.Errorf("R2_ACCCOUNT_ID, R2_BUCKET, R2_ACCESS_KEY and R2_SECRET_KEY must be set together")
	}
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
