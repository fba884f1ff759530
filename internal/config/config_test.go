package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "postgres://localhost/insights")
	t.Setenv("GOOGLE_API_KEY", "key")
	for _, k := range []string{
		"GEMINI_API_KEY", "GEMINI_MODEL", "PORT", "REFRESH_SCHEDULE",
		"AI_RETRY_ATTEMPTS", "AI_RETRY_BASE_DELAY", "CLERK_AUTHORIZED_PARTIES",
		"R2_ACCCOUNT_ID", "R2_BUCKET", "R2_ACCESS_KEY", "R2_SECRET_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.RefreshSchedule != "0 0 * * 0" {
		t.Errorf("RefreshSchedule = %q", cfg.RefreshSchedule)
	}
	if cfg.AIRetryAttempts != 1 {
		t.Errorf("AIRetryAttempts = %d, want 1", cfg.AIRetryAttempts)
	}
	if cfg.AIRetryBaseDelay != 500*time.Millisecond {
		t.Errorf("AIRetryBaseDelay = %v", cfg.AIRetryBaseDelay)
	}
	if cfg.R2 != nil {
		t.Errorf("R2 = %+v, want nil", cfg.R2)
	}
}

func TestLoad_MissingDBURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DB_URL")
	}
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	setRequired(t)
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GoogleAPIKey != "gemini" {
		t.Errorf("GoogleAPIKey = %q, want gemini", cfg.GoogleAPIKey)
	}
}

func TestLoad_InvalidRetryAttempts(t *testing.T) {
	for _, v := range []string{"0", "-1", "abc"} {
		setRequired(t)
		t.Setenv("AI_RETRY_ATTEMPTS", v)
		if _, err := Load(); err == nil {
			t.Errorf("AI_RETRY_ATTEMPTS=%q: expected error", v)
		}
	}
}

func TestLoad_PartialR2(t *testing.T) {
	setRequired(t)
	t.Setenv("R2_BUCKET", "bucket")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when only some R2 variables are set")
	}
}

func TestLoad_FullR2AndParties(t *testing.T) {
	setRequired(t)
	t.Setenv("R2_ACCCOUNT_ID", "acct")
	t.Setenv("R2_BUCKET", "bucket")
	t.Setenv("R2_ACCESS_KEY", "ak")
	t.Setenv("R2_SECRET_KEY", "sk")
	t.Setenv("CLERK_AUTHORIZED_PARTIES", "https://a.example, ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.R2 == nil || cfg.R2.Bucket != "bucket" {
		t.Fatalf("R2 = %+v", cfg.R2)
	}
	if len(cfg.Clerk.AuthorizedParties) != 2 {
		t.Errorf("AuthorizedParties = %v, want 2 entries", cfg.Clerk.AuthorizedParties)
	}
}

func TestValidateServe(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateServe(); err == nil {
		t.Fatal("expected error without clerk keys")
	}
	cfg.Clerk = ClerkConfig{JWTKey: "pem", SecretKey: "sk"}
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
