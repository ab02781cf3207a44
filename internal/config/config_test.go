package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_ACCESS_SECRET", "at-secret")
	t.Setenv("JWT_REFRESH_SECRET", "rt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL want 30m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("RefreshTokenTTL want 168h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("HTTPAddress want :8080, got %v", cfg.HTTPAddress)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("PASSWORD_PEPPER", "pepper")
	t.Setenv("HTTP_ADDRESS", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AccessTokenTTL != 2*time.Minute || cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("TTL overrides not applied: %v / %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.PasswordPepper != "pepper" || cfg.HTTPAddress != ":9090" {
		t.Fatal("overrides not applied")
	}
}

func TestLoad_AllowedOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 ||
		cfg.AllowedOrigins[0] != "https://a.example.com" ||
		cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins not split on commas: %v", cfg.AllowedOrigins)
	}
}

func TestLoad_NoOrigins(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("expected empty origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_ACCESS_SECRET", "at-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_REFRESH_SECRET")
	}
}

func TestLoad_EqualSecretsRejected(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_ACCESS_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for equal secrets")
	}
}
