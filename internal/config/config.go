package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and treated as read-only for the process
// lifetime. Both the token issuer and the auth service receive it explicitly
// at construction.
type Config struct {
	DatabaseURL      string
	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	JWTIssuer        string
	JWTAudience      string
	PasswordPepper   string
	HTTPAddress      string
	AllowedOrigins   []string
	AllowCredentials bool
	LogLevel         string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL",
		"JWT_ACCESS_SECRET",
		"JWT_REFRESH_SECRET",
		"ACCESS_TOKEN_TTL",
		"REFRESH_TOKEN_TTL",
		"JWT_ISSUER",
		"JWT_AUDIENCE",
		"PASSWORD_PEPPER",
		"HTTP_ADDRESS",
		"ALLOWED_ORIGINS",
		"ALLOW_CREDENTIALS",
		"LOG_LEVEL",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("JWT_ISSUER", "brightpost-auth")
	v.SetDefault("JWT_AUDIENCE", "brightpost")
	v.SetDefault("HTTP_ADDRESS", ":8080")

	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTAccessSecret:  v.GetString("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		JWTAudience:      v.GetString("JWT_AUDIENCE"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		AllowedOrigins:   splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
	}

	for key, val := range map[string]string{
		"DATABASE_URL":       cfg.DatabaseURL,
		"JWT_ACCESS_SECRET":  cfg.JWTAccessSecret,
		"JWT_REFRESH_SECRET": cfg.JWTRefreshSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("config: %s is required", key)
		}
	}

	// An attacker holding only the access secret must not be able to mint
	// refresh tokens.
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("config: token TTLs must be positive")
	}

	return cfg, nil
}

// splitOrigins parses the conventional comma-separated origin list.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
