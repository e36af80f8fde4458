package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string

	LogLevel string
	LogFile  string

	PDFPageSize string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

const devJWTSecret = "dev-only-insecure-secret"

// ErrMissingJWTSecret is returned when production runs without a signing key.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required in production")

// Load reads configuration from an optional .env file and the environment.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	readEnvFiles(v, ".env", "cmd/.env")
	v.AutomaticEnv()

	cfg := Config{
		Port:               v.GetString("PORT"),
		Env:                normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:        strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		AccessTokenTTL:     v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:    v.GetDuration("REFRESH_TOKEN_TTL"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      v.GetString("UI_REDIRECT_URL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFile:            v.GetString("LOG_FILE"),
		PDFPageSize:        v.GetString("PDF_PAGE_SIZE"),
		AuthRateLimitRPS:   v.GetFloat64("RATE_LIMIT_AUTH_RPS"),
		AuthRateLimitBurst: v.GetInt("RATE_LIMIT_AUTH_BURST"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return Config{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ACCESS_TOKEN_TTL", 15*time.Minute)
	v.SetDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PDF_PAGE_SIZE", "A4")
	v.SetDefault("RATE_LIMIT_AUTH_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_AUTH_BURST", 5)
}

// readEnvFiles merges KEY=VALUE files for local development. Missing or
// unreadable files are ignored; real environment variables still win.
func readEnvFiles(v *viper.Viper, paths ...string) {
	for _, path := range paths {
		fileCfg := viper.New()
		fileCfg.SetConfigFile(path)
		fileCfg.SetConfigType("env")
		if err := fileCfg.ReadInConfig(); err != nil {
			continue
		}
		for _, key := range fileCfg.AllKeys() {
			v.SetDefault(strings.ToUpper(key), fileCfg.Get(key))
		}
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
