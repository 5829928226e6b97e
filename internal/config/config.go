package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

// DefaultAuthSalt is the salt used when AUTH_SECRET is unset. Stored hashes depend on it.
const DefaultAuthSalt = "pkbm_default_secure_salt_2025_prod"

const DefaultTenantID = "pkbm-pena-hikmah"

type Config struct {
	Port            int
	DatabaseURL     string
	AuthSecret      string
	JWTSecret       string
	JWTGenerated    bool
	SessionTTL      time.Duration
	AppEnv          string
	LogLevel        string
	LogFormat       string
	AllowQuickLogin bool
	DefaultTenantID string

	Redis RedisConfig
	Login LoginThrottleConfig
	Minio MinioConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LoginThrottleConfig struct {
	MaxAttempts int
	Window      time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

func (c MinioConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// UsingDefaultSalt reports whether password hashes use the built-in salt.
func (c *Config) UsingDefaultSalt() bool {
	return c.AuthSecret == DefaultAuthSalt
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuthSecret:      getEnv("AUTH_SECRET", DefaultAuthSalt),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AppEnv:          getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		DefaultTenantID: getEnv("DEFAULT_TENANT_ID", DefaultTenantID),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "pkbm-assets"),
			PublicURL: os.Getenv("MINIO_PUBLIC_URL"),
		},
	}

	var err error
	if cfg.Port, err = getInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AllowQuickLogin, err = getBool("ALLOW_QUICK_LOGIN", false); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Login.MaxAttempts, err = getInt("LOGIN_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if cfg.Login.Window, err = getDuration("LOGIN_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Minio.UseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32)
		cfg.JWTGenerated = true
	}

	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.IsProduction() && c.UsingDefaultSalt() {
		return errors.New("AUTH_SECRET must be set when APP_ENV=production")
	}
	if c.IsProduction() && c.JWTGenerated {
		return errors.New("JWT_SECRET must be set when APP_ENV=production")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
