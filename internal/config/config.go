package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MigrationsPath  string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type AdminConfig struct {
	Password   string
	CookieName string
}

type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string
}

type TossConfig struct {
	SecretKey string
	APIURL    string
}

type Config struct {
	App struct {
		Port string
	}
	Postgres PostgresConfig
	Admin    AdminConfig
	Auth     AuthConfig
	Toss     TossConfig
}

// Load reads configuration from the environment. A .env file at path is
// loaded first when present; real environment variables win over it.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getEnv("APP_PORT", "8080")

	cfg.Postgres.Host = getEnv("DB_HOST", "localhost")
	cfg.Postgres.Port = getEnv("DB_PORT", "5432")
	cfg.Postgres.User = getEnv("DB_USER", "postgres")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	cfg.Postgres.DBName = getEnv("DB_NAME", "storefront")
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getEnv("MIGRATIONS_PATH", "migrations")
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	cfg.Admin.Password = os.Getenv("ADMIN_PASS")
	if cfg.Admin.Password == "" {
		return nil, fmt.Errorf("config: ADMIN_PASS is required")
	}
	cfg.Admin.CookieName = getEnv("ADMIN_COOKIE_NAME", "admin_session")

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	cfg.Auth.TokenTTL = 15 * time.Minute
	cfg.Auth.CookieName = getEnv("SESSION_COOKIE_NAME", "session")

	cfg.Toss.SecretKey = os.Getenv("TOSS_SECRET_KEY")
	cfg.Toss.APIURL = getEnv("TOSS_API_URL", "https://api.tosspayments.com")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
