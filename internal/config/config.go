package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var (
	ErrMissingAPIKey       = errors.New("GOOGLE_BOOKS_API_KEY is required")
	ErrMissingDB           = errors.New("DATABASE_URL is required when SESSION_STORE=postgres")
	ErrInvalidSessionStore = errors.New("SESSION_STORE must be memory or postgres")
)

const DefaultPath = ".env"

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

type Config struct {
	GoogleBooks GoogleBooksConfig
	HTTP        HTTPConfig
	Session     SessionConfig
	Database    DatabaseConfig
	Log         LogConfig
}

type GoogleBooksConfig struct {
	APIKey  string        `env:"GOOGLE_BOOKS_API_KEY"`
	BaseURL string        `env:"GOOGLE_BOOKS_BASE_URL" env-default:"https://www.googleapis.com/books/v1"`
	Timeout time.Duration `env:"GOOGLE_BOOKS_TIMEOUT"  env-default:"10s"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type SessionConfig struct {
	Store           string        `env:"SESSION_STORE"            env-default:"memory"`
	TTL             time.Duration `env:"SESSION_TTL"              env-default:"24h"`
	CookieName      string        `env:"SESSION_COOKIE_NAME"      env-default:"bookfinder_session"`
	CookieSecure    bool          `env:"SESSION_COOKIE_SECURE"    env-default:"false"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" env-default:"10m"`
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxConns        int32         `env:"DATABASE_MAX_CONNS"         env-default:"10"`
	MaxConnLifetime time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" env-default:"1h"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// Load читает настройки из файла (CONFIG_PATH, по умолчанию ./.env) и окружения.
// Переменные, уже заданные в окружении, файл не перекрывает.
// Файла может не быть: тогда только окружение и дефолты.
// Явно указанный CONFIG_PATH без файла - ошибка.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := loadFile(path); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFile переносит в окружение только те ключи файла, которых там еще нет
func loadFile(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return err
	}
	for k, v := range values {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.GoogleBooks.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStorePostgres:
		if c.Database.URL == "" {
			return ErrMissingDB
		}
	default:
		return ErrInvalidSessionStore
	}
	return nil
}
