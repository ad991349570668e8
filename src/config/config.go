package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIURL        string        `env:"GUESTLIST_API_URL" envDefault:"http://localhost:4000"`
	Addr          string        `env:"GUESTLIST_ADDR" envDefault:":4000"`
	WebAddr       string        `env:"GUESTLIST_WEB_ADDR" envDefault:":3000"`
	DatabaseURL   string        `env:"GUESTLIST_DATABASE_URL"`
	SQLitePath    string        `env:"GUESTLIST_SQLITE_PATH" envDefault:"guests.db"`
	RedisAddr     string        `env:"GUESTLIST_REDIS_ADDR"`
	OpenSearchURL string        `env:"GUESTLIST_OPENSEARCH_URL"`
	ExportBucket  string        `env:"GUESTLIST_EXPORT_BUCKET"`
	HTTPTimeout   time.Duration `env:"GUESTLIST_HTTP_TIMEOUT" envDefault:"10s"`
	PersistRemove bool          `env:"GUESTLIST_PERSIST_REMOVE" envDefault:"false"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("parse env: GUESTLIST_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	return cfg, nil
}

// UsesPostgres reports whether the API should store guests in Postgres rather than SQLite.
func (cfg Config) UsesPostgres() bool {
	return cfg.DatabaseURL != ""
}
