// Package config loads the ledger server's settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage"
)

var validate = validator.New()

type Config struct {
	Port     string `env:"APP_PORT" envDefault:"8080" validate:"required,numeric"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	TimeZone string `env:"TZ_NAME" envDefault:"Asia/Kolkata" validate:"required"`

	StoreBackend        string `env:"STORE_BACKEND" envDefault:"memory" validate:"oneof=memory postgres sqlite firestore"`
	DatabaseURL         string `env:"DATABASE_URL" validate:"required_if=StoreBackend postgres"`
	SQLitePath          string `env:"SQLITE_PATH" envDefault:"fitcoin.db" validate:"required_if=StoreBackend sqlite"`
	FirestoreProject    string `env:"FIRESTORE_PROJECT_ID" validate:"required_if=StoreBackend firestore"`
	FirestoreCollection string `env:"FIRESTORE_COLLECTION" envDefault:"fitcoin_ledgers"`

	CatalogFile  string   `env:"CATALOG_FILE"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME: %w", err)
	}
	return &cfg, nil
}

// Location returns the time zone that decides where calendar days begin.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StorageOptions maps the store settings onto storage.Options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:             storage.Backend(c.StoreBackend),
		DatabaseURL:         c.DatabaseURL,
		SQLitePath:          c.SQLitePath,
		FirestoreProject:    c.FirestoreProject,
		FirestoreCollection: c.FirestoreCollection,
	}
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
