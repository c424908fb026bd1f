package config

import (
	"testing"

	"github.com/sheikh-saqib/fitcoin-ledger/internal/storage"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_PORT", "LOG_LEVEL", "TZ_NAME", "STORE_BACKEND", "DATABASE_URL", "SQLITE_PATH",
		"FIRESTORE_PROJECT_ID", "FIRESTORE_COLLECTION", "CATALOG_FILE", "KAFKA_BROKERS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "8080")
	t.Setenv("TZ_NAME", "Asia/Kolkata")
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if got := cfg.StorageOptions().Backend; got != storage.BackendMemory {
		t.Fatalf("backend = %q, want memory", got)
	}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Fatalf("location = %v", cfg.Location())
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("brokers = %v, want none", cfg.KafkaBrokers)
	}
}

func TestLoadKafkaBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown backend":      {"STORE_BACKEND": "redis"},
		"postgres without dsn": {"STORE_BACKEND": "postgres"},
		"firestore no project": {"STORE_BACKEND": "firestore"},
		"bad port":             {"STORE_BACKEND": "memory", "APP_PORT": "http"},
		"bad zone":             {"STORE_BACKEND": "memory", "TZ_NAME": "Mars/Olympus"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("APP_PORT", "8080")
			t.Setenv("TZ_NAME", "UTC")
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
