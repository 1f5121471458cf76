package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
  write_timeout: 5s
  shutdown_timeout: 5s
session:
  default_currency: EUR
  default_pair: EURUSD
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("unexpected port %d", cfg.Server.Port)
	}
	if cfg.Session.NotesBackend != "memory" {
		t.Fatalf("expected memory default, got %q", cfg.Session.NotesBackend)
	}
	if cfg.Session.NoteBurst != 20 || cfg.Session.NoteRefillPerSec != 5 {
		t.Fatalf("expected throttle defaults, got %v/%v", cfg.Session.NoteBurst, cfg.Session.NoteRefillPerSec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateRejectsBadCodes(t *testing.T) {
	bad := `
environment: test
session:
  default_currency: EURO
  default_pair: EURUSD
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatalf("expected rejection of 4-letter currency")
	}

	bad = `
environment: test
session:
  default_currency: EUR
  default_pair: EUR
`
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Fatalf("expected rejection of short pair")
	}
}

func TestValidateRedisBackendNeedsHost(t *testing.T) {
	doc := `
environment: test
session:
  default_currency: EUR
  default_pair: EURUSD
  notes_backend: redis
`
	if _, err := Load(writeConfig(t, doc)); err == nil {
		t.Fatalf("expected rejection of redis backend without host")
	}
}

func TestValidateKafkaNeedsTopic(t *testing.T) {
	doc := `
environment: test
session:
  default_currency: EUR
  default_pair: EURUSD
kafka:
  brokers: ["localhost:9092"]
  topic: ""
`
	if _, err := Load(writeConfig(t, doc)); err == nil {
		t.Fatalf("expected rejection of brokers without topic")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("DEFAULT_CURRENCY", "GBP")
	t.Setenv("DEFAULT_PAIR", "GBPUSD")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")
	t.Setenv("KAFKA_TOPIC", "activity")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.DefaultCurrency != "GBP" || cfg.Session.DefaultPair != "GBPUSD" {
		t.Fatalf("env override missed: %s/%s", cfg.Session.DefaultCurrency, cfg.Session.DefaultPair)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Topic != "activity" {
		t.Fatalf("kafka env override missed: %v %s", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
}
