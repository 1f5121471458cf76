package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logger struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logger"`
	Catalog struct {
		// Path to a YAML catalog file; empty means the built-in
		// reference catalog.
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	Session struct {
		DefaultCurrency  string        `yaml:"default_currency"`
		DefaultPair      string        `yaml:"default_pair"`
		NotesBackend     string        `yaml:"notes_backend"` // memory, redis, or layered
		NoteTTL          time.Duration `yaml:"note_ttl"`
		NoteBurst        float64       `yaml:"note_burst"`
		NoteRefillPerSec float64       `yaml:"note_refill_per_sec"`
	} `yaml:"session"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
	} `yaml:"redis"`
	Kafka struct {
		// Empty brokers disables the activity topic entirely.
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		BatchSize    int           `yaml:"batch_size"`
		BatchTimeout time.Duration `yaml:"batch_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
	} `yaml:"kafka"`
	WebSocket struct {
		Enabled    bool `yaml:"enabled"`
		BufferSize int  `yaml:"buffer_size"`
	} `yaml:"websocket"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DEFAULT_CURRENCY"); v != "" {
		c.Session.DefaultCurrency = v
	}
	if v := os.Getenv("DEFAULT_PAIR"); v != "" {
		c.Session.DefaultPair = v
	}
	if v := os.Getenv("NOTES_BACKEND"); v != "" {
		c.Session.NotesBackend = v
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}

	return c, nil
}

// Validate checks if the configuration is valid and fills defaults.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Session.DefaultCurrency) != 3 {
		return fmt.Errorf("session.default_currency must be a 3-letter code, got '%s'", c.Session.DefaultCurrency)
	}
	if len(c.Session.DefaultPair) != 6 {
		return fmt.Errorf("session.default_pair must be a 6-letter code, got '%s'", c.Session.DefaultPair)
	}
	if c.Session.NotesBackend == "" {
		c.Session.NotesBackend = "memory"
	}
	switch c.Session.NotesBackend {
	case "memory":
	case "redis", "layered":
		if c.Redis.Host == "" {
			return fmt.Errorf("redis.host is required for the %s notes backend", c.Session.NotesBackend)
		}
	default:
		return fmt.Errorf("session.notes_backend must be 'memory', 'redis', or 'layered', got '%s'", c.Session.NotesBackend)
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when brokers are set")
	}
	if c.Session.NoteBurst <= 0 {
		c.Session.NoteBurst = 20
	}
	if c.Session.NoteRefillPerSec <= 0 {
		c.Session.NoteRefillPerSec = 5
	}
	return nil
}
