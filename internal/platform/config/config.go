// Package config loads layered configuration: struct defaults, then an
// optional YAML file, then CUSTODIAN_ environment variables.
//
// Environment keys use a double underscore between sections so single
// underscores survive inside key names:
//
//	CUSTODIAN_COMPLIANCE__GDPR_ENABLED=false  ->  compliance.gdpr_enabled
//	CUSTODIAN_AUDIT__KAFKA__BROKERS=a:9092,b:9092
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CUSTODIAN_"

// DevJWTSigningKey is the development default; Load rejects it in production.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

type Config struct {
	Environment string           `koanf:"environment" validate:"oneof=development test production"`
	Server      ServerConfig     `koanf:"server"`
	Log         LogConfig        `koanf:"log"`
	Compliance  ComplianceConfig `koanf:"compliance"`
	State       StateConfig      `koanf:"state"`
	Audit       AuditConfig      `koanf:"audit"`
	Redis       RedisConfig      `koanf:"redis"`
	Postgres    PostgresConfig   `koanf:"postgres"`
	Auth        AuthConfig       `koanf:"auth"`
	Notifier    NotifierConfig   `koanf:"notifier"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// ComplianceConfig gates the rights processors. A disabled regime makes its
// operations fail fast.
type ComplianceConfig struct {
	GDPREnabled  bool          `koanf:"gdpr_enabled"`
	HIPAAEnabled bool          `koanf:"hipaa_enabled"`
	ContactEmail string        `koanf:"contact_email" validate:"required,email"`
	LockTimeout  time.Duration `koanf:"lock_timeout"`
}

type StateConfig struct {
	Backend string `koanf:"backend" validate:"oneof=memory redis postgres"`
}

type AuditConfig struct {
	Backend string      `koanf:"backend" validate:"oneof=memory postgres"`
	Kafka   KafkaConfig `koanf:"kafka"`
}

// KafkaConfig configures the optional audit stream.
type KafkaConfig struct {
	Enabled      bool     `koanf:"enabled"`
	Brokers      []string `koanf:"brokers" validate:"required_if=Enabled true"`
	Topic        string   `koanf:"topic"`
	Partitions   int32    `koanf:"partitions"`
	Replication  int16    `koanf:"replication"`
	PseudonymKey string   `koanf:"pseudonym_key" validate:"required_if=Enabled true"`
}

type RedisConfig struct {
	URL          string        `koanf:"url"`
	PoolSize     int           `koanf:"pool_size"`
	MinIdleConns int           `koanf:"min_idle_conns"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	KeyPrefix    string        `koanf:"key_prefix"`
}

type PostgresConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	Migrate         bool          `koanf:"migrate"`
}

type AuthConfig struct {
	Disabled      bool          `koanf:"disabled"`
	JWTSigningKey string        `koanf:"jwt_signing_key"`
	Issuer        string        `koanf:"issuer"`
	Audience      string        `koanf:"audience"`
	TokenTTL      time.Duration `koanf:"token_ttl"`
}

// NotifierConfig tunes the circuit breaker around third-party notification.
type NotifierConfig struct {
	FailureThreshold int `koanf:"failure_threshold" validate:"gte=1"`
	SuccessThreshold int `koanf:"success_threshold" validate:"gte=1"`
}

// Defaults returns the development configuration.
func Defaults() Config {
	return Config{
		Environment: "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Compliance: ComplianceConfig{
			GDPREnabled:  true,
			HIPAAEnabled: true,
			ContactEmail: "privacy@example.com",
			LockTimeout:  5 * time.Second,
		},
		State: StateConfig{Backend: "memory"},
		Audit: AuditConfig{
			Backend: "memory",
			Kafka: KafkaConfig{
				Topic:       "custodian.audit.v1",
				Partitions:  3,
				Replication: 1,
			},
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			KeyPrefix:    "custodian",
		},
		Postgres: PostgresConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			Migrate:         true,
		},
		Auth: AuthConfig{
			JWTSigningKey: DevJWTSigningKey,
			Issuer:        "custodian",
			Audience:      "custodian-api",
			TokenTTL:      time.Hour,
		},
		Notifier: NotifierConfig{FailureThreshold: 5, SuccessThreshold: 2},
	}
}

// Load builds the configuration. path may be empty; a missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

// Validate checks field constraints and cross-section requirements.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.State.Backend == "redis" && c.Redis.URL == "" {
		return errors.New("invalid config: state.backend=redis requires redis.url")
	}
	if (c.State.Backend == "postgres" || c.Audit.Backend == "postgres") && c.Postgres.DSN == "" {
		return errors.New("invalid config: postgres backend requires postgres.dsn")
	}
	if c.Environment == "production" && !c.Auth.Disabled && c.Auth.JWTSigningKey == DevJWTSigningKey {
		return errors.New("invalid config: auth.jwt_signing_key must be set in production")
	}
	return nil
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
