package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
}

type AppConfig struct {
	Env            string   `yaml:"env"`
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// EnforceCatalog restricts role/department to the form choices.
	EnforceCatalog bool `yaml:"enforce_catalog"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"ssl_mode"`
	MaxRetries int    `yaml:"max_retries"`
}

type RedisConfig struct {
	Addr       string `yaml:"addr"`
	MaxRetries int    `yaml:"max_retries"`
}

type KafkaConfig struct {
	Broker          string        `yaml:"broker"`
	GroupID         string        `yaml:"group_id"`
	PollInterval    time.Duration `yaml:"-"`
	PollIntervalRaw string        `yaml:"poll_interval"`
}

type AuthConfig struct {
	JWTSecret      string        `yaml:"-"`
	AccessTTL      time.Duration `yaml:"-"`
	AccessTTLRaw   string        `yaml:"access_ttl"`
	RecoveryTTL    time.Duration `yaml:"-"`
	RecoveryTTLRaw string        `yaml:"recovery_ttl"`
}

// Load reads the optional YAML file at path, overlays environment variables
// and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase is Load restricted to the database section, for tools that
// never serve requests.
func LoadDatabase(path string) (DatabaseConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return DatabaseConfig{}, err
	}
	if err := cfg.Database.normalize(); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg.Database, nil
}

func read(path string) (*Config, error) {
	cfg := &Config{App: AppConfig{EnforceCatalog: true}}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("config: parse yaml: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.App.Env, "APP_ENV")
	setString(&c.App.Port, "PORT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.App.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ENFORCE_CATALOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.App.EnforceCatalog = b
		}
	}

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Redis.Addr, "REDIS_ADDR")

	setString(&c.Kafka.Broker, "KAFKA_BROKER")
	setString(&c.Kafka.GroupID, "KAFKA_GROUP_ID")
	setString(&c.Kafka.PollIntervalRaw, "OUTBOX_POLL_INTERVAL")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.AccessTTLRaw, "ACCESS_TOKEN_TTL")
	setString(&c.Auth.RecoveryTTLRaw, "RECOVERY_TOKEN_TTL")
}

func (c *Config) validateAndNormalize() error {
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.App.Port == "" {
		c.App.Port = "3000"
	}
	if len(c.App.AllowedOrigins) == 0 {
		c.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if err := c.Database.normalize(); err != nil {
		return err
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.MaxRetries <= 0 {
		c.Redis.MaxRetries = 5
	}

	if c.Kafka.GroupID == "" {
		host, _ := os.Hostname()
		c.Kafka.GroupID = "nexushr-api-" + host
	}
	interval, err := parseDurationDefault(c.Kafka.PollIntervalRaw, 3*time.Second)
	if err != nil {
		return fmt.Errorf("config: kafka.poll_interval: %w", err)
	}
	c.Kafka.PollInterval = interval

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set")
	}
	access, err := parseDurationDefault(c.Auth.AccessTTLRaw, time.Hour)
	if err != nil {
		return fmt.Errorf("config: auth.access_ttl: %w", err)
	}
	c.Auth.AccessTTL = access
	recovery, err := parseDurationDefault(c.Auth.RecoveryTTLRaw, time.Hour)
	if err != nil {
		return fmt.Errorf("config: auth.recovery_ttl: %w", err)
	}
	c.Auth.RecoveryTTL = recovery

	return nil
}

func (db *DatabaseConfig) normalize() error {
	if db.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if db.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if db.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if db.Port == "" {
		db.Port = "5432"
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.MaxRetries <= 0 {
		db.MaxRetries = 5
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the key/value connection string used by gorm's postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// URL returns the postgres:// form required by golang-migrate.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDurationDefault(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}
