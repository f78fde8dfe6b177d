// Package config loads the server settings from the environment.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	LedgerCSV   = "csv"
	LedgerMongo = "mongo"

	VisitorsMemory = "memory"
	VisitorsRedis  = "redis"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	DataDir       string        `env:"DATA_DIR,       default=data_store"`
	LedgerBackend string        `env:"LEDGER_BACKEND, default=csv"`
	VisitorStore  string        `env:"VISITOR_STORE,  default=memory"`
	VisitorTTL    time.Duration `env:"VISITOR_TTL,    default=12h"`

	Admin  AdminConfig
	Token  TokenConfig
	SMTP   SMTPConfig
	Notify NotifyConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type AdminConfig struct {
	KeyName      string `env:"ADMIN_KEY_NAME,    default=ADMIN"`
	KeyContact   string `env:"ADMIN_KEY_CONTACT, default=2002"`
	Password     string `env:"ADMIN_PASSWORD,    default=cereza_admin"`
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

type TokenConfig struct {
	// SigningKey switches the uid token to a signed JWT when set.
	SigningKey string        `env:"TOKEN_SIGNING_KEY"`
	TTL        time.Duration `env:"TOKEN_TTL, default=0s"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT, default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
}

type NotifyConfig struct {
	To      string `env:"NOTIFY_TO"`
	Workers int    `env:"NOTIFY_WORKERS, default=2"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=orderdesk"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.LedgerBackend {
	case LedgerCSV, LedgerMongo:
	default:
		return fmt.Errorf("config: LEDGER_BACKEND must be %q or %q, got %q", LedgerCSV, LedgerMongo, c.LedgerBackend)
	}
	switch c.VisitorStore {
	case VisitorsMemory, VisitorsRedis:
	default:
		return fmt.Errorf("config: VISITOR_STORE must be %q or %q, got %q", VisitorsMemory, VisitorsRedis, c.VisitorStore)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: DATA_DIR must not be empty")
	}
	c.DataDir = filepath.Clean(c.DataDir)
	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
