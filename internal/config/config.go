package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrUnknownDriver   = errors.New("unknown database driver")
	ErrInvalidInterval = errors.New("keep-alive interval must be positive")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DBConfig struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `env:"DRIVER" envDefault:"sqlite"`

	// DataSource is a file path for sqlite or a DSN for postgres.
	DataSource string `env:"DATA_SOURCE" envDefault:"data.db"`
}

// S3Config enables object storage for screenshots when Bucket and Endpoint are set.
type S3Config struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

func (s S3Config) Enabled() bool {
	return s.Endpoint != "" && s.Bucket != ""
}

type LogConfig struct {
	// Format is one of "text", "json" or "logfmt".
	Format string `env:"FORMAT" envDefault:"text"`
	Level  string `env:"LEVEL" envDefault:"info"`
}

type KeepAliveConfig struct {
	URL      string        `env:"URL"`
	Interval time.Duration `env:"INTERVAL" envDefault:"49s"`
}

type Config struct {
	Port              string `env:"PORT" envDefault:"5000"`
	AllowOrigins      string `env:"ALLOW_ORIGINS" envDefault:"*"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	SessionSecret     string `env:"SESSION_SECRET"`
	UploadDir         string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadMB       int64  `env:"MAX_UPLOAD_MB" envDefault:"15"`

	DB        DBConfig        `envPrefix:"DB_"`
	S3        S3Config        `envPrefix:"S3_"`
	Log       LogConfig       `envPrefix:"LOG_"`
	KeepAlive KeepAliveConfig `envPrefix:"KEEPALIVE_"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	return Parse(env.ToMap(os.Environ()))
}

// Parse builds a Config from the given environment map.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	getenv := func(key, def string) string {
		if v := environ[key]; v != "" {
			return v
		}
		return def
	}

	// Names used by earlier deployments are still honoured.
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = getenv("VENUSPAY_ADMIN_PW", "admin123")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = getenv("VENUSPAY_SECRET", "venus_secret_key")
	}
	if cfg.KeepAlive.URL == "" {
		cfg.KeepAlive.URL = getenv("RENDER_URL", "")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DB.Driver)
	}
	if c.KeepAlive.URL != "" && c.KeepAlive.Interval <= 0 {
		return ErrInvalidInterval
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 15
	}
	return nil
}

// MaxUploadBytes is the largest accepted screenshot size.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}
