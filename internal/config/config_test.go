package config

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Parse(map[string]string{})
	is.NoErr(err)
	is.Equal(cfg.Port, "5000")
	is.Equal(cfg.AdminPassword, "admin123")
	is.Equal(cfg.SessionSecret, "venus_secret_key")
	is.Equal(cfg.DB.Driver, DriverSQLite)
	is.Equal(cfg.DB.DataSource, "data.db")
	is.Equal(cfg.UploadDir, "uploads")
	is.Equal(cfg.KeepAlive.Interval, 49*time.Second)
	is.Equal(cfg.KeepAlive.URL, "")
	is.True(!cfg.S3.Enabled())
	is.Equal(cfg.MaxUploadBytes(), int64(15*1024*1024))
}

func TestParseLegacyNames(t *testing.T) {
	is := is.New(t)

	cfg, err := Parse(map[string]string{
		"VENUSPAY_ADMIN_PW": "legacy-pw",
		"VENUSPAY_SECRET":   "legacy-secret",
		"RENDER_URL":        "https://example.onrender.com",
	})
	is.NoErr(err)
	is.Equal(cfg.AdminPassword, "legacy-pw")
	is.Equal(cfg.SessionSecret, "legacy-secret")
	is.Equal(cfg.KeepAlive.URL, "https://example.onrender.com")
}

func TestParsePrefersNewNames(t *testing.T) {
	is := is.New(t)

	cfg, err := Parse(map[string]string{
		"ADMIN_PASSWORD":    "new-pw",
		"VENUSPAY_ADMIN_PW": "legacy-pw",
		"KEEPALIVE_URL":     "https://a.example",
		"RENDER_URL":        "https://b.example",
	})
	is.NoErr(err)
	is.Equal(cfg.AdminPassword, "new-pw")
	is.Equal(cfg.KeepAlive.URL, "https://a.example")
}

func TestParseNested(t *testing.T) {
	is := is.New(t)

	cfg, err := Parse(map[string]string{
		"DB_DRIVER":          "Postgres",
		"DB_DATA_SOURCE":     "postgres://u:p@localhost:5432/venus?sslmode=disable",
		"S3_ENDPOINT":        "localhost:9000",
		"S3_BUCKET":          "screenshots",
		"S3_USE_SSL":         "true",
		"LOG_FORMAT":         "json",
		"KEEPALIVE_INTERVAL": "2m",
		"MAX_UPLOAD_MB":      "4",
	})
	is.NoErr(err)
	is.Equal(cfg.DB.Driver, DriverPostgres)
	is.True(cfg.S3.Enabled())
	is.True(cfg.S3.UseSSL)
	is.Equal(cfg.S3.Region, "us-east-1")
	is.Equal(cfg.Log.Format, "json")
	is.Equal(cfg.KeepAlive.Interval, 2*time.Minute)
	is.Equal(cfg.MaxUploadBytes(), int64(4*1024*1024))
}

func TestParseUnknownDriver(t *testing.T) {
	_, err := Parse(map[string]string{"DB_DRIVER": "oracle"})
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("Parse(oracle) => %v, want ErrUnknownDriver", err)
	}
}

func TestParseInvalidInterval(t *testing.T) {
	_, err := Parse(map[string]string{
		"KEEPALIVE_URL":      "https://a.example",
		"KEEPALIVE_INTERVAL": "0s",
	})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("Parse(0s) => %v, want ErrInvalidInterval", err)
	}
}
