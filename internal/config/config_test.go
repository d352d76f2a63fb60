package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/v1/")
	t.Setenv("SESSION_SECRET", strings.Repeat("s", 32))
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	assert.Equal(t, 300*time.Second, cfg.IdempotencyTTL())
	assert.False(t, cfg.UploadsEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("UPLOAD_BUCKET", "kyc-docs")
	t.Setenv("UPLOAD_IDENTITY_POOL_ID", "ap-south-1:pool")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.UploadsEnabled())
}

func TestValidate_Failures(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort:        "8080",
			BackendBaseURL: "https://api.example.com",
			SessionSecret:  strings.Repeat("k", 32),
			SessionTTL:     time.Hour,
			DBDriver:       DriverSQLite,
			SQLitePath:     "x.db",
			UploadMaxBytes: 1,
			IdempTTLSecs:   1,
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"missing backend", func(c *Config) { c.BackendBaseURL = "" }, "missing BACKEND_BASE_URL"},
		{"relative backend", func(c *Config) { c.BackendBaseURL = "/api" }, "invalid BACKEND_BASE_URL"},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "SESSION_SECRET must be at least 32 bytes"},
		{"bad driver", func(c *Config) { c.DBDriver = "postgres" }, "unsupported DB_DRIVER"},
		{"mysql missing host", func(c *Config) { c.DBDriver = DriverMySQL }, "missing MySQL config"},
		{"bad port", func(c *Config) { c.AppPort = "not-a-port" }, "invalid APP_PORT"},
		{"zero upload size", func(c *Config) { c.UploadMaxBytes = 0 }, "UPLOAD_MAX_BYTES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "dash"}
	assert.Equal(t, "u:p@tcp(db:3306)/dash?parseTime=true&charset=utf8mb4,utf8", c.MySQLDSN())
}
