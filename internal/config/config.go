package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	minSessionSecretLen = 32
)

type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	BackendBaseURL string        `envconfig:"BACKEND_BASE_URL"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`

	SessionSecret string        `envconfig:"SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"redis:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	MySQLHost  string `envconfig:"MYSQL_HOST" default:"mysql"`
	MySQLPort  string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB    string `envconfig:"MYSQL_DB" default:"loan_dashboard"`
	MySQLUser  string `envconfig:"MYSQL_USER" default:"dashboard"`
	MySQLPass  string `envconfig:"MYSQL_PASS" default:"dashboard"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"dashboard.db"`

	IdempTTLSecs   int           `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"300"`
	WizardDraftTTL time.Duration `envconfig:"WIZARD_DRAFT_TTL" default:"72h"`

	UploadBucket         string `envconfig:"UPLOAD_BUCKET"`
	UploadRegion         string `envconfig:"UPLOAD_REGION" default:"ap-south-1"`
	UploadIdentityPoolID string `envconfig:"UPLOAD_IDENTITY_POOL_ID"`
	UploadMaxBytes       int64  `envconfig:"UPLOAD_MAX_BYTES" default:"5242880"`
	UploadPublicBaseURL  string `envconfig:"UPLOAD_PUBLIC_BASE_URL"`

	LoginRatePerSecond float64 `envconfig:"LOGIN_RATE_PER_SECOND" default:"1"`
	LoginRateBurst     int     `envconfig:"LOGIN_RATE_BURST" default:"5"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	c.BackendBaseURL = strings.TrimSpace(c.BackendBaseURL)
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	return &c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}

	if c.BackendBaseURL == "" {
		return errors.New("missing BACKEND_BASE_URL")
	}
	u, err := url.Parse(c.BackendBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_BASE_URL %q", c.BackendBaseURL)
	}

	if len(c.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLen)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}

	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	return nil
}

// UploadsEnabled is false when no bucket or identity pool is configured;
// the upload endpoint then answers 503.
func (c *Config) UploadsEnabled() bool {
	return c.UploadBucket != "" && c.UploadIdentityPoolID != ""
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
