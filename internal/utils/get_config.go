package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath      = "config.yaml"
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not configured")

type Config struct {
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT configuration
	JWTSecret       string `yaml:"JWT_SECRET"`
	JWTIssuer       string `yaml:"JWT_ISSUER"`
	AccessTokenTTL  string `yaml:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL string `yaml:"REFRESH_TOKEN_TTL"`

	// Logging
	LogLevel      string `yaml:"LOG_LEVEL"`
	LogFormat     string `yaml:"LOG_FORMAT"`
	AccessLogFile string `yaml:"ACCESS_LOG_FILE"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

// LoadConfig reads path (a missing file is fine), then lets the process
// environment override every key.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		AppPort:    "8080",
		AppURL:     "http://localhost:8080",
		DBDriver:   "postgres",
		DBPort:     "5432",
		DBTimeZone: "UTC",
		JWTIssuer:  "RECIPE-API",
		LogLevel:   "info",
		LogFormat:  "console",
	}

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if _, _, err := cfg.TokenTTLs(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for key, dst := range map[string]*string{
		"APP_PORT":           &c.AppPort,
		"APP_URL":            &c.AppURL,
		"DB_DRIVER":          &c.DBDriver,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"DB_TIMEZONE":        &c.DBTimeZone,
		"JWT_SECRET":         &c.JWTSecret,
		"JWT_ISSUER":         &c.JWTIssuer,
		"ACCESS_TOKEN_TTL":   &c.AccessTokenTTL,
		"REFRESH_TOKEN_TTL":  &c.RefreshTokenTTL,
		"LOG_LEVEL":          &c.LogLevel,
		"LOG_FORMAT":         &c.LogFormat,
		"ACCESS_LOG_FILE":    &c.AccessLogFile,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
}

// TokenTTLs returns the access and refresh token lifetimes, falling back to
// the defaults for unset values.
func (c *Config) TokenTTLs() (access time.Duration, refresh time.Duration, err error) {
	access, refresh = DefaultAccessTokenTTL, DefaultRefreshTokenTTL
	if c.AccessTokenTTL != "" {
		if access, err = time.ParseDuration(c.AccessTokenTTL); err != nil {
			return 0, 0, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
		}
	}
	if c.RefreshTokenTTL != "" {
		if refresh, err = time.ParseDuration(c.RefreshTokenTTL); err != nil {
			return 0, 0, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
		}
	}
	return access, refresh, nil
}
