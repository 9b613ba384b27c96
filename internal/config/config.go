// Package config loads server settings from the environment. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the complete server configuration.
type Config struct {
	Port string

	// Firebase. An empty project id runs the API on in-memory stores with
	// the static admin token for authentication.
	FirebaseProjectID string
	CredentialsFile   string
	AdminToken        string

	DatabaseURL  string
	RedisURL     string
	AMQPURL      string
	AMQPExchange string

	SMTP SMTP

	PostalBaseURL string
	PostalTimeout time.Duration

	CORSOrigins []string

	RateLimit  int
	RateWindow time.Duration

	ShutdownTimeout time.Duration
}

// SMTP configures lead emails. Empty Host disables email.
type SMTP struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AgentEmail string
	SiteName   string
	Timeout    time.Duration
	Insecure   bool
}

// Enabled reports whether email delivery is configured.
func (s SMTP) Enabled() bool {
	return s.Host != ""
}

// Load reads .env (if present) and the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	var errs []error
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
		CredentialsFile:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		AMQPURL:           getEnv("AMQP_URL", ""),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", "realty.events"),
		SMTP: SMTP{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getInt("SMTP_PORT", 587, &errs),
			Username:   getEnv("SMTP_USERNAME", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			From:       getEnv("SMTP_FROM", ""),
			AgentEmail: getEnv("AGENT_EMAIL", ""),
			SiteName:   getEnv("SITE_NAME", "Realty Portal"),
			Timeout:    getDuration("SMTP_TIMEOUT", 15*time.Second, &errs),
			Insecure:   getBool("SMTP_INSECURE", false, &errs),
		},
		PostalBaseURL:   getEnv("VIACEP_BASE_URL", "https://viacep.com.br/ws"),
		PostalTimeout:   getDuration("VIACEP_TIMEOUT", 5*time.Second, &errs),
		CORSOrigins:     getList("CORS_ORIGINS"),
		RateLimit:       getInt("RATE_LIMIT", 30, &errs),
		RateWindow:      getDuration("RATE_WINDOW", time.Minute, &errs),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs),
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %q is not a valid port", cfg.Port))
	}
	if cfg.SMTP.Enabled() && (cfg.SMTP.From == "" || cfg.SMTP.AgentEmail == "") {
		errs = append(errs, errors.New("SMTP_FROM and AGENT_EMAIL are required when SMTP_HOST is set"))
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, errors.New("RATE_LIMIT must not be negative"))
	}
	if cfg.RateWindow <= 0 {
		errs = append(errs, errors.New("RATE_WINDOW must be positive"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return def
	}
	return i
}

func getBool(key string, def bool, errs *[]error) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}

// getList splits a comma separated variable, dropping empty entries.
func getList(key string) []string {
	var out []string
	for part := range strings.SplitSeq(getEnv(key, ""), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
