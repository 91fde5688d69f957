package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from a file, environment and flags.
type Config struct {
	RunAddress             string
	DatabaseURI            string
	BackendAddress         string
	BackendTimeout         time.Duration
	SessionSecret          string
	SessionTTL             time.Duration
	CheckoutFee            decimal.Decimal
	CatalogRefreshInterval time.Duration
	DraftIdleTimeout       time.Duration
	ShutdownTimeout        time.Duration
	KafkaBrokers           []string
	KafkaTopic             string
	LogLevel               string
	Env                    string
}

const (
	defaultRunAddress             = ":8080"
	defaultSessionSecret          = "change-me-in-production"
	defaultBackendTimeout         = 10 * time.Second
	defaultSessionTTL             = 24 * time.Hour
	defaultCheckoutFee            = "99"
	defaultCatalogRefreshInterval = time.Minute
	defaultDraftIdleTimeout       = 30 * time.Minute
	defaultShutdownTimeout        = 10 * time.Second
	defaultKafkaTopic             = "orders"
	defaultLogLevel               = "info"
	defaultEnv                    = "prod"
)

// fileConfig is the optional YAML layer named by CONFIG_PATH.
type fileConfig struct {
	RunAddress             string        `yaml:"run_address" env-default:":8080"`
	DatabaseURI            string        `yaml:"database_uri"`
	BackendAddress         string        `yaml:"backend_address"`
	BackendTimeout         time.Duration `yaml:"backend_timeout" env-default:"10s"`
	SessionTTL             time.Duration `yaml:"session_ttl" env-default:"24h"`
	CheckoutFee            string        `yaml:"checkout_fee" env-default:"99"`
	CatalogRefreshInterval time.Duration `yaml:"catalog_refresh_interval" env-default:"1m"`
	DraftIdleTimeout       time.Duration `yaml:"draft_idle_timeout" env-default:"30m"`
	ShutdownTimeout        time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	KafkaBrokers           []string      `yaml:"kafka_brokers"`
	KafkaTopic             string        `yaml:"kafka_topic" env-default:"orders"`
	LogLevel               string        `yaml:"log_level" env-default:"info"`
	Env                    string        `yaml:"env" env-default:"prod"`
}

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func defaults(lookup envLookup) (*fileConfig, error) {
	fc := &fileConfig{
		RunAddress:             defaultRunAddress,
		BackendTimeout:         defaultBackendTimeout,
		SessionTTL:             defaultSessionTTL,
		CheckoutFee:            defaultCheckoutFee,
		CatalogRefreshInterval: defaultCatalogRefreshInterval,
		DraftIdleTimeout:       defaultDraftIdleTimeout,
		ShutdownTimeout:        defaultShutdownTimeout,
		KafkaTopic:             defaultKafkaTopic,
		LogLevel:               defaultLogLevel,
		Env:                    defaultEnv,
	}
	path, ok := lookup("CONFIG_PATH")
	if !ok || path == "" {
		return fc, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := cleanenv.ReadConfig(path, fc); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return fc, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	fc, err := defaults(lookup)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunAddress:     getString(lookup, "RUN_ADDRESS", fc.RunAddress),
		DatabaseURI:    getString(lookup, "DATABASE_URI", fc.DatabaseURI),
		BackendAddress: getString(lookup, "BACKEND_ADDRESS", fc.BackendAddress),
		SessionSecret:  getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		KafkaTopic:     getString(lookup, "KAFKA_TOPIC", fc.KafkaTopic),
		LogLevel:       getString(lookup, "LOG_LEVEL", fc.LogLevel),
		Env:            getString(lookup, "ENV", fc.Env),
	}

	fs := flag.NewFlagSet("opeak", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		backendTimeoutStr  = getString(lookup, "BACKEND_TIMEOUT", fc.BackendTimeout.String())
		sessionTTLStr      = getString(lookup, "SESSION_TTL", fc.SessionTTL.String())
		refreshStr         = getString(lookup, "CATALOG_REFRESH_INTERVAL", fc.CatalogRefreshInterval.String())
		draftIdleStr       = getString(lookup, "DRAFT_IDLE_TIMEOUT", fc.DraftIdleTimeout.String())
		shutdownTimeoutStr = getString(lookup, "SHUTDOWN_TIMEOUT", fc.ShutdownTimeout.String())
		checkoutFeeStr     = getString(lookup, "CHECKOUT_FEE", fc.CheckoutFee)
		brokersStr         = getString(lookup, "KAFKA_BROKERS", strings.Join(fc.KafkaBrokers, ","))
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BackendAddress, "b", cfg.BackendAddress, "Backend base URL")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session tokens")
	fs.StringVar(&backendTimeoutStr, "backend-timeout", backendTimeoutStr, "Timeout of a single backend call")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Session token lifetime")
	fs.StringVar(&refreshStr, "refresh-interval", refreshStr, "Interval between reference data refreshes")
	fs.StringVar(&draftIdleStr, "draft-idle-timeout", draftIdleStr, "Idle time after which an unsubmitted draft is dropped")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&checkoutFeeStr, "checkout-fee", checkoutFeeStr, "Flat fee added on cart checkout")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Comma separated Kafka brokers")
	fs.StringVar(&cfg.KafkaTopic, "kafka-topic", cfg.KafkaTopic, "Kafka topic for order events")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment: local, dev or prod")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.BackendTimeout, err = time.ParseDuration(backendTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid backend timeout: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}
	if cfg.CatalogRefreshInterval, err = time.ParseDuration(refreshStr); err != nil {
		return nil, fmt.Errorf("invalid refresh interval: %w", err)
	}
	if cfg.DraftIdleTimeout, err = time.ParseDuration(draftIdleStr); err != nil {
		return nil, fmt.Errorf("invalid draft idle timeout: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if cfg.CheckoutFee, err = decimal.NewFromString(checkoutFeeStr); err != nil {
		return nil, fmt.Errorf("invalid checkout fee: %w", err)
	}
	cfg.KafkaBrokers = splitList(brokersStr)

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	if cfg.BackendTimeout <= 0 {
		cfg.BackendTimeout = defaultBackendTimeout
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.CatalogRefreshInterval <= 0 {
		cfg.CatalogRefreshInterval = defaultCatalogRefreshInterval
	}
	if cfg.DraftIdleTimeout <= 0 {
		cfg.DraftIdleTimeout = defaultDraftIdleTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.CheckoutFee.IsNegative() {
		return nil, fmt.Errorf("checkout fee must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BackendAddress == "" {
		return nil, fmt.Errorf("backend address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
