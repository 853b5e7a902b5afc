// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// GRPCAddr is the address the gRPC server listens on (e.g. :8080).
	GRPCAddr string `mapstructure:"GRPC_ADDR"`
	// DatabaseURL is the Postgres DSN. The server refuses to start without it.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// JWTPrivateKey is the PEM private key (RSA or ECDSA) or a path to it.
	JWTPrivateKey string `mapstructure:"JWT_PRIVATE_KEY"`
	// JWTPublicKey is the PEM public key or a path to it.
	JWTPublicKey string `mapstructure:"JWT_PUBLIC_KEY"`
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`
	JWTAudience  string `mapstructure:"JWT_AUDIENCE"`
	// JWTAccessTTL is the access token lifetime (e.g. "15m").
	JWTAccessTTL string `mapstructure:"JWT_ACCESS_TTL"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// SetupTTL bounds how long a started OTP or recovery-codes setup stays completable (e.g. "10m").
	SetupTTL string `mapstructure:"SETUP_TTL"`
	// TOTPIssuer is the issuer shown by authenticator apps. Empty means the realm name.
	TOTPIssuer string `mapstructure:"TOTP_ISSUER"`
	// RecoveryCodeCount is the number of recovery codes generated per batch.
	RecoveryCodeCount int `mapstructure:"RECOVERY_CODE_COUNT"`

	// OTLPEndpoint is the OpenTelemetry collector (gRPC). Empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	// KafkaBrokers is a comma-separated broker list. When set, the server also publishes telemetry to Kafka.
	KafkaBrokers        string `mapstructure:"KAFKA_BROKERS"`
	TelemetryKafkaTopic string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`
	// Worker-only: consumer group and Loki push URL.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
	LokiURL      string `mapstructure:"LOKI_URL"`
}

var defaults = map[string]any{
	"GRPC_ADDR":                   ":8080",
	"DATABASE_URL":                "",
	"JWT_PRIVATE_KEY":             "",
	"JWT_PUBLIC_KEY":              "",
	"JWT_ISSUER":                  "account-console",
	"JWT_AUDIENCE":                "account-console-api",
	"JWT_ACCESS_TTL":              "15m",
	"BCRYPT_COST":                 12,
	"APP_ENV":                     "",
	"SETUP_TTL":                   "10m",
	"TOTP_ISSUER":                 "",
	"RECOVERY_CODE_COUNT":         12,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_EXPORTER_OTLP_INSECURE": false,
	"KAFKA_BROKERS":               "",
	"TELEMETRY_KAFKA_TOPIC":       "console-telemetry",
	"KAFKA_GROUP_ID":              "console-telemetry-worker",
	"LOKI_URL":                    "",
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.GRPCAddr == "" {
		return errors.New("config: GRPC_ADDR must be set")
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.RecoveryCodeCount < 1 || c.RecoveryCodeCount > 50 {
		return errors.New("config: RECOVERY_CODE_COUNT must be between 1 and 50")
	}
	if d, err := time.ParseDuration(c.SetupTTL); err != nil || d <= 0 {
		return fmt.Errorf("config: SETUP_TTL %q is not a positive duration", c.SetupTTL)
	}
	return nil
}

// AccessTTL parses JWTAccessTTL. Returns 15m if unset or invalid.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTAccessTTL)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// PendingSetupTTL parses SetupTTL. Returns 10m if unset or invalid.
func (c *Config) PendingSetupTTL() time.Duration {
	d, err := time.ParseDuration(c.SetupTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// KafkaBrokersList returns the trimmed non-empty broker addresses.
func (c *Config) KafkaBrokersList() []string {
	if c == nil || c.KafkaBrokers == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(c.KafkaBrokers, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AuthEnabled reports whether both JWT keys are configured.
func (c *Config) AuthEnabled() bool {
	return c.JWTPrivateKey != "" && c.JWTPublicKey != ""
}
