package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting, mapped from environment variables.
type Config struct {
	Port string `envconfig:"PORT" default:"3333"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	ClerkSecretKey     string `envconfig:"CLERK_SECRET_KEY" required:"true"`
	ClerkWebhookSecret string `envconfig:"CLERK_WEBHOOK_SECRET"`

	// Firebase credentials: Base64-encoded JSON wins over the local file.
	FirebaseCredentialsJSON string `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseCredentialsFile string `envconfig:"FIREBASE_SERVICE_ACCOUNT_FILE" default:"./serviceAccountKey.json"`

	MetricsUser string `envconfig:"METRICS_USER"`
	MetricsPass string `envconfig:"METRICS_PASS"`

	PprofSecret string `envconfig:"PPROF_SECRET"`
}

// Load parses the process environment into a Config. A .env file, if any,
// must be loaded by the caller beforehand.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
