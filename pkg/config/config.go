package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the CLI and API binaries.
type Config struct {
	DBPath string `envconfig:"DB_PATH" default:"db.sqlite3"`

	APIAddr      string        `envconfig:"API_ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
}

// Load reads configuration from LEDGER_-prefixed environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ledger", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
