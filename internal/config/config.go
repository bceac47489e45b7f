// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the server configuration, populated from AWSMGR_* environment
// variables.
type Config struct {
	Addr           string        `envconfig:"ADDR" default:":8080"`
	DatabaseURL    string        `envconfig:"DATABASE_URL" required:"true"`
	MFASerial      string        `envconfig:"MFA_SERIAL"`
	DefaultRegion  string        `envconfig:"DEFAULT_REGION" default:"us-east-1"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"2m"`
	RateLimit      int           `envconfig:"RATE_LIMIT" default:"100"`
	AuthToken      string        `envconfig:"AUTH_TOKEN"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("awsmgr", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
