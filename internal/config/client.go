package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientConfig holds the booking CLI settings. Flags override these.
type ClientConfig struct {
	APIURL     string        `mapstructure:"BOOKING_API_URL"`
	APITimeout time.Duration `mapstructure:"BOOKING_API_TIMEOUT"`
	LogLevel   string        `mapstructure:"BOOKING_LOG_LEVEL"`
}

var clientDefaults = map[string]any{
	"BOOKING_API_URL":     "http://localhost:8080",
	"BOOKING_API_TIMEOUT": 15 * time.Second,
	"BOOKING_LOG_LEVEL":   "",
}

func LoadClient() (*ClientConfig, error) {
	v, err := newViper(clientDefaults)
	if err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode client config: %w", err)
	}
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("BOOKING_API_URL is empty")
	}
	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("BOOKING_API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	return cfg, nil
}
