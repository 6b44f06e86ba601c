package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"homebooking/internal/pkg/utils"
	"homebooking/internal/sheets"
)

const (
	StoreSheets   = "sheets"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config holds the API server settings.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	StoreDriver       string `mapstructure:"STORE_DRIVER"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Timezone          string `mapstructure:"TIMEZONE"`
	CORSAllowOrigins  string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// ExposeBookingList mounts the booking list and live feed routes. Both
	// return customer contact details and have no access control.
	ExposeBookingList bool `mapstructure:"EXPOSE_BOOKING_LIST"`

	GoogleSheetID         string `mapstructure:"GOOGLE_SHEET_ID"`
	GoogleSheetName       string `mapstructure:"GOOGLE_SHEET_NAME"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Split service account, as pasted into a hosting dashboard.
	GoogleType              string `mapstructure:"GOOGLE_TYPE"`
	GoogleProjectID         string `mapstructure:"GOOGLE_PROJECT_ID"`
	GooglePrivateKeyID      string `mapstructure:"GOOGLE_PRIVATE_KEY_ID"`
	GooglePrivateKey        string `mapstructure:"GOOGLE_PRIVATE_KEY"`
	GoogleClientEmail       string `mapstructure:"GOOGLE_CLIENT_EMAIL"`
	GoogleClientID          string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientX509CertURL string `mapstructure:"GOOGLE_CLIENT_X509_CERT_URL"`
}

var serverDefaults = map[string]any{
	"APP_PORT":                    "8080",
	"ENV":                         "development",
	"LOG_LEVEL":                   "info",
	"STORE_DRIVER":                StoreSheets,
	"DATABASE_URL":                "booking.db",
	"TIMEZONE":                    "Asia/Manila",
	"CORS_ALLOWED_ORIGINS":        "http://localhost:3000,http://localhost:5173",
	"MAX_REQUESTS_PER_MIN":        100,
	"EXPOSE_BOOKING_LIST":         false,
	"GOOGLE_SHEET_ID":             "",
	"GOOGLE_SHEET_NAME":           "Sheet1",
	"GOOGLE_CREDENTIALS_FILE":     "",
	"GOOGLE_TYPE":                 "",
	"GOOGLE_PROJECT_ID":           "",
	"GOOGLE_PRIVATE_KEY_ID":       "",
	"GOOGLE_PRIVATE_KEY":          "",
	"GOOGLE_CLIENT_EMAIL":         "",
	"GOOGLE_CLIENT_ID":            "",
	"GOOGLE_CLIENT_X509_CERT_URL": "",
}

// newViper reads .env (if any), then an optional config.yaml, then the
// environment, which wins.
func newViper(defaults map[string]any) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

// Load builds the server configuration and checks the store settings.
func Load() (*Config, error) {
	v, err := newViper(serverDefaults)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreSheets:
		if c.GoogleSheetID == "" {
			return errors.New("GOOGLE_SHEET_ID is required when STORE_DRIVER=sheets")
		}
	case StoreSQLite, StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.MaxRequestsPerMin <= 0 {
		return fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin)
	}
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// IsDevelopment gates error detail in responses. Staging and any other
// environment count as not development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Location is the zone used for sheet timestamps and dates.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		// validate already rejected bad zones
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Sheets returns the store settings, preferring a credentials file over the
// split service account variables.
func (c *Config) Sheets() (sheets.Config, error) {
	out := sheets.Config{
		SpreadsheetID:   c.GoogleSheetID,
		SheetName:       c.GoogleSheetName,
		CredentialsFile: c.GoogleCredentialsFile,
	}
	if out.CredentialsFile != "" {
		return out, nil
	}

	account := c.ServiceAccount()
	if !account.Complete() {
		// fall back to application default credentials
		return out, nil
	}
	raw, err := account.JSON()
	if err != nil {
		return sheets.Config{}, fmt.Errorf("encode service account: %w", err)
	}
	out.CredentialsJSON = raw
	return out, nil
}

func (c *Config) ServiceAccount() sheets.ServiceAccount {
	return sheets.ServiceAccount{
		Type:          c.GoogleType,
		ProjectID:     c.GoogleProjectID,
		PrivateKeyID:  c.GooglePrivateKeyID,
		PrivateKey:    c.GooglePrivateKey,
		ClientEmail:   c.GoogleClientEmail,
		ClientID:      c.GoogleClientID,
		ClientCertURL: c.GoogleClientX509CertURL,
	}
}
