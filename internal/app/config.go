package app

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Env             string        `envconfig:"APP_ENV" default:"development"`
	Addr            string        `envconfig:"APP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	PostgresDSN string `envconfig:"PG_DSN" required:"true"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	GotenbergURL string `envconfig:"GOTENBERG_URL" default:"http://localhost:3000"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@arcadia.local"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" required:"true"`

	// Issuer identity printed on quotation and invoice documents.
	CompanyName    string `envconfig:"COMPANY_NAME" default:"Arcadia Trading Co."`
	CompanyAddress string `envconfig:"COMPANY_ADDRESS" default:""`
	CompanyPhone   string `envconfig:"COMPANY_PHONE" default:""`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("app: load config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
