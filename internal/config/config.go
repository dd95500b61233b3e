// Package config loads the directory browser configuration from the
// environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Sternrassler/user-directory-client/pkg/client"
	"github.com/Sternrassler/user-directory-client/pkg/controller"
	"github.com/Sternrassler/user-directory-client/pkg/logging"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read by Load when no files are named.
const DefaultEnvFile = ".env"

var validate = validator.New()

// Config is the full binary configuration.
type Config struct {
	BaseURL     string        `env:"DIRECTORY_BASE_URL" envDefault:"https://jsonplaceholder.typicode.com/" validate:"required,url"`
	Resource    string        `env:"DIRECTORY_RESOURCE" envDefault:"users" validate:"required"`
	UserAgent   string        `env:"DIRECTORY_USER_AGENT"`
	HTTPTimeout time.Duration `env:"DIRECTORY_HTTP_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	Revalidate  bool          `env:"DIRECTORY_REVALIDATE" envDefault:"false"`

	PageSize   int           `env:"DIRECTORY_PAGE_SIZE" envDefault:"3" validate:"gt=0"`
	FetchDelay time.Duration `env:"DIRECTORY_FETCH_DELAY" envDefault:"1s" validate:"gte=0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn warning error"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`

	// OpsAddr is the listen address of the ops HTTP server; "off" disables it.
	OpsAddr string `env:"OPS_ADDR" envDefault:":9090"`

	// RedisURL enables the state broadcast when set, e.g. redis://localhost:6379/0
	RedisURL     string `env:"REDIS_URL" validate:"omitempty,url"`
	RedisChannel string `env:"REDIS_CHANNEL" envDefault:"directory:state" validate:"required"`
}

// Load reads envFiles (or DefaultEnvFile) into the process environment
// without overriding variables that are already set, then parses and
// validates the configuration. Missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Client returns the gateway configuration.
func (c Config) Client() client.Config {
	return client.Config{
		BaseURL:    c.BaseURL,
		Resource:   c.Resource,
		UserAgent:  c.UserAgent,
		Timeout:    c.HTTPTimeout,
		Revalidate: c.Revalidate,
	}
}

// Controller returns the controller configuration without observers.
func (c Config) Controller() controller.Config {
	return controller.Config{
		PageSize:   c.PageSize,
		FetchDelay: c.FetchDelay,
	}
}

// Logging returns the logger configuration for service.
func (c Config) Logging(service string) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(c.LogLevel)
	cfg.Pretty = c.LogPretty
	cfg.Service = service
	return cfg
}

// OpsDisabled is the OPS_ADDR value that turns the ops server off.
const OpsDisabled = "off"

// OpsEnabled reports whether the ops HTTP server should be started.
func (c Config) OpsEnabled() bool {
	return c.OpsAddr != "" && c.OpsAddr != OpsDisabled
}

// BroadcastEnabled reports whether a Redis URL is configured.
func (c Config) BroadcastEnabled() bool {
	return c.RedisURL != ""
}
