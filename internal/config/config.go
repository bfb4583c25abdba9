// Package config loads runtime settings from UHPC_* environment variables.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/uhpc/internal/util"
)

const prefix = "UHPC"

// OTel configures the metrics exporter.
type OTel struct {
	Enabled  bool   `envconfig:"ENABLED"`
	Endpoint string `envconfig:"ENDPOINT"`
	Insecure bool   `envconfig:"INSECURE"`
}

// Config holds every runtime setting.
type Config struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	AuthToken       string        `envconfig:"AUTH_TOKEN"`
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	CompareWorkers  int           `envconfig:"COMPARE_WORKERS" default:"4"`
	OTel            OTel          `envconfig:"OTEL"`
}

// Load reads the environment. An empty database URL stays empty until
// ResolveDatabaseURL is called.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if c.CompareWorkers <= 0 {
		return nil, fmt.Errorf("UHPC_COMPARE_WORKERS must be positive, got %d", c.CompareWorkers)
	}
	return &c, nil
}

// ResolveDatabaseURL fills an empty DatabaseURL with a local file in the XDG
// data directory, creating the directory. Only callers that open the
// prediction log need it.
func (c *Config) ResolveDatabaseURL() (string, error) {
	if c.DatabaseURL != "" {
		return c.DatabaseURL, nil
	}
	url, err := util.DefaultDatabaseURL()
	if err != nil {
		return "", err
	}
	c.DatabaseURL = url
	return url, nil
}

// Usage writes a table of the supported environment variables to w.
func Usage(w io.Writer) error {
	var c Config
	return envconfig.Usagef(prefix, &c, w, envconfig.DefaultTableFormat)
}
