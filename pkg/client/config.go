package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the environment-driven client configuration. Read once at
// startup; the static-mode flag is latched into the client and consulted
// nowhere else.
type Config struct {
	APIURL     string        `envconfig:"API_URL" default:"http://localhost:5000"`
	StaticMode bool          `envconfig:"STATIC_MODE" default:"false"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

// LoadConfig reads RISKFORM_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("riskform", &cfg); err != nil {
		return Config{}, fmt.Errorf("client: config: %w", err)
	}
	return cfg, nil
}
