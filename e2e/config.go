package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// COURIER_WS_URL is the ws:// address of a running courier; the suites are skipped without it
	WebsocketURL string `envconfig:"COURIER_WS_URL"`
	GRPCAddr     string `envconfig:"COURIER_GRPC_ADDR" default:"localhost:9090"`
	UserIDHeader string `envconfig:"COURIER_USER_ID_HEADER" default:"X-User-Id"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
