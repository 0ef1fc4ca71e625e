package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"SERVER_PORT, default=8080"`
	Env       string `env:"ENV,         default=development"`
	LogLevel  string `env:"LOG_LEVEL,   default=info"`
	LogPretty bool   `env:"LOG_PRETTY,  default=false"`
	JWTSecret string `env:"JWT_SECRET,  default=dev-secret-change-me"`
}

// Load reads configuration from environment variables.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
