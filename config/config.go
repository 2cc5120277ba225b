package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port       string `env:"PORT" envDefault:"5000"`
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogLevel   int    `env:"LOG_LEVEL" envDefault:"0"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10"`
	Mongo      Mongo  `envPrefix:"MONGO_"`
	Token      Token  `envPrefix:"TOKEN_"`
}

// Mongo contains document store connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"HouseHunter"`
}

// Token contains signed-token parameters. Tokens expire after TTL.
type Token struct {
	Secret string        `env:"SECRET" envDefault:"devsecret"`
	TTL    time.Duration `env:"TTL" envDefault:"1h"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	return &cfg, nil
}
