package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"LOBBY_ADDR" envDefault:":8080"`
	DatabaseURL     string        `env:"LOBBY_DATABASE_URL"`
	LogLevel        string        `env:"LOBBY_LOG_LEVEL" envDefault:"info"`
	LogDevelopment  bool          `env:"LOBBY_LOG_DEVELOPMENT" envDefault:"false"`
	ClientBuffer    int           `env:"LOBBY_CLIENT_BUFFER" envDefault:"8"`
	ReadTimeout     time.Duration `env:"LOBBY_READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout    time.Duration `env:"LOBBY_WRITE_TIMEOUT" envDefault:"3s"`
	ShutdownTimeout time.Duration `env:"LOBBY_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads the given .env files, skipping missing ones, and then parses the
// environment. Variables already set win over file values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ClientBuffer < 1 {
		return Config{}, fmt.Errorf("parse env: LOBBY_CLIENT_BUFFER must be positive, got %d", cfg.ClientBuffer)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
