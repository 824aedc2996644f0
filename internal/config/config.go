package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	TextModel     string `env:"HIKAYE_TEXT_MODEL" envDefault:"gemini-2.5-flash"`
	ImageModel    string `env:"HIKAYE_IMAGE_MODEL" envDefault:"imagen-4.0-generate-001"`
	Illustrations bool   `env:"HIKAYE_ILLUSTRATIONS" envDefault:"true"`
	LogFile       string `env:"HIKAYE_LOG_FILE" envDefault:"hikaye.log"`
}

// LoadConfig loads the configuration from environment variables, reading a
// .env file in the working directory first if there is one.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = lookup(opts, "API_KEY")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return &cfg, nil
}

func lookup(opts env.Options, key string) string {
	if opts.Environment != nil {
		return opts.Environment[key]
	}
	return os.Getenv(key)
}
