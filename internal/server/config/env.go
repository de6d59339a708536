package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables. In
// development a .env file in the working directory is loaded first.
// Only variables that are actually set override earlier layers.
func parseEnv(config *Config) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
