package config

import (
	"github.com/joho/godotenv"
)

// LoadEnv loads .env when present. A missing file is fine, env vars can be set by other means.
func LoadEnv() {
	_ = godotenv.Load()
}
