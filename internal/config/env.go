package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvCharSet = "TUIDRILL_CHARSET"
	EnvTheme   = "TUIDRILL_THEME"
	EnvDB      = "TUIDRILL_DB"
	EnvLogFile = "TUIDRILL_LOG_FILE"
)

// EnvConfig holds overrides read from the environment. Nil means unset.
type EnvConfig struct {
	CharSet *string
	Theme   *string
	DB      *string
	LogFile *string
}

// LoadEnv loads an optional .env file from the working directory, then
// reads the overrides. Variables already in the environment win over the file.
func LoadEnv(files ...string) EnvConfig {
	// A missing .env is the common case.
	_ = godotenv.Load(files...)
	return EnvConfig{
		CharSet: lookupEnv(EnvCharSet),
		Theme:   lookupEnv(EnvTheme),
		DB:      lookupEnv(EnvDB),
		LogFile: lookupEnv(EnvLogFile),
	}
}

func lookupEnv(key string) *string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
