package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that supply defaults for command-line flags.
const (
	EnvDB        = "WORDGRID_DB"
	EnvLogLevel  = "WORDGRID_LOG_LEVEL"
	EnvPuzzleDir = "WORDGRID_PUZZLE_DIR"
)

// LoadEnv loads variables from the given .env files, or ./.env when none are
// named. Missing files are not an error; variables already set win.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// EnvOr returns the value of key, or fallback when it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
