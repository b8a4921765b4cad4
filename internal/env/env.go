// File: internal/env/env.go

// Package env supplies flag defaults from the environment. Variables already
// set in the process win over those loaded from a .env file, which win over
// the hard-coded defaults.
package env

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the first .env file found in paths. A missing file is not an
// error; it reports whether one was loaded.
func Load(paths ...string) (bool, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}
	return false, nil
}

// String returns the value of key, or def when unset or blank.
func String(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

// Int returns key parsed as an int, or def.
func Int(key string, def int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return def
}

// Float returns key parsed as a float64, or def.
func Float(key string, def float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return def
}

// Bool returns key parsed as a bool, or def.
func Bool(key string, def bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return def
}

// Duration returns key parsed as a time.Duration, or def.
func Duration(key string, def time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return def
}
