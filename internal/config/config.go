// Package config reads runtime settings from the environment with sane
// fallbacks, so binaries work out of the box for local runs.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt parses an integer setting. Malformed values are logged and the
// fallback is used rather than aborting startup.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config key=%s value=%q err=%v (using default %d)", key, v, err, fallback)
		return fallback
	}
	return n
}

// GetDuration parses a duration setting such as "30s" or "2m".
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config key=%s value=%q err=%v (using default %s)", key, v, err, fallback)
		return fallback
	}
	return d
}
