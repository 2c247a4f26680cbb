package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func lookupEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func lookupInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func lookupDuration(key string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

func Port() string {
	return lookupEnv("APP_PORT", "8080")
}

func Addr() string {
	return ":" + Port()
}

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}
