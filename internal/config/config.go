// Package config loads application configuration from environment
// variables, with optional .env support for local development.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the worker binary.
// Each field corresponds to an environment variable.  The engine itself
// takes no configuration; everything here wires its collaborators.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	AMQPURL          string // RabbitMQ connection URL (optional; events disabled when empty)
	SweepIntervalSec int    // seconds between completion sweeps
}

// Load reads configuration from the environment.  A .env file in the
// working directory is merged in first when present; real environment
// variables win.  Missing required variables abort with a fatal log,
// matching how the rest of the binary treats unusable configuration.
func Load() Config {
	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	return Config{
		Env:              getenv("APP_ENV", "dev"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		AMQPURL:          os.Getenv("AMQP_URL"),
		SweepIntervalSec: mustInt("SWEEP_INTERVAL_SEC"),
	}
}

// must retrieves a required environment variable or exits fatally.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
