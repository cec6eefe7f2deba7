// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. FirebaseCredentials carries the base64-encoded
// service-account JSON blob; it is decoded once when the store client opens.
type Config struct {
	Env                 string // application environment (e.g. "dev", "prod")
	Port                string // HTTP port to listen on
	DatabaseURL         string // root URL of the realtime database
	FirebaseCredentials string // base64-encoded service-account JSON
	JWTSecret           string // secret used to sign access tokens
	AccessTTLMin        int    // access token time-to-live in minutes
	BcryptCost          int    // bcrypt cost for password hashing
	EnableAdminRoutes   bool   // expose /admins and /ais management routes
	AMQPURL             string // broker URL; empty disables event publishing
}

// Load reads configuration from the environment. Required variables are
// enforced by must() and missing values exit with a fatal log message;
// the rest fall back to defaults.
func Load() Config {
	return Config{
		Env:                 envStr("APP_ENV", "dev"),
		Port:                must("APP_PORT"),
		DatabaseURL:         must("DATABASE_URL"),
		FirebaseCredentials: must("FIREBASE_CREDENTIALS"),
		JWTSecret:           must("JWT_SECRET"),
		AccessTTLMin:        envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:          envInt("BCRYPT_COST", 10),
		EnableAdminRoutes:   envBool("ENABLE_ADMIN_ROUTES", false),
		AMQPURL:             os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envBool(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("invalid bool for %s: %q", key, s)
	}
	return b
}

func envDur(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
