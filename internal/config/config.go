// Package config loads every runtime setting of the dorm backend from
// environment variables: core service config here, cache / rate-limit /
// Redis settings in their own files.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds the core service settings. Required values are enforced by
// must(); the database pool knobs are optional and default to values sized
// for a single instance.
type Config struct {
	Env  string // "dev" | "prod"
	Port string // HTTP listen port

	DBUser         string
	DBPass         string // empty allowed for local setups
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxOpen      int           // max open connections (DB_MAX_OPEN, default 20)
	DBMaxIdle      int           // max idle connections (DB_MAX_IDLE, default 10)
	DBConnLifetime time.Duration // connection recycle age (DB_CONN_LIFETIME, default 30m)

	JWTSecret      string
	AccessTTLMin   int // access token lifetime, minutes
	RefreshTTLDays int // refresh token lifetime, days
	BcryptCost     int // bcrypt cost for password hashing
}

// Load reads the environment and exits with a fatal log on missing
// required variables, so a misconfigured deployment never half-starts.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxOpen:      atoi(getenv("DB_MAX_OPEN", "20")),
		DBMaxIdle:      atoi(getenv("DB_MAX_IDLE", "10")),
		DBConnLifetime: parseDur(getenv("DB_CONN_LIFETIME", "30m")),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
