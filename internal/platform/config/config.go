// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures the process configuration.
type Server struct {
	Addr          string
	AdminToken    string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// PostgresDSN empty means in-memory stores.
	PostgresDSN string

	Redis RedisConfig

	// SweepSchedule is a cron expression for the overdue sweep.
	// Empty disables the scheduler.
	SweepSchedule string

	// RoleMappingPath optionally overrides the built-in role mapping table
	// with a YAML file.
	RoleMappingPath string

	NewHireDueDays int
	PeriodicYears  int
	PolicyValidity time.Duration
}

// RedisConfig captures the obligation cache connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("COMPLY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		AdminToken:    os.Getenv("COMPLY_ADMIN_TOKEN"),
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     envDefault("JWT_ISSUER", "comply"),
		JWTAudience:   envDefault("JWT_AUDIENCE", "comply-api"),
		PostgresDSN:   os.Getenv("COMPLY_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("COMPLY_REDIS_URL"),
			PoolSize:     envInt("COMPLY_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("COMPLY_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("COMPLY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("COMPLY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("COMPLY_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     envDuration("COMPLY_OBLIGATION_CACHE_TTL", 5*time.Minute),
		},
		SweepSchedule:   envDefault("COMPLY_SWEEP_SCHEDULE", "@hourly"),
		RoleMappingPath: os.Getenv("COMPLY_ROLE_MAPPING_FILE"),
		NewHireDueDays:  envInt("COMPLY_NEW_HIRE_DUE_DAYS", 30),
		PeriodicYears:   envInt("COMPLY_PERIODIC_YEARS", 3),
		PolicyValidity:  envDuration("COMPLY_POLICY_VALIDITY", 5*365*24*time.Hour),
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
