package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the server settings read from the environment
type Config struct {
	Port               string
	DBPath             string
	JWTSecret          string
	SpeciesTablePath   string        // empty means the embedded table
	TravelCacheTTL     time.Duration // zero disables the travel cache
	RateLimitPerMinute int           // zero disables rate limiting
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration. Malformed numeric values fall back to
// their defaults with a warning.
func Load() *Config {
	cfg := &Config{
		Port:               getenv("PORT", ":8080"),
		DBPath:             getenv("DB_PATH", "./data/sightings/sightings.db"),
		JWTSecret:          getenv("JWT_SECRET", defaultJWTSecret),
		SpeciesTablePath:   os.Getenv("SPECIES_TABLE_PATH"),
		TravelCacheTTL:     5 * time.Minute,
		RateLimitPerMinute: 120,
	}

	if v := os.Getenv("TRAVEL_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			log.Printf("[Config] Invalid TRAVEL_CACHE_TTL %q, using %s", v, cfg.TravelCacheTTL)
		} else {
			cfg.TravelCacheTTL = ttl
		}
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("[Config] Invalid RATE_LIMIT_PER_MINUTE %q, using %d", v, cfg.RateLimitPerMinute)
		} else {
			cfg.RateLimitPerMinute = n
		}
	}

	if cfg.JWTSecret == defaultJWTSecret {
		log.Printf("[Config] JWT_SECRET not set, using the development secret")
	}

	return cfg
}
