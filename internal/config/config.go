// Package config loads application configuration from environment
// variables. Every knob has a default suitable for running the demo
// locally; only deployments override them.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.
type Config struct {
	Env        string // application environment (dev/test/prod)
	Port       string // HTTP port to listen on
	JWTSecret  string // secret used to sign access tokens
	AccessTTL  time.Duration
	BcryptCost int

	// MySQL is optional; when DBHost is empty the in-memory user store
	// is used instead.
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	// Upstream providers.
	WeatherBaseURL  string
	DefaultLat      string
	DefaultLon      string
	MarketBaseURL   string
	MarketAPIKey    string // empty -> fixture market provider
	MarketState     string
	UpstreamTimeout time.Duration
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "5000"),
		JWTSecret:  envStr("JWT_SECRET", "dev-insecure-secret"),
		AccessTTL:  envDur("ACCESS_TOKEN_TTL", 15*time.Minute),
		BcryptCost: envInt("BCRYPT_COST", 10),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: envStr("DB_PORT", "3306"),
		DBName: envStr("DB_NAME", "smartfarm"),

		WeatherBaseURL:  envStr("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		DefaultLat:      envStr("WEATHER_DEFAULT_LAT", "9.9312"), // Kochi
		DefaultLon:      envStr("WEATHER_DEFAULT_LON", "76.2673"),
		MarketBaseURL:   envStr("MARKET_BASE_URL", "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"),
		MarketAPIKey:    os.Getenv("MARKET_API_KEY"),
		MarketState:     envStr("MARKET_STATE", "Kerala"),
		UpstreamTimeout: envDur("UPSTREAM_TIMEOUT", 8*time.Second),
	}
}

// UseMySQL reports whether a database was configured.
func (c Config) UseMySQL() bool { return c.DBHost != "" }

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
