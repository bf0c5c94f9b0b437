package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything read from the environment at boot. The loaded
// struct is passed explicitly to the components that need it.
type Config struct {
	Port     string
	DBDriver string // "mysql" or "sqlite"
	DBDSN    string

	// BaseURL is the public host encoded into table QR deep links.
	BaseURL    string
	UploadsDir string

	// RequestTTL is how long a bill/assistance request may stay pending
	// before the sweeper expires it.
	RequestTTL    time.Duration
	SweepInterval time.Duration

	RateLimit         int
	RateLimitInterval int
}

func Load() Config {
	return Config{
		Port:              getEnv("PORT", "8080"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBDSN:             getEnv("DB_DSN", "tableside.db"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		UploadsDir:        getEnv("UPLOADS_DIR", "public/uploads"),
		RequestTTL:        getDuration("REQUEST_TTL", 2*time.Minute),
		SweepInterval:     getDuration("SWEEP_INTERVAL", 15*time.Second),
		RateLimit:         getInt("RATE_LIMIT", 50),
		RateLimitInterval: getInt("RATE_LIMIT_INTERVAL", 1),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
