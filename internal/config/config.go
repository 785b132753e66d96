package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration from environment variables.
type Config struct {
	APIBaseURL  string        // iRail API root
	GTFSBaseURL string        // static schedule feed root
	Lang        string        // language parameter sent to the API
	OutputDir   string        // directory for the per-run CSV file
	FetchDelay  time.Duration // pause between vehicle fetches

	DBPath      string // SQLite archive path; empty disables the archive sink
	NATSURL     string // NATS server URL; empty disables publishing
	MetricsAddr string // /metrics listen address; empty disables the server

	Location *time.Location // timezone for rendered HH:MM timestamps
}

// Load reads configuration from .env (if present) and environment variables,
// falling back to defaults that match the original collector behavior.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  envStr("RAIL_API_URL", "https://api.irail.be"),
		GTFSBaseURL: envStr("RAIL_GTFS_URL", "https://gtfs.irail.be/nmbs/gtfs/latest"),
		Lang:        envStr("RAIL_LANG", "en"),
		OutputDir:   envStr("RAIL_OUTPUT_DIR", "."),
		FetchDelay:  envDuration("RAIL_FETCH_DELAY_MS", time.Second),
		DBPath:      envStr("RAIL_DB_PATH", ""),
		NATSURL:     envStr("RAIL_NATS_URL", ""),
		MetricsAddr: envStr("RAIL_METRICS_ADDR", ""),
		Location:    time.Local,
	}

	if tz := os.Getenv("RAIL_TZ"); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			cfg.Location = loc
		}
	}

	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}
