package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"boda-backend/layoutsync"
	"boda-backend/seating"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	raw := envOrDefault(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️ ignoring %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

// envDuration accepts Go durations ("45s") and bare seconds ("45").
func envDuration(key string, def time.Duration) time.Duration {
	raw := envOrDefault(key, "")
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	log.Printf("⚠️ ignoring %s=%q, using %s", key, raw, def)
	return def
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(envOrDefault(key, "false"))
	return b
}

func Port() string { return envOrDefault("PORT", "8080") }

// LayoutSlots is the number of slots every layout has.
func LayoutSlots() int { return envInt("LAYOUT_SLOTS", seating.DefaultSlots) }

func PollInterval() time.Duration {
	return envDuration("POLL_INTERVAL", layoutsync.DefaultPollInterval)
}

func StoreTimeout() time.Duration {
	return envDuration("STORE_TIMEOUT", layoutsync.DefaultStoreTimeout)
}

// APIBaseURL is where the mesas CLI finds the REST API.
func APIBaseURL() string {
	return strings.TrimRight(envOrDefault("MESAS_API_URL", "http://localhost:8080"), "/")
}

// UploadDir is where inspiration images and document files are written.
func UploadDir() string { return envOrDefault("UPLOAD_DIR", "./uploads") }

func SeedGuests() bool { return envBool("SEED_GUESTS") }
