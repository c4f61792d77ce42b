package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per dashboard request, must cover APITimeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Remote booking API
	APIURL     string        // ex: "http://localhost:8081"
	APITimeout time.Duration // per remote call (ex: 10s)

	// Store
	UndoWindow      time.Duration // how long a delete can be undone (default: 5s)
	RefreshInterval time.Duration // background reload of bookings (0 = disabled)
	DefaultPageSize int           // page size when no preference is stored
	PrefsKey        string        // storage key of the UI preferences blob

	// Redis (optional, empty address => preferences kept in memory)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
}

// RedisEnabled reports whether preferences are stored in Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKINGDASH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("BOOKINGDASH_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BOOKINGDASH_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("BOOKINGDASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKINGDASH_PRETTY_LOG", true),

		// Remote API
		APIURL:     requireEnv("BOOKINGDASH_API_URL"),
		APITimeout: mustDuration("BOOKINGDASH_API_TIMEOUT", 10*time.Second),

		// Store
		UndoWindow:      mustDuration("BOOKINGDASH_UNDO_WINDOW", 5*time.Second),
		RefreshInterval: mustDuration("BOOKINGDASH_REFRESH_INTERVAL", time.Minute),
		DefaultPageSize: getenvInt("BOOKINGDASH_DEFAULT_PAGE_SIZE", 10),
		PrefsKey:        getenv("BOOKINGDASH_PREFS_KEY", "bookingdash:ui-prefs"),

		// Redis settings
		RedisAddr:             getenv("BOOKINGDASH_REDIS_ADDR", ""),
		RedisUser:             getenv("BOOKINGDASH_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("BOOKINGDASH_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("BOOKINGDASH_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("BOOKINGDASH_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
	}

	if cfg.DefaultPageSize < 1 {
		panic(fmt.Sprintf("❌ FATAL: BOOKINGDASH_DEFAULT_PAGE_SIZE must be >= 1, got %d", cfg.DefaultPageSize))
	}
	if cfg.UndoWindow <= 0 {
		panic("❌ FATAL: BOOKINGDASH_UNDO_WINDOW must be > 0")
	}
	if cfg.RefreshInterval < 0 {
		panic("❌ FATAL: BOOKINGDASH_REFRESH_INTERVAL must be >= 0")
	}

	// Validate Redis password configuration
	if cfg.RedisEnabled() && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: BOOKINGDASH_REDIS_PASSWORD is required when BOOKINGDASH_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// BackendConfig configures the reference booking API (cmd/bookingapi).
type BackendConfig struct {
	ListenPort      string
	ShutdownTimeout time.Duration
	SeedFile        string // optional YAML seed, empty => start empty
	LogLevel        string
	PrettyLog       bool
}

func LoadBackend() *BackendConfig {
	return &BackendConfig{
		ListenPort:      getenv("BOOKINGAPI_LISTEN_PORT", ":8081"),
		ShutdownTimeout: mustDuration("BOOKINGAPI_SHUTDOWN_TIMEOUT", 5*time.Second),
		SeedFile:        getenv("BOOKINGAPI_SEED_FILE", ""),
		LogLevel:        getenv("BOOKINGAPI_LOG_LEVEL", "info"),
		PrettyLog:       mustBool("BOOKINGAPI_PRETTY_LOG", true),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
