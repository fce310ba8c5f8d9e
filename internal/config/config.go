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

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	BaseURL        string        // public base URL used to build shareable addresses
	PlatformFile   string        // path to a platforms.yaml override file (optional, empty = built-ins only)
	ReloadInterval time.Duration // interval to reload platforms.yaml (default: 1h)

	SessionTTL   time.Duration // idle lifetime of a page session (default: 30m)
	SessionLimit int           // max live page sessions (default: 1024)
	NoticeTTL    time.Duration // how long transient notices stay visible (default: 3s)
	CacheSize    int           // local link cache capacity (default: 512)

	// Redis
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
	RedisWarnThreshold    int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MSL_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MSL_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MSL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MSL_PRETTY_LOG", true),

		// Pages
		BaseURL:        requireEnv("MSL_BASE_URL"),
		PlatformFile:   getenv("MSL_PLATFORM_FILE", ""), // Optional, empty = built-in catalog only
		ReloadInterval: mustDuration("MSL_RELOAD_INTERVAL", time.Hour),

		// Sessions
		SessionTTL:   mustDuration("MSL_SESSION_TTL", 30*time.Minute),
		SessionLimit: getenvInt("MSL_SESSION_LIMIT", 1024),
		NoticeTTL:    mustDuration("MSL_NOTICE_TTL", 3*time.Second),
		CacheSize:    getenvInt("MSL_CACHE_SIZE", 512),

		// Redis settings
		RedisAddr:             requireEnv("MSL_REDIS_ADDR"),
		RedisUser:             getenv("MSL_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("MSL_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("MSL_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("MSL_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: MSL_REDIS_PASSWORD is required when MSL_REDIS_PASSWORD_REQUIRED=true")
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
