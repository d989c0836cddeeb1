package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	UpstreamBaseURL string
	UpstreamToken   string
	UpstreamTimeout time.Duration

	// PrefetchMonths is how many months beyond the initial one a calendar
	// window spans.
	PrefetchMonths int
	SessionTTL     time.Duration
	PurgeInterval  time.Duration
	IdempotencyTTL time.Duration

	KafkaBrokers     []string
	KafkaTopicPrefix string
	EventSource      string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		UpstreamBaseURL:  os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamToken:    os.Getenv("UPSTREAM_TOKEN"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		EventSource:      getEnv("EVENT_SOURCE", "jatajar-calendar"),
	}

	timeout, err := parseDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.UpstreamTimeout = timeout

	prefetch, err := parseIntEnv("PREFETCH_MONTHS", 2)
	if err != nil {
		return Config{}, err
	}
	if prefetch < 0 {
		return Config{}, fmt.Errorf("PREFETCH_MONTHS must not be negative")
	}
	cfg.PrefetchMonths = prefetch

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	purge, err := parseDurationEnv("SESSION_PURGE_INTERVAL", time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.PurgeInterval = purge

	idempTTL, err := parseDurationEnv("IDEMP_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempTTL

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, raw := range strings.Split(brokers, ",") {
			if b := strings.TrimSpace(raw); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.UpstreamBaseURL == "" {
		return Config{}, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
