package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Zippopotam ZIP lookup configuration.
	ZIPAPIURL    string
	ZIPTimeout   time.Duration
	ZIPCacheSize int
	ZIPCacheTTL  time.Duration

	// RegionsFile is a GeoJSON FeatureCollection. Empty uses the embedded catalog.
	RegionsFile string

	// Optional shared Redis cache for ZIP lookups.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration

	// Optional Kafka publishing of lookup events.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaLookupTopic string
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	zipTimeout, err := parsePositiveDuration("ZIP_TIMEOUT", "8s")
	if err != nil {
		return nil, err
	}
	zipCacheTTL, err := parsePositiveDuration("ZIP_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}
	redisTTL, err := parsePositiveDuration("REDIS_TTL", "168h")
	if err != nil {
		return nil, err
	}

	redisDB, err := parseRedisDB()
	if err != nil {
		return nil, err
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ZIPAPIURL:    sharedcfg.EnvOrDefault("ZIP_API_URL", "https://api.zippopotam.us/us"),
		ZIPTimeout:   zipTimeout,
		ZIPCacheSize: parseZIPCacheSize(),
		ZIPCacheTTL:  zipCacheTTL,

		RegionsFile: os.Getenv("REGIONS_FILE"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaLookupTopic: sharedcfg.EnvOrDefault("KAFKA_LOOKUP_TOPIC", "location-lookups"),
	}

	if u, err := url.Parse(cfg.ZIPAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.New("invalid ZIP_API_URL")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaLookupTopic == "" {
		return nil, errors.New("KAFKA_LOOKUP_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseZIPCacheSize() int {
	if s := os.Getenv("ZIP_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func parseRedisDB() (int, error) {
	s := os.Getenv("REDIS_DB")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid REDIS_DB")
	}
	return n, nil
}
