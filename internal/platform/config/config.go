package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Server            Server
	Log               Log
	Redis             RedisConfig
	Database          DatabaseConfig
	Kafka             KafkaConfig
	AddressSessionTTL time.Duration
	PurgeInterval     time.Duration
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Log selects the slog handler and level.
type Log struct {
	Level  string
	Format string
}

// RedisConfig configures the session store connection. An empty URL selects
// the in-memory session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the outcome ledger connection. An empty URL
// selects the in-memory ledger.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// KafkaConfig configures outcome event publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers      []string
	OutcomeTopic string
	Partitions   int
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var errs []error
	duration := func(key string, def time.Duration) time.Duration {
		d, err := envDuration(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return d
	}
	integer := func(key string, def int) int {
		n, err := envInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}

	cfg := Config{
		Server: Server{
			Addr:            envString("CLEANHOME_ADDR", ":8080"),
			ShutdownTimeout: duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: Log{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    integer("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    integer("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: duration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:      envList("KAFKA_BROKERS"),
			OutcomeTopic: envString("PAYMENT_OUTCOME_TOPIC", "cleanhome.payment.outcomes"),
			Partitions:   integer("PAYMENT_OUTCOME_PARTITIONS", 3),
		},
		AddressSessionTTL: duration("ADDRESS_SESSION_TTL", 30*time.Minute),
		PurgeInterval:     duration("ADDRESS_PURGE_INTERVAL", time.Minute),
	}
	if len(errs) > 0 {
		return Config{}, errs[0]
	}
	if cfg.AddressSessionTTL <= 0 {
		return Config{}, fmt.Errorf("ADDRESS_SESSION_TTL must be positive")
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
