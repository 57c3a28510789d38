package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr           string
	Environment    string
	MaxUploadBytes int64
	RequestTimeout time.Duration
	Log            Log
	Database       Database
	Analyzer       Analyzer
	Redis          RedisConfig
	Kafka          Kafka
}

// Log selects the slog handler.
type Log struct {
	Level  string
	Format string
}

// Database points at the SQLite contract store file.
type Database struct {
	Path        string
	BusyTimeout time.Duration
}

// Analyzer configures the remote document analysis service.
// An empty URL means document analysis is unavailable.
type Analyzer struct {
	URL              string
	APIKey           string
	Timeout          time.Duration
	FailureThreshold int
	Cooldown         time.Duration
}

// RedisConfig configures the optional notification publisher.
type RedisConfig struct {
	URL          string
	Channel      string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures the optional participant event publisher.
type Kafka struct {
	Brokers          string
	ParticipantTopic string
}

const (
	DefaultAddr           = ":8080"
	DefaultDatabasePath   = "realestate.db"
	DefaultNotifyChannel  = "realty:notifications"
	DefaultParticipants   = "realty.participants"
	DefaultMaxUploadBytes = 10 << 20
	DefaultRequestTimeout = 60 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:           envOr("REALTY_ADDR", DefaultAddr),
		Environment:    envOr("ENVIRONMENT", "development"),
		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		Log: Log{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: strings.ToLower(envOr("LOG_FORMAT", "json")),
		},
		Database: Database{
			Path:        envOr("DATABASE_PATH", DefaultDatabasePath),
			BusyTimeout: envDuration("DATABASE_BUSY_TIMEOUT", 5*time.Second),
		},
		Analyzer: Analyzer{
			URL:              strings.TrimRight(os.Getenv("DOCUMENT_ANALYZER_URL"), "/"),
			APIKey:           os.Getenv("DOCUMENT_ANALYZER_API_KEY"),
			Timeout:          envDuration("DOCUMENT_ANALYZER_TIMEOUT", 15*time.Second),
			FailureThreshold: int(envInt64("DOCUMENT_ANALYZER_FAILURE_THRESHOLD", 5)),
			Cooldown:         envDuration("DOCUMENT_ANALYZER_COOLDOWN", 30*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			Channel:      envOr("NOTIFY_CHANNEL", DefaultNotifyChannel),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: Kafka{
			Brokers:          os.Getenv("KAFKA_BROKERS"),
			ParticipantTopic: envOr("KAFKA_PARTICIPANTS_TOPIC", DefaultParticipants),
		},
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Unparseable values fall back to the default rather than failing startup.
func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
