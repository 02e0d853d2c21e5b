package app

import (
	"strings"
	"time"

	"github.com/yungbote/devroster-backend/internal/platform/envutil"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port            int
	LogMode         string
	SeedFile        string
	Store           string
	SQLiteDSN       string
	RedisAddr       string
	RedisChannel    string
	CORSOrigins     []string
	MetricsEnabled  bool
	OtelEnabled     bool
	OtelEndpoint    string
	OtelSampleRatio float64
	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.Int("PORT", 8080),
		LogMode:         envutil.String("LOG_MODE", "development"),
		SeedFile:        envutil.String("SEED_FILE", ""),
		Store:           strings.ToLower(envutil.String("DEVELOPER_STORE", StoreMemory)),
		SQLiteDSN:       envutil.String("SQLITE_DSN", ""),
		RedisAddr:       envutil.String("REDIS_ADDR", ""),
		RedisChannel:    envutil.String("REDIS_CHANNEL", "devroster.events"),
		CORSOrigins:     envutil.List("CORS_ORIGINS", nil),
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", true),
		OtelEnabled:     envutil.Bool("OTEL_ENABLED", false),
		OtelEndpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OtelSampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 1),
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
	switch cfg.Store {
	case StoreMemory, StoreSQLite:
	default:
		if log != nil {
			log.Warn("Unknown DEVELOPER_STORE; using memory", "store", cfg.Store)
		}
		cfg.Store = StoreMemory
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return cfg
}
