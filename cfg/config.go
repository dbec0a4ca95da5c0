package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	ScheduleSourcePostgres       = "postgres"
	ScheduleSourcePostgresDirect = "postgres-direct"
	ScheduleSourceFile           = "file"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

type ScheduleConfig struct {
	Source          string
	File            string
	RefreshInterval time.Duration
	RabbitMQURL     string
	ChangedQueue    string
}

type SearchConfig struct {
	MinLayoverMinutes int
	MaxLayoverHours   int
	Workers           int
	Timeout           time.Duration
	RepositoryRPS     float64
	RepositoryBurst   int
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
}

type Config struct {
	AppEnv          string
	AppPort         string
	NodeID          int64
	CacheEnabled    bool
	CacheTTLMinutes int
	RedisConfig     RedisConfig
	PostgresConfig  PostgresConfig
	Schedule        ScheduleConfig
	Search          SearchConfig
	Observability   ObservabilityConfig
}

// Load reads the environment, optionally seeded from a .env file in the working directory.
// Every problem found is reported at once.
func Load() (*Config, error) {
	var errs []error

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := envOr("APP_PORT", "8080")

	cacheEnabled := envBool("CACHE_ENABLED", true, &errs)
	var redis RedisConfig
	if cacheEnabled {
		redis = RedisConfig{
			Host:     mustEnv("REDIS_HOST", &errs),
			Port:     mustEnv("REDIS_PORT", &errs),
			Password: os.Getenv("REDIS_PASSWORD"),
		}
	}

	schedule := ScheduleConfig{
		Source:          envOr("SCHEDULE_SOURCE", ScheduleSourcePostgres),
		RefreshInterval: envDuration("SCHEDULE_REFRESH_INTERVAL", 5*time.Minute, &errs),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		ChangedQueue:    envOr("SCHEDULE_CHANGED_QUEUE", "schedule.changed"),
	}

	var postgres PostgresConfig
	switch schedule.Source {
	case ScheduleSourcePostgres, ScheduleSourcePostgresDirect:
		postgres = PostgresConfig{
			Host:     mustEnv("POSTGRES_HOST", &errs),
			Port:     envOr("POSTGRES_PORT", "5432"),
			User:     mustEnv("POSTGRES_USER", &errs),
			Password: mustEnv("POSTGRES_PASSWORD", &errs),
			DBName:   mustEnv("POSTGRES_DB", &errs),
			SSLMode:  envOr("POSTGRES_SSLMODE", "disable"),
			MaxConns: envInt("POSTGRES_MAX_CONNS", 10, &errs),
		}
	case ScheduleSourceFile:
		schedule.File = mustEnv("SCHEDULE_FILE", &errs)
	default:
		errs = append(errs, errors.New("invalid env: SCHEDULE_SOURCE must be postgres, postgres-direct or file"))
	}

	search := SearchConfig{
		MinLayoverMinutes: envInt("SEARCH_MIN_LAYOVER_MINUTES", 90, &errs),
		MaxLayoverHours:   envInt("SEARCH_MAX_LAYOVER_HOURS", 12, &errs),
		Workers:           envInt("SEARCH_WORKERS", 8, &errs),
		Timeout:           envDuration("SEARCH_TIMEOUT", 5*time.Second, &errs),
		RepositoryRPS:     envFloat("SEARCH_REPOSITORY_RPS", 200, &errs),
		RepositoryBurst:   envInt("SEARCH_REPOSITORY_BURST", 50, &errs),
	}
	if search.Workers < 1 {
		errs = append(errs, errors.New("invalid env: SEARCH_WORKERS must be at least 1"))
	}

	cacheTTLMinutes := envInt("CACHE_TTL_MINUTES", 10, &errs)
	nodeID := envInt("NODE_ID", 1, &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:          appEnv,
		AppPort:         appPort,
		NodeID:          int64(nodeID),
		CacheEnabled:    cacheEnabled,
		CacheTTLMinutes: cacheTTLMinutes,
		RedisConfig:     redis,
		PostgresConfig:  postgres,
		Schedule:        schedule,
		Search:          search,
		Observability: ObservabilityConfig{
			ServiceName:  envOr("OTEL_SERVICE_NAME", "flightconnect"),
			Environment:  appEnv,
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return def
	}
	return n
}

func envFloat(key string, def float64, errs *[]error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return def
	}
	return f
}

func envBool(key string, def bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return def
	}
	return b
}

func envDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, errors.New("conversion failed env: "+key))
		return def
	}
	return d
}
