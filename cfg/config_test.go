package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "APP_PORT", "NODE_ID", "CACHE_ENABLED", "CACHE_TTL_MINUTES",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"POSTGRES_SSLMODE", "POSTGRES_MAX_CONNS",
		"SCHEDULE_SOURCE", "SCHEDULE_FILE", "SCHEDULE_REFRESH_INTERVAL", "RABBITMQ_URL", "SCHEDULE_CHANGED_QUEUE",
		"SEARCH_MIN_LAYOVER_MINUTES", "SEARCH_MAX_LAYOVER_HOURS", "SEARCH_WORKERS", "SEARCH_TIMEOUT",
		"SEARCH_REPOSITORY_RPS", "SEARCH_REPOSITORY_BURST",
		"OTEL_SERVICE_NAME", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_FileSourceDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("SCHEDULE_SOURCE", "file")
	t.Setenv("SCHEDULE_FILE", "db/seed/schedule.yaml")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.AppPort)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, "db/seed/schedule.yaml", c.Schedule.File)
	assert.Equal(t, "schedule.changed", c.Schedule.ChangedQueue)
	assert.Equal(t, 5*time.Minute, c.Schedule.RefreshInterval)
	assert.Equal(t, SearchConfig{
		MinLayoverMinutes: 90,
		MaxLayoverHours:   12,
		Workers:           8,
		Timeout:           5 * time.Second,
		RepositoryRPS:     200,
		RepositoryBurst:   50,
	}, c.Search)
	assert.Equal(t, "flightconnect", c.Observability.ServiceName)
	assert.Equal(t, int64(1), c.NodeID)
}

func TestLoad_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "flights")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "schedule")
	t.Setenv("SEARCH_TIMEOUT", "2s")
	t.Setenv("SEARCH_WORKERS", "16")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ScheduleSourcePostgres, c.Schedule.Source)
	assert.Equal(t, "redis:6379", c.RedisConfig.Addr())
	assert.Equal(t, "postgres://flights:secret@db:5432/schedule?sslmode=disable", c.PostgresConfig.DSN())
	assert.Equal(t, 2*time.Second, c.Search.Timeout)
	assert.Equal(t, 16, c.Search.Workers)
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEARCH_WORKERS", "many")
	t.Setenv("SEARCH_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"missing env: APP_ENV",
		"missing env: REDIS_HOST",
		"missing env: POSTGRES_HOST",
		"conversion failed env: SEARCH_WORKERS",
		"conversion failed env: SEARCH_TIMEOUT",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoad_UnknownSource(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("SCHEDULE_SOURCE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEDULE_SOURCE")
}
