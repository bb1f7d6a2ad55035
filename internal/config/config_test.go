package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
)

func TestLoadClientConfigDefaults(t *testing.T) {
	cfg := LoadClientConfig(envutil.FromMap(nil), nil)
	require.Equal(t, "http://localhost:3334", cfg.APIURL)
	require.Equal(t, "http://localhost:3334", cfg.SocketURL)
}

func TestLoadClientConfigUsesEnvironmentVerbatim(t *testing.T) {
	cfg := LoadClientConfig(envutil.FromMap(map[string]string{
		EnvAPIURL:    "https://api.example.test/v1 ",
		EnvSocketURL: "wss://socket.example.test",
	}), nil)
	require.Equal(t, "https://api.example.test/v1 ", cfg.APIURL)
	require.Equal(t, "wss://socket.example.test", cfg.SocketURL)
}

func TestLoadClientConfigFromProcessEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://api.internal:9000")
	cfg := LoadClientConfig(nil, nil)
	require.Equal(t, "http://api.internal:9000", cfg.APIURL)
	require.Equal(t, DefaultSocketURL, cfg.SocketURL)
}

func TestLoadServerConfig(t *testing.T) {
	cfg := LoadServerConfig(envutil.FromMap(map[string]string{
		"DB_DRIVER":          "SQLite",
		"SQLITE_PATH":        "/tmp/lessons.db",
		"REDIS_ADDR":         " redis:6379 ",
		"CORS_ALLOW_ORIGINS": "https://app.example.test",
	}), nil)
	require.Equal(t, "3334", cfg.Port)
	require.Equal(t, DriverSQLite, cfg.DB.Driver)
	require.Equal(t, "/tmp/lessons.db", cfg.DB.DSN())
	require.Equal(t, "redis:6379", cfg.Redis.Addr)
	require.Equal(t, "lesson-events", cfg.Redis.Channel)
	require.Equal(t, []string{"https://app.example.test"}, cfg.CORSOrigins)
	require.Equal(t, DefaultAPIURL, cfg.Client.APIURL)
}

func TestPostgresDSN(t *testing.T) {
	cfg := LoadServerConfig(envutil.FromMap(map[string]string{
		"DB_DRIVER":         "mysql",
		"POSTGRES_PASSWORD": "pw",
	}), nil)
	require.Equal(t, DriverPostgres, cfg.DB.Driver)
	require.Equal(t, "postgres://postgres:pw@localhost:5432/lessonbridge?sslmode=disable", cfg.DB.DSN())
}

func TestLoadSmokeConfig(t *testing.T) {
	cfg := LoadSmokeConfig(envutil.FromMap(nil), nil)
	require.Equal(t, "http://localhost:3335", cfg.BaseURL)
	require.Equal(t, 10*time.Second, cfg.Timeout)
	require.Empty(t, cfg.LessonID)

	cfg = LoadSmokeConfig(envutil.FromMap(map[string]string{
		"SMOKE_BASE_URL":  "http://staging:3335/",
		"SMOKE_TIMEOUT":   "2s",
		"SMOKE_LESSON_ID": " lesson-1 ",
	}), nil)
	require.Equal(t, "http://staging:3335", cfg.BaseURL)
	require.Equal(t, 2*time.Second, cfg.Timeout)
	require.Equal(t, "lesson-1", cfg.LessonID)
}
