package config

import (
	"fmt"
	"strings"

	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN renders the driver-specific connection string.
func (c DBConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}

type RedisConfig struct {
	Addr    string
	Channel string
}

type ServerConfig struct {
	Port         string
	LogMode      string
	Environment  string
	DB           DBConfig
	Redis        RedisConfig
	JWTSecretKey string
	CORSOrigins  []string
	Client       ClientConfig
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func LoadServerConfig(lookup envutil.LookupFunc, log *logger.Logger) ServerConfig {
	if lookup == nil {
		lookup = envutil.OS
	}
	driver := strings.ToLower(envutil.String(lookup, "DB_DRIVER", DriverPostgres, log))
	if driver != DriverSQLite {
		driver = DriverPostgres
	}
	return ServerConfig{
		Port:        envutil.String(lookup, "PORT", "3334", log),
		LogMode:     envutil.String(lookup, "LOG_MODE", "development", log),
		Environment: envutil.String(lookup, "APP_ENV", "development", log),
		DB: DBConfig{
			Driver:     driver,
			Host:       envutil.String(lookup, "POSTGRES_HOST", "localhost", log),
			Port:       envutil.String(lookup, "POSTGRES_PORT", "5432", log),
			User:       envutil.String(lookup, "POSTGRES_USER", "postgres", log),
			Password:   envutil.String(lookup, "POSTGRES_PASSWORD", "", log),
			Name:       envutil.String(lookup, "POSTGRES_NAME", "lessonbridge", log),
			SSLMode:    envutil.String(lookup, "POSTGRES_SSLMODE", "disable", log),
			SQLitePath: envutil.String(lookup, "SQLITE_PATH", "lessonbridge.db", log),
		},
		Redis: RedisConfig{
			Addr:    strings.TrimSpace(envutil.String(lookup, "REDIS_ADDR", "", log)),
			Channel: envutil.String(lookup, "REDIS_CHANNEL", "lesson-events", log),
		},
		JWTSecretKey: envutil.String(lookup, "JWT_SECRET_KEY", "", nil),
		CORSOrigins:  envutil.List(lookup, "CORS_ALLOW_ORIGINS", defaultCORSOrigins),
		Client:       LoadClientConfig(lookup, log),
	}
}
