package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/domain"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

func TestOpenSQLiteMigratesAndCloses(t *testing.T) {
	cfg := config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "lessons.db"),
	}
	svc, err := Open(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, svc.AutoMigrateAll())
	require.True(t, svc.DB().Migrator().HasTable(&domain.Lesson{}))
	require.True(t, svc.DB().Migrator().HasColumn(&domain.Lesson{}, "check_in_at"))

	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())
}

func TestOpenUnreachablePostgres(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	cfg := config.DBConfig{
		Driver:  config.DriverPostgres,
		Host:    "127.0.0.1",
		Port:    "1",
		User:    "postgres",
		Name:    "lessonbridge",
		SSLMode: "disable",
	}
	svc, err := Open(context.Background(), cfg, logger.NewNop())
	require.Error(t, err)
	require.Nil(t, svc)
}

func TestCloseNilService(t *testing.T) {
	var svc *Service
	require.NoError(t, svc.Close())
}
