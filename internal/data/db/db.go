package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/domain"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

// Service owns the gorm handle and its underlying pool.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects with the configured driver and pings once so an unreachable
// store fails here rather than on first use.
func Open(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService", "driver", cfg.Driver)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		dialector = postgres.Open(cfg.DSN())
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// The ping below owns the reachability check so a failure closes the pool.
	gdb, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableAutomaticPing:                     true,
		Logger:                                   gormLog,
	})
	if err != nil {
		closePool(gdb)
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", cfg.Driver, err)
	}
	serviceLog.Info("Database connected")

	return &Service{db: gdb, log: serviceLog}, nil
}

func closePool(gdb *gorm.DB) {
	if gdb == nil || gdb.Config == nil || gdb.ConnPool == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Wrap adopts an existing handle, mainly for tests.
func Wrap(gdb *gorm.DB, logg *logger.Logger) *Service {
	return &Service{db: gdb, log: logg.With("service", "DBService")}
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

// Close releases the pool. Safe to call more than once.
func (s *Service) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.log.Info("Closing database connection")
	return sqlDB.Close()
}

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.Lesson{},
	)
}
