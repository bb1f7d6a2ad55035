package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/lessonbridge-backend/internal/config"
	"github.com/yungbote/lessonbridge-backend/internal/data/db"
	apihttp "github.com/yungbote/lessonbridge-backend/internal/http"
	"github.com/yungbote/lessonbridge-backend/internal/observability"
	"github.com/yungbote/lessonbridge-backend/internal/platform/envutil"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
)

const serviceName = "lessonbridge-backend"

type Options struct {
	// Lookup overrides the process environment.
	Lookup envutil.LookupFunc
	// Log overrides the logger built from LOG_MODE.
	Log *logger.Logger
}

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      config.ServerConfig
	Repos    Repos
	Services Services
	Clients  Clients
	Hub      *realtime.Hub
	Metrics  *observability.Metrics
	Server   *apihttp.Server

	store        *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// New connects to the data store and wires everything on top of it. When it
// returns an error nothing is left open.
func New(ctx context.Context, opts Options) (*App, error) {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = envutil.OS
	}
	log := opts.Log
	if log == nil {
		l, err := logger.New(envutil.String(lookup, "LOG_MODE", "development", nil))
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		log = l
	}

	log.Info("Loading environment variables...")
	cfg := config.LoadServerConfig(lookup, log)

	store, err := db.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init %s: %w", cfg.DB.Driver, err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("%s automigrate: %w", cfg.DB.Driver, err)
	}
	theDB := store.DB()

	a := &App{
		Log:   log,
		DB:    theDB,
		Cfg:   cfg,
		store: store,
	}

	a.otelShutdown = observability.InitOTel(ctx, log, lookup, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Clients = clients

	a.Hub = realtime.NewHub(log)
	a.Metrics = observability.NewMetrics()
	a.Repos = wireRepos(theDB, log)
	a.Services = wireServices(theDB, log, a.Repos, a.Hub, clients)

	handlers := wireHandlers(log, cfg, a.Services, a.Hub, a.Metrics)
	middleware := wireMiddleware(log, cfg)
	a.Server = apihttp.NewServer(":"+cfg.Port, routerConfig(log, cfg, a.Metrics, handlers, middleware))
	return a, nil
}

// Start begins background work: forwarding bus messages into the local hub.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Clients.Bus != nil {
		if err := a.Clients.Bus.StartForwarder(ctx, a.Hub.Broadcast); err != nil {
			return fmt.Errorf("start bus forwarder: %w", err)
		}
	}
	return nil
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *App) Serve(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Server.Run(ctx)
}

// RunRealtime starts bus forwarding and, once ctx is cancelled, closes every
// open socket. Hijacked websocket connections are not drained by the HTTP
// server's shutdown.
func (a *App) RunRealtime(ctx context.Context) error {
	if a == nil || a.Hub == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	n := a.Hub.CloseAll()
	a.Log.Info("Realtime clients closed", "count", n)
	return nil
}

// Close releases every resource New acquired. It is safe to call more than
// once and on a partially built App.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	var errs []error
	if err := a.Clients.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close clients: %w", err))
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown otel: %w", err))
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
		a.store = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return errors.Join(errs...)
}
