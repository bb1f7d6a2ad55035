package app

import (
	"github.com/yungbote/lessonbridge-backend/internal/config"
	apihttp "github.com/yungbote/lessonbridge-backend/internal/http"
	httpH "github.com/yungbote/lessonbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lessonbridge-backend/internal/http/middleware"
	"github.com/yungbote/lessonbridge-backend/internal/observability"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
	"github.com/yungbote/lessonbridge-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Config   *httpH.ConfigHandler
	Lesson   *httpH.LessonHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, cfg config.ServerConfig, svcs Services, hub *realtime.Hub, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Config:   httpH.NewConfigHandler(cfg.Client),
		Lesson:   httpH.NewLessonHandler(svcs.Lesson, svcs.CheckIn, metrics),
		Realtime: httpH.NewRealtimeHandler(log, realtime.NewSocketServer(hub, cfg.CORSOrigins), metrics),
	}
}

func wireMiddleware(log *logger.Logger, cfg config.ServerConfig) Middleware {
	log.Info("Wiring middleware...")
	auth := httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey)
	if !auth.Enabled() {
		log.Warn("JWT_SECRET_KEY unset; check-in endpoint is unauthenticated")
	}
	return Middleware{Auth: auth}
}

func routerConfig(log *logger.Logger, cfg config.ServerConfig, metrics *observability.Metrics, handlers Handlers, middleware Middleware) apihttp.RouterConfig {
	return apihttp.RouterConfig{
		Log:             log,
		ServiceName:     serviceName,
		CORSOrigins:     cfg.CORSOrigins,
		Metrics:         metrics,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		ConfigHandler:   handlers.Config,
		LessonHandler:   handlers.Lesson,
		RealtimeHandler: handlers.Realtime,
	}
}
