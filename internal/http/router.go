package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/lessonbridge-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lessonbridge-backend/internal/http/middleware"
	"github.com/yungbote/lessonbridge-backend/internal/observability"
	"github.com/yungbote/lessonbridge-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	CORSOrigins    []string
	Metrics        *observability.Metrics
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	ConfigHandler   *httpH.ConfigHandler
	LessonHandler   *httpH.LessonHandler
	RealtimeHandler *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.CORSOrigins))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	// Realtime
	if cfg.RealtimeHandler != nil {
		r.GET("/ws", cfg.RealtimeHandler.Socket)
	}

	api := r.Group("/api")
	{
		if cfg.ConfigHandler != nil {
			api.GET("/config", cfg.ConfigHandler.GetClientConfig)
		}
		if cfg.LessonHandler != nil {
			api.GET("/lessons/:id", cfg.LessonHandler.GetLesson)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		if cfg.LessonHandler != nil {
			protected.POST("/lessons/:id/check-in", cfg.LessonHandler.CheckIn)
		}
	}

	return r
}
