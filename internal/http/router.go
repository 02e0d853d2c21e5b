package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/devroster-backend/internal/http/handlers"
	httpMW "github.com/yungbote/devroster-backend/internal/http/middleware"
	"github.com/yungbote/devroster-backend/internal/observability"
	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	CORSOrigins []string
	Tracing     bool

	DeveloperHandler *httpH.DeveloperHandler
	DraftHandler     *httpH.DraftHandler
	RealtimeHandler  *httpH.RealtimeHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(httpMW.Recovery(cfg.Log))
	if cfg.Tracing {
		r.Use(otelgin.Middleware("devroster"))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Developers
		if cfg.DeveloperHandler != nil {
			api.GET("/developers", cfg.DeveloperHandler.List)
			api.POST("/developers", cfg.DeveloperHandler.Save)
			api.GET("/developers/:id", cfg.DeveloperHandler.Get)
			api.PUT("/developers/:id", cfg.DeveloperHandler.Update)
			api.DELETE("/developers/:id", cfg.DeveloperHandler.Remove)
			api.POST("/developers/:id/edit", cfg.DeveloperHandler.StageForEdit)
		}

		// Draft (add/edit form)
		if cfg.DraftHandler != nil {
			api.GET("/draft", cfg.DraftHandler.Get)
			api.POST("/draft", cfg.DraftHandler.Open)
			api.PATCH("/draft", cfg.DraftHandler.Update)
			api.DELETE("/draft", cfg.DraftHandler.Clear)
			api.POST("/draft/frameworks", cfg.DraftHandler.AddFramework)
			api.DELETE("/draft/frameworks/:index", cfg.DraftHandler.RemoveFramework)
			api.POST("/draft/save", cfg.DraftHandler.Save)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			api.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}
	}

	return r
}
