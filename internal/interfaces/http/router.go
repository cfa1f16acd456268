// Package http assembles the REST surface of cmd/apiserver: routing,
// lifecycle management, and the gin middleware chain.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/interfaces/http/handlers"
)

// RouterConfig aggregates every handler and cross-cutting dependency the
// route tree needs.
type RouterConfig struct {
	CompileHandler *handlers.CompileHandler
	HealthHandler  *handlers.HealthHandler
	MetricsHandler gin.HandlerFunc
	Logger         logging.Logger
}

// NewRouter builds the complete route tree.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(cfg.Logger))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", cfg.MetricsHandler)
	}

	v1 := r.Group("/v1")
	{
		if cfg.CompileHandler != nil {
			v1.POST("/compile", cfg.CompileHandler.Handle)
		}
	}

	return r
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if logger == nil {
			return
		}
		logger.Info("request",
			logging.String("method", c.Request.Method),
			logging.String("path", c.Request.URL.Path),
			logging.Int("status", c.Writer.Status()))
	}
}
