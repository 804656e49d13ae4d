package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockpile/backend/internal/infrastructure/config"
	"github.com/stockpile/backend/internal/infrastructure/logger"
	"github.com/stockpile/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineConfig carries what the global middleware chain needs.
type EngineConfig struct {
	Config *config.Config
	Logger *zap.Logger
	// Meter records request metrics. Nil disables them.
	Meter metric.Meter
	// CORS overrides the default CORS policy when it lists origins.
	CORS middleware.CORSConfig
}

// NewEngine builds a gin engine with the global middleware installed:
// request id, tracing, logging, recovery, metrics, security headers, CORS
// and the body limit.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	app := cfg.Config
	engine := gin.New()
	if err := engine.SetTrustedProxies(app.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	metrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, err
	}
	corsCfg := cfg.CORS
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg = middleware.DefaultCORSConfig()
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(app.Telemetry.ServiceName, app.Telemetry.Enabled),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		metrics,
		middleware.Secure(middleware.SecurityOptions(!app.IsProduction())),
		middleware.CORS(corsCfg),
	)
	if app.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(app.HTTP.MaxBodySize))
	}
	if app.Telemetry.Enabled {
		engine.Use(middleware.SpanErrorMarker())
	}
	return engine, nil
}
