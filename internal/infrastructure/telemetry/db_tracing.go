package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in spans
	SlowQueryThresh time.Duration // queries slower than this are flagged
	DBName          string
}

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db and flags slow or failed queries
// on the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	cb := &slowQueryCallback{threshold: cfg.SlowQueryThresh}
	if err := cb.register(db); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh))
	return nil
}

type slowQueryCallback struct {
	threshold time.Duration
}

func (c *slowQueryCallback) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (c *slowQueryCallback) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || c.threshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > c.threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

func (c *slowQueryCallback) register(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("stockpile:trace_before_create", c.before),
		cb.Query().Before("gorm:query").Register("stockpile:trace_before_query", c.before),
		cb.Update().Before("gorm:update").Register("stockpile:trace_before_update", c.before),
		cb.Delete().Before("gorm:delete").Register("stockpile:trace_before_delete", c.before),
		cb.Row().Before("gorm:row").Register("stockpile:trace_before_row", c.before),
		cb.Raw().Before("gorm:raw").Register("stockpile:trace_before_raw", c.before),
		cb.Create().After("gorm:create").Register("stockpile:trace_after_create", c.after),
		cb.Query().After("gorm:query").Register("stockpile:trace_after_query", c.after),
		cb.Update().After("gorm:update").Register("stockpile:trace_after_update", c.after),
		cb.Delete().After("gorm:delete").Register("stockpile:trace_after_delete", c.after),
		cb.Row().After("gorm:row").Register("stockpile:trace_after_row", c.after),
		cb.Raw().After("gorm:raw").Register("stockpile:trace_after_raw", c.after),
	)
}
