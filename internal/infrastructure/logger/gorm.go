package logger

import (
	"context"
	"errors"
	"time"

	"github.com/stockpile/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold is used when no slow query threshold is configured.
const DefaultSlowThreshold = 200 * time.Millisecond

// GormLogger writes GORM statements to zap, tagged with the request id and
// the calling user and tenant.
type GormLogger struct {
	logger   *zap.Logger
	level    gormlogger.LogLevel
	slowOver time.Duration
}

// NewGormLogger creates a GORM logger. A zero slow threshold means
// DefaultSlowThreshold.
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &GormLogger{logger: zapLogger.Named("gorm"), level: level, slowOver: slowThreshold}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface. Missing rows are not errors here:
// repositories turn them into 404s. Unique violations are logged as warnings
// since they surface as a conflict to the caller.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && errors.Is(err, gorm.ErrDuplicatedKey) && l.level >= gormlogger.Warn:
		l.logger.Warn("SQL unique violation", l.fields(ctx, elapsed, fc, zap.Error(err))...)
	case err != nil && l.level >= gormlogger.Error:
		l.logger.Error("SQL Error", l.fields(ctx, elapsed, fc, zap.Error(err))...)
	case err == nil && elapsed > l.slowOver && l.level >= gormlogger.Warn:
		l.logger.Warn("Slow SQL", l.fields(ctx, elapsed, fc, zap.Duration("threshold", l.slowOver))...)
	case err == nil && l.level >= gormlogger.Info:
		l.logger.Debug("SQL Query", l.fields(ctx, elapsed, fc)...)
	}
}

func (l *GormLogger) fields(ctx context.Context, elapsed time.Duration, fc func() (string, int64), extra ...zap.Field) []zap.Field {
	sql, rows := fc()
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if actor, ok := shared.ActorFrom(ctx); ok {
		fields = append(fields, ActorFields(actor)...)
	}
	return append(fields, extra...)
}

// MapGormLogLevel maps the application log level to a GORM log level
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
