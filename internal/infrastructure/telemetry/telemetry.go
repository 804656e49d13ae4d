// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// optional Pyroscope profiling.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockpile/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

// Providers bundles every telemetry provider started for the process.
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts the providers described by cfg. Disabled providers are
// returned as no-ops so callers never need nil checks.
func Setup(ctx context.Context, cfg config.TelemetryConfig, prof config.ProfilingConfig, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}
	var err error

	if p.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:           prof.Enabled,
		ServerAddress:     prof.ServerAddress,
		BasicAuthUser:     prof.BasicAuthUser,
		BasicAuthPassword: prof.BasicAuthPassword,
		ApplicationName:   cfg.ServiceName,
	}, logger); err != nil {
		return nil, err
	}
	if p.Tracer, err = NewTracerProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if prof.Enabled {
		p.Tracer.EnableSpanProfiles()
	}
	if p.Meter, err = NewMeterProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if p.Logs, err = NewLoggerProvider(ctx, cfg, logger); err != nil {
		return nil, err
	}
	return p, nil
}

// Shutdown flushes and stops every provider.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.Logs.Shutdown(ctx),
		p.Meter.Shutdown(ctx),
		p.Tracer.Shutdown(ctx),
		p.Profiler.Stop(),
	)
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
