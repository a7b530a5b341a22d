package otel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Config holds OTel configuration
type Config struct {
	Enabled        bool
	ServiceName    string
	ExportInterval time.Duration
	MetricWriter   io.Writer // where metric snapshots are written (required when enabled)
}

// Provider manages the OpenTelemetry meter provider.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	config        Config
}

// New creates a provider and installs it as the global meter provider.
// If OTel is disabled, the global noop provider is left in place.
func New(cfg Config) (*Provider, error) {
	p := &Provider{
		config: cfg,
	}

	if !cfg.Enabled {
		return p, nil
	}
	if cfg.MetricWriter == nil {
		return nil, errors.New("OTel enabled but no metric writer configured")
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(cfg.MetricWriter),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.ExportInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.ExportInterval))
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
	)
	otel.SetMeterProvider(p.meterProvider)

	return p, nil
}

// Meter returns a meter from the global provider. It is a noop meter while disabled.
func (p *Provider) Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Flush exports everything collected so far.
func (p *Provider) Flush(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("metric flush failed: %w", err)
	}
	return nil
}

// Shutdown exports the final readings and stops the periodic reader.
// Should be called when the application exits.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("metric shutdown failed: %w", err)
	}
	return nil
}

// Enabled returns whether OTel is enabled
func (p *Provider) Enabled() bool {
	return p.config.Enabled
}
