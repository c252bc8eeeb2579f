// Package telemetry wires OpenTelemetry metrics for the MCP tools and the
// registry client, exported in Prometheus format.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const (
	serviceName = "vigile-mcp"
	meterName   = "github.com/vigile-dev/vigile-mcp"
)

// Tool call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Metrics holds the instruments shared by the MCP server and the registry client.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ToolCalls    metric.Int64Counter
	ToolDuration metric.Float64Histogram
	APIRequests  metric.Int64Counter
	APIDuration  metric.Float64Histogram

	registry *prometheus.Registry
}

// InitMetrics sets up a meter provider backed by a private Prometheus registry.
// The returned function flushes and shuts the provider down.
func InitMetrics(version string) (func(context.Context) error, *Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithoutScopeInfo(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(res),
	)

	if err := runtime.Start(runtime.WithMeterProvider(provider)); err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, fmt.Errorf("failed to start runtime instrumentation: %w", err)
	}

	metrics, err := newMetrics(provider.Meter(meterName))
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, err
	}
	metrics.registry = registry

	return provider.Shutdown, metrics, nil
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	toolCalls, err := meter.Int64Counter("vigile_mcp.tool.calls",
		metric.WithDescription("Number of MCP tool invocations"),
	)
	if err != nil {
		return nil, err
	}

	toolDuration, err := meter.Float64Histogram("vigile_mcp.tool.duration",
		metric.WithDescription("Duration of MCP tool invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	apiRequests, err := meter.Int64Counter("vigile_mcp.api.requests",
		metric.WithDescription("Number of requests issued to the Vigile registry API"),
	)
	if err != nil {
		return nil, err
	}

	apiDuration, err := meter.Float64Histogram("vigile_mcp.api.duration",
		metric.WithDescription("Duration of Vigile registry API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ToolCalls:    toolCalls,
		ToolDuration: toolDuration,
		APIRequests:  apiRequests,
		APIDuration:  apiDuration,
	}, nil
}

// RecordToolCall records one MCP tool invocation.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", outcome),
	)
	m.ToolCalls.Add(ctx, 1, attrs)
	m.ToolDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordAPIRequest records one registry request. status is 0 when no HTTP
// response was received, in which case failure names the transport category.
func (m *Metrics) RecordAPIRequest(ctx context.Context, method, route string, status int, failure string, elapsed time.Duration) {
	if m == nil {
		return
	}
	kvs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status_code", status),
	}
	if failure != "" {
		kvs = append(kvs, attribute.String("failure", failure))
	}
	attrs := metric.WithAttributes(kvs...)
	m.APIRequests.Add(ctx, 1, attrs)
	m.APIDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// PrometheusHandler serves the collected metrics.
func (m *Metrics) PrometheusHandler() http.Handler {
	if m == nil || m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
