package api

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("medshare-api")

// Metrics records outbound API call counts and latency
type Metrics struct {
	requestsCounter   metric.Int64Counter
	failuresCounter   metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

// NewMetrics creates the API client instruments
func NewMetrics() (*Metrics, error) {
	requestsCounter, err := meter.Int64Counter(
		"medshare.api.requests",
		metric.WithDescription("Total number of backend API calls"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	failuresCounter, err := meter.Int64Counter(
		"medshare.api.failures",
		metric.WithDescription("Backend API calls that returned an error"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"medshare.api.duration",
		metric.WithDescription("Duration of backend API calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestsCounter:   requestsCounter,
		failuresCounter:   failuresCounter,
		durationHistogram: durationHistogram,
	}, nil
}

// RecordCall records one finished call. A nil receiver records nothing.
func (m *Metrics) RecordCall(ctx context.Context, op string, status int, err error, duration time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("api.operation", op),
		attribute.Int("http.status_code", status),
	)
	m.requestsCounter.Add(ctx, 1, attrs)
	m.durationHistogram.Record(ctx, duration.Seconds(), attrs)
	if err != nil {
		m.failuresCounter.Add(ctx, 1, attrs)
	}
}
