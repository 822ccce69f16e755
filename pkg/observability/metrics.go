package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}

// Counters for the scoring pipeline and background maintenance tasks.
var (
	// PredictionsTotal counts scoring invocations by applicant type and
	// model version.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditml",
			Name:      "predictions_total",
			Help:      "Total scoring invocations by applicant type and model version.",
		},
		[]string{"applicant_type", "model_version"},
	)

	// AuditWriteFailuresTotal counts prediction-log writes that were
	// swallowed rather than propagated.
	AuditWriteFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "creditml",
			Name:      "audit_write_failures_total",
			Help:      "Prediction log writes that failed and were logged instead of propagated.",
		},
	)

	// PredictionLogsPurgedTotal counts audit entries removed by retention sweeps.
	PredictionLogsPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "creditml",
			Name:      "prediction_logs_purged_total",
			Help:      "Prediction log entries deleted by retention sweeps.",
		},
	)

	// RescoredRequestsTotal counts credit requests processed by the
	// rescoring worker, by outcome.
	RescoredRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creditml",
			Name:      "rescored_requests_total",
			Help:      "Credit requests processed by the batch rescoring worker.",
		},
		[]string{"outcome"},
	)
)
