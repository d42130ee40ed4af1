package jsonmap

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hengadev/jsonmap/internal/monitoring"
	"github.com/hengadev/jsonmap/internal/performance"
)

type (
	// ObservabilityHook receives serialization events.
	ObservabilityHook = monitoring.ObservabilityHook

	// MetricsCollector receives counters and timings.
	MetricsCollector = monitoring.MetricsCollector

	NoOpObservabilityHook    = monitoring.NoOpObservabilityHook
	NoOpMetricsCollector     = monitoring.NoOpMetricsCollector
	InMemoryMetricsCollector = monitoring.InMemoryMetricsCollector
	LoggerConfig             = monitoring.LoggerConfig
	LogLevel                 = monitoring.LogLevel
	LogFormat                = monitoring.LogFormat

	// BatchOptions configures Mapper.ToJSONBatch.
	BatchOptions = performance.BatchOptions
	BatchResult  = performance.BatchResult
	BatchError   = performance.BatchError
)

const (
	LevelDebug    = monitoring.LevelDebug
	LevelInfo     = monitoring.LevelInfo
	LevelWarn     = monitoring.LevelWarn
	LevelError    = monitoring.LevelError
	FormatJSON    = monitoring.FormatJSON
	FormatConsole = monitoring.FormatConsole
)

var (
	NewLogger                     = monitoring.NewLogger
	NewInMemoryMetricsCollector   = monitoring.NewInMemoryMetricsCollector
	NewLoggingObservabilityHook   = monitoring.NewLoggingObservabilityHook
	NewMetricsObservabilityHook   = monitoring.NewMetricsObservabilityHook
	NewCompositeObservabilityHook = monitoring.NewCompositeObservabilityHook
)

// NewPrometheusMetricsCollector returns a collector registering its metrics
// on r, or on the default Prometheus registerer when r is nil.
func NewPrometheusMetricsCollector(r prometheus.Registerer) MetricsCollector {
	return monitoring.NewPrometheusMetricsCollector(r)
}
