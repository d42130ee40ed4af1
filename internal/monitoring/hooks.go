package monitoring

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Metric names reported by MetricsObservabilityHook.
const (
	MetricSerializeStarted    = "jsonmap.serialize.started"
	MetricSerializeSucceeded  = "jsonmap.serialize.succeeded"
	MetricSerializeFailed     = "jsonmap.serialize.failed"
	MetricSerializeDuration   = "jsonmap.serialize.duration"
	MetricSerializeProperties = "jsonmap.serialize.properties"
	MetricErrors              = "jsonmap.errors"
	MetricMembersSkipped      = "jsonmap.members.skipped"
)

// ObservabilityHook defines hooks for monitoring serialization
type ObservabilityHook interface {
	// Called before processing starts
	OnProcessStart(ctx context.Context, operation string, metadata map[string]any)

	// Called after processing completes (success or failure)
	OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)

	// Called when errors occur
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)

	// Called for every discovered member left out of the output
	OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any)
}

// NoOpObservabilityHook is a no-op implementation of ObservabilityHook
type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any) {
}

// NoOp reports that the hook discards everything, so callers can skip
// building data only a hook would read.
func (n *NoOpObservabilityHook) NoOp() bool { return true }

// LoggingObservabilityHook logs all operations
type LoggingObservabilityHook struct {
	logger *zap.Logger
}

// NewLoggingObservabilityHook creates a new logging observability hook.
// A nil logger discards everything.
func NewLoggingObservabilityHook(logger *zap.Logger) *LoggingObservabilityHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingObservabilityHook{
		logger: logger,
	}
}

func (l *LoggingObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	l.logger.Debug("operation started", metadataFields(operation, metadata)...)
}

func (l *LoggingObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	fields := append(metadataFields(operation, metadata), zap.Duration("duration", duration))
	if err != nil {
		l.logger.Error("operation failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Info("operation completed", fields...)
}

func (l *LoggingObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	l.logger.Warn("operation error", append(metadataFields(operation, metadata), zap.Error(err))...)
}

func (l *LoggingObservabilityHook) OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any) {
	l.logger.Debug("member skipped",
		zap.String("member", memberName),
		zap.String("reason", reason),
		zap.Any("object_type", metadata["object_type"]),
	)
}

// metadataFields turns metadata into zap fields in key order.
func metadataFields(operation string, metadata map[string]any) []zap.Field {
	keys := lo.Keys(metadata)
	slices.Sort(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("operation", operation))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, metadata[key]))
	}
	return fields
}

// MetricsObservabilityHook collects metrics for operations
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

// NewMetricsObservabilityHook creates a new metrics observability hook
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = &NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{
		collector: collector,
	}
}

func (m *MetricsObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricSerializeStarted, operationTags(operation, metadata))
}

func (m *MetricsObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	tags := operationTags(operation, metadata)

	if err != nil {
		m.collector.IncrementCounter(MetricSerializeFailed, tags)
	} else {
		m.collector.IncrementCounter(MetricSerializeSucceeded, tags)
		if count, ok := metadata["properties"].(int); ok {
			m.collector.RecordValue(MetricSerializeProperties, float64(count), tags)
		}
	}

	m.collector.RecordTiming(MetricSerializeDuration, duration, tags)
}

func (m *MetricsObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	tags := map[string]string{
		"operation": operation,
		"error":     fmt.Sprintf("%T", err),
	}
	m.collector.IncrementCounter(MetricErrors, tags)
}

func (m *MetricsObservabilityHook) OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricMembersSkipped, map[string]string{"reason": reason})
}

// operationTags always carries the same label keys so that every sample
// of a metric has the same label set.
func operationTags(operation string, metadata map[string]any) map[string]string {
	tags := map[string]string{"operation": operation, "mode": ""}
	if mode, ok := metadata["mode"].(string); ok {
		tags["mode"] = mode
	}
	return tags
}

// CompositeObservabilityHook combines multiple hooks
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

// NewCompositeObservabilityHook creates a new composite hook
func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	return &CompositeObservabilityHook{
		hooks: hooks,
	}
}

func (c *CompositeObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessStart(ctx, operation, metadata)
	}
}

func (c *CompositeObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessComplete(ctx, operation, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(ctx, operation, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnMemberSkipped(ctx, memberName, reason, metadata)
	}
}

// NoOp reports whether every combined hook is a no-op.
func (c *CompositeObservabilityHook) NoOp() bool {
	return lo.EveryBy(c.hooks, func(hook ObservabilityHook) bool {
		reporter, ok := hook.(interface{ NoOp() bool })
		return ok && reporter.NoOp()
	})
}
