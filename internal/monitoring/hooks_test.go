package monitoring

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type countingHook struct {
	starts, completes, errors, skips int
}

func (c *countingHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	c.starts++
}
func (c *countingHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	c.completes++
}
func (c *countingHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	c.errors++
}
func (c *countingHook) OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any) {
	c.skips++
}

func TestNoOpObservabilityHook(t *testing.T) {
	hook := &NoOpObservabilityHook{}
	ctx := context.Background()

	hook.OnProcessStart(ctx, "Serialize", nil)
	hook.OnProcessComplete(ctx, "Serialize", time.Millisecond, nil, nil)
	hook.OnError(ctx, "Serialize", errors.New("boom"), nil)
	hook.OnMemberSkipped(ctx, "field", "ignored", nil)

	assert.True(t, hook.NoOp())
}

func TestLoggingObservabilityHook(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hook := NewLoggingObservabilityHook(zap.New(core))
	ctx := context.Background()
	metadata := map[string]any{"object_type": "main.Post", "call_id": "abc"}

	hook.OnProcessStart(ctx, "Serialize", metadata)
	hook.OnMemberSkipped(ctx, "doi", "ignored", metadata)
	hook.OnProcessComplete(ctx, "Serialize", time.Millisecond, nil, metadata)
	hook.OnError(ctx, "Serialize", errors.New("boom"), metadata)
	hook.OnProcessComplete(ctx, "Serialize", time.Millisecond, errors.New("boom"), metadata)

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)

	assert.Equal(t, "operation started", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "abc", entries[0].ContextMap()["call_id"])
	assert.Equal(t, "Serialize", entries[0].ContextMap()["operation"])

	assert.Equal(t, "member skipped", entries[1].Message)
	assert.Equal(t, "doi", entries[1].ContextMap()["member"])
	assert.Equal(t, "ignored", entries[1].ContextMap()["reason"])

	assert.Equal(t, "operation completed", entries[2].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[2].Level)

	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)

	assert.Equal(t, "operation failed", entries[4].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[4].Level)
	assert.Equal(t, "boom", entries[4].ContextMap()["error"])
}

func TestLoggingObservabilityHookNilLogger(t *testing.T) {
	hook := NewLoggingObservabilityHook(nil)
	assert.NotPanics(t, func() {
		hook.OnProcessStart(context.Background(), "Serialize", nil)
	})
}

func TestMetricsObservabilityHook(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	hook := NewMetricsObservabilityHook(collector)
	ctx := context.Background()
	metadata := map[string]any{"mode": "extended", "properties": 3}
	tags := map[string]string{"operation": "Serialize", "mode": "extended"}

	hook.OnProcessStart(ctx, "Serialize", metadata)
	hook.OnMemberSkipped(ctx, "doi", "ignored", metadata)
	hook.OnMemberSkipped(ctx, "Helper", "not_opted_in", metadata)
	hook.OnProcessComplete(ctx, "Serialize", 2*time.Millisecond, nil, metadata)

	assert.Equal(t, int64(1), collector.GetCounter(MetricSerializeStarted, tags))
	assert.Equal(t, int64(1), collector.GetCounter(MetricSerializeSucceeded, tags))
	assert.Equal(t, int64(0), collector.GetCounter(MetricSerializeFailed, tags))
	assert.Equal(t, int64(1), collector.GetCounter(MetricMembersSkipped, map[string]string{"reason": "ignored"}))
	assert.Equal(t, int64(2), collector.CounterTotal(MetricMembersSkipped))
	// Skipped members are labelled by reason alone.
	assert.Equal(t, int64(1), collector.GetCounter(MetricMembersSkipped, map[string]string{"reason": "not_opted_in"}))
	assert.Zero(t, collector.GetCounter(MetricMembersSkipped, map[string]string{"reason": "ignored", "mode": "extended"}))
	assert.Equal(t, []time.Duration{2 * time.Millisecond}, collector.GetTimings(MetricSerializeDuration, tags))
	assert.Equal(t, []float64{3}, collector.GetValues(MetricSerializeProperties, tags))

	failure := errors.New("boom")
	hook.OnError(ctx, "Serialize", failure, metadata)
	hook.OnProcessComplete(ctx, "Serialize", time.Millisecond, failure, metadata)

	assert.Equal(t, int64(1), collector.GetCounter(MetricSerializeFailed, tags))
	assert.Equal(t, int64(1), collector.CounterTotal(MetricErrors))
	assert.Len(t, collector.GetValues(MetricSerializeProperties, tags), 1)
}

func TestMetricsObservabilityHookNilCollector(t *testing.T) {
	hook := NewMetricsObservabilityHook(nil)
	assert.NotPanics(t, func() {
		hook.OnProcessComplete(context.Background(), "Serialize", time.Millisecond, nil, nil)
	})
}

func TestCompositeObservabilityHook(t *testing.T) {
	first, second := &countingHook{}, &countingHook{}
	hook := NewCompositeObservabilityHook(first, second)
	ctx := context.Background()

	hook.OnProcessStart(ctx, "Serialize", nil)
	hook.OnMemberSkipped(ctx, "doi", "ignored", nil)
	hook.OnError(ctx, "Serialize", errors.New("boom"), nil)
	hook.OnProcessComplete(ctx, "Serialize", time.Millisecond, nil, nil)

	for _, h := range []*countingHook{first, second} {
		assert.Equal(t, countingHook{starts: 1, completes: 1, errors: 1, skips: 1}, *h)
	}
	assert.False(t, hook.NoOp())
	assert.True(t, NewCompositeObservabilityHook(&NoOpObservabilityHook{}).NoOp())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:     LevelInfo,
		Format:    FormatJSON,
		Output:    &buf,
		Component: "jsonmap",
		Fields:    map[string]any{"service": "api"},
	})

	logger.Debug("hidden")
	logger.Info("visible", zap.Int("count", 2))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"component":"jsonmap"`)
	assert.Contains(t, out, `"service":"api"`)
	assert.Contains(t, out, `"count":2`)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for input, expected := range tests {
		level, err := ParseLogLevel(input)
		require.NoError(t, err)
		assert.Equal(t, expected, level)
	}

	_, err := ParseLogLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "WARN", LevelWarn.String())
}
