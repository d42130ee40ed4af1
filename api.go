package jsonmap

import (
	"context"
	"fmt"
	"sync"

	"github.com/hengadev/jsonmap/internal/member"
	"github.com/hengadev/jsonmap/internal/monitoring"
	"github.com/hengadev/jsonmap/internal/performance"
	"github.com/hengadev/jsonmap/internal/processor"
)

// Mapper converts struct values into JSON text. A Mapper is safe for
// concurrent use; calls never share value state.
type Mapper struct {
	config    Config
	processor *processor.StructProcessor
	validator *processor.Validator
}

// New creates a Mapper from DefaultConfig and opts.
//
// Example usage:
//
//	mapper, err := jsonmap.New(
//	    jsonmap.WithMode(jsonmap.ModeExtended),
//	    jsonmap.WithMemberCache(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := mapper.ToJSON(post)
func New(opts ...Option) (*Mapper, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	validator := processor.NewValidator(cfg.TagKey)
	sp := processor.NewStructProcessor(
		member.NewDiscoverer(cfg.TagKey, cfg.CacheMembers),
		processor.NewFieldProcessor(),
		validator,
		observabilityHook(cfg),
		processor.Options{Mode: cfg.Mode, StrictAccessors: cfg.StrictAccessors},
	)

	return &Mapper{
		config:    cfg,
		processor: sp,
		validator: validator,
	}, nil
}

// observabilityHook combines the configured hook, logger and metrics
// collector.
func observabilityHook(cfg Config) ObservabilityHook {
	var hooks []ObservabilityHook
	if cfg.ObservabilityHook != nil {
		hooks = append(hooks, cfg.ObservabilityHook)
	}
	if cfg.Logger != nil {
		hooks = append(hooks, monitoring.NewLoggingObservabilityHook(cfg.Logger))
	}
	if cfg.MetricsCollector != nil {
		hooks = append(hooks, monitoring.NewMetricsObservabilityHook(cfg.MetricsCollector))
	}

	switch len(hooks) {
	case 0:
		return &monitoring.NoOpObservabilityHook{}
	case 1:
		return hooks[0]
	default:
		return monitoring.NewCompositeObservabilityHook(hooks...)
	}
}

// Config returns the configuration the Mapper was built with.
func (m *Mapper) Config() Config {
	return m.config
}

// ToJSON converts v, a struct or a non-nil pointer to one, into JSON text.
func (m *Mapper) ToJSON(v any) (string, error) {
	return m.ToJSONContext(context.Background(), v)
}

// ToJSONContext is ToJSON with a context passed to the observability hooks.
// It fails without reading v when ctx is already done.
func (m *Mapper) ToJSONContext(ctx context.Context, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.processor.Serialize(ctx, v)
}

// MustToJSON is ToJSON that panics on error.
func (m *Mapper) MustToJSON(v any) string {
	out, err := m.ToJSON(v)
	if err != nil {
		panic(fmt.Sprintf("jsonmap: %v", err))
	}
	return out
}

// ToJSONBatch converts every value of values concurrently. Outputs keep the
// input order. Per-item failures are reported in the result; the returned
// error is set only when ctx is cancelled or StopOnFirstError is requested.
func (m *Mapper) ToJSONBatch(ctx context.Context, values []any, opts ...*BatchOptions) (*BatchResult, error) {
	return performance.SerializeBatch(ctx, m, values, opts...)
}

// Validate checks every directive the type of v declares, on fields and on
// accessors, without reading any value. All problems are reported together.
func (m *Mapper) Validate(v any) error {
	structValue, err := m.validator.ValidateObject(v)
	if err != nil {
		return err
	}
	return m.validator.ValidateDirectives(structValue.Type())
}

var defaultMapper = sync.OnceValue(func() *Mapper {
	m, err := New()
	if err != nil {
		panic(fmt.Sprintf("jsonmap: default mapper: %v", err))
	}
	return m
})

// ToJSON converts v with a Mapper using DefaultConfig.
func ToJSON(v any) (string, error) {
	return defaultMapper().ToJSON(v)
}
