package jsonmap

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hengadev/jsonmap/internal/jsonmaperr"
)

// Option configures a Mapper.
type Option func(c *Config) error

// WithMode selects member discovery.
func WithMode(mode Mode) Option {
	return func(c *Config) error {
		if mode != ModeBasic && mode != ModeExtended {
			return jsonmaperr.NewInvalidConfigurationError("mode", fmt.Sprintf("%d is not a known mode", mode))
		}
		c.Mode = mode
		return nil
	}
}

// WithTagKey reads field directives from the key struct tag instead of
// `jsonmap`.
func WithTagKey(key string) Option {
	return func(c *Config) error {
		if err := validateTagKey(key); err != nil {
			return jsonmaperr.NewInvalidConfigurationError("tag key", err.Error())
		}
		c.TagKey = key
		return nil
	}
}

// WithStrictAccessors makes declared but unusable accessors an error.
func WithStrictAccessors(strict bool) Option {
	return func(c *Config) error {
		c.StrictAccessors = strict
		return nil
	}
}

// WithMemberCache keeps the member list of each type after its first use.
func WithMemberCache(enabled bool) Option {
	return func(c *Config) error {
		c.CacheMembers = enabled
		return nil
	}
}

// WithObservabilityHook reports serialization events to hook.
func WithObservabilityHook(hook ObservabilityHook) Option {
	return func(c *Config) error {
		if hook == nil {
			return jsonmaperr.NewInvalidConfigurationError("observability hook", "must not be nil")
		}
		c.ObservabilityHook = hook
		return nil
	}
}

// WithMetricsCollector reports serialization metrics to collector.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(c *Config) error {
		if collector == nil {
			return jsonmaperr.NewInvalidConfigurationError("metrics collector", "must not be nil")
		}
		c.MetricsCollector = collector
		return nil
	}
}

// WithLogger logs every serialization to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return jsonmaperr.NewInvalidConfigurationError("logger", "must not be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithConfig replaces the whole configuration. Options given after it
// still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) error {
		*c = cfg
		return nil
	}
}
