package jsonmap

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"
	"go.uber.org/zap"
)

// Config holds the settings of a Mapper.
//
// The zero value is not usable as is; start from DefaultConfig or
// LoadConfigFromEnvironment. Observability fields are optional: when they
// are all nil, serialization reports to a no-op hook.
//
// Example usage:
//
//	cfg := jsonmap.DefaultConfig()
//	cfg.Mode = jsonmap.ModeBasic
//	cfg.CacheMembers = true
//
//	mapper, err := jsonmap.New(jsonmap.WithConfig(cfg))
type Config struct {
	// Mode selects member discovery. Default: ModeExtended.
	Mode Mode

	// TagKey is the struct tag key read for field directives.
	// Default: "jsonmap".
	TagKey string

	// StrictAccessors turns declared accessors that are missing or have an
	// unsupported signature into ErrUnsupportedMember instead of skipping
	// them. Only meaningful in ModeExtended.
	StrictAccessors bool

	// CacheMembers keeps the member list of each type after its first use.
	// Only member descriptors are kept, never values.
	CacheMembers bool

	// ObservabilityHook receives every serialization event.
	ObservabilityHook ObservabilityHook

	// MetricsCollector receives counters and timings.
	MetricsCollector MetricsCollector

	// Logger receives one entry per serialization.
	Logger *zap.Logger
}

// DefaultConfig returns the configuration used by New without options.
func DefaultConfig() Config {
	return Config{
		Mode:   ModeExtended,
		TagKey: DefaultTagKey,
	}
}

// Validate checks every setting and reports all problems at once. The
// returned error matches ErrInvalidConfiguration.
func (c *Config) Validate() error {
	errs := errsx.Map{}

	if c.Mode != ModeBasic && c.Mode != ModeExtended {
		errs.Set("mode", fmt.Errorf("unknown mode %d", c.Mode))
	}
	if err := validateTagKey(c.TagKey); err != nil {
		errs.Set("tag key", err)
	}
	if c.StrictAccessors && c.Mode == ModeBasic {
		errs.Set("strict accessors", fmt.Errorf("accessors are not discovered in %s mode", c.Mode))
	}

	if err := errs.AsError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// validateTagKey follows the reflect.StructTag key syntax: a non-empty run
// of characters other than space, quote, colon and control characters.
func validateTagKey(key string) error {
	if key == "" {
		return fmt.Errorf("must not be empty")
	}
	if i := strings.IndexFunc(key, func(r rune) bool {
		return r <= ' ' || r == ':' || r == '"' || r == 0x7f
	}); i >= 0 {
		return fmt.Errorf("invalid character %q in %q", key[i], key)
	}
	return nil
}
