package jsonmap

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hengadev/errsx"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// Every variable is optional; unset or empty variables keep the value of
// DefaultConfig:
//   - JSONMAP_MODE: "basic" or "extended"
//   - JSONMAP_TAG_KEY: struct tag key read for field directives
//   - JSONMAP_STRICT_ACCESSORS: boolean
//   - JSONMAP_CACHE_MEMBERS: boolean
//
// All malformed variables are reported together.
//
// Example usage:
//
//	cfg, err := jsonmap.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mapper, err := jsonmap.New(jsonmap.WithConfig(cfg))
func LoadConfigFromEnvironment() (Config, error) {
	cfg := DefaultConfig()
	errs := errsx.Map{}

	if value := os.Getenv(EnvMode); value != "" {
		mode, ok := ParseMode(value)
		if !ok {
			errs.Set(EnvMode, fmt.Errorf("want basic or extended, got %q", value))
		}
		cfg.Mode = mode
	}

	cfg.TagKey = getEnvOrDefault(EnvTagKey, cfg.TagKey)

	if err := lookupBool(EnvStrictAccessors, &cfg.StrictAccessors); err != nil {
		errs.Set(EnvStrictAccessors, err)
	}
	if err := lookupBool(EnvCacheMembers, &cfg.CacheMembers); err != nil {
		errs.Set(EnvCacheMembers, err)
	}

	if err := errs.AsError(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable, or
// defaultValue when it is unset or empty.
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// lookupBool parses key into dst when it is set.
func lookupBool(key string, dst *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("want a boolean, got %q", value)
	}
	*dst = parsed
	return nil
}
