package jsonmap

import "github.com/hengadev/jsonmap/internal/member"

// Environment variable names
const (
	// EnvMode selects the discovery mode: "basic" or "extended".
	EnvMode = "JSONMAP_MODE"

	// EnvTagKey overrides the struct tag key read for field directives.
	EnvTagKey = "JSONMAP_TAG_KEY"

	// EnvStrictAccessors makes declared but unusable accessors an error
	// instead of skipping them. Parsed with strconv.ParseBool.
	EnvStrictAccessors = "JSONMAP_STRICT_ACCESSORS"

	// EnvCacheMembers enables the per-type member cache. Parsed with
	// strconv.ParseBool.
	EnvCacheMembers = "JSONMAP_CACHE_MEMBERS"
)

// DefaultTagKey is the struct tag key read for field directives.
const DefaultTagKey = member.DefaultTagKey

// Directive tag values
const (
	TagIgnore      = member.TagIgnore
	TagIgnoreShort = member.TagIgnoreShort
	TagRename      = member.TagRename
	TagProperty    = member.TagProperty
)
