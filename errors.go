package jsonmap

import (
	"errors"

	"github.com/hengadev/jsonmap/internal/jsonmaperr"
)

var (
	// ErrInvalidObject is returned when the value is not a struct or a
	// non-nil pointer to one.
	ErrInvalidObject = jsonmaperr.ErrInvalidObject

	// ErrExtraction is matched by every ExtractionError.
	ErrExtraction = jsonmaperr.ErrExtraction

	// ErrUnsupportedMember is returned in strict accessor mode for declared
	// accessors that are missing or cannot be called.
	ErrUnsupportedMember = jsonmaperr.ErrUnsupportedMember

	// ErrInvalidDirective is returned for malformed struct tags and
	// accessor declarations.
	ErrInvalidDirective = jsonmaperr.ErrInvalidDirective

	ErrInvalidConfiguration = jsonmaperr.ErrInvalidConfiguration
)

// ExtractionError reports the member whose value could not be read.
type ExtractionError = jsonmaperr.ExtractionError

// IsExtractionError reports whether reading a member value failed.
func IsExtractionError(err error) bool {
	return errors.Is(err, ErrExtraction)
}

// IsConfigurationError reports whether err comes from invalid options or
// environment.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsDirectiveError reports whether err comes from a malformed directive or
// an unusable accessor declaration.
func IsDirectiveError(err error) bool {
	return errors.Is(err, ErrInvalidDirective) || errors.Is(err, ErrUnsupportedMember)
}
