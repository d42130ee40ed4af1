package jsonmaperr

import (
	"errors"
	"fmt"
)

var (
	// Object errors
	ErrInvalidObject = errors.New("invalid object")

	// Member errors
	ErrExtraction        = errors.New("member extraction failed")
	ErrUnsupportedMember = errors.New("unsupported member")
	ErrInvalidDirective  = errors.New("invalid directive")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ExtractionError reports the member whose value could not be read.
// It matches ErrExtraction with errors.Is and unwraps to the cause.
type ExtractionError struct {
	Member string
	Type   string
	Action Action
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s '%s' of type %s", ErrExtraction, e.Action, e.Member, e.Type)
	}
	return fmt.Sprintf("%s: %s '%s' of type %s: %v", ErrExtraction, e.Action, e.Member, e.Type, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }

func NewExtractionError(memberName string, typeName string, action Action, cause error) error {
	return &ExtractionError{
		Member: memberName,
		Type:   typeName,
		Action: action,
		Err:    cause,
	}
}

func NewInvalidObjectError(details string) error {
	return fmt.Errorf("%w: %s", ErrInvalidObject, details)
}

func NewUnsupportedMemberError(memberName string, typeName string, details string) error {
	return fmt.Errorf("%w: accessor '%s' on %s %s", ErrUnsupportedMember, memberName, typeName, details)
}

func NewInvalidDirectiveError(memberName string, directive string, details string) error {
	if details != "" {
		return fmt.Errorf("%w: '%s' on member '%s': %s", ErrInvalidDirective, directive, memberName, details)
	}
	return fmt.Errorf("%w: '%s' on member '%s'", ErrInvalidDirective, directive, memberName)
}

func NewInvalidConfigurationError(setting string, details string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfiguration, setting, details)
}
