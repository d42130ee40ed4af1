package jsonmaperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("boom")
	err := NewExtractionError("Title", "main.Book", InvokeAccessor, cause)

	assert.True(t, errors.Is(err, ErrExtraction))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrInvalidObject))

	wrapped := fmt.Errorf("serialize: %w", err)
	var extractionErr *ExtractionError
	assert.True(t, errors.As(wrapped, &extractionErr))
	assert.Equal(t, "Title", extractionErr.Member)
	assert.Equal(t, "main.Book", extractionErr.Type)
	assert.Equal(t, InvokeAccessor, extractionErr.Action)
}

func TestExtractionErrorMessage(t *testing.T) {
	err := NewExtractionError("likes", "main.Post", ReadField, errors.New("not addressable"))
	assert.Equal(t, "member extraction failed: read field 'likes' of type main.Post: not addressable", err.Error())

	err = NewExtractionError("likes", "main.Post", ReadField, nil)
	assert.Equal(t, "member extraction failed: read field 'likes' of type main.Post", err.Error())
}

func TestConstructorsWrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"invalid object", NewInvalidObjectError("got int"), ErrInvalidObject},
		{"unsupported member", NewUnsupportedMemberError("Title", "main.Book", "takes 1 argument"), ErrUnsupportedMember},
		{"invalid directive", NewInvalidDirectiveError("doi", "rename=", "empty name"), ErrInvalidDirective},
		{"invalid directive without details", NewInvalidDirectiveError("doi", "hide", ""), ErrInvalidDirective},
		{"invalid configuration", NewInvalidConfigurationError("mode", "must be basic or extended"), ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "read field", ReadField.String())
	assert.Equal(t, "invoke accessor", InvokeAccessor.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "unknown", Action(42).String())
}
