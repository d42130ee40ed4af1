package codegen

import (
	"fmt"
	"go/token"
	"unicode"

	"github.com/hengadev/errsx"

	"github.com/hengadev/jsonmap/internal/member"
)

// TagValidator handles validation of jsonmap directives
type TagValidator struct{}

// NewTagValidator creates a new tag validator
func NewTagValidator() *TagValidator {
	return &TagValidator{}
}

// ValidateFieldTag validates the directives of a single field tag
func (tv *TagValidator) ValidateFieldTag(fieldName string, tag string) []string {
	directives, err := member.ParseTag(fieldName, tag)
	if err != nil {
		return []string{err.Error()}
	}

	var errors []string
	if duplicates := findDuplicateDirectives(directives); len(duplicates) > 0 {
		errors = append(errors, fmt.Sprintf("duplicate directives on field '%s': %v", fieldName, duplicates))
	}
	return errors
}

// ValidateProperty validates an annotated method: its directives and its
// signature.
func (tv *TagValidator) ValidateProperty(p PropertyInfo) []string {
	var errors []string

	if !isExported(p.Method) {
		errors = append(errors, fmt.Sprintf("method '%s' must be exported to be called", p.Method))
	}
	if p.Params != 0 {
		errors = append(errors, fmt.Sprintf("method '%s' takes %d arguments, want none", p.Method, p.Params))
	}
	switch len(p.Results) {
	case 0:
		errors = append(errors, fmt.Sprintf("method '%s' returns no value", p.Method))
	case 1:
	case 2:
		if p.Results[1] != "error" {
			errors = append(errors, fmt.Sprintf("method '%s' second result is %s, want error", p.Method, p.Results[1]))
		}
	default:
		errors = append(errors, fmt.Sprintf("method '%s' returns %d values, want a value and an optional error", p.Method, len(p.Results)))
	}

	directives, err := member.ParseTag(p.Method, p.Directives)
	if err != nil {
		return append(errors, err.Error())
	}
	if duplicates := findDuplicateDirectives(directives); len(duplicates) > 0 {
		errors = append(errors, fmt.Sprintf("duplicate directives on method '%s': %v", p.Method, duplicates))
	}

	return errors
}

// ValidateType validates every field tag and annotated method of info.
// Problems are keyed by Type.Member.
func (tv *TagValidator) ValidateType(info TypeInfo) error {
	errs := errsx.Map{}

	for _, field := range info.Fields {
		for _, msg := range tv.ValidateFieldTag(field.Name, field.Tag) {
			errs.Set(info.TypeName+"."+field.Name, ValidationError{Position: field.Position, Member: field.Name, Message: msg})
		}
	}
	for _, p := range info.Properties {
		for _, msg := range tv.ValidateProperty(p) {
			errs.Set(info.TypeName+"."+p.Method, ValidationError{Position: p.Position, Member: p.Method, Message: msg})
		}
	}
	if info.HasDeclarer && len(info.Properties) > 0 {
		errs.Set(info.TypeName+".JSONProperties", ValidationError{
			Member:  "JSONProperties",
			Message: fmt.Sprintf("%s already declares JSONProperties; remove it or the //%s comments", info.TypeName, PropertyComment),
		})
	}

	return errs.AsError()
}

// findDuplicateDirectives finds directive kinds given more than once
func findDuplicateDirectives(directives []member.Directive) []string {
	seen := make(map[member.DirectiveKind]bool)
	var duplicates []string

	for _, d := range directives {
		if seen[d.Kind] {
			duplicates = append(duplicates, d.Kind.String())
		} else {
			seen[d.Kind] = true
		}
	}

	return duplicates
}

func isExported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

// ValidationError represents a validation error
type ValidationError struct {
	Position token.Position
	Member   string
	Message  string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Position.IsValid() {
		return fmt.Sprintf("%s: %s", ve.Position, ve.Message)
	}
	return ve.Message
}
