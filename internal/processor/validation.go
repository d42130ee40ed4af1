package processor

import (
	"fmt"
	"reflect"

	"github.com/hengadev/errsx"

	"github.com/hengadev/jsonmap/internal/jsonmaperr"
	"github.com/hengadev/jsonmap/internal/member"
)

// Validator handles input validation for serialization
type Validator struct {
	tagKey string
}

// NewValidator creates a new Validator reading field directives from tagKey
func NewValidator(tagKey string) *Validator {
	if tagKey == "" {
		tagKey = member.DefaultTagKey
	}
	return &Validator{tagKey: tagKey}
}

// ValidateObject checks that object is a struct or a non-nil pointer to one
// and returns an addressable struct value. Struct values are copied so that
// unexported fields can be read without touching the caller's value.
func (v *Validator) ValidateObject(object any) (reflect.Value, error) {
	if object == nil {
		return reflect.Value{}, jsonmaperr.NewInvalidObjectError("object cannot be nil")
	}

	objValue := reflect.ValueOf(object)
	for objValue.Kind() == reflect.Pointer {
		if objValue.IsNil() {
			return reflect.Value{}, jsonmaperr.NewInvalidObjectError(fmt.Sprintf("nil pointer of type %T", object))
		}
		objValue = objValue.Elem()
	}

	if objValue.Kind() != reflect.Struct {
		return reflect.Value{}, jsonmaperr.NewInvalidObjectError(
			fmt.Sprintf("object must be a struct or a pointer to a struct, got %T", object))
	}

	if objValue.CanAddr() {
		return objValue, nil
	}

	addressable := reflect.New(objValue.Type()).Elem()
	addressable.Set(objValue)
	return addressable, nil
}

// ValidateDirectives checks every directive declared by structType, on its
// fields and on its declared accessors, and reports all problems at once,
// keyed by member, in an errsx.Map wrapped with ErrInvalidDirective. No
// value is read.
func (v *Validator) ValidateDirectives(structType reflect.Type) error {
	errs := errsx.Map{}

	for i := range structType.NumField() {
		field := structType.Field(i)
		directives, err := member.ParseTag(field.Name, field.Tag.Get(v.tagKey))
		if err != nil {
			errs.Set(fmt.Sprintf("field '%s'", field.Name), err)
			continue
		}
		if err := validateDirectiveSet(field.Name, directives); err != nil {
			errs.Set(fmt.Sprintf("field '%s'", field.Name), err)
		}
	}

	for _, m := range member.Accessors(structType) {
		key := fmt.Sprintf("accessor '%s'", m.Name)
		if err := validateDirectiveSet(m.Name, m.Directives); err != nil {
			errs.Set(key, err)
			continue
		}
		if !m.Has(member.DirectiveProperty) {
			errs.Set(key, jsonmaperr.NewInvalidDirectiveError(m.Name, member.TagProperty, "accessor is declared without the property marker"))
			continue
		}
		if err := member.CheckAccessorShape(m.Signature); err != nil {
			errs.Set(key, jsonmaperr.NewUnsupportedMemberError(m.Name, structType.String(), err.Error()))
		}
	}

	if err := errs.AsError(); err != nil {
		return fmt.Errorf("%w: %w", jsonmaperr.ErrInvalidDirective, err)
	}
	return nil
}

// validateDirectiveSet rejects empty rename values and repeated directives.
func validateDirectiveSet(memberName string, directives []member.Directive) error {
	seen := make(map[member.DirectiveKind]bool, len(directives))
	for _, d := range directives {
		if d.Kind == member.DirectiveRename && d.Value == "" {
			return jsonmaperr.NewInvalidDirectiveError(memberName, d.String(), "rename requires a name")
		}
		if seen[d.Kind] {
			return jsonmaperr.NewInvalidDirectiveError(memberName, d.String(), "directive is repeated")
		}
		seen[d.Kind] = true
	}
	return nil
}
