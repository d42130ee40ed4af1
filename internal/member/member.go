// Package member enumerates the serializable members of a struct type and
// decides, for each of them, whether it is written and under which name.
package member

import (
	"reflect"
)

// Mode selects how members are discovered.
type Mode int8

const (
	// ModeBasic discovers declared fields only and ignores directives.
	ModeBasic Mode = iota
	// ModeExtended discovers declared fields and opted-in accessors and
	// honors directives.
	ModeExtended
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// ParseMode parses the text form of a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "basic":
		return ModeBasic, true
	case "extended":
		return ModeExtended, true
	default:
		return ModeExtended, false
	}
}

// Kind tells a field member from an accessor member.
type Kind int8

const (
	KindField Kind = iota
	KindAccessor
)

func (k Kind) String() string {
	if k == KindAccessor {
		return "accessor"
	}
	return "field"
}

// Member is a candidate output property of a struct type.
type Member struct {
	// Name is the declared field or method name.
	Name string
	// Type is the field type, or the first result type of an accessor.
	// It is nil for an accessor that is not declared or returns nothing.
	Type reflect.Type
	Kind Kind
	// Index is the field index. Only meaningful for KindField.
	Index int
	// Signature is the method type, receiver included, looked up on the
	// pointer method set. Nil when the accessor is not declared.
	Signature  reflect.Type
	Directives []Directive
}

// Has reports whether m carries a directive of kind k.
func (m Member) Has(k DirectiveKind) bool {
	for _, d := range m.Directives {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// Property declares an accessor method and the directives attached to it.
type Property struct {
	Method     string
	Directives []Directive
}

// PropertyDeclarer is implemented by types that expose accessor methods as
// output properties. The returned list must not depend on the receiver's
// state: it is read from the zero value of the type.
type PropertyDeclarer interface {
	JSONProperties() []Property
}

var (
	declarerType = reflect.TypeOf((*PropertyDeclarer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)
