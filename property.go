package jsonmap

import "github.com/hengadev/jsonmap/internal/member"

type (
	// Property declares an accessor method and its directives.
	Property = member.Property

	// Directive changes whether and how a member is written.
	Directive = member.Directive

	// PropertyDeclarer is implemented by types exposing accessors.
	PropertyDeclarer = member.PropertyDeclarer

	// Mode selects how members are discovered.
	Mode = member.Mode
)

const (
	ModeBasic    = member.ModeBasic
	ModeExtended = member.ModeExtended
)

// Ignore leaves the member out of the output.
func Ignore() Directive { return member.Ignore() }

// Rename writes the member under name.
func Rename(name string) Directive { return member.Rename(name) }

// Accessor declares method as an output property. The opt-in marker is
// added to directives.
func Accessor(method string, directives ...Directive) Property {
	return Property{
		Method:     method,
		Directives: append([]Directive{member.Marker()}, directives...),
	}
}

// ParseMode parses "basic" or "extended".
func ParseMode(s string) (Mode, bool) {
	return member.ParseMode(s)
}
