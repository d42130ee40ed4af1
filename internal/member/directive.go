package member

import (
	"fmt"
	"strings"

	"github.com/hengadev/jsonmap/internal/jsonmaperr"
)

// Directive values accepted in the struct tag.
const (
	TagIgnore      = "ignore"
	TagIgnoreShort = "-"
	TagRename      = "rename"
	TagProperty    = "property"
)

// DirectiveKind identifies the effect of a Directive.
type DirectiveKind int8

const (
	DirectiveIgnore DirectiveKind = iota + 1
	DirectiveRename
	DirectiveProperty
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveIgnore:
		return TagIgnore
	case DirectiveRename:
		return TagRename
	case DirectiveProperty:
		return TagProperty
	default:
		return "unknown"
	}
}

// Directive is metadata attached to a member. Value is the replacement
// name of a rename directive and empty otherwise.
type Directive struct {
	Kind  DirectiveKind
	Value string
}

func (d Directive) String() string {
	if d.Kind == DirectiveRename {
		return TagRename + "=" + d.Value
	}
	return d.Kind.String()
}

func Ignore() Directive { return Directive{Kind: DirectiveIgnore} }

func Rename(name string) Directive { return Directive{Kind: DirectiveRename, Value: name} }

func Marker() Directive { return Directive{Kind: DirectiveProperty} }

// ParseTag parses a comma separated directive list such as
// `ignore` or `rename=secret`. A rename value may be single quoted to
// carry commas or spaces: `rename='a, b'`.
func ParseTag(memberName, tag string) ([]Directive, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, nil
	}
	if tag == TagIgnoreShort {
		return []Directive{Ignore()}, nil
	}

	parts, err := splitTag(tag)
	if err != nil {
		return nil, jsonmaperr.NewInvalidDirectiveError(memberName, tag, err.Error())
	}

	directives := make([]Directive, 0, len(parts))
	for _, part := range parts {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)

		switch key {
		case TagIgnore, TagIgnoreShort:
			if hasValue {
				return nil, jsonmaperr.NewInvalidDirectiveError(memberName, part, "ignore takes no value")
			}
			directives = append(directives, Ignore())
		case TagProperty:
			if hasValue {
				return nil, jsonmaperr.NewInvalidDirectiveError(memberName, part, "property takes no value")
			}
			directives = append(directives, Marker())
		case TagRename:
			name := unquote(strings.TrimSpace(value))
			if !hasValue || name == "" {
				return nil, jsonmaperr.NewInvalidDirectiveError(memberName, part, "rename requires a name")
			}
			directives = append(directives, Rename(name))
		default:
			return nil, jsonmaperr.NewInvalidDirectiveError(memberName, part,
				fmt.Sprintf("supported directives: %s, %s, %s=<name>, %s", TagIgnore, TagProperty, TagRename, TagIgnoreShort))
		}
	}

	return directives, nil
}

// splitTag splits on commas that are not inside single quotes.
func splitTag(tag string) ([]string, error) {
	var parts []string
	var current strings.Builder
	inQuote := false

	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			current.WriteByte(c)
		case c == ',' && !inQuote:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	return parts, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
