package member

import (
	"reflect"
	"sync"
)

// DefaultTagKey is the struct tag key read for field directives.
const DefaultTagKey = "jsonmap"

// Discoverer enumerates the candidate members of struct types.
type Discoverer struct {
	tagKey string
	cache  *sync.Map
}

type cacheKey struct {
	t    reflect.Type
	mode Mode
}

// NewDiscoverer creates a Discoverer reading field directives from tagKey.
// When cache is true, member descriptors are memoized per type and mode.
// Only descriptors are kept, never values.
func NewDiscoverer(tagKey string, cache bool) *Discoverer {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}
	d := &Discoverer{tagKey: tagKey}
	if cache {
		d.cache = &sync.Map{}
	}
	return d
}

// TagKey returns the struct tag key the Discoverer reads.
func (d *Discoverer) TagKey() string {
	return d.tagKey
}

// Discover returns the members of struct type t: its declared fields in
// declaration order followed, in extended mode, by the accessors listed by
// its JSONProperties method in list order. The returned slice is shared when
// caching is enabled and must not be modified.
func (d *Discoverer) Discover(t reflect.Type, mode Mode) ([]Member, error) {
	if d.cache != nil {
		if cached, ok := d.cache.Load(cacheKey{t, mode}); ok {
			return cached.([]Member), nil
		}
	}

	members, err := d.discover(t, mode)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		actual, _ := d.cache.LoadOrStore(cacheKey{t, mode}, members)
		members = actual.([]Member)
	}
	return members, nil
}

func (d *Discoverer) discover(t reflect.Type, mode Mode) ([]Member, error) {
	fields, err := d.Fields(t, mode)
	if err != nil {
		return nil, err
	}
	if mode == ModeBasic {
		return fields, nil
	}
	return append(fields, Accessors(t)...), nil
}

// Fields returns the fields declared by t. Blank fields are skipped.
func (d *Discoverer) Fields(t reflect.Type, mode Mode) ([]Member, error) {
	members := make([]Member, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Name == "_" {
			continue
		}

		m := Member{
			Name:  field.Name,
			Type:  field.Type,
			Kind:  KindField,
			Index: i,
		}

		if mode == ModeExtended {
			directives, err := ParseTag(field.Name, field.Tag.Get(d.tagKey))
			if err != nil {
				return nil, err
			}
			m.Directives = directives
		}

		members = append(members, m)
	}
	return members, nil
}

// Accessors returns the accessors declared through PropertyDeclarer, in
// declaration order. Methods that are missing or have the wrong shape are
// still returned; IsEligible filters them out.
func Accessors(t reflect.Type) []Member {
	properties := Declared(t)
	if len(properties) == 0 {
		return nil
	}

	ptrType := reflect.PointerTo(t)
	members := make([]Member, 0, len(properties))
	for _, p := range properties {
		m := Member{
			Name:       p.Method,
			Kind:       KindAccessor,
			Index:      -1,
			Directives: p.Directives,
		}
		if method, ok := ptrType.MethodByName(p.Method); ok {
			m.Signature = method.Type
			if method.Type.NumOut() > 0 {
				m.Type = method.Type.Out(0)
			}
		}
		members = append(members, m)
	}
	return members
}

// Declared returns the properties declared by t, or nil when t does not
// implement PropertyDeclarer on its value or pointer receiver.
func Declared(t reflect.Type) []Property {
	ptrType := reflect.PointerTo(t)
	if !ptrType.Implements(declarerType) {
		return nil
	}
	declarer := reflect.New(t).Interface().(PropertyDeclarer)
	return declarer.JSONProperties()
}
