package member

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	title string
	doi   string `jsonmap:"ignore"`
	views int    `jsonmap:"rename=secret"`
	_     int
}

type catalog struct {
	title string
}

func (c catalog) JSONProperties() []Property {
	return []Property{
		{Method: "Title", Directives: []Directive{Marker(), Rename("title")}},
		{Method: "Unmarked"},
		{Method: "Lookup", Directives: []Directive{Marker()}},
		{Method: "Missing", Directives: []Directive{Marker()}},
		{Method: "Hidden", Directives: []Directive{Marker(), Ignore()}},
		{Method: "Size", Directives: []Directive{Marker()}},
	}
}

func (c catalog) Title() string            { return c.title }
func (c catalog) Unmarked() string         { return "unmarked" }
func (c *catalog) Lookup(key string) string { return key }
func (c catalog) Hidden() string           { return "hidden" }
func (c *catalog) Size() (int, error)      { return len(c.title), nil }

type badTag struct {
	name string `jsonmap:"hide"`
}

type summary struct {
	Name string
}

func memberNames(members []Member) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

func TestDiscoverFieldsInDeclarationOrder(t *testing.T) {
	d := NewDiscoverer("", false)
	assert.Equal(t, DefaultTagKey, d.TagKey())

	members, err := d.Discover(reflect.TypeOf(book{}), ModeExtended)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"title", "doi", "views"}, memberNames(members)); diff != "" {
		t.Errorf("member names mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, KindField, members[0].Kind)
	assert.Equal(t, 0, members[0].Index)
	assert.Equal(t, 2, members[2].Index)
	assert.Equal(t, []Directive{Ignore()}, members[1].Directives)
	assert.Equal(t, []Directive{Rename("secret")}, members[2].Directives)
	assert.Equal(t, reflect.TypeOf(0), members[2].Type)
}

func TestDiscoverBasicModeSkipsDirectivesAndAccessors(t *testing.T) {
	d := NewDiscoverer("", false)

	members, err := d.Discover(reflect.TypeOf(book{}), ModeBasic)
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "doi", "views"}, memberNames(members))
	for _, m := range members {
		assert.Empty(t, m.Directives)
	}

	members, err = d.Discover(reflect.TypeOf(catalog{}), ModeBasic)
	require.NoError(t, err)
	assert.Equal(t, []string{"title"}, memberNames(members))

	members, err = d.Discover(reflect.TypeOf(badTag{}), ModeBasic)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestDiscoverAccessorsAfterFields(t *testing.T) {
	d := NewDiscoverer("", false)

	members, err := d.Discover(reflect.TypeOf(catalog{}), ModeExtended)
	require.NoError(t, err)

	expected := []string{"title", "Title", "Unmarked", "Lookup", "Missing", "Hidden", "Size"}
	assert.Equal(t, expected, memberNames(members))

	title := members[1]
	assert.Equal(t, KindAccessor, title.Kind)
	assert.Equal(t, -1, title.Index)
	assert.Equal(t, reflect.TypeOf(""), title.Type)
	require.NotNil(t, title.Signature)

	missing := members[4]
	assert.Nil(t, missing.Signature)
	assert.Nil(t, missing.Type)
}

func TestDiscoverInvalidTag(t *testing.T) {
	d := NewDiscoverer("", true)
	_, err := d.Discover(reflect.TypeOf(badTag{}), ModeExtended)
	assert.Error(t, err)
}

func TestDiscoverCustomTagKey(t *testing.T) {
	type renamed struct {
		Title string `json:"ignore" out:"rename=headline"`
	}

	members, err := NewDiscoverer("out", false).Discover(reflect.TypeOf(renamed{}), ModeExtended)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "headline", ResolveName(members[0]))
}

func TestDiscoverCacheReturnsSameDescriptors(t *testing.T) {
	d := NewDiscoverer("", true)
	typ := reflect.TypeOf(catalog{})

	first, err := d.Discover(typ, ModeExtended)
	require.NoError(t, err)
	second, err := d.Discover(typ, ModeExtended)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Same(t, &first[0], &second[0])

	basic, err := d.Discover(typ, ModeBasic)
	require.NoError(t, err)
	assert.Len(t, basic, 1)
}

func TestDeclared(t *testing.T) {
	assert.Nil(t, Declared(reflect.TypeOf(summary{})))
	assert.Len(t, Declared(reflect.TypeOf(catalog{})), 6)
}

func TestIsEligible(t *testing.T) {
	members, err := NewDiscoverer("", false).Discover(reflect.TypeOf(catalog{}), ModeExtended)
	require.NoError(t, err)

	byName := make(map[string]Member, len(members))
	for _, m := range members {
		byName[m.Name] = m
	}

	tests := []struct {
		member   string
		eligible bool
		reason   string
	}{
		{"title", true, ""},
		{"Title", true, ""},
		{"Unmarked", false, ReasonNotOptedIn},
		{"Lookup", false, ReasonUnsupported},
		{"Missing", false, ReasonUnsupported},
		{"Hidden", false, ReasonIgnored},
		{"Size", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			m := byName[tt.member]
			assert.Equal(t, tt.eligible, IsEligible(m, ModeExtended))
			assert.Equal(t, tt.reason, SkipReason(m, ModeExtended))
		})
	}
}

func TestIsEligibleIgnoredField(t *testing.T) {
	members, err := NewDiscoverer("", false).Discover(reflect.TypeOf(book{}), ModeExtended)
	require.NoError(t, err)

	assert.True(t, IsEligible(members[0], ModeExtended))
	assert.False(t, IsEligible(members[1], ModeExtended))
	assert.Equal(t, ReasonIgnored, SkipReason(members[1], ModeExtended))

	// Basic mode skips the filter for fields.
	assert.True(t, IsEligible(Member{Name: "doi", Kind: KindField, Directives: []Directive{Ignore()}}, ModeBasic))
	assert.Equal(t, ReasonBasicMode, SkipReason(Member{Kind: KindAccessor}, ModeBasic))
}

func TestCheckAccessorShape(t *testing.T) {
	ptr := reflect.TypeOf(&catalog{})
	method := func(name string) reflect.Type {
		m, ok := ptr.MethodByName(name)
		require.True(t, ok, name)
		return m.Type
	}

	assert.NoError(t, CheckAccessorShape(method("Title")))
	assert.NoError(t, CheckAccessorShape(method("Size")))
	assert.EqualError(t, CheckAccessorShape(method("Lookup")), "takes 1 arguments, want none")
	assert.EqualError(t, CheckAccessorShape(nil), "is not an exported method")

	noResult := reflect.TypeOf(func(*catalog) {})
	assert.EqualError(t, CheckAccessorShape(noResult), "returns no value")

	badSecond := reflect.TypeOf(func(*catalog) (int, string) { return 0, "" })
	assert.EqualError(t, CheckAccessorShape(badSecond), "second result is string, want error")

	three := reflect.TypeOf(func(*catalog) (int, int, error) { return 0, 0, nil })
	assert.EqualError(t, CheckAccessorShape(three), "returns 3 values, want a value and an optional error")
}

func TestResolveName(t *testing.T) {
	assert.Equal(t, "viewsecret", ResolveName(Member{Name: "viewsecret"}))
	assert.Equal(t, "secret", ResolveName(Member{Name: "viewsecret", Directives: []Directive{Rename("secret")}}))
	assert.Equal(t, "first", ResolveName(Member{Name: "x", Directives: []Directive{Marker(), Rename("first"), Rename("second")}}))
	assert.Equal(t, "FirstName", ResolveName(Member{Name: "FirstName"}))
}

func TestModeAndKindStrings(t *testing.T) {
	assert.Equal(t, "basic", ModeBasic.String())
	assert.Equal(t, "extended", ModeExtended.String())
	assert.Equal(t, "unknown", Mode(9).String())
	assert.Equal(t, "field", KindField.String())
	assert.Equal(t, "accessor", KindAccessor.String())

	mode, ok := ParseMode("basic")
	assert.True(t, ok)
	assert.Equal(t, ModeBasic, mode)
	_, ok = ParseMode("verbose")
	assert.False(t, ok)
}
