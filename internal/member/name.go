package member

// ResolveName returns the output key of m: the value of its first rename
// directive, or its declared name.
func ResolveName(m Member) string {
	for _, d := range m.Directives {
		if d.Kind == DirectiveRename {
			return d.Value
		}
	}
	return m.Name
}
