// Package jsonmap converts Go struct values into JSON text by reading their
// fields and opted-in accessor methods at call time.
//
// Members are written in discovery order: the fields declared by the struct,
// then the accessors the type declares. Inclusion and naming are controlled
// with `jsonmap` struct tags on fields and with a JSONProperties method for
// accessors, since Go methods cannot carry tags.
//
// # Quick Start
//
//	type Post struct {
//	    title string
//	    likes int
//	}
//
//	out, err := jsonmap.ToJSON(Post{title: "JSON Mapper Test", likes: 42})
//	// out == `{"title":"JSON Mapper Test","likes":42}`
//
// Unexported fields are read like exported ones. Names are written exactly as
// declared, without case conversion.
//
// # Struct Tags
//
//   - jsonmap:"ignore" or jsonmap:"-" leaves the field out
//   - jsonmap:"rename=secret" writes the field under "secret"
//   - jsonmap:"rename='a,b'" quotes a name holding commas
//
// Directives are comma separated.
//
// # Accessors
//
// Accessor methods are written only when the type lists them in
// JSONProperties. The list is read from the zero value of the type, so it
// must not depend on the receiver:
//
//	type Book struct {
//	    title string
//	}
//
//	func (Book) JSONProperties() []jsonmap.Property {
//	    return []jsonmap.Property{
//	        jsonmap.Accessor("GetTitle", jsonmap.Rename("title")),
//	    }
//	}
//
//	func (b Book) GetTitle() string { return b.title }
//
// An accessor takes no argument and returns a value, optionally followed by
// an error. A returned error or a panic aborts the call with an
// ExtractionError. When a field and an accessor resolve to the same name the
// field wins, because fields are discovered first.
//
// The jsonmap-gen command writes JSONProperties methods from
// `//jsonmap:property` comments:
//
//	//go:generate jsonmap-gen generate .
//
//	//jsonmap:property rename=title
//	func (b Book) GetTitle() string { return b.title }
//
// # Values
//
// Booleans and numbers are written bare. Every other value is written as
// its fmt default text wrapped in double quotes, and nil pointers, maps,
// slices and interfaces are written as "null". Nested structs are not
// walked: they are written as their text. Quotes inside values are not
// escaped.
//
// # Modes
//
// ModeExtended, the default, honors directives and accessors. ModeBasic
// writes declared fields under their declared names and ignores everything
// else:
//
//	mapper, err := jsonmap.New(jsonmap.WithMode(jsonmap.ModeBasic))
//
// # Error Handling
//
//	out, err := mapper.ToJSON(v)
//	switch {
//	case errors.Is(err, jsonmap.ErrInvalidObject):
//	    // v is not a struct or a non-nil pointer to one
//	case jsonmap.IsExtractionError(err):
//	    // an accessor failed; no partial output is produced
//	case errors.Is(err, jsonmap.ErrInvalidDirective):
//	    // a struct tag or declared accessor is malformed
//	}
//
// Mapper.Validate reports every malformed directive of a type at once
// without reading any value.
//
// # Batches
//
// Mapper.ToJSONBatch converts many values concurrently and keeps the input
// order. Failures are reported per item in the result:
//
//	result, err := mapper.ToJSONBatch(ctx, values, &jsonmap.BatchOptions{MaxConcurrency: 8})
//	for _, batchErr := range result.Errors {
//	    log.Printf("item %d: %v", batchErr.Index, batchErr.Error)
//	}
//
// # Observability
//
//	logger := jsonmap.NewLogger(jsonmap.LoggerConfig{Format: jsonmap.FormatConsole})
//	mapper, err := jsonmap.New(
//	    jsonmap.WithLogger(logger),
//	    jsonmap.WithMetricsCollector(jsonmap.NewPrometheusMetricsCollector(nil)),
//	)
package jsonmap
