// Package format renders a single member value as a JSON literal fragment.
//
// Booleans and numbers are written bare using the Go default text
// conversion. Every other value, absent values included, is written as its
// default text representation wrapped in double quotes. Embedded quotes and
// control characters are not escaped.
package format

import (
	"fmt"
	"reflect"
	"strconv"
)

// Null is the text written for an absent value.
const Null = "null"

// Value converts v into its JSON literal form.
func Value(v reflect.Value) string {
	chain, cyclic := follow(v)
	if cyclic {
		return quote(sprint(v))
	}

	elem := chain[len(chain)-1]
	if !elem.IsValid() {
		return quote(Null)
	}
	if IsLiteral(elem.Kind()) {
		return literal(elem)
	}

	switch elem.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if elem.IsNil() {
			return quote(Null)
		}
	}

	return quote(text(chain))
}

// IsLiteral reports whether values of kind k are written without quotes.
func IsLiteral(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func literal(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	default:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	}
}

// follow walks pointers and interfaces from v and returns every value met,
// v first. The last element is the zero Value when a nil ends the walk.
// cyclic is true when a pointer is met twice; the walk stops there.
func follow(v reflect.Value) (chain []reflect.Value, cyclic bool) {
	chain = []reflect.Value{v}
	var seen map[uintptr]struct{}

	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return append(chain, reflect.Value{}), false
		}
		if v.Kind() == reflect.Pointer {
			if seen == nil {
				seen = make(map[uintptr]struct{})
			}
			addr := v.Pointer()
			if _, ok := seen[addr]; ok {
				return chain, true
			}
			seen[addr] = struct{}{}
		}
		v = v.Elem()
		chain = append(chain, v)
	}
	return chain, false
}

// text returns the default text representation. A Stringer or error found
// anywhere along the chain takes precedence over the pointee.
func text(chain []reflect.Value) string {
	for _, cur := range chain {
		if !cur.CanInterface() {
			continue
		}
		switch cur.Interface().(type) {
		case fmt.Stringer, error:
			return fmt.Sprint(cur.Interface())
		}
	}
	return sprint(chain[len(chain)-1])
}

// sprint is fmt.Sprint for values that may come from unexported fields.
func sprint(v reflect.Value) string {
	if v.CanInterface() {
		return fmt.Sprint(v.Interface())
	}
	return fmt.Sprint(v)
}
