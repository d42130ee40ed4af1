package member

import (
	"fmt"
	"reflect"
)

// Reasons reported for members left out of the output.
const (
	ReasonIgnored     = "ignored"
	ReasonNotOptedIn  = "not_opted_in"
	ReasonUnsupported = "unsupported_shape"
	ReasonBasicMode   = "basic_mode"
)

// IsEligible reports whether m is written to the output.
func IsEligible(m Member, mode Mode) bool {
	return SkipReason(m, mode) == ""
}

// SkipReason returns why m is left out of the output, or "" when it is
// eligible.
func SkipReason(m Member, mode Mode) string {
	if mode == ModeBasic {
		if m.Kind == KindField {
			return ""
		}
		return ReasonBasicMode
	}
	if m.Has(DirectiveIgnore) {
		return ReasonIgnored
	}
	if m.Kind == KindAccessor {
		if !m.Has(DirectiveProperty) {
			return ReasonNotOptedIn
		}
		if CheckAccessorShape(m.Signature) != nil {
			return ReasonUnsupported
		}
	}
	return ""
}

// CheckAccessorShape checks that sig, a method type including its receiver,
// takes no argument and returns a value, optionally followed by an error.
func CheckAccessorShape(sig reflect.Type) error {
	if sig == nil {
		return fmt.Errorf("is not an exported method")
	}
	if args := sig.NumIn() - 1; args != 0 {
		return fmt.Errorf("takes %d arguments, want none", args)
	}
	switch sig.NumOut() {
	case 0:
		return fmt.Errorf("returns no value")
	case 1:
		return nil
	case 2:
		if sig.Out(1) != errorType {
			return fmt.Errorf("second result is %s, want error", sig.Out(1))
		}
		return nil
	default:
		return fmt.Errorf("returns %d values, want a value and an optional error", sig.NumOut())
	}
}
