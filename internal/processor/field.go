package processor

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/hengadev/jsonmap/internal/format"
	"github.com/hengadev/jsonmap/internal/jsonmaperr"
	"github.com/hengadev/jsonmap/internal/member"
)

// OutputProperty is a resolved name and its formatted value.
type OutputProperty struct {
	Name  string
	Value string
}

// FieldProcessor reads and formats individual members
type FieldProcessor struct{}

// NewFieldProcessor creates a new FieldProcessor instance
func NewFieldProcessor() *FieldProcessor {
	return &FieldProcessor{}
}

// Property resolves the output name of m, reads its value from structValue
// and formats it. structValue must be addressable.
func (fp *FieldProcessor) Property(structValue reflect.Value, m member.Member) (OutputProperty, error) {
	var (
		text string
		err  error
	)

	switch m.Kind {
	case member.KindField:
		text, err = fp.readField(structValue, m)
	case member.KindAccessor:
		text, err = fp.invokeAccessor(structValue, m)
	default:
		err = jsonmaperr.NewExtractionError(m.Name, structValue.Type().String(), jsonmaperr.Unknown,
			fmt.Errorf("unknown member kind %d", m.Kind))
	}
	if err != nil {
		return OutputProperty{}, err
	}

	return OutputProperty{Name: member.ResolveName(m), Value: text}, nil
}

// readField formats the field at m.Index. Unexported fields are read
// through a view built for this single read; nothing outlives the call.
func (fp *FieldProcessor) readField(structValue reflect.Value, m member.Member) (string, error) {
	fieldValue := structValue.Field(m.Index)
	if fieldValue.CanInterface() {
		return format.Value(fieldValue), nil
	}

	view, err := elevate(fieldValue)
	if err != nil {
		return "", jsonmaperr.NewExtractionError(m.Name, structValue.Type().String(), jsonmaperr.ReadField, err)
	}
	return format.Value(view), nil
}

// elevate returns a readable alias of an unexported field value.
func elevate(fieldValue reflect.Value) (reflect.Value, error) {
	if !fieldValue.CanAddr() {
		return reflect.Value{}, fmt.Errorf("field of type %s is not addressable", fieldValue.Type())
	}
	return reflect.NewAt(fieldValue.Type(), unsafe.Pointer(fieldValue.UnsafeAddr())).Elem(), nil
}

// invokeAccessor calls the accessor method on a pointer to structValue.
// A returned error or a panic aborts the read.
func (fp *FieldProcessor) invokeAccessor(structValue reflect.Value, m member.Member) (text string, err error) {
	typeName := structValue.Type().String()

	method := structValue.Addr().MethodByName(m.Name)
	if !method.IsValid() {
		return "", jsonmaperr.NewExtractionError(m.Name, typeName, jsonmaperr.InvokeAccessor,
			fmt.Errorf("method is not declared"))
	}
	if err := member.CheckAccessorShape(m.Signature); err != nil {
		return "", jsonmaperr.NewExtractionError(m.Name, typeName, jsonmaperr.InvokeAccessor, err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = jsonmaperr.NewExtractionError(m.Name, typeName, jsonmaperr.InvokeAccessor, fmt.Errorf("panic: %v", r))
		}
	}()

	results := method.Call(nil)
	if len(results) == 2 && !results[1].IsNil() {
		return "", jsonmaperr.NewExtractionError(m.Name, typeName, jsonmaperr.InvokeAccessor, results[1].Interface().(error))
	}

	return format.Value(results[0]), nil
}
