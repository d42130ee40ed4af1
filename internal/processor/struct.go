package processor

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/hengadev/jsonmap/internal/jsonmaperr"
	"github.com/hengadev/jsonmap/internal/member"
)

const operationSerialize = "Serialize"

// StructProcessor turns a struct value into its JSON text form
type StructProcessor struct {
	discoverer      *member.Discoverer
	fieldProcessor  *FieldProcessor
	validator       *Validator
	observability   ObservabilityHook
	mode            member.Mode
	strictAccessors bool
}

// ObservabilityHook defines observability operations for struct processing
type ObservabilityHook interface {
	OnProcessStart(ctx context.Context, operation string, metadata map[string]any)
	OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)
	OnMemberSkipped(ctx context.Context, memberName string, reason string, metadata map[string]any)
}

// Options configures a StructProcessor
type Options struct {
	Mode            member.Mode
	StrictAccessors bool
}

// NewStructProcessor creates a new StructProcessor instance
func NewStructProcessor(discoverer *member.Discoverer, fieldProcessor *FieldProcessor, validator *Validator, observability ObservabilityHook, opts Options) *StructProcessor {
	return &StructProcessor{
		discoverer:      discoverer,
		fieldProcessor:  fieldProcessor,
		validator:       validator,
		observability:   observability,
		mode:            opts.Mode,
		strictAccessors: opts.StrictAccessors,
	}
}

// Serialize discovers the members of object, keeps the eligible ones,
// resolves their names and formats their values, then assembles the object
// literal. When several members resolve to the same name the first one in
// discovery order is kept. Any read failure aborts the call.
func (sp *StructProcessor) Serialize(ctx context.Context, object any) (string, error) {
	start := time.Now()
	metadata := map[string]any{
		"operation_type": "serialization",
		"mode":           sp.mode.String(),
	}
	if object != nil {
		metadata["object_type"] = reflect.TypeOf(object).String()
	}
	if !isNoOp(sp.observability) {
		metadata["call_id"] = uuid.NewString()
	}
	sp.observability.OnProcessStart(ctx, operationSerialize, metadata)

	result, err := sp.serialize(ctx, object, metadata)
	if err != nil {
		sp.observability.OnError(ctx, operationSerialize, err, metadata)
	}
	sp.observability.OnProcessComplete(ctx, operationSerialize, time.Since(start), err, metadata)

	return result, err
}

func (sp *StructProcessor) serialize(ctx context.Context, object any, metadata map[string]any) (string, error) {
	structValue, err := sp.validator.ValidateObject(object)
	if err != nil {
		return "", err
	}

	members, err := sp.discoverer.Discover(structValue.Type(), sp.mode)
	if err != nil {
		return "", err
	}

	if sp.strictAccessors && sp.mode == member.ModeExtended {
		if err := checkAccessors(structValue.Type(), members); err != nil {
			return "", err
		}
	}

	eligible := lo.Filter(members, func(m member.Member, _ int) bool {
		reason := member.SkipReason(m, sp.mode)
		if reason != "" {
			sp.observability.OnMemberSkipped(ctx, m.Name, reason, metadata)
		}
		return reason == ""
	})

	properties := make([]OutputProperty, 0, len(eligible))
	for _, m := range eligible {
		property, err := sp.fieldProcessor.Property(structValue, m)
		if err != nil {
			return "", err
		}
		properties = append(properties, property)
	}

	unique := lo.UniqBy(properties, func(p OutputProperty) string {
		return p.Name
	})
	metadata["properties"] = len(unique)

	return Assemble(unique), nil
}

// checkAccessors reports the first opted-in accessor whose method is
// missing or has an unsupported shape.
func checkAccessors(structType reflect.Type, members []member.Member) error {
	for _, m := range members {
		if m.Kind != member.KindAccessor || !m.Has(member.DirectiveProperty) || m.Has(member.DirectiveIgnore) {
			continue
		}
		if err := member.CheckAccessorShape(m.Signature); err != nil {
			return jsonmaperr.NewUnsupportedMemberError(m.Name, structType.String(), err.Error())
		}
	}
	return nil
}

// Assemble writes properties as `{"name":value,...}`. Names are written
// as they are, without escaping.
func Assemble(properties []OutputProperty) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range properties {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(p.Name)
		b.WriteString(`":`)
		b.WriteString(p.Value)
	}
	b.WriteByte('}')
	return b.String()
}

type noOpReporter interface {
	NoOp() bool
}

func isNoOp(hook ObservabilityHook) bool {
	reporter, ok := hook.(noOpReporter)
	return ok && reporter.NoOp()
}
