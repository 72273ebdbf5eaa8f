// Package form implements the cost calculator input model: field parsing,
// bounds checking and the rules deciding which fields apply to the chosen
// integration pattern. Every function is pure; callers own the state value.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finopsmind/costmeter/internal/model"
)

// Field names a form input. The name doubles as the payload key.
type Field string

const (
	FieldIntegrationPattern    Field = "integration_pattern"
	FieldIntegrationComplexity Field = "integration_complexity"
	FieldInfrastructureModel   Field = "infrastructure_model"
	FieldOperationalComplexity Field = "operational_complexity"
	FieldFirstIntegration      Field = "first_integration"
	FieldTPS                   Field = "tps"
	FieldEventsPerSecond       Field = "events_per_second"
	FieldStorageOfferedGB      Field = "storage_offered_gb"
	FieldPayloadKB             Field = "payload_kb"
	FieldMappingRequired       Field = "mapping_required"
	FieldNumberOfFields        Field = "number_of_fields"
	FieldMappingComplexity     Field = "mapping_complexity"
)

// Fields lists every field in form order. Fields that drive visibility come
// before the fields they control.
var Fields = []Field{
	FieldIntegrationPattern,
	FieldIntegrationComplexity,
	FieldInfrastructureModel,
	FieldOperationalComplexity,
	FieldFirstIntegration,
	FieldTPS,
	FieldEventsPerSecond,
	FieldStorageOfferedGB,
	FieldPayloadKB,
	FieldMappingRequired,
	FieldNumberOfFields,
	FieldMappingComplexity,
}

// ErrUnknownField is returned for a field name outside Fields.
var ErrUnknownField = errors.New("unknown field")

// FieldError reports a rejected value for one field.
type FieldError struct {
	Field   Field
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type kind int

const (
	kindPattern kind = iota
	kindComplexity
	kindInfraModel
	kindBool
	kindInt
)

type spec struct {
	label  string
	kind   kind
	attr   string // InputState struct field, for partial validation
	min    int
	max    int
	filter func(model.InputState) bool
}

var specs = map[Field]spec{
	FieldIntegrationPattern:    {label: "Integration Pattern", kind: kindPattern, attr: "IntegrationPattern"},
	FieldIntegrationComplexity: {label: "Integration Complexity", kind: kindComplexity, attr: "IntegrationComplexity", filter: notEventBased},
	FieldInfrastructureModel:   {label: "Infrastructure Model", kind: kindInfraModel, attr: "InfrastructureModel", filter: notEventBased},
	FieldOperationalComplexity: {label: "Operational Complexity", kind: kindComplexity, attr: "OperationalComplexity"},
	FieldFirstIntegration:      {label: "First Integration?", kind: kindBool, attr: "FirstIntegration", filter: dedicated},
	FieldTPS:                   {label: "Transactions per Second", kind: kindInt, attr: "TPS", min: 1, max: 50, filter: synchronous},
	FieldEventsPerSecond:       {label: "Events per Second", kind: kindInt, attr: "EventsPerSecond", min: 1, max: 1000, filter: eventDriven},
	FieldStorageOfferedGB:      {label: "Storage Offered (GB)", kind: kindInt, attr: "StorageOfferedGB", min: 0, max: 1000, filter: eventDriven},
	FieldPayloadKB:             {label: "Payload Size (KB)", kind: kindInt, attr: "PayloadKB", min: 1, max: 10000},
	FieldMappingRequired:       {label: "Mapping Required?", kind: kindBool, attr: "MappingRequired"},
	FieldNumberOfFields:        {label: "Number of Fields", kind: kindInt, attr: "NumberOfFields", min: 1, max: 500, filter: mapping},
	FieldMappingComplexity:     {label: "Mapping Complexity", kind: kindComplexity, attr: "MappingComplexity", filter: mapping},
}

// Visibility rules.

func notEventBased(s model.InputState) bool { return s.IntegrationPattern != model.PatternEventBased }

func synchronous(s model.InputState) bool { return s.IntegrationPattern == model.PatternSynchronous }

func eventDriven(s model.InputState) bool {
	return s.IntegrationPattern == model.PatternAsynchronous || s.IntegrationPattern == model.PatternEventBased
}

// dedicated looks at the effective infrastructure model: a hidden model is no model.
func dedicated(s model.InputState) bool {
	return notEventBased(s) && s.InfrastructureModel == model.InfraModelDedicated
}

func mapping(s model.InputState) bool { return s.MappingRequired }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Defaults returns the initial state: first option of every select and the
// lower bound of every number.
func Defaults() model.InputState {
	return model.InputState{
		IntegrationPattern:    model.PatternSynchronous,
		IntegrationComplexity: model.ComplexitySimple,
		InfrastructureModel:   model.InfraModelShared,
		OperationalComplexity: model.ComplexitySimple,
		TPS:                   1,
		EventsPerSecond:       1,
		StorageOfferedGB:      0,
		PayloadKB:             1,
		NumberOfFields:        1,
		MappingComplexity:     model.ComplexitySimple,
	}
}

// Label returns the caption shown next to a field.
func Label(f Field) string { return specs[f].label }

// Bounds returns the inclusive range accepted by a numeric field.
func Bounds(f Field) (lo, hi int, ok bool) {
	sp, found := specs[f]
	if !found || sp.kind != kindInt {
		return 0, 0, false
	}
	return sp.min, sp.max, true
}

// Visible reports whether f applies to the given state.
func Visible(s model.InputState, f Field) bool {
	sp, ok := specs[f]
	if !ok {
		return false
	}
	return sp.filter == nil || sp.filter(s)
}

// VisibleFields returns the fields that apply to s, in form order.
func VisibleFields(s model.InputState) []Field {
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if Visible(s, f) {
			out = append(out, f)
		}
	}
	return out
}

// Set parses raw into field f and returns the updated state. s is not
// modified. Values outside the field's bounds are rejected.
func Set(s model.InputState, f Field, raw string) (model.InputState, error) {
	sp, ok := specs[f]
	if !ok {
		return s, fmt.Errorf("%w %q", ErrUnknownField, f)
	}
	orig := s
	raw = strings.TrimSpace(raw)

	switch sp.kind {
	case kindPattern:
		p, err := parseOption(f, raw, model.Patterns)
		if err != nil {
			return s, err
		}
		s.IntegrationPattern = p
	case kindComplexity:
		c, err := parseOption(f, raw, model.Complexities)
		if err != nil {
			return s, err
		}
		switch f {
		case FieldIntegrationComplexity:
			s.IntegrationComplexity = c
		case FieldOperationalComplexity:
			s.OperationalComplexity = c
		case FieldMappingComplexity:
			s.MappingComplexity = c
		}
	case kindInfraModel:
		m, err := parseOption(f, raw, model.InfraModels)
		if err != nil {
			return s, err
		}
		s.InfrastructureModel = m
	case kindBool:
		setBool(&s, f, parseBool(raw))
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return s, &FieldError{Field: f, Value: raw, Message: "must be a whole number"}
		}
		switch f {
		case FieldTPS:
			s.TPS = n
		case FieldEventsPerSecond:
			s.EventsPerSecond = n
		case FieldStorageOfferedGB:
			s.StorageOfferedGB = n
		case FieldPayloadKB:
			s.PayloadKB = n
		case FieldNumberOfFields:
			s.NumberOfFields = n
		}
		// Zero passes an omitempty tag, so the lower bound is checked here too.
		if n < sp.min || n > sp.max {
			return orig, outOfRange(f, raw, sp)
		}
	}

	if err := validate.StructPartial(s, sp.attr); err != nil {
		return orig, toFieldError(f, raw, err)
	}
	return s, nil
}

// Decode applies posted form values on top of prev. Fields are applied in
// form order so a pattern change is seen before the fields it controls. A
// checkbox that was rendered but not posted is unchecked.
func Decode(prev model.InputState, values url.Values) (model.InputState, error) {
	rendered := prev
	next := prev
	for _, f := range Fields {
		raw, posted := values[string(f)]
		switch {
		case posted && len(raw) > 0:
			s, err := Set(next, f, raw[len(raw)-1])
			if err != nil {
				return prev, err
			}
			next = s
		case specs[f].kind == kindBool && Visible(rendered, f):
			setBool(&next, f, false)
		}
	}
	return next, nil
}

// Validate checks a complete state, typically one decoded from JSON.
func Validate(s model.InputState) error {
	for _, f := range Fields {
		sp := specs[f]
		if !Visible(s, f) {
			continue
		}
		switch sp.kind {
		case kindInt:
			if n := intValue(s, f); n < sp.min || n > sp.max {
				return outOfRange(f, strconv.Itoa(n), sp)
			}
		case kindPattern, kindComplexity, kindInfraModel:
			if Value(s, f) == "" {
				return &FieldError{Field: f, Message: "must be one of " + strings.Join(Options(f), ", ")}
			}
		}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return toFieldError(fieldForAttr(verrs[0].StructField()), fmt.Sprint(verrs[0].Value()), err)
		}
		return err
	}
	return nil
}

func setBool(s *model.InputState, f Field, b bool) {
	switch f {
	case FieldFirstIntegration:
		s.FirstIntegration = b
	case FieldMappingRequired:
		s.MappingRequired = b
	}
}

func intValue(s model.InputState, f Field) int {
	switch f {
	case FieldTPS:
		return s.TPS
	case FieldEventsPerSecond:
		return s.EventsPerSecond
	case FieldStorageOfferedGB:
		return s.StorageOfferedGB
	case FieldPayloadKB:
		return s.PayloadKB
	case FieldNumberOfFields:
		return s.NumberOfFields
	}
	return 0
}

func parseOption[T ~string](f Field, raw string, options []T) (T, error) {
	for _, o := range options {
		if strings.EqualFold(string(o), raw) {
			return o, nil
		}
	}
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = string(o)
	}
	var zero T
	return zero, &FieldError{Field: f, Value: raw, Message: "must be one of " + strings.Join(names, ", ")}
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func outOfRange(f Field, raw string, sp spec) *FieldError {
	return &FieldError{
		Field:   f,
		Value:   raw,
		Message: fmt.Sprintf("must be between %d and %d", sp.min, sp.max),
	}
}

func toFieldError(f Field, raw string, err error) *FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if sp, ok := specs[f]; ok && sp.kind == kindInt {
			return outOfRange(f, raw, sp)
		}
		return &FieldError{Field: f, Value: raw, Message: "failed " + verrs[0].Tag() + " check"}
	}
	return &FieldError{Field: f, Value: raw, Message: err.Error()}
}

func fieldForAttr(attr string) Field {
	for f, sp := range specs {
		if sp.attr == attr {
			return f
		}
	}
	return Field(attr)
}

// Control describes how a field is drawn.
type Control string

const (
	ControlSelect   Control = "select"
	ControlCheckbox Control = "checkbox"
	ControlNumber   Control = "number"
)

// ControlOf returns the input control used for f.
func ControlOf(f Field) Control {
	switch specs[f].kind {
	case kindBool:
		return ControlCheckbox
	case kindInt:
		return ControlNumber
	default:
		return ControlSelect
	}
}

// Options returns the choices of a select field, in display order.
func Options(f Field) []string {
	var out []string
	switch specs[f].kind {
	case kindPattern:
		for _, p := range model.Patterns {
			out = append(out, p.String())
		}
	case kindComplexity:
		for _, c := range model.Complexities {
			out = append(out, c.String())
		}
	case kindInfraModel:
		for _, m := range model.InfraModels {
			out = append(out, m.String())
		}
	}
	return out
}

// Value returns the current value of f as the form would post it.
func Value(s model.InputState, f Field) string {
	switch f {
	case FieldIntegrationPattern:
		return s.IntegrationPattern.String()
	case FieldIntegrationComplexity:
		return s.IntegrationComplexity.String()
	case FieldInfrastructureModel:
		return s.InfrastructureModel.String()
	case FieldOperationalComplexity:
		return s.OperationalComplexity.String()
	case FieldMappingComplexity:
		return s.MappingComplexity.String()
	case FieldFirstIntegration:
		return strconv.FormatBool(s.FirstIntegration)
	case FieldMappingRequired:
		return strconv.FormatBool(s.MappingRequired)
	}
	return strconv.Itoa(intValue(s, f))
}
