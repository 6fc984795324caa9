package form

import (
	"fmt"
	"strconv"
	"strings"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
	"github.com/placemarkhq/placemark/utils/errors"
)

// Override wraps the auto-derived rule of one field with a custom check,
// e.g. "passwordConfirm must equal password". It runs only after the
// derived rule passed and returns the messages to report.
type Override func(value any, values map[string]any) []string

type fieldRule struct {
	kind     constant.InputKind
	required bool
	tag      string
	override Override
}

// Schema is the structural validation derived from one form definition.
// There is no second source of truth: what the form shows is what is
// accepted.
type Schema struct {
	def   *Definition
	rules map[string]fieldRule
	v     *gpvalidator.Validate
}

// Compile derives the validation schema of a definition. Overrides are
// keyed by field name. Compiling a checkbox input that lacks its checked
// value panics: that is a defect in static configuration, not a runtime
// validation failure.
func Compile(def *Definition, overrides map[string]Override) *Schema {
	s := &Schema{
		def:   def,
		rules: make(map[string]fieldRule, len(def.Fields)),
		v:     gpvalidator.New(),
	}

	for _, name := range def.fieldNames() {
		in := def.Fields[name]
		rule := fieldRule{kind: in.Kind, required: in.Required}

		switch in.Kind {
		case constant.InputText, constant.InputPassword:
			rule.tag = lengthTag(in)
		case constant.InputEmail:
			rule.tag = joinTags("email", lengthTag(in))
		case constant.InputNumber:
			rule.tag = boundsTag(in)
		case constant.InputSelect:
			// Loader-backed selects cannot restrict to a value set at
			// compile time; membership is re-checked after the options
			// are resolved.
			if in.LoadOptions == nil {
				rule.tag = oneOfTag(in.Options)
			}
		case constant.InputCheckbox:
			if in.CheckedValue == "" {
				panic(fmt.Sprintf("form: checkbox field %q has no checked value", name))
			}
			rule.required = true
			rule.tag = "eq=" + in.CheckedValue
		default:
			panic(fmt.Sprintf("form: field %q has unknown input kind %q", name, in.Kind))
		}

		if overrides != nil {
			rule.override = overrides[name]
		}
		s.rules[name] = rule
	}

	return s
}

// Validate checks a submission against the schema. Every violated rule is
// collected; validation never fails fast. A nil return means the
// submission is structurally valid.
func (s *Schema) Validate(values map[string]any) errors.ValidationErrors {
	var out errors.ValidationErrors

	for _, name := range s.def.fieldNames() {
		rule := s.rules[name]
		value, present := values[name]

		str, empty := stringValue(value)
		if !present || empty {
			if rule.required {
				out = append(out, errors.FieldError{Property: name, Message: "is required"})
			}
			continue
		}

		if rule.kind == constant.InputNumber {
			out = append(out, s.validateNumber(name, rule, value, str)...)
		} else if rule.tag != "" {
			out = append(out, s.validateVar(name, rule, str)...)
		}

		if rule.override != nil {
			for _, msg := range rule.override(value, values) {
				out = append(out, errors.FieldError{Property: name, Message: msg})
			}
		}
	}

	return out
}

// CheckMembership is the second phase for loader-backed selects: once the
// caller has resolved the current options, it re-validates that the
// submitted value is one of them.
func (s *Schema) CheckMembership(name string, value any, options []model.Option) *errors.FieldError {
	str, empty := stringValue(value)
	if empty {
		return nil
	}
	for _, opt := range options {
		if opt.Value == str {
			return nil
		}
	}
	return &errors.FieldError{Property: name, Message: "must be one of the available options"}
}

func (s *Schema) validateVar(name string, rule fieldRule, str string) errors.ValidationErrors {
	err := s.v.Var(str, rule.tag)
	if err == nil {
		return nil
	}
	verrs, ok := err.(gpvalidator.ValidationErrors)
	if !ok {
		return errors.ValidationErrors{{Property: name, Message: "is invalid"}}
	}
	out := make(errors.ValidationErrors, 0, len(verrs))
	for _, ve := range verrs {
		out = append(out, errors.FieldError{Property: name, Message: tagMessage(rule.kind, ve.Tag(), ve.Param())})
	}
	return out
}

func (s *Schema) validateNumber(name string, rule fieldRule, value any, str string) errors.ValidationErrors {
	f, err := floatValue(value, str)
	if err != nil {
		return errors.ValidationErrors{{Property: name, Message: "must be a number"}}
	}
	if rule.tag == "" {
		return nil
	}
	verr := s.v.Var(f, rule.tag)
	if verr == nil {
		return nil
	}
	verrs, ok := verr.(gpvalidator.ValidationErrors)
	if !ok {
		return errors.ValidationErrors{{Property: name, Message: "is invalid"}}
	}
	out := make(errors.ValidationErrors, 0, len(verrs))
	for _, ve := range verrs {
		out = append(out, errors.FieldError{Property: name, Message: tagMessage(rule.kind, ve.Tag(), ve.Param())})
	}
	return out
}

func lengthTag(in Input) string {
	var parts []string
	if in.Min != nil {
		parts = append(parts, "min="+strconv.Itoa(int(*in.Min)))
	}
	if in.Max != nil {
		parts = append(parts, "max="+strconv.Itoa(int(*in.Max)))
	}
	return strings.Join(parts, ",")
}

func boundsTag(in Input) string {
	var parts []string
	if in.Min != nil {
		parts = append(parts, "min="+formatBound(*in.Min))
	}
	if in.Max != nil {
		parts = append(parts, "max="+formatBound(*in.Max))
	}
	return strings.Join(parts, ",")
}

func oneOfTag(options []model.Option) string {
	if len(options) == 0 {
		return ""
	}
	values := make([]string, 0, len(options))
	for _, opt := range options {
		values = append(values, opt.Value)
	}
	return "oneof=" + strings.Join(values, " ")
}

func joinTags(tags ...string) string {
	var parts []string
	for _, t := range tags {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ",")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func tagMessage(kind constant.InputKind, tag, param string) string {
	switch tag {
	case "email":
		return "must be a valid email address"
	case "min":
		if kind == constant.InputNumber {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters"
	case "max":
		if kind == constant.InputNumber {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters"
	case "oneof":
		return "must be one of the available options"
	case "eq":
		return "must be accepted"
	default:
		return "is invalid"
	}
}

func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, v == ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), false
	case int:
		return strconv.Itoa(v), false
	case uint64:
		return strconv.FormatUint(v, 10), false
	case bool:
		return strconv.FormatBool(v), false
	default:
		return fmt.Sprintf("%v", v), false
	}
}

func floatValue(value any, str string) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return strconv.ParseFloat(str, 64)
	}
}
