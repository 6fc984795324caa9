package form

import (
	"context"
	"sort"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
)

// OptionLoader resolves a select input's options at render time against the
// request's dependency context. The option universe is not known when the
// schema is compiled, so compiled rules for loader-backed selects enforce
// the base type only.
type OptionLoader func(ctx context.Context) ([]model.Option, error)

// Input declares one form field: its kind, constraints and display
// metadata, independent of any validation or rendering technology.
type Input struct {
	Kind        constant.InputKind
	Required    bool
	Min         *float64
	Max         *float64
	Placeholder string
	Description string

	// Options is the static option list of a select input.
	Options []model.Option
	// LoadOptions supplies options asynchronously instead of Options.
	LoadOptions OptionLoader

	// CheckedValue is the single accepted value of a checkbox input.
	// A checkbox without one is a programming error.
	CheckedValue string
}

// Definition declares a whole form: submit target, method and fields.
// Definitions are static configuration, built once at startup.
type Definition struct {
	Action string
	Method string
	Fields map[string]Input
	// Order fixes the field iteration order for rendering and validation.
	Order []string
}

// Num is a convenience for bound pointers in field literals.
func Num(v float64) *float64 {
	return &v
}

func (d *Definition) fieldNames() []string {
	if len(d.Order) > 0 {
		return d.Order
	}
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
