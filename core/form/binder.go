package form

import (
	"context"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/model"
)

// Empty renders a fresh form: every field blank, no outcome flags set.
// Loader-backed select options are resolved now, against the request
// context.
func (d *Definition) Empty(ctx context.Context) (*model.Form, error) {
	return d.render(ctx, nil, nil, false)
}

// Bind renders a form after a submission. Fields named in errsByField are
// marked error with the verbatim messages; the remaining fields are marked
// success iff the submission as a whole succeeded. Password fields never
// echo their submitted value; fields absent from the submission render
// with a nil value.
func (d *Definition) Bind(ctx context.Context, values map[string]any, errsByField map[string][]string, success bool) (*model.Form, error) {
	return d.render(ctx, values, errsByField, success)
}

func (d *Definition) render(ctx context.Context, values map[string]any, errsByField map[string][]string, success bool) (*model.Form, error) {
	fields := make(map[string]*model.FormField, len(d.Fields))

	for _, name := range d.fieldNames() {
		in := d.Fields[name]

		options := in.Options
		if in.LoadOptions != nil {
			loaded, err := in.LoadOptions(ctx)
			if err != nil {
				return nil, err
			}
			options = loaded
		}

		field := &model.FormField{
			Errors:      []string{},
			InputType:   in.Kind,
			Required:    in.Required,
			Min:         in.Min,
			Max:         in.Max,
			Placeholder: in.Placeholder,
			Description: in.Description,
			Options:     options,
		}

		if values != nil {
			if msgs, failed := errsByField[name]; failed {
				field.Error = true
				field.Errors = msgs
			} else {
				field.Success = success
			}
			if in.Kind != constant.InputPassword {
				if v, ok := values[name]; ok {
					field.Value = v
				}
			}
		}

		fields[name] = field
	}

	return &model.Form{Action: d.Action, Method: d.Method, Fields: fields}, nil
}
