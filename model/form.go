package model

import "github.com/placemarkhq/placemark/constant"

// Option is one selectable value of a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormField is the render-ready state of one input: outcome flags, the
// verbatim validator messages, the echoed value and the static display
// metadata from the input definition.
type FormField struct {
	Success     bool               `json:"success"`
	Error       bool               `json:"error"`
	Errors      []string           `json:"errors"`
	Value       any                `json:"value"`
	InputType   constant.InputKind `json:"inputType"`
	Required    bool               `json:"required"`
	Min         *float64           `json:"min,omitempty"`
	Max         *float64           `json:"max,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Description string             `json:"description,omitempty"`
	Options     []Option           `json:"options,omitempty"`
}

// Form is a render-ready form model.
type Form struct {
	Action string                `json:"action"`
	Method string                `json:"method"`
	Fields map[string]*FormField `json:"fields"`
}
