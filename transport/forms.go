package transport

import (
	"context"
	"strconv"

	"github.com/placemarkhq/placemark/application/category"
	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/core/form"
	"github.com/placemarkhq/placemark/model"
)

// Forms is the form-definition registry: every HTML form the app renders,
// with its compiled validation schema. Built once at startup; definitions
// and schemas are immutable afterwards.
type Forms struct {
	Signup    *form.Definition
	Login     *form.Definition
	Category  *form.Definition
	PlaceMark *form.Definition

	SignupSchema    *form.Schema
	LoginSchema     *form.Schema
	CategorySchema  *form.Schema
	PlaceMarkSchema *form.Schema
}

func NewForms(categoryApp category.CategoryApp) *Forms {
	signup := &form.Definition{
		Action: "/signup",
		Method: "POST",
		Order:  []string{"firstName", "lastName", "email", "password", "passwordConfirm", "terms"},
		Fields: map[string]form.Input{
			"firstName": {Kind: constant.InputText, Required: true, Max: form.Num(100), Placeholder: "First name"},
			"lastName":  {Kind: constant.InputText, Required: true, Max: form.Num(100), Placeholder: "Last name"},
			"email":     {Kind: constant.InputEmail, Required: true, Placeholder: "Email"},
			"password":  {Kind: constant.InputPassword, Required: true, Min: form.Num(6), Placeholder: "Password"},
			"passwordConfirm": {
				Kind: constant.InputPassword, Required: true,
				Placeholder: "Repeat password",
			},
			"terms": {
				Kind: constant.InputCheckbox, CheckedValue: "accepted",
				Description: "I accept the terms of service",
			},
		},
	}

	login := &form.Definition{
		Action: "/login",
		Method: "POST",
		Order:  []string{"email", "password"},
		Fields: map[string]form.Input{
			"email":    {Kind: constant.InputEmail, Required: true, Placeholder: "Email"},
			"password": {Kind: constant.InputPassword, Required: true, Placeholder: "Password"},
		},
	}

	categoryDef := &form.Definition{
		Action: "/dashboard/category",
		Method: "POST",
		Order:  []string{"designation"},
		Fields: map[string]form.Input{
			"designation": {Kind: constant.InputText, Required: true, Max: form.Num(100), Placeholder: "Category name"},
		},
	}

	placemark := &form.Definition{
		Action: "/placemark",
		Method: "POST",
		Order:  []string{"designation", "description", "latitude", "longitude", "category"},
		Fields: map[string]form.Input{
			"designation": {Kind: constant.InputText, Required: true, Max: form.Num(100), Placeholder: "Name"},
			"description": {Kind: constant.InputText, Max: form.Num(500), Placeholder: "Description"},
			"latitude":    {Kind: constant.InputNumber, Required: true, Min: form.Num(-90), Max: form.Num(90), Placeholder: "Latitude"},
			"longitude":   {Kind: constant.InputNumber, Required: true, Min: form.Num(-180), Max: form.Num(180), Placeholder: "Longitude"},
			"category": {
				Kind: constant.InputSelect, Required: true,
				LoadOptions: categoryOptions(categoryApp),
				Description: "Category",
			},
		},
	}

	signupOverrides := map[string]form.Override{
		"passwordConfirm": func(value any, values map[string]any) []string {
			if value != values["password"] {
				return []string{"must match password"}
			}
			return nil
		},
	}

	return &Forms{
		Signup:    signup,
		Login:     login,
		Category:  categoryDef,
		PlaceMark: placemark,

		SignupSchema:    form.Compile(signup, signupOverrides),
		LoginSchema:     form.Compile(login, nil),
		CategorySchema:  form.Compile(categoryDef, nil),
		PlaceMarkSchema: form.Compile(placemark, nil),
	}
}

// categoryOptions resolves the select options of the placemark form at
// render time. The option universe is not known at schema-compile time;
// membership is re-checked after resolution.
func categoryOptions(categoryApp category.CategoryApp) form.OptionLoader {
	return func(ctx context.Context) ([]model.Option, error) {
		res, err := categoryApp.List(ctx, model.ListRequest{Take: model.MaxTake})
		if err != nil {
			return nil, err
		}
		options := make([]model.Option, 0, len(res.Data))
		for _, c := range res.Data {
			options = append(options, model.Option{
				Value: strconv.FormatUint(c.ID, 10),
				Label: c.Designation,
			})
		}
		return options, nil
	}
}
