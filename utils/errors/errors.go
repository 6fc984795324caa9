package errors

import (
	"fmt"

	"github.com/placemarkhq/placemark/constant"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// BusinessError is a recoverable domain-rule violation tagged with the name
// of the entity that caused it, so callers can map it back to a field.
type BusinessError struct {
	CustomError
	Entity string
}

func (b BusinessError) Error() string {
	return fmt.Sprintf("%s: %s", b.Entity, b.CustomError.Error())
}

func (b BusinessError) Unwrap() error {
	return b.CustomError
}

func SetBusinessError(errorType constant.ErrorType, entity string) BusinessError {
	return BusinessError{
		CustomError: SetCustomError(errorType),
		Entity:      entity,
	}
}

// FieldError is one violated validation rule on one property.
type FieldError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// ValidationErrors aggregates every violated rule of a submission rather
// than failing fast on the first one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", v[0].Property, v[0].Message)
}

// ByProperty groups the violations by property name for form rendering.
func (v ValidationErrors) ByProperty() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, fe := range v {
		out[fe.Property] = append(out[fe.Property], fe.Message)
	}
	return out
}
