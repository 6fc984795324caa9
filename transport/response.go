package transport

import (
	"encoding/json"
	"net/http"

	"github.com/placemarkhq/placemark/constant"
	"github.com/placemarkhq/placemark/utils/errors"
)

type apiResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Data    any                     `json:"data,omitempty"`
	Entity  string                  `json:"entity,omitempty"`
	Errors  errors.ValidationErrors `json:"errors,omitempty"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiResponse{
		Code:    constant.ErrorTypeCode[constant.Successful],
		Message: constant.ErrorTypeMessage[constant.Successful],
		Data:    data,
	})
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, apiResponse{
		Code:    constant.ErrorTypeCode[constant.ErrNotFound],
		Message: constant.ErrorTypeMessage[constant.ErrNotFound],
	})
}

// writeError maps the error taxonomy to the wire: business errors carry
// their entity tag, validation errors the flat per-property list, anything
// untyped becomes an internal error.
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case errors.BusinessError:
		writeJSON(w, e.ErrorHTTPCode(), apiResponse{
			Code:    e.ErrorCode(),
			Message: e.CustomError.Error(),
			Entity:  e.Entity,
		})
	case errors.CustomError:
		writeJSON(w, e.ErrorHTTPCode(), apiResponse{
			Code:    e.ErrorCode(),
			Message: e.Error(),
		})
	case errors.ValidationErrors:
		writeJSON(w, http.StatusBadRequest, apiResponse{
			Code:    constant.ErrorTypeCode[constant.ErrInvalidRequest],
			Message: constant.ErrorTypeMessage[constant.ErrInvalidRequest],
			Errors:  e,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, apiResponse{
			Code:    constant.ErrorTypeCode[constant.ErrInternal],
			Message: constant.ErrorTypeMessage[constant.ErrInternal],
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
