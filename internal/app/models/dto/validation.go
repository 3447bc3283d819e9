package dto

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a binding error into a VAL_001 detail with one
// entry per failing field
func HandleValidationError(err error) *ErrorDetail {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := NewValidationErrors()
		for _, fe := range verrs {
			fields.AddError(jsonFieldName(fe), formatValidationError(fe))
		}
		detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields.Errors)
		if len(fields.Errors) == 1 {
			detail = detail.WithField(fields.Errors[0].Field)
		}
		return detail
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails("Malformed JSON body")
	case errors.As(err, &typeErr):
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").
			WithField(typeErr.Field).
			WithDetails(typeErr.Field + " has the wrong type")
	default:
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}
}

func jsonFieldName(fe validator.FieldError) string {
	// Namespace is "Struct.Field[0]"; drop the struct name and lower the first letter
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return ns
	}
	return strings.ToLower(ns[:1]) + ns[1:]
}

func formatValidationError(e validator.FieldError) string {
	field := jsonFieldName(e)
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "url":
		return field + " must be a valid URL"
	case "uuid":
		return field + " must be a valid code"
	case "dataurl":
		return field + " must be a base64 image data URL"
	case "notblank":
		return field + " must not be blank"
	case "handle":
		return field + " must be 3-30 lowercase letters, digits or underscores"
	default:
		return field + " validation failed: " + e.Tag()
	}
}
