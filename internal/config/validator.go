package config

import (
	"CollegeHub/internal/apperr"

	"github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Validator hook.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		if fields, ok := err.(validator.ValidationErrors); ok && len(fields) > 0 {
			return apperr.Validation("Invalid value for field '" + fields[0].Field() + "'")
		}
		return apperr.Validation("Invalid request")
	}
	return nil
}
