package config

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("odd_exponent", validators.OddExponentValidation)
	return validate
}

// validateStruct runs the struct tags of s and flattens validation errors
// into a single message naming every failing field.
func validateStruct(s interface{}) error {
	err := newValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Namespace(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
