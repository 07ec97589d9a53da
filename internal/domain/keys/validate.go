package keys

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

func validateStruct(s interface{}) error {
	validate := validator.New()

	if err := validate.RegisterValidation("odd_exponent", validators.OddExponentValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
