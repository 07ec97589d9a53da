// Package validators holds custom go-playground/validator functions.
package validators

import (
	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/go-playground/validator/v10"
)

// OddExponentValidation validates that a string field is a decimal RSA public
// exponent: odd and at least 3. Empty values are left to the required tag.
func OddExponentValidation(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	e, err := biguint.Parse(raw)
	if err != nil {
		return false
	}
	return e.IsOdd() && e.Cmp(biguint.FromUint64(3)) >= 0
}
