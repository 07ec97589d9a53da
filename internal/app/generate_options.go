package app

import (
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/numtheory"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
)

// NewGenerateOptions builds key generation options from the configured settings,
// overridden by the non-zero fields of params.
func NewGenerateOptions(settings config.RSASettings, params *keys.GenerateParams) (rsa.GenerateOptions, error) {
	exponent := settings.PublicExponent
	digits := numtheory.DigitRange{Min: settings.MinPrimeDigits, Max: settings.MaxPrimeDigits}

	if params != nil {
		if err := params.Validate(); err != nil {
			return rsa.GenerateOptions{}, fmt.Errorf("%w: %w", rsa.ErrInvalidOptions, err)
		}
		if params.PublicExponent != "" {
			exponent = params.PublicExponent
		}
		if params.MinPrimeDigits != 0 {
			digits.Min = params.MinPrimeDigits
		}
		if params.MaxPrimeDigits != 0 {
			digits.Max = params.MaxPrimeDigits
		}
	}

	e, err := biguint.Parse(exponent)
	if err != nil {
		return rsa.GenerateOptions{}, fmt.Errorf("%w: public exponent: %w", rsa.ErrInvalidOptions, err)
	}

	opts := rsa.GenerateOptions{
		PublicExponent: e,
		PrimeDigits:    digits,
		Rounds:         settings.PrimalityRounds,
		MaxAttempts:    settings.MaxAttempts,
		Workers:        settings.Workers,
	}
	if err := opts.Validate(); err != nil {
		return rsa.GenerateOptions{}, err
	}
	return opts, nil
}
