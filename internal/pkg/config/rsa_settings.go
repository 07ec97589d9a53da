package config

import (
	"fmt"
	"time"
)

// RSASettings holds the key generation parameters.
type RSASettings struct {
	// PublicExponent is a decimal string so exponents beyond uint64 can be configured.
	PublicExponent    string        `mapstructure:"public_exponent" validate:"required,odd_exponent"`
	MinPrimeDigits    int           `mapstructure:"min_prime_digits" validate:"required,min=1,max=2048"`
	MaxPrimeDigits    int           `mapstructure:"max_prime_digits" validate:"required,gtefield=MinPrimeDigits,max=2048"`
	PrimalityRounds   int           `mapstructure:"primality_rounds" validate:"required,min=1,max=256"`
	Workers           int           `mapstructure:"workers" validate:"min=0,max=64"`
	MaxAttempts       int           `mapstructure:"max_attempts" validate:"required,min=1"`
	GenerationTimeout time.Duration `mapstructure:"generation_timeout" validate:"required"`
}

// DefaultRSASettings returns exponent 65537 with 150 to 151 digit primes.
func DefaultRSASettings() RSASettings {
	return RSASettings{
		PublicExponent:    "65537",
		MinPrimeDigits:    150,
		MaxPrimeDigits:    151,
		PrimalityRounds:   20,
		Workers:           0,
		MaxAttempts:       16,
		GenerationTimeout: 2 * time.Minute,
	}
}

// Validate checks that all fields in RSASettings are valid
func (s *RSASettings) Validate() error {
	if err := validateStruct(s); err != nil {
		return fmt.Errorf("validation failed for RSASettings: %w", err)
	}
	return nil
}
