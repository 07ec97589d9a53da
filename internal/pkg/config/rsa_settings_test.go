//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRSASettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*RSASettings)
		expectedError bool
	}{
		{name: "defaults", mutate: func(*RSASettings) {}},
		{name: "small exponent", mutate: func(s *RSASettings) { s.PublicExponent = "3" }},
		{name: "single digit primes", mutate: func(s *RSASettings) { s.MinPrimeDigits, s.MaxPrimeDigits = 1, 1 }},
		{name: "even exponent", mutate: func(s *RSASettings) { s.PublicExponent = "65536" }, expectedError: true},
		{name: "exponent one", mutate: func(s *RSASettings) { s.PublicExponent = "1" }, expectedError: true},
		{name: "non decimal exponent", mutate: func(s *RSASettings) { s.PublicExponent = "0x10001" }, expectedError: true},
		{name: "missing exponent", mutate: func(s *RSASettings) { s.PublicExponent = "" }, expectedError: true},
		{name: "inverted digit range", mutate: func(s *RSASettings) { s.MinPrimeDigits, s.MaxPrimeDigits = 151, 150 }, expectedError: true},
		{name: "zero digits", mutate: func(s *RSASettings) { s.MinPrimeDigits = 0 }, expectedError: true},
		{name: "zero rounds", mutate: func(s *RSASettings) { s.PrimalityRounds = 0 }, expectedError: true},
		{name: "negative workers", mutate: func(s *RSASettings) { s.Workers = -1 }, expectedError: true},
		{name: "zero attempts", mutate: func(s *RSASettings) { s.MaxAttempts = 0 }, expectedError: true},
		{name: "missing timeout", mutate: func(s *RSASettings) { s.GenerationTimeout = 0 }, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultRSASettings()
			tt.mutate(&settings)

			err := settings.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVaultSettingsValidation(t *testing.T) {
	assert.NoError(t, (&VaultSettings{KeyDir: "keys"}).Validate())
	assert.Error(t, (&VaultSettings{}).Validate())
}
