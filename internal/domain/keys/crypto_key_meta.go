package keys

import "time"

// CryptoKeyMeta describes one half of a stored key pair. The key material
// itself lives in the vault.
type CryptoKeyMeta struct {
	ID        string `validate:"required,uuid4"`
	KeyPairID string `validate:"required,uuid4"`
	Algorithm string `validate:"required,oneof=RSA"`
	Type      string `validate:"required,oneof=public private"`
	// ModulusDigits is the decimal length of n.
	ModulusDigits   int       `validate:"required,min=1"`
	PublicExponent  string    `validate:"required,odd_exponent"`
	DateTimeCreated time.Time `validate:"required"`
	UserID          string    `validate:"required,uuid4"`
}

// Validate for validating CryptoKeyMeta struct
func (k *CryptoKeyMeta) Validate() error {
	return validateStruct(k)
}

// GenerateParams overrides the configured key generation parameters for one
// request. Zero values keep the configured defaults.
type GenerateParams struct {
	PublicExponent string `validate:"omitempty,odd_exponent"`
	MinPrimeDigits int    `validate:"omitempty,min=1,max=2048"`
	MaxPrimeDigits int    `validate:"omitempty,min=1,max=2048"`
}

// Validate for validating GenerateParams struct
func (p *GenerateParams) Validate() error {
	return validateStruct(p)
}
