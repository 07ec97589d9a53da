package v1

import (
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
)

// UploadKeyRequest overrides the configured generation parameters. All fields are optional.
type UploadKeyRequest struct {
	PublicExponent string `json:"public_exponent,omitempty"`
	MinPrimeDigits int    `json:"min_prime_digits,omitempty"`
	MaxPrimeDigits int    `json:"max_prime_digits,omitempty"`
}

// Params converts the request to generation parameters.
func (r *UploadKeyRequest) Params() *keys.GenerateParams {
	return &keys.GenerateParams{
		PublicExponent: r.PublicExponent,
		MinPrimeDigits: r.MinPrimeDigits,
		MaxPrimeDigits: r.MaxPrimeDigits,
	}
}

// Validate for validating UploadKeyRequest struct
func (r *UploadKeyRequest) Validate() error {
	return r.Params().Validate()
}

// CryptoKeyMetaResponse represents the response structure for key metadata
type CryptoKeyMetaResponse struct {
	ID              string    `json:"id"`
	KeyPairID       string    `json:"key_pair_id"`
	Algorithm       string    `json:"algorithm"`
	Type            string    `json:"type"`
	ModulusDigits   int       `json:"modulus_digits"`
	PublicExponent  string    `json:"public_exponent"`
	DateTimeCreated time.Time `json:"date_time_created"`
	UserID          string    `json:"user_id"`
}

// NewCryptoKeyMetaResponse maps key metadata to its response.
func NewCryptoKeyMetaResponse(meta *keys.CryptoKeyMeta) CryptoKeyMetaResponse {
	return CryptoKeyMetaResponse{
		ID:              meta.ID,
		KeyPairID:       meta.KeyPairID,
		Algorithm:       meta.Algorithm,
		Type:            meta.Type,
		ModulusDigits:   meta.ModulusDigits,
		PublicExponent:  meta.PublicExponent,
		DateTimeCreated: meta.DateTimeCreated,
		UserID:          meta.UserID,
	}
}

// DataRequest carries the bytes to encrypt or decrypt, base64 encoded in JSON.
type DataRequest struct {
	Data []byte `json:"data"`
}

// DataResponse carries the result of an encrypt or decrypt operation, base64 encoded in JSON.
type DataResponse struct {
	Data []byte `json:"data"`
}

// ErrorResponse represents an error message
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational message
type InfoResponse struct {
	Message string `json:"message"`
}
