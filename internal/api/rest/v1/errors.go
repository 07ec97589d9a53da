package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/cryptography"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, keys.ErrKeyNotFound):
		return http.StatusNotFound
	case errors.Is(err, rsa.ErrMessageTooLarge),
		errors.Is(err, rsa.ErrCiphertextTooLarge),
		errors.Is(err, rsa.ErrValueTooLarge),
		errors.Is(err, rsa.ErrInvalidOptions),
		errors.Is(err, keys.ErrKeyTypeMismatch),
		errors.Is(err, cryptography.ErrMalformedCiphertext),
		errors.Is(err, cryptography.ErrModulusTooSmall):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
