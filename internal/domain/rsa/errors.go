package rsa

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/numtheory"
)

var (
	// ErrExponentNotInvertible is returned when the public exponent has no
	// inverse modulo lambda(n) for every attempted prime pair.
	ErrExponentNotInvertible = fmt.Errorf("rsa: public exponent is not invertible: %w", numtheory.ErrNotInvertible)
	// ErrMessageTooLarge is returned when the encoded message is not below the modulus.
	ErrMessageTooLarge = errors.New("rsa: message too large for modulus")
	// ErrCiphertextTooLarge is returned when the encoded ciphertext is not below the modulus.
	ErrCiphertextTooLarge = errors.New("rsa: ciphertext too large for modulus")
	// ErrValueTooLarge is returned by Decode when a value does not fit the requested size.
	ErrValueTooLarge = errors.New("rsa: value too large for requested size")
	// ErrInvalidOptions is returned for inconsistent key generation options.
	ErrInvalidOptions = errors.New("rsa: invalid generate options")
)
