package rsa

import (
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/numtheory"
)

// PublicKey is the encrypting half of a key pair: the modulus n and the public exponent e.
type PublicKey struct {
	n biguint.BigUint
	e biguint.BigUint
}

// NewPublicKey builds a public key from a modulus and exponent.
func NewPublicKey(n, e biguint.BigUint) (*PublicKey, error) {
	if n.Cmp(biguint.FromUint64(2)) < 0 {
		return nil, fmt.Errorf("%w: modulus must be at least 2", ErrInvalidOptions)
	}
	if e.IsZero() {
		return nil, fmt.Errorf("%w: public exponent must be positive", ErrInvalidOptions)
	}
	return &PublicKey{n: n, e: e}, nil
}

// N returns the modulus.
func (k *PublicKey) N() biguint.BigUint { return k.n }

// E returns the public exponent.
func (k *PublicKey) E() biguint.BigUint { return k.e }

// Size returns the byte length of the modulus.
func (k *PublicKey) Size() int { return byteLen(k.n) }

// Encrypt computes m^e mod n for the message m encoded from plaintext and
// returns the ciphertext in its minimal big-endian form.
func (k *PublicKey) Encrypt(plaintext []byte) ([]byte, error) {
	c, err := k.encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return Decode(c, 0)
}

// EncryptBlock is Encrypt with the ciphertext left-padded to Size() bytes.
func (k *PublicKey) EncryptBlock(plaintext []byte) ([]byte, error) {
	c, err := k.encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return Decode(c, k.Size())
}

func (k *PublicKey) encrypt(plaintext []byte) (biguint.BigUint, error) {
	m := Encode(plaintext)
	if m.Cmp(k.n) >= 0 {
		return biguint.Zero(), fmt.Errorf("%w: %d bytes for a %d byte modulus", ErrMessageTooLarge, len(plaintext), k.Size())
	}
	c, err := numtheory.ModPow(m, k.e, k.n)
	if err != nil {
		return biguint.Zero(), fmt.Errorf("failed to encrypt: %w", err)
	}
	return c, nil
}
