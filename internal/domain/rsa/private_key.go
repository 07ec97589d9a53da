package rsa

import (
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/numtheory"
)

// PrivateKey is the decrypting half of a key pair: the primes p and q and the
// private exponent d. The modulus n = p*q is computed once on construction.
type PrivateKey struct {
	p biguint.BigUint
	q biguint.BigUint
	d biguint.BigUint
	n biguint.BigUint
}

// NewPrivateKey builds a private key from its primes and private exponent.
func NewPrivateKey(p, q, d biguint.BigUint) (*PrivateKey, error) {
	two := biguint.FromUint64(2)
	if p.Cmp(two) < 0 || q.Cmp(two) < 0 {
		return nil, fmt.Errorf("%w: primes must be at least 2", ErrInvalidOptions)
	}
	if d.IsZero() {
		return nil, fmt.Errorf("%w: private exponent must be positive", ErrInvalidOptions)
	}
	return &PrivateKey{p: p, q: q, d: d, n: p.Mul(q)}, nil
}

// P returns the first prime.
func (k *PrivateKey) P() biguint.BigUint { return k.p }

// Q returns the second prime.
func (k *PrivateKey) Q() biguint.BigUint { return k.q }

// D returns the private exponent.
func (k *PrivateKey) D() biguint.BigUint { return k.d }

// N returns the modulus p*q.
func (k *PrivateKey) N() biguint.BigUint { return k.n }

// Size returns the byte length of the modulus.
func (k *PrivateKey) Size() int { return byteLen(k.n) }

// Public returns the public key with exponent e sharing this key's modulus.
func (k *PrivateKey) Public(e biguint.BigUint) (*PublicKey, error) {
	return NewPublicKey(k.n, e)
}

// Decrypt computes c^d mod n for the ciphertext c encoded from ciphertext and
// returns the message in its minimal big-endian form. Leading zero bytes of
// the original plaintext are not recovered; use DecryptBlock when they matter.
func (k *PrivateKey) Decrypt(ciphertext []byte) ([]byte, error) {
	m, err := k.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	return Decode(m, 0)
}

// DecryptBlock is Decrypt with the message left-padded to size bytes, the
// length the caller recorded for the plaintext.
func (k *PrivateKey) DecryptBlock(ciphertext []byte, size int) ([]byte, error) {
	m, err := k.decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	return Decode(m, size)
}

func (k *PrivateKey) decrypt(ciphertext []byte) (biguint.BigUint, error) {
	c := Encode(ciphertext)
	if c.Cmp(k.n) >= 0 {
		return biguint.Zero(), fmt.Errorf("%w: %d bytes for a %d byte modulus", ErrCiphertextTooLarge, len(ciphertext), k.Size())
	}
	m, err := numtheory.ModPow(c, k.d, k.n)
	if err != nil {
		return biguint.Zero(), fmt.Errorf("failed to decrypt: %w", err)
	}
	return m, nil
}
