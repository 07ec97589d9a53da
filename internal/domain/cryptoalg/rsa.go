package cryptoalg

import (
	"context"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
)

// RSAProcessor handles textbook RSA key pairs built on the boundless integer engine.
// No padding is applied: equal plaintexts under one key give equal ciphertexts.
type RSAProcessor interface {
	// GenerateKeys generates a key pair. Cancelling ctx aborts the prime search.
	GenerateKeys(ctx context.Context, opts rsa.GenerateOptions) (*rsa.KeyPair, error)

	// Encrypt encrypts plaintext of any length block by block with the public key.
	Encrypt(plainText []byte, publicKey *rsa.PublicKey) ([]byte, error)

	// Decrypt reverses Encrypt with the matching private key.
	Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// MarshalPublicKey encodes the public key as a PEM block.
	MarshalPublicKey(publicKey *rsa.PublicKey) ([]byte, error)

	// MarshalPrivateKey encodes the private key as a PEM block.
	MarshalPrivateKey(privateKey *rsa.PrivateKey) ([]byte, error)

	// ParsePublicKey decodes a PEM block written by MarshalPublicKey.
	ParsePublicKey(data []byte) (*rsa.PublicKey, error)

	// ParsePrivateKey decodes a PEM block written by MarshalPrivateKey.
	ParsePrivateKey(data []byte) (*rsa.PrivateKey, error)

	// SavePrivateKeyToFile saves the private key to a PEM file readable only by the owner.
	SavePrivateKeyToFile(privateKey *rsa.PrivateKey, filename string) error

	// SavePublicKeyToFile saves the public key to a PEM file.
	SavePublicKeyToFile(publicKey *rsa.PublicKey, filename string) error

	// ReadPrivateKey reads a private key from a PEM file.
	ReadPrivateKey(privateKeyPath string) (*rsa.PrivateKey, error)

	// ReadPublicKey reads a public key from a PEM file.
	ReadPublicKey(publicKeyPath string) (*rsa.PublicKey, error)
}
