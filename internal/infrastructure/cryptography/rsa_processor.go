package cryptography

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/logger"
)

// lengthHeaderSize is the size of the big-endian plaintext length prefix of Encrypt output.
const lengthHeaderSize = 8

var (
	// ErrModulusTooSmall is returned when a key cannot hold a single plaintext byte per block.
	ErrModulusTooSmall = errors.New("modulus too small for block encryption")
	// ErrMalformedCiphertext is returned when ciphertext does not match the block layout.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &rsaProcessor{
		logger: logger,
	}, nil
}

// GenerateKeys generates a key pair with the given options.
func (r *rsaProcessor) GenerateKeys(ctx context.Context, opts rsa.GenerateOptions) (*rsa.KeyPair, error) {
	start := time.Now()
	pair, err := rsa.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}
	r.logger.Info("Generated RSA key pair with %d digit modulus in %s", pair.Public.N().DecimalDigits(), time.Since(start).Round(time.Millisecond))
	return pair, nil
}

// Encrypt splits plainText into blocks of Size()-1 bytes, each below the
// modulus, and encrypts every block to exactly Size() bytes. The output is an
// 8-byte big-endian plaintext length followed by the ciphertext blocks, which
// lets Decrypt restore leading zero bytes and the length of the last block.
func (r *rsaProcessor) Encrypt(plainText []byte, publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}

	blockSize := publicKey.Size()
	chunkSize := blockSize - 1
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d byte modulus", ErrModulusTooSmall, blockSize)
	}

	blocks := (len(plainText) + chunkSize - 1) / chunkSize
	encryptedData := make([]byte, lengthHeaderSize, lengthHeaderSize+blocks*blockSize)
	binary.BigEndian.PutUint64(encryptedData, uint64(len(plainText)))

	for len(plainText) > 0 {
		size := min(chunkSize, len(plainText))

		encryptedChunk, err := publicKey.EncryptBlock(plainText[:size])
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt data: %w", err)
		}
		encryptedData = append(encryptedData, encryptedChunk...)

		plainText = plainText[size:]
	}

	r.logger.Info("RSA encryption succeeded for %d blocks", blocks)
	return encryptedData, nil
}

// Decrypt reverses Encrypt.
func (r *rsaProcessor) Decrypt(ciphertext []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}

	blockSize := privateKey.Size()
	chunkSize := blockSize - 1
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: %d byte modulus", ErrModulusTooSmall, blockSize)
	}
	if len(ciphertext) < lengthHeaderSize {
		return nil, fmt.Errorf("%w: missing length header", ErrMalformedCiphertext)
	}

	remaining := binary.BigEndian.Uint64(ciphertext[:lengthHeaderSize])
	ciphertext = ciphertext[lengthHeaderSize:]

	if len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of the %d byte block size", ErrMalformedCiphertext, len(ciphertext), blockSize)
	}
	blocks := uint64(len(ciphertext) / blockSize)
	// Every block but the last is full, and the last holds at least one byte.
	capacity := blocks * uint64(chunkSize)
	if remaining > capacity || (blocks > 0 && remaining <= capacity-uint64(chunkSize)) {
		return nil, fmt.Errorf("%w: %d blocks cannot hold %d bytes", ErrMalformedCiphertext, blocks, remaining)
	}

	decryptedData := make([]byte, 0, remaining)
	for len(ciphertext) > 0 {
		size := min(uint64(chunkSize), remaining)

		decryptedChunk, err := privateKey.DecryptBlock(ciphertext[:blockSize], int(size))
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt data: %w", err)
		}
		decryptedData = append(decryptedData, decryptedChunk...)

		ciphertext = ciphertext[blockSize:]
		remaining -= size
	}

	r.logger.Info("RSA decryption succeeded for %d blocks", blocks)
	return decryptedData, nil
}

// MarshalPublicKey encodes the public key as a PEM block.
func (r *rsaProcessor) MarshalPublicKey(publicKey *rsa.PublicKey) ([]byte, error) {
	if publicKey == nil {
		return nil, errors.New("public key cannot be nil")
	}
	return encodePublicKeyPEM(publicKey)
}

// MarshalPrivateKey encodes the private key as a PEM block.
func (r *rsaProcessor) MarshalPrivateKey(privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("private key cannot be nil")
	}
	return encodePrivateKeyPEM(privateKey)
}

// ParsePublicKey decodes a PEM block written by MarshalPublicKey.
func (r *rsaProcessor) ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	return decodePublicKeyPEM(data)
}

// ParsePrivateKey decodes a PEM block written by MarshalPrivateKey.
func (r *rsaProcessor) ParsePrivateKey(data []byte) (*rsa.PrivateKey, error) {
	return decodePrivateKeyPEM(data)
}

// SavePrivateKeyToFile saves the private key to a PEM file readable only by the owner.
func (r *rsaProcessor) SavePrivateKeyToFile(privateKey *rsa.PrivateKey, filename string) error {
	data, err := r.MarshalPrivateKey(privateKey)
	if err != nil {
		return err
	}
	if err := r.writeKeyFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}

	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// SavePublicKeyToFile saves the public key to a PEM file.
func (r *rsaProcessor) SavePublicKeyToFile(publicKey *rsa.PublicKey, filename string) error {
	data, err := r.MarshalPublicKey(publicKey)
	if err != nil {
		return err
	}
	if err := r.writeKeyFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write public key file: %w", err)
	}

	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// ReadPrivateKey reads a private key from a PEM file.
func (r *rsaProcessor) ReadPrivateKey(privateKeyPath string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(filepath.Clean(privateKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}
	return r.ParsePrivateKey(data)
}

// ReadPublicKey reads a public key from a PEM file.
func (r *rsaProcessor) ReadPublicKey(publicKeyPath string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(filepath.Clean(publicKeyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}
	return r.ParsePublicKey(data)
}

func (r *rsaProcessor) writeKeyFile(filename string, data []byte, perm os.FileMode) error {
	file, err := os.OpenFile(filepath.Clean(filename), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.Warn("Failed to close key file %s: %v", filename, err)
		}
	}()

	_, err = file.Write(data)
	return err
}

// toBig and fromBig bridge to math/big, which encoding/asn1 needs for INTEGER values.
func toBig(x biguint.BigUint) *big.Int {
	v, _ := new(big.Int).SetString(x.String(), 10)
	return v
}

func fromBig(v *big.Int) (biguint.BigUint, error) {
	if v == nil || v.Sign() < 0 {
		return biguint.Zero(), errors.New("key component must be a non-negative integer")
	}
	return biguint.Parse(v.String())
}
