//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/pem"
	"math"
	mathrand "math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/numtheory"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPrimeDigits = 30

func setupRSAProcessor(t *testing.T) cryptoalg.RSAProcessor {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	processor, err := NewRSAProcessor(logger)
	require.NoError(t, err)
	return processor
}

func testOptions(seed byte) rsa.GenerateOptions {
	opts := rsa.DefaultGenerateOptions()
	opts.PrimeDigits = numtheory.DigitRange{Min: testPrimeDigits, Max: testPrimeDigits}
	opts.Rand = mathrand.NewChaCha8([32]byte{seed})
	return opts
}

func TestNewRSAProcessor_NilLogger(t *testing.T) {
	_, err := NewRSAProcessor(nil)
	assert.Error(t, err)
}

func TestRSAProcessor(t *testing.T) {
	processor := setupRSAProcessor(t)
	ctx := context.Background()

	t.Run("GenerateKeys", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(1))
		require.NoError(t, err)
		assert.NotNil(t, pair.Public)
		assert.NotNil(t, pair.Private)
		assert.True(t, pair.Public.N().Equal(pair.Private.N()))
	})

	t.Run("GenerateKeysInvalidOptions", func(t *testing.T) {
		opts := testOptions(1)
		opts.PublicExponent = biguint.FromUint64(4)
		_, err := processor.GenerateKeys(ctx, opts)
		assert.ErrorIs(t, err, rsa.ErrInvalidOptions)
	})

	t.Run("EncryptDecrypt", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(2))
		require.NoError(t, err)

		lengths := []int{0, 1, pair.Public.Size() - 1, pair.Public.Size(), 3*pair.Public.Size() + 5, 1000}
		for _, length := range lengths {
			plainText := bytes.Repeat([]byte("This is a secret message"), length/24+1)[:length]

			encrypted, err := processor.Encrypt(plainText, pair.Public)
			require.NoError(t, err)

			decrypted, err := processor.Decrypt(encrypted, pair.Private)
			require.NoError(t, err)
			assert.Equal(t, plainText, decrypted, "length %d", length)
		}
	})

	t.Run("LeadingAndTrailingZeroBytes", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(3))
		require.NoError(t, err)

		plainText := make([]byte, 2*pair.Public.Size()+3)
		plainText[len(plainText)/2] = 0x42

		encrypted, err := processor.Encrypt(plainText, pair.Public)
		require.NoError(t, err)
		assert.Len(t, encrypted, lengthHeaderSize+3*pair.Public.Size())

		decrypted, err := processor.Decrypt(encrypted, pair.Private)
		require.NoError(t, err)
		assert.Equal(t, plainText, decrypted)
	})

	t.Run("DecryptWithWrongKey", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(4))
		require.NoError(t, err)
		other, err := processor.GenerateKeys(ctx, testOptions(5))
		require.NoError(t, err)

		plainText := []byte("This should not decrypt")
		encrypted, err := processor.Encrypt(plainText, pair.Public)
		require.NoError(t, err)

		decrypted, err := processor.Decrypt(encrypted, other.Private)
		if err == nil {
			assert.NotEqual(t, plainText, decrypted)
		}
	})

	t.Run("DecryptMalformed", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(6))
		require.NoError(t, err)

		encrypted, err := processor.Encrypt([]byte("payload"), pair.Public)
		require.NoError(t, err)

		_, err = processor.Decrypt(encrypted[:4], pair.Private)
		assert.ErrorIs(t, err, ErrMalformedCiphertext)

		_, err = processor.Decrypt(encrypted[:len(encrypted)-1], pair.Private)
		assert.ErrorIs(t, err, ErrMalformedCiphertext)

		tampered := bytes.Clone(encrypted)
		tampered[7] = 200
		_, err = processor.Decrypt(tampered, pair.Private)
		assert.ErrorIs(t, err, ErrMalformedCiphertext)

		blockSize := pair.Private.Size()
		tests := []struct {
			name   string
			length uint64
			blocks int
		}{
			{"max length without blocks", math.MaxUint64, 0},
			{"max length with one block", math.MaxUint64, 1},
			{"length wrapping block count", math.MaxUint64 - uint64(blockSize-2), 1},
			{"length beyond blocks", uint64(blockSize), 1},
			{"empty last block", uint64(blockSize - 1), 2},
			{"blocks for empty plaintext", 0, 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				crafted := make([]byte, lengthHeaderSize+tt.blocks*blockSize)
				binary.BigEndian.PutUint64(crafted, tt.length)

				assert.NotPanics(t, func() {
					_, err := processor.Decrypt(crafted, pair.Private)
					assert.ErrorIs(t, err, ErrMalformedCiphertext)
				})
			})
		}
	})

	t.Run("NilKeys", func(t *testing.T) {
		_, err := processor.Encrypt([]byte("x"), nil)
		assert.Error(t, err)
		_, err = processor.Decrypt(make([]byte, 16), nil)
		assert.Error(t, err)
		_, err = processor.MarshalPublicKey(nil)
		assert.Error(t, err)
		_, err = processor.MarshalPrivateKey(nil)
		assert.Error(t, err)
	})

	t.Run("ModulusTooSmall", func(t *testing.T) {
		// n = 3*5 fits in one byte, leaving no room for a plaintext byte per block.
		private, err := rsa.NewPrivateKey(biguint.FromUint64(3), biguint.FromUint64(5), biguint.FromUint64(1))
		require.NoError(t, err)
		public, err := private.Public(biguint.FromUint64(3))
		require.NoError(t, err)

		_, err = processor.Encrypt([]byte("x"), public)
		assert.ErrorIs(t, err, ErrModulusTooSmall)
		_, err = processor.Decrypt(make([]byte, 9), private)
		assert.ErrorIs(t, err, ErrModulusTooSmall)
	})

	t.Run("MarshalAndParseKeys", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(7))
		require.NoError(t, err)

		pubPEM, err := processor.MarshalPublicKey(pair.Public)
		require.NoError(t, err)
		block, _ := pem.Decode(pubPEM)
		require.NotNil(t, block)
		assert.Equal(t, PublicKeyPEMType, block.Type)

		privPEM, err := processor.MarshalPrivateKey(pair.Private)
		require.NoError(t, err)
		block, _ = pem.Decode(privPEM)
		require.NotNil(t, block)
		assert.Equal(t, PrivateKeyPEMType, block.Type)

		public, err := processor.ParsePublicKey(pubPEM)
		require.NoError(t, err)
		assert.True(t, public.N().Equal(pair.Public.N()))
		assert.True(t, public.E().Equal(pair.Public.E()))

		private, err := processor.ParsePrivateKey(privPEM)
		require.NoError(t, err)
		assert.True(t, private.P().Equal(pair.Private.P()))
		assert.True(t, private.Q().Equal(pair.Private.Q()))
		assert.True(t, private.D().Equal(pair.Private.D()))

		_, err = processor.ParsePublicKey(privPEM)
		assert.Error(t, err)
		_, err = processor.ParsePrivateKey(pubPEM)
		assert.Error(t, err)
		_, err = processor.ParsePublicKey([]byte("not a pem"))
		assert.Error(t, err)
	})

	t.Run("SaveAndReadKeys", func(t *testing.T) {
		tmpDir := t.TempDir()
		privFile := filepath.Join(tmpDir, "private.pem")
		pubFile := filepath.Join(tmpDir, "public.pem")

		pair, err := processor.GenerateKeys(ctx, testOptions(8))
		require.NoError(t, err)

		require.NoError(t, processor.SavePrivateKeyToFile(pair.Private, privFile))
		require.NoError(t, processor.SavePublicKeyToFile(pair.Public, pubFile))

		info, err := os.Stat(privFile)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		readPriv, err := processor.ReadPrivateKey(privFile)
		require.NoError(t, err)
		assert.True(t, readPriv.N().Equal(pair.Private.N()))

		readPub, err := processor.ReadPublicKey(pubFile)
		require.NoError(t, err)
		assert.True(t, readPub.N().Equal(pair.Public.N()))
		assert.True(t, readPub.E().Equal(pair.Public.E()))

		message := []byte("round trip through files")
		encrypted, err := processor.Encrypt(message, readPub)
		require.NoError(t, err)
		decrypted, err := processor.Decrypt(encrypted, readPriv)
		require.NoError(t, err)
		assert.Equal(t, message, decrypted)
	})

	t.Run("ReadMissingFile", func(t *testing.T) {
		_, err := processor.ReadPublicKey(filepath.Join(t.TempDir(), "missing.pem"))
		assert.Error(t, err)
		_, err = processor.ReadPrivateKey(filepath.Join(t.TempDir(), "missing.pem"))
		assert.Error(t, err)
	})

	t.Run("SaveInvalidPath", func(t *testing.T) {
		pair, err := processor.GenerateKeys(ctx, testOptions(9))
		require.NoError(t, err)

		assert.Error(t, processor.SavePrivateKeyToFile(pair.Private, "/invalid/path/private.pem"))
		assert.Error(t, processor.SavePublicKeyToFile(pair.Public, "/invalid/path/public.pem"))
	})
}

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(args ...interface{}) { m.Called(args...) }
func (m *mockLogger) Info(args ...interface{})  { m.Called(args...) }
func (m *mockLogger) Warn(args ...interface{})  { m.Called(args...) }
func (m *mockLogger) Error(args ...interface{}) { m.Called(args...) }
func (m *mockLogger) Fatal(args ...interface{}) { m.Called(args...) }
func (m *mockLogger) Panic(args ...interface{}) { m.Called(args...) }

func TestRSAProcessor_SaveLogsThroughLogger(t *testing.T) {
	log := &mockLogger{}
	log.On("Info", mock.Anything, mock.Anything, mock.Anything).Maybe()
	log.On("Info", mock.Anything, mock.Anything).Maybe()

	processor, err := NewRSAProcessor(log)
	require.NoError(t, err)

	pair, err := processor.GenerateKeys(context.Background(), testOptions(10))
	require.NoError(t, err)

	dir := t.TempDir()
	pubFile := filepath.Join(dir, "public.pem")
	privFile := filepath.Join(dir, "private.pem")
	require.NoError(t, processor.SavePublicKeyToFile(pair.Public, pubFile))
	require.NoError(t, processor.SavePrivateKeyToFile(pair.Private, privFile))
	assert.Error(t, processor.SavePublicKeyToFile(pair.Public, filepath.Join(dir, "missing", "public.pem")))

	log.AssertCalled(t, "Info", "Saved RSA public key ", pubFile)
	log.AssertCalled(t, "Info", "Saved RSA private key ", privFile)
	log.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything, mock.Anything)

	info, err := os.Stat(privFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
