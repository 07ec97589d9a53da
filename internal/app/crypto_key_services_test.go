//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVaultConnector struct {
	mock.Mock
}

func (m *mockVaultConnector) Upload(ctx context.Context, key *keys.CryptoKeyMeta, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *mockVaultConnector) Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error) {
	args := m.Called(ctx, keyID, keyPairID, keyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockVaultConnector) Delete(ctx context.Context, keyID, keyPairID, keyType string) error {
	args := m.Called(ctx, keyID, keyPairID, keyType)
	return args.Error(0)
}

type mockCryptoKeyRepository struct {
	mock.Mock
}

func (m *mockCryptoKeyRepository) Create(ctx context.Context, key *keys.CryptoKeyMeta) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCryptoKeyRepository) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptoKeyMeta), args.Error(1)
}

func (m *mockCryptoKeyRepository) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptoKeyMeta), args.Error(1)
}

func (m *mockCryptoKeyRepository) UpdateByID(ctx context.Context, key *keys.CryptoKeyMeta) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCryptoKeyRepository) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

func smallSettings() *config.RSASettings {
	settings := config.DefaultRSASettings()
	settings.MinPrimeDigits = 12
	settings.MaxPrimeDigits = 12
	return &settings
}

func isType(keyType string) interface{} {
	return mock.MatchedBy(func(meta *keys.CryptoKeyMeta) bool { return meta.Type == keyType })
}

func TestNewGenerateOptions(t *testing.T) {
	settings := config.DefaultRSASettings()

	opts, err := NewGenerateOptions(settings, nil)
	require.NoError(t, err)
	assert.Equal(t, "65537", opts.PublicExponent.String())
	assert.Equal(t, 150, opts.PrimeDigits.Min)
	assert.Equal(t, 151, opts.PrimeDigits.Max)
	assert.Equal(t, settings.PrimalityRounds, opts.Rounds)

	opts, err = NewGenerateOptions(settings, &keys.GenerateParams{PublicExponent: "17", MaxPrimeDigits: 200})
	require.NoError(t, err)
	assert.Equal(t, "17", opts.PublicExponent.String())
	assert.Equal(t, 150, opts.PrimeDigits.Min)
	assert.Equal(t, 200, opts.PrimeDigits.Max)

	_, err = NewGenerateOptions(settings, &keys.GenerateParams{MaxPrimeDigits: 100})
	assert.ErrorIs(t, err, rsa.ErrInvalidOptions)

	_, err = NewGenerateOptions(settings, &keys.GenerateParams{PublicExponent: "1"})
	assert.ErrorIs(t, err, rsa.ErrInvalidOptions)
}

func TestCryptoKeyUploadService_RollsBackPublicKey(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err)

	vault := &mockVaultConnector{}
	repo := &mockCryptoKeyRepository{}

	vault.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	vault.On("Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("Create", mock.Anything, isType(keys.KeyTypePublic)).Return(nil)
	repo.On("Create", mock.Anything, isType(keys.KeyTypePrivate)).Return(errors.New("disk full"))
	repo.On("DeleteByID", mock.Anything, mock.Anything).Return(nil)

	service, err := NewCryptoKeyUploadService(vault, repo, processor, smallSettings(), logger)
	require.NoError(t, err)

	metas, err := service.Upload(context.Background(), uuid.NewString(), nil)
	assert.ErrorContains(t, err, "disk full")
	assert.Nil(t, metas)

	vault.AssertNumberOfCalls(t, "Upload", 2)
	vault.AssertNumberOfCalls(t, "Delete", 2)
	repo.AssertNumberOfCalls(t, "DeleteByID", 1)
}

func TestCryptoKeyUploadService_VaultFailure(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	processor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err)

	vault := &mockVaultConnector{}
	repo := &mockCryptoKeyRepository{}
	vault.On("Upload", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("read-only file system"))

	service, err := NewCryptoKeyUploadService(vault, repo, processor, smallSettings(), logger)
	require.NoError(t, err)

	_, err = service.Upload(context.Background(), uuid.NewString(), nil)
	assert.ErrorContains(t, err, "failed to upload public key to vault")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNewCryptoKeyUploadService_InvalidSettings(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewCryptoKeyUploadService(&mockVaultConnector{}, &mockCryptoKeyRepository{}, nil, nil, logger)
	assert.Error(t, err)

	settings := config.DefaultRSASettings()
	settings.PublicExponent = "2"
	_, err = NewCryptoKeyUploadService(&mockVaultConnector{}, &mockCryptoKeyRepository{}, nil, &settings, logger)
	assert.Error(t, err)
}

func TestCryptoKeyOperationService_UnknownKey(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	repo := &mockCryptoKeyRepository{}
	keyID := uuid.NewString()
	repo.On("GetByID", mock.Anything, keyID).Return(nil, keys.ErrKeyNotFound)

	service, err := NewCryptoKeyOperationService(&mockVaultConnector{}, repo, nil, logger)
	require.NoError(t, err)

	_, err = service.Encrypt(context.Background(), keyID, []byte("x"))
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestCryptoKeyOperationService_MismatchSkipsVault(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	repo := &mockCryptoKeyRepository{}
	vault := &mockVaultConnector{}
	keyID := uuid.NewString()
	repo.On("GetByID", mock.Anything, keyID).Return(&keys.CryptoKeyMeta{ID: keyID, Type: keys.KeyTypePublic}, nil)

	service, err := NewCryptoKeyOperationService(vault, repo, nil, logger)
	require.NoError(t, err)

	_, err = service.Decrypt(context.Background(), keyID, []byte("x"))
	assert.ErrorIs(t, err, keys.ErrKeyTypeMismatch)
	vault.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
