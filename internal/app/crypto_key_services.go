package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/logger"
	"github.com/google/uuid"
)

// cryptoKeyUploadService implements the CryptoKeyUploadService interface for generating and storing key pairs
type cryptoKeyUploadService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	rsaProcessor   cryptoalg.RSAProcessor
	settings       config.RSASettings
	logger         logger.Logger
}

// NewCryptoKeyUploadService creates a new cryptoKeyUploadService instance
func NewCryptoKeyUploadService(
	vaultConnector keys.VaultConnector,
	cryptoKeyRepo keys.CryptoKeyRepository,
	rsaProcessor cryptoalg.RSAProcessor,
	settings *config.RSASettings,
	logger logger.Logger,
) (keys.CryptoKeyUploadService, error) {
	if settings == nil {
		return nil, fmt.Errorf("RSA settings cannot be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &cryptoKeyUploadService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		rsaProcessor:   rsaProcessor,
		settings:       *settings,
		logger:         logger,
	}, nil
}

// Upload generates a key pair within the configured generation timeout and
// stores the public key, then the private key.
func (s *cryptoKeyUploadService) Upload(ctx context.Context, userID string, params *keys.GenerateParams) ([]*keys.CryptoKeyMeta, error) {
	opts, err := NewGenerateOptions(s.settings, params)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.settings.GenerationTimeout)
	defer cancel()

	pair, err := s.rsaProcessor.GenerateKeys(genCtx, opts)
	if err != nil {
		return nil, err
	}

	publicPEM, err := s.rsaProcessor.MarshalPublicKey(pair.Public)
	if err != nil {
		return nil, err
	}
	privatePEM, err := s.rsaProcessor.MarshalPrivateKey(pair.Private)
	if err != nil {
		return nil, err
	}

	keyPairID := uuid.NewString()
	now := time.Now()
	newMeta := func(keyType string) *keys.CryptoKeyMeta {
		return &keys.CryptoKeyMeta{
			ID:              uuid.NewString(),
			KeyPairID:       keyPairID,
			Algorithm:       keys.AlgorithmRSA,
			Type:            keyType,
			ModulusDigits:   pair.Public.N().DecimalDigits(),
			PublicExponent:  pair.Public.E().String(),
			DateTimeCreated: now,
			UserID:          userID,
		}
	}

	publicMeta := newMeta(keys.KeyTypePublic)
	if err := s.store(ctx, publicMeta, publicPEM); err != nil {
		return nil, err
	}

	privateMeta := newMeta(keys.KeyTypePrivate)
	if err := s.store(ctx, privateMeta, privatePEM); err != nil {
		s.discard(publicMeta)
		return nil, err
	}

	s.logger.Info("Uploaded key pair ", keyPairID)
	return []*keys.CryptoKeyMeta{publicMeta, privateMeta}, nil
}

// store writes the key material to the vault and its metadata to the repository.
func (s *cryptoKeyUploadService) store(ctx context.Context, meta *keys.CryptoKeyMeta, data []byte) error {
	if err := meta.Validate(); err != nil {
		return fmt.Errorf("invalid key metadata: %w", err)
	}
	if err := s.vaultConnector.Upload(ctx, meta, data); err != nil {
		return fmt.Errorf("failed to upload %s key to vault: %w", meta.Type, err)
	}
	if err := s.cryptoKeyRepo.Create(ctx, meta); err != nil {
		if delErr := s.vaultConnector.Delete(context.WithoutCancel(ctx), meta.ID, meta.KeyPairID, meta.Type); delErr != nil {
			s.logger.Warn("Failed to remove orphaned key ", meta.ID, ": ", delErr)
		}
		return fmt.Errorf("failed to store %s key metadata: %w", meta.Type, err)
	}
	return nil
}

// discard removes a stored key after a later step of the upload failed.
func (s *cryptoKeyUploadService) discard(meta *keys.CryptoKeyMeta) {
	ctx := context.Background()
	if err := s.vaultConnector.Delete(ctx, meta.ID, meta.KeyPairID, meta.Type); err != nil {
		s.logger.Warn("Failed to remove key ", meta.ID, " from vault: ", err)
	}
	if err := s.cryptoKeyRepo.DeleteByID(ctx, meta.ID); err != nil {
		s.logger.Warn("Failed to remove key metadata ", meta.ID, ": ", err)
	}
}

// cryptoKeyMetadataService implements the CryptoKeyMetadataService interface to manages cryptographic key metadata.
type cryptoKeyMetadataService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	logger         logger.Logger
}

// NewCryptoKeyMetadataService creates a new cryptoKeyMetadataService instance
func NewCryptoKeyMetadataService(vaultConnector keys.VaultConnector, cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (keys.CryptoKeyMetadataService, error) {
	return &cryptoKeyMetadataService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		logger:         logger,
	}, nil
}

// List retrieves all cryptographic key metadata based on a query.
func (s *cryptoKeyMetadataService) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	return s.cryptoKeyRepo.List(ctx, query)
}

// GetByID retrieves the metadata of a cryptographic key by its ID.
func (s *cryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	return s.cryptoKeyRepo.GetByID(ctx, keyID)
}

// DeleteByID deletes a key from the vault, then its metadata.
func (s *cryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	keyMeta, err := s.GetByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to get key metadata: %w", err)
	}

	err = s.vaultConnector.Delete(ctx, keyID, keyMeta.KeyPairID, keyMeta.Type)
	if err != nil {
		return fmt.Errorf("failed to delete key from vault: %w", err)
	}

	err = s.cryptoKeyRepo.DeleteByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to delete key from database: %w", err)
	}

	s.logger.Info("Deleted key ", keyID)
	return nil
}

// cryptoKeyDownloadService implements the CryptoKeyDownloadService interface to handle the download of cryptographic keys.
type cryptoKeyDownloadService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	logger         logger.Logger
}

// NewCryptoKeyDownloadService creates a new cryptoKeyDownloadService instance
func NewCryptoKeyDownloadService(vaultConnector keys.VaultConnector, cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (keys.CryptoKeyDownloadService, error) {
	return &cryptoKeyDownloadService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		logger:         logger,
	}, nil
}

// DownloadByID retrieves the PEM encoded key by its ID.
func (s *cryptoKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	keyMeta, err := s.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}

	return s.vaultConnector.Download(ctx, keyMeta.ID, keyMeta.KeyPairID, keyMeta.Type)
}

// cryptoKeyOperationService implements the CryptoKeyOperationService interface on stored keys.
type cryptoKeyOperationService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	rsaProcessor   cryptoalg.RSAProcessor
	logger         logger.Logger
}

// NewCryptoKeyOperationService creates a new cryptoKeyOperationService instance
func NewCryptoKeyOperationService(
	vaultConnector keys.VaultConnector,
	cryptoKeyRepo keys.CryptoKeyRepository,
	rsaProcessor cryptoalg.RSAProcessor,
	logger logger.Logger,
) (keys.CryptoKeyOperationService, error) {
	return &cryptoKeyOperationService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		rsaProcessor:   rsaProcessor,
		logger:         logger,
	}, nil
}

// Encrypt encrypts data with the public key keyID.
func (s *cryptoKeyOperationService) Encrypt(ctx context.Context, keyID string, data []byte) ([]byte, error) {
	pemData, err := s.loadKey(ctx, keyID, keys.KeyTypePublic)
	if err != nil {
		return nil, err
	}

	publicKey, err := s.rsaProcessor.ParsePublicKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key %s: %w", keyID, err)
	}
	return s.rsaProcessor.Encrypt(data, publicKey)
}

// Decrypt decrypts data with the private key keyID.
func (s *cryptoKeyOperationService) Decrypt(ctx context.Context, keyID string, data []byte) ([]byte, error) {
	pemData, err := s.loadKey(ctx, keyID, keys.KeyTypePrivate)
	if err != nil {
		return nil, err
	}

	privateKey, err := s.rsaProcessor.ParsePrivateKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %s: %w", keyID, err)
	}
	return s.rsaProcessor.Decrypt(data, privateKey)
}

func (s *cryptoKeyOperationService) loadKey(ctx context.Context, keyID, keyType string) ([]byte, error) {
	keyMeta, err := s.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if keyMeta.Type != keyType {
		return nil, fmt.Errorf("%w: key %s is a %s key, need a %s key", keys.ErrKeyTypeMismatch, keyID, keyMeta.Type, keyType)
	}
	return s.vaultConnector.Download(ctx, keyMeta.ID, keyMeta.KeyPairID, keyMeta.Type)
}
