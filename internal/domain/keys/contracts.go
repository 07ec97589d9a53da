package keys

import (
	"context"
)

// CryptoKeyUploadService generates key pairs and stores both halves.
type CryptoKeyUploadService interface {
	// Upload generates a key pair for userID, stores the PEM material in the
	// vault and the metadata in the repository. It returns the public and the
	// private key metadata, in that order. params may be nil.
	Upload(ctx context.Context, userID string, params *GenerateParams) ([]*CryptoKeyMeta, error)
}

// CryptoKeyMetadataService defines methods for managing cryptographic key metadata and deleting keys.
type CryptoKeyMetadataService interface {
	// List retrieves all cryptographic keys metadata considering a query filter when set.
	List(ctx context.Context, query *CryptoKeyQuery) ([]*CryptoKeyMeta, error)

	// GetByID retrieves the metadata of a cryptographic key by its unique ID.
	GetByID(ctx context.Context, keyID string) (*CryptoKeyMeta, error)

	// DeleteByID deletes a cryptographic key from the vault and its metadata.
	DeleteByID(ctx context.Context, keyID string) error
}

// CryptoKeyDownloadService defines methods for downloading cryptographic keys.
type CryptoKeyDownloadService interface {
	// DownloadByID returns the PEM encoded key with the given ID.
	DownloadByID(ctx context.Context, keyID string) ([]byte, error)
}

// CryptoKeyOperationService applies stored keys to data.
type CryptoKeyOperationService interface {
	// Encrypt encrypts data with the public key keyID.
	Encrypt(ctx context.Context, keyID string, data []byte) ([]byte, error)

	// Decrypt decrypts data with the private key keyID.
	Decrypt(ctx context.Context, keyID string, data []byte) ([]byte, error)
}

// CryptoKeyRepository defines the interface for CryptoKey-related operations
type CryptoKeyRepository interface {
	Create(ctx context.Context, key *CryptoKeyMeta) error
	List(ctx context.Context, query *CryptoKeyQuery) ([]*CryptoKeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*CryptoKeyMeta, error)
	UpdateByID(ctx context.Context, key *CryptoKeyMeta) error
	DeleteByID(ctx context.Context, keyID string) error
}

// VaultConnector stores PEM encoded key material.
type VaultConnector interface {
	// Upload stores the key material described by key.
	Upload(ctx context.Context, key *CryptoKeyMeta, data []byte) error

	// Download retrieves a key's content by its IDs and type.
	Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error)

	// Delete removes a key by its IDs and type.
	Delete(ctx context.Context, keyID, keyPairID, keyType string) error
}
