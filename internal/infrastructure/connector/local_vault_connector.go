package connector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/logger"
	"github.com/google/uuid"
)

// localVaultConnector stores PEM files below a root directory as
// <root>/<keyPairID>/<keyID>-<keyType>.pem.
type localVaultConnector struct {
	root   string
	logger logger.Logger
}

// NewLocalVaultConnector creates the key directory if needed and returns a
// VaultConnector backed by it.
func NewLocalVaultConnector(settings *config.VaultSettings, logger logger.Logger) (keys.VaultConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(settings.KeyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	logger.Info("Local vault connector using ", settings.KeyDir)
	return &localVaultConnector{root: filepath.Clean(settings.KeyDir), logger: logger}, nil
}

// keyPath only accepts uuid IDs and known key types, so no path can leave the root.
func (c *localVaultConnector) keyPath(keyID, keyPairID, keyType string) (string, error) {
	if _, err := uuid.Parse(keyID); err != nil {
		return "", fmt.Errorf("invalid key id %q: %w", keyID, err)
	}
	if _, err := uuid.Parse(keyPairID); err != nil {
		return "", fmt.Errorf("invalid key pair id %q: %w", keyPairID, err)
	}
	if keyType != keys.KeyTypePublic && keyType != keys.KeyTypePrivate {
		return "", fmt.Errorf("invalid key type %q", keyType)
	}
	return filepath.Join(c.root, keyPairID, fmt.Sprintf("%s-%s.pem", keyID, keyType)), nil
}

// Upload writes the key material. Private keys are readable by the owner only.
func (c *localVaultConnector) Upload(ctx context.Context, key *keys.CryptoKeyMeta, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := c.keyPath(key.ID, key.KeyPairID, key.Type)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key pair directory: %w", err)
	}

	perm := fs.FileMode(0644)
	if key.Type == keys.KeyTypePrivate {
		perm = 0600
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to store key %s: %w", key.ID, err)
	}

	c.logger.Info("Stored %s key %s", key.Type, key.ID)
	return nil
}

// Download reads the key material.
func (c *localVaultConnector) Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := c.keyPath(keyID, keyPairID, keyType)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", keys.ErrKeyNotFound, keyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", keyID, err)
	}

	c.logger.Info("Downloaded %s key %s", keyType, keyID)
	return data, nil
}

// Delete removes the key file, and the key pair directory once it is empty.
func (c *localVaultConnector) Delete(ctx context.Context, keyID, keyPairID, keyType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := c.keyPath(keyID, keyPairID, keyType)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", keys.ErrKeyNotFound, keyID)
		}
		return fmt.Errorf("failed to delete key %s: %w", keyID, err)
	}

	// Fails while the other half of the pair is still stored.
	if err := os.Remove(filepath.Dir(path)); err == nil {
		c.logger.Debug("Removed empty key pair directory ", keyPairID)
	}

	c.logger.Info("Deleted %s key %s", keyType, keyID)
	return nil
}
