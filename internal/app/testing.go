//go:build integration
// +build integration

package app

import (
	"testing"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/connector"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/persistence"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
)

// TestRSASettings keeps generated keys small so tests stay fast.
func TestRSASettings() *config.RSASettings {
	settings := config.DefaultRSASettings()
	settings.MinPrimeDigits = 20
	settings.MaxPrimeDigits = 22
	settings.GenerationTimeout = 30 * time.Second
	return &settings
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	CryptoKeyUploadService    keys.CryptoKeyUploadService
	CryptoKeyMetadataService  keys.CryptoKeyMetadataService
	CryptoKeyDownloadService  keys.CryptoKeyDownloadService
	CryptoKeyOperationService keys.CryptoKeyOperationService

	VaultConnector keys.VaultConnector
	DBContext      *persistence.TestContext
}

// SetupTestServices wires the services to a fresh database and a temporary key vault.
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	vaultConnector, err := connector.NewLocalVaultConnector(&config.VaultSettings{KeyDir: t.TempDir()}, logger)
	require.NoError(t, err, "Failed to create vault connector")

	rsaProcessor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err, "Failed to create RSA processor")

	uploadService, err := NewCryptoKeyUploadService(vaultConnector, dbContext.CryptoKeyRepo, rsaProcessor, TestRSASettings(), logger)
	require.NoError(t, err, "Failed to create CryptoKeyUploadService")

	metadataService, err := NewCryptoKeyMetadataService(vaultConnector, dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create CryptoKeyMetadataService")

	downloadService, err := NewCryptoKeyDownloadService(vaultConnector, dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create CryptoKeyDownloadService")

	operationService, err := NewCryptoKeyOperationService(vaultConnector, dbContext.CryptoKeyRepo, rsaProcessor, logger)
	require.NoError(t, err, "Failed to create CryptoKeyOperationService")

	return &TestServices{
		CryptoKeyUploadService:    uploadService,
		CryptoKeyMetadataService:  metadataService,
		CryptoKeyDownloadService:  downloadService,
		CryptoKeyOperationService: operationService,
		VaultConnector:            vaultConnector,
		DBContext:                 dbContext,
	}
}
