//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestModulusDigits is the modulus length recorded on test metadata.
const TestModulusDigits = 301

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	CryptoKeyRepo keys.CryptoKeyRepository
}

// SetupTestDB initializes a migrated test database that is closed on cleanup.
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	cryptoKeyRepo, err := NewGormCryptoKeyRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create crypto key repository")

	return &TestContext{
		DB:            db,
		CryptoKeyRepo: cryptoKeyRepo,
	}
}

// CreateTestKey creates public key metadata with default values
func CreateTestKey(t *testing.T, userID string) *keys.CryptoKeyMeta {
	t.Helper()
	return CreateTestKeyWithOptions(t, userID, uuid.NewString(), keys.KeyTypePublic, TestModulusDigits)
}

// CreateTestKeyWithOptions creates key metadata with custom options
func CreateTestKeyWithOptions(t *testing.T, userID, keyPairID, keyType string, modulusDigits int) *keys.CryptoKeyMeta {
	t.Helper()

	return &keys.CryptoKeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       keyPairID,
		Algorithm:       keys.AlgorithmRSA,
		Type:            keyType,
		ModulusDigits:   modulusDigits,
		PublicExponent:  "65537",
		DateTimeCreated: time.Now(),
		UserID:          userID,
	}
}
