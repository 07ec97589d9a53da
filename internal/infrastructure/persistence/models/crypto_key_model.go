package models

import (
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
)

// CryptoKeyModel is the GORM database model for key metadata
type CryptoKeyModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	KeyPairID       string    `gorm:"not null;index;type:uuid"`
	Algorithm       string    `gorm:"type:varchar(20)"`
	Type            string    `gorm:"type:varchar(20);index"`
	ModulusDigits   int       `gorm:"not null"`
	PublicExponent  string    `gorm:"type:text;not null"`
	DateTimeCreated time.Time `gorm:"not null"`
	UserID          string    `gorm:"not null;index;type:varchar(255)"`
}

// TableName specifies the table name for GORM
func (CryptoKeyModel) TableName() string {
	return "crypto_keys"
}

// ToDomain converts GORM model to domain entity
func (m *CryptoKeyModel) ToDomain() *keys.CryptoKeyMeta {
	return &keys.CryptoKeyMeta{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Algorithm:       m.Algorithm,
		Type:            m.Type,
		ModulusDigits:   m.ModulusDigits,
		PublicExponent:  m.PublicExponent,
		DateTimeCreated: m.DateTimeCreated,
		UserID:          m.UserID,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CryptoKeyModel) FromDomain(k *keys.CryptoKeyMeta) {
	m.ID = k.ID
	m.KeyPairID = k.KeyPairID
	m.Algorithm = k.Algorithm
	m.Type = k.Type
	m.ModulusDigits = k.ModulusDigits
	m.PublicExponent = k.PublicExponent
	m.DateTimeCreated = k.DateTimeCreated
	m.UserID = k.UserID
}
