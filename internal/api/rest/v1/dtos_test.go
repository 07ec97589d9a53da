//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadKeyRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   UploadKeyRequest
		shouldErr bool
	}{
		{"Empty fields (valid)", UploadKeyRequest{}, false},
		{"Exponent 65537", UploadKeyRequest{PublicExponent: "65537"}, false},
		{"Exponent 3", UploadKeyRequest{PublicExponent: "3"}, false},
		{"Large exponent", UploadKeyRequest{PublicExponent: "340282366920938463463374607431768211457"}, false},
		{"Even exponent", UploadKeyRequest{PublicExponent: "65536"}, true},
		{"Exponent 1", UploadKeyRequest{PublicExponent: "1"}, true},
		{"Non-numeric exponent", UploadKeyRequest{PublicExponent: "0x10001"}, true},
		{"Digit range", UploadKeyRequest{MinPrimeDigits: 20, MaxPrimeDigits: 30}, false},
		{"Negative digits", UploadKeyRequest{MinPrimeDigits: -1}, true},
		{"Too many digits", UploadKeyRequest{MaxPrimeDigits: 5000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestNewCryptoKeyMetaResponse(t *testing.T) {
	meta := &keys.CryptoKeyMeta{
		ID:              "abc-123",
		KeyPairID:       "pair-123",
		Algorithm:       keys.AlgorithmRSA,
		Type:            keys.KeyTypePublic,
		ModulusDigits:   301,
		PublicExponent:  "65537",
		DateTimeCreated: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UserID:          "user-1",
	}

	data, err := json.Marshal(NewCryptoKeyMetaResponse(meta))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "abc-123",
		"key_pair_id": "pair-123",
		"algorithm": "RSA",
		"type": "public",
		"modulus_digits": 301,
		"public_exponent": "65537",
		"date_time_created": "2024-01-02T03:04:05Z",
		"user_id": "user-1"
	}`, string(data))
}

func TestDataResponse_Base64(t *testing.T) {
	data, err := json.Marshal(DataResponse{Data: []byte("Hello World!")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data": "SGVsbG8gV29ybGQh"}`, string(data))
}
