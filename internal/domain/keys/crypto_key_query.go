package keys

import "time"

// CryptoKeyQuery filters and pages key metadata listings.
type CryptoKeyQuery struct {
	Algorithm       string    `validate:"omitempty,oneof=RSA"`
	Type            string    `validate:"omitempty,oneof=public private"`
	KeyPairID       string    `validate:"omitempty,uuid4"`
	DateTimeCreated time.Time `validate:"omitempty"`

	Limit     int    `validate:"omitempty,min=1,max=1000"`
	Offset    int    `validate:"omitempty,min=0"`
	SortBy    string `validate:"omitempty,oneof=id type modulus_digits date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewCryptoKeyQuery returns an unfiltered query.
func NewCryptoKeyQuery() *CryptoKeyQuery {
	return &CryptoKeyQuery{}
}

// Validate for validating CryptoKeyQuery struct
func (q *CryptoKeyQuery) Validate() error {
	return validateStruct(q)
}
