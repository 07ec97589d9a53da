package keys

import "errors"

var (
	// ErrKeyNotFound is returned when no metadata exists for a key ID.
	ErrKeyNotFound = errors.New("key not found")
	// ErrKeyTypeMismatch is returned when an operation needs the other half of a key pair.
	ErrKeyTypeMismatch = errors.New("key type does not match operation")
)
