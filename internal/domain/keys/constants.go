package keys

// AlgorithmRSA is the only algorithm stored in the vault.
const AlgorithmRSA = "RSA"

// Key types
const (
	KeyTypePublic  = "public"
	KeyTypePrivate = "private"
)
