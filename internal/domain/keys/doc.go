// Package keys defines key metadata, its queries and the service, repository
// and vault contracts of the key management layer.
package keys
