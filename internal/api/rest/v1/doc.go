// Package v1 contains the version 1 REST handlers for key management and the
// encrypt and decrypt operations.
package v1
