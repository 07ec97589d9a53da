// Package app implements the key services on top of the RSA processor, the
// key vault and the metadata repository.
package app
