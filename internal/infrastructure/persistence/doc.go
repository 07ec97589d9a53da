// Package persistence provides the key metadata repository on GORM, backed by
// sqlite or postgres.
package persistence
