// Package models contains the GORM models of the persistence layer, kept apart
// from the domain entities they map to.
package models
