// Package cryptoalg defines the processor interfaces the application layer uses
// to generate, store, load and apply key material.
package cryptoalg
