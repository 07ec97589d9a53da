// Package cryptography implements the key processors of the domain layer:
// block-wise textbook RSA over arbitrary length data and PEM persistence of
// boundless RSA keys.
package cryptography
