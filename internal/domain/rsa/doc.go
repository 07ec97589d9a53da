// Package rsa implements textbook RSA over biguint values: key pair generation,
// the big-endian byte codec and raw (unpadded) encryption and decryption.
//
// Textbook RSA is deterministic and malleable. It is meant for study and for
// wrapping by a padding scheme, not for protecting data on its own.
package rsa
