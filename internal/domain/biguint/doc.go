// Package biguint implements arbitrary-precision unsigned integers on top of a
// little-endian digit vector, with the arithmetic needed by the number theory
// and RSA packages: comparison, addition, checked subtraction, grade-school
// multiplication, long division and decimal conversion.
//
// Digits use the radix 2^32. The value zero is always the empty digit vector and
// no value carries a most-significant zero digit. A BigUint is immutable: every
// operation returns a new value and never writes to the digits of its operands.
package biguint
