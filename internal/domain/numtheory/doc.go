// Package numtheory provides the number theory RSA is built on: gcd, lcm,
// modular exponentiation, modular inverse, Miller-Rabin primality testing and a
// random probable-prime generator, all over biguint values.
package numtheory
