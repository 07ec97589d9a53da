package numtheory

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
)

// ErrNotInvertible is returned by ModInverse when gcd(a, modulus) != 1.
var ErrNotInvertible = errors.New("numtheory: value is not invertible")

// GCD returns the greatest common divisor of a and b using Euclid's division
// algorithm. GCD(0, b) is b.
func GCD(a, b biguint.BigUint) biguint.BigUint {
	for !b.IsZero() {
		// b is nonzero, so the reduction cannot fail.
		r, _ := a.Mod(b)
		a, b = b, r
	}
	return a
}

// LCM returns (a*b) / gcd(a, b). The lcm with zero is zero.
func LCM(a, b biguint.BigUint) (biguint.BigUint, error) {
	if a.IsZero() || b.IsZero() {
		return biguint.Zero(), nil
	}
	lcm, err := a.Mul(b).Div(GCD(a, b))
	if err != nil {
		return biguint.Zero(), fmt.Errorf("failed to compute lcm: %w", err)
	}
	return lcm, nil
}

// ModPow returns base^exponent mod modulus by left-to-right square-and-multiply,
// reducing after every step. It fails with biguint.ErrDivisionByZero for a zero modulus.
func ModPow(base, exponent, modulus biguint.BigUint) (biguint.BigUint, error) {
	if modulus.IsZero() {
		return biguint.Zero(), biguint.ErrDivisionByZero
	}

	b, err := base.Mod(modulus)
	if err != nil {
		return biguint.Zero(), err
	}
	// 1 mod 1 is 0.
	result, err := biguint.One().Mod(modulus)
	if err != nil {
		return biguint.Zero(), err
	}

	for i := exponent.BitLen() - 1; i >= 0; i-- {
		if result, err = mulMod(result, result, modulus); err != nil {
			return biguint.Zero(), err
		}
		if exponent.Bit(i) == 1 {
			if result, err = mulMod(result, b, modulus); err != nil {
				return biguint.Zero(), err
			}
		}
	}
	return result, nil
}

func mulMod(a, b, modulus biguint.BigUint) (biguint.BigUint, error) {
	return a.Mul(b).Mod(modulus)
}

// ModInverse returns x in [0, modulus) with a*x = 1 (mod modulus), using the
// extended Euclidean algorithm. The Bezout coefficient of a is tracked modulo
// modulus so every intermediate stays non-negative.
func ModInverse(a, modulus biguint.BigUint) (biguint.BigUint, error) {
	if modulus.IsZero() {
		return biguint.Zero(), biguint.ErrDivisionByZero
	}
	if modulus.Equal(biguint.One()) {
		return biguint.Zero(), nil
	}

	reduced, err := a.Mod(modulus)
	if err != nil {
		return biguint.Zero(), err
	}

	// Invariant: r_i = t_i * a (mod modulus).
	r0, r1 := modulus, reduced
	t0, t1 := biguint.Zero(), biguint.One()
	for !r1.IsZero() {
		q, r, err := r0.DivMod(r1)
		if err != nil {
			return biguint.Zero(), err
		}
		qt, err := q.Mul(t1).Mod(modulus)
		if err != nil {
			return biguint.Zero(), err
		}
		// t0 + modulus - qt lies in (0, 2*modulus), so the subtraction cannot underflow.
		next, err := t0.Add(modulus).Sub(qt)
		if err != nil {
			return biguint.Zero(), err
		}
		if next, err = next.Mod(modulus); err != nil {
			return biguint.Zero(), err
		}

		r0, r1 = r1, r
		t0, t1 = t1, next
	}

	if !r0.Equal(biguint.One()) {
		return biguint.Zero(), fmt.Errorf("%w: gcd is %s", ErrNotInvertible, r0)
	}
	return t0, nil
}
