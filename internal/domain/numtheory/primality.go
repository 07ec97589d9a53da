package numtheory

import (
	"errors"
	"fmt"
	"io"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
)

// ErrInvalidRounds is returned when a primality test is asked for fewer than one round.
var ErrInvalidRounds = errors.New("numtheory: primality rounds must be positive")

// smallPrimes are used for trial division before Miller-Rabin.
var smallPrimes = []uint32{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251,
}

// IsProbablyPrime runs the Miller-Rabin test with the given number of rounds,
// drawing witnesses from rnd. A false result is definitive; a true result is
// wrong with probability at most 4^-rounds.
func IsProbablyPrime(n biguint.BigUint, rounds int, rnd io.Reader) (bool, error) {
	if rounds < 1 {
		return false, fmt.Errorf("%w: %d", ErrInvalidRounds, rounds)
	}

	two := biguint.FromUint64(2)
	three := biguint.FromUint64(3)
	switch {
	case n.Cmp(two) < 0:
		return false, nil
	case n.Equal(two), n.Equal(three):
		return true, nil
	case !n.IsOdd():
		return false, nil
	}

	for _, p := range smallPrimes {
		if n.Equal(biguint.FromUint64(uint64(p))) {
			return true, nil
		}
		_, rem, err := n.DivModWord(p)
		if err != nil {
			return false, err
		}
		if rem == 0 {
			return false, nil
		}
	}

	// n - 1 = d * 2^s with d odd. n is odd and larger than every small prime here.
	nMinus1, err := n.Sub(biguint.One())
	if err != nil {
		return false, err
	}
	d := nMinus1
	s := 0
	for !d.IsOdd() {
		d = d.Rsh(1)
		s++
	}

	// Witnesses are drawn from [2, n-2].
	witnessSpan, err := n.Sub(three)
	if err != nil {
		return false, err
	}

	for i := 0; i < rounds; i++ {
		a, err := biguint.RandomBelow(rnd, witnessSpan)
		if err != nil {
			return false, fmt.Errorf("failed to draw witness: %w", err)
		}
		a = a.Add(two)

		composite, err := isWitness(a, d, s, n, nMinus1)
		if err != nil {
			return false, err
		}
		if composite {
			return false, nil
		}
	}
	return true, nil
}

// isWitness reports whether a proves n composite.
func isWitness(a, d biguint.BigUint, s int, n, nMinus1 biguint.BigUint) (bool, error) {
	x, err := ModPow(a, d, n)
	if err != nil {
		return false, err
	}
	if x.Equal(biguint.One()) || x.Equal(nMinus1) {
		return false, nil
	}

	for r := 1; r < s; r++ {
		if x, err = mulMod(x, x, n); err != nil {
			return false, err
		}
		if x.Equal(nMinus1) {
			return false, nil
		}
		if x.Equal(biguint.One()) {
			// A nontrivial square root of 1.
			return true, nil
		}
	}
	return true, nil
}
