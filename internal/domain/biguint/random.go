package biguint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidRange is returned for an empty or non-positive digit count range.
var ErrInvalidRange = errors.New("biguint: invalid digit count range")

// RandomDigits draws a decimal digit count uniformly from [minDigits, maxDigits]
// and then every decimal digit uniformly from [0, 10). Leading digits may be
// zero, so the result can be shorter than the drawn count.
func RandomDigits(r io.Reader, minDigits, maxDigits int) (BigUint, error) {
	if minDigits < 1 || maxDigits < minDigits {
		return BigUint{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, minDigits, maxDigits)
	}

	spread, err := uniformUint32(r, uint32(maxDigits-minDigits+1))
	if err != nil {
		return BigUint{}, err
	}
	count := minDigits + int(spread)

	acc := BigUint{}
	for i := 0; i < count; i++ {
		d, err := uniformUint32(r, 10)
		if err != nil {
			return BigUint{}, err
		}
		acc = acc.MulAddWord(10, d)
	}
	return acc, nil
}

// RandomBelow returns a value drawn uniformly from [0, n) by rejection sampling.
func RandomBelow(r io.Reader, n BigUint) (BigUint, error) {
	if n.IsZero() {
		return BigUint{}, ErrDivisionByZero
	}

	size := len(n.digits)
	topBits := uint(n.BitLen() - (size-1)*wordBits)
	mask := uint32(1<<topBits - 1)
	buf := make([]byte, 4*size)

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return BigUint{}, fmt.Errorf("failed to read random bytes: %w", err)
		}
		digits := make([]uint32, size)
		for i := range digits {
			digits[i] = binary.LittleEndian.Uint32(buf[4*i:])
		}
		digits[size-1] &= mask

		candidate := BigUint{digits: normalize(digits)}
		if candidate.Cmp(n) < 0 {
			return candidate, nil
		}
	}
}

// uniformUint32 returns a value drawn uniformly from [0, n), n > 0.
func uniformUint32(r io.Reader, n uint32) (uint32, error) {
	if n == 1 {
		return 0, nil
	}
	// Reject the tail of the 32-bit range that would bias the modulo.
	// A power of two divides the range evenly and wraps the limit to 0.
	limit := uint32(radix - radix%uint64(n))

	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, fmt.Errorf("failed to read random bytes: %w", err)
		}
		v := binary.LittleEndian.Uint32(buf[:])
		if limit == 0 || v < limit {
			return v % n, nil
		}
	}
}
