package rsa

import (
	"fmt"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/biguint"
)

// Encode interprets data as a big-endian base-256 number. Leading zero bytes
// do not contribute to the value, so Encode(nil) and Encode([]byte{0}) are both zero.
func Encode(data []byte) biguint.BigUint {
	acc := biguint.Zero()
	for _, b := range data {
		acc = acc.MulAddWord(256, uint32(b))
	}
	return acc
}

// Decode returns the big-endian base-256 bytes of x.
//
// With size 0 the result is minimal: no leading zero bytes and an empty slice
// for zero. With a positive size the result is left-padded with zero bytes to
// exactly size bytes, failing with ErrValueTooLarge when x needs more.
func Decode(x biguint.BigUint, size int) ([]byte, error) {
	var out []byte
	for !x.IsZero() {
		q, r, err := x.DivModWord(256)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(r))
		x = q
	}

	if size > 0 {
		if len(out) > size {
			return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrValueTooLarge, len(out), size)
		}
		for len(out) < size {
			out = append(out, 0)
		}
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// byteLen is the number of bytes needed to hold x.
func byteLen(x biguint.BigUint) int {
	return (x.BitLen() + 7) / 8
}
