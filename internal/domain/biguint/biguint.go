package biguint

import (
	"errors"
	"math/bits"
	"strconv"
	"strings"
)

const (
	// wordBits is the width of a single digit.
	wordBits = 32
	// radix is R, the base of the digit representation.
	radix = 1 << wordBits
	// decimalChunk is the largest power of ten below the radix, used for decimal conversion.
	decimalChunk       = 1_000_000_000
	decimalChunkDigits = 9
)

var (
	// ErrUnderflow is returned when subtracting a larger value from a smaller one.
	ErrUnderflow = errors.New("biguint: subtraction underflow")
	// ErrDivisionByZero is returned when dividing by, or reducing modulo, zero.
	ErrDivisionByZero = errors.New("biguint: division by zero")
	// ErrOverflow is returned when a value does not fit the requested machine integer.
	ErrOverflow = errors.New("biguint: value overflows uint64")
	// ErrSyntax is returned when parsing a string that is not a decimal number.
	ErrSyntax = errors.New("biguint: invalid decimal number")
)

// BigUint is an arbitrary-precision non-negative integer.
// The zero value is the number zero and is ready to use.
type BigUint struct {
	// digits holds the value least-significant digit first, without trailing zero digits.
	digits []uint32
}

// normalize trims most-significant zero digits. Zero becomes the empty (nil) vector.
func normalize(digits []uint32) []uint32 {
	n := len(digits)
	for n > 0 && digits[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return digits[:n]
}

// Zero returns the value 0.
func Zero() BigUint {
	return BigUint{}
}

// One returns the value 1.
func One() BigUint {
	return BigUint{digits: []uint32{1}}
}

// FromUint64 converts a machine integer by repeatedly dividing by the radix.
func FromUint64(x uint64) BigUint {
	var digits []uint32
	for x > 0 {
		digits = append(digits, uint32(x%radix))
		x /= radix
	}
	return BigUint{digits: digits}
}

// Uint64 folds the digits most-significant first as acc*R + digit.
// It fails with ErrOverflow when the value is larger than math.MaxUint64.
func (x BigUint) Uint64() (uint64, error) {
	if len(x.digits) > 64/wordBits {
		return 0, ErrOverflow
	}
	var acc uint64
	for i := len(x.digits) - 1; i >= 0; i-- {
		acc = acc<<wordBits | uint64(x.digits[i])
	}
	return acc, nil
}

// digit returns the i-th digit, or 0 past the end. It stands in for padding an
// operand with leading zero digits.
func (x BigUint) digit(i int) uint32 {
	if i < len(x.digits) {
		return x.digits[i]
	}
	return 0
}

// IsZero reports whether x == 0.
func (x BigUint) IsZero() bool {
	return len(x.digits) == 0
}

// IsOdd reports whether x is odd.
func (x BigUint) IsOdd() bool {
	return len(x.digits) > 0 && x.digits[0]&1 == 1
}

// Len returns the number of radix digits of x. Zero has length 0.
func (x BigUint) Len() int {
	return len(x.digits)
}

// BitLen returns the number of bits needed to represent x. Zero has bit length 0.
func (x BigUint) BitLen() int {
	if len(x.digits) == 0 {
		return 0
	}
	top := len(x.digits) - 1
	return top*wordBits + bits.Len32(x.digits[top])
}

// Bit returns the value of the i-th bit of x.
func (x BigUint) Bit(i int) uint {
	if i < 0 {
		return 0
	}
	return uint(x.digit(i/wordBits)>>(uint(i)%wordBits)) & 1
}

// Cmp compares x and y by digit length first, then digit by digit from the
// most significant end. It returns -1, 0 or +1.
func (x BigUint) Cmp(y BigUint) int {
	switch {
	case len(x.digits) < len(y.digits):
		return -1
	case len(x.digits) > len(y.digits):
		return 1
	}
	for i := len(x.digits) - 1; i >= 0; i-- {
		switch {
		case x.digits[i] < y.digits[i]:
			return -1
		case x.digits[i] > y.digits[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether x == y.
func (x BigUint) Equal(y BigUint) bool {
	return x.Cmp(y) == 0
}

// Parse reads a non-empty string of decimal digits.
func Parse(s string) (BigUint, error) {
	if s == "" {
		return BigUint{}, ErrSyntax
	}
	acc := BigUint{}
	for _, c := range s {
		if c < '0' || c > '9' {
			return BigUint{}, ErrSyntax
		}
		acc = acc.MulAddWord(10, uint32(c-'0'))
	}
	return acc, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for constants.
func MustParse(s string) BigUint {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// String returns the decimal representation of x.
func (x BigUint) String() string {
	if x.IsZero() {
		return "0"
	}
	var chunks []uint32
	for !x.IsZero() {
		var rem uint32
		x, rem = x.divModWord(decimalChunk)
		chunks = append(chunks, rem)
	}

	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), 10))
	for i := len(chunks) - 2; i >= 0; i-- {
		chunk := strconv.FormatUint(uint64(chunks[i]), 10)
		sb.WriteString(strings.Repeat("0", decimalChunkDigits-len(chunk)))
		sb.WriteString(chunk)
	}
	return sb.String()
}

// DecimalDigits returns the number of decimal digits of x. Zero has one digit.
func (x BigUint) DecimalDigits() int {
	return len(x.String())
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
func (x BigUint) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for decimal input.
func (x *BigUint) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
