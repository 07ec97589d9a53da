package biguint

import "math/bits"

// Add returns x + y. The result has at most max(len(x), len(y)) + 1 digits.
func (x BigUint) Add(y BigUint) BigUint {
	size := max(len(x.digits), len(y.digits))
	digits := make([]uint32, 0, size+1)

	var carry uint64
	for i := 0; i < size; i++ {
		sum := carry + uint64(x.digit(i)) + uint64(y.digit(i))
		carry = sum / radix
		digits = append(digits, uint32(sum%radix))
	}
	if carry > 0 {
		digits = append(digits, uint32(carry))
	}

	return BigUint{digits: normalize(digits)}
}

// Sum folds the values with Add, starting from zero.
func Sum(values ...BigUint) BigUint {
	acc := BigUint{}
	for _, v := range values {
		acc = acc.Add(v)
	}
	return acc
}

// Sub returns x - y. It fails with ErrUnderflow when x < y.
//
// Where a digit of x is smaller than the matching digit of y, the borrow scans
// forward through consecutive zero digits, setting each to R-1, and decrements
// the first nonzero digit found. Running off the end of x means x < y.
func (x BigUint) Sub(y BigUint) (BigUint, error) {
	size := max(len(x.digits), len(y.digits))
	lhs := make([]uint32, size)
	copy(lhs, x.digits)
	digits := make([]uint32, size)

	for i := 0; i < size; i++ {
		left := uint64(lhs[i])
		right := uint64(y.digit(i))

		if left < right {
			j := i + 1
			for j < size && lhs[j] == 0 {
				lhs[j] = radix - 1
				j++
			}
			if j == size {
				return BigUint{}, ErrUnderflow
			}
			lhs[j]--
			left += radix
		}

		digits[i] = uint32(left - right)
	}

	return BigUint{digits: normalize(digits)}, nil
}

// Mul returns x * y using the grade-school algorithm: one single-digit partial
// product per digit of y, shifted into place and summed.
func (x BigUint) Mul(y BigUint) BigUint {
	if x.IsZero() || y.IsZero() {
		return BigUint{}
	}
	partials := make([]BigUint, 0, len(y.digits))
	for i, d := range y.digits {
		partials = append(partials, x.mulDigit(d).shiftDigits(i))
	}
	return Sum(partials...)
}

// mulDigit returns x * d for a single digit d.
func (x BigUint) mulDigit(d uint32) BigUint {
	if d == 0 || x.IsZero() {
		return BigUint{}
	}
	digits := make([]uint32, 0, len(x.digits)+1)

	var carry uint64
	for _, a := range x.digits {
		next := carry + uint64(a)*uint64(d)
		carry = next / radix
		digits = append(digits, uint32(next%radix))
	}
	if carry > 0 {
		digits = append(digits, uint32(carry))
	}

	return BigUint{digits: digits}
}

// shiftDigits prepends n zero digits, i.e. multiplies by R^n.
func (x BigUint) shiftDigits(n int) BigUint {
	if n == 0 || x.IsZero() {
		return x
	}
	digits := make([]uint32, n+len(x.digits))
	copy(digits[n:], x.digits)
	return BigUint{digits: digits}
}

// MulAddWord returns x*m + a for single digits m and a.
func (x BigUint) MulAddWord(m, a uint32) BigUint {
	digits := make([]uint32, 0, len(x.digits)+1)

	carry := uint64(a)
	for _, d := range x.digits {
		next := carry + uint64(d)*uint64(m)
		carry = next / radix
		digits = append(digits, uint32(next%radix))
	}
	if carry > 0 {
		digits = append(digits, uint32(carry))
	}

	return BigUint{digits: normalize(digits)}
}

// Rsh returns x >> n.
func (x BigUint) Rsh(n uint) BigUint {
	shift := int(n / wordBits)
	if shift >= len(x.digits) {
		return BigUint{}
	}
	s := n % wordBits
	src := x.digits[shift:]
	digits := make([]uint32, len(src))
	for i := range src {
		digits[i] = src[i] >> s
		if s > 0 && i+1 < len(src) {
			digits[i] |= src[i+1] << (wordBits - s)
		}
	}
	return BigUint{digits: normalize(digits)}
}

// DivModWord returns the quotient and remainder of x / d for a single digit d.
func (x BigUint) DivModWord(d uint32) (BigUint, uint32, error) {
	if d == 0 {
		return BigUint{}, 0, ErrDivisionByZero
	}
	q, r := x.divModWord(d)
	return q, r, nil
}

func (x BigUint) divModWord(d uint32) (BigUint, uint32) {
	if x.IsZero() {
		return BigUint{}, 0
	}
	q := make([]uint32, len(x.digits))

	var rem uint64
	for i := len(x.digits) - 1; i >= 0; i-- {
		cur := rem<<wordBits | uint64(x.digits[i])
		q[i] = uint32(cur / uint64(d))
		rem = cur % uint64(d)
	}

	return BigUint{digits: normalize(q)}, uint32(rem)
}

// DivMod returns the quotient and remainder of x / y.
// It fails with ErrDivisionByZero when y is zero.
func (x BigUint) DivMod(y BigUint) (BigUint, BigUint, error) {
	switch {
	case y.IsZero():
		return BigUint{}, BigUint{}, ErrDivisionByZero
	case x.Cmp(y) < 0:
		return BigUint{}, x, nil
	case len(y.digits) == 1:
		q, r := x.divModWord(y.digits[0])
		return q, FromUint64(uint64(r)), nil
	}
	q, r := x.divModLong(y)
	return q, r, nil
}

// Div returns x / y rounded down.
func (x BigUint) Div(y BigUint) (BigUint, error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns x mod y.
func (x BigUint) Mod(y BigUint) (BigUint, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// divModLong is Knuth's algorithm D (TAOCP vol. 2, 4.3.1) for a divisor of at
// least two digits and a dividend no smaller than the divisor.
func (x BigUint) divModLong(y BigUint) (BigUint, BigUint) {
	n := len(y.digits)
	m := len(x.digits) - n

	// Normalize so the top digit of the divisor has its high bit set.
	s := uint(bits.LeadingZeros32(y.digits[n-1]))
	vn := shiftLeftBits(y.digits, s, n)
	un := shiftLeftBits(x.digits, s, len(x.digits)+1)

	q := make([]uint32, m+1)
	top := uint64(vn[n-1])
	next := uint64(vn[n-2])

	for j := m; j >= 0; j-- {
		num := uint64(un[j+n])<<wordBits | uint64(un[j+n-1])
		qhat := num / top
		rhat := num % top
		for qhat >= radix || qhat*next > (rhat<<wordBits|uint64(un[j+n-2])) {
			qhat--
			rhat += top
			if rhat >= radix {
				break
			}
		}

		// Multiply and subtract qhat * vn from the current window of un.
		var k int64
		for i := 0; i < n; i++ {
			p := qhat * uint64(vn[i])
			t := int64(un[i+j]) - k - int64(p&(radix-1))
			un[i+j] = uint32(t)
			k = int64(p>>wordBits) - (t >> wordBits)
		}
		t := int64(un[j+n]) - k
		un[j+n] = uint32(t)

		// qhat was one too large: add the divisor back.
		if t < 0 {
			qhat--
			var carry uint64
			for i := 0; i < n; i++ {
				sum := uint64(un[i+j]) + uint64(vn[i]) + carry
				un[i+j] = uint32(sum)
				carry = sum >> wordBits
			}
			un[j+n] += uint32(carry)
		}
		q[j] = uint32(qhat)
	}

	r := make([]uint32, n)
	for i := 0; i < n; i++ {
		r[i] = un[i] >> s
		if s > 0 {
			r[i] |= un[i+1] << (wordBits - s)
		}
	}

	return BigUint{digits: normalize(q)}, BigUint{digits: normalize(r)}
}

// shiftLeftBits returns src << s (s < wordBits) in a fresh vector of length size.
func shiftLeftBits(src []uint32, s uint, size int) []uint32 {
	out := make([]uint32, size)
	for i := 0; i < len(src); i++ {
		out[i] |= src[i] << s
		if s > 0 && i+1 < size {
			out[i+1] = src[i] >> (wordBits - s)
		}
	}
	return out
}
