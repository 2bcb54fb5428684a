package ring

import (
	"encoding/binary"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
)

// Element is an immutable element of R_q holding n canonical coefficients.
// The zero value is not a valid element; obtain elements from a Ring.
type Element struct {
	coeffs []uint64
	q      uint64
}

// Len returns the number of coefficients.
func (e Element) Len() int {
	return len(e.coeffs)
}

// Coeff returns the canonical coefficient i in [0, q).
func (e Element) Coeff(i int) uint64 {
	return e.coeffs[i]
}

// Coeffs returns a copy of the canonical coefficients.
func (e Element) Coeffs() []uint64 {
	out := make([]uint64, len(e.coeffs))
	copy(out, e.coeffs)
	return out
}

// Balanced returns coefficient i as its representative in (-q/2, q/2].
func (e Element) Balanced(i int) int64 {
	c := e.coeffs[i]
	if c > e.q/2 {
		return int64(c) - int64(e.q)
	}
	return int64(c)
}

// BalancedCoeffs returns all coefficients as balanced representatives.
func (e Element) BalancedCoeffs() []int64 {
	out := make([]int64, len(e.coeffs))
	for i := range e.coeffs {
		out[i] = e.Balanced(i)
	}
	return out
}

// InfNormBelow reports whether every balanced coefficient c satisfies |c| < bound.
func (e Element) InfNormBelow(bound int64) bool {
	ok := true
	for i := range e.coeffs {
		c := e.Balanced(i)
		if c <= -bound || c >= bound {
			ok = false
		}
	}
	return ok && len(e.coeffs) > 0
}

// IsTernary reports whether every balanced coefficient lies in [-1, 1].
func (e Element) IsTernary() bool {
	return e.InfNormBelow(2)
}

// L1Norm returns the sum of absolute values of the balanced coefficients.
func (e Element) L1Norm() int64 {
	var sum int64
	for i := range e.coeffs {
		c := e.Balanced(i)
		if c < 0 {
			c = -c
		}
		sum += c
	}
	return sum
}

// Equal reports whether two elements are identical. All coefficients are
// compared before returning.
func (e Element) Equal(o Element) bool {
	if len(e.coeffs) != len(o.coeffs) || e.q != o.q {
		return false
	}
	var diff uint64
	for i := range e.coeffs {
		diff |= e.coeffs[i] ^ o.coeffs[i]
	}
	return diff == 0
}

// Bytes serializes the element.
//
// Format: n coefficients, each a 4-byte big-endian canonical residue.
func (e Element) Bytes() []byte {
	buf := make([]byte, len(e.coeffs)*constants.CoefficientSize)
	for i, c := range e.coeffs {
		binary.BigEndian.PutUint32(buf[i*constants.CoefficientSize:], uint32(c))
	}
	return buf
}

// Zeroize overwrites the coefficients with zeros. Use it on secret elements
// once they are no longer needed.
func (e Element) Zeroize() {
	clear(e.coeffs)
}

// ParseElement parses an element of r from its encoded form.
func (r *Ring) ParseElement(data []byte) (Element, error) {
	if len(data) != r.n*constants.CoefficientSize {
		return Element{}, qerrors.ErrInvalidRingElement
	}
	coeffs := make([]uint64, r.n)
	for i := range coeffs {
		c := uint64(binary.BigEndian.Uint32(data[i*constants.CoefficientSize:]))
		if c >= r.q {
			return Element{}, qerrors.ErrCoefficientOutOfRange
		}
		coeffs[i] = c
	}
	return Element{coeffs: coeffs, q: r.q}, nil
}
