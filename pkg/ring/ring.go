// Package ring implements arithmetic in the cyclotomic ring R_q = Z_q[x]/(x^n + 1).
//
// Mathematical Foundation:
//
// An element of R_q is a polynomial of degree below n with coefficients in Z_q.
// Multiplication is polynomial multiplication followed by reduction with
// x^n ≡ -1, so the product is negacyclic:
//
//	(a·b)_k = Σ_{i+j=k} a_i·b_j - Σ_{i+j=k+n} a_i·b_j   (mod q)
//
// When q is prime and q ≡ 1 (mod 2n), Z_q contains a primitive 2n-th root of
// unity and the product can be computed with a negacyclic Number Theoretic
// Transform in O(n log n). The transform is delegated to lattigo's ring package;
// the result is bit-identical to schoolbook multiplication.
//
// Elements are immutable values. Every operation returns a fresh Element whose
// coefficients are canonical residues in [0, q).
package ring

import (
	"math/big"
	"math/bits"

	lattigo "github.com/tuneinsight/lattigo/v3/ring"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
)

// Ring is the quotient ring Z_q[x]/(x^n + 1) for a fixed (n, q).
// A Ring is read-only after construction and safe for concurrent use.
type Ring struct {
	n     int
	q     uint64
	qBits int
	base  *lattigo.Ring
}

// New creates the ring Z_q[x]/(x^n + 1).
//
// Parameters:
//   - n: ring degree, a power of two
//   - q: prime modulus with q ≡ 1 (mod 2n) and q < 2^32
//
// Returns:
//   - Ring: The initialized ring with precomputed NTT tables
//   - error: Non-nil if the parameters do not admit a negacyclic NTT
func New(n int, q uint64) (*Ring, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, qerrors.NewCryptoError("ring.New", qerrors.ErrInvalidParameters)
	}
	if q < 3 || q >= 1<<32 || q%uint64(2*n) != 1 {
		return nil, qerrors.NewCryptoError("ring.New", qerrors.ErrInvalidParameters)
	}
	if !new(big.Int).SetUint64(q).ProbablyPrime(20) {
		return nil, qerrors.NewCryptoError("ring.New", qerrors.ErrInvalidParameters)
	}

	base, err := lattigo.NewRing(n, []uint64{q})
	if err != nil {
		return nil, qerrors.NewCryptoError("ring.New", err)
	}

	return &Ring{
		n:     n,
		q:     q,
		qBits: bits.Len64(q),
		base:  base,
	}, nil
}

// N returns the ring degree.
func (r *Ring) N() int {
	return r.n
}

// Modulus returns q.
func (r *Ring) Modulus() uint64 {
	return r.q
}

// Validate checks that e is a well-formed element of this ring.
func (r *Ring) Validate(e Element) error {
	if len(e.coeffs) != r.n || e.q != r.q {
		return qerrors.ErrInvalidRingElement
	}
	for _, c := range e.coeffs {
		if c >= r.q {
			return qerrors.ErrCoefficientOutOfRange
		}
	}
	return nil
}

// Zero returns the additive identity.
func (r *Ring) Zero() Element {
	return Element{coeffs: make([]uint64, r.n), q: r.q}
}

// NewElement builds an element from signed coefficients, reducing each one
// into [0, q). The slice must have exactly n entries.
func (r *Ring) NewElement(coeffs []int64) (Element, error) {
	if len(coeffs) != r.n {
		return Element{}, qerrors.ErrInvalidRingElement
	}
	out := make([]uint64, r.n)
	for i, c := range coeffs {
		out[i] = r.reduce(c)
	}
	return Element{coeffs: out, q: r.q}, nil
}

// ElementFromCanonical builds an element from coefficients that must already
// be canonical residues in [0, q).
func (r *Ring) ElementFromCanonical(coeffs []uint64) (Element, error) {
	if len(coeffs) != r.n {
		return Element{}, qerrors.ErrInvalidRingElement
	}
	out := make([]uint64, r.n)
	for i, c := range coeffs {
		if c >= r.q {
			return Element{}, qerrors.ErrCoefficientOutOfRange
		}
		out[i] = c
	}
	return Element{coeffs: out, q: r.q}, nil
}

// Add returns a + b.
func (r *Ring) Add(a, b Element) Element {
	r.mustMatch(a, b)
	out := make([]uint64, r.n)
	for i := range out {
		s := a.coeffs[i] + b.coeffs[i]
		if s >= r.q {
			s -= r.q
		}
		out[i] = s
	}
	return Element{coeffs: out, q: r.q}
}

// Sub returns a - b.
func (r *Ring) Sub(a, b Element) Element {
	r.mustMatch(a, b)
	out := make([]uint64, r.n)
	for i := range out {
		out[i] = a.coeffs[i] + r.q - b.coeffs[i]
		if out[i] >= r.q {
			out[i] -= r.q
		}
	}
	return Element{coeffs: out, q: r.q}
}

// Neg returns -a.
func (r *Ring) Neg(a Element) Element {
	r.mustMatch(a, a)
	out := make([]uint64, r.n)
	for i, c := range a.coeffs {
		if c != 0 {
			out[i] = r.q - c
		}
	}
	return Element{coeffs: out, q: r.q}
}

// Mul returns the negacyclic product a·b mod (x^n + 1, q).
func (r *Ring) Mul(a, b Element) Element {
	r.mustMatch(a, b)

	pa := r.base.NewPoly()
	pb := r.base.NewPoly()
	copy(pa.Coeffs[0], a.coeffs)
	copy(pb.Coeffs[0], b.coeffs)

	r.base.NTT(pa, pa)
	r.base.NTT(pb, pb)
	r.base.MulCoeffs(pa, pb, pa)
	r.base.InvNTT(pa, pa)

	out := make([]uint64, r.n)
	for i, c := range pa.Coeffs[0] {
		out[i] = c % r.q
	}
	return Element{coeffs: out, q: r.q}
}

// reduce maps a signed integer to its canonical residue.
func (r *Ring) reduce(v int64) uint64 {
	m := v % int64(r.q)
	if m < 0 {
		m += int64(r.q)
	}
	return uint64(m)
}

// mustMatch panics when an operand was not produced by this ring. Operands
// are validated at the API boundary, so a mismatch here is a programming error.
func (r *Ring) mustMatch(a, b Element) {
	if len(a.coeffs) != r.n || len(b.coeffs) != r.n || a.q != r.q || b.q != r.q {
		panic("ring: operand is not an element of this ring")
	}
}
