package ring

import (
	"encoding/binary"
	"io"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
)

// SampleBounded draws an element whose coefficients are independent and
// uniform over the closed interval [-bound, bound].
//
// Each coefficient is taken from a 32-bit word by rejection sampling: words at
// or above the largest multiple of (2·bound+1) below 2^32 are discarded, which
// keeps the distribution exactly uniform.
//
// Parameters:
//   - rng: randomness source, normally crypto/rand.Reader
//   - bound: non-negative bound, strictly below q/2
//
// Returns:
//   - Element: the sampled element
//   - error: Non-nil if the bound is invalid or rng fails
func (r *Ring) SampleBounded(rng io.Reader, bound int) (Element, error) {
	if bound < 0 || uint64(bound) >= r.q/2 {
		return Element{}, qerrors.NewCryptoError("ring.SampleBounded", qerrors.ErrInvalidBound)
	}

	span := uint64(2*bound + 1)
	limit := (uint64(1) << 32) / span * span

	coeffs := make([]uint64, r.n)
	buf := make([]byte, 4*r.n)
	defer clear(buf)

	filled := 0
	for filled < r.n {
		need := r.n - filled
		if _, err := io.ReadFull(rng, buf[:4*need]); err != nil {
			return Element{}, qerrors.NewCryptoError("ring.SampleBounded", err)
		}
		for j := 0; j < need; j++ {
			v := uint64(binary.LittleEndian.Uint32(buf[4*j:]))
			if v >= limit {
				continue
			}
			coeffs[filled] = r.reduce(int64(v%span) - int64(bound))
			filled++
		}
	}

	return Element{coeffs: coeffs, q: r.q}, nil
}

// SampleUniform draws an element whose coefficients are uniform over [0, q).
//
// Words are masked to the bit length of q and rejected when not below q. The
// sampler is deterministic in its input stream, so an extendable-output
// function seeded with a public value yields reproducible elements.
func (r *Ring) SampleUniform(rng io.Reader) (Element, error) {
	mask := uint64(1)<<r.qBits - 1

	coeffs := make([]uint64, r.n)
	buf := make([]byte, 4*r.n)

	filled := 0
	for filled < r.n {
		need := r.n - filled
		if _, err := io.ReadFull(rng, buf[:4*need]); err != nil {
			return Element{}, qerrors.NewCryptoError("ring.SampleUniform", err)
		}
		for j := 0; j < need; j++ {
			v := uint64(binary.LittleEndian.Uint32(buf[4*j:])) & mask
			if v >= r.q {
				continue
			}
			coeffs[filled] = v
			filled++
		}
	}

	return Element{coeffs: coeffs, q: r.q}, nil
}
