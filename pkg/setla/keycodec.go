package setla

import (
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/ring"
)

// EncodeKey embeds a symmetric key into a ring element. Bit i of the key,
// taken most significant bit first, becomes coefficient i scaled to
// floor((q-1)/2); remaining coefficients are zero.
func EncodeKey(pp *PublicParameters, key []byte) (ring.Element, error) {
	if len(key) != pp.set.KeySize() {
		return ring.Element{}, qerrors.NewCryptoError("EncodeKey", qerrors.ErrInvalidKeySize)
	}

	half := (pp.set.Q - 1) / 2
	coeffs := make([]uint64, pp.set.N)
	for i := 0; i < pp.set.KeyBits; i++ {
		bit := uint64(key[i/8]>>(7-i%8)) & 1
		coeffs[i] = bit * half
	}
	e, err := pp.ring.ElementFromCanonical(coeffs)
	clear(coeffs)
	return e, err
}

// DecodeKey recovers a symmetric key from a noisy encoding. Bit i is one iff
// the canonical coefficient c satisfies ceil(q/4) - 1 < c < q - ceil(q/4),
// that is, c is closer to q/2 than to 0. Decoding is exact while every key
// coefficient carries noise of magnitude below q/4.
func DecodeKey(pp *PublicParameters, e ring.Element) []byte {
	q := pp.set.Q
	quarter := (q + 3) / 4
	lo, hi := quarter-1, q-quarter

	key := make([]byte, pp.set.KeySize())
	for i := 0; i < pp.set.KeyBits; i++ {
		c := e.Coeff(i)
		if c > lo && c < hi {
			key[i/8] |= 1 << (7 - i%8)
		}
	}
	return key
}
