package ring

// Compress drops the d low-order bits of every coefficient with rounding.
//
// For a canonical coefficient x the low part t = x mod 2^d is mapped into
// (-2^(d-1), 2^(d-1)] and the compressed coefficient is (x - t) / 2^d. Two
// values that differ by less than the distance to the nearest rounding
// boundary compress to the same result, which lets a verifier recompute a
// hash input without exact agreement on the noisy low bits.
//
// Output coefficients lie in [0, ceil(q/2^d)].
func (r *Ring) Compress(x Element, d int) Element {
	r.mustMatch(x, x)
	if d <= 0 || d >= r.qBits {
		panic("ring: compression bits out of range")
	}

	pow := uint64(1) << d
	half := pow >> 1

	out := make([]uint64, r.n)
	for i, c := range x.coeffs {
		t := c & (pow - 1)
		if t > half {
			// t - 2^d is negative, so x - t rounds up.
			out[i] = (c + (pow - t)) >> d
		} else {
			out[i] = (c - t) >> d
		}
	}
	return Element{coeffs: out, q: r.q}
}
