package setla

import (
	"io"
	"math/big"
	"math/bits"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/ring"
)

// maxRingDegree bounds n so that parsing untrusted parameters cannot force
// huge allocations.
const maxRingDegree = 1 << 16

// ParameterSet holds the scalar parameters of the scheme.
type ParameterSet struct {
	// N is the ring degree.
	N int
	// Q is the prime modulus.
	Q uint64
	// Omega is the weight of the challenge polynomial.
	Omega int
	// D is the number of low-order bits dropped by Compress.
	D int
	// B bounds the masking and blinding polynomials.
	B int
	// KeyBits is the length of the ephemeral symmetric key.
	KeyBits int
}

// DefaultParameterSet returns n = 1024, q = 33550337, omega = 16, d = 15,
// B = 32768 and a 256-bit key.
func DefaultParameterSet() ParameterSet {
	return ParameterSet{
		N:       constants.RingDegree,
		Q:       constants.Modulus,
		Omega:   constants.ChallengeWeight,
		D:       constants.RoundingBits,
		B:       constants.SamplingBound,
		KeyBits: constants.SymmetricKeyBits,
	}
}

// Validate checks the internal consistency of the parameter set.
func (p ParameterSet) Validate() error {
	fail := func() error {
		return qerrors.NewCryptoError("ParameterSet.Validate", qerrors.ErrInvalidParameters)
	}

	if p.N < 2 || p.N > maxRingDegree || p.N&(p.N-1) != 0 {
		return fail()
	}
	if p.Q < 3 || p.Q >= 1<<32 || p.Q%uint64(2*p.N) != 1 {
		return fail()
	}
	if !new(big.Int).SetUint64(p.Q).ProbablyPrime(20) {
		return fail()
	}
	if p.Omega <= 0 || p.Omega > p.N {
		return fail()
	}
	if p.D <= 0 || p.D >= bits.Len64(p.Q) {
		return fail()
	}
	if p.B <= p.Omega || uint64(p.B) >= p.Q/2 {
		return fail()
	}
	if p.KeyBits <= 0 || p.KeyBits%8 != 0 || p.KeyBits > p.N {
		return fail()
	}
	return nil
}

// KeySize returns the ephemeral key length in bytes.
func (p ParameterSet) KeySize() int {
	return p.KeyBits / 8
}

// normBound is the strict acceptance bound on z.
func (p ParameterSet) normBound() int64 {
	return int64(p.B - p.Omega)
}

// PublicParameters are the parameter set together with the ring and the two
// public reference elements a1, a2 shared by all parties. They are read-only
// after construction and safe for concurrent use.
type PublicParameters struct {
	set  ParameterSet
	ring *ring.Ring
	a1   ring.Element
	a2   ring.Element
}

func newBase(set ParameterSet) (*PublicParameters, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	r, err := ring.New(set.N, set.Q)
	if err != nil {
		return nil, err
	}
	return &PublicParameters{set: set, ring: r}, nil
}

// NewPublicParameters samples a1 and a2 uniformly from rng. A nil rng uses the
// system CSPRNG.
func NewPublicParameters(set ParameterSet, rng io.Reader) (*PublicParameters, error) {
	pp, err := newBase(set)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = crypto.Reader
	}
	if pp.a1, err = pp.ring.SampleUniform(rng); err != nil {
		return nil, qerrors.NewCryptoError("NewPublicParameters", err)
	}
	if pp.a2, err = pp.ring.SampleUniform(rng); err != nil {
		return nil, qerrors.NewCryptoError("NewPublicParameters", err)
	}
	return pp, nil
}

// DerivePublicParameters expands seed into a1 and a2 with SHAKE-256. Parties
// that share the seed obtain identical parameters.
func DerivePublicParameters(set ParameterSet, seed []byte) (*PublicParameters, error) {
	pp, err := newBase(set)
	if err != nil {
		return nil, err
	}
	stream, err := crypto.ExpandSeed(constants.DomainSeparatorParameters, seed)
	if err != nil {
		return nil, err
	}
	if pp.a1, err = pp.ring.SampleUniform(stream); err != nil {
		return nil, qerrors.NewCryptoError("DerivePublicParameters", err)
	}
	if pp.a2, err = pp.ring.SampleUniform(stream); err != nil {
		return nil, qerrors.NewCryptoError("DerivePublicParameters", err)
	}
	return pp, nil
}

// NewPublicParametersFromElements builds parameters from explicit canonical
// coefficients of a1 and a2.
func NewPublicParametersFromElements(set ParameterSet, a1, a2 []uint64) (*PublicParameters, error) {
	pp, err := newBase(set)
	if err != nil {
		return nil, err
	}
	if pp.a1, err = pp.ring.ElementFromCanonical(a1); err != nil {
		return nil, qerrors.NewCryptoError("NewPublicParametersFromElements", err)
	}
	if pp.a2, err = pp.ring.ElementFromCanonical(a2); err != nil {
		return nil, qerrors.NewCryptoError("NewPublicParametersFromElements", err)
	}
	return pp, nil
}

// Set returns the scalar parameters.
func (pp *PublicParameters) Set() ParameterSet { return pp.set }

// Ring returns the ring the parameters live in.
func (pp *PublicParameters) Ring() *ring.Ring { return pp.ring }

// A1 returns the first public reference element.
func (pp *PublicParameters) A1() ring.Element { return pp.a1 }

// A2 returns the second public reference element.
func (pp *PublicParameters) A2() ring.Element { return pp.a2 }

type publicParametersWire struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	N       int
	Q       uint64
	Omega   int
	D       int
	B       int
	KeyBits int
	A1      []byte
	A2      []byte
}

// Bytes serializes the parameters as canonical CBOR.
func (pp *PublicParameters) Bytes() []byte {
	blob, err := ccbor.Marshal(&publicParametersWire{
		Version: encodingVersion,
		N:       pp.set.N,
		Q:       pp.set.Q,
		Omega:   pp.set.Omega,
		D:       pp.set.D,
		B:       pp.set.B,
		KeyBits: pp.set.KeyBits,
		A1:      pp.a1.Bytes(),
		A2:      pp.a2.Bytes(),
	})
	if err != nil {
		panic(err)
	}
	return blob
}

// ParsePublicParameters parses the output of PublicParameters.Bytes.
func ParsePublicParameters(data []byte) (*PublicParameters, error) {
	var w publicParametersWire
	if err := dcbor.Unmarshal(data, &w); err != nil {
		return nil, qerrors.NewCryptoError("ParsePublicParameters", qerrors.ErrInvalidParameters)
	}
	if w.Version != encodingVersion {
		return nil, qerrors.NewCryptoError("ParsePublicParameters", qerrors.ErrInvalidParameters)
	}

	pp, err := newBase(ParameterSet{N: w.N, Q: w.Q, Omega: w.Omega, D: w.D, B: w.B, KeyBits: w.KeyBits})
	if err != nil {
		return nil, err
	}
	if pp.a1, err = pp.ring.ParseElement(w.A1); err != nil {
		return nil, qerrors.NewCryptoError("ParsePublicParameters", err)
	}
	if pp.a2, err = pp.ring.ParseElement(w.A2); err != nil {
		return nil, qerrors.NewCryptoError("ParsePublicParameters", err)
	}
	return pp, nil
}
