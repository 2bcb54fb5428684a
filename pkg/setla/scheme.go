// Package setla implements SETLA, a lattice-based signcryption scheme over the
// ring R_q = Z_q[x]/(x^n + 1).
//
// SETLA combines three primitives into one authenticated-encryption operation:
//   - a Fiat-Shamir-with-aborts signature binding the sender's key,
//   - a Ring-LWE key encapsulation carrying a fresh symmetric key to the
//     receiver,
//   - a symmetric cipher encrypting the message under that key.
//
// # Construction
//
// Key Generation (a1, a2 public):
//
//	s, e1, e2 ← coefficients uniform in [-1, 1]
//	t1 = a1·s + e1,  t2 = a2·s + e2
//	pk = (t1, t2),  sk = (s, e1, e2)
//
// Signcrypt (sender sk_A/pk_A, receiver pk_B):
//
//	K ← 256 random bits
//	repeat:
//	    y ← coefficients uniform in [-B, B]
//	    v1 = a1·y,  v2 = a2·y
//	    c  = H(⌊v1⌉_d, ⌊v2⌉_d, m, K, pk_A, pk_B)
//	    z  = s_A·c + y
//	    accept iff ‖z‖∞ < B - ω and ⌊v_i - e_i·c⌉_d = ⌊v_i⌉_d for i = 1, 2
//	    otherwise draw a fresh K
//	y0 ← coefficients uniform in [-B, B]
//	x   = t1_B·y + y0 + Encode(K)
//	ε   = Enc_K(m)
//	output (z, c, x, ε)
//
// Unsigncrypt (receiver sk_B/pk_B, sender pk_A):
//
//	w1 = a1·z - t1_A·c,  w2 = a2·z - t2_A·c
//	K  = Decode(x - w1·s_B)
//	m  = Dec_K(ε)
//	accept iff c = H(⌊w1⌉_d, ⌊w2⌉_d, m, K, pk_A, pk_B) and ‖z‖∞ < B - ω
//
// Since z = s_A·c + y, the verifier's w_i equals v_i - e_i·c exactly, and the
// rejection condition guarantees it rounds like v_i. The receiver's
// x - w1·s_B = Encode(K) + small noise, which Decode removes.
//
// Every rejection in Unsigncrypt returns the single sentinel
// ErrUnsigncryptionFailed so that callers and logs cannot distinguish a bad
// signature from a failed decryption.
package setla

import (
	"io"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/metrics"
)

// Scheme runs SETLA operations for one set of public parameters. It is
// immutable after New and safe for concurrent use as long as its random
// source is.
type Scheme struct {
	params       *PublicParameters
	cipher       crypto.SymmetricCipher
	rng          io.Reader
	maxAttempts  int
	pairwiseTest bool

	log       *metrics.Logger
	tracer    metrics.Tracer
	collector *metrics.Collector
}

// Option configures a Scheme.
type Option func(*schemeOptions)

type schemeOptions struct {
	rng          io.Reader
	cipherMode   constants.CipherMode
	cipher       crypto.SymmetricCipher
	maxAttempts  int
	pairwiseTest bool
	logger       *metrics.Logger
	tracer       metrics.Tracer
	collector    *metrics.Collector
}

// WithRandom sets the randomness source. The default is the system CSPRNG.
// The reader must be safe for concurrent use if the Scheme is shared.
func WithRandom(rng io.Reader) Option {
	return func(o *schemeOptions) {
		o.rng = rng
	}
}

// WithCipherMode selects the symmetric layer. The default is
// CipherModeReferenceCFB.
func WithCipherMode(mode constants.CipherMode) Option {
	return func(o *schemeOptions) {
		o.cipherMode = mode
	}
}

// WithCipher installs a custom symmetric layer, overriding WithCipherMode.
func WithCipher(c crypto.SymmetricCipher) Option {
	return func(o *schemeOptions) {
		o.cipher = c
	}
}

// WithMaxAttempts caps the Signcrypt rejection loop.
func WithMaxAttempts(n int) Option {
	return func(o *schemeOptions) {
		o.maxAttempts = n
	}
}

// WithPairwiseTest enables the pairwise consistency test on key generation.
// It is always on in FIPS builds.
func WithPairwiseTest(enabled bool) Option {
	return func(o *schemeOptions) {
		o.pairwiseTest = enabled
	}
}

// WithLogger sets the logger. The default is metrics.GetLogger().
func WithLogger(l *metrics.Logger) Option {
	return func(o *schemeOptions) {
		o.logger = l
	}
}

// WithTracer sets the tracer. The default is metrics.GetTracer().
func WithTracer(t metrics.Tracer) Option {
	return func(o *schemeOptions) {
		o.tracer = t
	}
}

// WithCollector sets the metrics collector. The default records nothing.
func WithCollector(c *metrics.Collector) Option {
	return func(o *schemeOptions) {
		o.collector = c
	}
}

// New creates a Scheme for params.
//
// Returns:
//   - Scheme: the configured scheme
//   - error: Non-nil if params is nil, the attempt cap is not positive or
//     the cipher mode is unsupported
func New(params *PublicParameters, opts ...Option) (*Scheme, error) {
	if params == nil {
		return nil, qerrors.NewCryptoError("setla.New", qerrors.ErrInvalidParameters)
	}

	o := schemeOptions{
		cipherMode:  constants.CipherModeReferenceCFB,
		maxAttempts: constants.DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.maxAttempts <= 0 {
		return nil, qerrors.NewCryptoError("setla.New", qerrors.ErrInvalidConfig)
	}
	if o.rng == nil {
		o.rng = crypto.Reader
	}
	if o.cipher == nil {
		c, err := crypto.NewSymmetricCipher(o.cipherMode, o.rng)
		if err != nil {
			return nil, err
		}
		o.cipher = c
	}
	if o.logger == nil {
		o.logger = metrics.GetLogger()
	}
	if o.tracer == nil {
		o.tracer = metrics.GetTracer()
	}

	s := &Scheme{
		params:       params,
		cipher:       o.cipher,
		rng:          o.rng,
		maxAttempts:  o.maxAttempts,
		pairwiseTest: o.pairwiseTest || crypto.FIPSMode(),
		log:          o.logger.Named("setla"),
		tracer:       o.tracer,
		collector:    o.collector,
	}

	if s.pairwiseTest {
		if result := crypto.RNGHealthCheck(s.rng); !result.Passed {
			return nil, qerrors.NewCryptoError("setla.New", qerrors.ErrSelfTestFailed)
		}
	}

	return s, nil
}

// Params returns the public parameters.
func (s *Scheme) Params() *PublicParameters {
	return s.params
}

// CipherMode returns the mode of the symmetric layer.
func (s *Scheme) CipherMode() constants.CipherMode {
	return s.cipher.Mode()
}

// MaxAttempts returns the Signcrypt attempt cap.
func (s *Scheme) MaxAttempts() int {
	return s.maxAttempts
}
