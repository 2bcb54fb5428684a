package setla

import (
	"bytes"
	"context"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/metrics"
)

// pairwiseTestMessage is signcrypted to every new key pair when the pairwise
// consistency test is enabled.
var pairwiseTestMessage = []byte("SETLA pairwise consistency test")

// GenerateKeyPair samples a new key pair with secret coefficients in [-1, 1].
//
// When the pairwise consistency test is enabled the key pair signcrypts a
// fixed message to itself and must recover it; a mismatch fails with
// ErrKeyGenerationFailed (and panics in FIPS builds).
func (s *Scheme) GenerateKeyPair() (kp *KeyPair, err error) {
	ctx, end := s.tracer.StartSpan(context.Background(), metrics.SpanKeyGen)
	defer func() { end(err) }()

	kp, err = generateKeyPair(s.params, s.rng)
	if err != nil {
		return nil, qerrors.NewCryptoError("GenerateKeyPair", qerrors.ErrKeyGenerationFailed)
	}

	if s.pairwiseTest {
		if err := crypto.RunPairwiseTest("SETLA", func() error {
			return s.pairwiseConsistency(ctx, kp)
		}); err != nil {
			kp.Zeroize()
			s.log.Error("pairwise consistency test failed")
			return nil, qerrors.NewCryptoError("GenerateKeyPair", qerrors.ErrKeyGenerationFailed)
		}
	}

	s.collector.KeyGenerated()
	return kp, nil
}

// pairwiseConsistency round-trips a fixed message through kp.
func (s *Scheme) pairwiseConsistency(ctx context.Context, kp *KeyPair) (err error) {
	ctx, end := s.tracer.StartSpan(ctx, metrics.SpanSelfTest)
	defer func() { end(err) }()

	sc, err := s.Signcrypt(ctx, kp.Public, kp, pairwiseTestMessage)
	if err != nil {
		return err
	}
	m, err := s.Unsigncrypt(ctx, kp, kp.Public, sc)
	if err != nil {
		return err
	}
	if !bytes.Equal(m, pairwiseTestMessage) {
		return qerrors.ErrSelfTestFailed
	}
	return nil
}
