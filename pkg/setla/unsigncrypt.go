package setla

import (
	"context"
	"time"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/metrics"
)

// Unsigncrypt verifies sc as coming from sender and decrypts it for receiver.
//
// Malformed inputs (nil or foreign keys, a nil bundle or elements of the wrong
// ring) are rejected up front with ErrInvalidPublicKey, ErrInvalidPrivateKey or
// ErrInvalidSigncryption. Every well-formed bundle that fails verification or
// decryption returns exactly ErrUnsigncryptionFailed, unwrapped. The challenge
// is recomputed even after a decryption failure.
//
// An accepted empty message is returned as a non-nil empty slice.
func (s *Scheme) Unsigncrypt(ctx context.Context, receiver *KeyPair, sender *PublicKey, sc *Signcryption) (message []byte, err error) {
	start := time.Now()
	ctx, end := s.tracer.StartSpan(ctx, metrics.SpanUnsigncrypt,
		metrics.WithAttribute(metrics.AttrCipherMode, s.cipher.Mode().String()),
	)
	defer func() { end(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pp := s.params
	if err := validateKeyPair(pp, receiver); err != nil {
		return nil, qerrors.NewProtocolError("Unsigncrypt", err)
	}
	if err := validatePublicKey(pp, sender); err != nil {
		return nil, qerrors.NewProtocolError("Unsigncrypt", err)
	}
	if err := validateSigncryption(pp, sc); err != nil {
		return nil, qerrors.NewProtocolError("Unsigncrypt", err)
	}

	r := pp.ring
	d := pp.set.D

	w1 := r.Sub(r.Mul(pp.a1, sc.Z), r.Mul(sender.t1, sc.C))
	w2 := r.Sub(r.Mul(pp.a2, sc.Z), r.Mul(sender.t2, sc.C))

	noisy := r.Sub(sc.X, r.Mul(w1, receiver.Private.s))
	key := DecodeKey(pp, noisy)
	noisy.Zeroize()
	defer crypto.Zeroize(key)

	decrypted := true
	m, derr := s.cipher.Decrypt(sc.Eps, key)
	if derr != nil {
		decrypted = false
		m = nil
	} else if m == nil {
		m = []byte{}
	}

	c, herr := ChallengeHash(pp, r.Compress(w1, d), r.Compress(w2, d), m, key, sender, receiver.Public)

	valid := decrypted && herr == nil
	valid = c.Equal(sc.C) && valid
	valid = sc.Z.InfNormBelow(pp.set.normBound()) && valid

	s.collector.UnsigncryptCompleted(valid, time.Since(start))

	if !valid {
		crypto.Zeroize(m)
		s.log.Debug("unsigncryption rejected")
		return nil, qerrors.ErrUnsigncryptionFailed
	}
	return m, nil
}
