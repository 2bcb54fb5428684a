package setla

import (
	"context"
	"time"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/metrics"
	"github.com/sara-star-quant/setla/pkg/ring"
)

// Signcrypt encrypts message to receiver and signs it with sender's key.
//
// Each attempt draws a fresh ephemeral key K and masking polynomial y, and is
// accepted only if the response z is small enough to hide the secret and the
// verifier's recomputed commitments are guaranteed to round identically.
// About half of all attempts are accepted.
//
// Parameters:
//   - ctx: checked between attempts
//   - receiver: the receiver's public key
//   - sender: the sender's key pair
//   - message: the plaintext, at most constants.MaxMessageSize bytes
//
// Returns:
//   - Signcryption: the bundle (z, c, x, eps)
//   - error: ErrInvalidPublicKey/ErrInvalidPrivateKey for malformed keys,
//     ErrAttemptsExhausted if the attempt cap is reached, the context error on
//     cancellation, or a wrapped randomness failure
func (s *Scheme) Signcrypt(ctx context.Context, receiver *PublicKey, sender *KeyPair, message []byte) (sc *Signcryption, err error) {
	start := time.Now()
	ctx, end := s.tracer.StartSpan(ctx, metrics.SpanSigncrypt,
		metrics.WithAttribute(metrics.AttrCipherMode, s.cipher.Mode().String()),
		metrics.WithAttribute(metrics.AttrMessageSize, len(message)),
	)
	defer func() {
		if err != nil {
			s.collector.SigncryptFailed()
		}
		end(err)
	}()

	pp := s.params
	if err := validatePublicKey(pp, receiver); err != nil {
		return nil, qerrors.NewProtocolError("Signcrypt", err)
	}
	if err := validateKeyPair(pp, sender); err != nil {
		return nil, qerrors.NewProtocolError("Signcrypt", err)
	}
	if len(message) > constants.MaxMessageSize {
		return nil, qerrors.NewProtocolError("Signcrypt", qerrors.ErrMessageTooLarge)
	}
	if message == nil {
		// Decryption always yields a non-nil slice; hash the same encoding.
		message = []byte{}
	}

	key := make([]byte, pp.set.KeySize())
	defer crypto.Zeroize(key)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := crypto.ReadRandom(s.rng, key); err != nil {
			return nil, qerrors.NewProtocolError("Signcrypt", err)
		}

		y, z, c, reason, err := s.attempt(key, message, sender, receiver)
		if err != nil {
			return nil, qerrors.NewProtocolError("Signcrypt", err)
		}
		if reason != "" {
			y.Zeroize()
			s.collector.SigncryptRejected(reason)
			if s.log.Enabled(metrics.LevelDebug) {
				s.log.Debug("signcrypt attempt rejected", metrics.Fields{
					"attempt": attempt,
					"reason":  reason,
				})
			}
			continue
		}

		sc, err := s.encapsulate(y, z, c, key, message, receiver)
		y.Zeroize()
		if err != nil {
			return nil, qerrors.NewProtocolError("Signcrypt", err)
		}

		s.collector.SigncryptCompleted(attempt, time.Since(start))
		s.log.Info("signcryption accepted", metrics.Fields{"attempts": attempt})
		return sc, nil
	}

	s.log.Warn("signcrypt attempt cap reached", metrics.Fields{"max_attempts": s.maxAttempts})
	return nil, qerrors.NewProtocolError("Signcrypt", qerrors.ErrAttemptsExhausted)
}

// attempt runs one iteration of the rejection loop. A non-empty reason means
// the attempt was rejected; y is returned in either case so the caller can
// erase it.
func (s *Scheme) attempt(key, message []byte, sender *KeyPair, receiver *PublicKey) (y, z, c ring.Element, reason string, err error) {
	pp := s.params
	r := pp.ring
	d := pp.set.D
	sk := sender.Private

	y, err = r.SampleBounded(s.rng, pp.set.B)
	if err != nil {
		return y, z, c, "", err
	}

	v1 := r.Mul(pp.a1, y)
	v2 := r.Mul(pp.a2, y)
	v1c := r.Compress(v1, d)
	v2c := r.Compress(v2, d)

	c, err = ChallengeHash(pp, v1c, v2c, message, key, sender.Public, receiver)
	if err != nil {
		y.Zeroize()
		return y, z, c, "", err
	}

	z = r.Add(r.Mul(sk.s, c), y)
	if !z.InfNormBelow(pp.set.normBound()) {
		return y, z, c, metrics.ReasonNorm, nil
	}

	w1 := r.Sub(v1, r.Mul(sk.e1, c))
	w2 := r.Sub(v2, r.Mul(sk.e2, c))
	if !r.Compress(w1, d).Equal(v1c) || !r.Compress(w2, d).Equal(v2c) {
		return y, z, c, metrics.ReasonRounding, nil
	}

	return y, z, c, "", nil
}

// encapsulate blinds the key under the receiver's public key and encrypts
// the message with it.
func (s *Scheme) encapsulate(y, z, c ring.Element, key, message []byte, receiver *PublicKey) (*Signcryption, error) {
	pp := s.params
	r := pp.ring

	y0, err := r.SampleBounded(s.rng, pp.set.B)
	if err != nil {
		return nil, err
	}
	defer y0.Zeroize()

	encoded, err := EncodeKey(pp, key)
	if err != nil {
		return nil, err
	}
	defer encoded.Zeroize()

	x := r.Add(r.Add(r.Mul(receiver.t1, y), y0), encoded)

	eps, err := s.cipher.Encrypt(message, key)
	if err != nil {
		return nil, err
	}

	return &Signcryption{Z: z, C: c, X: x, Eps: eps}, nil
}
