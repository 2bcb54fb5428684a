package setla

import (
	"math/big"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/crypto"
	"github.com/sara-star-quant/setla/pkg/ring"
)

// challengeTranscript is the canonical hash input. Field order is fixed by
// the toarray encoding.
type challengeTranscript struct {
	_        struct{} `cbor:",toarray"`
	Domain   string
	W1       []byte
	W2       []byte
	Message  []byte
	Key      []byte
	Sender   []byte
	Receiver []byte
}

var three = big.NewInt(3)

// ChallengeHash maps the compressed commitments, the message, the ephemeral
// key and both public keys to a sparse ternary challenge polynomial.
//
// The SHA3-512 digest of the transcript is read as a big-endian integer h and
// consumed as base-3 digits: each step appends (h mod 3) - 1 and sets h = h/3,
// until omega nonzero coefficients have been produced. The result has exactly
// omega coefficients equal to ±1; all others are zero.
//
// If h reaches zero first the digest is exhausted and ErrChallengeExhausted is
// returned. A nil message is encoded distinctly from an empty one.
func ChallengeHash(pp *PublicParameters, w1, w2 ring.Element, message, key []byte, sender, receiver *PublicKey) (ring.Element, error) {
	blob, err := ccbor.Marshal(&challengeTranscript{
		Domain:   constants.DomainSeparatorChallenge,
		W1:       w1.Bytes(),
		W2:       w2.Bytes(),
		Message:  message,
		Key:      key,
		Sender:   sender.Bytes(),
		Receiver: receiver.Bytes(),
	})
	if err != nil {
		return ring.Element{}, qerrors.NewCryptoError("ChallengeHash", err)
	}
	digest := crypto.Digest512(blob)
	crypto.Zeroize(blob)

	n := pp.set.N
	coeffs := make([]int64, n)
	h := new(big.Int).SetBytes(digest[:])
	digit := new(big.Int)

	for i, weight := 0, 0; weight < pp.set.Omega; i++ {
		if h.Sign() == 0 || i == n {
			return ring.Element{}, qerrors.NewCryptoError("ChallengeHash", qerrors.ErrChallengeExhausted)
		}
		h.DivMod(h, three, digit)
		c := digit.Int64() - 1
		coeffs[i] = c
		if c != 0 {
			weight++
		}
	}

	return pp.ring.NewElement(coeffs)
}
