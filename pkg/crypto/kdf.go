// kdf.go implements hashing and seed expansion.
//
// Two primitives are used:
//
//   - SHA3-512 (FIPS 202) produces the 512-bit digest from which the sparse
//     challenge polynomial is expanded.
//   - SHAKE-256 (FIPS 202), an extendable-output function, expands a short
//     public seed into the stream consumed by the uniform ring sampler. The
//     XOF comes from CIRCL so that seed expansion does not depend on the
//     x/crypto sha3 wrapper.
//
// Domain separation: every expansion absorbs
//
//	len(domain) (2 bytes BE) || domain || seed
//
// so that seeds reused across contexts produce unrelated streams.
package crypto

import (
	"encoding/binary"
	"io"

	"github.com/cloudflare/circl/xof"
	"golang.org/x/crypto/sha3"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
)

// Digest512 returns the SHA3-512 digest of data.
func Digest512(data []byte) [constants.ChallengeDigestSize]byte {
	return sha3.Sum512(data)
}

// ExpandSeed returns a deterministic byte stream derived from domain and seed
// using SHAKE-256. The stream is unbounded.
//
// Parameters:
//   - domain: Domain separation string (e.g., "SETLA-v1-PublicParameters")
//   - seed: Public or secret seed material, at least 16 bytes
//
// Returns:
//   - io.Reader: the SHAKE-256 output stream
//   - error: Non-nil if the seed is too short or the domain too long
func ExpandSeed(domain string, seed []byte) (io.Reader, error) {
	if len(seed) < 16 {
		return nil, qerrors.NewCryptoError("ExpandSeed", qerrors.ErrInvalidKeySize)
	}
	if len(domain) > 0xFFFF {
		return nil, qerrors.NewCryptoError("ExpandSeed", qerrors.ErrInvalidParameters)
	}

	x := xof.SHAKE256.New()

	var prefix [2]byte
	binary.BigEndian.PutUint16(prefix[:], uint16(len(domain)))
	_, _ = x.Write(prefix[:])
	_, _ = x.Write([]byte(domain))
	_, _ = x.Write(seed)

	return x, nil
}
