// cipher.go implements the symmetric layer that carries the signcrypted message.
//
// The key is a fresh 256-bit value per signcryption, so no key is ever used
// twice and the mode does not need a per-key nonce schedule. Three modes exist:
//
//   - Reference CFB: AES-256 in 8-bit cipher feedback mode with an all-zero
//     IV. Unauthenticated. Interoperates with existing reference ciphertexts.
//   - AES-256-GCM and ChaCha20-Poly1305: authenticated modes with a random
//     96-bit nonce prefixed to the ciphertext (see aead.go).
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"io"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
)

// SymmetricCipher encrypts and decrypts a message under a one-time 32-byte key.
// Implementations are safe for concurrent use.
type SymmetricCipher interface {
	// Encrypt returns the ciphertext of plaintext under key.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt returns the plaintext of ciphertext under key. Unauthenticated
	// modes never report an integrity failure.
	Decrypt(ciphertext, key []byte) ([]byte, error)

	// Mode returns the cipher mode identifier.
	Mode() constants.CipherMode
}

// NewSymmetricCipher returns the cipher for mode. Nonces for the authenticated
// modes are drawn from rng; a nil rng selects Reader.
//
// In FIPS builds only FIPS-approved modes are accepted.
func NewSymmetricCipher(mode constants.CipherMode, rng io.Reader) (SymmetricCipher, error) {
	if !mode.IsSupported() {
		return nil, qerrors.NewCryptoError("NewSymmetricCipher", qerrors.ErrUnsupportedCipherMode)
	}
	if FIPSMode() && !mode.IsFIPSApproved() {
		return nil, qerrors.NewCryptoError("NewSymmetricCipher", qerrors.ErrUnsupportedCipherMode)
	}
	if rng == nil {
		rng = Reader
	}

	switch mode {
	case constants.CipherModeReferenceCFB:
		return referenceCFB{}, nil
	default:
		return &AEAD{mode: mode, rng: rng}, nil
	}
}

// referenceCFB is AES-256-CFB8 with a zero IV.
type referenceCFB struct{}

func (referenceCFB) Mode() constants.CipherMode { return constants.CipherModeReferenceCFB }

func (referenceCFB) Encrypt(plaintext, key []byte) ([]byte, error) {
	return cfb8(key, plaintext, false)
}

func (referenceCFB) Decrypt(ciphertext, key []byte) ([]byte, error) {
	return cfb8(key, ciphertext, true)
}

// cfb8 runs 8-bit cipher feedback over in. The shift register starts at the
// zero IV and takes one ciphertext byte per step.
func cfb8(key, in []byte, decrypt bool) ([]byte, error) {
	if len(key) != constants.SymmetricKeySize {
		return nil, qerrors.NewCryptoError("cfb8", qerrors.ErrInvalidKeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, qerrors.NewCryptoError("cfb8", err)
	}
	return cfb8Stream(block, in, decrypt), nil
}

func cfb8Stream(block cipher.Block, in []byte, decrypt bool) []byte {
	var register, keystream [constants.BlockSize]byte
	out := make([]byte, len(in))

	for i, b := range in {
		block.Encrypt(keystream[:], register[:])
		out[i] = b ^ keystream[0]

		feedback := out[i]
		if decrypt {
			feedback = b
		}
		copy(register[:], register[1:])
		register[constants.BlockSize-1] = feedback
	}

	Zeroize(keystream[:])
	return out
}
