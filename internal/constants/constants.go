// Package constants defines security parameters and protocol constants for the
// SETLA signcryption scheme.
//
// The lattice parameters follow the reference SETLA parameter table and must match
// bit-for-bit between parties for signcryptions to verify.
package constants

// Protocol version and identification
const (
	// ProtocolVersion is the current version of the SETLA encoding
	ProtocolVersion uint16 = 0x0001

	// ProtocolName is used for domain separation in hashing and seed expansion
	ProtocolName = "SETLA-v1"
)

// Ring parameters for R_q = Z_q[x]/(x^n + 1)
const (
	// RingDegree is n, the number of coefficients of every ring element
	RingDegree = 1024

	// Modulus is q = 2^25 - 2^12 + 1. It is prime and q ≡ 1 (mod 2n),
	// which makes the negacyclic NTT available.
	Modulus uint64 = 33550337

	// ModulusBits is the bit length of q
	ModulusBits = 25

	// CoefficientSize is the encoded size of a single coefficient in bytes
	CoefficientSize = 4

	// ElementSize is the encoded size of a ring element in bytes
	ElementSize = RingDegree * CoefficientSize
)

// Signature parameters
const (
	// ChallengeWeight is omega, the sum of absolute values of the challenge coefficients
	ChallengeWeight = 16

	// RoundingBits is d, the number of low-order bits dropped by compression
	RoundingBits = 15

	// SamplingBound is B = 2^15, the bound for masking and blinding polynomials
	SamplingBound = 32768

	// SecretBound is the bound for secret and error polynomials
	SecretBound = 1
)

// Symmetric key parameters
const (
	// SymmetricKeyBits is the bit length of the ephemeral key carried by the KEM
	SymmetricKeyBits = 256

	// SymmetricKeySize is the ephemeral key size in bytes
	SymmetricKeySize = SymmetricKeyBits / 8

	// BlockSize is the AES block size used by the reference CFB mode
	BlockSize = 16

	// NonceSize is the nonce size of the hardened AEAD modes
	NonceSize = 12

	// TagSize is the authentication tag size of the hardened AEAD modes
	TagSize = 16
)

// Hashing parameters
const (
	// ChallengeDigestSize is the size of the challenge digest (SHA3-512) in bytes
	ChallengeDigestSize = 64

	// SeedSize is the recommended size of a public parameter seed in bytes
	SeedSize = 32

	// DomainSeparatorChallenge is bound into every challenge transcript
	DomainSeparatorChallenge = "SETLA-v1-Challenge"

	// DomainSeparatorParameters is used when expanding a seed into a1 and a2
	DomainSeparatorParameters = "SETLA-v1-PublicParameters"
)

// Protocol limits
const (
	// DefaultMaxAttempts caps the Signcrypt rejection loop. The expected number of
	// attempts is about two, so reaching the cap means the parameters are broken.
	DefaultMaxAttempts = 1024

	// MaxMessageSize is the largest plaintext accepted by Signcrypt
	MaxMessageSize = 1 << 30
)

// CipherMode identifies the symmetric layer used for the payload.
type CipherMode uint16

const (
	// CipherModeReferenceCFB is AES-256-CFB8 with an all-zero IV, as in the
	// reference implementation. Kept for interoperability testing.
	CipherModeReferenceCFB CipherMode = 0x0001

	// CipherModeAES256GCM is AES-256-GCM with a fresh random nonce per message
	CipherModeAES256GCM CipherMode = 0x0002

	// CipherModeChaCha20Poly1305 is ChaCha20-Poly1305 with a fresh random nonce per message
	CipherModeChaCha20Poly1305 CipherMode = 0x0003
)

// String returns the configuration name of the cipher mode
func (cm CipherMode) String() string {
	switch cm {
	case CipherModeReferenceCFB:
		return "reference-cfb"
	case CipherModeAES256GCM:
		return "aes-256-gcm"
	case CipherModeChaCha20Poly1305:
		return "chacha20-poly1305"
	default:
		return "unknown"
	}
}

// ParseCipherMode maps a configuration name back to a CipherMode.
// It returns false for unknown names.
func ParseCipherMode(s string) (CipherMode, bool) {
	switch s {
	case "reference-cfb", "":
		return CipherModeReferenceCFB, true
	case "aes-256-gcm":
		return CipherModeAES256GCM, true
	case "chacha20-poly1305":
		return CipherModeChaCha20Poly1305, true
	default:
		return 0, false
	}
}

// IsSupported returns true if the cipher mode is known
func (cm CipherMode) IsSupported() bool {
	return cm == CipherModeReferenceCFB || cm == CipherModeAES256GCM || cm == CipherModeChaCha20Poly1305
}

// IsHardened returns true if the mode uses a fresh nonce and authenticates the ciphertext
func (cm CipherMode) IsHardened() bool {
	return cm == CipherModeAES256GCM || cm == CipherModeChaCha20Poly1305
}

// IsFIPSApproved returns true if the underlying primitive is FIPS 140-3 approved.
// ChaCha20-Poly1305 is not.
func (cm CipherMode) IsFIPSApproved() bool {
	return cm == CipherModeReferenceCFB || cm == CipherModeAES256GCM
}
