// Package errors defines custom error types for the SETLA signcryption library.
// These errors provide detailed information for debugging while maintaining
// security by not leaking sensitive information in error messages.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for ring arithmetic and parameters
var (
	// ErrInvalidRingElement indicates a ring element has the wrong length or belongs to another ring
	ErrInvalidRingElement = errors.New("ring: invalid element")

	// ErrCoefficientOutOfRange indicates a coefficient is not a canonical residue
	ErrCoefficientOutOfRange = errors.New("ring: coefficient out of range")

	// ErrInvalidBound indicates a sampling bound is negative or too large
	ErrInvalidBound = errors.New("ring: invalid sampling bound")

	// ErrInvalidParameters indicates a parameter set is inconsistent
	ErrInvalidParameters = errors.New("setla: invalid parameters")
)

// Sentinel errors for key handling
var (
	// ErrInvalidKeySize indicates that a key has an incorrect size
	ErrInvalidKeySize = errors.New("setla: invalid key size")

	// ErrInvalidPublicKey indicates that a public key is invalid
	ErrInvalidPublicKey = errors.New("setla: invalid public key")

	// ErrInvalidPrivateKey indicates that a private key is invalid
	ErrInvalidPrivateKey = errors.New("setla: invalid private key")

	// ErrKeyGenerationFailed indicates that key generation failed
	ErrKeyGenerationFailed = errors.New("setla: key generation failed")
)

// Sentinel errors for signcryption
var (
	// ErrInvalidSigncryption indicates a signcryption bundle is malformed
	ErrInvalidSigncryption = errors.New("setla: invalid signcryption")

	// ErrUnsigncryptionFailed is returned for every rejected signcryption.
	// It deliberately carries no cause.
	ErrUnsigncryptionFailed = errors.New("setla: unsigncryption failed")

	// ErrAttemptsExhausted indicates the rejection loop hit its attempt cap
	ErrAttemptsExhausted = errors.New("setla: rejection sampling attempts exhausted")

	// ErrChallengeExhausted indicates the challenge digest ran out of ternary digits
	ErrChallengeExhausted = errors.New("setla: challenge digest exhausted")

	// ErrMessageTooLarge indicates the plaintext exceeds the maximum size
	ErrMessageTooLarge = errors.New("setla: message too large")
)

// Sentinel errors for the symmetric layer
var (
	// ErrAuthenticationFailed indicates AEAD authentication/decryption failed
	ErrAuthenticationFailed = errors.New("cipher: authentication failed")

	// ErrCiphertextTooShort indicates ciphertext is too short to be valid
	ErrCiphertextTooShort = errors.New("cipher: ciphertext too short")

	// ErrUnsupportedCipherMode indicates an unknown or disallowed cipher mode
	ErrUnsupportedCipherMode = errors.New("cipher: unsupported cipher mode")
)

// Sentinel errors for configuration and self tests
var (
	// ErrInvalidConfig indicates a configuration value is invalid
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrSelfTestFailed indicates a power-on or conditional self test failed
	ErrSelfTestFailed = errors.New("selftest: self test failed")
)

// CryptoError wraps a cryptographic error with additional context
type CryptoError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewCryptoError creates a new CryptoError
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// ProtocolError wraps a protocol error with additional context
type ProtocolError struct {
	Phase string // Protocol phase (e.g., "signcrypt", "keygen")
	Err   error  // Underlying error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol %s: %v", e.Phase, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(phase string, err error) *ProtocolError {
	return &ProtocolError{Phase: phase, Err: err}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
