// Package crypto provides cryptographic primitives for the SETLA signcryption library.
// This package wraps the standard library and golang.org/x/crypto with additional
// safety checks and consistent error handling.
//
// Security Note: All random number generation uses crypto/rand which provides
// cryptographically secure random bytes from the operating system's CSPRNG.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
)

// Reader is an io.Reader that returns cryptographically secure random bytes.
// It is safe for concurrent use.
var Reader io.Reader = rand.Reader

// SecureRandom reads cryptographically secure random bytes into the provided slice.
//
// This function will only return an error if the system's random number generator
// fails, which should be treated as a critical system failure.
func SecureRandom(b []byte) error {
	return ReadRandom(Reader, b)
}

// ReadRandom fills b from rng, wrapping failures with operation context.
func ReadRandom(rng io.Reader, b []byte) error {
	if _, err := io.ReadFull(rng, b); err != nil {
		return qerrors.NewCryptoError("SecureRandom", err)
	}
	return nil
}

// SecureRandomBytes returns n cryptographically secure random bytes.
// Returns an error if the system's CSPRNG fails.
func SecureRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if err := SecureRandom(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ConstantTimeCompare compares two byte slices in constant time.
// Returns true if the slices are equal, false otherwise.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize securely erases sensitive data from memory by overwriting with zeros.
//
// Note: The Go runtime may have already copied the data, and the compiler may
// optimize away the zeroing. For maximum security, consider using memory
// protections at the OS level in production deployments.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeMultiple securely erases multiple byte slices.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}
