// Package setla provides SETLA, a lattice-based signcryption key
// encapsulation scheme over the ring Z_q[x]/(x^1024+1).
//
// A sender signcrypts a message to a receiver in one step: the message is
// encrypted under a fresh 256-bit key, the key is lattice-encrypted to the
// receiver, and the bundle carries a Fiat-Shamir proof that binds the key,
// the message and both parties' public keys. The receiver recovers the
// message only if the proof verifies against the claimed sender.
//
// # Quick Start
//
//	import "github.com/sara-star-quant/setla/pkg/setla"
//
//	params, _ := setla.DerivePublicParameters(setla.DefaultParameterSet(), seed)
//	scheme, _ := setla.New(params)
//
//	alice, _ := scheme.GenerateKeyPair()
//	bob, _ := scheme.GenerateKeyPair()
//
//	sc, _ := scheme.Signcrypt(ctx, bob.Public, alice, []byte("Hello!"))
//	msg, err := scheme.Unsigncrypt(ctx, bob, alice.Public, sc)
//
// Every verification failure returns errors.ErrUnsigncryptionFailed without
// saying which check rejected the bundle.
//
// # Package Structure
//
//   - pkg/setla: key generation, signcryption, unsigncryption, encoding and configuration
//   - pkg/ring: polynomial ring arithmetic and sampling
//   - pkg/crypto: hashing, seed expansion, symmetric ciphers and self tests
//   - pkg/metrics: logging, tracing, Prometheus metrics and health checks
//   - pkg/version: library version
//   - internal/constants: scheme parameters and cipher modes
//   - internal/errors: sentinel errors and typed error wrappers
//
// # Cipher Modes
//
// The default mode is AES-256-CFB8 with a zero IV, which is safe only because
// each key encrypts exactly one message. AES-256-GCM and ChaCha20-Poly1305 add
// ciphertext integrity at the cost of 28 bytes per message. FIPS builds
// (-tags fips) reject ChaCha20-Poly1305.
//
// # Testing
//
//	go test ./...                                         # All tests
//	go test -short ./...                                  # Fewer protocol trials
//	go test -fuzz=FuzzUnsigncrypt ./pkg/setla             # Fuzz tests
//	go test -run TestKAT ./pkg/crypto                     # Known Answer Tests
//	go test -bench=. ./pkg/setla ./pkg/ring               # Benchmarks
//	go test -tags otel ./pkg/metrics                      # OpenTelemetry bridge
//
// # References
//
//   - NIST FIPS 202: SHA-3 Standard (SHA3-512, SHAKE-256)
//   - NIST SP 800-38A: Recommendation for Block Cipher Modes (CFB8)
//   - NIST SP 800-38D: Galois/Counter Mode
//   - RFC 8439: ChaCha20 and Poly1305
package setla
