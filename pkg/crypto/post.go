// post.go implements Power-On Self-Tests (POST).
//
// IMPORTANT: POST is production code, not test code. FIPS 140-3 requires self-tests
// to run at module load time (not just during development testing) to verify the
// cryptographic implementation before any operations are performed. This catches
// issues like corrupted binaries, hardware failures, or tampered code.
//
// POST runs automatically when the crypto package is loaded and verifies that
// the primitives produce expected outputs using Known Answer Tests (KAT).
//
// The tests verify:
//   - SHA3-512 (challenge digest)
//   - SHAKE-256 (seed expansion)
//   - AES-256-CFB8 (reference cipher mode)
//
// In FIPS mode, POST failures cause a panic to prevent use of potentially
// compromised cryptographic implementations. In standard mode, failures are
// reported but do not prevent operation.
package crypto

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/cloudflare/circl/xof"
)

// POST KAT (Known Answer Test) values
// These are pre-computed expected outputs for known inputs
var (
	// Input: "SETLA-POST-KAT"
	postKATInput, _ = hex.DecodeString("5345544c412d504f53542d4b4154")

	// SHA3-512(input)
	postKATSHA3Expected, _ = hex.DecodeString(
		"e683dda57f2b53b4a9c3a8c1586ec66b037310eadf0a240a069578056ec3c668" +
			"5a3ab771602cf4375fb8605cd36628f3fafa0c7710dd9bdf809d62593eb65cdc")

	// SHAKE-256(input), first 32 bytes
	postKATSHAKEExpected, _ = hex.DecodeString("be4a67fad6756cea514a1b23adabcd8be0cd61060595dfa7de8fe8e85b0589c1")

	// AES-256-CFB8
	// Key: 0x0123456789abcdef... (32 bytes)
	// IV: all zero
	// Plaintext: input
	postKATAESKey, _      = hex.DecodeString("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")
	postKATAESExpected, _ = hex.DecodeString("230126163ff83aa39308f7be43a3")
)

// POSTResult contains the results of Power-On Self-Tests
type POSTResult struct {
	Passed      bool
	SHA3Passed  bool
	SHAKEPassed bool
	AESPassed   bool
	Errors      []string
}

// postResult stores the cached POST result
var (
	postResult     *POSTResult
	postResultOnce sync.Once
	postRan        bool
)

// RunPOST executes the Power-On Self-Tests and returns the results.
// This function is safe to call multiple times; tests only run once.
func RunPOST() *POSTResult {
	postResultOnce.Do(func() {
		postResult = &POSTResult{
			Passed: true,
		}

		if err := runSHA3KAT(); err != nil {
			postResult.Passed = false
			postResult.Errors = append(postResult.Errors, fmt.Sprintf("SHA3-512 KAT failed: %v", err))
		} else {
			postResult.SHA3Passed = true
		}

		if err := runSHAKEKAT(); err != nil {
			postResult.Passed = false
			postResult.Errors = append(postResult.Errors, fmt.Sprintf("SHAKE-256 KAT failed: %v", err))
		} else {
			postResult.SHAKEPassed = true
		}

		if err := runAESCFBKAT(); err != nil {
			postResult.Passed = false
			postResult.Errors = append(postResult.Errors, fmt.Sprintf("AES-CFB KAT failed: %v", err))
		} else {
			postResult.AESPassed = true
		}

		postRan = true

		// In FIPS mode, POST failures are fatal
		if FIPSMode() && !postResult.Passed {
			panic(fmt.Sprintf("FIPS POST failed: %v", postResult.Errors))
		}
	})

	return postResult
}

// POSTRan returns true if POST has been executed
func POSTRan() bool {
	return postRan
}

// POSTPassed returns true if POST has run and all tests passed
func POSTPassed() bool {
	if postResult == nil {
		return false
	}
	return postResult.Passed
}

func runSHA3KAT() error {
	digest := Digest512(postKATInput)
	if !bytes.Equal(digest[:], postKATSHA3Expected) {
		return fmt.Errorf("digest mismatch: got %x, want %x", digest, postKATSHA3Expected)
	}
	return nil
}

func runSHAKEKAT() error {
	x := xof.SHAKE256.New()
	if _, err := x.Write(postKATInput); err != nil {
		return fmt.Errorf("absorb failed: %w", err)
	}

	output := make([]byte, len(postKATSHAKEExpected))
	if _, err := x.Read(output); err != nil {
		return fmt.Errorf("squeeze failed: %w", err)
	}

	if !bytes.Equal(output, postKATSHAKEExpected) {
		return fmt.Errorf("output mismatch: got %x, want %x", output, postKATSHAKEExpected)
	}
	return nil
}

func runAESCFBKAT() error {
	ciphertext, err := cfb8(postKATAESKey, postKATInput, false)
	if err != nil {
		return fmt.Errorf("encrypt failed: %w", err)
	}
	if !bytes.Equal(ciphertext, postKATAESExpected) {
		return fmt.Errorf("encrypt mismatch: got %x, want %x", ciphertext, postKATAESExpected)
	}

	plaintext, err := cfb8(postKATAESKey, ciphertext, true)
	if err != nil {
		return fmt.Errorf("decrypt failed: %w", err)
	}
	if !bytes.Equal(plaintext, postKATInput) {
		return fmt.Errorf("decrypt mismatch: got %x, want %x", plaintext, postKATInput)
	}

	return nil
}

// init runs POST automatically when the package is loaded
func init() {
	RunPOST()
}
