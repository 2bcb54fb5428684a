// cst.go implements Conditional Self-Tests (CST).
//
// Conditional Self-Tests differ from Power-On Self-Tests (POST) in that they run
// during specific cryptographic operations rather than at module initialization.
//
//  1. Pairwise Consistency Test: verifies that a newly generated key pair is
//     consistent. The test body is supplied by the caller since it needs the
//     full signcryption scheme.
//
//  2. RNG Health Check: verifies that the random source produces non-repeating,
//     non-constant output.
//
// In FIPS mode, CST failures cause a panic to prevent use of potentially
// compromised keys or random data. In standard mode, failures return errors.
package crypto

import (
	"bytes"
	"fmt"
	"io"
)

// CSTResult contains the results of a Conditional Self-Test
type CSTResult struct {
	Passed bool
	Error  error
}

// RunPairwiseTest runs a pairwise consistency test and handles failures
// according to FIPS mode.
func RunPairwiseTest(name string, test func() error) error {
	if err := test(); err != nil {
		if FIPSMode() {
			panic(fmt.Sprintf("FIPS CST failed: %s pairwise consistency test: %v", name, err))
		}
		return fmt.Errorf("pairwise consistency test failed: %w", err)
	}
	return nil
}

// RNGHealthCheck performs a health check on rng. A nil rng checks Reader.
// It verifies that:
// 1. The RNG produces non-zero output
// 2. The RNG produces non-repeating output
// 3. The RNG produces output with some variation
func RNGHealthCheck(rng io.Reader) *CSTResult {
	if rng == nil {
		rng = Reader
	}

	sample1 := make([]byte, 32)
	sample2 := make([]byte, 32)

	if err := ReadRandom(rng, sample1); err != nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG read 1 failed: %w", err)}
	}
	if err := ReadRandom(rng, sample2); err != nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG read 2 failed: %w", err)}
	}

	for i, s := range [][]byte{sample1, sample2} {
		if isConstant(s) {
			return &CSTResult{Passed: false, Error: fmt.Errorf("RNG sample %d has no variation", i+1)}
		}
	}

	if bytes.Equal(sample1, sample2) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG produced identical consecutive samples")}
	}

	return &CSTResult{Passed: true}
}

// isConstant also covers the all-zero sample.
func isConstant(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if b[i] != b[0] {
			return false
		}
	}
	return true
}
