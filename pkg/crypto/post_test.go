package crypto_test

import (
	"testing"

	"github.com/sara-star-quant/setla/pkg/crypto"
)

// TestPOSTRan verifies that POST runs automatically on package load
func TestPOSTRan(t *testing.T) {
	if !crypto.POSTRan() {
		t.Error("POST should have run on package initialization")
	}
}

// TestPOSTPassed verifies that all POST tests passed
func TestPOSTPassed(t *testing.T) {
	if !crypto.POSTPassed() {
		t.Error("POST should have passed")
	}
}

// TestRunPOST verifies the POST result structure
func TestRunPOST(t *testing.T) {
	result := crypto.RunPOST()

	if result == nil {
		t.Fatal("RunPOST() returned nil")
	}

	if !result.Passed {
		t.Errorf("POST failed with errors: %v", result.Errors)
	}

	if !result.SHA3Passed {
		t.Error("SHA3-512 KAT should have passed")
	}

	if !result.SHAKEPassed {
		t.Error("SHAKE-256 KAT should have passed")
	}

	if !result.AESPassed {
		t.Error("AES-CFB KAT should have passed")
	}

	if len(result.Errors) > 0 {
		t.Errorf("POST reported errors: %v", result.Errors)
	}
}

// TestRunPOSTIdempotent verifies that POST only runs once
func TestRunPOSTIdempotent(t *testing.T) {
	result1 := crypto.RunPOST()
	result2 := crypto.RunPOST()

	if result1 != result2 {
		t.Error("RunPOST() should return the same result on subsequent calls")
	}
}
