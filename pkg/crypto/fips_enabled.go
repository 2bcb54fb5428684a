//go:build fips
// +build fips

package crypto

// FIPSMode reports whether the binary was built in FIPS mode.
// When true, only FIPS 140-3 approved cipher modes (AES-256-CFB, AES-256-GCM)
// are available and self-test failures panic.
func FIPSMode() bool { return true }
