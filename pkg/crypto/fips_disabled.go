//go:build !fips
// +build !fips

package crypto

// FIPSMode reports whether the binary was built in FIPS mode.
// When false, all supported cipher modes are available.
func FIPSMode() bool { return false }
