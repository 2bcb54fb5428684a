// Package version reports the library and protocol versions.
package version

import (
	"fmt"

	"github.com/sara-star-quant/setla/internal/constants"
)

// Library release.
const (
	Major = 0
	Minor = 1
	Patch = 0
	// Label is the optional pre-release label.
	Label = ""
)

// Protocol names the signcryption format. It changes only when bundles
// produced by one release can no longer be opened by another, and prefixes
// every domain separator.
const Protocol = "SETLA-v1"

// String returns the release as "vMAJOR.MINOR.PATCH[-LABEL]".
func String() string {
	v := fmt.Sprintf("v%d.%d.%d", Major, Minor, Patch)
	if Label != "" {
		v += "-" + Label
	}
	return v
}

// Full returns the release together with the protocol and ring parameters,
// for example "SETLA-Go v0.1.0 (SETLA-v1, n=1024, q=33550337)".
func Full() string {
	return fmt.Sprintf("SETLA-Go %s (%s, n=%d, q=%d)",
		String(), Protocol, constants.RingDegree, constants.Modulus)
}
