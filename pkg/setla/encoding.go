package setla

import (
	"github.com/fxamacker/cbor/v2"
)

var (
	// Reusable canonical encoder, safe for concurrent use. Canonical form
	// makes transcripts and serialized objects byte-for-byte reproducible.
	ccbor cbor.EncMode

	// Strict decoder: definite lengths only and no trailing data.
	dcbor cbor.DecMode
)

// Serialization format version carried by every encoded object.
const encodingVersion = 1

func init() {
	var err error
	ccbor, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	dcbor, err = cbor.DecOptions{
		IndefLength: cbor.IndefLengthForbidden,
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}
