package ring_test

import (
	"bytes"
	"testing"

	"github.com/sara-star-quant/setla/internal/constants"
)

// FuzzParseElement fuzzes the element decoder. Accepted input must
// round-trip exactly and hold only canonical residues.
func FuzzParseElement(f *testing.F) {
	r := newTestRing(f)
	e, err := r.SampleUniform(seededReader(1))
	if err != nil {
		f.Fatal(err)
	}
	f.Add(e.Bytes())

	// Edge cases
	f.Add([]byte{})
	f.Add(make([]byte, constants.ElementSize-1))
	f.Add(make([]byte, constants.ElementSize))
	f.Add(bytes.Repeat([]byte{0xff}, constants.ElementSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		e, err := r.ParseElement(data)
		if err != nil {
			return
		}
		if !bytes.Equal(e.Bytes(), data) {
			t.Error("re-serialized element differs")
		}
		if err := r.Validate(e); err != nil {
			t.Errorf("parsed element fails validation: %v", err)
		}
	})
}
