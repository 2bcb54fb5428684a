package setla_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/setla"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pp := testParams(t)
	rng := seededReader(40)
	keySize := pp.Set().KeySize()

	keys := [][]byte{
		make([]byte, keySize),
		bytes.Repeat([]byte{0xff}, keySize),
		bytes.Repeat([]byte{0xa5}, keySize),
	}
	for range 100 {
		k := make([]byte, keySize)
		if _, err := io.ReadFull(rng, k); err != nil {
			t.Fatal(err)
		}
		keys = append(keys, k)
	}

	for _, k := range keys {
		e, err := setla.EncodeKey(pp, k)
		if err != nil {
			t.Fatalf("EncodeKey failed: %v", err)
		}
		if got := setla.DecodeKey(pp, e); !bytes.Equal(got, k) {
			t.Fatalf("DecodeKey(EncodeKey(%x)) = %x", k, got)
		}
	}
}

func TestEncodeKeyLayout(t *testing.T) {
	pp := testParams(t)
	set := pp.Set()
	half := (set.Q - 1) / 2

	k := make([]byte, set.KeySize())
	k[0] = 0x80 // bit 0
	k[1] = 0x01 // bit 15

	e, err := setla.EncodeKey(pp, k)
	if err != nil {
		t.Fatal(err)
	}
	for i := range e.Len() {
		want := uint64(0)
		if i == 0 || i == 15 {
			want = half
		}
		if e.Coeff(i) != want {
			t.Errorf("coefficient %d = %d, want %d", i, e.Coeff(i), want)
		}
	}
}

func TestEncodeKeyRejectsWrongSize(t *testing.T) {
	pp := testParams(t)
	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := setla.EncodeKey(pp, make([]byte, n)); !errors.Is(err, qerrors.ErrInvalidKeySize) {
			t.Errorf("EncodeKey(%d bytes) error = %v, want ErrInvalidKeySize", n, err)
		}
	}
}

func TestDecodeKeyMargin(t *testing.T) {
	pp := testParams(t)
	r := pp.Ring()
	q := pp.Set().Q
	quarter := (q + 3) / 4

	tests := []struct {
		name  string
		coeff uint64
		bit   bool
	}{
		{"Zero", 0, false},
		{"LowerEdgeBelow", quarter - 1, false},
		{"LowerEdge", quarter, true},
		{"Half", (q - 1) / 2, true},
		{"UpperEdge", q - quarter - 1, true},
		{"UpperEdgeAbove", q - quarter, false},
		{"MinusOne", q - 1, false},
	}

	if quarter-1 != 8387584 || q-quarter != 25162752 {
		t.Fatalf("unexpected margins %d, %d", quarter-1, q-quarter)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coeffs := make([]uint64, r.N())
			coeffs[0] = tt.coeff
			e, err := r.ElementFromCanonical(coeffs)
			if err != nil {
				t.Fatal(err)
			}
			got := setla.DecodeKey(pp, e)[0]&0x80 != 0
			if got != tt.bit {
				t.Errorf("DecodeKey bit for %d = %v, want %v", tt.coeff, got, tt.bit)
			}
		})
	}
}

func TestDecodeKeyNoiseTolerance(t *testing.T) {
	pp := testParams(t)
	r := pp.Ring()
	q := pp.Set().Q
	tolerable := int64(q/4) - 1

	k := bytes.Repeat([]byte{0x5a}, pp.Set().KeySize())
	e, err := setla.EncodeKey(pp, k)
	if err != nil {
		t.Fatal(err)
	}

	for _, mag := range []int64{1, 1000, tolerable} {
		for _, sign := range []int64{1, -1} {
			noise := make([]int64, r.N())
			for i := range noise {
				noise[i] = sign * mag
			}
			ne, err := r.NewElement(noise)
			if err != nil {
				t.Fatal(err)
			}
			if got := setla.DecodeKey(pp, r.Add(e, ne)); !bytes.Equal(got, k) {
				t.Errorf("noise %d flipped bits: %x", sign*mag, got)
			}
		}
	}

	// Pushing every coefficient across the margin flips every bit.
	over := make([]int64, r.N())
	for i := range over {
		over[i] = int64(q/2) + 1
	}
	ne, err := r.NewElement(over)
	if err != nil {
		t.Fatal(err)
	}
	got := setla.DecodeKey(pp, r.Add(e, ne))
	for i := range got {
		if got[i] != ^k[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], ^k[i])
		}
	}
}
