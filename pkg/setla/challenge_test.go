package setla_test

import (
	"errors"
	"testing"

	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/ring"
	"github.com/sara-star-quant/setla/pkg/setla"
)

type challengeInputs struct {
	w1, w2   ring.Element
	message  []byte
	key      []byte
	sender   *setla.PublicKey
	receiver *setla.PublicKey
}

func newChallengeInputs(t testing.TB) (*setla.PublicParameters, challengeInputs) {
	t.Helper()
	s := newTestScheme(t, 30)
	pp := s.Params()
	r := pp.Ring()
	d := pp.Set().D

	rng := seededReader(31)
	w1, err := r.SampleUniform(rng)
	if err != nil {
		t.Fatal(err)
	}
	w2, err := r.SampleUniform(rng)
	if err != nil {
		t.Fatal(err)
	}

	key := make([]byte, pp.Set().KeySize())
	for i := range key {
		key[i] = byte(i)
	}

	return pp, challengeInputs{
		w1:       r.Compress(w1, d),
		w2:       r.Compress(w2, d),
		message:  []byte("challenge message"),
		key:      key,
		sender:   mustKeyPair(t, s).Public,
		receiver: mustKeyPair(t, s).Public,
	}
}

func (in challengeInputs) hash(t testing.TB, pp *setla.PublicParameters) ring.Element {
	t.Helper()
	c, err := setla.ChallengeHash(pp, in.w1, in.w2, in.message, in.key, in.sender, in.receiver)
	if err != nil {
		t.Fatalf("ChallengeHash failed: %v", err)
	}
	return c
}

func TestChallengeHashDeterministic(t *testing.T) {
	pp, in := newChallengeInputs(t)
	a := in.hash(t, pp)
	b := in.hash(t, pp)
	if !a.Equal(b) {
		t.Error("ChallengeHash is not deterministic")
	}
}

func TestChallengeHashWeight(t *testing.T) {
	pp, in := newChallengeInputs(t)
	omega := pp.Set().Omega

	for i := range 200 {
		in.key[0] = byte(i)
		in.key[1] = byte(i >> 8)
		c := in.hash(t, pp)

		if c.L1Norm() != int64(omega) {
			t.Fatalf("iteration %d: L1 norm = %d, want %d", i, c.L1Norm(), omega)
		}
		if !c.IsTernary() {
			t.Fatalf("iteration %d: challenge is not ternary", i)
		}

		nonzero := 0
		for j := range c.Len() {
			if c.Coeff(j) != 0 {
				nonzero++
			}
		}
		if nonzero != omega {
			t.Fatalf("iteration %d: %d nonzero coefficients, want %d", i, nonzero, omega)
		}
	}
}

func TestChallengeHashBindsEveryInput(t *testing.T) {
	pp, base := newChallengeInputs(t)
	r := pp.Ring()
	want := base.hash(t, pp)

	mutations := map[string]func(in *challengeInputs){
		"W1": func(in *challengeInputs) {
			coeffs := in.w1.Coeffs()
			coeffs[0] ^= 1
			in.w1, _ = r.ElementFromCanonical(coeffs)
		},
		"W2": func(in *challengeInputs) {
			coeffs := in.w2.Coeffs()
			coeffs[5] ^= 1
			in.w2, _ = r.ElementFromCanonical(coeffs)
		},
		"Message": func(in *challengeInputs) {
			in.message = []byte("challenge messagf")
		},
		"Key": func(in *challengeInputs) {
			key := append([]byte(nil), in.key...)
			key[31] ^= 0x01
			in.key = key
		},
		"SwappedKeys": func(in *challengeInputs) {
			in.sender, in.receiver = in.receiver, in.sender
		},
		"SwappedCommitments": func(in *challengeInputs) {
			in.w1, in.w2 = in.w2, in.w1
		},
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			if in.hash(t, pp).Equal(want) {
				t.Errorf("challenge unchanged after mutating %s", name)
			}
		})
	}
}

func TestChallengeHashNilAndEmptyMessageDiffer(t *testing.T) {
	pp, in := newChallengeInputs(t)

	in.message = nil
	withNil := in.hash(t, pp)
	in.message = []byte{}
	withEmpty := in.hash(t, pp)

	if withNil.Equal(withEmpty) {
		t.Error("nil and empty messages hash identically")
	}
}

func TestChallengeHashExhausted(t *testing.T) {
	_, in := newChallengeInputs(t)

	// A 512-bit digest yields about 323 ternary digits, far short of 1024
	// nonzero ones.
	set := setla.DefaultParameterSet()
	set.Omega = set.N
	heavy, err := setla.DerivePublicParameters(set, testSeed)
	if err != nil {
		t.Fatalf("DerivePublicParameters failed: %v", err)
	}

	_, err = setla.ChallengeHash(heavy, in.w1, in.w2, in.message, in.key, in.sender, in.receiver)
	if !errors.Is(err, qerrors.ErrChallengeExhausted) {
		t.Errorf("error = %v, want ErrChallengeExhausted", err)
	}
}

func BenchmarkChallengeHash(b *testing.B) {
	pp, in := newChallengeInputs(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = setla.ChallengeHash(pp, in.w1, in.w2, in.message, in.key, in.sender, in.receiver)
	}
}
