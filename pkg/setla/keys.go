package setla

import (
	"io"

	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/ring"
)

// PrivateKey holds the ternary secret s and the ternary errors e1, e2.
type PrivateKey struct {
	s  ring.Element
	e1 ring.Element
	e2 ring.Element
}

// PublicKey holds t1 = a1·s + e1 and t2 = a2·s + e2.
type PublicKey struct {
	t1 ring.Element
	t2 ring.Element
}

// KeyPair is a private key with its matching public key.
type KeyPair struct {
	Private *PrivateKey
	Public  *PublicKey
}

// S returns the secret polynomial.
func (sk *PrivateKey) S() ring.Element { return sk.s }

// E1 returns the first error polynomial.
func (sk *PrivateKey) E1() ring.Element { return sk.e1 }

// E2 returns the second error polynomial.
func (sk *PrivateKey) E2() ring.Element { return sk.e2 }

// T1 returns a1·s + e1.
func (pk *PublicKey) T1() ring.Element { return pk.t1 }

// T2 returns a2·s + e2.
func (pk *PublicKey) T2() ring.Element { return pk.t2 }

// Equal reports whether two public keys are identical.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.t1.Equal(other.t1) && pk.t2.Equal(other.t2)
}

// Zeroize overwrites the private key material. The key pair must not be used
// afterwards.
func (kp *KeyPair) Zeroize() {
	if kp == nil || kp.Private == nil {
		return
	}
	kp.Private.s.Zeroize()
	kp.Private.e1.Zeroize()
	kp.Private.e2.Zeroize()
}

// NewKeyPair derives the key pair for explicit secret polynomials given as
// signed coefficients in [-1, 1].
func NewKeyPair(pp *PublicParameters, s, e1, e2 []int64) (*KeyPair, error) {
	r := pp.ring
	var sk PrivateKey
	var err error
	if sk.s, err = r.NewElement(s); err != nil {
		return nil, qerrors.NewCryptoError("NewKeyPair", qerrors.ErrInvalidPrivateKey)
	}
	if sk.e1, err = r.NewElement(e1); err != nil {
		return nil, qerrors.NewCryptoError("NewKeyPair", qerrors.ErrInvalidPrivateKey)
	}
	if sk.e2, err = r.NewElement(e2); err != nil {
		return nil, qerrors.NewCryptoError("NewKeyPair", qerrors.ErrInvalidPrivateKey)
	}
	return completeKeyPair(pp, &sk)
}

// generateKeyPair samples s, e1, e2 with coefficients in [-1, 1].
func generateKeyPair(pp *PublicParameters, rng io.Reader) (*KeyPair, error) {
	r := pp.ring
	var sk PrivateKey
	var err error
	for _, e := range []*ring.Element{&sk.s, &sk.e1, &sk.e2} {
		if *e, err = r.SampleBounded(rng, constants.SecretBound); err != nil {
			return nil, qerrors.NewCryptoError("GenerateKeyPair", err)
		}
	}
	return completeKeyPair(pp, &sk)
}

// completeKeyPair checks the secret bounds and computes the public key.
func completeKeyPair(pp *PublicParameters, sk *PrivateKey) (*KeyPair, error) {
	if !sk.s.IsTernary() || !sk.e1.IsTernary() || !sk.e2.IsTernary() {
		return nil, qerrors.NewCryptoError("KeyPair", qerrors.ErrInvalidPrivateKey)
	}
	r := pp.ring
	pk := &PublicKey{
		t1: r.Add(r.Mul(pp.a1, sk.s), sk.e1),
		t2: r.Add(r.Mul(pp.a2, sk.s), sk.e2),
	}
	return &KeyPair{Private: sk, Public: pk}, nil
}

func validatePublicKey(pp *PublicParameters, pk *PublicKey) error {
	if pk == nil {
		return qerrors.ErrInvalidPublicKey
	}
	if pp.ring.Validate(pk.t1) != nil || pp.ring.Validate(pk.t2) != nil {
		return qerrors.ErrInvalidPublicKey
	}
	return nil
}

func validateKeyPair(pp *PublicParameters, kp *KeyPair) error {
	if kp == nil || kp.Private == nil {
		return qerrors.ErrInvalidPrivateKey
	}
	sk := kp.Private
	if pp.ring.Validate(sk.s) != nil || pp.ring.Validate(sk.e1) != nil || pp.ring.Validate(sk.e2) != nil {
		return qerrors.ErrInvalidPrivateKey
	}
	return validatePublicKey(pp, kp.Public)
}

type publicKeyWire struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	T1      []byte
	T2      []byte
}

type privateKeyWire struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	S       []byte
	E1      []byte
	E2      []byte
}

// Bytes serializes the public key as canonical CBOR. The encoding is also the
// form bound into challenge transcripts.
func (pk *PublicKey) Bytes() []byte {
	blob, err := ccbor.Marshal(&publicKeyWire{
		Version: encodingVersion,
		T1:      pk.t1.Bytes(),
		T2:      pk.t2.Bytes(),
	})
	if err != nil {
		panic(err)
	}
	return blob
}

// Bytes serializes the private key as canonical CBOR. The caller owns the
// returned secret material.
func (sk *PrivateKey) Bytes() []byte {
	blob, err := ccbor.Marshal(&privateKeyWire{
		Version: encodingVersion,
		S:       sk.s.Bytes(),
		E1:      sk.e1.Bytes(),
		E2:      sk.e2.Bytes(),
	})
	if err != nil {
		panic(err)
	}
	return blob
}

// ParsePublicKey parses a public key for the given parameters.
func ParsePublicKey(pp *PublicParameters, data []byte) (*PublicKey, error) {
	var w publicKeyWire
	if err := dcbor.Unmarshal(data, &w); err != nil || w.Version != encodingVersion {
		return nil, qerrors.NewCryptoError("ParsePublicKey", qerrors.ErrInvalidPublicKey)
	}
	t1, err := pp.ring.ParseElement(w.T1)
	if err != nil {
		return nil, qerrors.NewCryptoError("ParsePublicKey", qerrors.ErrInvalidPublicKey)
	}
	t2, err := pp.ring.ParseElement(w.T2)
	if err != nil {
		return nil, qerrors.NewCryptoError("ParsePublicKey", qerrors.ErrInvalidPublicKey)
	}
	return &PublicKey{t1: t1, t2: t2}, nil
}

// ParsePrivateKey parses a private key and recomputes its public key.
// Coefficients outside [-1, 1] are rejected.
func ParsePrivateKey(pp *PublicParameters, data []byte) (*KeyPair, error) {
	var w privateKeyWire
	if err := dcbor.Unmarshal(data, &w); err != nil || w.Version != encodingVersion {
		return nil, qerrors.NewCryptoError("ParsePrivateKey", qerrors.ErrInvalidPrivateKey)
	}
	defer func() {
		clear(w.S)
		clear(w.E1)
		clear(w.E2)
	}()

	var sk PrivateKey
	var err error
	if sk.s, err = pp.ring.ParseElement(w.S); err != nil {
		return nil, qerrors.NewCryptoError("ParsePrivateKey", qerrors.ErrInvalidPrivateKey)
	}
	if sk.e1, err = pp.ring.ParseElement(w.E1); err != nil {
		return nil, qerrors.NewCryptoError("ParsePrivateKey", qerrors.ErrInvalidPrivateKey)
	}
	if sk.e2, err = pp.ring.ParseElement(w.E2); err != nil {
		return nil, qerrors.NewCryptoError("ParsePrivateKey", qerrors.ErrInvalidPrivateKey)
	}
	return completeKeyPair(pp, &sk)
}
