package setla

import (
	"github.com/sara-star-quant/setla/internal/constants"
	qerrors "github.com/sara-star-quant/setla/internal/errors"
	"github.com/sara-star-quant/setla/pkg/ring"
)

// Signcryption is the output of Signcrypt.
type Signcryption struct {
	// Z is the signature response s·c + y.
	Z ring.Element
	// C is the sparse challenge.
	C ring.Element
	// X carries the encapsulated symmetric key.
	X ring.Element
	// Eps is the symmetric ciphertext of the message.
	Eps []byte
}

type signcryptionWire struct {
	_       struct{} `cbor:",toarray"`
	Version uint
	Z       []byte
	C       []byte
	X       []byte
	Eps     []byte
}

// Bytes serializes the bundle as canonical CBOR.
func (sc *Signcryption) Bytes() []byte {
	blob, err := ccbor.Marshal(&signcryptionWire{
		Version: encodingVersion,
		Z:       sc.Z.Bytes(),
		C:       sc.C.Bytes(),
		X:       sc.X.Bytes(),
		Eps:     sc.Eps,
	})
	if err != nil {
		panic(err)
	}
	return blob
}

// Size returns the payload size in bytes: three encoded ring elements plus
// the symmetric ciphertext.
func (sc *Signcryption) Size() int {
	return (sc.Z.Len()+sc.C.Len()+sc.X.Len())*constants.CoefficientSize + len(sc.Eps)
}

// ParseSigncryption parses a bundle produced by Bytes.
func ParseSigncryption(pp *PublicParameters, data []byte) (*Signcryption, error) {
	var w signcryptionWire
	if err := dcbor.Unmarshal(data, &w); err != nil || w.Version != encodingVersion {
		return nil, qerrors.NewCryptoError("ParseSigncryption", qerrors.ErrInvalidSigncryption)
	}

	var sc Signcryption
	var err error
	if sc.Z, err = pp.ring.ParseElement(w.Z); err != nil {
		return nil, qerrors.NewCryptoError("ParseSigncryption", qerrors.ErrInvalidSigncryption)
	}
	if sc.C, err = pp.ring.ParseElement(w.C); err != nil {
		return nil, qerrors.NewCryptoError("ParseSigncryption", qerrors.ErrInvalidSigncryption)
	}
	if sc.X, err = pp.ring.ParseElement(w.X); err != nil {
		return nil, qerrors.NewCryptoError("ParseSigncryption", qerrors.ErrInvalidSigncryption)
	}
	sc.Eps = w.Eps
	if sc.Eps == nil {
		sc.Eps = []byte{}
	}
	return &sc, nil
}

func validateSigncryption(pp *PublicParameters, sc *Signcryption) error {
	if sc == nil {
		return qerrors.ErrInvalidSigncryption
	}
	r := pp.ring
	if r.Validate(sc.Z) != nil || r.Validate(sc.C) != nil || r.Validate(sc.X) != nil {
		return qerrors.ErrInvalidSigncryption
	}
	return nil
}
