package session

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/athanorlabs/go-uecc/types"
)

var errInputBytesTooShort = errors.New("input bytes too short")

// envelope is an encrypted message: the sender's ephemeral point R followed
// by the sealed body.
type envelope struct {
	ephemeral types.Point
	sealed    []byte
}

// Serialize encodes the envelope as R || sealed.
func (e *envelope) Serialize() []byte {
	b := e.ephemeral.Encode()
	return append(b, e.sealed...)
}

// Deserialize decodes an envelope for the given curve. At least overhead
// bytes of sealed body must follow the point.
func (e *envelope) Deserialize(curve types.Curve, overhead int, in []byte) error {
	reader := bytes.NewBuffer(in)

	pointLen := curve.CompressedPointSize()
	if len(in) < pointLen+overhead {
		return errInputBytesTooShort
	}

	var err error
	e.ephemeral, err = curve.DecodeToPoint(reader.Next(pointLen))
	if err != nil {
		return err
	}

	e.sealed = reader.Bytes()
	return nil
}
