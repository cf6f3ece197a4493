// Package curve adapts the ec25519 and scalar engines to the types.Curve
// interface for one fixed wire convention.
package curve

import (
	"crypto/rand"
	"crypto/sha512"
	"io"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/athanorlabs/go-uecc/ec25519"
	"github.com/athanorlabs/go-uecc/scalar"
	"github.com/athanorlabs/go-uecc/types"
)

type Curve = types.Curve
type Point = types.Point
type Scalar = types.Scalar

const signatureSize = 64

var (
	errInvalidScalar = errors.New("invalid scalar; type is not *curve.ScalarImpl")
	errInvalidPoint  = errors.New("invalid point; type is not *curve.PointImpl")
)

var _ Curve = (*CurveImpl)(nil)

type CurveImpl struct {
	conv ec25519.Convention
	rand io.Reader
}

// NewCurve returns a Curve encoding points in convention conv. Random scalars
// are read from r, or from crypto/rand if r is nil.
func NewCurve(conv ec25519.Convention, r io.Reader) (*CurveImpl, error) {
	if err := conv.Valid(); err != nil {
		return nil, err
	}

	if r == nil {
		r = rand.Reader
	}

	return &CurveImpl{
		conv: conv,
		rand: r,
	}, nil
}

func (c *CurveImpl) Convention() ec25519.Convention {
	return c.conv
}

func (c *CurveImpl) Name() string {
	return "curve25519/" + c.conv.String()
}

// BitSize returns the bit length of the group order.
func (c *CurveImpl) BitSize() uint64 {
	return 253
}

func (c *CurveImpl) CompressedPointSize() int {
	return 32
}

func (c *CurveImpl) BasePoint() Point {
	return c.point(ec25519.NewGeneratorPoint())
}

func (c *CurveImpl) NewRandomScalar() (Scalar, error) {
	var b [64]byte
	if _, err := io.ReadFull(c.rand, b[:]); err != nil {
		return nil, errors.Wrap(err, "failed to read random scalar")
	}

	s, err := wideReduce(b[:])
	if err != nil {
		return nil, err
	}

	return &ScalarImpl{inner: s}, nil
}

// ScalarFromBytes returns b reduced modulo l.
func (c *CurveImpl) ScalarFromBytes(b [32]byte) Scalar {
	s := scalar.Scalar(b)
	s.Reduce(&s)

	return &ScalarImpl{inner: s}
}

// ClampedScalarFromBytes returns b clamped. The result is kept as is, not
// reduced, so that it drives the full 256-bit ladder.
func (c *CurveImpl) ClampedScalarFromBytes(b [32]byte) Scalar {
	s := scalar.Scalar(b)
	s.Clamp(&s)

	return &ScalarImpl{inner: s}
}

func (c *CurveImpl) ScalarFromInt(in uint32) Scalar {
	return &ScalarImpl{inner: *scalar.NewScalar().SetUint32(in)}
}

func (c *CurveImpl) HashToScalar(in []byte) (Scalar, error) {
	h := sha3.Sum512(in)

	s, err := wideReduce(h[:])
	if err != nil {
		return nil, err
	}

	return &ScalarImpl{inner: s}, nil
}

func (c *CurveImpl) ScalarBaseMul(s Scalar) Point {
	ss := mustScalar(s)

	return c.point(new(ec25519.Point).ScalarBaseMult(ss.bytes()))
}

func (c *CurveImpl) ScalarMul(s Scalar, p Point) Point {
	ss := mustScalar(s)
	pp := mustPoint(p)

	return c.point(new(ec25519.Point).ScalarMult(ss.bytes(), pp.inner))
}

// DecodeToPoint decodes a packed point in the curve's convention.
func (c *CurveImpl) DecodeToPoint(in []byte) (Point, error) {
	p, err := new(ec25519.Point).SetBytes(in, c.conv)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s point", c.conv)
	}

	return c.point(p), nil
}

// DecodeToScalar decodes a canonical scalar, which must be below l.
func (c *CurveImpl) DecodeToScalar(in []byte) (Scalar, error) {
	s, err := scalar.NewScalar().SetCanonicalBytes(in)
	if err != nil {
		return nil, err
	}

	return &ScalarImpl{inner: *s}, nil
}

// Sign returns a Schnorr signature R || S over msg, with R = r*B for a nonce
// derived from the key and msg, and S = r + H(R || A || msg)*s mod l.
func (c *CurveImpl) Sign(s Scalar, msg []byte) ([]byte, error) {
	ss := mustScalar(s)

	h := sha512.New()
	h.Write(ss.inner[:])
	h.Write(msg)

	r, err := wideReduce(h.Sum(nil))
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive nonce")
	}

	R := new(ec25519.Point).ScalarBaseMult((*[32]byte)(&r))
	A := new(ec25519.Point).ScalarBaseMult(ss.bytes())

	ch, err := c.challenge(R.Bytes(c.conv), A, msg)
	if err != nil {
		return nil, err
	}

	var sigS scalar.Scalar
	sigS.Multiply(&ch, &ss.inner)
	sigS.Add(&r, &sigS)
	sigS.Reduce(&sigS)

	return append(R.Bytes(c.conv), sigS[:]...), nil
}

// Verify checks S*B == R + H(R || A || msg)*A.
func (c *CurveImpl) Verify(pubkey Point, msg, sig []byte) bool {
	pp, ok := pubkey.(*PointImpl)
	if !ok || len(sig) != signatureSize {
		return false
	}

	R, err := new(ec25519.Point).SetBytes(sig[:32], c.conv)
	if err != nil {
		return false
	}

	s, err := scalar.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return false
	}

	ch, err := c.challenge(sig[:32], pp.inner, msg)
	if err != nil {
		return false
	}

	lhs := new(ec25519.Point).ScalarBaseMult((*[32]byte)(s))
	rhs := new(ec25519.Point).ScalarMult((*[32]byte)(&ch), pp.inner)
	rhs.Add(R, rhs)

	return lhs.Equal(rhs) == 1
}

func (c *CurveImpl) challenge(encR []byte, A *ec25519.Point, msg []byte) (scalar.Scalar, error) {
	h := sha512.New()
	h.Write(encR)
	h.Write(A.Bytes(c.conv))
	h.Write(msg)

	return wideReduce(h.Sum(nil))
}

func (c *CurveImpl) point(p *ec25519.Point) *PointImpl {
	return &PointImpl{
		inner: p,
		conv:  c.conv,
	}
}

// wideReduce reduces a 64-byte little-endian value modulo l.
func wideReduce(b []byte) (scalar.Scalar, error) {
	var out scalar.Scalar

	s, err := edwards25519.NewScalar().SetUniformBytes(b)
	if err != nil {
		return out, errors.Wrap(err, "failed to reduce scalar")
	}

	copy(out[:], s.Bytes())
	return out, nil
}

func mustScalar(s Scalar) *ScalarImpl {
	ss, ok := s.(*ScalarImpl)
	if !ok {
		panic(errInvalidScalar)
	}
	return ss
}

func mustPoint(p Point) *PointImpl {
	pp, ok := p.(*PointImpl)
	if !ok {
		panic(errInvalidPoint)
	}
	return pp
}
