package curve

import (
	"filippo.io/edwards25519"
	"github.com/pkg/errors"

	"github.com/athanorlabs/go-uecc/ec25519"
)

type PointImpl struct {
	inner *ec25519.Point
	conv  ec25519.Convention
}

func (p *PointImpl) Copy() Point {
	return &PointImpl{
		inner: new(ec25519.Point).Set(p.inner),
		conv:  p.conv,
	}
}

func (p *PointImpl) Add(b Point) Point {
	pp := mustPoint(b)

	return &PointImpl{
		inner: new(ec25519.Point).Add(p.inner, pp.inner),
		conv:  p.conv,
	}
}

func (p *PointImpl) Sub(b Point) Point {
	pp := mustPoint(b)

	return &PointImpl{
		inner: new(ec25519.Point).Subtract(p.inner, pp.inner),
		conv:  p.conv,
	}
}

func (p *PointImpl) Negate() Point {
	return &PointImpl{
		inner: new(ec25519.Point).Negate(p.inner),
		conv:  p.conv,
	}
}

func (p *PointImpl) ScalarMul(s Scalar) Point {
	ss := mustScalar(s)

	return &PointImpl{
		inner: new(ec25519.Point).ScalarMult(ss.bytes(), p.inner),
		conv:  p.conv,
	}
}

// Encode returns the packed point in the curve's convention.
func (p *PointImpl) Encode() []byte {
	return p.inner.Bytes(p.conv)
}

func (p *PointImpl) IsZero() bool {
	return p.inner.IsIdentity()
}

func (p *PointImpl) Equals(other Point) bool {
	pp := mustPoint(other)
	return p.inner.Equal(pp.inner) == 1
}

// ToEdwards25519 converts p to a filippo.io/edwards25519 point.
func ToEdwards25519(p Point) (*edwards25519.Point, error) {
	pp, ok := p.(*PointImpl)
	if !ok {
		return nil, errInvalidPoint
	}

	e, err := new(edwards25519.Point).SetBytes(pp.inner.Bytes(ec25519.Ed25519))
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert point")
	}

	return e, nil
}

// FromEdwards25519 converts a filippo.io/edwards25519 point to a point on c.
func (c *CurveImpl) FromEdwards25519(e *edwards25519.Point) (Point, error) {
	p, err := new(ec25519.Point).SetBytes(e.Bytes(), ec25519.Ed25519)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert point")
	}

	return c.point(p), nil
}
