package ec25519

import (
	"github.com/athanorlabs/go-uecc/field"
)

// onCurve returns 1 if the affine point (v.x, v.y), with v.z = 1, satisfies
// -x^2 + y^2 = 1 + d*x^2*y^2.
func (v *Point) onCurve() int {
	var x2, y2, dx2, dx2y2, lhs, r field.Element

	x2.Square(&v.x)
	y2.Square(&v.y)

	dx2.Multiply(&feD, &x2)
	dx2y2.Multiply(&dx2, &y2)

	lhs.Subtract(&y2, &x2)
	lhs.Subtract(&lhs, &feOne)
	r.Subtract(&lhs, &dx2y2)

	return r.IsZero()
}

// SetXY sets v to the affine point (x, y) given in convention c, and returns
// v. x and y are 32-byte little-endian field elements. If the point is not on
// the curve, SetXY returns nil and ErrInvalidEncoding, and v is unchanged.
func (v *Point) SetXY(x, y []byte, c Convention) (*Point, error) {
	if err := c.Valid(); err != nil {
		return nil, err
	}

	var p Point
	var xx field.Element

	if _, err := xx.SetBytes(x); err != nil {
		return nil, ErrInvalidEncoding
	}
	if _, err := p.y.SetBytes(y); err != nil {
		return nil, ErrInvalidEncoding
	}

	if c == Legacy {
		p.x.Multiply(&xx, &legacyToEd25519)
	} else {
		p.x = xx
	}
	p.z.One()

	if p.onCurve() == 0 {
		return nil, ErrInvalidEncoding
	}

	p.t.Multiply(&p.x, &p.y)

	*v = p
	return v, nil
}

// SetBytes sets v to the point packed in the 32 bytes of in, using
// convention c, and returns v. The stored coordinate is loaded, the other one
// is recovered from the curve equation, and the root whose parity matches the
// top bit of in[31] is chosen. If in is not a valid encoding, SetBytes
// returns nil and ErrInvalidEncoding, and v is unchanged.
//
// Non-canonical coordinates (at least p) are accepted and reduced.
func (v *Point) SetBytes(in []byte, c Convention) (*Point, error) {
	if err := c.Valid(); err != nil {
		return nil, err
	}
	if len(in) != 32 {
		return nil, ErrInvalidEncoding
	}

	var packed [32]byte
	copy(packed[:], in)

	sign := uint32(packed[31] >> 7)
	packed[31] &= 0x7f

	var p Point
	var ok bool

	if c == Legacy {
		ok = p.loadLegacy(&packed, sign)
	} else {
		ok = p.loadEd25519(&packed, sign)
	}

	if !ok || p.onCurve() == 0 {
		return nil, ErrInvalidEncoding
	}

	p.t.Multiply(&p.x, &p.y)

	*v = p
	return v, nil
}

// loadEd25519 recovers x from y: x^2 = (y^2 - 1) / (d*y^2 + 1).
func (v *Point) loadEd25519(packed *[32]byte, sign uint32) bool {
	var y2, dy2, num, den, denInv, x2, x, xNeg field.Element

	v.y.SetBytes(packed[:])
	v.z.One()

	y2.Square(&v.y)
	dy2.Multiply(&feD, &y2)
	num.Subtract(&y2, &feOne)
	den.Add(&dy2, &feOne)
	denInv.Invert(&den)
	x2.Multiply(&num, &denInv)

	if _, ok := x.Sqrt(&x2); !ok {
		return false
	}

	xNeg.Negate(&x)
	v.x.Select(&x, &xNeg, sign^x.Parity())
	v.x.Squeeze()

	return true
}

// loadLegacy recovers y from the legacy x: y^2 = (1 - a*x^2) / (1 - d*x^2),
// then maps x onto the Ed25519 curve.
func (v *Point) loadLegacy(packed *[32]byte, sign uint32) bool {
	var xl, x2, ax2, dx2, num, den, denInv, y2, y, yNeg field.Element

	xl.SetBytes(packed[:])
	v.z.One()

	x2.Square(&xl)
	ax2.MultiplyInt(&x2, legacyA)
	dx2.MultiplyInt(&x2, legacyD)
	num.Subtract(&feOne, &ax2)
	den.Subtract(&feOne, &dx2)
	denInv.Invert(&den)
	y2.Multiply(&num, &denInv)

	if _, ok := y.Sqrt(&y2); !ok {
		return false
	}

	yNeg.Negate(&y)
	v.y.Select(&y, &yNeg, sign^y.Parity())
	v.y.Squeeze()
	v.x.Multiply(&xl, &legacyToEd25519)

	return true
}

// XY returns the affine coordinates of v in convention c as 32-byte
// little-endian canonical field elements. It panics if c is not valid.
func (v *Point) XY(c Convention) (x, y []byte) {
	if err := c.Valid(); err != nil {
		panic(err)
	}

	var zInv, xx, yy field.Element

	zInv.Invert(&v.z)
	xx.Multiply(&zInv, &v.x)
	yy.Multiply(&zInv, &v.y)

	if c == Legacy {
		xx.Multiply(&xx, &ed25519ToLegacy)
	}

	return xx.Bytes(), yy.Bytes()
}

// Bytes returns the 32-byte packed encoding of v in convention c: y with the
// parity of x in the top bit for Ed25519, x with the parity of y for Legacy.
// It panics if c is not valid.
func (v *Point) Bytes(c Convention) []byte {
	x, y := v.XY(c)

	if c == Legacy {
		x[31] |= y[0] << 7
		return x
	}

	y[31] |= x[0] << 7
	return y
}
