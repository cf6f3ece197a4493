package ec25519

import (
	"github.com/athanorlabs/go-uecc/field"
)

// The addition formulas below are add-2008-hwcd-3 and dbl-2008-hwcd from
// https://hyperelliptic.org/EFD/g1p/auto-twisted-extended.html, with every
// intermediate of Add scaled by 121666/2 so that d only appears as the small
// integer 121665.
const (
	addJ = 60833  // 121666 / 2
	addK = 121665 // -2*d * addJ
)

// Add sets v = p + q, and returns v.
func (v *Point) Add(p, q *Point) *Point {
	var a, b, c, d, t0, t1 field.Element

	t0.Subtract(&p.y, &p.x)
	t1.MultiplyInt(&t0, addJ)
	t0.Subtract(&q.y, &q.x)
	a.Multiply(&t0, &t1)

	t0.Add(&p.y, &p.x)
	t1.MultiplyInt(&t0, addJ)
	t0.Add(&q.y, &q.x)
	b.Multiply(&t0, &t1)

	t0.MultiplyInt(&q.t, addK)
	c.Multiply(&p.t, &t0)

	t0.MultiplyInt(&q.z, 2*addJ)
	d.Multiply(&p.z, &t0)

	return v.finish(&a, &b, &c, &d)
}

// addAffine sets v = p + q for a q with Z = 1, saving one multiplication.
func (v *Point) addAffine(p, q *Point) *Point {
	var a, b, c, d, t0, t1 field.Element

	t0.Subtract(&p.y, &p.x)
	t1.MultiplyInt(&t0, addJ)
	t0.Subtract(&q.y, &q.x)
	a.Multiply(&t0, &t1)

	t0.Add(&p.y, &p.x)
	t1.MultiplyInt(&t0, addJ)
	t0.Add(&q.y, &q.x)
	b.Multiply(&t0, &t1)

	t0.MultiplyInt(&q.t, addK)
	c.Multiply(&p.t, &t0)

	d.MultiplyInt(&p.z, 2*addJ)

	return v.finish(&a, &b, &c, &d)
}

// finish completes an addition from the scaled A, B, C and D terms.
func (v *Point) finish(a, b, c, d *field.Element) *Point {
	var e, f, g, h field.Element

	e.Subtract(b, a)
	f.Add(d, c)
	g.Subtract(d, c)
	h.Add(b, a)

	v.x.Multiply(&e, &f)
	v.y.Multiply(&g, &h)
	v.t.Multiply(&e, &h)
	v.z.Multiply(&f, &g)

	return v
}

// Double sets v = p + p, and returns v.
func (v *Point) Double(p *Point) *Point {
	var a, b, c, d, e, f, g, h, t0, t1 field.Element

	a.Square(&p.x)
	b.Square(&p.y)

	t0.Square(&p.z)
	c.MultiplyInt(&t0, 2)

	d.Negate(&a)

	t0.Add(&p.x, &p.y)
	t1.Square(&t0)
	t0.Subtract(&t1, &a)
	e.Subtract(&t0, &b)

	g.Add(&d, &b)
	f.Subtract(&g, &c)
	h.Subtract(&d, &b)

	v.x.Multiply(&e, &f)
	v.y.Multiply(&g, &h)
	v.t.Multiply(&e, &h)
	v.z.Multiply(&f, &g)

	return v
}

// Negate sets v = -p, and returns v. Only X and T change sign.
func (v *Point) Negate(p *Point) *Point {
	v.y = p.y
	v.z = p.z

	v.x.Negate(&p.x).Squeeze()
	v.t.Negate(&p.t).Squeeze()

	return v
}

// Subtract sets v = p - q, and returns v.
func (v *Point) Subtract(p, q *Point) *Point {
	var qNeg Point
	qNeg.Negate(q)
	return v.Add(p, &qNeg)
}

// Select sets v to r if b == 0, and to s if b == 1, without branching on b.
func (v *Point) Select(r, s *Point, b uint32) *Point {
	v.x.Select(&r.x, &s.x, b)
	v.y.Select(&r.y, &s.y, b)
	v.z.Select(&r.z, &s.z, b)
	v.t.Select(&r.t, &s.t, b)
	return v
}

// IsIdentity reports whether v is the identity: X = 0 and Y = Z.
func (v *Point) IsIdentity() bool {
	var yz field.Element
	yz.Subtract(&v.y, &v.z)

	return v.x.IsZero()&yz.IsZero() == 1
}

// Equal returns 1 if v and u represent the same point, and 0 otherwise.
func (v *Point) Equal(u *Point) int {
	var t1, t2, t3, t4 field.Element

	t1.Multiply(&v.x, &u.z)
	t2.Multiply(&u.x, &v.z)
	t3.Multiply(&v.y, &u.z)
	t4.Multiply(&u.y, &v.z)

	return t1.Equal(&t2) & t3.Equal(&t4)
}
