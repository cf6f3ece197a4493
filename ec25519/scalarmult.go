package ec25519

// ScalarMult sets v = n * q, and returns v. n is a 256-bit little-endian
// integer; it is not reduced or clamped here.
func (v *Point) ScalarMult(n *[32]byte, q *Point) *Point {
	return v.ScalarMultBits(n, q, 256)
}

// ScalarMultBits sets v = m * q, where m is n truncated to its low bits bits,
// and returns v. bits above 256 are treated as 256.
//
// The ladder runs most significant bit first and always performs bits
// doublings and bits additions, keeping the added point only when the scalar
// bit is set.
func (v *Point) ScalarMultBits(n *[32]byte, q *Point, bits uint) *Point {
	base := *q
	r := identity

	var s, t Point

	for i := int(clampBits(bits)) - 1; i >= 0; i-- {
		b := uint32(n[i>>3]>>(i&7)) & 1

		s.Double(&r)
		t.Add(&s, &base)
		r.Select(&s, &t, b)
	}

	*v = r
	return v
}

// ScalarBaseMult sets v = n * B, where B is the canonical generator, and
// returns v.
func (v *Point) ScalarBaseMult(n *[32]byte) *Point {
	return v.ScalarBaseMultBits(n, 256)
}

// ScalarBaseMultBits is ScalarMultBits with the generator as the point. The
// generator has Z = 1, so the cheaper mixed addition is used.
func (v *Point) ScalarBaseMultBits(n *[32]byte, bits uint) *Point {
	r := identity

	var s, t Point

	for i := int(clampBits(bits)) - 1; i >= 0; i-- {
		b := uint32(n[i>>3]>>(i&7)) & 1

		s.Double(&r)
		t.addAffine(&s, &basePoint)
		r.Select(&s, &t, b)
	}

	*v = r
	return v
}

func clampBits(bits uint) uint {
	if bits > 256 {
		return 256
	}
	return bits
}
