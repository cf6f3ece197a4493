package field

// pow2250 returns z^(2^250 - 1), along with z^2 and z^11 which the callers
// need to finish their exponents. The chain is fixed, so the number of
// squarings and multiplications never depends on z.
func pow2250(z *Element) (z2250, z2, z11 Element) {
	var z9, z25, z210, z220, z250, z2100, t0, t1 Element

	z2.Square(z)           // 2
	t1.Square(&z2)         // 4
	t0.Square(&t1)         // 8
	z9.Multiply(&t0, z)    // 9
	z11.Multiply(&z9, &z2) // 11
	t0.Square(&z11)        // 22
	z25.Multiply(&t0, &z9) // 2^5 - 2^0

	t0.Square(&z25)          // 2^6 - 2^1
	t1.Square(&t0)           // 2^7 - 2^2
	t0.Square(&t1)           // 2^8 - 2^3
	t1.Square(&t0)           // 2^9 - 2^4
	t0.Square(&t1)           // 2^10 - 2^5
	z210.Multiply(&t0, &z25) // 2^10 - 2^0

	// 2^20 - 2^0
	t0.Square(&z210)
	t1.Square(&t0)
	for i := 2; i < 10; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z220.Multiply(&t1, &z210)

	// 2^40 - 2^0
	t0.Square(&z220)
	t1.Square(&t0)
	for i := 2; i < 20; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	t0.Multiply(&t1, &z220)

	// 2^50 - 2^0
	t1.Square(&t0)
	t0.Square(&t1)
	for i := 2; i < 10; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	}
	z250.Multiply(&t0, &z210)

	// 2^100 - 2^0
	t0.Square(&z250)
	t1.Square(&t0)
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z2100.Multiply(&t1, &z250)

	// 2^200 - 2^0
	t1.Square(&z2100)
	t0.Square(&t1)
	for i := 2; i < 100; i += 2 {
		t1.Square(&t0)
		t0.Square(&t1)
	}
	t1.Multiply(&t0, &z2100)

	// 2^250 - 2^0
	t0.Square(&t1)
	t1.Square(&t0)
	for i := 2; i < 50; i += 2 {
		t0.Square(&t1)
		t1.Square(&t0)
	}
	z2250.Multiply(&t1, &z250)

	return z2250, z2, z11
}

// Invert sets v = 1/z mod p, and returns v. It computes z^(p-2), so zero maps
// to zero.
func (v *Element) Invert(z *Element) *Element {
	var t0, t1 Element

	z2250, _, z11 := pow2250(z)

	t1.Square(&z2250) // 2^251 - 2^1
	t0.Square(&t1)    // 2^252 - 2^2
	t1.Square(&t0)    // 2^253 - 2^3
	t0.Square(&t1)    // 2^254 - 2^4
	t1.Square(&t0)    // 2^255 - 2^5

	return v.Multiply(&t1, &z11) // 2^255 - 21
}

// Sqrt sets v to a square root of z, and returns v and true. If z is not a
// square, v is left holding an unspecified value and false is returned.
//
// The candidate z^((p+3)/8) is a root when z^((p-1)/4) is 1; when it is -1
// the candidate is multiplied by sqrt(-1). Both branches are computed and the
// result is chosen with Select.
func (v *Element) Sqrt(z *Element) (*Element, bool) {
	var t0, t1, cand, candRho Element
	zz := *z

	z2250, z2, _ := pow2250(&zz)

	t1.Square(&z2250)       // 2^251 - 2^1
	t0.Square(&t1)          // 2^252 - 2^2
	cand.Multiply(&t0, &z2) // 2^252 - 2^1

	t1.Square(&t0)        // 2^253 - 2^3
	t0.Multiply(&t1, &z2) // 2^253 - 6
	t1.Multiply(&t0, &zz) // 2^253 - 5

	candRho.Multiply(&cand, &feSqrtM1)
	v.Select(&cand, &candRho, uint32(t1.Equal(&feMinusOne)))

	t0.Square(v)
	return v, t0.Equal(&zz) == 1
}
