// Package field implements arithmetic in GF(2^255-19).
//
// Elements are kept in an unsaturated form of 32 radix-2^8 slots, each held
// in a uint32 so that carries can accumulate between reductions. Two
// precision states matter:
//
//   - squeezed: every slot is back in byte range and the value is below 2p.
//   - frozen: the value is the unique representative in [0, p).
//
// All methods are constant-time with respect to the element values. Like
// math/big, receivers are outputs and may alias any argument.
package field

import (
	"github.com/pkg/errors"
)

// Element is an integer modulo 2^255-19. The zero value is zero.
type Element [32]uint32

var (
	feZero = Element{}
	feOne  = Element{1}

	// p itself, used by IsZero.
	feP = Element{
		0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}

	// 2^256 - p, adding it subtracts p modulo 2^256.
	feMinusP = Element{
		19, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 128,
	}

	feMinusOne = Element{
		0xec, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}

	// sqrt(-1) = 2^((p-1)/4)
	feSqrtM1 = Element{
		0xb0, 0xa0, 0x0e, 0x4a, 0x27, 0x1b, 0xee, 0xc4,
		0x78, 0xe4, 0x2f, 0xad, 0x06, 0x18, 0x43, 0x2f,
		0xa7, 0xd7, 0xfb, 0x3d, 0x99, 0x00, 0x4d, 0x2b,
		0x0b, 0xdf, 0xc1, 0x4f, 0x80, 0x24, 0x83, 0x2b,
	}
)

// Zero sets v = 0, and returns v.
func (v *Element) Zero() *Element {
	*v = feZero
	return v
}

// One sets v = 1, and returns v.
func (v *Element) One() *Element {
	*v = feOne
	return v
}

// Set sets v = a, and returns v.
func (v *Element) Set(a *Element) *Element {
	*v = *a
	return v
}

// SetBytes sets v to the little-endian value of x, which must be 32 bytes.
// All 256 bits are loaded; callers decoding a packed point clear the sign bit
// first. The result is squeezed.
func (v *Element) SetBytes(x []byte) (*Element, error) {
	if len(x) != 32 {
		return nil, errors.New("invalid field element input size")
	}

	for i := range v {
		v[i] = uint32(x[i])
	}

	return v.Squeeze(), nil
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	var out [32]byte
	return v.bytes(&out)
}

func (v *Element) bytes(out *[32]byte) []byte {
	t := v.canonical()

	for i := range t {
		out[i] = byte(t[i])
	}

	return out[:]
}

// Add sets v = a + b, and returns v. The result is not squeezed, only the low
// 31 slots are carried.
func (v *Element) Add(a, b *Element) *Element {
	var u uint32

	for j := 0; j < 31; j++ {
		u += a[j] + b[j]
		v[j] = u & 255
		u >>= 8
	}

	u += a[31] + b[31]
	v[31] = u

	return v
}

// Subtract sets v = a - b, and returns v. b must be squeezed. 2p is added to
// keep every slot positive, so the result is below 2p only when a is zero;
// otherwise squeeze it before comparing or encoding.
func (v *Element) Subtract(a, b *Element) *Element {
	u := uint32(218)

	for j := 0; j < 31; j++ {
		u += a[j] + 65280 - b[j]
		v[j] = u & 255
		u >>= 8
	}

	u += a[31] - b[31]
	v[31] = u

	return v
}

// Negate sets v = -a, and returns v. a must be squeezed.
func (v *Element) Negate(a *Element) *Element {
	return v.Subtract(&feZero, a)
}

// Squeeze carries v twice, folding the bits above 2^255 back in as 19*x. The
// result is below 2p but not necessarily below p.
func (v *Element) Squeeze() *Element {
	var u uint32

	for j := 0; j < 31; j++ {
		u += v[j]
		v[j] = u & 255
		u >>= 8
	}

	u += v[31]
	v[31] = u & 127
	u = 19 * (u >> 7)

	for j := 0; j < 31; j++ {
		u += v[j]
		v[j] = u & 255
		u >>= 8
	}

	u += v[31]
	v[31] = u

	return v
}

// Freeze reduces a squeezed v to its canonical value in [0, p).
func (v *Element) Freeze() *Element {
	orig := *v
	v.Add(v, &feMinusP)

	// v + 2^255 + 19 has bit 255 set exactly when v < p.
	negative := -((v[31] >> 7) & 1)

	for j := range v {
		v[j] ^= negative & (orig[j] ^ v[j])
		v[j] &= 255
	}

	return v
}

// Parity returns the lowest bit of the frozen value of v.
func (v *Element) Parity() uint32 {
	t := v.canonical()
	return t[0] & 1
}

// canonical returns the frozen form of v. The extra squeeze folds values such
// as 2p, which a negated zero produces, back below 2p first.
func (v *Element) canonical() Element {
	t := *v
	t.Squeeze().Freeze()
	return t
}

// Multiply sets v = a * b, and returns v. The result is squeezed.
func (v *Element) Multiply(a, b *Element) *Element {
	var t Element

	for i := 0; i < 32; i++ {
		var u uint32

		for j := 0; j <= i; j++ {
			u += a[j] * b[i-j]
		}

		for j := i + 1; j < 32; j++ {
			u += 38 * a[j] * b[i+32-j]
		}

		t[i] = u
	}

	*v = t
	return v.Squeeze()
}

// Square sets v = a * a, and returns v. The result is squeezed.
func (v *Element) Square(a *Element) *Element {
	var t Element

	for i := 0; i < 32; i++ {
		var u uint32

		for j := 0; j < i-j; j++ {
			u += a[j] * a[i-j]
		}

		for j := i + 1; j < i+32-j; j++ {
			u += 38 * a[j] * a[i+32-j]
		}

		u *= 2

		if i&1 == 0 {
			u += a[i/2] * a[i/2]
			u += 38 * a[i/2+16] * a[i/2+16]
		}

		t[i] = u
	}

	*v = t
	return v.Squeeze()
}

// MultiplyInt sets v = a * n for a small public n, and returns v. The result
// is squeezed.
func (v *Element) MultiplyInt(a *Element, n uint32) *Element {
	var u uint32

	for j := 0; j < 31; j++ {
		u += n * a[j]
		v[j] = u & 255
		u >>= 8
	}

	u += n * a[31]
	v[31] = u & 127
	u = 19 * (u >> 7)

	for j := 0; j < 31; j++ {
		u += v[j]
		v[j] = u & 255
		u >>= 8
	}

	u += v[31]
	v[31] = u

	return v
}

// Select sets v to r if b == 0, and to s if b == 1, without branching on b.
func (v *Element) Select(r, s *Element, b uint32) *Element {
	mask := b - 1

	for j := range v {
		v[j] = s[j] ^ (mask & (r[j] ^ s[j]))
	}

	return v
}

// Equal returns 1 if v and u are congruent modulo p, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	a, b := v.canonical(), u.canonical()
	return equalSlots(&a, &b)
}

// IsZero returns 1 if v is congruent to zero, and 0 otherwise. v may carry
// unreduced slack; it is squeezed before the comparison.
func (v *Element) IsZero() int {
	t := *v
	t.Squeeze()
	return equalSlots(&t, &feZero) | equalSlots(&t, &feP)
}

// equalSlots compares the raw slots of x and y.
func equalSlots(x, y *Element) int {
	var diff uint32

	for i := range x {
		d := x[i] ^ y[i]
		diff |= d & 0xffff
		diff |= d >> 16
	}

	return int(1 & ((diff - 1) >> 16))
}
