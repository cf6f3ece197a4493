// Package scalar implements arithmetic modulo the order of the Curve25519
// base point, l = 2^252 + 27742317777372353535851937790883648493.
//
// A Scalar is a 256-bit little-endian integer. Add and Subtract return
// values that are congruent to the result but not reduced; Reduce maps any
// 256-bit value to [0, l). Nothing branches on scalar values.
package scalar

import (
	"github.com/pkg/errors"
)

// Scalar is a 256-bit little-endian integer interpreted modulo l.
type Scalar [32]byte

// Order is l in little-endian form.
var Order = Scalar{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// l is a private copy of Order so that callers mutating Order cannot break
// the arithmetic.
var l = Order

// r2 is 2^512 mod l, which lifts a Montgomery product back to a plain residue.
var r2 = Scalar{
	0x01, 0x0f, 0x9c, 0x44, 0xe3, 0x11, 0x06, 0xa4,
	0x47, 0x93, 0x85, 0x68, 0xa7, 0x1b, 0x0e, 0xd0,
	0x65, 0xbe, 0xf5, 0x17, 0xd2, 0x73, 0xec, 0xce,
	0x3d, 0x9a, 0x30, 0x7c, 0x1b, 0x41, 0x99, 0x03,
}

var scOne = Scalar{1}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// Set sets s = x, and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	*s = *x
	return s
}

// SetUint32 sets s = n, and returns s.
func (s *Scalar) SetUint32(n uint32) *Scalar {
	*s = Scalar{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	return s
}

// SetBytes sets s to the 32-byte little-endian value x without reducing it.
func (s *Scalar) SetBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("invalid scalar length")
	}

	copy(s[:], x)
	return s, nil
}

// SetCanonicalBytes sets s = x, where x must be the 32-byte little-endian
// encoding of a value below l.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	var t Scalar
	if _, err := t.SetBytes(x); err != nil {
		return nil, err
	}

	var r Scalar
	r.Reduce(&t)
	if r != t {
		return nil, errors.New("invalid scalar encoding")
	}

	*s = t
	return s, nil
}

// Bytes returns the 32-byte little-endian encoding of s as stored.
func (s *Scalar) Bytes() []byte {
	out := *s
	return out[:]
}

// isNegative returns 1 if the top bit of n is set.
func isNegative(n int32) uint32 {
	return uint32(n) >> 31
}

// selectBytes sets out to r if b == 0, and to s if b == 1.
func selectBytes(out, r, s *Scalar, b uint32) {
	mask := byte(b) - 1

	for j := range out {
		out[j] = s[j] ^ (mask & (r[j] ^ s[j]))
	}
}

// Reduce sets s to the unique value in [0, l) congruent to a, and returns s.
//
// The quotient estimate nq is taken from the top four bits, and both a - nq*l
// and a - (nq-1)*l are computed; the first is kept unless it went negative.
func (s *Scalar) Reduce(a *Scalar) *Scalar {
	var out1, out2 Scalar
	var u1, u2 int32

	nq := int32(a[31] >> 4)

	for j := 0; j < 31; j++ {
		u1 += int32(a[j]) - nq*int32(l[j])
		u2 += int32(a[j]) - (nq-1)*int32(l[j])

		out1[j], out2[j] = byte(u1), byte(u2)
		u1 >>= 8
		u2 >>= 8
	}

	u1 += int32(a[31]) - nq*int32(l[31])
	u2 += int32(a[31]) - (nq-1)*int32(l[31])
	out1[31], out2[31] = byte(u1), byte(u2)

	selectBytes(s, &out1, &out2, isNegative(u1))
	return s
}

// Add sets s to a value congruent to a + b, and returns s. A multiple of l
// derived from the top bits of the operands is folded in so the result fits
// in 256 bits; it is below 3*2^252 but not reduced.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	nq := 1 - int32(a[31]>>4) - int32(b[31]>>4)

	var u int32
	for j := range s {
		u += int32(a[j]) + int32(b[j]) + nq*int32(l[j])

		s[j] = byte(u)
		u >>= 8
	}

	return s
}

// Subtract sets s to a value congruent to a - b, and returns s. Like Add, the
// result is positive and fits in 256 bits but is not reduced.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	nq := 8 - int32(a[31]>>4) + int32(b[31]>>4)

	var u int32
	for j := range s {
		u += int32(a[j]) - int32(b[j]) + nq*int32(l[j])

		s[j] = byte(u)
		u >>= 8
	}

	return s
}

// Negate sets s to a value congruent to -a, and returns s.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	var zero Scalar
	return s.Subtract(&zero, a)
}

// montgomery sets out to a value congruent to a * b / 2^256 mod l. Inputs
// below a small multiple of l keep the result below 3l. out must not alias a
// or b.
func montgomery(out, a, b *Scalar) {
	*out = Scalar{}

	for i := 0; i < 32; i++ {
		u := uint32(out[0]) + uint32(a[i])*uint32(b[0])
		// 27 = -1/l mod 2^8
		nq := (u * 27) & 255
		u += nq * uint32(l[0])

		for j := 1; j < 32; j++ {
			u += (uint32(out[j]) + uint32(a[i])*uint32(b[j]) + nq*uint32(l[j])) << 8
			u >>= 8
			out[j-1] = byte(u)
		}

		out[31] = byte(u >> 8)
	}
}

// Multiply sets s to a value congruent to a * b, and returns s. b is reduced
// first; the result is small but not necessarily below l.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	var bb, r Scalar
	bb.Reduce(b)

	montgomery(&r, a, &bb)
	montgomery(s, &r, &r2)

	return s
}

// Invert sets s to a value congruent to 1/a mod l, and returns s. It computes
// a^(l-2) by walking the bits of l-2 from the bottom; which accumulator is
// written next depends only on those public bits. Zero maps to zero.
func (s *Scalar) Invert(a *Scalar) *Scalar {
	var x, sq Scalar
	var acc [2]Scalar
	cur := 0

	acc[0] = scOne
	x.Reduce(a)

	for i := 0; i < 32; i++ {
		c := l[i]
		if i == 0 {
			c -= 2
		}

		for j := 0; j < 8; j += 2 {
			if c&(1<<j) != 0 {
				montgomery(&acc[1-cur], &acc[cur], &x)
				cur ^= 1
			}

			montgomery(&sq, &x, &x)

			if c&(2<<j) != 0 {
				montgomery(&acc[1-cur], &acc[cur], &sq)
				cur ^= 1
			}

			montgomery(&x, &sq, &sq)
		}
	}

	// The accumulated Montgomery factors cancel against the final 2^-256 by
	// Fermat, since 2^(256*(l-1)) = 1 mod l.
	montgomery(s, &acc[cur], &scOne)
	return s
}

// IsZero returns 1 if s is congruent to zero, and 0 otherwise.
func (s *Scalar) IsZero() int {
	var r Scalar
	r.Reduce(s)

	var bits uint32
	for i := range r {
		bits |= uint32(r[i])
	}

	return int(((bits - 1) >> 8) & 1)
}

// Equal returns 1 if s and t are congruent modulo l, and 0 otherwise.
func (s *Scalar) Equal(t *Scalar) int {
	var d Scalar
	return d.Subtract(s, t).IsZero()
}

// Clamp sets s to a copy of a with the low three bits and bit 255 cleared and
// bit 254 set, and returns s. Secret scalars must be clamped before they are
// used as a multiplier.
func (s *Scalar) Clamp(a *Scalar) *Scalar {
	*s = *a

	s[0] &= 0xf8
	s[31] &= 0x7f
	s[31] |= 0x40

	return s
}
