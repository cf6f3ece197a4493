package curve

import (
	"github.com/athanorlabs/go-uecc/scalar"
)

// ScalarImpl holds a 256-bit scalar. Arithmetic results are reduced modulo l;
// clamped secrets are kept unreduced until they take part in arithmetic.
type ScalarImpl struct {
	inner scalar.Scalar
}

func (s *ScalarImpl) bytes() *[32]byte {
	return (*[32]byte)(&s.inner)
}

func (s *ScalarImpl) Add(b Scalar) Scalar {
	ss := mustScalar(b)

	r := new(ScalarImpl)
	r.inner.Add(&s.inner, &ss.inner)
	r.inner.Reduce(&r.inner)
	return r
}

func (s *ScalarImpl) Sub(b Scalar) Scalar {
	ss := mustScalar(b)

	r := new(ScalarImpl)
	r.inner.Subtract(&s.inner, &ss.inner)
	r.inner.Reduce(&r.inner)
	return r
}

func (s *ScalarImpl) Negate() Scalar {
	r := new(ScalarImpl)
	r.inner.Negate(&s.inner)
	r.inner.Reduce(&r.inner)
	return r
}

func (s *ScalarImpl) Mul(b Scalar) Scalar {
	ss := mustScalar(b)

	r := new(ScalarImpl)
	r.inner.Multiply(&s.inner, &ss.inner)
	r.inner.Reduce(&r.inner)
	return r
}

// Inverse returns 1/s mod l, or zero if s is zero.
func (s *ScalarImpl) Inverse() Scalar {
	r := new(ScalarImpl)
	r.inner.Invert(&s.inner)
	r.inner.Reduce(&r.inner)
	return r
}

// Encode returns the 32 stored bytes.
func (s *ScalarImpl) Encode() []byte {
	return s.inner.Bytes()
}

func (s *ScalarImpl) Eq(b Scalar) bool {
	ss := mustScalar(b)
	return s.inner.Equal(&ss.inner) == 1
}

func (s *ScalarImpl) IsZero() bool {
	return s.inner.IsZero() == 1
}
