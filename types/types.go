package types

// Curve is a prime-order group with a fixed generator, as seen by the
// session layer. Implementations fix one wire convention.
type Curve interface {
	Name() string
	BitSize() uint64
	CompressedPointSize() int
	BasePoint() Point
	NewRandomScalar() (Scalar, error)
	ScalarFromInt(uint32) Scalar
	ScalarFromBytes([32]byte) Scalar
	ClampedScalarFromBytes([32]byte) Scalar
	HashToScalar([]byte) (Scalar, error)
	ScalarBaseMul(Scalar) Point
	ScalarMul(Scalar, Point) Point
	DecodeToPoint([]byte) (Point, error)
	DecodeToScalar([]byte) (Scalar, error)
	Sign(Scalar, []byte) ([]byte, error)
	Verify(pubkey Point, msg, sig []byte) bool
}

type Scalar interface {
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Negate() Scalar
	Mul(Scalar) Scalar
	Inverse() Scalar
	Encode() []byte
	Eq(Scalar) bool
	IsZero() bool
}

type Point interface {
	Copy() Point
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	ScalarMul(Scalar) Point
	Encode() []byte
	IsZero() bool
	Equals(other Point) bool
}
