package scalar

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var bigL, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

func toBig(s *Scalar) *big.Int {
	b := make([]byte, 32)
	for i := range s {
		b[31-i] = s[i]
	}
	return new(big.Int).SetBytes(b)
}

func fromBig(n *big.Int) *Scalar {
	var buf [32]byte
	n.FillBytes(buf[:])

	var s Scalar
	for i := range s {
		s[i] = buf[31-i]
	}
	return &s
}

func drawScalar(t *rapid.T, label string) *Scalar {
	var s Scalar
	copy(s[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, label))
	return &s
}

func reduced(s *Scalar) *big.Int {
	var r Scalar
	return toBig(r.Reduce(s))
}

func requireBigEqual(t require.TestingT, want, got *big.Int, msgAndArgs ...interface{}) {
	require.Equal(t, want.String(), got.String(), msgAndArgs...)
}

func TestOrder(t *testing.T) {
	requireBigEqual(t, bigL, toBig(&Order))
}

func TestReduce_Boundaries(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	cases := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		new(big.Int).Sub(bigL, big.NewInt(1)),
		new(big.Int).Set(bigL),
		new(big.Int).Add(bigL, big.NewInt(5)),
		new(big.Int).Lsh(big.NewInt(1), 252),
		new(big.Int).Mul(bigL, big.NewInt(15)),
		max,
	}

	for _, n := range cases {
		var r Scalar
		r.Reduce(fromBig(n))
		requireBigEqual(t, new(big.Int).Mod(n, bigL), toBig(&r), "value %s", n)
	}
}

func TestReduce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := drawScalar(t, "s")

		var r, rr Scalar
		r.Reduce(s)
		requireBigEqual(t, new(big.Int).Mod(toBig(s), bigL), toBig(&r))

		// reducing twice changes nothing
		rr.Reduce(&r)
		require.Equal(t, r, rr)
	})
}

func TestAddSubtract(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := drawScalar(t, "a"), drawScalar(t, "b")
		x, y := toBig(a), toBig(b)

		var sum, diff Scalar
		sum.Add(a, b)
		diff.Subtract(a, b)

		requireBigEqual(t, new(big.Int).Mod(new(big.Int).Add(x, y), bigL), reduced(&sum))
		requireBigEqual(t, new(big.Int).Mod(new(big.Int).Sub(x, y), bigL), reduced(&diff))
	})
}

func TestNegate(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawScalar(t, "a")

		var neg, sum Scalar
		neg.Negate(a)
		sum.Add(a, &neg)
		require.Equal(t, 1, sum.IsZero())
	})
}

func TestMultiply(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := drawScalar(t, "a"), drawScalar(t, "b")

		var prod Scalar
		prod.Multiply(a, b)

		want := new(big.Int).Mul(toBig(a), toBig(b))
		requireBigEqual(t, want.Mod(want, bigL), reduced(&prod))
	})
}

func TestMultiply_Aliasing(t *testing.T) {
	a := new(Scalar).SetUint32(12345)
	a.Multiply(a, a)
	requireBigEqual(t, big.NewInt(12345*12345), reduced(a))
}

func TestInvert(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := drawScalar(t, "x")
		if x.IsZero() == 1 {
			t.Skip("zero has no inverse")
		}

		var inv, prod, r Scalar
		inv.Invert(x)
		prod.Multiply(&inv, x)

		require.Equal(t, scOne, *r.Reduce(&prod))
	})
}

func TestInvert_SmallValues(t *testing.T) {
	for _, n := range []uint32{1, 2, 3, 8, 121665} {
		x := new(Scalar).SetUint32(n)

		var inv Scalar
		inv.Invert(x)

		want := new(big.Int).ModInverse(big.NewInt(int64(n)), bigL)
		requireBigEqual(t, want, reduced(&inv), "n = %d", n)
	}
}

func TestIsZero(t *testing.T) {
	require.Equal(t, 1, NewScalar().IsZero())
	require.Equal(t, 1, new(Scalar).Set(&Order).IsZero())
	require.Equal(t, 0, new(Scalar).SetUint32(1).IsZero())

	twoL := fromBig(new(big.Int).Lsh(bigL, 1))
	require.Equal(t, 1, twoL.IsZero())
}

func TestEqual(t *testing.T) {
	one := new(Scalar).SetUint32(1)
	lPlusOne := fromBig(new(big.Int).Add(bigL, big.NewInt(1)))
	require.Equal(t, 1, one.Equal(lPlusOne))
	require.Equal(t, 0, one.Equal(NewScalar()))
}

func TestSetCanonicalBytes(t *testing.T) {
	_, err := new(Scalar).SetCanonicalBytes(Order.Bytes())
	require.Error(t, err)

	lMinusOne := fromBig(new(big.Int).Sub(bigL, big.NewInt(1)))
	s, err := new(Scalar).SetCanonicalBytes(lMinusOne.Bytes())
	require.NoError(t, err)
	require.Equal(t, *lMinusOne, *s)

	_, err = new(Scalar).SetBytes(make([]byte, 33))
	require.Error(t, err)
}

func TestClamp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawScalar(t, "a")

		var c Scalar
		c.Clamp(a)

		require.Zero(t, c[0]&0x07)
		require.Zero(t, c[31]&0x80)
		require.Equal(t, byte(0x40), c[31]&0x40)

		// the remaining bits pass through
		require.Equal(t, a[0]&0xf8, c[0])
		require.Equal(t, a[31]&0x3f, c[31]&0x3f)
		require.Equal(t, a[1:31], c[1:31])
	})
}
