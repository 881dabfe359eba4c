package curve_test

import (
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarMarshal(t *testing.T) {
	group := curve.Ristretto255{}
	s := sample.Scalar(rand.Reader, group)

	data, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 32)

	s2 := group.NewScalar()
	require.NoError(t, s2.UnmarshalBinary(data))
	assert.True(t, s.Equal(s2))

	assert.Error(t, s2.UnmarshalBinary(data[:31]), "short scalar should fail")
	nonCanonical := make([]byte, 32)
	for i := range nonCanonical {
		nonCanonical[i] = 0xff
	}
	assert.Error(t, s2.UnmarshalBinary(nonCanonical), "scalar ≥ ℓ should fail")
}

func TestPointMarshal(t *testing.T) {
	group := curve.Ristretto255{}
	p := sample.Scalar(rand.Reader, group).ActOnBase()

	data, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 32)

	p2 := group.NewPoint()
	require.NoError(t, p2.UnmarshalBinary(data))
	assert.True(t, p.Equal(p2))

	identity, err := group.NewPoint().MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), identity)

	garbage := make([]byte, 32)
	for i := range garbage {
		garbage[i] = 0xff
	}
	assert.Error(t, p2.UnmarshalBinary(garbage))
	assert.Error(t, p2.UnmarshalBinary(data[:16]))
}

func TestCBORBytes(t *testing.T) {
	group := curve.Ristretto255{}
	type tester struct {
		S curve.Scalar
		P curve.Point
	}
	in := tester{
		S: group.NewScalar().SetUint64(0xED),
		P: group.NewBasePoint(),
	}
	data, err := cbor.Marshal(in)
	require.NoError(t, err)
	out := tester{S: group.NewScalar(), P: group.NewPoint()}
	require.NoError(t, cbor.Unmarshal(data, &out))
	assert.True(t, in.S.Equal(out.S))
	assert.True(t, in.P.Equal(out.P))
}

func TestHomomorphism(t *testing.T) {
	group := curve.Ristretto255{}
	a := sample.Scalar(rand.Reader, group)
	b := sample.Scalar(rand.Reader, group)

	sum := group.NewScalar().Set(a).Add(b)
	assert.True(t, a.ActOnBase().Add(b.ActOnBase()).Equal(sum.ActOnBase()))

	diff := group.NewScalar().Set(a).Sub(b)
	assert.True(t, a.ActOnBase().Sub(b.ActOnBase()).Equal(diff.ActOnBase()))

	assert.True(t, a.ActOnBase().Add(a.ActOnBase().Negate()).IsIdentity())
}

func TestInvert(t *testing.T) {
	group := curve.Ristretto255{}
	a := sample.Scalar(rand.Reader, group)
	aInv := group.NewScalar().Set(a).Invert()
	one := group.NewScalar().SetUint64(1)
	assert.True(t, aInv.Mul(a).Equal(one))

	assert.True(t, group.NewScalar().Invert().IsZero())
}

func TestSetNat(t *testing.T) {
	group := curve.Ristretto255{}
	n := new(saferith.Nat).SetUint64(1234567)
	assert.True(t, group.NewScalar().SetNat(n).Equal(group.NewScalar().SetUint64(1234567)))

	// ℓ + 5 reduces to 5
	order := group.Order().Nat()
	wrapped := new(saferith.Nat).Add(order, new(saferith.Nat).SetUint64(5), -1)
	assert.True(t, group.NewScalar().SetNat(wrapped).Equal(group.NewScalar().SetUint64(5)))

	assert.True(t, group.NewScalar().SetNat(order).IsZero())
	assert.Equal(t, saferith.Choice(1), curve.MakeNat(group.NewScalar().SetUint64(77)).Eq(new(saferith.Nat).SetUint64(77)))
}

func TestPointFromUniformBytes(t *testing.T) {
	group := curve.Ristretto255{}
	data := make([]byte, 64)
	_, _ = rand.Read(data)
	p, err := group.PointFromUniformBytes(data)
	require.NoError(t, err)
	assert.False(t, p.IsIdentity())

	_, err = group.PointFromUniformBytes(data[:32])
	assert.Error(t, err)
}

func TestMultiScalarMul(t *testing.T) {
	group := curve.Ristretto255{}
	a := sample.Scalar(rand.Reader, group)
	b := sample.Scalar(rand.Reader, group)
	P := sample.Scalar(rand.Reader, group).ActOnBase()
	Q := sample.Scalar(rand.Reader, group).ActOnBase()

	expected := a.Act(P).Add(b.Act(Q))
	actual := curve.MultiScalarMul(group, []curve.Scalar{a, b}, []curve.Point{P, Q})
	assert.True(t, expected.Equal(actual))
}
