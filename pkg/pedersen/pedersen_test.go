package pedersen

import (
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParametersDeterministic(t *testing.T) {
	a, err := New(curve.Ristretto255{})
	require.NoError(t, err)
	b := Default()
	assert.True(t, a.G1().Equal(b.G1()))
	assert.True(t, a.G2().Equal(b.G2()))
	assert.NoError(t, ValidateParameters(a.G1(), a.G2()))
}

func TestValidateParameters(t *testing.T) {
	pp := Default()
	assert.ErrorIs(t, ValidateParameters(nil, pp.G2()), ErrNilFields)
	assert.ErrorIs(t, ValidateParameters(pp.G1(), pp.G1()), ErrG1EqualG2)
	assert.ErrorIs(t, ValidateParameters(pp.G1(), pp.Group().NewPoint()), ErrIdentityBase)
}

func TestCommitHomomorphism(t *testing.T) {
	pp := Default()
	group := pp.Group()
	H := pp.G2()

	a := sample.Scalar(rand.Reader, group)
	b := sample.Scalar(rand.Reader, group)
	r1 := sample.Scalar(rand.Reader, group)
	r2 := sample.Scalar(rand.Reader, group)

	lhs := pp.Commit(a, r1, H).Add(pp.Commit(b, r2, H))
	rhs := pp.Commit(group.NewScalar().Set(a).Add(b), group.NewScalar().Set(r1).Add(r2), H)
	assert.True(t, lhs.Equal(rhs))
}

func TestParametersAreCopies(t *testing.T) {
	pp := Default()
	g1 := pp.G1()
	g1.Set(pp.G2())
	assert.False(t, pp.G1().Equal(pp.G2()), "mutating a returned base must not alter the parameters")
}
