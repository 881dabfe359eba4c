package zk_test

import (
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignToPow2(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 0}, zk.AlignToPow2([]int{1, 2, 3}, 0))
	assert.Equal(t, []int{1, 2, 3, 4}, zk.AlignToPow2([]int{1, 2, 3, 4}, 0))
	assert.Equal(t, []int{5, -1, -1, -1, -1, -1, -1, -1}, zk.AlignToPow2([]int{5, -1, -1, -1, -1}, -1))
	assert.Equal(t, []int{9}, zk.AlignToPow2(nil, 9))

	in := []int{1, 2, 3}
	out := zk.AlignToPow2(in, 0)
	out[0] = 42
	assert.Equal(t, 1, in[0], "input must not be modified")
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 64, 256} {
		assert.True(t, zk.IsPowerOfTwo(n), n)
	}
	for _, n := range []int{0, -2, 3, 6, 100} {
		assert.False(t, zk.IsPowerOfTwo(n), n)
	}
}

func TestChallenge(t *testing.T) {
	group := curve.Ristretto255{}
	B := group.NewBasePoint()

	e1, err := zk.Challenge(hash.New(), group, "a", B)
	require.NoError(t, err)
	e2, err := zk.Challenge(hash.New(), group, "a", B)
	require.NoError(t, err)
	e3, err := zk.Challenge(hash.New(), group, "b", B)
	require.NoError(t, err)

	assert.True(t, e1.Equal(e2))
	assert.False(t, e1.Equal(e3), "domains must separate challenges")
}

func TestSigmaEncoding(t *testing.T) {
	group := curve.Ristretto255{}
	P := group.NewBasePoint()
	s := group.NewScalar().SetUint64(7)

	data, err := zk.MarshalSigma([]curve.Point{P}, []curve.Scalar{s})
	require.NoError(t, err)

	P2, s2 := group.NewPoint(), group.NewScalar()
	require.NoError(t, zk.UnmarshalSigma(data, []curve.Point{P2}, []curve.Scalar{s2}))
	assert.True(t, P.Equal(P2))
	assert.True(t, s.Equal(s2))

	err = zk.UnmarshalSigma(data, []curve.Point{group.NewPoint(), group.NewPoint()}, []curve.Scalar{s2})
	assert.ErrorIs(t, err, zk.ErrFormat)

	_, err = zk.DecodePoint(group, []byte{1, 2, 3})
	assert.ErrorIs(t, err, zk.ErrFormat)
	_, err = zk.DecodeScalar(group, make([]byte, 31))
	assert.ErrorIs(t, err, zk.ErrFormat)
}
