package hash

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

func TestHash_WriteAny(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return err
			}
		}
		return nil
	}
	n := new(saferith.Nat).SetUint64(35)
	group := curve.Ristretto255{}

	assert.NoError(t, testFunc(n))
	assert.NoError(t, testFunc(sample.Scalar(rand.Reader, group)))
	assert.NoError(t, testFunc(sample.Scalar(rand.Reader, group).ActOnBase()))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(&BytesWithDomain{"test", []byte{1}}))
	assert.Panics(t, func() { _ = testFunc(42) })
}

func TestHash_WriteAny_Collision(t *testing.T) {
	testFunc := func(vs ...interface{}) []byte {
		h := New()
		for _, v := range vs {
			assert.NoError(t, h.WriteAny(v))
		}
		return h.Sum()
	}

	h1 := testFunc([]byte("ab"), []byte("c"))
	h2 := testFunc([]byte("a"), []byte("bc"))
	assert.NotEqual(t, h1, h2)

	h3 := testFunc(&BytesWithDomain{"x", []byte("yz")})
	h4 := testFunc(&BytesWithDomain{"xy", []byte("z")})
	assert.NotEqual(t, h3, h4)
}

func TestHash_Clone(t *testing.T) {
	h := New()
	_ = h.WriteAny([]byte("prefix"))
	h2 := h.Clone()
	assert.True(t, bytes.Equal(h.Sum(), h2.Sum()))

	_ = h2.WriteAny([]byte("suffix"))
	assert.False(t, bytes.Equal(h.Sum(), h2.Sum()))
}

func TestHash_InitialData(t *testing.T) {
	a := New(&BytesWithDomain{"label", []byte("one")}).Sum()
	b := New(&BytesWithDomain{"label", []byte("two")}).Sum()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, DigestLengthBytes)
}
