package sample

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(3 * 11 * 65519)
	x := ModN(rand.Reader, n)
	_, _, lt := x.CmpMod(n)
	if lt != 1 {
		t.Errorf("ModN generated a number >= %v: %v", x, n)
	}
}

func TestScalar(t *testing.T) {
	group := curve.Ristretto255{}
	a := Scalar(rand.Reader, group)
	b := Scalar(rand.Reader, group)
	assert.False(t, a.Equal(b), "two samples should differ")
	assert.False(t, a.IsZero())

	// a deterministic reader yields the same scalar
	seed := bytes.Repeat([]byte{7}, group.SafeScalarBytes())
	c := Scalar(bytes.NewReader(seed), group)
	d := Scalar(bytes.NewReader(seed), group)
	assert.True(t, c.Equal(d))
}

func TestScalarPointPair(t *testing.T) {
	group := curve.Ristretto255{}
	x, X := ScalarPointPair(rand.Reader, group)
	assert.True(t, x.ActOnBase().Equal(X))
}

func TestShortReaderPanics(t *testing.T) {
	group := curve.Ristretto255{}
	assert.Panics(t, func() {
		Scalar(bytes.NewReader([]byte{1, 2, 3}), group)
	})
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var resultScalar curve.Scalar

func BenchmarkScalar(b *testing.B) {
	group := curve.Ristretto255{}
	for i := 0; i < b.N; i++ {
		resultScalar = Scalar(rand.Reader, group)
	}
}
