package zkequality

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquality(t *testing.T) {
	group := curve.Ristretto255{}

	B1 := sample.Scalar(rand.Reader, group).ActOnBase()
	B2 := sample.Scalar(rand.Reader, group).ActOnBase()
	x := sample.Scalar(rand.Reader, group)

	public := Public{
		Base1:  B1,
		Point1: x.Act(B1),
		Base2:  B2,
		Point2: x.Act(B2),
	}

	proof := NewProof(group, hash.New(), public, Private{Secret: x})
	assert.True(t, proof.Verify(hash.New(), public))

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := Empty(group)
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.Verify(hash.New(), public))
}

func TestEqualityFail(t *testing.T) {
	group := curve.Ristretto255{}

	B1 := sample.Scalar(rand.Reader, group).ActOnBase()
	B2 := sample.Scalar(rand.Reader, group).ActOnBase()
	x := sample.Scalar(rand.Reader, group)
	y := sample.Scalar(rand.Reader, group)

	public := Public{
		Base1:  B1,
		Point1: x.Act(B1),
		Base2:  B2,
		Point2: y.Act(B2),
	}
	proof := NewProof(group, hash.New(), public, Private{Secret: x})
	assert.False(t, proof.Verify(hash.New(), public), "different logarithms should not verify")

	public.Point2 = x.Act(B2)
	proof = NewProof(group, hash.New(), public, Private{Secret: x})
	swapped := Public{Base1: B2, Point1: public.Point2, Base2: B1, Point2: public.Point1}
	assert.False(t, proof.Verify(hash.New(), swapped), "proof is bound to the order of its bases")
}

func TestEqualityMalformed(t *testing.T) {
	group := curve.Ristretto255{}
	garbage := bytes.Repeat([]byte{0xff}, 40)
	assert.ErrorIs(t, Empty(group).UnmarshalBinary(garbage), zk.ErrFormat)
}

func TestEqualityIdentityBase(t *testing.T) {
	group := curve.Ristretto255{}

	B1 := sample.Scalar(rand.Reader, group).ActOnBase()
	x := sample.Scalar(rand.Reader, group)
	public := Public{
		Base1:  B1,
		Point1: x.Act(B1),
		Base2:  group.NewPoint(),
		Point2: group.NewPoint(),
	}
	proof := NewProof(group, hash.New(), public, Private{Secret: x})
	assert.True(t, proof.Verify(hash.New(), public))
}
