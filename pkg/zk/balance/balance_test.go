package zkbalance

import (
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type opening struct {
	value, blinding curve.Scalar
}

func commitments(pp *pedersen.Parameters, v1, v2, v3 uint64) (Public, Private) {
	group := pp.Group()
	H := pp.G2()
	openings := make([]opening, 3)
	for i, v := range []uint64{v1, v2, v3} {
		openings[i] = opening{
			value:    group.NewScalar().SetUint64(v),
			blinding: sample.Scalar(rand.Reader, group),
		}
	}
	public := Public{
		C1:           pp.Commit(openings[0].value, openings[0].blinding, H),
		C2:           pp.Commit(openings[1].value, openings[1].blinding, H),
		C3:           pp.Commit(openings[2].value, openings[2].blinding, H),
		ValueBase:    pp.G1(),
		BlindingBase: H,
	}
	private := Private{
		Value1:    openings[0].value,
		Value2:    openings[1].value,
		Blinding1: openings[0].blinding,
		Blinding2: openings[1].blinding,
		Blinding3: openings[2].blinding,
	}
	return public, private
}

func TestSum(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()

	public, private := commitments(pp, 10, 20, 30)
	proof := NewSumProof(group, hash.New(), public, private)
	assert.True(t, proof.VerifySum(hash.New(), public))
	assert.False(t, proof.VerifyProduct(hash.New(), public), "sum proof should not verify as a product proof")

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := Empty(group)
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.VerifySum(hash.New(), public))
}

func TestSumFail(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()

	public, private := commitments(pp, 10, 20, 31)
	proof := NewSumProof(group, hash.New(), public, private)
	assert.False(t, proof.VerifySum(hash.New(), public))
}

func TestSumSwappedCommitments(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()

	public, private := commitments(pp, 10, 20, 30)
	proof := NewSumProof(group, hash.New(), public, private)

	swapped := public
	swapped.C1, swapped.C2 = public.C2, public.C1
	assert.False(t, proof.VerifySum(hash.New(), swapped))

	other, _ := commitments(pp, 10, 20, 30)
	assert.False(t, proof.VerifySum(hash.New(), other), "proof is bound to its commitments")
}

func TestProduct(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()

	public, private := commitments(pp, 10, 20, 200)
	proof := NewProductProof(group, hash.New(), public, private)
	assert.True(t, proof.VerifyProduct(hash.New(), public))
	assert.False(t, proof.VerifySum(hash.New(), public), "product proof should not verify as a sum proof")

	out, err := cbor.Marshal(proof)
	require.NoError(t, err, "failed to marshal proof")
	proof2 := Empty(group)
	require.NoError(t, cbor.Unmarshal(out, proof2), "failed to unmarshal proof")
	assert.True(t, proof2.VerifyProduct(hash.New(), public))
}

func TestProductFail(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()

	public, private := commitments(pp, 10, 20, 31)
	proof := NewProductProof(group, hash.New(), public, private)
	assert.False(t, proof.VerifyProduct(hash.New(), public))
}

func TestEmptyProof(t *testing.T) {
	pp := pedersen.Default()
	public, _ := commitments(pp, 1, 2, 3)
	assert.False(t, Empty(pp.Group()).VerifySum(hash.New(), public))
	assert.False(t, Empty(pp.Group()).VerifyProduct(hash.New(), public))
}
