package elgamal

import (
	"crypto/rand"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCiphertextHomomorphism(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()
	secret := sample.Scalar(rand.Reader, group)
	public := secret.Act(pp.G2())

	r1 := sample.Scalar(rand.Reader, group)
	r2 := sample.Scalar(rand.Reader, group)
	c := EncryptUint64(pp, public, 10, r1).Add(EncryptUint64(pp, public, 32, r2))

	// decrypting with the secret removes the nonce term
	residual := c.C1.Sub(secret.Act(c.C2))
	assert.True(t, residual.Equal(group.NewScalar().SetUint64(42).Act(pp.G1())))

	d := c.Sub(EncryptUint64(pp, public, 32, r2))
	assert.True(t, d.Equal(EncryptUint64(pp, public, 10, r1)))

	zero := Empty(group)
	assert.True(t, zero.Add(d).Equal(d))
}

func TestCiphertextMarshal(t *testing.T) {
	pp := pedersen.Default()
	group := pp.Group()
	public := sample.Scalar(rand.Reader, group).Act(pp.G2())
	c := EncryptUint64(pp, public, 7, sample.Scalar(rand.Reader, group))

	data, err := c.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 64)

	c2 := Empty(group)
	require.NoError(t, c2.UnmarshalBinary(data))
	assert.True(t, c.Equal(c2))

	assert.Error(t, c2.UnmarshalBinary(data[:63]))
	bad := append([]byte{}, data...)
	for i := 32; i < 64; i++ {
		bad[i] = 0xff
	}
	assert.Error(t, c2.UnmarshalBinary(bad))

	var uninitialized Ciphertext
	assert.Error(t, uninitialized.UnmarshalBinary(data))
	assert.False(t, uninitialized.Valid())
}
