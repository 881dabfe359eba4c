package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
)

type (
	PublicKey = curve.Point
	Nonce     = curve.Scalar
)

// Ciphertext is a two-base commitment to a value, used as a ballot.
//
// Adding ciphertexts adds the underlying values, so the product of all ballots for
// a candidate decrypts to the candidate's tally.
type Ciphertext struct {
	// C1 = value⋅G1 + nonce⋅public
	C1 curve.Point
	// C2 = nonce⋅G2
	C2 curve.Point
}

// Empty returns the encryption of 0 with nonce 0, the neutral element for Add.
func Empty(group curve.Curve) *Ciphertext {
	return &Ciphertext{
		C1: group.NewPoint(),
		C2: group.NewPoint(),
	}
}

// Encrypt commits to value under the poll's joint public key, using the given nonce.
func Encrypt(pp *pedersen.Parameters, public PublicKey, value curve.Scalar, nonce Nonce) *Ciphertext {
	return &Ciphertext{
		C1: pp.Commit(value, nonce, public),
		C2: nonce.Act(pp.G2()),
	}
}

// EncryptUint64 is Encrypt for a small non negative value.
func EncryptUint64(pp *pedersen.Parameters, public PublicKey, value uint64, nonce Nonce) *Ciphertext {
	return Encrypt(pp, public, pp.Group().NewScalar().SetUint64(value), nonce)
}

// Add returns c + other, component wise.
func (c *Ciphertext) Add(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		C1: c.C1.Add(other.C1),
		C2: c.C2.Add(other.C2),
	}
}

// Sub returns c - other, component wise.
func (c *Ciphertext) Sub(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		C1: c.C1.Sub(other.C1),
		C2: c.C2.Sub(other.C2),
	}
}

func (c *Ciphertext) Equal(other *Ciphertext) bool {
	return c.C1.Equal(other.C1) && c.C2.Equal(other.C2)
}

func (c *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	var (
		total int64
		n     int
	)

	buf, err := c.C1.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err = w.Write(buf)
	total += int64(n)
	if err != nil {
		return total, err
	}

	buf, err = c.C2.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err = w.Write(buf)
	total += int64(n)
	if err != nil {
		return total, err
	}

	return total, nil
}

func (Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}

// MarshalBinary implements encoding.BinaryMarshaler, as C1 ∥ C2.
func (c *Ciphertext) MarshalBinary() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New("elgamal.Ciphertext: nil component")
	}
	c1, err := c.C1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	c2, err := c.C2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(c1, c2...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// c must have been created by Empty, so that its components have a concrete type.
func (c *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) != 2*params.BytesPoint {
		return fmt.Errorf("elgamal.Ciphertext: invalid length %d", len(data))
	}
	if !c.Valid() {
		return errors.New("elgamal.Ciphertext: unmarshal into uninitialized ciphertext")
	}
	if err := c.C1.UnmarshalBinary(data[:params.BytesPoint]); err != nil {
		return fmt.Errorf("elgamal.Ciphertext: C1: %w", err)
	}
	if err := c.C2.UnmarshalBinary(data[params.BytesPoint:]); err != nil {
		return fmt.Errorf("elgamal.Ciphertext: C2: %w", err)
	}
	return nil
}

// Valid returns true if both components are present.
//
// Contrary to a plain ElGamal ciphertext, identity components are allowed: they
// appear in the zero ballots used as aggregation seeds and range proof padding.
func (c *Ciphertext) Valid() bool {
	if c == nil || c.C1 == nil || c.C2 == nil {
		return false
	}
	return true
}
