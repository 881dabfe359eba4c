package pedersen

import (
	"fmt"
	"io"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
)

type Error string

const (
	ErrNilFields    Error = "contains nil field"
	ErrG1EqualG2    Error = "G1 cannot be equal to G2"
	ErrIdentityBase Error = "bases cannot be the identity"
)

func (e Error) Error() string {
	return fmt.Sprintf("pedersen: %s", string(e))
}

// secondBaseDomain separates the derivation of G2 from any other hash.
const secondBaseDomain = "Pedersen G2"

// Parameters holds the two independent bases shared by every commitment and proof.
//
// G1 is the canonical generator of the group, and G2 is derived by hashing G1,
// so nobody knows log_G1(G2). A Parameters value is immutable; build it once
// with New and pass it to every party.
type Parameters struct {
	group  curve.Curve
	g1, g2 curve.Point
}

// New derives the commitment bases for group.
func New(group curve.Curve) (*Parameters, error) {
	g1 := group.NewBasePoint()
	h := hash.New(&hash.BytesWithDomain{TheDomain: secondBaseDomain, Bytes: []byte(group.Name())})
	if err := h.WriteAny(g1); err != nil {
		return nil, fmt.Errorf("pedersen.New: %w", err)
	}
	uniform := make([]byte, params.BytesUniform)
	if _, err := io.ReadFull(h.Digest(), uniform); err != nil {
		return nil, fmt.Errorf("pedersen.New: %w", err)
	}
	g2, err := group.PointFromUniformBytes(uniform)
	if err != nil {
		return nil, fmt.Errorf("pedersen.New: %w", err)
	}
	return &Parameters{group: group, g1: g1, g2: g2}, nil
}

// Default returns the parameters over Ristretto255.
func Default() *Parameters {
	pp, err := New(curve.Ristretto255{})
	if err != nil {
		panic(err)
	}
	return pp
}

// ValidateParameters returns an error if either base is missing or trivial, or if they coincide.
func ValidateParameters(g1, g2 curve.Point) error {
	if g1 == nil || g2 == nil {
		return ErrNilFields
	}
	if g1.IsIdentity() || g2.IsIdentity() {
		return ErrIdentityBase
	}
	if g1.Equal(g2) {
		return ErrG1EqualG2
	}
	return nil
}

func (p *Parameters) Group() curve.Curve { return p.group }

// G1 is the base carrying committed values.
func (p *Parameters) G1() curve.Point { return p.group.NewPoint().Set(p.g1) }

// G2 is the base carrying blinding factors, and the base of every poll point share.
func (p *Parameters) G2() curve.Point { return p.group.NewPoint().Set(p.g2) }

// Commit computes value⋅G1 + blinding⋅blindingBase.
func (p *Parameters) Commit(value, blinding curve.Scalar, blindingBase curve.Point) curve.Point {
	return value.Act(p.g1).Add(blinding.Act(blindingBase))
}

// CommitUint64 is Commit for a small non negative value.
func (p *Parameters) CommitUint64(value uint64, blinding curve.Scalar, blindingBase curve.Point) curve.Point {
	return p.Commit(p.group.NewScalar().SetUint64(value), blinding, blindingBase)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p *Parameters) WriteTo(w io.Writer) (int64, error) {
	if p == nil {
		return 0, io.ErrUnexpectedEOF
	}
	nAll := int64(0)
	for _, point := range []curve.Point{p.g1, p.g2} {
		buf, err := point.MarshalBinary()
		if err != nil {
			return nAll, err
		}
		n, err := w.Write(buf)
		nAll += int64(n)
		if err != nil {
			return nAll, err
		}
	}
	return nAll, nil
}

// Domain implements hash.WriterToWithDomain.
func (*Parameters) Domain() string {
	return "Pedersen Parameters"
}
