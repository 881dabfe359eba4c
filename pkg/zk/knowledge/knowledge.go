package zkknowledge

import (
	"crypto/rand"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
)

const domain = "ZK Knowledge"

type Public struct {
	// C = v⋅ValueBase + r⋅BlindingBase
	C curve.Point

	ValueBase    curve.Point
	BlindingBase curve.Point
}

type Private struct {
	// Value = v
	Value curve.Scalar

	// Blinding = r
	Blinding curve.Scalar
}

type Commitment struct {
	// T1 = a⋅ValueBase + b⋅BlindingBase
	T1 curve.Point
}

// Proof shows knowledge of an opening (v, r) of a Pedersen commitment.
type Proof struct {
	group curve.Curve
	*Commitment

	// M1 = a - e⋅v (mod q)
	M1 curve.Scalar

	// M2 = b - e⋅r (mod q)
	M2 curve.Scalar
}

func (p *Proof) IsValid() bool {
	if p == nil || p.Commitment == nil {
		return false
	}
	if p.T1 == nil || p.M1 == nil || p.M2 == nil {
		return false
	}
	return !p.T1.IsIdentity()
}

func NewProof(group curve.Curve, hash *hash.Hash, public Public, private Private) *Proof {
	a := sample.Scalar(rand.Reader, group)
	b := sample.Scalar(rand.Reader, group)

	commitment := &Commitment{
		T1: a.Act(public.ValueBase).Add(b.Act(public.BlindingBase)),
	}
	e, _ := challenge(hash, group, public, commitment)

	return &Proof{
		group:      group,
		Commitment: commitment,
		M1:         zk.MaskedOpening(a, e, private.Value),
		M2:         zk.MaskedOpening(b, e, private.Blinding),
	}
}

func (p *Proof) Verify(hash *hash.Hash, public Public) bool {
	if !p.IsValid() {
		return false
	}
	if public.C == nil || public.ValueBase == nil || public.BlindingBase == nil {
		return false
	}

	e, err := challenge(hash, p.group, public, p.Commitment)
	if err != nil {
		return false
	}

	// T1 = M1⋅ValueBase + M2⋅BlindingBase + e⋅C
	rhs := p.M1.Act(public.ValueBase).Add(p.M2.Act(public.BlindingBase)).Add(e.Act(public.C))
	return p.T1.Equal(rhs)
}

func challenge(hash *hash.Hash, group curve.Curve, public Public, commitment *Commitment) (curve.Scalar, error) {
	return zk.Challenge(hash, group, domain,
		public.C, public.ValueBase, public.BlindingBase,
		commitment.T1)
}

func Empty(group curve.Curve) *Proof {
	return &Proof{
		group:      group,
		Commitment: &Commitment{T1: group.NewPoint()},
		M1:         group.NewScalar(),
		M2:         group.NewScalar(),
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return zk.MarshalSigma([]curve.Point{p.T1}, []curve.Scalar{p.M1, p.M2})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// p must have been created by Empty.
func (p *Proof) UnmarshalBinary(data []byte) error {
	return zk.UnmarshalSigma(data, []curve.Point{p.T1}, []curve.Scalar{p.M1, p.M2})
}
