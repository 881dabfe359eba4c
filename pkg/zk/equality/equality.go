package zkequality

import (
	"crypto/rand"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
)

const domain = "ZK Equality"

type Public struct {
	// Point1 = x⋅Base1
	Base1, Point1 curve.Point

	// Point2 = x⋅Base2
	Base2, Point2 curve.Point
}

type Private struct {
	// Secret = x
	Secret curve.Scalar
}

type Commitment struct {
	// T1 = a⋅Base1
	T1 curve.Point

	// T2 = a⋅Base2
	T2 curve.Point
}

// Proof shows that Point1 and Point2 share the same discrete logarithm
// with respect to Base1 and Base2.
type Proof struct {
	group curve.Curve
	*Commitment

	// M1 = a - e⋅x (mod q)
	M1 curve.Scalar
}

func (p *Proof) IsValid() bool {
	if p == nil || p.Commitment == nil {
		return false
	}
	if p.T1 == nil || p.T2 == nil || p.M1 == nil {
		return false
	}
	// Base2 may be the identity, as for the sum of zero ballots, and so may T2.
	return !p.T1.IsIdentity()
}

func NewProof(group curve.Curve, hash *hash.Hash, public Public, private Private) *Proof {
	a := sample.Scalar(rand.Reader, group)

	commitment := &Commitment{
		T1: a.Act(public.Base1),
		T2: a.Act(public.Base2),
	}
	e, _ := challenge(hash, group, public, commitment)

	return &Proof{
		group:      group,
		Commitment: commitment,
		M1:         zk.MaskedOpening(a, e, private.Secret),
	}
}

func (p *Proof) Verify(hash *hash.Hash, public Public) bool {
	if !p.IsValid() {
		return false
	}
	if public.Base1 == nil || public.Point1 == nil || public.Base2 == nil || public.Point2 == nil {
		return false
	}

	e, err := challenge(hash, p.group, public, p.Commitment)
	if err != nil {
		return false
	}

	{
		rhs := p.M1.Act(public.Base1).Add(e.Act(public.Point1)) // rhs = M1⋅Base1 + e⋅Point1
		if !p.T1.Equal(rhs) {
			return false
		}
	}

	{
		rhs := p.M1.Act(public.Base2).Add(e.Act(public.Point2)) // rhs = M1⋅Base2 + e⋅Point2
		if !p.T2.Equal(rhs) {
			return false
		}
	}

	return true
}

func challenge(hash *hash.Hash, group curve.Curve, public Public, commitment *Commitment) (curve.Scalar, error) {
	return zk.Challenge(hash, group, domain,
		public.Point1, public.Point2, public.Base1, public.Base2,
		commitment.T1, commitment.T2)
}

func Empty(group curve.Curve) *Proof {
	return &Proof{
		group: group,
		Commitment: &Commitment{
			T1: group.NewPoint(),
			T2: group.NewPoint(),
		},
		M1: group.NewScalar(),
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return zk.MarshalSigma([]curve.Point{p.T1, p.T2}, []curve.Scalar{p.M1})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// p must have been created by Empty.
func (p *Proof) UnmarshalBinary(data []byte) error {
	return zk.UnmarshalSigma(data, []curve.Point{p.T1, p.T2}, []curve.Scalar{p.M1})
}
