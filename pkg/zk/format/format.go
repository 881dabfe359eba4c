package zkformat

import (
	"crypto/rand"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/elgamal"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
)

const domain = "ZK Format"

type Public struct {
	// Ballot = (C1 = v⋅G1 + r⋅Poll, C2 = r⋅G2)
	Ballot *elgamal.Ciphertext

	G1, G2 curve.Point

	// Poll is the blinding base of C1.
	Poll curve.Point
}

type Private struct {
	// Value = v
	Value curve.Scalar

	// Blinding = r
	Blinding curve.Scalar
}

type Commitment struct {
	// T1 = a⋅G1 + b⋅Poll
	T1 curve.Point

	// T2 = b⋅G2
	T2 curve.Point
}

// Proof shows that both components of a ballot use the same blinding factor.
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
	if p.T1 == nil || p.T2 == nil || p.M1 == nil || p.M2 == nil {
		return false
	}
	return !p.T1.IsIdentity() && !p.T2.IsIdentity()
}

func NewProof(group curve.Curve, hash *hash.Hash, public Public, private Private) *Proof {
	a := sample.Scalar(rand.Reader, group)
	b := sample.Scalar(rand.Reader, group)

	commitment := &Commitment{
		T1: a.Act(public.G1).Add(b.Act(public.Poll)),
		T2: b.Act(public.G2),
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
	if !public.Ballot.Valid() || public.G1 == nil || public.G2 == nil || public.Poll == nil {
		return false
	}

	e, err := challenge(hash, p.group, public, p.Commitment)
	if err != nil {
		return false
	}

	{
		// rhs = M1⋅G1 + M2⋅Poll + e⋅C1
		rhs := p.M1.Act(public.G1).Add(p.M2.Act(public.Poll)).Add(e.Act(public.Ballot.C1))
		if !p.T1.Equal(rhs) {
			return false
		}
	}

	{
		rhs := p.M2.Act(public.G2).Add(e.Act(public.Ballot.C2)) // rhs = M2⋅G2 + e⋅C2
		if !p.T2.Equal(rhs) {
			return false
		}
	}

	return true
}

func challenge(hash *hash.Hash, group curve.Curve, public Public, commitment *Commitment) (curve.Scalar, error) {
	return zk.Challenge(hash, group, domain,
		public.Ballot, public.G1, public.G2, public.Poll,
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
		M2: group.NewScalar(),
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return zk.MarshalSigma([]curve.Point{p.T1, p.T2}, []curve.Scalar{p.M1, p.M2})
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// p must have been created by Empty.
func (p *Proof) UnmarshalBinary(data []byte) error {
	return zk.UnmarshalSigma(data, []curve.Point{p.T1, p.T2}, []curve.Scalar{p.M1, p.M2})
}
