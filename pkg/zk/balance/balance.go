package zkbalance

import (
	"crypto/rand"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
)

const (
	domainSum     = "ZK Balance Sum"
	domainProduct = "ZK Balance Product"
)

type Public struct {
	// Cᵢ = vᵢ⋅ValueBase + rᵢ⋅BlindingBase
	C1, C2, C3 curve.Point

	ValueBase    curve.Point
	BlindingBase curve.Point
}

// Private holds the openings of C1 and C2, and the blinding of C3.
// The value of C3 is implied by the relation being proven.
type Private struct {
	Value1, Value2                  curve.Scalar
	Blinding1, Blinding2, Blinding3 curve.Scalar
}

// Proof shows v₁ + v₂ = v₃ (NewSumProof) or v₁⋅v₂ = v₃ (NewProductProof).
//
// The commitments T₁, T₂, T₃ are not transmitted: the verifier recomputes them
// from the responses and checks that they hash back to Check.
type Proof struct {
	group curve.Curve

	// Check = e
	Check curve.Scalar

	// M1 = a - e⋅v₁, M2 = b - e⋅r₁
	M1, M2 curve.Scalar

	// M3 = c - e⋅v₂, M4 = d - e⋅r₂
	M3, M4 curve.Scalar

	// M5 = f - e⋅r₃ for a sum, f - e⋅M3⋅r₁ - e⋅M1⋅r₂ - e²⋅r₃ for a product
	M5 curve.Scalar
}

func (p *Proof) IsValid() bool {
	if p == nil {
		return false
	}
	for _, s := range p.scalars() {
		if s == nil {
			return false
		}
	}
	return !p.Check.IsZero()
}

func (public Public) isValid() bool {
	for _, point := range []curve.Point{public.C1, public.C2, public.C3, public.ValueBase, public.BlindingBase} {
		if point == nil {
			return false
		}
	}
	return true
}

// NewSumProof proves that C3 commits to the sum of the values in C1 and C2.
func NewSumProof(group curve.Curve, hash *hash.Hash, public Public, private Private) *Proof {
	a, b, c, d, f := sampleNonces(group)

	G, H := public.ValueBase, public.BlindingBase
	t1 := a.Act(G).Add(b.Act(H))                               // T₁ = a⋅G + b⋅H
	t2 := c.Act(G).Add(d.Act(H))                               // T₂ = c⋅G + d⋅H
	t3 := group.NewScalar().Set(a).Add(c).Act(G).Add(f.Act(H)) // T₃ = (a+c)⋅G + f⋅H

	e, _ := challenge(hash, group, domainSum, public, t1, t2, t3)

	return &Proof{
		group: group,
		Check: e,
		M1:    zk.MaskedOpening(a, e, private.Value1),
		M2:    zk.MaskedOpening(b, e, private.Blinding1),
		M3:    zk.MaskedOpening(c, e, private.Value2),
		M4:    zk.MaskedOpening(d, e, private.Blinding2),
		M5:    zk.MaskedOpening(f, e, private.Blinding3),
	}
}

func (p *Proof) VerifySum(hash *hash.Hash, public Public) bool {
	if !p.IsValid() || !public.isValid() {
		return false
	}

	G, H := public.ValueBase, public.BlindingBase
	t1, t2 := p.recomputeOpenings(public)
	// T₃ = (M1+M3)⋅G + M5⋅H + e⋅C3
	m13 := p.group.NewScalar().Set(p.M1).Add(p.M3)
	t3 := m13.Act(G).Add(p.M5.Act(H)).Add(p.Check.Act(public.C3))

	e, err := challenge(hash, p.group, domainSum, public, t1, t2, t3)
	if err != nil {
		return false
	}
	return e.Equal(p.Check)
}

// NewProductProof proves that C3 commits to the product of the values in C1 and C2.
func NewProductProof(group curve.Curve, hash *hash.Hash, public Public, private Private) *Proof {
	a, b, c, d, f := sampleNonces(group)

	G, H := public.ValueBase, public.BlindingBase
	t1 := a.Act(G).Add(b.Act(H))                               // T₁ = a⋅G + b⋅H
	t2 := c.Act(G).Add(d.Act(H))                               // T₂ = c⋅G + d⋅H
	t3 := group.NewScalar().Set(a).Mul(c).Act(G).Add(f.Act(H)) // T₃ = (a⋅c)⋅G + f⋅H

	e, _ := challenge(hash, group, domainProduct, public, t1, t2, t3)

	m1 := zk.MaskedOpening(a, e, private.Value1)
	m3 := zk.MaskedOpening(c, e, private.Value2)

	// M5 = f - (e⋅M3⋅r₁ + e⋅M1⋅r₂ + e²⋅r₃)
	blinding := group.NewScalar().Set(m3).Mul(private.Blinding1)
	blinding.Add(group.NewScalar().Set(m1).Mul(private.Blinding2))
	blinding.Add(group.NewScalar().Set(e).Mul(private.Blinding3))
	m5 := zk.MaskedOpening(f, e, blinding)

	return &Proof{
		group: group,
		Check: e,
		M1:    m1,
		M2:    zk.MaskedOpening(b, e, private.Blinding1),
		M3:    m3,
		M4:    zk.MaskedOpening(d, e, private.Blinding2),
		M5:    m5,
	}
}

func (p *Proof) VerifyProduct(hash *hash.Hash, public Public) bool {
	if !p.IsValid() || !public.isValid() {
		return false
	}

	G, H := public.ValueBase, public.BlindingBase
	t1, t2 := p.recomputeOpenings(public)

	// T₃ = (M1⋅M3)⋅G + M5⋅H + e⋅M3⋅C1 + e⋅M1⋅C2 + e²⋅C3
	e := p.Check
	m13 := p.group.NewScalar().Set(p.M1).Mul(p.M3)
	eM3 := p.group.NewScalar().Set(e).Mul(p.M3)
	eM1 := p.group.NewScalar().Set(e).Mul(p.M1)
	e2 := p.group.NewScalar().Set(e).Mul(e)
	t3 := curve.MultiScalarMul(p.group,
		[]curve.Scalar{m13, p.M5, eM3, eM1, e2},
		[]curve.Point{G, H, public.C1, public.C2, public.C3})

	check, err := challenge(hash, p.group, domainProduct, public, t1, t2, t3)
	if err != nil {
		return false
	}
	return check.Equal(p.Check)
}

// recomputeOpenings returns T₁ = M1⋅G + M2⋅H + e⋅C1 and T₂ = M3⋅G + M4⋅H + e⋅C2.
func (p *Proof) recomputeOpenings(public Public) (curve.Point, curve.Point) {
	G, H := public.ValueBase, public.BlindingBase
	t1 := p.M1.Act(G).Add(p.M2.Act(H)).Add(p.Check.Act(public.C1))
	t2 := p.M3.Act(G).Add(p.M4.Act(H)).Add(p.Check.Act(public.C2))
	return t1, t2
}

func sampleNonces(group curve.Curve) (a, b, c, d, f curve.Scalar) {
	nonces := sample.Scalars(rand.Reader, group, 5)
	return nonces[0], nonces[1], nonces[2], nonces[3], nonces[4]
}

func challenge(hash *hash.Hash, group curve.Curve, domain string, public Public, t1, t2, t3 curve.Point) (curve.Scalar, error) {
	return zk.Challenge(hash, group, domain,
		public.C1, public.C2, public.C3, public.ValueBase, public.BlindingBase,
		t1, t2, t3)
}

func Empty(group curve.Curve) *Proof {
	return &Proof{
		group: group,
		Check: group.NewScalar(),
		M1:    group.NewScalar(),
		M2:    group.NewScalar(),
		M3:    group.NewScalar(),
		M4:    group.NewScalar(),
		M5:    group.NewScalar(),
	}
}

func (p *Proof) scalars() []curve.Scalar {
	return []curve.Scalar{p.Check, p.M1, p.M2, p.M3, p.M4, p.M5}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return zk.MarshalSigma(nil, p.scalars())
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// p must have been created by Empty.
func (p *Proof) UnmarshalBinary(data []byte) error {
	return zk.UnmarshalSigma(data, nil, p.scalars())
}
