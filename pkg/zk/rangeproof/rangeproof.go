package zkrange

import (
	"crypto/rand"
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
)

// Proof is an aggregated Bulletproof showing that each of m commitments
// vⱼ⋅G1 + γⱼ⋅H opens to a value in [0, 2³²).
type Proof struct {
	group curve.Curve

	// A = α⋅H + ⟨a_L, G⟩ + ⟨a_R, H⟩
	A curve.Point
	// S = ρ⋅H + ⟨s_L, G⟩ + ⟨s_R, H⟩
	S curve.Point

	// Tᵢ = tᵢ⋅G1 + τᵢ⋅H
	T1, T2 curve.Point

	// TauX = τ₂⋅x² + τ₁⋅x + ∑ⱼ zʲ⁺²⋅γⱼ
	TauX curve.Scalar
	// Mu = α + ρ⋅x
	Mu curve.Scalar
	// THat = ⟨l(x), r(x)⟩
	THat curve.Scalar

	ipp *innerProductProof
}

// Prove creates a range proof for a single value, and returns the commitment
// value⋅G1 + blinding⋅blindingBase it is bound to.
func Prove(pp *pedersen.Parameters, value uint64, blinding curve.Scalar, blindingBase curve.Point) (*Proof, curve.Point) {
	proof, commitments, err := ProveBatch(pp, []uint64{value}, []curve.Scalar{blinding}, blindingBase)
	if err != nil {
		panic(err)
	}
	return proof, commitments[0]
}

// ProveBatch creates a single proof for several values.
//
// The number of values must be a power of two; use zk.AlignToPow2 to pad with
// zero values and zero blindings. Values ≥ 2³² still produce a proof, which
// does not verify.
func ProveBatch(pp *pedersen.Parameters, values []uint64, blindings []curve.Scalar, blindingBase curve.Point) (*Proof, []curve.Point, error) {
	m := len(values)
	if m != len(blindings) {
		return nil, nil, fmt.Errorf("%w: %d values but %d blindings", zk.ErrArgument, m, len(blindings))
	}
	if !zk.IsPowerOfTwo(m) || m > params.MaxRangeBatch {
		return nil, nil, fmt.Errorf("%w: batch size %d is not a power of two ≤ %d", zk.ErrArgument, m, params.MaxRangeBatch)
	}
	if blindingBase == nil {
		return nil, nil, fmt.Errorf("%w: nil blinding base", zk.ErrArgument)
	}

	group := pp.Group()
	n := params.RangeBits
	N := n * m
	gens, err := generatorsFor(group, N)
	if err != nil {
		return nil, nil, err
	}
	G1, H := pp.G1(), blindingBase

	commitments := make([]curve.Point, m)
	for j := range values {
		commitments[j] = pp.CommitUint64(values[j], blindings[j], H)
	}

	t := newTranscript(group, n, m, G1, H)
	for _, V := range commitments {
		t.appendPoint("V", V)
	}

	one := group.NewScalar().SetUint64(1)
	aL := make([]curve.Scalar, N)
	aR := make([]curve.Scalar, N)
	for j, v := range values {
		for i := 0; i < n; i++ {
			bit := (v >> uint(i)) & 1
			aL[j*n+i] = group.NewScalar().SetUint64(bit)
			aR[j*n+i] = group.NewScalar().SetUint64(bit).Sub(one)
		}
	}

	alpha := sample.Scalar(rand.Reader, group)
	A := alpha.Act(H).
		Add(curve.MultiScalarMul(group, aL, gens.G)).
		Add(curve.MultiScalarMul(group, aR, gens.H))

	sL := sample.Scalars(rand.Reader, group, N)
	sR := sample.Scalars(rand.Reader, group, N)
	rho := sample.Scalar(rand.Reader, group)
	S := rho.Act(H).
		Add(curve.MultiScalarMul(group, sL, gens.G)).
		Add(curve.MultiScalarMul(group, sR, gens.H))

	t.appendPoint("A", A)
	t.appendPoint("S", S)
	y := t.challenge("y")
	z := t.challenge("z")

	yPowers := powers(group, y, N)
	zPowers := powers(group, z, m+3)
	twoPowers := powers(group, group.NewScalar().SetUint64(2), n)

	// l(X) = l0 + l1⋅X, r(X) = r0 + r1⋅X
	l0 := make([]curve.Scalar, N)
	r0 := make([]curve.Scalar, N)
	r1 := make([]curve.Scalar, N)
	for i := 0; i < N; i++ {
		j := i / n
		l0[i] = group.NewScalar().Set(aL[i]).Sub(z)
		// r0ᵢ = yⁱ⋅(a_Rᵢ + z) + zʲ⁺²⋅2^(i mod n)
		r0[i] = group.NewScalar().Set(aR[i]).Add(z).Mul(yPowers[i]).
			Add(group.NewScalar().Set(zPowers[j+2]).Mul(twoPowers[i%n]))
		r1[i] = group.NewScalar().Set(sR[i]).Mul(yPowers[i])
	}
	l1 := sL

	t1 := innerProduct(group, l0, r1).Add(innerProduct(group, l1, r0))
	t2 := innerProduct(group, l1, r1)

	tau1 := sample.Scalar(rand.Reader, group)
	tau2 := sample.Scalar(rand.Reader, group)
	T1 := pp.Commit(t1, tau1, H)
	T2 := pp.Commit(t2, tau2, H)

	t.appendPoint("T1", T1)
	t.appendPoint("T2", T2)
	x := t.challenge("x")

	l := make([]curve.Scalar, N)
	r := make([]curve.Scalar, N)
	for i := 0; i < N; i++ {
		l[i] = group.NewScalar().Set(l1[i]).Mul(x).Add(l0[i])
		r[i] = group.NewScalar().Set(r1[i]).Mul(x).Add(r0[i])
	}
	tHat := innerProduct(group, l, r)

	x2 := group.NewScalar().Set(x).Mul(x)
	tauX := group.NewScalar().Set(tau2).Mul(x2).Add(group.NewScalar().Set(tau1).Mul(x))
	for j := range blindings {
		tauX.Add(group.NewScalar().Set(zPowers[j+2]).Mul(blindings[j]))
	}
	mu := group.NewScalar().Set(rho).Mul(x).Add(alpha)

	t.appendScalar("t_x", tHat)
	t.appendScalar("t_x_blinding", tauX)
	t.appendScalar("e_blinding", mu)
	w := t.challenge("w")
	Q := w.Act(G1)

	hPrime := scaledGenerators(group, gens.H, y)
	ipp := proveInnerProduct(t, Q, gens.G, hPrime, l, r)

	return &Proof{
		group: group,
		A:     A,
		S:     S,
		T1:    T1,
		T2:    T2,
		TauX:  tauX,
		Mu:    mu,
		THat:  tHat,
		ipp:   ipp,
	}, commitments, nil
}

// Verify checks a proof created by Prove.
func (p *Proof) Verify(pp *pedersen.Parameters, commitment curve.Point, blindingBase curve.Point) bool {
	return p.VerifyBatch(pp, []curve.Point{commitment}, blindingBase)
}

// VerifyBatch checks that every commitment opens to a value in [0, 2³²).
//
// The commitments must be given in the order used by the prover, padded with the identity
// to the same power of two.
func (p *Proof) VerifyBatch(pp *pedersen.Parameters, commitments []curve.Point, blindingBase curve.Point) bool {
	if !p.IsValid() || blindingBase == nil {
		return false
	}
	m := len(commitments)
	if !zk.IsPowerOfTwo(m) || m > params.MaxRangeBatch {
		return false
	}
	for _, V := range commitments {
		if V == nil {
			return false
		}
	}

	group := pp.Group()
	n := params.RangeBits
	N := n * m
	if 1<<len(p.ipp.L) != N {
		return false
	}
	gens, err := generatorsFor(group, N)
	if err != nil {
		return false
	}
	G1, H := pp.G1(), blindingBase

	t := newTranscript(group, n, m, G1, H)
	for _, V := range commitments {
		t.appendPoint("V", V)
	}
	t.appendPoint("A", p.A)
	t.appendPoint("S", p.S)
	y := t.challenge("y")
	z := t.challenge("z")
	t.appendPoint("T1", p.T1)
	t.appendPoint("T2", p.T2)
	x := t.challenge("x")
	t.appendScalar("t_x", p.THat)
	t.appendScalar("t_x_blinding", p.TauX)
	t.appendScalar("e_blinding", p.Mu)
	w := t.challenge("w")

	yPowers := powers(group, y, N)
	zPowers := powers(group, z, m+3)
	twoPowers := powers(group, group.NewScalar().SetUint64(2), n)
	x2 := group.NewScalar().Set(x).Mul(x)

	// t̂⋅G1 + τₓ⋅H = ∑ⱼ zʲ⁺²⋅Vⱼ + δ(y,z)⋅G1 + x⋅T1 + x²⋅T2
	{
		// δ(y,z) = (z - z²)⋅⟨1, yᴺ⟩ - ∑ⱼ zʲ⁺³⋅⟨1, 2ⁿ⟩
		sumTwo := sum(group, twoPowers)
		delta := group.NewScalar().Set(z).Sub(zPowers[2]).Mul(sum(group, yPowers))
		for j := 0; j < m; j++ {
			delta.Sub(group.NewScalar().Set(zPowers[j+3]).Mul(sumTwo))
		}

		lhs := pp.Commit(p.THat, p.TauX, H)
		rhs := delta.Act(G1).Add(x.Act(p.T1)).Add(x2.Act(p.T2))
		rhs = rhs.Add(curve.MultiScalarMul(group, zPowers[2:m+2], commitments))
		if !lhs.Equal(rhs) {
			return false
		}
	}

	// P = A + x⋅S - z⋅∑Gᵢ + ∑ (z⋅yⁱ + zʲ⁺²⋅2^(i mod n))⋅H'ᵢ - μ⋅H + t̂⋅Q
	Q := w.Act(G1)
	hPrime := scaledGenerators(group, gens.H, y)
	gScalars := make([]curve.Scalar, N)
	hScalars := make([]curve.Scalar, N)
	minusZ := group.NewScalar().Set(z).Negate()
	for i := 0; i < N; i++ {
		j := i / n
		gScalars[i] = minusZ
		hScalars[i] = group.NewScalar().Set(z).Mul(yPowers[i]).
			Add(group.NewScalar().Set(zPowers[j+2]).Mul(twoPowers[i%n]))
	}
	P := p.A.Add(x.Act(p.S)).
		Add(curve.MultiScalarMul(group, gScalars, gens.G)).
		Add(curve.MultiScalarMul(group, hScalars, hPrime)).
		Sub(p.Mu.Act(H)).
		Add(p.THat.Act(Q))

	return p.ipp.verify(t, Q, gens.G, hPrime, P)
}

// scaledGenerators returns H'ᵢ = y⁻ⁱ⋅Hᵢ.
func scaledGenerators(group curve.Curve, H []curve.Point, y curve.Scalar) []curve.Point {
	yInv := group.NewScalar().Set(y).Invert()
	scalars := powers(group, yInv, len(H))
	out := make([]curve.Point, len(H))
	for i := range H {
		out[i] = scalars[i].Act(H[i])
	}
	return out
}

func (p *Proof) IsValid() bool {
	if p == nil || p.ipp == nil {
		return false
	}
	for _, point := range []curve.Point{p.A, p.S, p.T1, p.T2} {
		if point == nil {
			return false
		}
	}
	for _, s := range []curve.Scalar{p.TauX, p.Mu, p.THat, p.ipp.A, p.ipp.B} {
		if s == nil {
			return false
		}
	}
	if len(p.ipp.L) != len(p.ipp.R) {
		return false
	}
	for i := range p.ipp.L {
		if p.ipp.L[i] == nil || p.ipp.R[i] == nil {
			return false
		}
	}
	return true
}

func Empty(group curve.Curve) *Proof {
	return &Proof{
		group: group,
		A:     group.NewPoint(),
		S:     group.NewPoint(),
		T1:    group.NewPoint(),
		T2:    group.NewPoint(),
		TauX:  group.NewScalar(),
		Mu:    group.NewScalar(),
		THat:  group.NewScalar(),
		ipp: &innerProductProof{
			A: group.NewScalar(),
			B: group.NewScalar(),
		},
	}
}
