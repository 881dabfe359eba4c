package zkrange

import "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"

// innerProductProof shows knowledge of vectors a, b such that
// P = ⟨a, G⟩ + ⟨b, H⟩ + ⟨a, b⟩⋅Q, using log₂(len(a)) rounds of halving.
type innerProductProof struct {
	L, R []curve.Point
	A, B curve.Scalar
}

func proveInnerProduct(t *transcript, Q curve.Point, G, H []curve.Point, a, b []curve.Scalar) *innerProductProof {
	group := t.group
	G = append([]curve.Point(nil), G...)
	H = append([]curve.Point(nil), H...)
	a = append([]curve.Scalar(nil), a...)
	b = append([]curve.Scalar(nil), b...)

	proof := &innerProductProof{}
	n := len(a)
	for n > 1 {
		n /= 2
		aLo, aHi := a[:n], a[n:]
		bLo, bHi := b[:n], b[n:]
		gLo, gHi := G[:n], G[n:]
		hLo, hHi := H[:n], H[n:]

		cL := innerProduct(group, aLo, bHi)
		cR := innerProduct(group, aHi, bLo)

		// L = ⟨a_lo, G_hi⟩ + ⟨b_hi, H_lo⟩ + c_L⋅Q
		L := curve.MultiScalarMul(group, aLo, gHi).Add(curve.MultiScalarMul(group, bHi, hLo)).Add(cL.Act(Q))
		// R = ⟨a_hi, G_lo⟩ + ⟨b_lo, H_hi⟩ + c_R⋅Q
		R := curve.MultiScalarMul(group, aHi, gLo).Add(curve.MultiScalarMul(group, bLo, hHi)).Add(cR.Act(Q))
		proof.L = append(proof.L, L)
		proof.R = append(proof.R, R)

		t.appendPoint("L", L)
		t.appendPoint("R", R)
		u := t.challenge("u")
		uInv := group.NewScalar().Set(u).Invert()

		for i := 0; i < n; i++ {
			a[i] = group.NewScalar().Set(aLo[i]).Mul(u).Add(group.NewScalar().Set(aHi[i]).Mul(uInv))
			b[i] = group.NewScalar().Set(bLo[i]).Mul(uInv).Add(group.NewScalar().Set(bHi[i]).Mul(u))
			G[i] = uInv.Act(gLo[i]).Add(u.Act(gHi[i]))
			H[i] = u.Act(hLo[i]).Add(uInv.Act(hHi[i]))
		}
		a, b, G, H = a[:n], b[:n], G[:n], H[:n]
	}
	proof.A = a[0]
	proof.B = b[0]
	return proof
}

// verify checks the proof against P, replaying the folding of G and H.
func (p *innerProductProof) verify(t *transcript, Q curve.Point, G, H []curve.Point, P curve.Point) bool {
	group := t.group
	n := len(G)
	if n != len(H) || n != 1<<len(p.L) || len(p.L) != len(p.R) {
		return false
	}
	G = append([]curve.Point(nil), G...)
	H = append([]curve.Point(nil), H...)

	for round := range p.L {
		n /= 2
		t.appendPoint("L", p.L[round])
		t.appendPoint("R", p.R[round])
		u := t.challenge("u")
		uInv := group.NewScalar().Set(u).Invert()
		u2 := group.NewScalar().Set(u).Mul(u)
		uInv2 := group.NewScalar().Set(uInv).Mul(uInv)

		// P' = u²⋅L + P + u⁻²⋅R
		P = u2.Act(p.L[round]).Add(P).Add(uInv2.Act(p.R[round]))

		for i := 0; i < n; i++ {
			G[i] = uInv.Act(G[i]).Add(u.Act(G[n+i]))
			H[i] = u.Act(H[i]).Add(uInv.Act(H[n+i]))
		}
		G, H = G[:n], H[:n]
	}

	ab := group.NewScalar().Set(p.A).Mul(p.B)
	expected := p.A.Act(G[0]).Add(p.B.Act(H[0])).Add(ab.Act(Q))
	return P.Equal(expected)
}
