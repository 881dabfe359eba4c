package zkrange

import "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"

// innerProduct returns ⟨a, b⟩.
func innerProduct(group curve.Curve, a, b []curve.Scalar) curve.Scalar {
	out := group.NewScalar()
	for i := range a {
		out.Add(group.NewScalar().Set(a[i]).Mul(b[i]))
	}
	return out
}

// powers returns [1, x, x², …, xⁿ⁻¹].
func powers(group curve.Curve, x curve.Scalar, n int) []curve.Scalar {
	out := make([]curve.Scalar, n)
	current := group.NewScalar().SetUint64(1)
	for i := range out {
		out[i] = group.NewScalar().Set(current)
		current.Mul(x)
	}
	return out
}

func sum(group curve.Curve, xs []curve.Scalar) curve.Scalar {
	out := group.NewScalar()
	for _, x := range xs {
		out.Add(x)
	}
	return out
}
