package zk

import (
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
)

// Challenge writes a proof specific domain followed by data into h, and reads a scalar from the result.
//
// h is consumed: callers must pass a fresh (or cloned) state.
func Challenge(h *hash.Hash, group curve.Curve, domain string, data ...interface{}) (curve.Scalar, error) {
	if err := h.WriteAny(&hash.BytesWithDomain{TheDomain: "ZK Proof", Bytes: []byte(domain)}); err != nil {
		return nil, err
	}
	if err := h.WriteAny(data...); err != nil {
		return nil, err
	}
	return sample.Scalar(h.Digest(), group), nil
}

// MaskedOpening returns random - e⋅secret, the response of a Sigma protocol.
func MaskedOpening(random, e, secret curve.Scalar) curve.Scalar {
	group := random.Curve()
	return group.NewScalar().Set(random).Sub(group.NewScalar().Set(e).Mul(secret))
}

// IsPowerOfTwo returns true when n = 2ᵏ for some k ≥ 0.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignToPow2 returns a copy of list, extended with pad until its length is a power of two.
//
// Range proofs only accept batches whose length is a power of two, and never pad on their own:
// a prover pads its (value, blinding) pairs with (0, 0), and a verifier pads the matching
// commitments with the commitment to (0, 0), the identity.
func AlignToPow2[T any](list []T, pad T) []T {
	target := 1
	for target < len(list) {
		target <<= 1
	}
	out := make([]T, len(list), target)
	copy(out, list)
	for len(out) < target {
		out = append(out, pad)
	}
	return out
}
