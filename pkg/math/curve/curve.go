package curve

import (
	"encoding"

	"github.com/cronokirby/saferith"
)

// Curve represents a prime order group, along with the scalar field acting on it.
type Curve interface {
	// NewPoint returns the identity element.
	NewPoint() Point
	// NewBasePoint returns the canonical generator of the group.
	NewBasePoint() Point
	// NewScalar returns the scalar 0.
	NewScalar() Scalar
	// PointFromUniformBytes maps 64 uniform bytes to a group element,
	// without anybody learning its discrete logarithm.
	PointFromUniformBytes([]byte) (Point, error)
	Name() string
	// SafeScalarBytes is the number of random bytes needed to sample a scalar
	// with negligible bias.
	SafeScalarBytes() int
	Order() *saferith.Modulus
}

// Scalar is an element of the field acting on a Curve.
//
// Methods modifying a Scalar do so in place, and return the receiver.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Negate() Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	SetNat(*saferith.Nat) Scalar
	SetUint64(uint64) Scalar
	// Act returns s⋅P.
	Act(Point) Point
	// ActOnBase returns s⋅G for the canonical generator G.
	ActOnBase() Point
}

// Point is an element of a Curve.
//
// Contrary to Scalar, the arithmetic methods of Point return a fresh value.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	Equal(Point) bool
	IsIdentity() bool
}

// MakeNat converts a Scalar into its natural number representative in [0, q).
func MakeNat(s Scalar) *saferith.Nat {
	bytes, err := s.MarshalBinary()
	if err != nil {
		panic(err)
	}
	// scalar encodings are little endian, saferith expects big endian
	reversed := make([]byte, len(bytes))
	for i := range bytes {
		reversed[len(bytes)-1-i] = bytes[i]
	}
	return new(saferith.Nat).SetBytes(reversed)
}

// MultiScalarMul returns ∑ᵢ scalars[i]⋅points[i].
//
// It panics if the slices have different lengths.
func MultiScalarMul(group Curve, scalars []Scalar, points []Point) Point {
	if len(scalars) != len(points) {
		panic("curve.MultiScalarMul: length mismatch")
	}
	result := group.NewPoint()
	for i := range scalars {
		result = result.Add(scalars[i].Act(points[i]))
	}
	return result
}
