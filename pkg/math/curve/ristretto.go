package curve

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/cronokirby/saferith"
	"github.com/gtank/ristretto255"
)

// ristretto255Order is ℓ = 2²⁵² + 27742317777372353535851937790883648493.
var ristretto255Order *saferith.Modulus

func init() {
	bytes, err := hex.DecodeString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")
	if err != nil {
		panic(err)
	}
	ristretto255Order = saferith.ModulusFromBytes(bytes)
}

// Ristretto255 is the prime order group built on top of Curve25519.
//
// Both scalars and elements have a canonical 32 byte encoding.
type Ristretto255 struct{}

func (Ristretto255) NewPoint() Point {
	return &Ristretto255Point{value: *ristretto255.NewElement()}
}

func (Ristretto255) NewBasePoint() Point {
	one := new(Ristretto255Scalar).SetUint64(1)
	return one.ActOnBase()
}

func (Ristretto255) NewScalar() Scalar {
	return &Ristretto255Scalar{value: *ristretto255.NewScalar()}
}

func (Ristretto255) PointFromUniformBytes(data []byte) (Point, error) {
	if len(data) != params.BytesUniform {
		return nil, fmt.Errorf("curve.Ristretto255: uniform input must be %d bytes, got %d", params.BytesUniform, len(data))
	}
	out := new(Ristretto255Point)
	out.value.FromUniformBytes(data)
	return out, nil
}

func (Ristretto255) Name() string {
	return "ristretto255"
}

func (Ristretto255) SafeScalarBytes() int {
	return params.BytesUniform
}

func (Ristretto255) Order() *saferith.Modulus {
	return ristretto255Order
}

// Ristretto255Scalar is a Scalar modulo the order of Ristretto255.
type Ristretto255Scalar struct {
	value ristretto255.Scalar
}

func ristretto255CastScalar(generic Scalar) *Ristretto255Scalar {
	out, ok := generic.(*Ristretto255Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to ristretto255Scalar: %v", generic))
	}
	return out
}

func (*Ristretto255Scalar) Curve() Curve {
	return Ristretto255{}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Ristretto255Scalar) MarshalBinary() ([]byte, error) {
	return s.value.Encode(make([]byte, 0, params.BytesScalar)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// Only canonical encodings, i.e. little endian integers < ℓ, are accepted.
func (s *Ristretto255Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesScalar {
		return fmt.Errorf("invalid length for ristretto255 scalar: %d", len(data))
	}
	var value ristretto255.Scalar
	if err := value.Decode(data); err != nil {
		return errors.New("invalid bytes for ristretto255 scalar")
	}
	s.value = value
	return nil
}

func (s *Ristretto255Scalar) Add(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Add(&s.value, &other.value)
	return s
}

func (s *Ristretto255Scalar) Sub(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Subtract(&s.value, &other.value)
	return s
}

func (s *Ristretto255Scalar) Mul(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value.Multiply(&s.value, &other.value)
	return s
}

// Invert sets s to s⁻¹, leaving 0 unchanged.
func (s *Ristretto255Scalar) Invert() Scalar {
	if s.IsZero() {
		return s
	}
	inverse := new(saferith.Nat).ModInverse(MakeNat(s), ristretto255Order)
	return s.SetNat(inverse)
}

func (s *Ristretto255Scalar) Negate() Scalar {
	s.value.Negate(&s.value)
	return s
}

func (s *Ristretto255Scalar) Equal(that Scalar) bool {
	other := ristretto255CastScalar(that)

	return s.value.Equal(&other.value) == 1
}

func (s *Ristretto255Scalar) IsZero() bool {
	return s.value.Equal(ristretto255.NewScalar()) == 1
}

func (s *Ristretto255Scalar) Set(that Scalar) Scalar {
	other := ristretto255CastScalar(that)

	s.value = other.value
	return s
}

// SetNat sets s to x mod ℓ.
func (s *Ristretto255Scalar) SetNat(x *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(x, ristretto255Order)
	bigEndian := reduced.Bytes()
	littleEndian := make([]byte, params.BytesScalar)
	for i := 0; i < len(bigEndian) && i < params.BytesScalar; i++ {
		littleEndian[i] = bigEndian[len(bigEndian)-1-i]
	}
	if err := s.value.Decode(littleEndian); err != nil {
		panic(fmt.Sprintf("ristretto255Scalar.SetNat: reduced value is not canonical: %v", err))
	}
	return s
}

func (s *Ristretto255Scalar) SetUint64(x uint64) Scalar {
	data := make([]byte, params.BytesScalar)
	for i := 0; i < 8; i++ {
		data[i] = byte(x >> (8 * i))
	}
	if err := s.value.Decode(data); err != nil {
		panic(fmt.Sprintf("ristretto255Scalar.SetUint64: %v", err))
	}
	return s
}

func (s *Ristretto255Scalar) Act(that Point) Point {
	other := ristretto255CastPoint(that)
	out := new(Ristretto255Point)
	out.value.ScalarMult(&s.value, &other.value)
	return out
}

func (s *Ristretto255Scalar) ActOnBase() Point {
	out := new(Ristretto255Point)
	out.value.ScalarBaseMult(&s.value)
	return out
}

// String implements fmt.Stringer.
func (s *Ristretto255Scalar) String() string {
	if s == nil {
		return "nil"
	}
	data, _ := s.MarshalBinary()
	return hex.EncodeToString(data)
}

// Ristretto255Point is an element of the Ristretto255 group.
type Ristretto255Point struct {
	value ristretto255.Element
}

func ristretto255CastPoint(generic Point) *Ristretto255Point {
	out, ok := generic.(*Ristretto255Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to ristretto255Point: %v", generic))
	}
	return out
}

func (*Ristretto255Point) Curve() Curve {
	return Ristretto255{}
}

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The identity is encoded as 32 zero bytes.
func (p *Ristretto255Point) MarshalBinary() ([]byte, error) {
	if p == nil {
		return nil, errors.New("ristretto255Point.MarshalBinary: point is nil")
	}
	return p.value.Encode(make([]byte, 0, params.BytesPoint)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *Ristretto255Point) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesPoint {
		return fmt.Errorf("invalid length for ristretto255Point: %d", len(data))
	}
	var value ristretto255.Element
	if err := value.Decode(data); err != nil {
		return fmt.Errorf("ristretto255Point.UnmarshalBinary: %w", err)
	}
	p.value = value
	return nil
}

func (p *Ristretto255Point) Add(that Point) Point {
	other := ristretto255CastPoint(that)

	out := new(Ristretto255Point)
	out.value.Add(&p.value, &other.value)
	return out
}

func (p *Ristretto255Point) Sub(that Point) Point {
	other := ristretto255CastPoint(that)

	out := new(Ristretto255Point)
	out.value.Subtract(&p.value, &other.value)
	return out
}

func (p *Ristretto255Point) Negate() Point {
	out := new(Ristretto255Point)
	out.value.Subtract(ristretto255.NewElement(), &p.value)
	return out
}

func (p *Ristretto255Point) Set(that Point) Point {
	other := ristretto255CastPoint(that)

	p.value = other.value
	return p
}

func (p *Ristretto255Point) Equal(that Point) bool {
	other := ristretto255CastPoint(that)

	return p.value.Equal(&other.value) == 1
}

func (p *Ristretto255Point) IsIdentity() bool {
	return p.value.Equal(ristretto255.NewElement()) == 1
}

// String implements fmt.Stringer.
func (p *Ristretto255Point) String() string {
	if p == nil {
		return "nil"
	}
	if p.IsIdentity() {
		return "Point{Identity}"
	}
	data, _ := p.MarshalBinary()
	return "Point{" + hex.EncodeToString(data) + "}"
}
