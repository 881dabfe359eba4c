package zk

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/fxamacker/cbor/v2"
)

// sigmaWire is the encoding of a Sigma protocol proof, its commitment points followed by its responses.
type sigmaWire struct {
	Points  [][]byte `cbor:"1,keyasint"`
	Scalars [][]byte `cbor:"2,keyasint"`
}

// MarshalSigma encodes the points and scalars of a proof, in order.
func MarshalSigma(points []curve.Point, scalars []curve.Scalar) ([]byte, error) {
	w := sigmaWire{
		Points:  make([][]byte, len(points)),
		Scalars: make([][]byte, len(scalars)),
	}
	for i, p := range points {
		if p == nil {
			return nil, fmt.Errorf("zk: marshal: nil point %d", i)
		}
		w.Points[i] = EncodePoint(p)
	}
	for i, s := range scalars {
		if s == nil {
			return nil, fmt.Errorf("zk: marshal: nil scalar %d", i)
		}
		w.Scalars[i] = EncodeScalar(s)
	}
	return cbor.Marshal(w)
}

// UnmarshalSigma decodes data into points and scalars, which must already hold concrete values.
//
// The number of encoded points and scalars must match exactly.
func UnmarshalSigma(data []byte, points []curve.Point, scalars []curve.Scalar) error {
	var w sigmaWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(w.Points) != len(points) || len(w.Scalars) != len(scalars) {
		return fmt.Errorf("%w: expected %d points and %d scalars, got %d and %d",
			ErrFormat, len(points), len(scalars), len(w.Points), len(w.Scalars))
	}
	for i := range points {
		if err := points[i].UnmarshalBinary(w.Points[i]); err != nil {
			return fmt.Errorf("%w: point %d: %v", ErrFormat, i, err)
		}
	}
	for i := range scalars {
		if err := scalars[i].UnmarshalBinary(w.Scalars[i]); err != nil {
			return fmt.Errorf("%w: scalar %d: %v", ErrFormat, i, err)
		}
	}
	return nil
}

// DecodeScalar parses a canonical scalar encoding, wrapping any failure in ErrFormat.
func DecodeScalar(group curve.Curve, data []byte) (curve.Scalar, error) {
	s := group.NewScalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: scalar: %v", ErrFormat, err)
	}
	return s, nil
}

// DecodePoint parses a compressed point encoding, wrapping any failure in ErrFormat.
func DecodePoint(group curve.Curve, data []byte) (curve.Point, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: point: %v", ErrFormat, err)
	}
	return p, nil
}

// EncodeScalar returns the canonical encoding of s.
func EncodeScalar(s curve.Scalar) []byte {
	data, err := s.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return data
}

// EncodePoint returns the compressed encoding of p.
func EncodePoint(p curve.Point) []byte {
	data, err := p.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return data
}
