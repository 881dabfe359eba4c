package zkrange

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/fxamacker/cbor/v2"
)

// maxRounds bounds the inner product rounds of a decoded proof: log₂(RangeBits⋅MaxRangeBatch).
var maxRounds = func() int {
	rounds := 0
	for 1<<rounds < params.RangeBits*params.MaxRangeBatch {
		rounds++
	}
	return rounds
}()

type proofWire struct {
	A    []byte   `cbor:"1,keyasint"`
	S    []byte   `cbor:"2,keyasint"`
	T1   []byte   `cbor:"3,keyasint"`
	T2   []byte   `cbor:"4,keyasint"`
	TauX []byte   `cbor:"5,keyasint"`
	Mu   []byte   `cbor:"6,keyasint"`
	THat []byte   `cbor:"7,keyasint"`
	L    [][]byte `cbor:"8,keyasint"`
	R    [][]byte `cbor:"9,keyasint"`
	IPPA []byte   `cbor:"10,keyasint"`
	IPPB []byte   `cbor:"11,keyasint"`
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Proof) MarshalBinary() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("zkrange: marshal: incomplete proof")
	}
	w := proofWire{
		A:    zk.EncodePoint(p.A),
		S:    zk.EncodePoint(p.S),
		T1:   zk.EncodePoint(p.T1),
		T2:   zk.EncodePoint(p.T2),
		TauX: zk.EncodeScalar(p.TauX),
		Mu:   zk.EncodeScalar(p.Mu),
		THat: zk.EncodeScalar(p.THat),
		L:    make([][]byte, len(p.ipp.L)),
		R:    make([][]byte, len(p.ipp.R)),
		IPPA: zk.EncodeScalar(p.ipp.A),
		IPPB: zk.EncodeScalar(p.ipp.B),
	}
	for i := range p.ipp.L {
		w.L[i] = zk.EncodePoint(p.ipp.L[i])
		w.R[i] = zk.EncodePoint(p.ipp.R[i])
	}
	return cbor.Marshal(w)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// p must have been created by Empty.
func (p *Proof) UnmarshalBinary(data []byte) error {
	var w proofWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", zk.ErrFormat, err)
	}
	if len(w.L) != len(w.R) || len(w.L) > maxRounds {
		return fmt.Errorf("%w: %d left and %d right inner product points", zk.ErrFormat, len(w.L), len(w.R))
	}

	group := p.group
	var err error
	points := []struct {
		dst *curve.Point
		src []byte
	}{{&p.A, w.A}, {&p.S, w.S}, {&p.T1, w.T1}, {&p.T2, w.T2}}
	for _, pt := range points {
		if *pt.dst, err = zk.DecodePoint(group, pt.src); err != nil {
			return err
		}
	}
	ipp := &innerProductProof{
		L: make([]curve.Point, len(w.L)),
		R: make([]curve.Point, len(w.R)),
	}
	scalars := []struct {
		dst *curve.Scalar
		src []byte
	}{{&p.TauX, w.TauX}, {&p.Mu, w.Mu}, {&p.THat, w.THat}, {&ipp.A, w.IPPA}, {&ipp.B, w.IPPB}}
	for _, s := range scalars {
		if *s.dst, err = zk.DecodeScalar(group, s.src); err != nil {
			return err
		}
	}
	for i := range w.L {
		if ipp.L[i], err = zk.DecodePoint(group, w.L[i]); err != nil {
			return err
		}
		if ipp.R[i], err = zk.DecodePoint(group, w.R[i]); err != nil {
			return err
		}
	}
	p.ipp = ipp
	return nil
}
