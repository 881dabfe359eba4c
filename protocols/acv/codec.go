package acv

import (
	"errors"
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/elgamal"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// map keys are sorted, so that equal records have equal encodings
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}).DecMode(); err != nil {
		panic(err)
	}
}

func marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

func unmarshal(data []byte, v interface{}) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (p *SystemParameters) MarshalBinary() ([]byte, error) {
	type plain SystemParameters
	return marshal((*plain)(p))
}

func (p *SystemParameters) UnmarshalBinary(data []byte) error {
	type plain SystemParameters
	return unmarshal(data, (*plain)(p))
}

func (s *CounterSystemParametersShare) MarshalBinary() ([]byte, error) {
	type plain CounterSystemParametersShare
	return marshal((*plain)(s))
}

func (s *CounterSystemParametersShare) UnmarshalBinary(data []byte) error {
	type plain CounterSystemParametersShare
	return unmarshal(data, (*plain)(s))
}

func (r *RegistrationRequest) MarshalBinary() ([]byte, error) {
	type plain RegistrationRequest
	return marshal((*plain)(r))
}

func (r *RegistrationRequest) UnmarshalBinary(data []byte) error {
	type plain RegistrationRequest
	return unmarshal(data, (*plain)(r))
}

func (r *RegistrationResponse) MarshalBinary() ([]byte, error) {
	type plain RegistrationResponse
	return marshal((*plain)(r))
}

func (r *RegistrationResponse) UnmarshalBinary(data []byte) error {
	type plain RegistrationResponse
	return unmarshal(data, (*plain)(r))
}

func (r *VoteRequest) MarshalBinary() ([]byte, error) {
	type plain VoteRequest
	return marshal((*plain)(r))
}

func (r *VoteRequest) UnmarshalBinary(data []byte) error {
	type plain VoteRequest
	return unmarshal(data, (*plain)(r))
}

func (s *VoteStorage) MarshalBinary() ([]byte, error) {
	type plain VoteStorage
	return marshal((*plain)(s))
}

func (s *VoteStorage) UnmarshalBinary(data []byte) error {
	type plain VoteStorage
	return unmarshal(data, (*plain)(s))
}

func (s *DecryptedResultPartStorage) MarshalBinary() ([]byte, error) {
	type plain DecryptedResultPartStorage
	return marshal((*plain)(s))
}

func (s *DecryptedResultPartStorage) UnmarshalBinary(data []byte) error {
	type plain DecryptedResultPartStorage
	return unmarshal(data, (*plain)(s))
}

func (s *VoteResultStorage) MarshalBinary() ([]byte, error) {
	type plain VoteResultStorage
	return marshal((*plain)(s))
}

func (s *VoteResultStorage) UnmarshalBinary(data []byte) error {
	type plain VoteResultStorage
	return unmarshal(data, (*plain)(s))
}

// EncodeBallot returns the wire form of c.
func EncodeBallot(c *elgamal.Ciphertext) *Ballot {
	return &Ballot{
		Ciphertext1: zk.EncodePoint(c.C1),
		Ciphertext2: zk.EncodePoint(c.C2),
	}
}

// Ciphertext decodes both components of b.
func (b *Ballot) Ciphertext(group curve.Curve) (*elgamal.Ciphertext, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: missing ballot", ErrDecode)
	}
	c1, err := DecodePoint(group, b.Ciphertext1)
	if err != nil {
		return nil, fmt.Errorf("ciphertext1: %w", err)
	}
	c2, err := DecodePoint(group, b.Ciphertext2)
	if err != nil {
		return nil, fmt.Errorf("ciphertext2: %w", err)
	}
	return &elgamal.Ciphertext{C1: c1, C2: c2}, nil
}

// DecodePoint wraps zk.DecodePoint, so that failures match ErrDecode.
func DecodePoint(group curve.Curve, data []byte) (curve.Point, error) {
	p, err := zk.DecodePoint(group, data)
	if err != nil {
		return nil, decodeError(err)
	}
	return p, nil
}

// PollPointElement decodes the poll point of p.
func (p *SystemParameters) PollPointElement(group curve.Curve) (curve.Point, error) {
	poll, err := DecodePoint(group, p.PollPoint)
	if err != nil {
		return nil, fmt.Errorf("poll point: %w", err)
	}
	return poll, nil
}

// DecodeProof decodes data into proof, which must be the Empty value of its type.
func DecodeProof(data []byte, proof interface{ UnmarshalBinary([]byte) error }) error {
	if err := proof.UnmarshalBinary(data); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrDecode, err)
}
