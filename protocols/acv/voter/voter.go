package voter

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sort"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/elgamal"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	zkbalance "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/balance"
	zkformat "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/format"
	zkrange "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/rangeproof"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
)

// MakeVoterSecret samples the secret s of a voter.
func MakeVoterSecret(pp *pedersen.Parameters) curve.Scalar {
	return sample.Scalar(rand.Reader, pp.Group())
}

// MakeRegistrationRequest returns (s⋅PollPoint, s⋅G2).
func MakeRegistrationRequest(pp *pedersen.Parameters, secret curve.Scalar, systemParams *acv.SystemParameters) (*acv.RegistrationRequest, error) {
	poll, err := systemParams.PollPointElement(pp.Group())
	if err != nil {
		return nil, fmt.Errorf("voter.MakeRegistrationRequest: %w", err)
	}
	return &acv.RegistrationRequest{
		BlindingPollPoint:   zk.EncodePoint(secret.Act(poll)),
		BlindingBasepointG2: zk.EncodePoint(secret.Act(pp.G2())),
	}, nil
}

// VerifyBlankBallot checks that the certified blank ballot is (s⋅PollPoint + weight⋅G1, s⋅G2).
//
// The signature is not checked here, only the ballot it covers.
func VerifyBlankBallot(pp *pedersen.Parameters, request *acv.RegistrationRequest, response *acv.RegistrationResponse) (bool, error) {
	group := pp.Group()
	blindingPoll, err := acv.DecodePoint(group, request.BlindingPollPoint)
	if err != nil {
		return false, fmt.Errorf("voter.VerifyBlankBallot: blinding poll point: %w", err)
	}
	if _, err = acv.DecodePoint(group, request.BlindingBasepointG2); err != nil {
		return false, fmt.Errorf("voter.VerifyBlankBallot: blinding G2: %w", err)
	}
	if response.Ballot == nil {
		return false, fmt.Errorf("voter.VerifyBlankBallot: %w: missing ballot", acv.ErrDecode)
	}

	weight := group.NewScalar().SetUint64(uint64(response.VoterWeight))
	expectedC1 := zk.EncodePoint(blindingPoll.Add(weight.Act(pp.G1())))
	return bytes.Equal(expectedC1, response.Ballot.Ciphertext1) &&
		bytes.Equal(request.BlindingBasepointG2, response.Ballot.Ciphertext2), nil
}

// checkChoices validates the choices before anything is computed from them,
// and returns them sorted by candidate along with the total weight used.
func checkChoices(choices []acv.Choice, weight uint64, systemParams *acv.SystemParameters) ([]acv.Choice, uint64, error) {
	// the rest ballot takes one more slot of the range proof
	if len(choices)+1 > params.MaxRangeBatch {
		return nil, 0, fmt.Errorf("%w: %d choices, at most %d", acv.ErrArgument, len(choices), params.MaxRangeBatch-1)
	}
	seen := make(map[string]bool, len(choices))
	used := uint64(0)
	for _, c := range choices {
		if c.Candidate == "" {
			return nil, 0, fmt.Errorf("%w: empty candidate name", acv.ErrArgument)
		}
		if c.Candidate == acv.TotalBallotsKey {
			return nil, 0, fmt.Errorf("%w: candidate name %q is reserved", acv.ErrArgument, c.Candidate)
		}
		if systemParams.Mode == acv.Listed && !systemParams.HasCandidate(c.Candidate) {
			return nil, 0, fmt.Errorf("%w: %q", acv.ErrUnknownCandidate, c.Candidate)
		}
		if seen[c.Candidate] {
			return nil, 0, fmt.Errorf("%w: candidate %q chosen twice", acv.ErrArgument, c.Candidate)
		}
		seen[c.Candidate] = true

		used += uint64(c.Value)
		if used > weight {
			return nil, 0, fmt.Errorf("%w: votes exceed the certified weight %d", acv.ErrArgument, weight)
		}
	}

	sorted := make([]acv.Choice, len(choices))
	copy(sorted, choices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Candidate < sorted[j].Candidate })
	return sorted, used, nil
}

// Vote splits the certified weight among choices.
//
// Each chosen value is encrypted under a fresh blinding bᵢ with a format proof.
// The unused weight goes to a rest ballot with blinding s - ∑bᵢ, so that a sum
// proof ties the voted and rest ballots to the blank ballot, and a single range
// proof shows every value (rest included) is non negative.
func Vote(pp *pedersen.Parameters, secret curve.Scalar, choices []acv.Choice, response *acv.RegistrationResponse, systemParams *acv.SystemParameters) (*acv.VoteRequest, error) {
	group := pp.Group()
	weight := uint64(response.VoterWeight)

	sorted, used, err := checkChoices(choices, weight, systemParams)
	if err != nil {
		return nil, fmt.Errorf("voter.Vote: %w", err)
	}
	poll, err := systemParams.PollPointElement(group)
	if err != nil {
		return nil, fmt.Errorf("voter.Vote: %w", err)
	}
	blank, err := response.Ballot.Ciphertext(group)
	if err != nil {
		return nil, fmt.Errorf("voter.Vote: blank ballot: %w", err)
	}

	G1, G2 := pp.G1(), pp.G2()
	request := &acv.VoteRequest{
		Vote: &acv.VoteStorage{
			Signature:    response.Signature,
			BlankBallot:  response.Ballot,
			VotedBallots: make(map[string]*acv.Ballot, len(sorted)),
		},
		BallotProofs: make(map[string][]byte, len(sorted)),
	}

	values := make([]uint64, 0, len(sorted)+1)
	blindings := make([]curve.Scalar, 0, len(sorted)+1)
	voted := elgamal.Empty(group)
	votedBlinding := group.NewScalar()
	for _, c := range sorted {
		value := group.NewScalar().SetUint64(uint64(c.Value))
		blinding := sample.Scalar(rand.Reader, group)
		ballot := elgamal.Encrypt(pp, poll, value, blinding)

		proof := zkformat.NewProof(group, hash.New(), zkformat.Public{
			Ballot: ballot,
			G1:     G1,
			G2:     G2,
			Poll:   poll,
		}, zkformat.Private{Value: value, Blinding: blinding})
		proofBytes, err := proof.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("voter.Vote: format proof: %w", err)
		}

		request.Vote.VotedBallots[c.Candidate] = acv.EncodeBallot(ballot)
		request.BallotProofs[c.Candidate] = proofBytes
		voted = voted.Add(ballot)
		votedBlinding.Add(blinding)
		values = append(values, uint64(c.Value))
		blindings = append(blindings, blinding)
	}

	rest := weight - used
	restBlinding := group.NewScalar().Set(secret).Sub(votedBlinding)
	restBallot := elgamal.EncryptUint64(pp, poll, rest, restBlinding)
	request.Vote.RestBallot = acv.EncodeBallot(restBallot)
	values = append(values, rest)
	blindings = append(blindings, restBlinding)

	// used + rest = weight, with blindings ∑bᵢ + (s - ∑bᵢ) = s
	sumProof := zkbalance.NewSumProof(group, hash.New(), zkbalance.Public{
		C1:           voted.C1,
		C2:           restBallot.C1,
		C3:           blank.C1,
		ValueBase:    G1,
		BlindingBase: poll,
	}, zkbalance.Private{
		Value1:    group.NewScalar().SetUint64(used),
		Value2:    group.NewScalar().SetUint64(rest),
		Blinding1: votedBlinding,
		Blinding2: restBlinding,
		Blinding3: secret,
	})
	if request.SumBalanceProof, err = sumProof.MarshalBinary(); err != nil {
		return nil, fmt.Errorf("voter.Vote: sum proof: %w", err)
	}

	values = zk.AlignToPow2(values, 0)
	blindings = zk.AlignToPow2(blindings, group.NewScalar())
	rangeProof, _, err := zkrange.ProveBatch(pp, values, blindings, poll)
	if err != nil {
		return nil, fmt.Errorf("voter.Vote: range proof: %w", err)
	}
	if request.RangeProof, err = rangeProof.MarshalBinary(); err != nil {
		return nil, fmt.Errorf("voter.Vote: range proof: %w", err)
	}

	return request, nil
}
