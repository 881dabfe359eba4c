package acv

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/party"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
)

// SumShares returns ∑ᵢ shareᵢ⋅G2, rejecting an empty list or a repeated counter.
func SumShares(pp *pedersen.Parameters, shares []*CounterSystemParametersShare) (curve.Point, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no counter shares", ErrArgument)
	}
	ids := make([]party.ID, 0, len(shares))
	poll := pp.Group().NewPoint()
	for _, share := range shares {
		if share == nil {
			return nil, fmt.Errorf("%w: nil counter share", ErrDecode)
		}
		point, err := DecodePoint(pp.Group(), share.PollPointShare)
		if err != nil {
			return nil, fmt.Errorf("share of %q: %w", share.CounterID, err)
		}
		poll = poll.Add(point)
		ids = append(ids, share.CounterID)
	}
	if !party.NewIDSlice(ids).Valid() {
		return nil, fmt.Errorf("%w: counter ids must be non empty and unique", ErrArgument)
	}
	return poll, nil
}

// TallyPoints returns C1 - ∑ BlindingC2 = tally⋅G1 for the blank total and every candidate of voteSum,
// keyed like a VoteResultStorage.
func TallyPoints(pp *pedersen.Parameters, voteSum *VoteStorage, decryptedSum *DecryptedResultPartStorage) (map[string]curve.Point, error) {
	if voteSum == nil || voteSum.BlankBallot == nil {
		return nil, fmt.Errorf("%w: empty vote sum", ErrArgument)
	}
	if decryptedSum == nil || decryptedSum.BlankPart == nil {
		return nil, fmt.Errorf("%w: empty decrypted sum", ErrArgument)
	}

	group := pp.Group()
	out := make(map[string]curve.Point, len(voteSum.VotedBallots)+1)
	tallyPoint := func(key string, ballot *Ballot, part *CountingPart) error {
		if part == nil {
			return fmt.Errorf("%w: no decrypted part for %q", ErrArgument, key)
		}
		c, err := ballot.Ciphertext(group)
		if err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
		blindingC2, err := DecodePoint(group, part.BlindingC2)
		if err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
		out[key] = c.C1.Sub(blindingC2)
		return nil
	}

	if err := tallyPoint(TotalBallotsKey, voteSum.BlankBallot, decryptedSum.BlankPart); err != nil {
		return nil, err
	}
	for _, name := range SortedCandidates(voteSum.VotedBallots) {
		if name == TotalBallotsKey {
			return nil, fmt.Errorf("%w: candidate named %q", ErrArgument, name)
		}
		if err := tallyPoint(name, voteSum.VotedBallots[name], decryptedSum.CandidateParts[name]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
