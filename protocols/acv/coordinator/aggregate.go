package coordinator

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/elgamal"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/party"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
)

// fillVoteSum allocates the candidate map of sum, and gives every listed
// candidate missing from it a zero ballot.
func (c *Coordinator) fillVoteSum(params *acv.SystemParameters, sum *acv.VoteStorage) {
	if sum.VotedBallots == nil {
		sum.VotedBallots = make(map[string]*acv.Ballot, len(params.Candidates))
	}
	if params.Mode != acv.Listed {
		return
	}
	zero := acv.EncodeBallot(elgamal.Empty(c.pp.Group()))
	for _, name := range params.Candidates {
		if _, ok := sum.VotedBallots[name]; !ok {
			sum.VotedBallots[name] = zero
		}
	}
}

// AggregateVoteSumResponse adds the ballots of votePart into voteSum.
//
// The blank entry of voteSum accumulates blank - rest, the weight actually cast.
// An empty voteSum starts from zero ballots, one per listed candidate.
// Folding is not idempotent: adding the same part twice counts it twice.
// voteSum is only modified if votePart and voteSum decode entirely.
func (c *Coordinator) AggregateVoteSumResponse(params *acv.SystemParameters, votePart *acv.VoteStorage, voteSum *acv.VoteStorage) error {
	group := c.pp.Group()
	if votePart == nil || voteSum == nil {
		return fmt.Errorf("coordinator.AggregateVoteSumResponse: %w: nil storage", acv.ErrArgument)
	}

	blank, err := votePart.BlankBallot.Ciphertext(group)
	if err != nil {
		return fmt.Errorf("coordinator.AggregateVoteSumResponse: blank ballot: %w", err)
	}
	rest, err := votePart.RestBallot.Ciphertext(group)
	if err != nil {
		return fmt.Errorf("coordinator.AggregateVoteSumResponse: rest ballot: %w", err)
	}
	blankSum := elgamal.Empty(group)
	if voteSum.BlankBallot != nil {
		if blankSum, err = voteSum.BlankBallot.Ciphertext(group); err != nil {
			return fmt.Errorf("coordinator.AggregateVoteSumResponse: running blank ballot: %w", err)
		}
	}

	updated := make(map[string]*acv.Ballot, len(votePart.VotedBallots))
	for _, name := range acv.SortedCandidates(votePart.VotedBallots) {
		if name == "" || name == acv.TotalBallotsKey {
			return fmt.Errorf("coordinator.AggregateVoteSumResponse: %w: candidate name %q", acv.ErrArgument, name)
		}
		if params.Mode == acv.Listed && !params.HasCandidate(name) {
			return fmt.Errorf("coordinator.AggregateVoteSumResponse: %w: %q", acv.ErrUnknownCandidate, name)
		}
		ballot, err := votePart.VotedBallots[name].Ciphertext(group)
		if err != nil {
			return fmt.Errorf("coordinator.AggregateVoteSumResponse: candidate %q: %w", name, err)
		}
		current := elgamal.Empty(group)
		if b, ok := voteSum.VotedBallots[name]; ok {
			if current, err = b.Ciphertext(group); err != nil {
				return fmt.Errorf("coordinator.AggregateVoteSumResponse: running candidate %q: %w", name, err)
			}
		}
		updated[name] = acv.EncodeBallot(current.Add(ballot))
	}

	c.fillVoteSum(params, voteSum)
	voteSum.BlankBallot = acv.EncodeBallot(blankSum.Add(blank.Sub(rest)))
	for name, ballot := range updated {
		voteSum.VotedBallots[name] = ballot
	}
	c.log.Debug().Int("candidates", len(updated)).Msg("vote folded")
	return nil
}

// AggregateDecryptedPartSum adds the partial decryptions of a counter into decryptedSum.
//
// A counter already folded into decryptedSum is rejected with acv.ErrArgument.
func (c *Coordinator) AggregateDecryptedPartSum(params *acv.SystemParameters, part *acv.DecryptedResultPartStorage, decryptedSum *acv.DecryptedResultPartStorage) error {
	group := c.pp.Group()
	if part == nil || part.BlankPart == nil || decryptedSum == nil {
		return fmt.Errorf("coordinator.AggregateDecryptedPartSum: %w: nil storage", acv.ErrArgument)
	}
	id := part.BlankPart.CounterID
	if id == "" {
		return fmt.Errorf("coordinator.AggregateDecryptedPartSum: %w: missing counter id", acv.ErrArgument)
	}
	counters := party.NewIDSlice(decryptedSum.Counters)
	if counters.Contains(id) {
		return fmt.Errorf("coordinator.AggregateDecryptedPartSum: %w: counter %q already folded", acv.ErrArgument, id)
	}

	if err := sameCandidates(params, part, decryptedSum); err != nil {
		return fmt.Errorf("coordinator.AggregateDecryptedPartSum: counter %q: %w", id, err)
	}

	blank, err := addPart(group, decryptedSum.BlankPart, part.BlankPart)
	if err != nil {
		return fmt.Errorf("coordinator.AggregateDecryptedPartSum: blank part: %w", err)
	}
	updated := make(map[string]*acv.CountingPart, len(part.CandidateParts))
	for _, name := range acv.SortedCandidates(part.CandidateParts) {
		if params.Mode == acv.Listed && !params.HasCandidate(name) {
			return fmt.Errorf("coordinator.AggregateDecryptedPartSum: %w: %q", acv.ErrUnknownCandidate, name)
		}
		if part.CandidateParts[name] == nil || part.CandidateParts[name].CounterID != id {
			return fmt.Errorf("coordinator.AggregateDecryptedPartSum: %w: candidate %q from another counter", acv.ErrArgument, name)
		}
		if updated[name], err = addPart(group, decryptedSum.CandidateParts[name], part.CandidateParts[name]); err != nil {
			return fmt.Errorf("coordinator.AggregateDecryptedPartSum: candidate %q: %w", name, err)
		}
	}

	decryptedSum.BlankPart = blank
	if decryptedSum.CandidateParts == nil {
		decryptedSum.CandidateParts = make(map[string]*acv.CountingPart, len(updated))
	}
	for name, p := range updated {
		decryptedSum.CandidateParts[name] = p
	}
	decryptedSum.Counters = party.NewIDSlice(append(counters, id))
	c.log.Debug().Str("counter", string(id)).Int("candidates", len(updated)).Msg("decrypted part folded")
	return nil
}

// sameCandidates checks that part covers the candidates of the parts folded so far,
// and every listed candidate.
func sameCandidates(params *acv.SystemParameters, part, decryptedSum *acv.DecryptedResultPartStorage) error {
	if params.Mode == acv.Listed {
		for _, name := range params.Candidates {
			if _, ok := part.CandidateParts[name]; !ok {
				return fmt.Errorf("%w: no part for candidate %q", acv.ErrArgument, name)
			}
		}
	}
	if decryptedSum.BlankPart == nil {
		return nil
	}
	if len(part.CandidateParts) != len(decryptedSum.CandidateParts) {
		return fmt.Errorf("%w: %d candidates, %d folded so far", acv.ErrArgument, len(part.CandidateParts), len(decryptedSum.CandidateParts))
	}
	for name := range part.CandidateParts {
		if _, ok := decryptedSum.CandidateParts[name]; !ok {
			return fmt.Errorf("%w: candidate %q was not folded so far", acv.ErrArgument, name)
		}
	}
	return nil
}

// addPart returns the aggregate part sum + part; a nil sum counts as the identity.
func addPart(group curve.Curve, sum, part *acv.CountingPart) (*acv.CountingPart, error) {
	total := group.NewPoint()
	if sum != nil {
		current, err := acv.DecodePoint(group, sum.BlindingC2)
		if err != nil {
			return nil, err
		}
		total = current
	}
	point, err := acv.DecodePoint(group, part.BlindingC2)
	if err != nil {
		return nil, err
	}
	return &acv.CountingPart{BlindingC2: zk.EncodePoint(total.Add(point))}, nil
}
