// Package verifier checks every public step of a poll.
//
// Checks only read their inputs; anybody holding the published records can run them.
package verifier

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/elgamal"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	zkbalance "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/balance"
	zkequality "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/equality"
	zkformat "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/format"
	zkrange "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/rangeproof"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/sync/errgroup"
)

// VerifySystemParameters recomputes the poll point from the published shares.
func VerifySystemParameters(pp *pedersen.Parameters, systemParams *acv.SystemParameters, shares []*acv.CounterSystemParametersShare) error {
	poll, err := systemParams.PollPointElement(pp.Group())
	if err != nil {
		return fmt.Errorf("verifier.VerifySystemParameters: %w", err)
	}
	expected, err := acv.SumShares(pp, shares)
	if err != nil {
		return fmt.Errorf("verifier.VerifySystemParameters: %w", err)
	}
	if !poll.Equal(expected) {
		return fmt.Errorf("verifier.VerifySystemParameters: %w: poll point is not the sum of the shares", acv.ErrVerification)
	}
	seen := make(map[string]bool, len(systemParams.Candidates))
	for _, name := range systemParams.Candidates {
		if name == "" || name == acv.TotalBallotsKey || seen[name] {
			return fmt.Errorf("verifier.VerifySystemParameters: %w: candidate %q is empty, reserved or repeated", acv.ErrVerification, name)
		}
		seen[name] = true
	}
	return nil
}

// VerifyCertification checks that the blank ballot was signed by the coordinator.
func VerifyCertification(signature []byte, blank *acv.Ballot, coordinatorKey *secp256k1.PublicKey) error {
	if len(signature) != params.BytesSignature {
		return fmt.Errorf("%w: signature length %d", acv.ErrDecode, len(signature))
	}
	recovered, _, err := ecdsa.RecoverCompact(signature, acv.BallotMessageHash(blank))
	if err != nil {
		return fmt.Errorf("%w: signature: %v", acv.ErrVerification, err)
	}
	if !recovered.IsEqual(coordinatorKey) {
		return fmt.Errorf("%w: blank ballot not signed by the coordinator", acv.ErrVerification)
	}
	return nil
}

type decodedVote struct {
	blank, rest *elgamal.Ciphertext
	candidates  []string
	ballots     map[string]*elgamal.Ciphertext
	formats     map[string]*zkformat.Proof
	sum         *zkbalance.Proof
	rangeProof  *zkrange.Proof
}

func decodeVoteRequest(group curve.Curve, systemParams *acv.SystemParameters, request *acv.VoteRequest) (*decodedVote, error) {
	if request == nil || request.Vote == nil {
		return nil, fmt.Errorf("%w: missing vote", acv.ErrDecode)
	}
	vote := request.Vote
	d := &decodedVote{
		candidates: acv.SortedCandidates(vote.VotedBallots),
		ballots:    make(map[string]*elgamal.Ciphertext, len(vote.VotedBallots)),
		formats:    make(map[string]*zkformat.Proof, len(vote.VotedBallots)),
		sum:        zkbalance.Empty(group),
		rangeProof: zkrange.Empty(group),
	}
	var err error
	if d.blank, err = vote.BlankBallot.Ciphertext(group); err != nil {
		return nil, fmt.Errorf("blank ballot: %w", err)
	}
	if d.rest, err = vote.RestBallot.Ciphertext(group); err != nil {
		return nil, fmt.Errorf("rest ballot: %w", err)
	}
	if len(request.BallotProofs) != len(vote.VotedBallots) {
		return nil, fmt.Errorf("%w: %d ballots but %d format proofs", acv.ErrVerification, len(vote.VotedBallots), len(request.BallotProofs))
	}
	for _, name := range d.candidates {
		if name == "" || name == acv.TotalBallotsKey {
			return nil, fmt.Errorf("%w: invalid candidate name %q", acv.ErrVerification, name)
		}
		if systemParams.Mode == acv.Listed && !systemParams.HasCandidate(name) {
			return nil, fmt.Errorf("%w: %w: %q", acv.ErrVerification, acv.ErrUnknownCandidate, name)
		}
		if d.ballots[name], err = vote.VotedBallots[name].Ciphertext(group); err != nil {
			return nil, fmt.Errorf("candidate %q: %w", name, err)
		}
		proofBytes, ok := request.BallotProofs[name]
		if !ok {
			return nil, fmt.Errorf("%w: no format proof for %q", acv.ErrVerification, name)
		}
		d.formats[name] = zkformat.Empty(group)
		if err = acv.DecodeProof(proofBytes, d.formats[name]); err != nil {
			return nil, fmt.Errorf("format proof of %q: %w", name, err)
		}
	}
	if err = acv.DecodeProof(request.SumBalanceProof, d.sum); err != nil {
		return nil, fmt.Errorf("sum proof: %w", err)
	}
	if err = acv.DecodeProof(request.RangeProof, d.rangeProof); err != nil {
		return nil, fmt.Errorf("range proof: %w", err)
	}
	return d, nil
}

// VerifyBoundedVoteRequest checks a vote: the certification of its blank ballot,
// the format of every candidate ballot, that all values are in range, and that
// the voted and rest values add up to the certified weight.
//
// The first failing check aborts with acv.ErrVerification.
func VerifyBoundedVoteRequest(pp *pedersen.Parameters, systemParams *acv.SystemParameters, request *acv.VoteRequest, coordinatorKey *secp256k1.PublicKey) error {
	group := pp.Group()
	poll, err := systemParams.PollPointElement(group)
	if err != nil {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w", err)
	}
	d, err := decodeVoteRequest(group, systemParams, request)
	if err != nil {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w", err)
	}

	if err = VerifyCertification(request.Vote.Signature, request.Vote.BlankBallot, coordinatorKey); err != nil {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w", err)
	}

	G1, G2 := pp.G1(), pp.G2()
	var eg errgroup.Group
	for _, name := range d.candidates {
		name := name
		eg.Go(func() error {
			public := zkformat.Public{Ballot: d.ballots[name], G1: G1, G2: G2, Poll: poll}
			if !d.formats[name].Verify(hash.New(), public) {
				return fmt.Errorf("%w: format proof of %q", acv.ErrVerification, name)
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w", err)
	}

	voted := elgamal.Empty(group)
	commitments := make([]curve.Point, 0, len(d.candidates)+1)
	for _, name := range d.candidates {
		voted = voted.Add(d.ballots[name])
		commitments = append(commitments, d.ballots[name].C1)
	}
	commitments = append(commitments, d.rest.C1)

	// the blindings of the candidate and rest ballots add up to the voter secret
	if !voted.C2.Add(d.rest.C2).Equal(d.blank.C2) {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w: ballot blindings do not match the blank ballot", acv.ErrVerification)
	}

	if !d.rangeProof.VerifyBatch(pp, zk.AlignToPow2(commitments, group.NewPoint()), poll) {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w: range proof", acv.ErrVerification)
	}

	sumPublic := zkbalance.Public{
		C1:           voted.C1,
		C2:           d.rest.C1,
		C3:           d.blank.C1,
		ValueBase:    G1,
		BlindingBase: poll,
	}
	if !d.sum.VerifySum(hash.New(), sumPublic) {
		return fmt.Errorf("verifier.VerifyBoundedVoteRequest: %w: sum proof", acv.ErrVerification)
	}
	return nil
}

// VerifyCountRequest checks the partial decryptions of a counter against its published share.
func VerifyCountRequest(pp *pedersen.Parameters, systemParams *acv.SystemParameters, voteSum *acv.VoteStorage, share *acv.CounterSystemParametersShare, part *acv.DecryptedResultPartStorage) error {
	group := pp.Group()
	if voteSum == nil || voteSum.BlankBallot == nil || part == nil || share == nil {
		return fmt.Errorf("verifier.VerifyCountRequest: %w: missing storage", acv.ErrDecode)
	}
	sharePoint, err := acv.DecodePoint(group, share.PollPointShare)
	if err != nil {
		return fmt.Errorf("verifier.VerifyCountRequest: share: %w", err)
	}
	if len(part.CandidateParts) != len(voteSum.VotedBallots) {
		return fmt.Errorf("verifier.VerifyCountRequest: %w: %d candidates but %d parts", acv.ErrVerification, len(voteSum.VotedBallots), len(part.CandidateParts))
	}

	G2 := pp.G2()
	check := func(key string, ballot *acv.Ballot, p *acv.CountingPart) error {
		if p == nil {
			return fmt.Errorf("%w: no part for %q", acv.ErrVerification, key)
		}
		if p.CounterID != share.CounterID {
			return fmt.Errorf("%w: part for %q comes from %q", acv.ErrVerification, key, p.CounterID)
		}
		c, err := ballot.Ciphertext(group)
		if err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
		blindingC2, err := acv.DecodePoint(group, p.BlindingC2)
		if err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
		proof := zkequality.Empty(group)
		if err = acv.DecodeProof(p.EqualityProof, proof); err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
		public := zkequality.Public{Base1: G2, Point1: sharePoint, Base2: c.C2, Point2: blindingC2}
		if !proof.Verify(hash.New(), public) {
			return fmt.Errorf("%w: equality proof for %q", acv.ErrVerification, key)
		}
		return nil
	}

	if err = check(acv.TotalBallotsKey, voteSum.BlankBallot, part.BlankPart); err != nil {
		return fmt.Errorf("verifier.VerifyCountRequest: %w", err)
	}
	for _, name := range acv.SortedCandidates(voteSum.VotedBallots) {
		if systemParams.Mode == acv.Listed && !systemParams.HasCandidate(name) {
			return fmt.Errorf("verifier.VerifyCountRequest: %w: %w: %q", acv.ErrVerification, acv.ErrUnknownCandidate, name)
		}
		if err = check(name, voteSum.VotedBallots[name], part.CandidateParts[name]); err != nil {
			return fmt.Errorf("verifier.VerifyCountRequest: %w", err)
		}
	}
	return nil
}

// VerifyVoteResult checks that every claimed tally t satisfies C1 - ∑ BlindingC2 = t⋅G1.
func VerifyVoteResult(pp *pedersen.Parameters, systemParams *acv.SystemParameters, voteSum *acv.VoteStorage, decryptedSum *acv.DecryptedResultPartStorage, result *acv.VoteResultStorage) error {
	points, err := acv.TallyPoints(pp, voteSum, decryptedSum)
	if err != nil {
		return fmt.Errorf("verifier.VerifyVoteResult: %w", err)
	}
	if result == nil || len(result.Result) != len(points) {
		return fmt.Errorf("verifier.VerifyVoteResult: %w: result does not cover every candidate", acv.ErrVerification)
	}

	group := pp.Group()
	G1 := pp.G1()
	for _, key := range acv.SortedCandidates(points) {
		if key != acv.TotalBallotsKey && systemParams.Mode == acv.Listed && !systemParams.HasCandidate(key) {
			return fmt.Errorf("verifier.VerifyVoteResult: %w: %w: %q", acv.ErrVerification, acv.ErrUnknownCandidate, key)
		}
		claimed, ok := result.Result[key]
		if !ok || claimed < 0 {
			return fmt.Errorf("verifier.VerifyVoteResult: %w: no valid tally for %q", acv.ErrVerification, key)
		}
		expected := group.NewScalar().SetUint64(uint64(claimed)).Act(G1)
		if !expected.Equal(points[key]) {
			return fmt.Errorf("verifier.VerifyVoteResult: %w: tally of %q", acv.ErrVerification, key)
		}
	}
	return nil
}
