// Package acv holds the records exchanged by the roles of an Anonymous Ciphertext Voting poll.
//
// A poll runs in four steps: counters publish shares of the poll point and the coordinator
// combines them into SystemParameters; voters register and get a blank ballot certified with
// their weight; voters split their weight among candidates in a VoteRequest which anybody can
// check; counters partially decrypt the aggregated ballots, and the coordinator recovers the tally.
//
// The roles live in the coordinator, voter, counter and verifier sub packages.
package acv

import (
	"sort"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/party"
	"golang.org/x/crypto/sha3"
)

// TotalBallotsKey is the result entry holding the total weight cast in a poll.
const TotalBallotsKey = "Wedpr_voting_total_ballots"

// Mode tells whether the candidates of a poll are fixed in advance.
type Mode uint8

const (
	// Listed polls only accept votes for the candidates in SystemParameters.
	Listed Mode = iota
	// Unlisted polls accept votes for any non empty candidate name.
	Unlisted
)

func (m Mode) String() string {
	switch m {
	case Listed:
		return "listed"
	case Unlisted:
		return "unlisted"
	default:
		return "unknown"
	}
}

// Ballot is the encoding of an elgamal.Ciphertext.
type Ballot struct {
	Ciphertext1 []byte `cbor:"1,keyasint"`
	Ciphertext2 []byte `cbor:"2,keyasint"`
}

// SystemParameters is published once per poll, and never modified.
type SystemParameters struct {
	Mode       Mode     `cbor:"1,keyasint"`
	Candidates []string `cbor:"2,keyasint"`
	// PollPoint = ∑ᵢ shareᵢ⋅G2
	PollPoint []byte `cbor:"3,keyasint"`
}

// HasCandidate returns true if name is one of the listed candidates.
func (p *SystemParameters) HasCandidate(name string) bool {
	for _, c := range p.Candidates {
		if c == name {
			return true
		}
	}
	return false
}

// CounterSystemParametersShare is the public share shareᵢ⋅G2 of a counter.
type CounterSystemParametersShare struct {
	CounterID      party.ID `cbor:"1,keyasint"`
	PollPointShare []byte   `cbor:"2,keyasint"`
}

// RegistrationRequest blinds the poll point and G2 with the voter secret s.
type RegistrationRequest struct {
	// BlindingPollPoint = s⋅PollPoint
	BlindingPollPoint []byte `cbor:"1,keyasint"`
	// BlindingBasepointG2 = s⋅G2
	BlindingBasepointG2 []byte `cbor:"2,keyasint"`
}

// RegistrationResponse is the certification of a voter's weight.
type RegistrationResponse struct {
	VoterWeight uint32 `cbor:"1,keyasint"`
	// Ballot = (weight⋅G1 + s⋅PollPoint, s⋅G2)
	Ballot *Ballot `cbor:"2,keyasint"`
	// Signature is a compact recoverable secp256k1 signature of BallotMessageHash(Ballot).
	Signature []byte `cbor:"3,keyasint"`
}

// Choice assigns part of a voter's weight to a candidate.
type Choice struct {
	Candidate string `cbor:"1,keyasint"`
	Value     uint32 `cbor:"2,keyasint"`
}

// VoteStorage is the ballot set of a single voter, or the coordinator's running sum of them.
//
// In a running sum, BlankBallot holds ∑(blank - rest), the weight actually cast,
// RestBallot and Signature are unused.
type VoteStorage struct {
	Signature    []byte             `cbor:"1,keyasint"`
	BlankBallot  *Ballot            `cbor:"2,keyasint"`
	RestBallot   *Ballot            `cbor:"3,keyasint"`
	VotedBallots map[string]*Ballot `cbor:"4,keyasint"`
}

// VoteRequest is a voter's ballot set together with the proofs of its validity.
type VoteRequest struct {
	Vote *VoteStorage `cbor:"1,keyasint"`
	// BallotProofs holds an encoded zkformat.Proof per candidate.
	BallotProofs map[string][]byte `cbor:"2,keyasint"`
	// RangeProof is an encoded zkrange.Proof over the candidate ballots, in SortedCandidates order, then the rest ballot.
	RangeProof []byte `cbor:"3,keyasint"`
	// SumBalanceProof is an encoded zkbalance.Proof that the voted and rest values add up to the weight.
	SumBalanceProof []byte `cbor:"4,keyasint"`
}

// CountingPart is the partial decryption secret⋅C2 of an aggregated ballot.
type CountingPart struct {
	CounterID  party.ID `cbor:"1,keyasint"`
	BlindingC2 []byte   `cbor:"2,keyasint"`
	// EqualityProof is an encoded zkequality.Proof; it is empty in an aggregate.
	EqualityProof []byte `cbor:"3,keyasint"`
}

// DecryptedResultPartStorage is the output of a counter, or the coordinator's running sum of them.
type DecryptedResultPartStorage struct {
	BlankPart      *CountingPart            `cbor:"1,keyasint"`
	CandidateParts map[string]*CountingPart `cbor:"2,keyasint"`
	// Counters lists the counters folded into an aggregate.
	Counters party.IDSlice `cbor:"3,keyasint"`
}

// VoteResultStorage is the final tally of a poll, including the TotalBallotsKey entry.
type VoteResultStorage struct {
	Result map[string]int64 `cbor:"1,keyasint"`
}

// BallotMessageHash returns keccak256(Ciphertext1 ∥ Ciphertext2), the message certified by the coordinator.
func BallotMessageHash(ballot *Ballot) []byte {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(ballot.Ciphertext1)
	_, _ = h.Write(ballot.Ciphertext2)
	return h.Sum(nil)
}

// SortedCandidates returns the candidates of ballots in lexicographic order,
// the order in which they enter a range proof.
func SortedCandidates[T any](ballots map[string]T) []string {
	names := make([]string, 0, len(ballots))
	for name := range ballots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
