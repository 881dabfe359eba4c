package voter_test

import (
	"fmt"
	"testing"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/test"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv/voter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyBlankBallot(t *testing.T) {
	poll, err := test.NewPoll(acv.Listed, []string{"a", "b"}, 2, nil)
	require.NoError(t, err)

	secret := voter.MakeVoterSecret(poll.Pedersen)
	request, err := voter.MakeRegistrationRequest(poll.Pedersen, secret, poll.Params)
	require.NoError(t, err)
	response, err := poll.Coordinator.CertifyBoundedVoter(42, request)
	require.NoError(t, err)

	ok, err := voter.VerifyBlankBallot(poll.Pedersen, request, response)
	require.NoError(t, err)
	assert.True(t, ok)

	response.VoterWeight = 43
	ok, err = voter.VerifyBlankBallot(poll.Pedersen, request, response)
	require.NoError(t, err)
	assert.False(t, ok, "weight differs from the certified ballot")

	other, err := voter.MakeRegistrationRequest(poll.Pedersen, voter.MakeVoterSecret(poll.Pedersen), poll.Params)
	require.NoError(t, err)
	response.VoterWeight = 42
	ok, err = voter.VerifyBlankBallot(poll.Pedersen, other, response)
	require.NoError(t, err)
	assert.False(t, ok, "ballot certified for another voter")

	response.Ballot = nil
	_, err = voter.VerifyBlankBallot(poll.Pedersen, request, response)
	assert.ErrorIs(t, err, acv.ErrDecode)
}

func TestVoteRejectsChoices(t *testing.T) {
	poll, err := test.NewPoll(acv.Listed, []string{"a", "b"}, 1, nil)
	require.NoError(t, err)
	secret, response, err := poll.Register(10)
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		choices []acv.Choice
		err     error
	}{
		"unknown":   {[]acv.Choice{{Candidate: "c", Value: 1}}, acv.ErrUnknownCandidate},
		"duplicate": {[]acv.Choice{{Candidate: "a", Value: 1}, {Candidate: "a", Value: 2}}, acv.ErrArgument},
		"empty":     {[]acv.Choice{{Candidate: "", Value: 1}}, acv.ErrArgument},
		"overspend": {[]acv.Choice{{Candidate: "a", Value: 6}, {Candidate: "b", Value: 5}}, acv.ErrArgument},
		"reserved":  {[]acv.Choice{{Candidate: acv.TotalBallotsKey, Value: 1}}, acv.ErrArgument},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := voter.Vote(poll.Pedersen, secret, tc.choices, response, poll.Params)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestVoteShape(t *testing.T) {
	poll, err := test.NewPoll(acv.Listed, []string{"a", "b", "c"}, 1, nil)
	require.NoError(t, err)
	secret, response, err := poll.Register(10)
	require.NoError(t, err)

	request, err := voter.Vote(poll.Pedersen, secret, []acv.Choice{
		{Candidate: "c", Value: 10},
		{Candidate: "a", Value: 0},
	}, response, poll.Params)
	require.NoError(t, err)

	assert.Len(t, request.Vote.VotedBallots, 2)
	assert.Len(t, request.BallotProofs, 2)
	assert.Equal(t, response.Signature, request.Vote.Signature)
	assert.Equal(t, response.Ballot, request.Vote.BlankBallot)
	assert.NotNil(t, request.Vote.RestBallot)
	assert.NotEmpty(t, request.RangeProof)
	assert.NotEmpty(t, request.SumBalanceProof)
}

func TestVoteUnlistedReservedName(t *testing.T) {
	poll, err := test.NewPoll(acv.Unlisted, nil, 2, nil)
	require.NoError(t, err)
	secret, response, err := poll.Register(10)
	require.NoError(t, err)

	_, err = voter.Vote(poll.Pedersen, secret, []acv.Choice{{Candidate: acv.TotalBallotsKey, Value: 1}}, response, poll.Params)
	assert.ErrorIs(t, err, acv.ErrArgument)
}

func TestVoteTooManyChoices(t *testing.T) {
	poll, err := test.NewPoll(acv.Unlisted, nil, 1, nil)
	require.NoError(t, err)
	secret, response, err := poll.Register(10)
	require.NoError(t, err)

	choices := make([]acv.Choice, params.MaxRangeBatch)
	for i := range choices {
		choices[i] = acv.Choice{Candidate: fmt.Sprintf("c%d", i)}
	}
	_, err = voter.Vote(poll.Pedersen, secret, choices, response, poll.Params)
	assert.ErrorIs(t, err, acv.ErrArgument)

	// one slot is left for the rest ballot
	request, err := voter.Vote(poll.Pedersen, secret, choices[:3], response, poll.Params)
	require.NoError(t, err)
	assert.Len(t, request.Vote.VotedBallots, 3)
}
