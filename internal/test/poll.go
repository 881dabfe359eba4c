package test

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/party"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pool"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv/coordinator"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv/counter"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv/verifier"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv/voter"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/sync/errgroup"
)

// Poll holds every principal of a poll in a single process.
type Poll struct {
	Pedersen       *pedersen.Parameters
	Coordinator    *coordinator.Coordinator
	CounterIDs     party.IDSlice
	CounterSecrets map[party.ID]curve.Scalar
	Shares         map[party.ID]*acv.CounterSystemParametersShare
	Params         *acv.SystemParameters
}

// NewPoll creates counters with fresh secrets and a coordinator, and publishes the system parameters.
func NewPoll(mode acv.Mode, candidates []string, counters int, pl *pool.Pool) (*Poll, error) {
	pp := pedersen.Default()
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	c, err := coordinator.New(coordinator.Config{
		Pedersen:   pp,
		SigningKey: key,
		Pool:       pl,
	})
	if err != nil {
		return nil, err
	}

	p := &Poll{
		Pedersen:       pp,
		Coordinator:    c,
		CounterIDs:     CounterIDs(counters),
		CounterSecrets: make(map[party.ID]curve.Scalar, counters),
		Shares:         make(map[party.ID]*acv.CounterSystemParametersShare, counters),
	}
	for _, id := range p.CounterIDs {
		secret := counter.MakeCounterSecret(pp)
		p.CounterSecrets[id] = secret
		p.Shares[id] = counter.MakeSystemParametersShare(pp, id, secret)
	}
	if p.Params, err = c.MakeSystemParameters(mode, candidates, p.ShareList()); err != nil {
		return nil, err
	}
	return p, nil
}

// ShareList returns the counter shares in counter order.
func (p *Poll) ShareList() []*acv.CounterSystemParametersShare {
	shares := make([]*acv.CounterSystemParametersShare, 0, len(p.CounterIDs))
	for _, id := range p.CounterIDs {
		shares = append(shares, p.Shares[id])
	}
	return shares
}

// Register creates a voter and certifies it with weight.
func (p *Poll) Register(weight uint32) (curve.Scalar, *acv.RegistrationResponse, error) {
	secret := voter.MakeVoterSecret(p.Pedersen)
	request, err := voter.MakeRegistrationRequest(p.Pedersen, secret, p.Params)
	if err != nil {
		return nil, nil, err
	}
	response, err := p.Coordinator.CertifyBoundedVoter(weight, request)
	if err != nil {
		return nil, nil, err
	}
	ok, err := voter.VerifyBlankBallot(p.Pedersen, request, response)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, fmt.Errorf("test: blank ballot does not match the registration request")
	}
	return secret, response, nil
}

// CountAll runs every counter concurrently, verifies each part and folds them into a single sum.
func (p *Poll) CountAll(voteSum *acv.VoteStorage) (*acv.DecryptedResultPartStorage, error) {
	parts := make([]*acv.DecryptedResultPartStorage, len(p.CounterIDs))

	var eg errgroup.Group
	for i, id := range p.CounterIDs {
		i, id := i, id
		eg.Go(func() error {
			part, err := counter.Count(p.Pedersen, id, p.CounterSecrets[id], voteSum)
			if err != nil {
				return err
			}
			if err = verifier.VerifyCountRequest(p.Pedersen, p.Params, voteSum, p.Shares[id], part); err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	decryptedSum := &acv.DecryptedResultPartStorage{}
	for _, part := range parts {
		if err := p.Coordinator.AggregateDecryptedPartSum(p.Params, part, decryptedSum); err != nil {
			return nil, err
		}
	}
	return decryptedSum, nil
}
