package coordinator

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/elgamal"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pool"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/rs/zerolog"
)

// Coordinator publishes the poll parameters, certifies voters and computes the tally.
//
// It keeps no poll state: running sums are owned by the caller, who must fold
// each vote and each counter part at most once.
type Coordinator struct {
	pp   *pedersen.Parameters
	key  *secp256k1.PrivateKey
	log  zerolog.Logger
	pool *pool.Pool
}

func New(config Config) (*Coordinator, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("coordinator.New: %w", err)
	}
	pp := config.Pedersen
	if pp == nil {
		pp = pedersen.Default()
	}
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}
	return &Coordinator{
		pp:   pp,
		key:  config.SigningKey,
		log:  log,
		pool: config.Pool,
	}, nil
}

// PublicKey returns the key verifiers check certifications against.
func (c *Coordinator) PublicKey() *secp256k1.PublicKey {
	return c.key.PubKey()
}

// MakeSystemParameters sums the counter shares into the poll point.
//
// Candidates must be unique and differ from acv.TotalBallotsKey; a Listed poll needs at least one.
func (c *Coordinator) MakeSystemParameters(mode acv.Mode, candidates []string, shares []*acv.CounterSystemParametersShare) (*acv.SystemParameters, error) {
	if mode != acv.Listed && mode != acv.Unlisted {
		return nil, fmt.Errorf("coordinator.MakeSystemParameters: %w: mode %d", acv.ErrArgument, mode)
	}
	if mode == acv.Listed && len(candidates) == 0 {
		return nil, fmt.Errorf("coordinator.MakeSystemParameters: %w: listed poll without candidates", acv.ErrArgument)
	}
	seen := make(map[string]bool, len(candidates))
	for _, name := range candidates {
		if name == "" || seen[name] {
			return nil, fmt.Errorf("coordinator.MakeSystemParameters: %w: candidate %q is empty or repeated", acv.ErrArgument, name)
		}
		if name == acv.TotalBallotsKey {
			return nil, fmt.Errorf("coordinator.MakeSystemParameters: %w: candidate name %q is reserved", acv.ErrArgument, name)
		}
		seen[name] = true
	}

	poll, err := acv.SumShares(c.pp, shares)
	if err != nil {
		return nil, fmt.Errorf("coordinator.MakeSystemParameters: %w", err)
	}

	c.log.Debug().Stringer("mode", mode).Int("candidates", len(candidates)).Int("counters", len(shares)).
		Msg("system parameters created")
	return &acv.SystemParameters{
		Mode:       mode,
		Candidates: append([]string(nil), candidates...),
		PollPoint:  zk.EncodePoint(poll),
	}, nil
}

// CertifyBoundedVoter signs the blank ballot (s⋅PollPoint + weight⋅G1, s⋅G2).
func (c *Coordinator) CertifyBoundedVoter(weight uint32, request *acv.RegistrationRequest) (*acv.RegistrationResponse, error) {
	group := c.pp.Group()
	blindingPoll, err := acv.DecodePoint(group, request.BlindingPollPoint)
	if err != nil {
		return nil, fmt.Errorf("coordinator.CertifyBoundedVoter: blinding poll point: %w", err)
	}
	blindingG2, err := acv.DecodePoint(group, request.BlindingBasepointG2)
	if err != nil {
		return nil, fmt.Errorf("coordinator.CertifyBoundedVoter: blinding G2: %w", err)
	}

	w := group.NewScalar().SetUint64(uint64(weight))
	ballot := acv.EncodeBallot(&elgamal.Ciphertext{
		C1: blindingPoll.Add(w.Act(c.pp.G1())),
		C2: blindingG2,
	})
	signature := ecdsa.SignCompact(c.key, acv.BallotMessageHash(ballot), true)

	c.log.Debug().Uint32("weight", weight).Msg("voter certified")
	return &acv.RegistrationResponse{
		VoterWeight: weight,
		Ballot:      ballot,
		Signature:   signature,
	}, nil
}
