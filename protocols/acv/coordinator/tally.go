package coordinator

import (
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pool"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
)

// discreteLog returns i ∈ [0, maxNumber] such that i⋅base = target.
func discreteLog(group curve.Curve, base, target curve.Point, maxNumber uint64) (int64, bool) {
	current := group.NewPoint()
	for i := uint64(0); ; i++ {
		if current.Equal(target) {
			return int64(i), true
		}
		if i == maxNumber {
			return 0, false
		}
		current = current.Add(base)
	}
}

// FinalizeVoteResult recovers every tally by searching [0, maxNumber].
//
// The searches run concurrently on the configured pool. A tally without a
// match fails the whole call with acv.ErrTallyOutOfRange.
func (c *Coordinator) FinalizeVoteResult(params *acv.SystemParameters, voteSum *acv.VoteStorage, decryptedSum *acv.DecryptedResultPartStorage, maxNumber uint64) (*acv.VoteResultStorage, error) {
	if maxNumber > 1<<62 {
		return nil, fmt.Errorf("coordinator.FinalizeVoteResult: %w: max number %d", acv.ErrArgument, maxNumber)
	}
	points, err := acv.TallyPoints(c.pp, voteSum, decryptedSum)
	if err != nil {
		return nil, fmt.Errorf("coordinator.FinalizeVoteResult: %w", err)
	}
	if params.Mode == acv.Listed {
		for name := range voteSum.VotedBallots {
			if !params.HasCandidate(name) {
				return nil, fmt.Errorf("coordinator.FinalizeVoteResult: %w: %q", acv.ErrUnknownCandidate, name)
			}
		}
	}

	keys := acv.SortedCandidates(points)
	type found struct {
		value int64
		ok    bool
	}
	G1 := c.pp.G1()
	results := pool.Parallelize(c.pool, len(keys), func(i int) found {
		value, ok := discreteLog(c.pp.Group(), G1, points[keys[i]], maxNumber)
		return found{value, ok}
	})

	result := &acv.VoteResultStorage{Result: make(map[string]int64, len(keys))}
	for i, key := range keys {
		if !results[i].ok {
			c.log.Debug().Str("key", key).Uint64("max", maxNumber).Msg("tally out of range")
			return nil, fmt.Errorf("coordinator.FinalizeVoteResult: %w: %q exceeds %d", acv.ErrTallyOutOfRange, key, maxNumber)
		}
		result.Result[key] = results[i].value
	}
	c.log.Debug().Int("entries", len(result.Result)).Msg("tally recovered")
	return result, nil
}
