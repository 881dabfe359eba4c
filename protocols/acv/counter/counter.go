package counter

import (
	"crypto/rand"
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/party"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	zkequality "github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk/equality"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/protocols/acv"
)

// MakeCounterSecret samples the secret share of a counter.
func MakeCounterSecret(pp *pedersen.Parameters) curve.Scalar {
	return sample.Scalar(rand.Reader, pp.Group())
}

// MakeSystemParametersShare publishes secret⋅G2.
func MakeSystemParametersShare(pp *pedersen.Parameters, id party.ID, secret curve.Scalar) *acv.CounterSystemParametersShare {
	return &acv.CounterSystemParametersShare{
		CounterID:      id,
		PollPointShare: zk.EncodePoint(secret.Act(pp.G2())),
	}
}

// Count partially decrypts the blank total and every candidate of voteSum.
//
// Each part secret⋅C2 comes with a proof that log_G2(share) = log_C2(part).
func Count(pp *pedersen.Parameters, id party.ID, secret curve.Scalar, voteSum *acv.VoteStorage) (*acv.DecryptedResultPartStorage, error) {
	if id == "" {
		return nil, fmt.Errorf("counter.Count: %w: empty counter id", acv.ErrArgument)
	}
	if voteSum == nil || voteSum.BlankBallot == nil {
		return nil, fmt.Errorf("counter.Count: %w: empty vote sum", acv.ErrArgument)
	}
	group := pp.Group()
	G2 := pp.G2()
	share := secret.Act(G2)

	decrypt := func(ballot *acv.Ballot) (*acv.CountingPart, error) {
		c, err := ballot.Ciphertext(group)
		if err != nil {
			return nil, err
		}
		part := secret.Act(c.C2)
		proof := zkequality.NewProof(group, hash.New(), zkequality.Public{
			Base1:  G2,
			Point1: share,
			Base2:  c.C2,
			Point2: part,
		}, zkequality.Private{Secret: secret})
		proofBytes, err := proof.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return &acv.CountingPart{
			CounterID:     id,
			BlindingC2:    zk.EncodePoint(part),
			EqualityProof: proofBytes,
		}, nil
	}

	blank, err := decrypt(voteSum.BlankBallot)
	if err != nil {
		return nil, fmt.Errorf("counter.Count: blank ballot: %w", err)
	}
	result := &acv.DecryptedResultPartStorage{
		BlankPart:      blank,
		CandidateParts: make(map[string]*acv.CountingPart, len(voteSum.VotedBallots)),
	}
	for _, name := range acv.SortedCandidates(voteSum.VotedBallots) {
		if result.CandidateParts[name], err = decrypt(voteSum.VotedBallots[name]); err != nil {
			return nil, fmt.Errorf("counter.Count: candidate %q: %w", name, err)
		}
	}
	return result, nil
}
