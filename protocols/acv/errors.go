package acv

import (
	"errors"
	"fmt"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
)

var (
	// ErrArgument reports a misuse by the caller, such as spending more than the certified weight.
	ErrArgument = fmt.Errorf("acv: %w", zk.ErrArgument)
	// ErrDecode reports bytes which do not decode to a scalar, a point, a proof or a record.
	ErrDecode = fmt.Errorf("acv: %w", zk.ErrFormat)
	// ErrVerification reports a well formed proof or signature which fails its check.
	ErrVerification = errors.New("acv: verification failed")
	// ErrTallyOutOfRange is returned when a tally has no match in [0, maxNumber].
	ErrTallyOutOfRange = errors.New("acv: tally out of range")
	// ErrUnknownCandidate is returned for a candidate missing from a listed poll.
	ErrUnknownCandidate = errors.New("acv: unknown candidate")
)
