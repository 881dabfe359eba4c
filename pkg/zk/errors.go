package zk

import "errors"

var (
	// ErrArgument is returned when a prover is called with inputs it cannot prove anything about,
	// for instance lists of mismatched length.
	ErrArgument = errors.New("zk: invalid argument")
	// ErrFormat is returned when bytes cannot be decoded into a scalar, a point or a proof.
	// Verification is not even attempted in that case.
	ErrFormat = errors.New("zk: malformed encoding")
)
