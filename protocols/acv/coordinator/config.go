package coordinator

import (
	"errors"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pedersen"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/pool"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/rs/zerolog"
)

// Config holds everything a Coordinator needs.
type Config struct {
	// Pedersen holds the commitment bases; pedersen.Default() is used when nil.
	Pedersen *pedersen.Parameters
	// SigningKey certifies blank ballots.
	SigningKey *secp256k1.PrivateKey
	// Logger receives debug events; zerolog.Nop() is used when nil.
	Logger *zerolog.Logger
	// Pool runs the tally searches; a nil Pool searches on the calling goroutine.
	Pool *pool.Pool
}

var ErrMissingSigningKey = errors.New("coordinator: missing signing key")

func (c Config) validate() error {
	if c.SigningKey == nil {
		return ErrMissingSigningKey
	}
	if c.Pedersen != nil {
		if err := pedersen.ValidateParameters(c.Pedersen.G1(), c.Pedersen.G2()); err != nil {
			return err
		}
	}
	return nil
}
