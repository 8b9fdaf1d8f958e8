package idl

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/periscope/pkg/solana"
)

// IdlSeed is the seed Anchor uses to derive a program's idl account.
const IdlSeed = "anchor:idl"

// AccountAddress derives the deterministic address of the account holding a
// program's idl.
//
// The derivation is the one Anchor performs on publish: first the program's
// base signer address is found with an empty seed list, then the idl address
// is created from that base with the "anchor:idl" seed and the program as
// owner. The result is a pure function of the program id.
func AccountAddress(program ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(program) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(ErrInvalidProgramID, "expected %d byte key, got %d", ed25519.PublicKeySize, len(program))
	}

	base, err := solana.FindProgramAddress(program)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find base address")
	}
	if base == nil {
		return nil, errors.Wrap(ErrDerivationExhausted, "no off-curve base address for program")
	}

	address, err := solana.CreateWithSeed(base, IdlSeed, program)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create idl address")
	}

	return address, nil
}
