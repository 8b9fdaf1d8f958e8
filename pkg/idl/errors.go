package idl

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidProgramID indicates the provided program identity is not a
	// well-formed ed25519 public key.
	ErrInvalidProgramID = errors.New("invalid program id")

	// ErrDerivationExhausted indicates no off-curve base address exists for
	// the program within the bump search space.
	ErrDerivationExhausted = errors.New("idl address derivation exhausted")

	// ErrIdlNotFound indicates the program has no idl account on chain.
	ErrIdlNotFound = errors.New("idl account not found")

	// ErrTruncatedAccount indicates the account data is smaller than the
	// fixed idl account header.
	ErrTruncatedAccount = errors.New("account data too small for idl header")

	// ErrPayloadLengthMismatch indicates the declared payload length does
	// not fit within the account data.
	ErrPayloadLengthMismatch = errors.New("idl payload length mismatch")

	// ErrCorruptPayload indicates the payload could not be decoded by any
	// supported compression format.
	ErrCorruptPayload = errors.New("corrupt idl payload")

	// ErrDecompressedTooLarge indicates the payload inflates beyond the
	// configured size limit.
	ErrDecompressedTooLarge = errors.New("decompressed idl exceeds size limit")

	// ErrMalformedJson indicates the payload is not valid JSON.
	ErrMalformedJson = errors.New("idl document is not valid json")

	// ErrUnrecognizedSchema indicates the document is valid JSON but matches
	// neither the current nor the legacy idl layout.
	ErrUnrecognizedSchema = errors.New("unrecognized idl schema")

	// ErrSourceUnavailable indicates the idl source could not be reached or
	// read at all.
	ErrSourceUnavailable = errors.New("idl source unavailable")
)
