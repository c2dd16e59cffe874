package tributary

import (
	"encoding/hex"
	"fmt"

	"github.com/tributary-network/tributary/lib"
)

func ErrEmptyValidatorSet() lib.ErrorI {
	return lib.NewError(lib.CodeEmptyValidatorSet, lib.TributaryModule, "validator set has no members")
}

func ErrZeroWeight(id []byte) lib.ErrorI {
	return lib.NewError(lib.CodeZeroWeight, lib.TributaryModule, fmt.Sprintf("validator %s has zero weight", hex.EncodeToString(id)))
}

func ErrDuplicateValidator(id []byte) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateValidator, lib.TributaryModule, fmt.Sprintf("validator %s appears twice in the set", hex.EncodeToString(id)))
}

func ErrInvalidValidatorKey(id []byte, err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidValidatorKey, lib.TributaryModule, fmt.Sprintf("validator key %s is not a valid group element: %s", hex.EncodeToString(id), err.Error()))
}

func ErrValidatorNotInSet(id []byte) lib.ErrorI {
	return lib.NewError(lib.CodeValidatorNotInSet, lib.TributaryModule, fmt.Sprintf("validator %s is not in the set", hex.EncodeToString(id)))
}

func ErrMalformedBlock(reason string) lib.ErrorI {
	return lib.NewError(lib.CodeMalformedBlock, lib.TributaryModule, fmt.Sprintf("malformed block payload: %s", reason))
}

func ErrSignerClosed() lib.ErrorI {
	return lib.NewError(lib.CodeSignerClosed, lib.TributaryModule, "signer secret has been wiped; the participation session is over")
}

func ErrInvalidSecretKey(err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidSecretKey, lib.TributaryModule, fmt.Sprintf("invalid signer secret key: %s", err.Error()))
}

func ErrZeroNonce() lib.ErrorI {
	return lib.NewError(lib.CodeZeroNonce, lib.TributaryModule, "transcript derived a zero nonce; signing with it would leak the secret key, halting")
}

func ErrNonceHygiene() lib.ErrorI {
	return lib.NewError(lib.CodeNonceHygiene, lib.TributaryModule, "nonce buffer survived its wipe; halting")
}

func ErrInvalidBlockAtCommit(chain ChainID) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidBlockAtCommit, lib.TributaryModule, fmt.Sprintf("a block that fails to deserialize reached commit on tributary %s; only validated blocks may be committed, operator intervention required", chain))
}

func ErrSafetyViolation(chain ChainID, blockID []byte, err error) lib.ErrorI {
	return lib.NewError(lib.CodeSafetyViolation, lib.TributaryModule, fmt.Sprintf("validators committed block %s to tributary %s but the local ledger rejects it (%s); halting rather than diverging", hex.EncodeToString(blockID), chain, err.Error()))
}

func ErrAddBlockInterrupted(err error) lib.ErrorI {
	return lib.NewError(lib.CodeAddBlockInterrupted, lib.TributaryModule, fmt.Sprintf("block commitment interrupted before completion: %s", err.Error()))
}

func ErrTransportUnconfigured() lib.ErrorI {
	return lib.NewError(lib.CodeTransportUnconfigured, lib.TributaryModule, "no transport configured for broadcast")
}

// MissingProvidedError is the temporal ledger fault: the block references a provided
// transaction this validator has not yet received via gossip
type MissingProvidedError struct {
	Err    lib.Error
	TxHash [32]byte // the hash of the missing provided transaction
}

func (e *MissingProvidedError) Code() lib.ErrorCode     { return e.Err.Code() }
func (e *MissingProvidedError) Module() lib.ErrorModule { return e.Err.Module() }
func (e *MissingProvidedError) Error() string           { return e.Err.Error() }

func ErrMissingProvided(txHash [32]byte) lib.ErrorI {
	return &MissingProvidedError{
		Err:    *lib.NewError(lib.CodeMissingProvided, lib.TributaryModule, fmt.Sprintf("provided transaction %s has not yet arrived", hex.EncodeToString(txHash[:]))),
		TxHash: txHash,
	}
}

// MissingProvidedHash() extracts the missing transaction hash from a ledger fault,
// reporting ok=false for any other error
func MissingProvidedHash(err error) (hash [32]byte, ok bool) {
	e, isMissing := err.(*MissingProvidedError)
	if !isMissing {
		return [32]byte{}, false
	}
	return e.TxHash, true
}
