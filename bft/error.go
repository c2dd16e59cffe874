package bft

import (
	"fmt"

	"github.com/tributary-network/tributary/lib"
)

func ErrTemporalBlock() lib.ErrorI {
	return lib.NewError(lib.CodeTemporalBlock, lib.ConsensusModule, "block references state this validator has not yet received; retry later")
}

func ErrFatalBlock(reason string) lib.ErrorI {
	return lib.NewError(lib.CodeFatalBlock, lib.ConsensusModule, fmt.Sprintf("block can never be valid: %s", reason))
}

// IsTemporal() reports whether a validation error means 'not yet' rather than 'never'
func IsTemporal(err lib.ErrorI) bool {
	return err != nil && err.Module() == lib.ConsensusModule && err.Code() == lib.CodeTemporalBlock
}

// IsFatal() reports whether a validation error means the block must never be accepted
func IsFatal(err lib.ErrorI) bool {
	return err != nil && err.Module() == lib.ConsensusModule && err.Code() == lib.CodeFatalBlock
}
