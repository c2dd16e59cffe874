package bft

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/tributary-network/tributary/lib"
)

/*
	This package declares the plug-in contract a generic BFT consensus engine consumes from
	the application side. The engine owns rounds, votes, and quorum certificates; the
	application hands it a signing identity, a signature scheme, a weights table with a
	deterministic proposer schedule, and a network object that validates and commits the
	blocks the committee agrees on. One concrete implementation of the bundle exists per
	tributary chain (see the tributary package)
*/

// BlockNumber is the height of a block within one chain
type BlockNumber uint64

// RoundNumber is the engine's retry counter within one height
type RoundNumber uint32

// ValidatorID is the 32 byte group element encoding serving as both the public key
// and the engine-level identity of a committee member
type ValidatorID [32]byte

// String() returns the hex form of the id
func (v ValidatorID) String() string { return hex.EncodeToString(v[:]) }

// Commit is the finalized aggregate attestation accompanying a committed block; the
// engine verified it before handing it over, so this layer carries it for bookkeeping
// without re-verifying
type Commit struct {
	EndTime    uint64        `json:"endTime"`    // the engine's end time of the commit round
	Validators []ValidatorID `json:"validators"` // the committee members whose signatures are included
	Signature  [][]byte      `json:"signature"`  // the aggregate signature over the commit, positionally matched to Validators
}

// SignerI is the engine's handle to the local validator's signing identity
type SignerI interface {
	// ValidatorID() returns the validator's current id; ok is false if the signer does
	// not presently hold a valid key (not a committee member, or the session ended)
	ValidatorID() (id ValidatorID, ok bool)
	// Sign() produces a 64 byte signature over the message
	Sign(msg []byte) ([]byte, lib.ErrorI)
}

// SignatureSchemeI verifies individual and aggregate signatures for the engine
type SignatureSchemeI interface {
	// Verify() reports whether the signature over the message is valid for the member id;
	// never errors, an unknown member or malformed signature simply reports false
	Verify(id ValidatorID, msg, sig []byte) bool
	// Aggregate() combines individual signatures into one aggregate
	Aggregate(sigs [][]byte) [][]byte
	// VerifyAggregate() reports whether every signer's constituent signature verifies
	VerifyAggregate(ids []ValidatorID, msg []byte, aggregate [][]byte) bool
}

// WeightsI exposes the weighted membership table and the proposer schedule
type WeightsI interface {
	// TotalWeight() is the sum of all member weights, used for quorum thresholds
	TotalWeight() uint64
	// Weight() looks up a member's weight; errors on a non-member
	Weight(id ValidatorID) (uint64, lib.ErrorI)
	// MustWeight() looks up a member's weight; panics on a non-member, which is a
	// programming contract violation by the caller, never a zero value
	MustWeight(id ValidatorID) uint64
	// Proposer() deterministically selects the proposer for a height and round
	Proposer(block BlockNumber, round RoundNumber) ValidatorID
}

// BlockI is the engine-transport form of a block: an opaque payload with a
// deterministic identity hash
type BlockI interface {
	// ID() is the deterministic hash identity of the block
	ID() [32]byte
	// Bytes() is the serialized payload
	Bytes() []byte
}

// NetworkI is the full application-side contract the engine drives; the engine invokes
// these sequentially per round for one chain
type NetworkI interface {
	// Signer() returns the local signing identity
	Signer() SignerI
	// SignatureScheme() returns the committee signature verifier
	SignatureScheme() SignatureSchemeI
	// Weights() returns the weighted membership and proposer schedule
	Weights() WeightsI
	// BlockProcessingTime() is the static expected block processing duration used by
	// the engine to size round timeouts
	BlockProcessingTime() time.Duration
	// LatencyTime() is the static expected network latency duration used by the engine
	// to size round timeouts
	LatencyTime() time.Duration
	// Broadcast() disseminates a signed consensus message to peers, fire and forget
	Broadcast(ctx context.Context, msg []byte) lib.ErrorI
	// Slash() reports detected misbehavior of a committee member
	Slash(id ValidatorID)
	// Validate() checks an engine-proposed block before voting; a temporal error means
	// 'not yet' (decline to vote this round), a fatal error means 'never'
	Validate(ctx context.Context, block BlockI) lib.ErrorI
	// AddBlock() commits a finalized block and its commit attestation to the ledger,
	// returning the next proposal skeleton chained on the committed block; a
	// non-recoverable error means this validator must halt participation
	AddBlock(ctx context.Context, block BlockI, commit Commit) (next BlockI, err lib.ErrorI)
}
