package tributary

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/tributary-network/tributary/bft"
	"github.com/tributary-network/tributary/lib"
)

/*
	Network composes the Signer, the ValidatorSet, the external ledger, and the external
	transport into the full application-side contract the consensus engine drives for one
	tributary chain. The engine invokes these operations sequentially per round; each
	chain owns its own Network and no state is shared between chains
*/

// Network is the block adapter bridging engine-agreed blocks into the ledger
type Network struct {
	chain      ChainID
	signer     *Signer
	validators *ValidatorSet
	ledger     LedgerI
	transport  TransportI
	config     lib.ConsensusConfig
	log        lib.LoggerI

	// the engine may report evidence from a different goroutine than the block flow
	mu      sync.Mutex
	slashed []bft.ValidatorID
}

var _ bft.NetworkI = &Network{}

// NewNetwork() assembles the adapter for one chain instance
func NewNetwork(signer *Signer, validators *ValidatorSet, ledger LedgerI, transport TransportI, config lib.Config, log lib.LoggerI) *Network {
	return &Network{
		chain:      validators.ChainID(),
		signer:     signer,
		validators: validators,
		ledger:     ledger,
		transport:  transport,
		config:     config.ConsensusConfig,
		log:        log,
	}
}

// Signer() returns the local signing identity handle
func (n *Network) Signer() bft.SignerI { return n.signer }

// SignatureScheme() returns the committee signature verifier handle
func (n *Network) SignatureScheme() bft.SignatureSchemeI { return n.validators }

// Weights() returns the weighted membership and proposer schedule handle
func (n *Network) Weights() bft.WeightsI { return n.validators }

// BlockProcessingTime() is the static expected block processing duration
func (n *Network) BlockProcessingTime() time.Duration { return n.config.BlockProcessingTime() }

// LatencyTime() is the static expected network latency duration
func (n *Network) LatencyTime() time.Duration { return n.config.LatencyTime() }

// Broadcast() hands a signed consensus message to the external transport
func (n *Network) Broadcast(ctx context.Context, msg []byte) lib.ErrorI {
	if n.transport == nil {
		return ErrTransportUnconfigured()
	}
	return n.transport.Broadcast(ctx, msg)
}

// Slash() records engine-detected misbehavior; penalty application is a ledger concern,
// this layer only reports and journals the event
func (n *Network) Slash(id bft.ValidatorID) {
	n.log.Errorf("validator %s was slashed on tributary %s", id, n.chain)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.slashed = append(n.slashed, id)
}

// Slashed() returns a copy of the journal of slashed validator ids
func (n *Network) Slashed() []bft.ValidatorID {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]bft.ValidatorID, len(n.slashed))
	copy(out, n.slashed)
	return out
}

// Validate() checks an engine-proposed block before voting: a payload that fails to
// deserialize can never be valid; a ledger fault is temporal only when the block
// references a provided transaction that has not yet arrived via gossip
func (n *Network) Validate(_ context.Context, block bft.BlockI) lib.ErrorI {
	b, err := ReadBlock(block.Bytes())
	if err != nil {
		return bft.ErrFatalBlock(err.Error())
	}
	if err = n.ledger.VerifyBlock(b); err != nil {
		if _, missing := MissingProvidedHash(err); missing {
			return bft.ErrTemporalBlock()
		}
		return bft.ErrFatalBlock(err.Error())
	}
	return nil
}

// AddBlock() commits a finalized block to the ledger. A missing provided transaction
// triggers a fixed-interval wait and a retry of the same block, on the expectation that
// the transaction arrives from peers; any other ledger fault means the committee
// accepted a block this validator's ledger rejects, a safety disagreement with no
// legitimate recovery, so a non-recoverable error tells the supervisor to halt this
// chain's participation. The commit was verified by the engine and is carried for
// bookkeeping only. On success the next proposal skeleton, chained on the committed
// block, is handed back to the engine
func (n *Network) AddBlock(ctx context.Context, block bft.BlockI, _ bft.Commit) (bft.BlockI, lib.ErrorI) {
	b, parseErr := ReadBlock(block.Bytes())
	if parseErr != nil {
		// only validated blocks may reach commit; an undecodable one here is a
		// design-level invariant violation, not a recoverable condition
		n.log.Errorf("undecodable block reached commit on tributary %s: %s", n.chain, parseErr.Error())
		return nil, ErrInvalidBlockAtCommit(n.chain)
	}
	blockID := b.Hash()
	wait := n.config.ProvidedRetryWait()
	policy := backoff.WithContext(backoff.NewConstantBackOff(wait), ctx)
	err := backoff.Retry(func() error {
		if err := n.ledger.AddBlock(b); err != nil {
			if hash, missing := MissingProvidedHash(err); missing {
				n.log.Errorf("missing provided transaction %x which other validators on tributary %s had, retrying in %s", hash, n.chain, wait)
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}, policy)
	switch {
	case err == nil:
		n.log.Infof("added block %x to tributary %s", blockID, n.chain)
		return WrapBlock(NewBlock(blockID, nil, nil)), nil
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		// shutdown interrupted the provided-transaction wait; the block is not
		// committed and may be re-attempted after restart
		return nil, ErrAddBlockInterrupted(err)
	default:
		n.log.Errorf("validators added a block to tributary %s that the local ledger rejects", n.chain)
		return nil, ErrSafetyViolation(n.chain, blockID[:], err)
	}
}
