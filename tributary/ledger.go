package tributary

import (
	"context"

	"github.com/tributary-network/tributary/lib"
)

/*
	The two entry points this layer consumes from the external ledger, and the transport
	hook it delegates broadcasts to. The ledger owns transaction semantics and storage;
	the adapter only needs its faults classified: ErrMissingProvided (temporal, the block
	may become valid once the referenced transaction arrives via gossip) versus everything
	else (structural, the block must never be accepted)
*/

// LedgerI is the external ordered ledger of one tributary chain; the adapter is its
// exclusive writer, the engine's sequencing serializes all calls per chain
type LedgerI interface {
	// VerifyBlock() checks a decoded block without committing it
	VerifyBlock(b *Block) lib.ErrorI
	// AddBlock() commits a decoded block, advancing ledger state
	AddBlock(b *Block) lib.ErrorI
}

// TransportI disseminates signed consensus messages to peers, fire and forget
type TransportI interface {
	Broadcast(ctx context.Context, msg []byte) lib.ErrorI
}
