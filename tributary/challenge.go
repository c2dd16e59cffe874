package tributary

import (
	"encoding/hex"

	"filippo.io/edwards25519"

	"github.com/tributary-network/tributary/lib/crypto"
)

const (
	// fixed transcript domain labels; changing either is a consensus break
	challengeDomain = "Tributary Chain Consensus Message"
	nonceDomain     = "Tributary Chain Consensus Nonce"
)

// ChainID is the fixed 32 byte genesis value identifying one tributary instance; every
// challenge and validator set is scoped to exactly one ChainID so that keys and
// signatures cannot be replayed across chains
type ChainID [32]byte

// String() returns the hex form of the chain id
func (c ChainID) String() string { return hex.EncodeToString(c[:]) }

// challenge() is the Fiat-Shamir transform binding the chain identity, the signer's
// public key, the nonce commitment, and the message into a uniformly distributed scalar
func challenge(chain ChainID, key [32]byte, nonceCommit, msg []byte) *edwards25519.Scalar {
	t := crypto.NewTranscript(challengeDomain)
	t.Append("genesis", chain[:])
	t.Append("key", key[:])
	t.Append("nonce", nonceCommit)
	t.Append("message", msg)
	return t.ChallengeScalar("schnorr")
}
