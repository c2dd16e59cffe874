package tributary

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tributary-network/tributary/bft"
	"github.com/tributary-network/tributary/lib"
	"github.com/tributary-network/tributary/lib/crypto"
)

var _ LedgerI = &testLedger{}
var _ TransportI = &testTransport{}

// testChainID() builds a deterministic chain identity from a seed byte
func testChainID(seed byte) (chain ChainID) {
	for i := range chain {
		chain[i] = seed
	}
	return
}

// newTestSigner() samples a fresh signer for the chain
func newTestSigner(t *testing.T, chain ChainID) *Signer {
	secret, err := crypto.GenerateSecretScalar()
	require.NoError(t, err)
	return NewSigner(chain, secret)
}

// newTestCommittee() samples n signers and builds the matching validator set
func newTestCommittee(t *testing.T, chain ChainID, weights []uint64) (signers []*Signer, vs *ValidatorSet) {
	validators := make([]Validator, 0, len(weights))
	for _, weight := range weights {
		signer := newTestSigner(t, chain)
		id, ok := signer.ValidatorID()
		require.True(t, ok)
		signers = append(signers, signer)
		validators = append(validators, Validator{ID: id, Weight: weight})
	}
	vs, err := NewValidatorSet(chain, validators)
	require.NoError(t, err)
	return signers, vs
}

// testLedger is a scripted ledger: each call pops the next fault from its script and
// returns nil once the script is exhausted
type testLedger struct {
	verifyScript []lib.ErrorI
	addScript    []lib.ErrorI
	verifyCalls  int
	addCalls     int
	committed    []*Block
}

func (l *testLedger) VerifyBlock(b *Block) lib.ErrorI {
	l.verifyCalls++
	if len(l.verifyScript) != 0 {
		err := l.verifyScript[0]
		l.verifyScript = l.verifyScript[1:]
		return err
	}
	return nil
}

func (l *testLedger) AddBlock(b *Block) lib.ErrorI {
	l.addCalls++
	if len(l.addScript) != 0 {
		err := l.addScript[0]
		l.addScript = l.addScript[1:]
		if err != nil {
			return err
		}
	}
	l.committed = append(l.committed, b)
	return nil
}

// testTransport records broadcast messages
type testTransport struct {
	sync.Mutex
	messages [][]byte
}

func (tr *testTransport) Broadcast(_ context.Context, msg []byte) lib.ErrorI {
	tr.Lock()
	defer tr.Unlock()
	tr.messages = append(tr.messages, msg)
	return nil
}

// newTestNetwork() assembles an adapter over a single-member committee with a fast
// retry wait suitable for tests
func newTestNetwork(t *testing.T, ledger *testLedger, transport *testTransport) (*Network, []*Signer) {
	chain := testChainID(1)
	signers, vs := newTestCommittee(t, chain, []uint64{1, 1, 1, 1})
	config := lib.DefaultConfig()
	config.ProvidedRetryWaitMS = 10
	return NewNetwork(signers[0], vs, ledger, transport, config, lib.NewNullLogger()), signers
}

// newTestBlock() builds a decoded block with the given payload markers
func newTestBlock(parent byte, txs ...string) *Block {
	var parentHash [32]byte
	parentHash[0] = parent
	transactions := make([][]byte, 0, len(txs))
	for _, tx := range txs {
		transactions = append(transactions, []byte(tx))
	}
	return NewBlock(parentHash, nil, transactions)
}

// testValidatorID() builds a syntactically valid member id from a signer-less point
func testValidatorID(t *testing.T) bft.ValidatorID {
	secret, err := crypto.GenerateSecretScalar()
	require.NoError(t, err)
	var id bft.ValidatorID
	copy(id[:], secret.PublicPoint().Bytes())
	return id
}
