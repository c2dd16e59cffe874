package tributary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		block  *Block
	}{
		{
			name:   "empty",
			detail: "a block with no contents still round-trips",
			block:  NewBlock([32]byte{1}, nil, nil),
		},
		{
			name:   "transactionsOnly",
			detail: "opaque transaction payloads of varying sizes survive the round-trip",
			block:  newTestBlock(2, "a", "", "a longer transaction payload"),
		},
		{
			name:   "providedAndTransactions",
			detail: "provided references and transactions are both preserved in order",
			block:  NewBlock([32]byte{3}, [][32]byte{{0xAA}, {0xBB}}, [][]byte{[]byte("tx")}),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bz := test.block.Bytes()
			got, err := ReadBlock(bz)
			require.Nil(t, err, test.detail)
			require.Equal(t, test.block, got)
			// the identity survives the round-trip
			require.Equal(t, test.block.Hash(), got.Hash())
		})
	}
}

func TestReadBlockRejects(t *testing.T) {
	valid := newTestBlock(1, "tx-one", "tx-two").Bytes()
	tests := []struct {
		name   string
		detail string
		bz     []byte
	}{
		{
			name:   "truncatedHeader",
			detail: "fewer bytes than a header can never decode",
			bz:     valid[:BlockHeaderSize-1],
		},
		{
			name:   "truncatedCounts",
			detail: "a header with no body is missing its counts",
			bz:     valid[:BlockHeaderSize],
		},
		{
			name:   "truncatedTransaction",
			detail: "a declared transaction length past the end of the buffer is rejected",
			bz:     valid[:len(valid)-1],
		},
		{
			name:   "trailingBytes",
			detail: "bytes after the declared contents are rejected",
			bz:     append(append([]byte{}, valid...), 0x00),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadBlock(test.bz)
			require.NotNil(t, err, test.detail)
		})
	}
}

func TestWrappedBlockID(t *testing.T) {
	block := newTestBlock(1, "tx")
	wrapped := WrapBlock(block)
	// the wrapper's identity is the hash of the serialized header
	require.Equal(t, block.Hash(), wrapped.ID())
	require.Equal(t, block.Bytes(), wrapped.Bytes())
	// a wrapper too short to carry a header reports the zero id
	require.Equal(t, [32]byte{}, NewWrappedBlock([]byte("short")).ID())
	// two blocks differing only in contents have different roots, so different ids
	other := newTestBlock(1, "tx2")
	require.NotEqual(t, block.Hash(), other.Hash())
}

func TestTransactionRoot(t *testing.T) {
	// the root commits to provided references and transactions in order
	a := NewBlock([32]byte{1}, [][32]byte{{0xAA}}, [][]byte{[]byte("x"), []byte("y")})
	b := NewBlock([32]byte{1}, [][32]byte{{0xAA}}, [][]byte{[]byte("y"), []byte("x")})
	require.NotEqual(t, a.Header.TransactionRoot, b.Header.TransactionRoot)
	// identical contents reproduce the identical root
	c := NewBlock([32]byte{1}, [][32]byte{{0xAA}}, [][]byte{[]byte("x"), []byte("y")})
	require.Equal(t, a.Header.TransactionRoot, c.Header.TransactionRoot)
}
