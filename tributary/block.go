package tributary

import (
	"encoding/binary"

	"github.com/tributary-network/tributary/bft"
	"github.com/tributary-network/tributary/lib"
	"github.com/tributary-network/tributary/lib/crypto"
)

/*
	The ledger's block structure and its deterministic binary layout. The engine only ever
	sees the opaque WrappedBlock form; this layer deserializes it to hand the decoded block
	to the ledger and to derive the identity hash. The layout is fixed byte-for-byte since
	the block's identity is the hash of its exact serialized header
*/

const (
	BlockHeaderSize = 2 * crypto.HashSize // parent hash || transaction root

	// uint32 framing sizes within the block body
	countSize = 4
	lenSize   = 4
)

// BlockHeader is the fixed 64 byte header whose hash is the block's identity
type BlockHeader struct {
	Parent          [32]byte // the hash of the parent block's header
	TransactionRoot [32]byte // the deterministic root over the block's contents
}

// Bytes() returns the fixed 64 byte encoding of the header
func (h *BlockHeader) Bytes() []byte {
	bz := make([]byte, 0, BlockHeaderSize)
	bz = append(bz, h.Parent[:]...)
	bz = append(bz, h.TransactionRoot[:]...)
	return bz
}

// Hash() is the block identity: the narrow hash of the exact serialized header
func (h *BlockHeader) Hash() (hash [32]byte) {
	copy(hash[:], crypto.Hash(h.Bytes()))
	return
}

// ReadBlockHeader() decodes a header from the front of a buffer
func ReadBlockHeader(bz []byte) (h BlockHeader, err lib.ErrorI) {
	if len(bz) < BlockHeaderSize {
		return BlockHeader{}, ErrMalformedBlock("truncated header")
	}
	copy(h.Parent[:], bz[:crypto.HashSize])
	copy(h.TransactionRoot[:], bz[crypto.HashSize:BlockHeaderSize])
	return h, nil
}

// Block is the ledger's block: a header, the hashes of the provided transactions it
// references, and the opaque serialized transactions it carries
type Block struct {
	Header       BlockHeader
	Provided     [][32]byte // hashes of referenced provided transactions, which must be locally known before acceptance
	Transactions [][]byte   // opaque serialized transactions, executed by the external ledger
}

// NewBlock() assembles a block and stamps the header's transaction root
func NewBlock(parent [32]byte, provided [][32]byte, transactions [][]byte) *Block {
	b := &Block{
		Header:       BlockHeader{Parent: parent},
		Provided:     provided,
		Transactions: transactions,
	}
	b.Header.TransactionRoot = b.TransactionRoot()
	return b
}

// TransactionRoot() deterministically commits to the provided references and the
// transactions, in order
func (b *Block) TransactionRoot() (root [32]byte) {
	t := crypto.NewTranscript("Tributary Chain Transaction Root")
	for _, p := range b.Provided {
		t.Append("provided", p[:])
	}
	for _, tx := range b.Transactions {
		t.Append("transaction", crypto.Hash(tx))
	}
	wide := t.Challenge("root")
	copy(root[:], crypto.Hash(wide[:]))
	return
}

// Hash() is the block's identity, the hash of its header
func (b *Block) Hash() [32]byte { return b.Header.Hash() }

// Bytes() returns the deterministic binary encoding of the block
func (b *Block) Bytes() []byte {
	size := BlockHeaderSize + countSize + len(b.Provided)*crypto.HashSize + countSize
	for _, tx := range b.Transactions {
		size += lenSize + len(tx)
	}
	bz := make([]byte, 0, size)
	bz = append(bz, b.Header.Bytes()...)
	bz = binary.BigEndian.AppendUint32(bz, uint32(len(b.Provided)))
	for _, p := range b.Provided {
		bz = append(bz, p[:]...)
	}
	bz = binary.BigEndian.AppendUint32(bz, uint32(len(b.Transactions)))
	for _, tx := range b.Transactions {
		bz = binary.BigEndian.AppendUint32(bz, uint32(len(tx)))
		bz = append(bz, tx...)
	}
	return bz
}

// ReadBlock() decodes a block, rejecting truncated buffers and trailing bytes
func ReadBlock(bz []byte) (*Block, lib.ErrorI) {
	header, err := ReadBlockHeader(bz)
	if err != nil {
		return nil, err
	}
	b, rest := &Block{Header: header}, bz[BlockHeaderSize:]
	// decode the provided transaction references
	if len(rest) < countSize {
		return nil, ErrMalformedBlock("truncated provided count")
	}
	providedCount := binary.BigEndian.Uint32(rest[:countSize])
	rest = rest[countSize:]
	if uint64(len(rest)) < uint64(providedCount)*crypto.HashSize {
		return nil, ErrMalformedBlock("truncated provided references")
	}
	for i := uint32(0); i < providedCount; i++ {
		var p [32]byte
		copy(p[:], rest[:crypto.HashSize])
		b.Provided = append(b.Provided, p)
		rest = rest[crypto.HashSize:]
	}
	// decode the transactions
	if len(rest) < countSize {
		return nil, ErrMalformedBlock("truncated transaction count")
	}
	txCount := binary.BigEndian.Uint32(rest[:countSize])
	rest = rest[countSize:]
	for i := uint32(0); i < txCount; i++ {
		if len(rest) < lenSize {
			return nil, ErrMalformedBlock("truncated transaction length")
		}
		txLen := binary.BigEndian.Uint32(rest[:lenSize])
		rest = rest[lenSize:]
		if uint64(len(rest)) < uint64(txLen) {
			return nil, ErrMalformedBlock("truncated transaction")
		}
		tx := make([]byte, txLen)
		copy(tx, rest[:txLen])
		b.Transactions = append(b.Transactions, tx)
		rest = rest[txLen:]
	}
	if len(rest) != 0 {
		return nil, ErrMalformedBlock("trailing bytes after block")
	}
	return b, nil
}

// WrappedBlock is the engine-transport form of a block: the raw serialized payload,
// deserialized only to hand to the ledger
type WrappedBlock struct {
	raw []byte
}

var _ bft.BlockI = &WrappedBlock{}

// WrapBlock() serializes a decoded block for engine transport
func WrapBlock(b *Block) *WrappedBlock { return &WrappedBlock{raw: b.Bytes()} }

// NewWrappedBlock() wraps a raw payload received from the engine
func NewWrappedBlock(raw []byte) *WrappedBlock { return &WrappedBlock{raw: raw} }

// Bytes() returns the raw serialized payload
func (w *WrappedBlock) Bytes() []byte { return w.raw }

// ID() is the deterministic identity hash of the wrapped block's header; a payload too
// short to carry a header reports the zero id, which the adapter rejects as fatal
func (w *WrappedBlock) ID() [32]byte {
	header, err := ReadBlockHeader(w.raw)
	if err != nil {
		return [32]byte{}
	}
	return header.Hash()
}
