package crypto

import (
	"encoding/binary"
	"hash"

	"filippo.io/edwards25519"
)

/*
	Transcript is a deterministic, domain-separated accumulator used to derive Fiat-Shamir
	challenges and deterministic nonces. Every appended message is framed with its label and
	an explicit length so that no two distinct sequences of appends can collide byte-wise.
	A transcript is one-shot: Challenge() finalizes it
*/

// Transcript accumulates labeled messages into the global wide hash
type Transcript struct {
	h hash.Hash
}

// NewTranscript() creates a Transcript seeded with a fixed domain label
func NewTranscript(label string) *Transcript {
	t := &Transcript{h: Hasher()}
	t.writeFrame("dst", []byte(label))
	return t
}

// Append() adds a labeled message to the transcript
func (t *Transcript) Append(label string, data []byte) {
	t.writeFrame(label, data)
}

// AppendUint64() adds a labeled 8-byte big-endian integer to the transcript
func (t *Transcript) AppendUint64(label string, n uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, n)
	t.writeFrame(label, bz)
}

// Challenge() finalizes the transcript under a challenge label and returns the wide output
func (t *Transcript) Challenge(label string) [WideHashSize]byte {
	t.writeFrame("challenge", []byte(label))
	var out [WideHashSize]byte
	copy(out[:], t.h.Sum(nil))
	return out
}

// ChallengeScalar() finalizes the transcript and reduces the wide output to a
// uniformly distributed scalar modulo the group order
func (t *Transcript) ChallengeScalar(label string) *edwards25519.Scalar {
	wide := t.Challenge(label)
	defer WipeBytes(wide[:])
	return WideScalar(wide)
}

// writeFrame() writes a length-framed (label, data) pair into the hash state
func (t *Transcript) writeFrame(label string, data []byte) {
	lenBuf := make([]byte, 8)
	// frame the label
	binary.BigEndian.PutUint64(lenBuf, uint64(len(label)))
	t.h.Write(lenBuf)
	t.h.Write([]byte(label))
	// frame the data
	binary.BigEndian.PutUint64(lenBuf, uint64(len(data)))
	t.h.Write(lenBuf)
	t.h.Write(data)
}

// WideScalar() reduces a 64 byte uniform hash output to a scalar modulo the group order
func WideScalar(wide [WideHashSize]byte) *edwards25519.Scalar {
	s, err := new(edwards25519.Scalar).SetUniformBytes(wide[:])
	if err != nil {
		// only reachable with a mis-sized input, and the input size is fixed
		panic(err)
	}
	return s
}
