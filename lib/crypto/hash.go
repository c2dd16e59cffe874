package crypto

import (
	"hash"

	"golang.org/x/crypto/blake2b"
)

const (
	HashSize     = blake2b.Size256 // 32 byte hash used for identities
	WideHashSize = blake2b.Size    // 64 byte hash used for uniform scalar derivation
)

/*
	Hash is a function that takes an input message and returns a fixed-size string of bytes that is unique to the input.
	BLAKE2b is the global algorithm: the 256 bit form produces short identities (block and chain ids) while the 512 bit
	form produces the wide output a transcript reduces to a uniformly distributed scalar
*/

// Hasher() returns the global wide hashing algorithm used by transcripts
func Hasher() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		// only reachable with a mis-sized key, and no key is passed
		panic(err)
	}
	return h
}

// Hash() executes the global hashing algorithm on input bytes
func Hash(msg []byte) []byte {
	h := blake2b.Sum256(msg)
	return h[:]
}
