package crypto

import (
	"errors"

	"filippo.io/edwards25519"
)

const (
	PointSize     = 32                     // compressed group element encoding size
	ScalarSize    = 32                     // canonical scalar encoding size
	SignatureSize = PointSize + ScalarSize // nonce commitment || scalar response
)

var (
	ErrInvalidSignatureLength = errors.New("invalid schnorr signature length")
)

/*
	64 byte Schnorr signatures over the prime-order subgroup of edwards25519:
	a signature is the nonce commitment R = nonce * G concatenated with the
	response s = nonce + challenge * secret. Verification recomputes
	R' = s * G - challenge * A and accepts iff R' equals the embedded R.
	The challenge itself is bound by the caller's transcript, keeping this
	package agnostic of message formats
*/

// SchnorrSign() produces the 64 byte signature (R, s) for a precomputed nonce,
// nonce commitment, and transcript challenge
func SchnorrSign(secret, nonce *edwards25519.Scalar, nonceCommit *edwards25519.Point, challenge *edwards25519.Scalar) (sig [SignatureSize]byte) {
	// s = challenge * secret + nonce
	s := new(edwards25519.Scalar).MultiplyAdd(challenge, secret, nonce)
	defer WipeScalar(s)
	copy(sig[:PointSize], nonceCommit.Bytes())
	copy(sig[PointSize:], s.Bytes())
	return
}

// ParseSignature() splits and validates the canonical encodings of a 64 byte signature
func ParseSignature(sig []byte) (r *edwards25519.Point, s *edwards25519.Scalar, err error) {
	if len(sig) != SignatureSize {
		return nil, nil, ErrInvalidSignatureLength
	}
	// reject non-canonical point encodings
	r, err = new(edwards25519.Point).SetBytes(sig[:PointSize])
	if err != nil {
		return nil, nil, err
	}
	// reject scalars at or above the group order
	s, err = new(edwards25519.Scalar).SetCanonicalBytes(sig[PointSize:])
	if err != nil {
		return nil, nil, err
	}
	return r, s, nil
}

// SchnorrVerify() checks s * G == R + challenge * A for the claimed public key A
func SchnorrVerify(public *edwards25519.Point, challenge *edwards25519.Scalar, sig []byte) bool {
	r, s, err := ParseSignature(sig)
	if err != nil {
		return false
	}
	// R' = -challenge * A + s * G
	negChallenge := new(edwards25519.Scalar).Negate(challenge)
	rPrime := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(negChallenge, public, s)
	return rPrime.Equal(r) == 1
}
