package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"

	"filippo.io/edwards25519"
)

const (
	SecretSize = 32 // canonical scalar encoding size
)

var (
	ErrSecretWiped         = errors.New("secret scalar has been wiped")
	ErrInvalidSecretLength = errors.New("invalid secret scalar length")
)

/*
	SecretScalar holds one validator's private scalar together with its canonical encoding.
	The encoding is the only long-lived byte form of the secret and Wipe() unconditionally
	overwrites it, so scoped acquisition (construct, use, defer Wipe) guarantees the secret
	leaves memory on every exit path
*/

// SecretScalar is a wipeable wrapper around a private scalar
type SecretScalar struct {
	scalar *edwards25519.Scalar
	repr   [SecretSize]byte
	wiped  bool
}

// NewSecretScalar() wraps a canonical 32 byte scalar encoding
func NewSecretScalar(bz []byte) (*SecretScalar, error) {
	if len(bz) != SecretSize {
		return nil, ErrInvalidSecretLength
	}
	scalar, err := new(edwards25519.Scalar).SetCanonicalBytes(bz)
	if err != nil {
		return nil, err
	}
	s := &SecretScalar{scalar: scalar}
	copy(s.repr[:], bz)
	return s, nil
}

// GenerateSecretScalar() samples a fresh uniformly distributed secret scalar
func GenerateSecretScalar() (*SecretScalar, error) {
	var wide [WideHashSize]byte
	defer WipeBytes(wide[:])
	if _, err := rand.Read(wide[:]); err != nil {
		return nil, err
	}
	scalar := WideScalar(wide)
	s := &SecretScalar{scalar: scalar}
	copy(s.repr[:], scalar.Bytes())
	return s, nil
}

// Scalar() returns the private scalar, or nil once wiped
func (s *SecretScalar) Scalar() *edwards25519.Scalar {
	if s.wiped {
		return nil
	}
	return s.scalar
}

// Bytes() returns the canonical encoding of the secret for transcript feeding;
// the returned slice aliases the internal buffer and is cleared by Wipe()
func (s *SecretScalar) Bytes() []byte { return s.repr[:] }

// Wiped() reports whether the secret has been destroyed
func (s *SecretScalar) Wiped() bool { return s.wiped }

// Wipe() unconditionally overwrites the backing memory of the secret
func (s *SecretScalar) Wipe() {
	WipeBytes(s.repr[:])
	// overwrite the scalar value itself with zero
	s.scalar.Set(edwards25519.NewScalar())
	s.wiped = true
}

// PublicPoint() derives secret * generator
func (s *SecretScalar) PublicPoint() *edwards25519.Point {
	if s.wiped {
		return nil
	}
	return new(edwards25519.Point).ScalarBaseMult(s.scalar)
}

// WipeBytes() overwrites every byte of the buffer with zero
func WipeBytes(bz []byte) {
	for i := range bz {
		bz[i] = 0
	}
}

// IsZero() reports in constant time whether every byte of the buffer is zero
func IsZero(bz []byte) bool {
	return subtle.ConstantTimeCompare(bz, make([]byte, len(bz))) == 1
}

// WipeScalar() overwrites a scalar value with zero
func WipeScalar(s *edwards25519.Scalar) {
	if s != nil {
		s.Set(edwards25519.NewScalar())
	}
}
