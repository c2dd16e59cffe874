package tributary

import (
	"filippo.io/edwards25519"

	"github.com/tributary-network/tributary/bft"
	"github.com/tributary-network/tributary/lib"
	"github.com/tributary-network/tributary/lib/crypto"
)

/*
	Signer holds one validator's private scalar for one tributary chain and produces the
	deterministic-nonce Schnorr signatures the consensus engine authenticates its messages
	with. The secret and every intermediate nonce buffer are wiped on all exit paths;
	Close() ends the participation session by destroying the secret
*/

// Signer is the local validator's signing identity for one chain
type Signer struct {
	chain  ChainID
	secret *crypto.SecretScalar
}

var _ bft.SignerI = &Signer{}

// NewSigner() binds a secret scalar to one chain instance
func NewSigner(chain ChainID, secret *crypto.SecretScalar) *Signer {
	return &Signer{chain: chain, secret: secret}
}

// NewSignerFromBytes() wraps a canonical 32 byte secret encoding
func NewSignerFromBytes(chain ChainID, secretBytes []byte) (*Signer, lib.ErrorI) {
	secret, err := crypto.NewSecretScalar(secretBytes)
	if err != nil {
		return nil, ErrInvalidSecretKey(err)
	}
	return &Signer{chain: chain, secret: secret}, nil
}

// ValidatorID() returns the public identity derived from the held secret; ok is false
// once the secret has been wiped (the session ended), matching the engine contract's
// allowance for a signer that is not currently a committee member
func (s *Signer) ValidatorID() (id bft.ValidatorID, ok bool) {
	if s.secret.Wiped() {
		return bft.ValidatorID{}, false
	}
	copy(id[:], s.secret.PublicPoint().Bytes())
	return id, true
}

// Sign() produces a 64 byte deterministic-nonce Schnorr signature over the message
func (s *Signer) Sign(msg []byte) ([]byte, lib.ErrorI) {
	if s.secret.Wiped() {
		return nil, ErrSignerClosed()
	}
	// derive the nonce deterministically from (chain id, canonical secret encoding, message)
	t := crypto.NewTranscript(nonceDomain)
	t.Append("genesis", s.chain[:])
	t.Append("key", s.secret.Bytes())
	t.Append("message", msg)
	wide := t.Challenge("nonce")
	// the wide output is secret material; clear it on every exit path
	defer crypto.WipeBytes(wide[:])
	nonce := crypto.WideScalar(wide)
	defer crypto.WipeScalar(nonce)
	crypto.WipeBytes(wide[:])
	if !crypto.IsZero(wide[:]) {
		return nil, ErrNonceHygiene()
	}
	// a sound transcript cannot output zero; seeing one means the construction is
	// broken and signing would hand out the secret key
	if nonce.Equal(edwards25519.NewScalar()) == 1 {
		return nil, ErrZeroNonce()
	}
	nonceCommit := new(edwards25519.Point).ScalarBaseMult(nonce)
	var public [32]byte
	copy(public[:], s.secret.PublicPoint().Bytes())
	c := challenge(s.chain, public, nonceCommit.Bytes(), msg)
	sig := crypto.SchnorrSign(s.secret.Scalar(), nonce, nonceCommit, c)
	return sig[:], nil
}

// Close() ends the participation session by destroying the secret
func (s *Signer) Close() { s.secret.Wipe() }
