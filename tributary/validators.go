package tributary

import (
	"fmt"

	"filippo.io/edwards25519"

	"github.com/tributary-network/tributary/bft"
	"github.com/tributary-network/tributary/lib"
	"github.com/tributary-network/tributary/lib/crypto"
)

/*
	ValidatorSet is the weighted membership table of one tributary chain plus its
	precomputed round-robin proposer schedule. The set is an immutable snapshot after
	construction: a future epoch-rotation layer selects between snapshots by height
	rather than mutating one in place
*/

// Validator is one committee member: a 32 byte group element identity and a stake weight
type Validator struct {
	ID     bft.ValidatorID `json:"id"`     // the public key / engine-level id
	Weight uint64          `json:"weight"` // relative stake weight, must be non-zero
}

// ValidatorSet implements the engine's SignatureSchemeI and WeightsI for one chain
type ValidatorSet struct {
	chain       ChainID
	totalWeight uint64
	weights     map[bft.ValidatorID]uint64
	points      map[bft.ValidatorID]*edwards25519.Point
	robin       []bft.ValidatorID
}

var _ bft.SignatureSchemeI = &ValidatorSet{}
var _ bft.WeightsI = &ValidatorSet{}

// NewValidatorSet() builds the membership table and the proposer schedule, where each
// member appears in the schedule once per unit of weight so that proposer frequency
// over many rounds is proportional to stake
func NewValidatorSet(chain ChainID, validators []Validator) (*ValidatorSet, lib.ErrorI) {
	if len(validators) == 0 {
		return nil, ErrEmptyValidatorSet()
	}
	vs := &ValidatorSet{
		chain:   chain,
		weights: make(map[bft.ValidatorID]uint64, len(validators)),
		points:  make(map[bft.ValidatorID]*edwards25519.Point, len(validators)),
	}
	for _, v := range validators {
		if v.Weight == 0 {
			return nil, ErrZeroWeight(v.ID[:])
		}
		if _, found := vs.weights[v.ID]; found {
			return nil, ErrDuplicateValidator(v.ID[:])
		}
		// pre-parse the key so Verify never re-decodes a member's point
		point, err := new(edwards25519.Point).SetBytes(v.ID[:])
		if err != nil {
			return nil, ErrInvalidValidatorKey(v.ID[:], err)
		}
		vs.weights[v.ID] = v.Weight
		vs.points[v.ID] = point
		vs.totalWeight += v.Weight
		for i := uint64(0); i < v.Weight; i++ {
			vs.robin = append(vs.robin, v.ID)
		}
	}
	return vs, nil
}

// ChainID() returns the chain this set is scoped to
func (vs *ValidatorSet) ChainID() ChainID { return vs.chain }

// NumValidators() returns the count of distinct members
func (vs *ValidatorSet) NumValidators() int { return len(vs.weights) }

// ScheduleLength() returns the proposer schedule length (the sum of all weights)
func (vs *ValidatorSet) ScheduleLength() int { return len(vs.robin) }

// Verify() reports whether the signature over the message is valid for the member id;
// a non-member, an unparseable signature, or a failed equation all report false
func (vs *ValidatorSet) Verify(id bft.ValidatorID, msg, sig []byte) bool {
	point, found := vs.points[id]
	if !found {
		return false
	}
	if len(sig) != crypto.SignatureSize {
		return false
	}
	// the challenge binds the signature's embedded nonce commitment
	c := challenge(vs.chain, id, sig[:crypto.PointSize], msg)
	return crypto.SchnorrVerify(point, c, sig)
}

// Aggregate() combines individual signatures; the current scheme is a plain
// concatenation pending a more compact half-aggregation
func (vs *ValidatorSet) Aggregate(sigs [][]byte) [][]byte {
	aggregate := make([][]byte, len(sigs))
	copy(aggregate, sigs)
	return aggregate
}

// VerifyAggregate() reports whether every (id, signature) pair at matching positions
// verifies; a count mismatch leaves unmatched entries and reports false
func (vs *ValidatorSet) VerifyAggregate(ids []bft.ValidatorID, msg []byte, aggregate [][]byte) bool {
	if len(ids) != len(aggregate) {
		return false
	}
	for i, id := range ids {
		if !vs.Verify(id, msg, aggregate[i]) {
			return false
		}
	}
	return true
}

// TotalWeight() is the sum of all member weights
func (vs *ValidatorSet) TotalWeight() uint64 { return vs.totalWeight }

// Weight() looks up a member's weight; errors on a non-member
func (vs *ValidatorSet) Weight(id bft.ValidatorID) (uint64, lib.ErrorI) {
	weight, found := vs.weights[id]
	if !found {
		return 0, ErrValidatorNotInSet(id[:])
	}
	return weight, nil
}

// MustWeight() looks up a member's weight; querying a non-member is a programming
// contract violation by the caller and panics rather than reporting zero
func (vs *ValidatorSet) MustWeight(id bft.ValidatorID) uint64 {
	weight, found := vs.weights[id]
	if !found {
		panic(fmt.Sprintf("weight queried for non-member validator %s", id))
	}
	return weight
}

// Proposer() deterministically selects the proposer for a height and round. A naive
// block + round would pick nearly the same index across consecutive rounds of one
// height, so any non-zero round jumps halfway around the schedule to spread retry
// proposers across the committee
func (vs *ValidatorSet) Proposer(block bft.BlockNumber, round bft.RoundNumber) bft.ValidatorID {
	length := uint64(len(vs.robin))
	offset := uint64(0)
	if round != 0 {
		offset = uint64(round) + length/2
	}
	return vs.robin[(uint64(block)+offset)%length]
}
