package tx

import (
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/merkle"
)

// Payload is the capability set every transaction variant implements:
// the uniform dispatch surface the engine drives without knowing which
// concrete kind it holds.
type Payload interface {
	// Type returns the variant's wire type code.
	Type() Type

	// StaticValid checks properties that do not depend on chain state:
	// field presence, size limits, internal consistency of the payload.
	StaticValid() error

	// Preprocess checks every state-dependent precondition without
	// mutating state: sender balance, nonce order, fee sufficiency, and
	// whatever else this variant requires, in a fixed order, returning
	// the first failure.
	Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error

	// Apply performs the state transition implied by this payload,
	// assuming StaticValid and Preprocess already passed. It deducts
	// fee and bumps the sender's nonce in addition to its own payload
	// effects, and must be a no-op on any part of state it does not
	// touch.
	Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error)

	// MinFee returns the minimum acceptable fee for a serialized
	// transaction of the given byte size under the given role.
	MinFee(size int, role Role) uint64

	// Reward returns the amount this payload mints for acc, nonzero
	// only for Coinbase.
	Reward(acc chainstate.Account) uint64
}

// Factory produces a zero-valued Payload of a registered Type, ready to
// be populated by a decoder.
type Factory func() Payload
