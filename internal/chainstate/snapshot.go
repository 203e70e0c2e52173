package chainstate

import (
	"github.com/auricchain/auricd/internal/merkle"
)

// Snapshot is an immutable chain-state value: the accounts trie plus the
// oracle and naming subtrees, each keyed by their own 32-byte identifier
// space under the same snapshot. Every mutator on Snapshot returns a new
// Snapshot, structurally sharing the unchanged subtrees with its parent.
type Snapshot struct {
	Accounts          *merkle.Tree
	RegisteredOracles *merkle.Tree
	Interactions      *merkle.Tree
	PreClaims         *merkle.Tree
	Claims            *merkle.Tree
}

// Genesis returns the empty chain-state snapshot.
func Genesis() Snapshot {
	return Snapshot{
		Accounts:          merkle.Empty(),
		RegisteredOracles: merkle.Empty(),
		Interactions:      merkle.Empty(),
		PreClaims:         merkle.Empty(),
		Claims:            merkle.Empty(),
	}
}

// Account looks up an account by its 32-byte public key, returning the
// zero-value account if it has never been credited.
func (s Snapshot) Account(pubKey merkle.Key) Account {
	raw, ok := s.Accounts.Lookup(pubKey)
	if !ok {
		return Empty()
	}
	acc, err := Unmarshal(raw)
	if err != nil {
		// The accounts trie only ever holds bytes this package wrote.
		panic("chainstate: corrupt account entry: " + err.Error())
	}
	return acc
}

// PutAccount returns a new snapshot with acc stored at pubKey.
func (s Snapshot) PutAccount(pubKey merkle.Key, acc Account) Snapshot {
	s.Accounts = s.Accounts.InsertOrUpdate(pubKey, Marshal(acc))
	return s
}

// MatureLockedFunds moves every account's matured locked-funds entries
// (height <= currentHeight) into its spendable balance. Run by the
// engine after each block, alongside ExpireOracles/ExpireInteractions.
func (s Snapshot) MatureLockedFunds(currentHeight uint64) Snapshot {
	type update struct {
		key merkle.Key
		acc Account
	}
	var updates []update
	s.Accounts.Fold(nil, func(k merkle.Key, v []byte, acc any) any {
		rec, err := Unmarshal(v)
		if err != nil {
			return nil
		}
		matured := UpdateLocked(rec, currentHeight)
		if len(matured.Locked) != len(rec.Locked) || matured.Balance != rec.Balance {
			updates = append(updates, update{key: k, acc: matured})
		}
		return nil
	})
	for _, u := range updates {
		s = s.PutAccount(u.key, u.acc)
	}
	return s
}

// RootHash is the snapshot's single deterministic commitment: the
// accounts trie's root hash, computed over the serialized accounts. The
// oracle and naming subtrees are committed independently, as sibling
// tries under the same snapshot, and expose their own RootHash for
// header inclusion should a caller want them.
func (s Snapshot) RootHash() [32]byte {
	return s.Accounts.RootHash()
}
