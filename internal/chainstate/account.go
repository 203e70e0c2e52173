// Package chainstate holds the pure, total state-update primitives the
// transaction variants build on: the account model and the snapshot that
// ties the accounts trie together with the oracle and naming subtrees.
package chainstate

import (
	"errors"
	"sort"
)

// ErrInsufficientBalance is returned by Debit when n exceeds the
// account's balance.
var ErrInsufficientBalance = errors.New("chainstate: insufficient balance")

// ErrNonceOutOfOrder is returned by BumpNonce when newNonce does not
// strictly exceed the account's current nonce.
var ErrNonceOutOfOrder = errors.New("chainstate: nonce out of order")

// LockedEntry is a single matured-at-height slice of an account's locked
// funds schedule.
type LockedEntry struct {
	Height uint64
	Amount uint64
}

// Account is the per-account ledger record. All methods are pure: they
// return a new Account value and never mutate the receiver, so the same
// Account struct can be safely shared across snapshots.
type Account struct {
	Balance uint64
	Nonce   uint64
	Locked  []LockedEntry
}

// Empty returns the zero-value account assigned on first credit.
func Empty() Account {
	return Account{}
}

// Credit returns acc with n added to its balance. Credit never fails:
// total supply is bounded by protocol issuance (Coinbase rewards), and a
// uint64 overflow here would itself be a protocol bug, not a recoverable
// transaction error.
func Credit(acc Account, n uint64) Account {
	acc.Balance += n
	return acc
}

// Debit returns acc with n subtracted from its balance, failing if n
// exceeds the available balance.
func Debit(acc Account, n uint64) (Account, error) {
	if n > acc.Balance {
		return acc, ErrInsufficientBalance
	}
	acc.Balance -= n
	return acc, nil
}

// BumpNonce returns acc with its nonce set to newNonce, failing unless
// newNonce strictly exceeds the account's current nonce.
func BumpNonce(acc Account, newNonce uint64) (Account, error) {
	if newNonce <= acc.Nonce {
		return acc, ErrNonceOutOfOrder
	}
	acc.Nonce = newNonce
	return acc, nil
}

// AddLocked returns acc with a new locked-funds entry appended, keeping
// the schedule sorted by maturity height.
func AddLocked(acc Account, height, amount uint64) Account {
	entries := append([]LockedEntry(nil), acc.Locked...)
	entries = append(entries, LockedEntry{Height: height, Amount: amount})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Height < entries[j].Height })
	acc.Locked = entries
	return acc
}

// UpdateLocked returns acc with every locked entry whose maturity height
// is at most currentHeight moved into the spendable balance.
func UpdateLocked(acc Account, currentHeight uint64) Account {
	if len(acc.Locked) == 0 {
		return acc
	}
	var remaining []LockedEntry
	var matured uint64
	for _, e := range acc.Locked {
		if e.Height <= currentHeight {
			matured += e.Amount
		} else {
			remaining = append(remaining, e)
		}
	}
	if matured == 0 {
		return acc
	}
	acc.Balance += matured
	acc.Locked = remaining
	return acc
}
