package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeNameClaim, func() Payload { return &NameClaim{} })
}

// NameClaim reveals the (name, salt) behind a previously published
// commitment, replacing the pre-claim with a resolved name record.
type NameClaim struct {
	Name []byte
	Salt []byte
}

func (c *NameClaim) Type() Type { return TypeNameClaim }

func (c *NameClaim) StaticValid() error {
	if len(c.Salt) != NameSaltSize {
		return chainerr.New(chainerr.KindMalformedName, "salt must be %d bytes, got %d", NameSaltSize, len(c.Salt))
	}
	if _, err := NormalizeName(c.Name); err != nil {
		return chainerr.New(chainerr.KindMalformedName, "%v", err)
	}
	return nil
}

func (c *NameClaim) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	if acc.Balance < fee {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee %d", acc.Balance, fee)
	}

	normalized, err := NormalizeName(c.Name)
	if err != nil {
		return chainerr.New(chainerr.KindMalformedName, "%v", err)
	}

	// The nil check on the pre-claim must come before the owner check:
	// checking .Owner on a nonexistent pre-claim first is the bug this
	// variant is built to avoid.
	preClaim, exists := state.PreClaimRecord(Commitment(normalized, c.Salt))
	if !exists {
		return chainerr.New(chainerr.KindUnknownPreClaim, "no pre-claim for this name and salt")
	}
	if preClaim.Owner != sender {
		return chainerr.New(chainerr.KindWrongPreClaimOwner, "pre-claim owned by a different account")
	}
	if _, exists := state.ClaimRecord(NameHash(normalized)); exists {
		return chainerr.New(chainerr.KindNameAlreadyClaimed, "name already claimed")
	}
	return nil
}

func (c *NameClaim) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
	acc := state.Account(sender)
	acc, err := chainstate.Debit(acc, fee)
	if err != nil {
		return state, chainerr.New(chainerr.KindInsufficientBalance, "%v", err)
	}
	acc, err = chainstate.BumpNonce(acc, nonce)
	if err != nil {
		return state, chainerr.New(chainerr.KindNonceOutOfOrder, "%v", err)
	}
	state = state.PutAccount(sender, acc)

	normalized, err := NormalizeName(c.Name)
	if err != nil {
		return state, chainerr.New(chainerr.KindMalformedName, "%v", err)
	}
	commitment := Commitment(normalized, c.Salt)
	state = state.DeletePreClaim(commitment)
	state = state.PutClaim(NameHash(normalized), chainstate.Claim{
		Name:        normalized,
		Owner:       sender,
		ClaimHeight: height,
	})
	return state, nil
}

func (c *NameClaim) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (c *NameClaim) Reward(acc chainstate.Account) uint64 { return 0 }

func (c *NameClaim) writePackedFields(w *codec.PackedWriter) {
	w.WriteBytes(c.Name)
	w.WriteFixedBytes(c.Salt, NameSaltSize)
}

func (c *NameClaim) rlpFields() codec.Item {
	return codec.List(codec.Bytes(c.Name), codec.Bytes(c.Salt))
}

func (c *NameClaim) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 2 {
		return chainerr.New(chainerr.KindEncodingError, "name claim: expected 2 fields, got %d", fields.Len())
	}
	c.Name = fields.At(0).AsBytes()
	c.Salt = fields.At(1).AsBytes()
	return nil
}
