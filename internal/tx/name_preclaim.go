package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeNamePreClaim, func() Payload { return &NamePreClaim{} })
}

// NamePreClaim publishes a commitment ahead of a matching NameClaim, so
// the name and salt stay hidden until the reveal, preventing front-
// running of the claim.
type NamePreClaim struct {
	Commitment merkle.Key
}

func (p *NamePreClaim) Type() Type { return TypeNamePreClaim }

func (p *NamePreClaim) StaticValid() error { return nil }

func (p *NamePreClaim) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	if acc.Balance < fee {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee %d", acc.Balance, fee)
	}
	return nil
}

func (p *NamePreClaim) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
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

	state = state.PutPreClaim(p.Commitment, chainstate.PreClaim{
		Owner:        sender,
		CreateHeight: height,
	})
	return state, nil
}

func (p *NamePreClaim) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (p *NamePreClaim) Reward(acc chainstate.Account) uint64 { return 0 }

func (p *NamePreClaim) writePackedFields(w *codec.PackedWriter) {
	w.WriteFixedBytes(p.Commitment[:], merkle.KeySize)
}

func (p *NamePreClaim) rlpFields() codec.Item {
	return codec.List(codec.Bytes(p.Commitment[:]))
}

func (p *NamePreClaim) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 1 {
		return chainerr.New(chainerr.KindEncodingError, "name preclaim: expected 1 field, got %d", fields.Len())
	}
	commitment := fields.At(0).AsBytes()
	if len(commitment) != merkle.KeySize {
		return chainerr.New(chainerr.KindEncodingError, "name preclaim: commitment must be %d bytes", merkle.KeySize)
	}
	copy(p.Commitment[:], commitment)
	return nil
}
