package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeCoinbase, func() Payload { return &Coinbase{} })
}

// Coinbase mints amount to Receiver as the block reward. It has no
// sender and no signature; the DataTx's Nonce field is repurposed to
// carry the block height it was minted at rather than an account nonce,
// since Coinbase has no sending account to hold one. Nothing checks that
// value: neither Preprocess nor the engine compares it to the height.
type Coinbase struct {
	Receiver merkle.Key
	Amount   uint64
}

func (c *Coinbase) Type() Type { return TypeCoinbase }

func (c *Coinbase) StaticValid() error {
	return nil
}

func (c *Coinbase) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	return nil
}

func (c *Coinbase) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
	acc := state.Account(c.Receiver)
	acc = chainstate.Credit(acc, c.Reward(acc))
	state = state.PutAccount(c.Receiver, acc)
	return state, nil
}

func (c *Coinbase) MinFee(size int, role Role) uint64 { return 0 }

func (c *Coinbase) Reward(acc chainstate.Account) uint64 { return c.Amount }

func (c *Coinbase) writePackedFields(w *codec.PackedWriter) {
	w.WriteFixedBytes(c.Receiver[:], merkle.KeySize)
	w.WriteUint(c.Amount)
}

func (c *Coinbase) rlpFields() codec.Item {
	return codec.List(codec.Bytes(c.Receiver[:]), codec.Uint(c.Amount))
}

func (c *Coinbase) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 2 {
		return chainerr.New(chainerr.KindEncodingError, "coinbase: expected 2 fields, got %d", fields.Len())
	}
	receiver := fields.At(0).AsBytes()
	if len(receiver) != merkle.KeySize {
		return chainerr.New(chainerr.KindEncodingError, "coinbase: receiver must be %d bytes", merkle.KeySize)
	}
	copy(c.Receiver[:], receiver)
	c.Amount = fields.At(1).AsUint()
	return nil
}
