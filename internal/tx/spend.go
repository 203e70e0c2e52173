package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeSpend, func() Payload { return &Spend{} })
}

// Spend moves amount from the sender to a receiver account. Sender and
// receiver may be the same key, in which case apply is a no-op modulo
// the fee burn.
type Spend struct {
	Receiver merkle.Key
	Amount   uint64
	Version  uint64
}

// SpendVersion is the protocol version every Spend must carry.
var SpendVersion uint64 = 1

func (s *Spend) Type() Type { return TypeSpend }

func (s *Spend) StaticValid() error {
	if s.Version != SpendVersion {
		return chainerr.New(chainerr.KindMalformed, "spend version %d does not match configured protocol version %d", s.Version, SpendVersion)
	}
	return nil
}

func (s *Spend) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	total := fee + s.Amount
	if total < fee {
		return chainerr.New(chainerr.KindMalformed, "fee+amount overflow")
	}
	if acc.Balance < total {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee+amount %d", acc.Balance, total)
	}
	return nil
}

func (s *Spend) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
	senderAcc := state.Account(sender)
	senderAcc, err := chainstate.Debit(senderAcc, fee+s.Amount)
	if err != nil {
		return state, chainerr.New(chainerr.KindInsufficientBalance, "%v", err)
	}
	senderAcc, err = chainstate.BumpNonce(senderAcc, nonce)
	if err != nil {
		return state, chainerr.New(chainerr.KindNonceOutOfOrder, "%v", err)
	}
	state = state.PutAccount(sender, senderAcc)

	receiverAcc := state.Account(s.Receiver)
	receiverAcc = chainstate.Credit(receiverAcc, s.Amount)
	state = state.PutAccount(s.Receiver, receiverAcc)
	return state, nil
}

func (s *Spend) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (s *Spend) Reward(acc chainstate.Account) uint64 { return 0 }

func (s *Spend) writePackedFields(w *codec.PackedWriter) {
	w.WriteFixedBytes(s.Receiver[:], merkle.KeySize)
	w.WriteUint(s.Amount)
	w.WriteUint(s.Version)
}

func (s *Spend) rlpFields() codec.Item {
	return codec.List(codec.Bytes(s.Receiver[:]), codec.Uint(s.Amount), codec.Uint(s.Version))
}

func (s *Spend) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 3 {
		return chainerr.New(chainerr.KindEncodingError, "spend: expected 3 fields, got %d", fields.Len())
	}
	receiver := fields.At(0).AsBytes()
	if len(receiver) != merkle.KeySize {
		return chainerr.New(chainerr.KindEncodingError, "spend: receiver must be %d bytes", merkle.KeySize)
	}
	copy(s.Receiver[:], receiver)
	s.Amount = fields.At(1).AsUint()
	s.Version = fields.At(2).AsUint()
	return nil
}
