package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeOracleExtend, func() Payload { return &OracleExtend{} })
}

// OracleExtend pushes out a registered oracle's expiry height.
type OracleExtend struct {
	TTL chainstate.TTL
}

func (e *OracleExtend) Type() Type { return TypeOracleExtend }

func (e *OracleExtend) StaticValid() error { return nil }

func (e *OracleExtend) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	if acc.Balance < fee {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee %d", acc.Balance, fee)
	}
	if _, exists := state.Oracle(sender); !exists {
		return chainerr.New(chainerr.KindUnknownOracle, "sender is not a registered oracle")
	}
	return nil
}

func (e *OracleExtend) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
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

	oracle, _ := state.Oracle(sender)
	oracle.ExpiryHeight = e.TTL.ResolveExpiry(height)
	state = state.PutOracle(oracle)
	return state, nil
}

func (e *OracleExtend) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (e *OracleExtend) Reward(acc chainstate.Account) uint64 { return 0 }

func (e *OracleExtend) writePackedFields(w *codec.PackedWriter) {
	w.WriteTTL(codec.TTLType(e.TTL.Type), e.TTL.Value)
}

func (e *OracleExtend) rlpFields() codec.Item {
	return codec.List(encodeTTL(e.TTL))
}

func (e *OracleExtend) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 1 {
		return chainerr.New(chainerr.KindEncodingError, "oracle extend: expected 1 field, got %d", fields.Len())
	}
	e.TTL = decodeTTL(fields.At(0))
	return nil
}
