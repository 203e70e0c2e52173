package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeOracleRegister, func() Payload { return &OracleRegister{} })
}

// OracleRegister creates a registered-oracle record keyed by the
// sender's public key.
type OracleRegister struct {
	QueryFormat    []byte
	ResponseFormat []byte
	QueryFee       uint64
	TTL            chainstate.TTL
}

func (o *OracleRegister) Type() Type { return TypeOracleRegister }

func (o *OracleRegister) StaticValid() error {
	if len(o.QueryFormat) == 0 || len(o.ResponseFormat) == 0 {
		return chainerr.New(chainerr.KindMalformed, "oracle register requires non-empty query and response formats")
	}
	return nil
}

func (o *OracleRegister) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	if acc.Balance < fee {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee %d", acc.Balance, fee)
	}
	if _, exists := state.Oracle(sender); exists {
		return chainerr.New(chainerr.KindOracleStateConflict, "sender already registered as oracle")
	}
	return nil
}

func (o *OracleRegister) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
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

	state = state.PutOracle(chainstate.RegisteredOracle{
		Owner:          sender,
		QueryFormat:    o.QueryFormat,
		ResponseFormat: o.ResponseFormat,
		QueryFee:       o.QueryFee,
		ExpiryHeight:   o.TTL.ResolveExpiry(height),
	})
	return state, nil
}

func (o *OracleRegister) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (o *OracleRegister) Reward(acc chainstate.Account) uint64 { return 0 }

func (o *OracleRegister) writePackedFields(w *codec.PackedWriter) {
	w.WriteBytes(o.QueryFormat)
	w.WriteBytes(o.ResponseFormat)
	w.WriteUint(o.QueryFee)
	w.WriteTTL(codec.TTLType(o.TTL.Type), o.TTL.Value)
}

func (o *OracleRegister) rlpFields() codec.Item {
	return codec.List(codec.Bytes(o.QueryFormat), codec.Bytes(o.ResponseFormat), codec.Uint(o.QueryFee), encodeTTL(o.TTL))
}

func (o *OracleRegister) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 4 {
		return chainerr.New(chainerr.KindEncodingError, "oracle register: expected 4 fields, got %d", fields.Len())
	}
	o.QueryFormat = fields.At(0).AsBytes()
	o.ResponseFormat = fields.At(1).AsBytes()
	o.QueryFee = fields.At(2).AsUint()
	o.TTL = decodeTTL(fields.At(3))
	return nil
}
