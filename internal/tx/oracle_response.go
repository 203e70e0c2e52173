package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeOracleResponse, func() Payload { return &OracleResponse{} })
}

// OracleResponse sets the response on a previously created
// interaction-object, identified by the query id it was created under.
type OracleResponse struct {
	QueryID      merkle.Key
	ResponseData []byte
}

func (r *OracleResponse) Type() Type { return TypeOracleResponse }

func (r *OracleResponse) StaticValid() error {
	if len(r.ResponseData) == 0 {
		return chainerr.New(chainerr.KindMalformed, "oracle response requires non-empty response data")
	}
	return nil
}

func (r *OracleResponse) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	if acc.Balance < fee {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee %d", acc.Balance, fee)
	}
	interaction, exists := state.Interaction(r.QueryID)
	if !exists {
		return chainerr.New(chainerr.KindUnknownOracle, "no interaction for query id")
	}
	if interaction.HasResponse {
		return chainerr.New(chainerr.KindOracleStateConflict, "query already responded to")
	}
	if interaction.OracleAddress != sender {
		return chainerr.New(chainerr.KindOracleStateConflict, "sender is not the queried oracle")
	}
	oracle, exists := state.Oracle(sender)
	if !exists {
		return chainerr.New(chainerr.KindUnknownOracle, "responding account is not a registered oracle")
	}
	if !conformsToFormat(r.ResponseData, oracle.ResponseFormat) {
		return chainerr.New(chainerr.KindSchemaMismatch, "response data does not conform to oracle's declared response format")
	}
	return nil
}

func (r *OracleResponse) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
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

	interaction, _ := state.Interaction(r.QueryID)
	interaction.ResponseData = r.ResponseData
	interaction.HasResponse = true
	state = state.PutInteraction(r.QueryID, interaction)
	return state, nil
}

func (r *OracleResponse) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (r *OracleResponse) Reward(acc chainstate.Account) uint64 { return 0 }

func (r *OracleResponse) writePackedFields(w *codec.PackedWriter) {
	w.WriteFixedBytes(r.QueryID[:], merkle.KeySize)
	w.WriteBytes(r.ResponseData)
}

func (r *OracleResponse) rlpFields() codec.Item {
	return codec.List(codec.Bytes(r.QueryID[:]), codec.Bytes(r.ResponseData))
}

func (r *OracleResponse) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 2 {
		return chainerr.New(chainerr.KindEncodingError, "oracle response: expected 2 fields, got %d", fields.Len())
	}
	queryID := fields.At(0).AsBytes()
	if len(queryID) != merkle.KeySize {
		return chainerr.New(chainerr.KindEncodingError, "oracle response: query id must be %d bytes", merkle.KeySize)
	}
	copy(r.QueryID[:], queryID)
	r.ResponseData = fields.At(1).AsBytes()
	return nil
}
