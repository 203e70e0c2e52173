package tx

import (
	"encoding/binary"

	"github.com/auricchain/auricd/internal/chaincrypto"
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

func init() {
	Register(TypeOracleQuery, func() Payload { return &OracleQuery{} })
}

// OracleQuery submits a query to a registered oracle, creating an
// interaction-object keyed by a query id derived from the sender and
// nonce so resubmission under a new nonce never collides.
type OracleQuery struct {
	OracleAddress merkle.Key
	QueryData     []byte
	QueryFee      uint64
	QueryTTL      chainstate.TTL
	ResponseTTL   chainstate.TTL
}

// QueryID derives the deterministic interaction key for a query from its
// sender and nonce.
func QueryID(sender merkle.Key, nonce uint64) merkle.Key {
	buf := make([]byte, merkle.KeySize+8)
	copy(buf, sender[:])
	binary.BigEndian.PutUint64(buf[merkle.KeySize:], nonce)
	return merkle.Key(chaincrypto.Hash(buf))
}

// conformsToFormat reports whether data conforms to an oracle's declared
// format. Formats are opaque byte strings to this engine, so conformance
// is checked the one way that is meaningful without interpreting them:
// data must be at least as long as the format and carry it as a prefix.
// An empty format places no constraint on the data.
func conformsToFormat(data, format []byte) bool {
	if len(format) == 0 {
		return true
	}
	if len(data) < len(format) {
		return false
	}
	for i, b := range format {
		if data[i] != b {
			return false
		}
	}
	return true
}

func (q *OracleQuery) Type() Type { return TypeOracleQuery }

func (q *OracleQuery) StaticValid() error {
	if len(q.QueryData) == 0 {
		return chainerr.New(chainerr.KindMalformed, "oracle query requires non-empty query data")
	}
	return nil
}

func (q *OracleQuery) Preprocess(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) error {
	acc := state.Account(sender)
	if nonce <= acc.Nonce {
		return chainerr.New(chainerr.KindNonceOutOfOrder, "tx nonce %d <= account nonce %d", nonce, acc.Nonce)
	}
	oracle, exists := state.Oracle(q.OracleAddress)
	if !exists {
		return chainerr.New(chainerr.KindUnknownOracle, "unknown oracle address")
	}
	if q.QueryFee < oracle.QueryFee {
		return chainerr.New(chainerr.KindSchemaMismatch, "query fee %d below registered oracle fee %d", q.QueryFee, oracle.QueryFee)
	}
	if !conformsToFormat(q.QueryData, oracle.QueryFormat) {
		return chainerr.New(chainerr.KindSchemaMismatch, "query data does not conform to oracle's declared query format")
	}
	if acc.Balance < fee+q.QueryFee {
		return chainerr.New(chainerr.KindInsufficientBalance, "balance %d < fee+query_fee %d", acc.Balance, fee+q.QueryFee)
	}
	if _, exists := state.Interaction(QueryID(sender, nonce)); exists {
		return chainerr.New(chainerr.KindOracleStateConflict, "query id already exists")
	}
	return nil
}

func (q *OracleQuery) Apply(state chainstate.Snapshot, sender merkle.Key, fee, nonce, height uint64) (chainstate.Snapshot, error) {
	oracle, _ := state.Oracle(q.OracleAddress)

	acc := state.Account(sender)
	acc, err := chainstate.Debit(acc, fee+oracle.QueryFee)
	if err != nil {
		return state, chainerr.New(chainerr.KindInsufficientBalance, "%v", err)
	}
	acc, err = chainstate.BumpNonce(acc, nonce)
	if err != nil {
		return state, chainerr.New(chainerr.KindNonceOutOfOrder, "%v", err)
	}
	state = state.PutAccount(sender, acc)

	oracleAcc := state.Account(q.OracleAddress)
	oracleAcc = chainstate.Credit(oracleAcc, oracle.QueryFee)
	state = state.PutAccount(q.OracleAddress, oracleAcc)

	state = state.PutInteraction(QueryID(sender, nonce), chainstate.InteractionObject{
		OracleAddress:  q.OracleAddress,
		Sender:         sender,
		QueryData:      q.QueryData,
		QueryExpiry:    q.QueryTTL.ResolveExpiry(height),
		ResponseExpiry: q.ResponseTTL.ResolveExpiry(height),
	})
	return state, nil
}

func (q *OracleQuery) MinFee(size int, role Role) uint64 {
	return minFeeForRole(size, role)
}

func (q *OracleQuery) Reward(acc chainstate.Account) uint64 { return 0 }

func (q *OracleQuery) writePackedFields(w *codec.PackedWriter) {
	w.WriteFixedBytes(q.OracleAddress[:], merkle.KeySize)
	w.WriteBytes(q.QueryData)
	w.WriteUint(q.QueryFee)
	w.WriteTTL(codec.TTLType(q.QueryTTL.Type), q.QueryTTL.Value)
	w.WriteTTL(codec.TTLType(q.ResponseTTL.Type), q.ResponseTTL.Value)
}

func (q *OracleQuery) rlpFields() codec.Item {
	return codec.List(
		codec.Bytes(q.OracleAddress[:]),
		codec.Bytes(q.QueryData),
		codec.Uint(q.QueryFee),
		encodeTTL(q.QueryTTL),
		encodeTTL(q.ResponseTTL),
	)
}

func (q *OracleQuery) fromRLPFields(fields codec.Item) error {
	if fields.Len() != 5 {
		return chainerr.New(chainerr.KindEncodingError, "oracle query: expected 5 fields, got %d", fields.Len())
	}
	oracleAddress := fields.At(0).AsBytes()
	if len(oracleAddress) != merkle.KeySize {
		return chainerr.New(chainerr.KindEncodingError, "oracle query: oracle address must be %d bytes", merkle.KeySize)
	}
	copy(q.OracleAddress[:], oracleAddress)
	q.QueryData = fields.At(1).AsBytes()
	q.QueryFee = fields.At(2).AsUint()
	q.QueryTTL = decodeTTL(fields.At(3))
	q.ResponseTTL = decodeTTL(fields.At(4))
	return nil
}
