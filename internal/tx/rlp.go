package tx

import (
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

// encodeTTL and decodeTTL give every variant carrying a chainstate.TTL a
// shared two-element RLP representation: (type, value).
func encodeTTL(t chainstate.TTL) codec.Item {
	return codec.List(codec.Uint(uint64(t.Type)), codec.Uint(t.Value))
}

func decodeTTL(item codec.Item) chainstate.TTL {
	return chainstate.TTL{
		Type:  chainstate.TTLType(item.At(0).AsUint()),
		Value: item.At(1).AsUint(),
	}
}

// Wire tags for the two envelope kinds. Every transaction kind, envelope
// or payload, is RLP-encoded as a list led by [tag, version, ...]: the
// envelopes carry their fields inline, while a payload carries its fields
// as one nested list. These two are the envelope tags, fixed alongside
// the payload tags below.
const (
	rlpTagAccount  byte = 10
	rlpTagSignedTx byte = 11
)

// rlpVersion is the wire-format version carried by every tagged RLP item.
// The protocol has never needed a second version, so it is a constant
// rather than a config field.
const rlpVersion uint64 = 1

// rlpTag maps each transaction type to its frozen wire tag. The table is
// fixed once and for all: growing it only ever appends, never reassigns
// an existing tag.
var rlpTag = map[Type]byte{
	TypeSpend:          12,
	TypeCoinbase:       13,
	TypeOracleRegister: 22,
	TypeOracleQuery:    23,
	TypeOracleResponse: 24,
	TypeOracleExtend:   25,
	TypeNamePreClaim:   26,
	TypeNameClaim:      27,
}

var typeForTag map[byte]Type

func init() {
	typeForTag = make(map[byte]Type, len(rlpTag))
	for t, tag := range rlpTag {
		typeForTag[tag] = t
	}
}

// rlpFieldCoder is implemented by every variant to serialize and parse
// its own fields inside the envelope's RLP list.
type rlpFieldCoder interface {
	rlpFields() codec.Item
	fromRLPFields(fields codec.Item) error
}

// EncodeRLP serializes a SignedTx into its wire form: the nested envelope
// [11, version, rlp([signature]), rlp(inner_data_tx)], where inner_data_tx
// is itself the tagged list [10, version, sender, fee, nonce, payload] and
// payload is [payload-tag, version, payload-fields].
func EncodeRLP(stx SignedTx) ([]byte, error) {
	tag, ok := rlpTag[stx.Data.Payload.Type()]
	if !ok {
		return nil, chainerr.New(chainerr.KindEncodingError, "no rlp tag for type %s", stx.Data.Payload.Type())
	}
	coder, ok := stx.Data.Payload.(rlpFieldCoder)
	if !ok {
		return nil, chainerr.New(chainerr.KindEncodingError, "type %s has no rlp field coder", stx.Data.Payload.Type())
	}

	payloadItem := codec.List(
		codec.Uint(uint64(tag)),
		codec.Uint(rlpVersion),
		coder.rlpFields(),
	)
	dataTxItem := codec.List(
		codec.Uint(uint64(rlpTagAccount)),
		codec.Uint(rlpVersion),
		codec.Bytes(stx.Data.Sender[:]),
		codec.Uint(stx.Data.Fee),
		codec.Uint(stx.Data.Nonce),
		payloadItem,
	)
	sigItem := codec.List(codec.Bytes(stx.Signature))
	envelope := codec.List(
		codec.Uint(uint64(rlpTagSignedTx)),
		codec.Uint(rlpVersion),
		sigItem,
		dataTxItem,
	)
	return codec.Encode(envelope), nil
}

// DecodeRLP parses a SignedTx from its nested wire envelope.
func DecodeRLP(data []byte) (SignedTx, error) {
	item, rest, err := codec.Decode(data)
	if err != nil {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "%v", err)
	}
	if len(rest) != 0 {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "trailing bytes after transaction")
	}
	if !item.IsList() || item.Len() != 4 {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "malformed signed-tx envelope")
	}
	if tag := byte(item.At(0).AsUint()); tag != rlpTagSignedTx {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "expected signed-tx tag %d, got %d", rlpTagSignedTx, tag)
	}

	sigItem := item.At(2)
	if !sigItem.IsList() || sigItem.Len() != 1 {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "malformed signature envelope")
	}
	signature := sigItem.At(0).AsBytes()

	dataTxItem := item.At(3)
	if !dataTxItem.IsList() || dataTxItem.Len() != 6 {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "malformed inner data-tx envelope")
	}
	if tag := byte(dataTxItem.At(0).AsUint()); tag != rlpTagAccount {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "expected data-tx tag %d, got %d", rlpTagAccount, tag)
	}

	sender := dataTxItem.At(2).AsBytes()
	if len(sender) != merkle.KeySize {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "sender must be %d bytes, got %d", merkle.KeySize, len(sender))
	}
	var senderKey merkle.Key
	copy(senderKey[:], sender)

	payloadItem := dataTxItem.At(5)
	if !payloadItem.IsList() || payloadItem.Len() != 3 {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "malformed payload envelope")
	}
	payloadTag := byte(payloadItem.At(0).AsUint())
	typ, ok := typeForTag[payloadTag]
	if !ok {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "unknown rlp tag %d", payloadTag)
	}

	payload, err := NewFromType(typ)
	if err != nil {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "%v", err)
	}
	coder, ok := payload.(rlpFieldCoder)
	if !ok {
		return SignedTx{}, chainerr.New(chainerr.KindEncodingError, "type %s has no rlp field coder", typ)
	}
	if err := coder.fromRLPFields(payloadItem.At(2)); err != nil {
		return SignedTx{}, err
	}

	return SignedTx{
		Data: DataTx{
			Sender:  senderKey,
			Fee:     dataTxItem.At(3).AsUint(),
			Nonce:   dataTxItem.At(4).AsUint(),
			Payload: payload,
		},
		Signature: signature,
	}, nil
}
