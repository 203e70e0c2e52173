package tx

import (
	"github.com/auricchain/auricd/internal/chaincrypto"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/codec"
	"github.com/auricchain/auricd/internal/merkle"
)

// DataTx is the unsigned transaction body: a sender, fee, nonce, and a
// variant-specific payload. Coinbase is the only kind whose Sender is
// the zero key.
type DataTx struct {
	Sender  merkle.Key
	Fee     uint64
	Nonce   uint64
	Payload Payload
}

// Packed renders the canonical, deterministic byte form of tx used both
// for hashing and for signing. Field order is fixed: kind, sender, fee,
// nonce, then the payload's own packed fields in its declared order.
func (tx DataTx) Packed() ([]byte, error) {
	w := codec.NewPackedWriter()
	w.WriteByte(byte(tx.Payload.Type()))
	w.WriteFixedBytes(tx.Sender[:], merkle.KeySize)
	w.WriteUint(tx.Fee)
	w.WriteUint(tx.Nonce)
	if packer, ok := tx.Payload.(packedFieldWriter); ok {
		packer.writePackedFields(w)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// packedFieldWriter lets a variant contribute its own fields, in its own
// fixed order, to the enclosing DataTx's packed encoding.
type packedFieldWriter interface {
	writePackedFields(w *codec.PackedWriter)
}

// Hash is the tx's identity hash: the hash of its packed bytes, which
// depends only on the DataTx and not on any signature over it.
func (tx DataTx) Hash() ([32]byte, error) {
	packed, err := tx.Packed()
	if err != nil {
		return [32]byte{}, err
	}
	return chaincrypto.Hash(packed), nil
}

// StaticValid delegates to the payload after checking the envelope's own
// intrinsic shape.
func (tx DataTx) StaticValid() error {
	return tx.Payload.StaticValid()
}

// Preprocess delegates to the payload, passing the envelope fields it
// needs to check fee/nonce/balance preconditions against.
func (tx DataTx) Preprocess(state chainstate.Snapshot, height uint64) error {
	return tx.Payload.Preprocess(state, tx.Sender, tx.Fee, tx.Nonce, height)
}

// Apply delegates to the payload, passing the envelope fields it needs
// to deduct fee and bump the sender's nonce alongside its own effects.
func (tx DataTx) Apply(state chainstate.Snapshot, height uint64) (chainstate.Snapshot, error) {
	return tx.Payload.Apply(state, tx.Sender, tx.Fee, tx.Nonce, height)
}
