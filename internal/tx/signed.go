package tx

import (
	"github.com/auricchain/auricd/internal/chaincrypto"
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/merkle"
)

// SignedTx binds a DataTx to a detached signature over its packed bytes.
// Coinbase is the sole exception: it carries an empty Signature and a
// zero Data.Sender, and its verification skips the signature check.
type SignedTx struct {
	Data      DataTx
	Signature []byte
}

// Verify recomputes the packed bytes of the inner DataTx and checks the
// signature against the sender's public key. For Coinbase it checks no
// signature: a Coinbase must carry an empty Signature (a non-empty one is
// rejected) and only its static validity is checked. Every kind also runs
// the inner DataTx's static validity check, matching the envelope-level
// verify spec.
func (stx SignedTx) Verify(signer *chaincrypto.Signer) error {
	if stx.Data.Payload != nil && stx.Data.Payload.Type() == TypeCoinbase {
		if len(stx.Signature) != 0 {
			return chainerr.New(chainerr.KindInvalidSignature, "coinbase must carry no signature")
		}
		return stx.Data.StaticValid()
	}

	packed, err := stx.Data.Packed()
	if err != nil {
		return chainerr.New(chainerr.KindMalformed, "%v", err)
	}
	if !signer.Verify(stx.Data.Sender[:], packed, stx.Signature) {
		return chainerr.New(chainerr.KindInvalidSignature, "signature does not verify under sender key")
	}
	return stx.Data.StaticValid()
}

// Hash is the tx's identity hash, independent of who signed it.
func (stx SignedTx) Hash() ([32]byte, error) {
	return stx.Data.Hash()
}

// Sender returns the zero key for Coinbase, the signing account
// otherwise.
func (stx SignedTx) Sender() merkle.Key {
	return stx.Data.Sender
}
