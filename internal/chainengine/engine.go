// Package chainengine orchestrates per-block application of signed
// transactions against a chain-state snapshot: verify signature, dispatch
// to the transaction's variant, isolate failures, sweep expired oracle
// records, and commit. ApplyBlock and FilterValid share a single
// dispatch path so acceptance in one implies acceptance in the other
// against the same starting snapshot.
package chainengine

import (
	"github.com/auricchain/auricd/internal/chaincrypto"
	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainlog"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/tx"
)

// Engine applies blocks of signed transactions to chain-state snapshots.
type Engine struct {
	signer *chaincrypto.Signer
	log    *chainlog.Logger
}

// New builds an Engine that verifies signatures with signer.
func New(signer *chaincrypto.Signer) *Engine {
	return &Engine{signer: signer, log: chainlog.New("chainengine")}
}

// dispatch runs the shared verify -> preprocess -> apply path for one
// transaction against state, returning the new state on success.
func (e *Engine) dispatch(state chainstate.Snapshot, height uint64, stx tx.SignedTx) (chainstate.Snapshot, error) {
	if err := stx.Verify(e.signer); err != nil {
		return state, err
	}
	encoded, err := tx.EncodeRLP(stx)
	if err != nil {
		return state, err
	}
	if minFee := stx.Data.Payload.MinFee(len(encoded), tx.RolePool); stx.Data.Fee < minFee {
		return state, chainerr.New(chainerr.KindMalformed, "fee %d below minimum %d for %d-byte tx", stx.Data.Fee, minFee, len(encoded))
	}
	if err := stx.Data.Preprocess(state, height); err != nil {
		return state, err
	}
	return stx.Data.Apply(state, height)
}

// ApplyBlock folds txs through dispatch in order, aborting the whole
// block on the first failure. After every tx succeeds, it sweeps expired
// oracle records and commits.
func (e *Engine) ApplyBlock(state chainstate.Snapshot, height uint64, txs []tx.SignedTx) (chainstate.Snapshot, error) {
	for i, stx := range txs {
		newState, err := e.dispatch(state, height, stx)
		if err != nil {
			e.log.Printf("block %d: tx %d rejected: %v", height, i, err)
			return state, chainerr.Escalate(err)
		}
		state = newState
	}
	state = state.ExpireOracles(height)
	state = state.ExpireInteractions(height)
	state = state.MatureLockedFunds(height)
	e.log.Printf("block %d: applied %d transactions", height, len(txs))
	return state, nil
}

// FilterValid runs the same dispatch path as ApplyBlock but skips a
// failing tx instead of aborting, threading the pre-tx state forward and
// preserving the order of the surviving subsequence. The returned state
// mirrors what ApplyBlock would produce over the same surviving list, so
// ApplyBlock(state, height, FilterValid(state, height, txs)) always
// succeeds.
func (e *Engine) FilterValid(state chainstate.Snapshot, height uint64, txs []tx.SignedTx) ([]tx.SignedTx, chainstate.Snapshot) {
	survivors := make([]tx.SignedTx, 0, len(txs))
	for _, stx := range txs {
		newState, err := e.dispatch(state, height, stx)
		if err != nil {
			continue
		}
		state = newState
		survivors = append(survivors, stx)
	}
	state = state.ExpireOracles(height)
	state = state.ExpireInteractions(height)
	state = state.MatureLockedFunds(height)
	return survivors, state
}
