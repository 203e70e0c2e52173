// Package chainerr defines the closed taxonomy of reasons a transaction
// or block can fail chain-state processing, modeled as a small Kind enum
// each wrapped in an Error carrying free-form context, so callers can
// branch on Kind with errors.Is while still logging a precise message.
package chainerr

import "fmt"

// Kind identifies the category of a chain-processing failure.
type Kind int

const (
	// InvalidSignature: signature does not verify or exceeds max size.
	KindInvalidSignature Kind = iota
	// MalformedTx: static structural check failed (bad version, wrong
	// sender count, negative amount).
	KindMalformed
	// InsufficientBalance: sender cannot cover fee + amount.
	KindInsufficientBalance
	// NonceOutOfOrder: tx nonce <= account nonce.
	KindNonceOutOfOrder
	// UnknownOracle: a referenced oracle address is not registered.
	KindUnknownOracle
	// OracleStateConflict: an oracle-subsystem precondition on existing
	// state was violated (already registered, query id collision,
	// already responded, oracle/sender mismatch).
	KindOracleStateConflict
	// SchemaMismatch: query or response data does not conform to the
	// oracle's declared format, or an offered fee undercuts it.
	KindSchemaMismatch
	// UnknownPreClaim: no pre-claim commitment exists for the given key.
	KindUnknownPreClaim
	// WrongPreClaimOwner: the pre-claim exists but is owned by a
	// different account.
	KindWrongPreClaimOwner
	// NameAlreadyClaimed: a claim already exists at the target namehash.
	KindNameAlreadyClaimed
	// MalformedName: name normalization or salt sizing failed.
	KindMalformedName
	// EncodingError: canonical encoder/decoder rejection.
	KindEncodingError
	// InvalidBlock: escalation produced by apply_block, wrapping the
	// first tx-level failure that aborted it.
	KindInvalidBlock
)

var kindNames = map[Kind]string{
	KindInvalidSignature:    "invalid_signature",
	KindMalformed:           "malformed_tx",
	KindInsufficientBalance: "insufficient_balance",
	KindNonceOutOfOrder:     "nonce_out_of_order",
	KindUnknownOracle:       "unknown_oracle",
	KindOracleStateConflict: "oracle_state_conflict",
	KindSchemaMismatch:      "schema_mismatch",
	KindUnknownPreClaim:     "unknown_preclaim",
	KindWrongPreClaimOwner:  "wrong_preclaim_owner",
	KindNameAlreadyClaimed:  "name_already_claimed",
	KindMalformedName:       "malformed_name",
	KindEncodingError:       "encoding_error",
	KindInvalidBlock:        "invalid_block",
}

// String renders the Kind's wire/log name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("chainerr.Kind(%d)", int(k))
}

// Error is a chain-processing failure: a closed Kind plus free-form
// context for logs and RPC error bodies, and an optional inner cause
// used only by InvalidBlock to carry the tx-level failure that aborted
// the block.
type Error struct {
	Kind    Kind
	Context string
	Inner   error
}

// New builds an Error of the given kind with a formatted context string.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...)}
}

// Escalate wraps cause as an InvalidBlock error, as apply_block does on
// the first tx-level failure it encounters.
func Escalate(cause error) *Error {
	return &Error{Kind: KindInvalidBlock, Context: cause.Error(), Inner: cause}
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Context
}

func (e *Error) Unwrap() error {
	return e.Inner
}

// Is lets errors.Is(err, chainerr.New(kind, "")) match any *Error of the
// same Kind regardless of context.
func (e *Error) Is(target error) bool {
	if other, ok := target.(*Error); ok {
		return other.Kind == e.Kind
	}
	return false
}

// KindOf extracts the Kind from err if it (or something it wraps) is a
// *Error, reporting ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if asError(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if ce, ok := err.(*Error); ok {
			*target = ce
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
