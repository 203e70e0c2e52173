// Package addrcodec implements the human-facing Base58Check envelope used
// to print protocol artifacts (accounts, tx hashes, roots, signatures) in
// API responses and CLI output: a two-letter prefix, a "$" separator, and
// the Base58 encoding of the payload with a 4-byte checksum appended.
package addrcodec

import (
	"errors"
	"strings"

	"github.com/decred/base58"

	"github.com/auricchain/auricd/internal/chaincrypto"
)

// ErrMalformedEnvelope is returned when a decoded string's prefix, framing,
// or checksum does not match expectations.
var ErrMalformedEnvelope = errors.New("addrcodec: malformed envelope")

// Prefix identifies the kind of artifact encoded in a Base58Check envelope.
type Prefix string

const (
	PrefixAccount    Prefix = "ak"
	PrefixTx         Prefix = "tx"
	PrefixTxsRoot    Prefix = "bx"
	PrefixSignature  Prefix = "sg"
	PrefixStateRoot  Prefix = "bs"
	checksumLen             = 4
	envelopeSeparator       = "$"
)

// Encode renders payload as "<prefix>$<base58(payload || checksum)>".
func Encode(prefix Prefix, payload []byte) string {
	checksum := checksumOf(payload)
	full := make([]byte, 0, len(payload)+checksumLen)
	full = append(full, payload...)
	full = append(full, checksum...)
	return string(prefix) + envelopeSeparator + base58.Encode(full)
}

// Decode parses a Base58Check envelope, verifying that its prefix matches
// want and that its checksum is valid. It returns the raw payload with the
// checksum stripped.
func Decode(want Prefix, s string) ([]byte, error) {
	parts := strings.SplitN(s, envelopeSeparator, 2)
	if len(parts) != 2 || parts[0] != string(want) {
		return nil, ErrMalformedEnvelope
	}
	raw := base58.Decode(parts[1])
	if len(raw) < checksumLen {
		return nil, ErrMalformedEnvelope
	}
	payload := raw[:len(raw)-checksumLen]
	gotChecksum := raw[len(raw)-checksumLen:]
	wantChecksum := checksumOf(payload)
	if string(gotChecksum) != string(wantChecksum) {
		return nil, ErrMalformedEnvelope
	}
	return payload, nil
}

func checksumOf(payload []byte) []byte {
	h := chaincrypto.Hash(payload)
	return h[:checksumLen]
}
