// Package codec implements the two deterministic binary encodings the
// consensus engine depends on: the packed form used for signing and
// hashing, and the RLP wire form used to serialize transactions for
// gossip and storage. Both split a writer (PackedWriter) from a reader
// (the RLP Item tree) rather than relying on reflection.
package codec

import (
	"encoding/binary"
	"errors"
	"sort"
)

// ErrEncoding is returned when the packed encoder is asked to encode a
// value that violates its declared width or is required but missing.
var ErrEncoding = errors.New("codec: encoding error")

// TTLType distinguishes an absolute block height from a relative offset.
type TTLType byte

const (
	TTLAbsolute TTLType = 0
	TTLRelative TTLType = 1
)

// PackedWriter builds the packed (signable) encoding of a DataTx. Each
// transaction variant calls its methods in the variant's fixed field
// order — the order is part of the variant's Go source, not discovered by
// reflection, so it can never silently change between a field rename and
// a protocol upgrade.
type PackedWriter struct {
	buf []byte
	err error
}

// NewPackedWriter returns an empty writer.
func NewPackedWriter() *PackedWriter {
	return &PackedWriter{}
}

// Err returns the first error encountered by any Write* call, if any.
func (w *PackedWriter) Err() error { return w.err }

// Bytes returns the accumulated packed encoding. Callers must check Err()
// first.
func (w *PackedWriter) Bytes() []byte { return w.buf }

// WriteUint writes a length-minimal big-endian unsigned integer, prefixed
// by a single length byte (0 for the value zero).
func (w *PackedWriter) WriteUint(v uint64) {
	if w.err != nil {
		return
	}
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	i := 0
	for i < 8 && tmp[i] == 0 {
		i++
	}
	minimal := tmp[i:]
	w.buf = append(w.buf, byte(len(minimal)))
	w.buf = append(w.buf, minimal...)
}

// WriteFixedBytes writes b verbatim with no length prefix, failing if it
// is not exactly width bytes — used for fields whose width is fixed by
// the protocol (public keys, amounts' denominating asset, etc).
func (w *PackedWriter) WriteFixedBytes(b []byte, width int) {
	if w.err != nil {
		return
	}
	if len(b) != width {
		w.err = ErrEncoding
		return
	}
	w.buf = append(w.buf, b...)
}

// WriteBytes writes a length-prefixed (varint-free, single uint32 length)
// byte string.
func (w *PackedWriter) WriteBytes(b []byte) {
	if w.err != nil {
		return
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, b...)
}

// WriteString writes a length-prefixed UTF-8 string.
func (w *PackedWriter) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

// WriteByte writes a single raw byte (used for small enums like TTLType).
func (w *PackedWriter) WriteByte(b byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, b)
}

// WriteTTL writes a TTL as its (type_byte, value) pair.
func (w *PackedWriter) WriteTTL(t TTLType, value uint64) {
	w.WriteByte(byte(t))
	w.WriteUint(value)
}

// WriteSortedMap writes a string-keyed byte-string-valued map with keys
// sorted lexicographically, each entry as (key-bytes, value-bytes).
func (w *PackedWriter) WriteSortedMap(m map[string][]byte) {
	if w.err != nil {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(keys)))
	w.buf = append(w.buf, lenBuf[:]...)
	for _, k := range keys {
		w.WriteString(k)
		w.WriteBytes(m[k])
	}
}
