package codec

import (
	"encoding/binary"
	"errors"
)

// ErrRLPDecode is returned for any malformed RLP wire input.
var ErrRLPDecode = errors.New("codec: rlp decode error")

// Item is a node in the recursive-length-prefix tree: either a raw byte
// string or an ordered list of Items.
type Item struct {
	isList bool
	bytes  []byte
	list   []Item
}

// Bytes wraps a byte string as a leaf Item.
func Bytes(b []byte) Item { return Item{bytes: b} }

// Uint wraps an unsigned integer as a length-minimal byte string leaf, the
// RLP convention for integers (0 encodes as the empty string).
func Uint(v uint64) Item {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	i := 0
	for i < 8 && tmp[i] == 0 {
		i++
	}
	return Item{bytes: append([]byte(nil), tmp[i:]...)}
}

// List wraps a sequence of Items as a list Item.
func List(items ...Item) Item { return Item{isList: true, list: items} }

// IsList reports whether the item is a list rather than a byte string.
func (it Item) IsList() bool { return it.isList }

// AsBytes returns the item's raw bytes (meaningless for a list).
func (it Item) AsBytes() []byte { return it.bytes }

// AsUint decodes the item's bytes as a big-endian unsigned integer.
func (it Item) AsUint() uint64 {
	var tmp [8]byte
	copy(tmp[8-len(it.bytes):], it.bytes)
	return binary.BigEndian.Uint64(tmp[:])
}

// AsList returns the item's child list.
func (it Item) AsList() []Item { return it.list }

// At returns the i-th element of a list item, or a zero Item if out of range.
func (it Item) At(i int) Item {
	if i < 0 || i >= len(it.list) {
		return Item{}
	}
	return it.list[i]
}

// Len returns the number of elements in a list item.
func (it Item) Len() int { return len(it.list) }

// Encode serializes an Item tree into RLP wire bytes.
func Encode(it Item) []byte {
	if !it.isList {
		return encodeBytes(it.bytes)
	}
	var payload []byte
	for _, child := range it.list {
		payload = append(payload, Encode(child)...)
	}
	return append(encodeHeader(0xc0, 0xf7, len(payload)), payload...)
}

func encodeBytes(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return []byte{b[0]}
	}
	return append(encodeHeader(0x80, 0xb7, len(b)), b...)
}

// encodeHeader builds an RLP length header. shortBase is the prefix byte
// for payloads under 56 bytes (shortBase+len); longBase is the prefix
// byte for the long form, followed by a big-endian length-of-length and
// the length itself.
func encodeHeader(shortBase, longBase byte, n int) []byte {
	if n < 56 {
		return []byte{shortBase + byte(n)}
	}
	lenBytes := minimalBigEndian(uint64(n))
	header := make([]byte, 0, 1+len(lenBytes))
	header = append(header, longBase+byte(len(lenBytes)))
	header = append(header, lenBytes...)
	return header
}

func minimalBigEndian(v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	i := 0
	for i < 7 && tmp[i] == 0 {
		i++
	}
	return tmp[i:]
}

// Decode parses a single RLP item from the front of data, returning the
// item and the unconsumed remainder.
func Decode(data []byte) (Item, []byte, error) {
	if len(data) == 0 {
		return Item{}, nil, ErrRLPDecode
	}
	prefix := data[0]

	switch {
	case prefix < 0x80:
		return Item{bytes: []byte{prefix}}, data[1:], nil

	case prefix < 0xb8:
		n := int(prefix - 0x80)
		if len(data) < 1+n {
			return Item{}, nil, ErrRLPDecode
		}
		return Item{bytes: append([]byte(nil), data[1:1+n]...)}, data[1+n:], nil

	case prefix < 0xc0:
		lenOfLen := int(prefix - 0xb7)
		n, rest, err := decodeLength(data[1:], lenOfLen)
		if err != nil {
			return Item{}, nil, err
		}
		if len(rest) < n {
			return Item{}, nil, ErrRLPDecode
		}
		return Item{bytes: append([]byte(nil), rest[:n]...)}, rest[n:], nil

	case prefix < 0xf8:
		n := int(prefix - 0xc0)
		if len(data) < 1+n {
			return Item{}, nil, ErrRLPDecode
		}
		return decodeList(data[1 : 1+n], data[1+n:])

	default:
		lenOfLen := int(prefix - 0xf7)
		n, rest, err := decodeLength(data[1:], lenOfLen)
		if err != nil {
			return Item{}, nil, err
		}
		if len(rest) < n {
			return Item{}, nil, ErrRLPDecode
		}
		return decodeList(rest[:n], rest[n:])
	}
}

func decodeLength(data []byte, lenOfLen int) (int, []byte, error) {
	if len(data) < lenOfLen {
		return 0, nil, ErrRLPDecode
	}
	var tmp [8]byte
	copy(tmp[8-lenOfLen:], data[:lenOfLen])
	return int(binary.BigEndian.Uint64(tmp[:])), data[lenOfLen:], nil
}

func decodeList(payload []byte, rest []byte) (Item, []byte, error) {
	var items []Item
	for len(payload) > 0 {
		item, remainder, err := Decode(payload)
		if err != nil {
			return Item{}, nil, err
		}
		items = append(items, item)
		payload = remainder
	}
	return Item{isList: true, list: items}, rest, nil
}
