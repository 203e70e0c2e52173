package chainstate

import (
	"encoding/binary"
	"errors"
)

// ErrMalformedAccount is returned when decoding account bytes that are
// corrupt or truncated.
var ErrMalformedAccount = errors.New("chainstate: malformed account encoding")

// Marshal serializes acc into the fixed-then-variable layout stored as
// the accounts trie's leaf value: balance, nonce, then a length-prefixed
// locked-funds schedule.
func Marshal(acc Account) []byte {
	buf := make([]byte, 16, 16+len(acc.Locked)*16+4)
	binary.BigEndian.PutUint64(buf[0:8], acc.Balance)
	binary.BigEndian.PutUint64(buf[8:16], acc.Nonce)

	var count [4]byte
	binary.BigEndian.PutUint32(count[:], uint32(len(acc.Locked)))
	buf = append(buf, count[:]...)

	for _, e := range acc.Locked {
		var entry [16]byte
		binary.BigEndian.PutUint64(entry[0:8], e.Height)
		binary.BigEndian.PutUint64(entry[8:16], e.Amount)
		buf = append(buf, entry[:]...)
	}
	return buf
}

// Unmarshal parses bytes produced by Marshal.
func Unmarshal(data []byte) (Account, error) {
	if len(data) < 20 {
		return Account{}, ErrMalformedAccount
	}
	acc := Account{
		Balance: binary.BigEndian.Uint64(data[0:8]),
		Nonce:   binary.BigEndian.Uint64(data[8:16]),
	}
	count := binary.BigEndian.Uint32(data[16:20])
	offset := 20
	for i := uint32(0); i < count; i++ {
		if offset+16 > len(data) {
			return Account{}, ErrMalformedAccount
		}
		acc.Locked = append(acc.Locked, LockedEntry{
			Height: binary.BigEndian.Uint64(data[offset : offset+8]),
			Amount: binary.BigEndian.Uint64(data[offset+8 : offset+16]),
		})
		offset += 16
	}
	if offset != len(data) {
		return Account{}, ErrMalformedAccount
	}
	return acc, nil
}
