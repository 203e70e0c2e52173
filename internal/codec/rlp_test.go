package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLP_RoundTrip_BytesAndUint(t *testing.T) {
	orig := List(
		Uint(12),
		Uint(1),
		Bytes([]byte("hello world, this is a longer string than 55 bytes to exercise the long-form header")),
		Uint(0),
	)
	encoded := Encode(orig)
	decoded, rest, err := Decode(encoded)
	require.NoError(t, err)
	assert.Empty(t, rest)
	require.True(t, decoded.IsList())
	require.Equal(t, 4, decoded.Len())
	assert.Equal(t, uint64(12), decoded.At(0).AsUint())
	assert.Equal(t, uint64(1), decoded.At(1).AsUint())
	assert.Equal(t, orig.At(2).AsBytes(), decoded.At(2).AsBytes())
	assert.Equal(t, uint64(0), decoded.At(3).AsUint())
}

func TestRLP_RoundTrip_NestedLists(t *testing.T) {
	inner := List(Uint(42), Bytes([]byte{0xde, 0xad, 0xbe, 0xef}))
	outer := List(Uint(11), inner, Bytes(nil))
	data := Encode(outer)
	decoded, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), decoded.At(0).AsUint())
	assert.True(t, decoded.At(1).IsList())
	assert.Equal(t, uint64(42), decoded.At(1).At(0).AsUint())
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, decoded.At(1).At(1).AsBytes())
}

func TestRLP_EmptyByteString(t *testing.T) {
	data := Encode(Bytes(nil))
	decoded, rest, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Empty(t, decoded.AsBytes())
}

func TestRLP_SingleByteUnder0x80EncodesAsItself(t *testing.T) {
	data := Encode(Bytes([]byte{0x41}))
	assert.Equal(t, []byte{0x41}, data)
}

func TestRLP_DecodeRejectsTruncatedInput(t *testing.T) {
	_, _, err := Decode([]byte{0x83, 0x01, 0x02})
	assert.ErrorIs(t, err, ErrRLPDecode)
}

func TestRLP_DecodeRejectsEmptyInput(t *testing.T) {
	_, _, err := Decode(nil)
	assert.ErrorIs(t, err, ErrRLPDecode)
}

func TestRLP_LongFormListRoundTrip(t *testing.T) {
	items := make([]Item, 0, 40)
	for i := 0; i < 40; i++ {
		items = append(items, Bytes([]byte{byte(i), byte(i), byte(i), byte(i)}))
	}
	data := Encode(List(items...))
	decoded, _, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, 40, decoded.Len())
	for i := 0; i < 40; i++ {
		assert.Equal(t, items[i].AsBytes(), decoded.At(i).AsBytes())
	}
}
