package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackedWriter_Deterministic(t *testing.T) {
	build := func() []byte {
		w := NewPackedWriter()
		w.WriteUint(1)
		w.WriteFixedBytes(make([]byte, 32), 32)
		w.WriteUint(40)
		w.WriteUint(1)
		w.WriteUint(1)
		require.NoError(t, w.Err())
		return w.Bytes()
	}
	assert.Equal(t, build(), build())
}

func TestPackedWriter_UintIsLengthMinimal(t *testing.T) {
	w := NewPackedWriter()
	w.WriteUint(0)
	assert.Equal(t, []byte{0}, w.Bytes())

	w2 := NewPackedWriter()
	w2.WriteUint(1)
	assert.Equal(t, []byte{1, 1}, w2.Bytes())

	w3 := NewPackedWriter()
	w3.WriteUint(256)
	assert.Equal(t, []byte{2, 1, 0}, w3.Bytes())
}

func TestPackedWriter_FixedBytesRejectsWrongWidth(t *testing.T) {
	w := NewPackedWriter()
	w.WriteFixedBytes(make([]byte, 10), 32)
	assert.ErrorIs(t, w.Err(), ErrEncoding)
}

func TestPackedWriter_SortedMapIsOrderIndependent(t *testing.T) {
	m1 := map[string][]byte{"b": {2}, "a": {1}, "c": {3}}
	m2 := map[string][]byte{"c": {3}, "a": {1}, "b": {2}}

	w1 := NewPackedWriter()
	w1.WriteSortedMap(m1)
	w2 := NewPackedWriter()
	w2.WriteSortedMap(m2)
	assert.Equal(t, w1.Bytes(), w2.Bytes())
}

func TestPackedWriter_TTLEncoding(t *testing.T) {
	w := NewPackedWriter()
	w.WriteTTL(TTLRelative, 100)
	assert.Equal(t, byte(TTLRelative), w.Bytes()[0])
}
