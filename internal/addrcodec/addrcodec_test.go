package addrcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	payload := make([]byte, 32)
	for i := range payload {
		payload[i] = byte(i)
	}
	enc := Encode(PrefixAccount, payload)
	assert.True(t, len(enc) > 3)
	assert.Equal(t, "ak", enc[:2])

	decoded, err := Decode(PrefixAccount, enc)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestDecode_WrongPrefixRejected(t *testing.T) {
	enc := Encode(PrefixAccount, []byte("hello"))
	_, err := Decode(PrefixTx, enc)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestDecode_CorruptedChecksumRejected(t *testing.T) {
	enc := Encode(PrefixSignature, []byte("a-signature-payload"))
	corrupted := enc[:len(enc)-1] + "Z"
	_, err := Decode(PrefixSignature, corrupted)
	assert.Error(t, err)
}

func TestDecode_MissingSeparatorRejected(t *testing.T) {
	_, err := Decode(PrefixAccount, "akNoSeparatorHere")
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestEncode_DifferentPrefixesDifferentOutput(t *testing.T) {
	payload := []byte("same-payload")
	a := Encode(PrefixAccount, payload)
	b := Encode(PrefixTx, payload)
	assert.NotEqual(t, a, b)
}
