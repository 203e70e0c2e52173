package chaincrypto

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Secp256k1Provider implements Provider over the secp256k1 curve, using
// x-only (32-byte) public keys and DER-encoded ECDSA signatures over the
// BLAKE2b digest of the message (secp256k1/ECDSA signs a fixed-size
// digest, not an arbitrary-length message). It is registered as the
// protocol's alternate signature scheme alongside Ed25519.
//
// A public key is stored as just the X coordinate of the compressed
// point (PublicKeySize bytes), matching the protocol's fixed account-key
// width. The dropped parity bit means Verify has to try both candidate
// points (even and odd Y) and accept if either one checks out.
type Secp256k1Provider struct{}

var errInvalidSecp256k1Key = errors.New("chaincrypto: invalid secp256k1 key material")

func (Secp256k1Provider) Scheme() Scheme { return SchemeSecp256k1 }

func (Secp256k1Provider) GenerateKeypair(seed []byte) (pub, priv []byte, err error) {
	var keyBytes []byte
	if len(seed) == 32 {
		keyBytes = seed
	} else {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, nil, err
		}
	}
	privKey, pubKey := btcec.PrivKeyFromBytes(keyBytes)
	if privKey == nil {
		return nil, nil, errInvalidSecp256k1Key
	}
	compressed := pubKey.SerializeCompressed()
	return compressed[1:], privKey.Serialize(), nil
}

func (Secp256k1Provider) Sign(priv, msg []byte) ([]byte, error) {
	if len(priv) != 32 {
		return nil, errInvalidSecp256k1Key
	}
	privKey := secp256k1.PrivKeyFromBytes(priv)
	digest := SignDigest(msg)
	sig := ecdsa.Sign(privKey, digest[:])
	return sig.Serialize(), nil
}

func (Secp256k1Provider) Verify(pub, msg, sig []byte) bool {
	if len(pub) != PublicKeySize {
		return false
	}
	parsedSig, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	digest := SignDigest(msg)

	for _, prefix := range [2]byte{0x02, 0x03} {
		compressed := make([]byte, 0, PublicKeySize+1)
		compressed = append(compressed, prefix)
		compressed = append(compressed, pub...)
		pubKey, err := secp256k1.ParsePubKey(compressed)
		if err != nil {
			continue
		}
		if parsedSig.Verify(digest[:], pubKey) {
			return true
		}
	}
	return false
}
