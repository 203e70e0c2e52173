package chaincrypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"io"
)

// Ed25519Provider implements Provider using stdlib crypto/ed25519, with raw
// unprefixed 32-byte public keys (the protocol's keys carry no algorithm
// tag byte; the scheme is fixed by configuration, not sniffed from the key).
type Ed25519Provider struct{}

var errInvalidEd25519Key = errors.New("chaincrypto: invalid ed25519 key material")

func (Ed25519Provider) Scheme() Scheme { return SchemeEd25519 }

func (Ed25519Provider) GenerateKeypair(seed []byte) (pub, priv []byte, err error) {
	var seedBuf []byte
	if len(seed) == ed25519.SeedSize {
		seedBuf = seed
	} else {
		seedBuf = make([]byte, ed25519.SeedSize)
		if _, err := io.ReadFull(rand.Reader, seedBuf); err != nil {
			return nil, nil, err
		}
	}
	full := ed25519.NewKeyFromSeed(seedBuf)
	pubKey := full.Public().(ed25519.PublicKey)
	return []byte(pubKey), seedBuf, nil
}

func (Ed25519Provider) Sign(priv, msg []byte) ([]byte, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, errInvalidEd25519Key
	}
	signing := ed25519.NewKeyFromSeed(priv)
	return ed25519.Sign(signing, msg), nil
}

func (Ed25519Provider) Verify(pub, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}
