// Package chaincrypto provides the fixed-size digest and detached-signature
// primitives the consensus engine is built on: a single configured hash
// function and a pluggable signature scheme.
package chaincrypto

import "golang.org/x/crypto/blake2b"

// Size is the fixed digest length produced by Hash, in bytes.
const Size = 32

// domain tags separate the tx-identity hash from the signature digest so a
// signing scheme that does not pre-hash internally can't be tricked into
// treating one as the other.
const (
	domainTx   byte = 0x00
	domainSign byte = 0x01
)

// Hash returns the 32-byte BLAKE2b-256 digest of b, domain-separated for
// transaction identity (hashing the packed DataTx bytes).
func Hash(b []byte) [Size]byte {
	return domainHash(domainTx, b)
}

// SignDigest returns the domain-separated digest fed to signature schemes
// that operate on a pre-hashed message rather than the raw bytes.
func SignDigest(b []byte) [Size]byte {
	return domainHash(domainSign, b)
}

func domainHash(domain byte, b []byte) [Size]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for an over-long key, and we pass none.
		panic("chaincrypto: blake2b init: " + err.Error())
	}
	h.Write([]byte{domain})
	h.Write(b)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
