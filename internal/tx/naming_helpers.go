package tx

import (
	"strings"
	"unicode/utf8"

	"github.com/auricchain/auricd/internal/chaincrypto"
	"github.com/auricchain/auricd/internal/merkle"
)

// NameSaltSize is the exact byte width every NameClaim salt must carry.
var NameSaltSize = 16

// NormalizeName validates and lower-cases a name for hashing, failing on
// invalid UTF-8 or an empty result.
func NormalizeName(name []byte) ([]byte, error) {
	if !utf8.Valid(name) {
		return nil, errInvalidName
	}
	normalized := []byte(strings.ToLower(string(name)))
	if len(normalized) == 0 {
		return nil, errInvalidName
	}
	return normalized, nil
}

var errInvalidName = errInvalidNameErr{}

type errInvalidNameErr struct{}

func (errInvalidNameErr) Error() string { return "malformed name" }

// Commitment derives the pre-claim key for a (name, salt) pair.
func Commitment(name, salt []byte) merkle.Key {
	buf := append(append([]byte(nil), name...), salt...)
	return merkle.Key(chaincrypto.Hash(buf))
}

// NameHash derives the claim key for a normalized name.
func NameHash(name []byte) merkle.Key {
	return merkle.Key(chaincrypto.Hash(name))
}
