package chainstate

import (
	"errors"

	"github.com/auricchain/auricd/internal/merkle"
)

// ErrMalformedNamingRecord is returned when decoding a corrupt pre-claim
// or claim entry.
var ErrMalformedNamingRecord = errors.New("chainstate: malformed naming record")

// PreClaim is the commitment created by NamePreClaim, keyed by
// hash(name || salt) so the name itself stays hidden until NameClaim
// reveals it.
type PreClaim struct {
	Owner        merkle.Key
	CreateHeight uint64
}

// Marshal serializes a PreClaim.
func (p PreClaim) Marshal() []byte {
	buf := make([]byte, 0, merkle.KeySize+8)
	buf = append(buf, p.Owner[:]...)
	buf = appendUint64(buf, p.CreateHeight)
	return buf
}

// UnmarshalPreClaim parses bytes produced by Marshal.
func UnmarshalPreClaim(data []byte) (PreClaim, error) {
	var p PreClaim
	if len(data) != merkle.KeySize+8 {
		return p, ErrMalformedNamingRecord
	}
	copy(p.Owner[:], data[:merkle.KeySize])
	height, _, err := readUint64(data[merkle.KeySize:])
	if err != nil {
		return p, err
	}
	p.CreateHeight = height
	return p, nil
}

// Claim is the resolved name record created by NameClaim, keyed by
// namehash(name).
type Claim struct {
	Name        []byte
	Owner       merkle.Key
	ClaimHeight uint64
}

// Marshal serializes a Claim.
func (c Claim) Marshal() []byte {
	buf := make([]byte, 0, 4+len(c.Name)+merkle.KeySize+8)
	buf = appendLenPrefixed(buf, c.Name)
	buf = append(buf, c.Owner[:]...)
	buf = appendUint64(buf, c.ClaimHeight)
	return buf
}

// UnmarshalClaim parses bytes produced by Marshal.
func UnmarshalClaim(data []byte) (Claim, error) {
	var c Claim
	name, rest, err := readLenPrefixed(data)
	if err != nil {
		return c, err
	}
	if len(rest) != merkle.KeySize+8 {
		return c, ErrMalformedNamingRecord
	}
	var owner merkle.Key
	copy(owner[:], rest[:merkle.KeySize])
	height, _, err := readUint64(rest[merkle.KeySize:])
	if err != nil {
		return c, err
	}
	c.Name = name
	c.Owner = owner
	c.ClaimHeight = height
	return c, nil
}

// PreClaimRecord looks up a pre-claim by its commitment key.
func (s Snapshot) PreClaimRecord(commitment merkle.Key) (PreClaim, bool) {
	raw, ok := s.PreClaims.Lookup(commitment)
	if !ok {
		return PreClaim{}, false
	}
	rec, err := UnmarshalPreClaim(raw)
	if err != nil {
		panic("chainstate: corrupt pre-claim entry: " + err.Error())
	}
	return rec, true
}

// PutPreClaim returns a new snapshot with rec stored at commitment.
func (s Snapshot) PutPreClaim(commitment merkle.Key, rec PreClaim) Snapshot {
	s.PreClaims = s.PreClaims.InsertOrUpdate(commitment, rec.Marshal())
	return s
}

// DeletePreClaim returns a new snapshot with the pre-claim at commitment
// removed, as NameClaim does on success once the commitment is consumed.
func (s Snapshot) DeletePreClaim(commitment merkle.Key) Snapshot {
	s.PreClaims = s.PreClaims.Delete(commitment)
	return s
}

// ClaimRecord looks up a resolved name by its namehash key.
func (s Snapshot) ClaimRecord(nameHash merkle.Key) (Claim, bool) {
	raw, ok := s.Claims.Lookup(nameHash)
	if !ok {
		return Claim{}, false
	}
	rec, err := UnmarshalClaim(raw)
	if err != nil {
		panic("chainstate: corrupt claim entry: " + err.Error())
	}
	return rec, true
}

// PutClaim returns a new snapshot with rec stored at nameHash.
func (s Snapshot) PutClaim(nameHash merkle.Key, rec Claim) Snapshot {
	s.Claims = s.Claims.InsertOrUpdate(nameHash, rec.Marshal())
	return s
}
