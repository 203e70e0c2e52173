package chainstate

import (
	"encoding/binary"
	"errors"

	"github.com/auricchain/auricd/internal/merkle"
)

// ErrMalformedOracleRecord is returned when decoding a corrupt registered
// oracle or interaction-object entry.
var ErrMalformedOracleRecord = errors.New("chainstate: malformed oracle record")

// TTLType distinguishes an absolute expiry height from one relative to
// the height the record was created at.
type TTLType byte

const (
	TTLAbsolute TTLType = 0
	TTLRelative TTLType = 1
)

// TTL is a time-to-live as carried on the wire: a type tag plus value.
type TTL struct {
	Type  TTLType
	Value uint64
}

// ResolveExpiry turns a TTL into an absolute expiry height given the
// height the owning record is created or extended at.
func (t TTL) ResolveExpiry(atHeight uint64) uint64 {
	if t.Type == TTLAbsolute {
		return t.Value
	}
	return atHeight + t.Value
}

// RegisteredOracle is the record created by OracleRegister and extended by
// OracleExtend, keyed by the owning oracle's public key.
type RegisteredOracle struct {
	Owner          merkle.Key
	QueryFormat    []byte
	ResponseFormat []byte
	QueryFee       uint64
	ExpiryHeight   uint64
}

// Marshal serializes a RegisteredOracle for storage in the oracle
// subtree.
func (r RegisteredOracle) Marshal() []byte {
	buf := make([]byte, 0, 32+8+4+len(r.QueryFormat)+4+len(r.ResponseFormat)+8+8)
	buf = append(buf, r.Owner[:]...)
	buf = appendLenPrefixed(buf, r.QueryFormat)
	buf = appendLenPrefixed(buf, r.ResponseFormat)
	buf = appendUint64(buf, r.QueryFee)
	buf = appendUint64(buf, r.ExpiryHeight)
	return buf
}

// UnmarshalRegisteredOracle parses bytes produced by Marshal.
func UnmarshalRegisteredOracle(data []byte) (RegisteredOracle, error) {
	var r RegisteredOracle
	if len(data) < merkle.KeySize {
		return r, ErrMalformedOracleRecord
	}
	copy(r.Owner[:], data[:merkle.KeySize])
	rest := data[merkle.KeySize:]

	queryFormat, rest, err := readLenPrefixed(rest)
	if err != nil {
		return r, err
	}
	responseFormat, rest, err := readLenPrefixed(rest)
	if err != nil {
		return r, err
	}
	queryFee, rest, err := readUint64(rest)
	if err != nil {
		return r, err
	}
	expiry, rest, err := readUint64(rest)
	if err != nil {
		return r, err
	}
	if len(rest) != 0 {
		return r, ErrMalformedOracleRecord
	}
	r.QueryFormat = queryFormat
	r.ResponseFormat = responseFormat
	r.QueryFee = queryFee
	r.ExpiryHeight = expiry
	return r, nil
}

// InteractionObject pairs an OracleQuery with its optional response.
type InteractionObject struct {
	OracleAddress   merkle.Key
	Sender          merkle.Key
	QueryData       []byte
	ResponseData    []byte // nil until a response is set
	HasResponse     bool
	QueryExpiry     uint64
	ResponseExpiry  uint64
}

// Marshal serializes an InteractionObject.
func (o InteractionObject) Marshal() []byte {
	buf := make([]byte, 0, 64+4+len(o.QueryData)+1+4+len(o.ResponseData)+16)
	buf = append(buf, o.OracleAddress[:]...)
	buf = append(buf, o.Sender[:]...)
	buf = appendLenPrefixed(buf, o.QueryData)
	if o.HasResponse {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = appendLenPrefixed(buf, o.ResponseData)
	buf = appendUint64(buf, o.QueryExpiry)
	buf = appendUint64(buf, o.ResponseExpiry)
	return buf
}

// UnmarshalInteractionObject parses bytes produced by Marshal.
func UnmarshalInteractionObject(data []byte) (InteractionObject, error) {
	var o InteractionObject
	if len(data) < 2*merkle.KeySize {
		return o, ErrMalformedOracleRecord
	}
	copy(o.OracleAddress[:], data[:merkle.KeySize])
	copy(o.Sender[:], data[merkle.KeySize:2*merkle.KeySize])
	rest := data[2*merkle.KeySize:]

	queryData, rest, err := readLenPrefixed(rest)
	if err != nil {
		return o, err
	}
	if len(rest) < 1 {
		return o, ErrMalformedOracleRecord
	}
	hasResponse := rest[0] == 1
	rest = rest[1:]
	responseData, rest, err := readLenPrefixed(rest)
	if err != nil {
		return o, err
	}
	queryExpiry, rest, err := readUint64(rest)
	if err != nil {
		return o, err
	}
	responseExpiry, rest, err := readUint64(rest)
	if err != nil {
		return o, err
	}
	if len(rest) != 0 {
		return o, ErrMalformedOracleRecord
	}
	o.QueryData = queryData
	o.HasResponse = hasResponse
	o.ResponseData = responseData
	o.QueryExpiry = queryExpiry
	o.ResponseExpiry = responseExpiry
	return o, nil
}

func appendLenPrefixed(buf []byte, b []byte) []byte {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	buf = append(buf, lenBuf[:]...)
	return append(buf, b...)
}

func readLenPrefixed(data []byte) ([]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, ErrMalformedOracleRecord
	}
	n := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < n {
		return nil, nil, ErrMalformedOracleRecord
	}
	return append([]byte(nil), data[:n]...), data[n:], nil
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, ErrMalformedOracleRecord
	}
	return binary.BigEndian.Uint64(data[:8]), data[8:], nil
}

// Oracle looks up a registered oracle by owner public key.
func (s Snapshot) Oracle(owner merkle.Key) (RegisteredOracle, bool) {
	raw, ok := s.RegisteredOracles.Lookup(owner)
	if !ok {
		return RegisteredOracle{}, false
	}
	rec, err := UnmarshalRegisteredOracle(raw)
	if err != nil {
		panic("chainstate: corrupt registered-oracle entry: " + err.Error())
	}
	return rec, true
}

// PutOracle returns a new snapshot with rec stored at its owner key.
func (s Snapshot) PutOracle(rec RegisteredOracle) Snapshot {
	s.RegisteredOracles = s.RegisteredOracles.InsertOrUpdate(rec.Owner, rec.Marshal())
	return s
}

// DeleteOracle returns a new snapshot with the oracle at owner removed.
func (s Snapshot) DeleteOracle(owner merkle.Key) Snapshot {
	s.RegisteredOracles = s.RegisteredOracles.Delete(owner)
	return s
}

// Interaction looks up an interaction-object by its derived query id.
func (s Snapshot) Interaction(queryID merkle.Key) (InteractionObject, bool) {
	raw, ok := s.Interactions.Lookup(queryID)
	if !ok {
		return InteractionObject{}, false
	}
	rec, err := UnmarshalInteractionObject(raw)
	if err != nil {
		panic("chainstate: corrupt interaction entry: " + err.Error())
	}
	return rec, true
}

// PutInteraction returns a new snapshot with obj stored at queryID.
func (s Snapshot) PutInteraction(queryID merkle.Key, obj InteractionObject) Snapshot {
	s.Interactions = s.Interactions.InsertOrUpdate(queryID, obj.Marshal())
	return s
}

// DeleteInteraction returns a new snapshot with the interaction at queryID
// removed.
func (s Snapshot) DeleteInteraction(queryID merkle.Key) Snapshot {
	s.Interactions = s.Interactions.Delete(queryID)
	return s
}

// ExpireOracles removes every registered oracle whose expiry height has
// passed currentHeight. Run by the engine after each block.
func (s Snapshot) ExpireOracles(currentHeight uint64) Snapshot {
	type toRemove struct{ key merkle.Key }
	var remove []toRemove
	s.RegisteredOracles.Fold(nil, func(k merkle.Key, v []byte, acc any) any {
		rec, err := UnmarshalRegisteredOracle(v)
		if err == nil && currentHeight > rec.ExpiryHeight {
			remove = append(remove, toRemove{k})
		}
		return nil
	})
	for _, r := range remove {
		s.RegisteredOracles = s.RegisteredOracles.Delete(r.key)
	}
	return s
}

// ExpireInteractions removes every interaction-object whose response
// expiry has passed currentHeight.
func (s Snapshot) ExpireInteractions(currentHeight uint64) Snapshot {
	type toRemove struct{ key merkle.Key }
	var remove []toRemove
	s.Interactions.Fold(nil, func(k merkle.Key, v []byte, acc any) any {
		rec, err := UnmarshalInteractionObject(v)
		if err == nil && rec.ResponseExpiry < currentHeight {
			remove = append(remove, toRemove{k})
		}
		return nil
	})
	for _, r := range remove {
		s.Interactions = s.Interactions.Delete(r.key)
	}
	return s
}
