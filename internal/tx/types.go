// Package tx implements the closed family of transaction variants the
// chain-state engine can apply: a uniform capability interface
// (StaticValid/Preprocess/Apply/MinFee/Reward) dispatched through a
// self-registering variant registry, plus the DataTx/SignedTx envelope
// every variant payload is carried in.
package tx

import "fmt"

// Type is a transaction variant's wire type code.
type Type uint16

const (
	TypeSpend Type = iota + 1
	TypeCoinbase
	TypeOracleRegister
	TypeOracleQuery
	TypeOracleResponse
	TypeOracleExtend
	TypeNamePreClaim
	TypeNameClaim
)

var typeNames = map[Type]string{
	TypeSpend:          "Spend",
	TypeCoinbase:       "Coinbase",
	TypeOracleRegister: "OracleRegister",
	TypeOracleQuery:    "OracleQuery",
	TypeOracleResponse: "OracleResponse",
	TypeOracleExtend:   "OracleExtend",
	TypeNamePreClaim:   "NamePreClaim",
	TypeNameClaim:      "NameClaim",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName is the inverse of Type.String, used when parsing wire data
// that names a variant by string.
func TypeFromName(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Role distinguishes which fee floor MinFee should enforce.
type Role int

const (
	RolePool Role = iota
	RoleMiner
	RoleValidation
)
