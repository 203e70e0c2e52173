package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auricchain/auricd/internal/chainerr"
	"github.com/auricchain/auricd/internal/chainstate"
	"github.com/auricchain/auricd/internal/merkle"
)

func keyFromByte(b byte) merkle.Key {
	var k merkle.Key
	for i := range k {
		k[i] = b
	}
	return k
}

func kindOf(t *testing.T, err error) chainerr.Kind {
	t.Helper()
	kind, ok := chainerr.KindOf(err)
	require.True(t, ok, "expected a chainerr.Error, got %v", err)
	return kind
}

func TestRegistry_AllVariantsRegistered(t *testing.T) {
	types := SupportedTypes()
	assert.Len(t, types, 8)
}

func TestSpend_HappyPath(t *testing.T) {
	a, b := keyFromByte(1), keyFromByte(2)
	state := chainstate.Genesis().PutAccount(a, chainstate.Account{Balance: 100})

	spend := &Spend{Receiver: b, Amount: 40, Version: SpendVersion}
	require.NoError(t, spend.StaticValid())
	require.NoError(t, spend.Preprocess(state, a, 1, 1, 10))

	newState, err := spend.Apply(state, a, 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(59), newState.Account(a).Balance)
	assert.Equal(t, uint64(1), newState.Account(a).Nonce)
	assert.Equal(t, uint64(40), newState.Account(b).Balance)
}

func TestSpend_InsufficientBalance(t *testing.T) {
	a, b := keyFromByte(3), keyFromByte(4)
	state := chainstate.Genesis().PutAccount(a, chainstate.Account{Balance: 100})

	spend := &Spend{Receiver: b, Amount: 200, Version: SpendVersion}
	err := spend.Preprocess(state, a, 1, 1, 10)
	assert.Equal(t, chainerr.KindInsufficientBalance, kindOf(t, err))
}

func TestSpend_ReplayRejected(t *testing.T) {
	a, b := keyFromByte(5), keyFromByte(6)
	state := chainstate.Genesis().PutAccount(a, chainstate.Account{Balance: 100})
	spend := &Spend{Receiver: b, Amount: 40, Version: SpendVersion}

	state, err := spend.Apply(state, a, 1, 1, 10)
	require.NoError(t, err)

	err = spend.Preprocess(state, a, 1, 1, 10)
	assert.Equal(t, chainerr.KindNonceOutOfOrder, kindOf(t, err))
}

func TestSpend_WrongVersionRejected(t *testing.T) {
	spend := &Spend{Version: SpendVersion + 1}
	err := spend.StaticValid()
	assert.Equal(t, chainerr.KindMalformed, kindOf(t, err))
}

func TestCoinbase_MintsToReceiver(t *testing.T) {
	m := keyFromByte(7)
	coinbase := &Coinbase{Receiver: m, Amount: 10}
	state := chainstate.Genesis()

	state, err := coinbase.Apply(state, merkle.Key{}, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), state.Account(m).Balance)
	assert.Equal(t, uint64(10), coinbase.Reward(state.Account(m)))
}

func TestOracleRegister_RejectsDuplicate(t *testing.T) {
	owner := keyFromByte(8)
	state := chainstate.Genesis().PutAccount(owner, chainstate.Account{Balance: 10})
	register := &OracleRegister{QueryFormat: []byte("json"), ResponseFormat: []byte("json")}

	state, err := register.Apply(state, owner, 1, 1, 100)
	require.NoError(t, err)

	err = register.Preprocess(state, owner, 1, 2, 100)
	assert.Equal(t, chainerr.KindOracleStateConflict, kindOf(t, err))
}

func TestOracleQueryResponseCycle(t *testing.T) {
	owner := keyFromByte(9)
	sender := keyFromByte(10)
	state := chainstate.Genesis()
	state = state.PutAccount(owner, chainstate.Account{Balance: 100})
	state = state.PutAccount(sender, chainstate.Account{Balance: 100})

	register := &OracleRegister{QueryFormat: []byte("f:"), ResponseFormat: []byte("r:"), QueryFee: 5}
	state, err := register.Apply(state, owner, 1, 1, 10)
	require.NoError(t, err)

	query := &OracleQuery{OracleAddress: owner, QueryData: []byte("f:q"), QueryFee: 5}
	require.NoError(t, query.Preprocess(state, sender, 1, 1, 10))
	state, err = query.Apply(state, sender, 1, 1, 10)
	require.NoError(t, err)

	queryID := QueryID(sender, 1)
	response := &OracleResponse{QueryID: queryID, ResponseData: []byte("r:r")}
	require.NoError(t, response.Preprocess(state, owner, 1, 2, 10))
	state, err = response.Apply(state, owner, 1, 2, 10)
	require.NoError(t, err)

	interaction, ok := state.Interaction(queryID)
	require.True(t, ok)
	assert.True(t, interaction.HasResponse)

	err = response.Preprocess(state, owner, 1, 3, 10)
	assert.Equal(t, chainerr.KindOracleStateConflict, kindOf(t, err))
}

func TestNamePreClaimThenClaim_HappyPath(t *testing.T) {
	a := keyFromByte(11)
	state := chainstate.Genesis().PutAccount(a, chainstate.Account{Balance: 10})

	salt := make([]byte, NameSaltSize)
	for i := range salt {
		salt[i] = byte(i + 1)
	}
	commitment := Commitment([]byte("alice"), salt)

	preclaim := &NamePreClaim{Commitment: commitment}
	state, err := preclaim.Apply(state, a, 1, 1, 5)
	require.NoError(t, err)

	claim := &NameClaim{Name: []byte("alice"), Salt: salt}
	require.NoError(t, claim.StaticValid())
	require.NoError(t, claim.Preprocess(state, a, 0, 2, 6))

	state, err = claim.Apply(state, a, 0, 2, 6)
	require.NoError(t, err)

	_, stillExists := state.PreClaimRecord(commitment)
	assert.False(t, stillExists)

	rec, ok := state.ClaimRecord(NameHash([]byte("alice")))
	require.True(t, ok)
	assert.Equal(t, a, rec.Owner)
	assert.Equal(t, uint64(6), rec.ClaimHeight)
}

func TestNameClaim_MissingPreClaimChecksNilBeforeOwner(t *testing.T) {
	a := keyFromByte(12)
	state := chainstate.Genesis().PutAccount(a, chainstate.Account{Balance: 10})

	salt := make([]byte, NameSaltSize)
	claim := &NameClaim{Name: []byte("bob"), Salt: salt}
	err := claim.Preprocess(state, a, 0, 1, 1)
	assert.Equal(t, chainerr.KindUnknownPreClaim, kindOf(t, err))
}

func TestNameClaim_WrongOwnerRejected(t *testing.T) {
	owner := keyFromByte(13)
	other := keyFromByte(14)
	state := chainstate.Genesis()
	state = state.PutAccount(owner, chainstate.Account{Balance: 10})
	state = state.PutAccount(other, chainstate.Account{Balance: 10})

	salt := make([]byte, NameSaltSize)
	commitment := Commitment([]byte("carol"), salt)
	state = state.PutPreClaim(commitment, chainstate.PreClaim{Owner: owner, CreateHeight: 1})

	claim := &NameClaim{Name: []byte("carol"), Salt: salt}
	err := claim.Preprocess(state, other, 0, 1, 2)
	assert.Equal(t, chainerr.KindWrongPreClaimOwner, kindOf(t, err))
}

func TestDataTx_PackedIsDeterministic(t *testing.T) {
	tx := DataTx{
		Sender:  keyFromByte(15),
		Fee:     1,
		Nonce:   1,
		Payload: &Spend{Receiver: keyFromByte(16), Amount: 5, Version: SpendVersion},
	}
	a, err := tx.Packed()
	require.NoError(t, err)
	b, err := tx.Packed()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDataTx_HashIndependentOfSignature(t *testing.T) {
	tx := DataTx{
		Sender:  keyFromByte(17),
		Fee:     1,
		Nonce:   1,
		Payload: &Spend{Receiver: keyFromByte(18), Amount: 5, Version: SpendVersion},
	}
	h1, err := tx.Hash()
	require.NoError(t, err)

	stx1 := SignedTx{Data: tx, Signature: []byte("sig-a")}
	stx2 := SignedTx{Data: tx, Signature: []byte("a-very-different-signature")}
	h2, err := stx1.Hash()
	require.NoError(t, err)
	h3, err := stx2.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, h2, h3)
}
