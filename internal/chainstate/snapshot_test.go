package chainstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auricchain/auricd/internal/merkle"
)

func keyFromByte(b byte) merkle.Key {
	var k merkle.Key
	for i := range k {
		k[i] = b
	}
	return k
}

func TestGenesis_RootIsEmptyTreeRoot(t *testing.T) {
	snap := Genesis()
	assert.Equal(t, merkle.Empty().RootHash(), snap.RootHash())
}

func TestPutAccount_UnknownKeyLooksUpEmpty(t *testing.T) {
	snap := Genesis()
	acc := snap.Account(keyFromByte(1))
	assert.Equal(t, Empty(), acc)
}

func TestPutAccount_RoundTrip(t *testing.T) {
	snap := Genesis()
	k := keyFromByte(2)
	snap = snap.PutAccount(k, Account{Balance: 50, Nonce: 3})
	acc := snap.Account(k)
	assert.Equal(t, uint64(50), acc.Balance)
	assert.Equal(t, uint64(3), acc.Nonce)
}

func TestPutAccount_DoesNotMutatePriorSnapshot(t *testing.T) {
	snap1 := Genesis()
	k := keyFromByte(3)
	snap2 := snap1.PutAccount(k, Account{Balance: 99})

	assert.Equal(t, Empty(), snap1.Account(k))
	assert.Equal(t, uint64(99), snap2.Account(k).Balance)
	assert.NotEqual(t, snap1.RootHash(), snap2.RootHash())
}

func TestOracle_RegisterLookupDelete(t *testing.T) {
	snap := Genesis()
	owner := keyFromByte(4)
	rec := RegisteredOracle{
		Owner:          owner,
		QueryFormat:    []byte("json"),
		ResponseFormat: []byte("json"),
		QueryFee:       10,
		ExpiryHeight:   1000,
	}
	snap = snap.PutOracle(rec)

	got, ok := snap.Oracle(owner)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	snap = snap.DeleteOracle(owner)
	_, ok = snap.Oracle(owner)
	assert.False(t, ok)
}

func TestInteraction_PutLookupDelete(t *testing.T) {
	snap := Genesis()
	queryID := keyFromByte(5)
	obj := InteractionObject{
		OracleAddress: keyFromByte(4),
		Sender:        keyFromByte(6),
		QueryData:     []byte("query"),
		QueryExpiry:   100,
		ResponseExpiry: 200,
	}
	snap = snap.PutInteraction(queryID, obj)

	got, ok := snap.Interaction(queryID)
	require.True(t, ok)
	assert.Equal(t, obj, got)
	assert.False(t, got.HasResponse)

	snap = snap.DeleteInteraction(queryID)
	_, ok = snap.Interaction(queryID)
	assert.False(t, ok)
}

func TestExpireOracles_RemovesOnlyExpired(t *testing.T) {
	snap := Genesis()
	live := keyFromByte(7)
	dead := keyFromByte(8)
	snap = snap.PutOracle(RegisteredOracle{Owner: live, ExpiryHeight: 500})
	snap = snap.PutOracle(RegisteredOracle{Owner: dead, ExpiryHeight: 100})

	snap = snap.ExpireOracles(200)

	_, ok := snap.Oracle(live)
	assert.True(t, ok)
	_, ok = snap.Oracle(dead)
	assert.False(t, ok)
}

func TestExpireInteractions_RemovesOnlyExpired(t *testing.T) {
	snap := Genesis()
	live := keyFromByte(9)
	dead := keyFromByte(10)
	snap = snap.PutInteraction(live, InteractionObject{ResponseExpiry: 500})
	snap = snap.PutInteraction(dead, InteractionObject{ResponseExpiry: 50})

	snap = snap.ExpireInteractions(100)

	_, ok := snap.Interaction(live)
	assert.True(t, ok)
	_, ok = snap.Interaction(dead)
	assert.False(t, ok)
}

func TestPreClaim_PutLookupDelete(t *testing.T) {
	snap := Genesis()
	commitment := keyFromByte(11)
	rec := PreClaim{Owner: keyFromByte(12), CreateHeight: 42}
	snap = snap.PutPreClaim(commitment, rec)

	got, ok := snap.PreClaimRecord(commitment)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	snap = snap.DeletePreClaim(commitment)
	_, ok = snap.PreClaimRecord(commitment)
	assert.False(t, ok)
}

func TestMatureLockedFunds_MovesMaturedEntriesIntoBalance(t *testing.T) {
	snap := Genesis()
	a := keyFromByte(15)
	b := keyFromByte(16)

	accA := AddLocked(Empty(), 100, 5)
	accA = AddLocked(accA, 300, 7)
	accB := AddLocked(Empty(), 50, 2)

	snap = snap.PutAccount(a, accA)
	snap = snap.PutAccount(b, accB)

	snap = snap.MatureLockedFunds(100)

	gotA := snap.Account(a)
	assert.Equal(t, uint64(5), gotA.Balance)
	require.Len(t, gotA.Locked, 1)
	assert.Equal(t, uint64(300), gotA.Locked[0].Height)

	gotB := snap.Account(b)
	assert.Equal(t, uint64(2), gotB.Balance)
	assert.Empty(t, gotB.Locked)
}

func TestMatureLockedFunds_NoopWhenNothingMatures(t *testing.T) {
	snap := Genesis()
	a := keyFromByte(17)
	snap = snap.PutAccount(a, AddLocked(Empty(), 500, 9))
	before := snap.RootHash()

	snap = snap.MatureLockedFunds(1)

	assert.Equal(t, before, snap.RootHash())
}

func TestClaim_PutLookup(t *testing.T) {
	snap := Genesis()
	nameHash := keyFromByte(13)
	rec := Claim{Name: []byte("auric.chain"), Owner: keyFromByte(14), ClaimHeight: 99}
	snap = snap.PutClaim(nameHash, rec)

	got, ok := snap.ClaimRecord(nameHash)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}
