package merkle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyFromByte(b byte) Key {
	var k Key
	for i := range k {
		k[i] = b
	}
	return k
}

func TestEmptyTree_RootIsZero(t *testing.T) {
	assert.Equal(t, ZeroRoot, Empty().RootHash())
}

func TestInsertLookupDelete(t *testing.T) {
	tr := Empty()
	k1, k2 := keyFromByte(1), keyFromByte(2)

	tr = tr.InsertOrUpdate(k1, []byte("alice"))
	tr = tr.InsertOrUpdate(k2, []byte("bob"))
	require.Equal(t, 2, tr.Size())

	v, ok := tr.Lookup(k1)
	require.True(t, ok)
	assert.Equal(t, []byte("alice"), v)

	tr = tr.Delete(k1)
	require.Equal(t, 1, tr.Size())
	_, ok = tr.Lookup(k1)
	assert.False(t, ok)

	v, ok = tr.Lookup(k2)
	require.True(t, ok)
	assert.Equal(t, []byte("bob"), v)
}

func TestUpdate_ReplacesValueWithoutGrowingSize(t *testing.T) {
	tr := Empty()
	k := keyFromByte(7)
	tr = tr.InsertOrUpdate(k, []byte("v1"))
	tr = tr.InsertOrUpdate(k, []byte("v2"))
	require.Equal(t, 1, tr.Size())
	v, _ := tr.Lookup(k)
	assert.Equal(t, []byte("v2"), v)
}

func TestRootHash_IndependentOfInsertionOrder(t *testing.T) {
	keys := make([]Key, 20)
	values := make([][]byte, 20)
	for i := range keys {
		keys[i] = keyFromByte(byte(i))
		values[i] = []byte{byte(i), byte(i + 1)}
	}

	build := func(order []int) [32]byte {
		tr := Empty()
		for _, i := range order {
			tr = tr.InsertOrUpdate(keys[i], values[i])
		}
		return tr.RootHash()
	}

	ascending := make([]int, 20)
	for i := range ascending {
		ascending[i] = i
	}
	shuffled := append([]int(nil), ascending...)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, build(ascending), build(shuffled))
}

func TestRootHash_DeterministicAcrossIdenticalSets(t *testing.T) {
	tr1 := Empty().InsertOrUpdate(keyFromByte(1), []byte("x")).InsertOrUpdate(keyFromByte(2), []byte("y"))
	tr2 := Empty().InsertOrUpdate(keyFromByte(2), []byte("y")).InsertOrUpdate(keyFromByte(1), []byte("x"))
	assert.Equal(t, tr1.RootHash(), tr2.RootHash())
}

func TestPriorSnapshotUnaffectedByLaterWrites(t *testing.T) {
	tr0 := Empty()
	tr1 := tr0.InsertOrUpdate(keyFromByte(1), []byte("a"))
	tr2 := tr1.InsertOrUpdate(keyFromByte(2), []byte("b"))

	assert.Equal(t, 0, tr0.Size())
	assert.Equal(t, 1, tr1.Size())
	assert.Equal(t, 2, tr2.Size())

	_, ok := tr1.Lookup(keyFromByte(2))
	assert.False(t, ok)
}

func TestFold_VisitsEveryPair(t *testing.T) {
	tr := Empty()
	want := map[Key][]byte{}
	for i := 0; i < 50; i++ {
		k := keyFromByte(byte(i))
		v := []byte{byte(i)}
		tr = tr.InsertOrUpdate(k, v)
		want[k] = v
	}

	got := map[Key][]byte{}
	tr.Fold(nil, func(k Key, v []byte, acc any) any {
		got[k] = append([]byte(nil), v...)
		return nil
	})
	assert.Equal(t, want, got)
}

func TestRebalance_PreservesRootHash(t *testing.T) {
	tr := Empty()
	for i := 0; i < 30; i++ {
		tr = tr.InsertOrUpdate(keyFromByte(byte(i)), []byte{byte(i)})
	}
	for i := 0; i < 10; i++ {
		tr = tr.Delete(keyFromByte(byte(i)))
	}
	before := tr.RootHash()
	after := tr.Rebalance()
	assert.Equal(t, before, after.RootHash())
	assert.Equal(t, tr.Size(), after.Size())
}

func TestDelete_AbsentKeyIsNoop(t *testing.T) {
	tr := Empty().InsertOrUpdate(keyFromByte(1), []byte("a"))
	same := tr.Delete(keyFromByte(9))
	assert.Equal(t, tr.RootHash(), same.RootHash())
}
