package council

import (
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b byte) common.Address {
	var a common.Address
	for i := range a {
		a[i] = b
	}
	return a
}

func assertRegistryIntegrity(t *testing.T, r *Registry) {
	t.Helper()
	require.Equal(t, len(r.members), r.Count())
	require.Equal(t, len(r.members), len(r.index))
	for id, pos := range r.index {
		require.Less(t, pos, len(r.members))
		require.Equal(t, id, r.members[pos], "index entry for %s points at %s", id.Hex(), r.members[pos].Hex())
	}
}

func TestRegistry_PositionDistinguishesAbsentFromZero(t *testing.T) {
	r := NewRegistry()
	first := addr(0x01)

	pos := r.PositionOf(first)
	assert.False(t, pos.Present())

	r.Add(first)
	pos = r.PositionOf(first)
	idx, ok := pos.Index()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// The zero address is an identity like any other
	assert.False(t, r.Contains(common.Address{}))
	assert.False(t, r.PositionOf(common.Address{}).Present())
}

func TestRegistry_RemoveSwapsLastIntoSlot(t *testing.T) {
	r := NewRegistry()
	a, b, c := addr(0x0a), addr(0x0b), addr(0x0c)
	r.Add(a)
	r.Add(b)
	r.Add(c)

	require.True(t, r.Remove(a))

	assert.Equal(t, []common.Address{c, b}, r.Members())
	idx, ok := r.PositionOf(c).Index()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.False(t, r.Contains(a))
	assert.Equal(t, 2, r.Count())
	assertRegistryIntegrity(t, r)
}

func TestRegistry_RemoveLastNeedsNoSwap(t *testing.T) {
	r := NewRegistry()
	a, b := addr(0x0a), addr(0x0b)
	r.Add(a)
	r.Add(b)

	require.True(t, r.Remove(b))
	assert.Equal(t, []common.Address{a}, r.Members())
	assertRegistryIntegrity(t, r)

	require.True(t, r.Remove(a))
	assert.Empty(t, r.Members())
	assert.Equal(t, 0, r.Count())
	assertRegistryIntegrity(t, r)
}

func TestRegistry_RemoveAbsent(t *testing.T) {
	r := NewRegistry()
	r.Add(addr(0x01))

	assert.False(t, r.Remove(addr(0x02)))
	assert.Equal(t, 1, r.Count())
	assertRegistryIntegrity(t, r)
}

func TestRegistry_IntegrityUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := NewRegistry()
	present := map[common.Address]bool{}

	for i := 0; i < 2000; i++ {
		id := addr(byte(rng.Intn(40)))
		if present[id] {
			require.True(t, r.Remove(id))
			delete(present, id)
		} else {
			r.Add(id)
			present[id] = true
		}
		assertRegistryIntegrity(t, r)
		require.Equal(t, len(present), r.Count())
	}

	for id := range present {
		assert.True(t, r.Contains(id))
	}
}
