package uniform

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTable(t *testing.T, capacity int, alphaMax float64) *HashTable {
	t.Helper()
	tbl, err := NewHashTable(capacity, alphaMax, nil)
	require.NoError(t, err)
	return tbl
}

func TestNewHashTable(t *testing.T) {
	t.Run("rejects non-positive capacity", func(t *testing.T) {
		_, err := NewHashTable(0, 0.75, nil)
		assert.Error(t, err)
	})

	t.Run("rejects alphaMax outside (0,1)", func(t *testing.T) {
		_, err := NewHashTable(64, 0, nil)
		assert.Error(t, err)
		_, err = NewHashTable(64, 1, nil)
		assert.Error(t, err)
	})
}

func TestInsertLookupDelete(t *testing.T) {
	t.Run("round trip across many keys", func(t *testing.T) {
		tbl := mustTable(t, 200, 0.75)
		for i := 0; i < 100; i++ {
			key := []byte(fmt.Sprintf("key-%d", i))
			value := []byte(fmt.Sprintf("value-%d", i))
			ok, err := tbl.Insert(key, value)
			require.NoError(t, err)
			require.True(t, ok, "insert %d", i)
		}

		for i := 0; i < 100; i++ {
			key := []byte(fmt.Sprintf("key-%d", i))
			want := []byte(fmt.Sprintf("value-%d", i))
			got, ok := tbl.Lookup(key)
			require.True(t, ok, "lookup %d", i)
			assert.Equal(t, want, got)
		}
	})

	t.Run("insert overwrites existing key in place", func(t *testing.T) {
		tbl := mustTable(t, 64, 0.75)
		_, err := tbl.Insert([]byte("k"), []byte("v1"))
		require.NoError(t, err)
		_, err = tbl.Insert([]byte("k"), []byte("v2"))
		require.NoError(t, err)

		got, ok := tbl.Lookup([]byte("k"))
		require.True(t, ok)
		assert.Equal(t, []byte("v2"), got)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("delete frees the slot and a later lookup misses", func(t *testing.T) {
		tbl := mustTable(t, 64, 0.75)
		_, err := tbl.Insert([]byte("gone"), []byte("v"))
		require.NoError(t, err)

		assert.True(t, tbl.Delete([]byte("gone")))
		_, ok := tbl.Lookup([]byte("gone"))
		assert.False(t, ok)
	})

	t.Run("delete of an absent key fails", func(t *testing.T) {
		tbl := mustTable(t, 64, 0.75)
		assert.False(t, tbl.Delete([]byte("absent")))
	})

	t.Run("insert refused once the load-factor ceiling is exceeded", func(t *testing.T) {
		tbl := mustTable(t, 4, 0.5)
		inserted := 0
		for i := 0; i < 4; i++ {
			key := []byte(fmt.Sprintf("k%d", i))
			ok, err := tbl.Insert(key, []byte("v"))
			require.NoError(t, err)
			if ok {
				inserted++
			}
		}
		assert.LessOrEqual(t, inserted, 2)
	})
}

func TestProbeSequence(t *testing.T) {
	t.Run("re-hashes at each attempt rather than stepping linearly", func(t *testing.T) {
		tbl := mustTable(t, 64, 0.75)
		seq := tbl.ProbeSequence([]byte("k"), 4)
		require.Len(t, seq, 4)
		for i, pos := range seq {
			assert.Equal(t, int(tbl.Hash([]byte("k"), uint32(i))%uint32(len(tbl.Slots))), pos)
		}
	})
}
