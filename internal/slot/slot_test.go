package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotLifecycle(t *testing.T) {
	t.Run("Fill takes owned copies, mutating the original does not affect the slot", func(t *testing.T) {
		var s Slot
		key := []byte("key")
		value := []byte("value")
		s.Fill(key, value)
		key[0] = 'X'
		value[0] = 'X'

		assert.True(t, s.Occupied)
		assert.Equal(t, []byte("key"), s.Key)
		assert.Equal(t, []byte("value"), s.Value)
	})

	t.Run("Replace changes the value but not the key", func(t *testing.T) {
		var s Slot
		s.Fill([]byte("k"), []byte("v1"))
		s.Replace([]byte("v2"))
		assert.Equal(t, []byte("k"), s.Key)
		assert.Equal(t, []byte("v2"), s.Value)
	})

	t.Run("Clear returns the slot to its zero state", func(t *testing.T) {
		var s Slot
		s.Fill([]byte("k"), []byte("v"))
		s.Clear()
		assert.False(t, s.Occupied)
		assert.Nil(t, s.Key)
		assert.Nil(t, s.Value)
	})

	t.Run("Matches is false on an empty slot regardless of key", func(t *testing.T) {
		var s Slot
		assert.False(t, s.Matches([]byte("k")))
	})

	t.Run("Matches compares key contents, not identity", func(t *testing.T) {
		var s Slot
		s.Fill([]byte("k"), []byte("v"))
		assert.True(t, s.Matches([]byte("k")))
		assert.False(t, s.Matches([]byte("other")))
	})
}

func TestCopyBytes(t *testing.T) {
	t.Run("nil and empty input both yield nil", func(t *testing.T) {
		assert.Nil(t, CopyBytes(nil))
		assert.Nil(t, CopyBytes([]byte{}))
	})

	t.Run("returned slice is independent of the input", func(t *testing.T) {
		in := []byte("hello")
		out := CopyBytes(in)
		in[0] = 'X'
		assert.Equal(t, []byte("hello"), out)
	})
}
