package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHash(t *testing.T) {
	t.Run("deterministic for the same key and attempt", func(t *testing.T) {
		a := DefaultHash([]byte("probehash"), 0)
		b := DefaultHash([]byte("probehash"), 0)
		assert.Equal(t, a, b)
	})

	t.Run("different attempts usually derive different seeds", func(t *testing.T) {
		h0 := DefaultHash([]byte("probehash"), 0)
		h1 := DefaultHash([]byte("probehash"), 1)
		assert.NotEqual(t, h0, h1)
	})

	t.Run("empty key still hashes deterministically", func(t *testing.T) {
		a := DefaultHash(nil, 0)
		b := DefaultHash([]byte{}, 0)
		assert.Equal(t, a, b)
	})
}
