package probehash

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []Kind{KindElastic, KindFunnel, KindLinear, KindUniform}

func defaultParam(k Kind) float64 {
	switch k {
	case KindElastic, KindFunnel:
		return 0.1
	default:
		return 0.75
	}
}

func TestCreate(t *testing.T) {
	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := Create(Kind(99), 64, 0.1, nil)
		require.Error(t, err)
		var argErr InvalidArgumentError
		assert.True(t, errors.As(err, &argErr))
	})

	for _, k := range allKinds {
		t.Run(k.String()+" rejects non-positive N", func(t *testing.T) {
			_, err := Create(k, 0, defaultParam(k), nil)
			require.Error(t, err)
			var argErr InvalidArgumentError
			assert.True(t, errors.As(err, &argErr))
		})
	}
}

func TestDispatchRoundTrip(t *testing.T) {
	for _, k := range allKinds {
		t.Run(k.String(), func(t *testing.T) {
			tbl, err := Create(k, 200, defaultParam(k), nil)
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				key := []byte(fmt.Sprintf("k%d", i))
				value := []byte(fmt.Sprintf("v%d", i))
				ok, err := tbl.Insert(key, value)
				require.NoError(t, err)
				require.True(t, ok)
			}

			for i := 0; i < 50; i++ {
				key := []byte(fmt.Sprintf("k%d", i))
				want := []byte(fmt.Sprintf("v%d", i))
				got, ok := tbl.Lookup(key)
				require.True(t, ok)
				assert.Equal(t, want, got)
			}

			assert.Equal(t, 50, tbl.Len())
			assert.InDelta(t, 0.25, tbl.GetLoadFactor(), 1e-9)

			// Delete newest-first: deletion leaves no tombstone, so removing a
			// key that an older key's probe sequence passed over can hide the
			// older key; removing keys in reverse insertion order never does.
			for i := 49; i >= 0; i-- {
				key := []byte(fmt.Sprintf("k%d", i))
				assert.True(t, tbl.Delete(key))
			}
			assert.Equal(t, 0, tbl.Len())

			tbl.Destroy()
		})
	}
}

func TestInsertErrorClassification(t *testing.T) {
	for _, k := range allKinds {
		t.Run(k.String()+" reports CapacityExceededError once the ceiling is reached", func(t *testing.T) {
			tbl, err := Create(k, 16, 0.5, nil)
			require.NoError(t, err)

			var sawCapacityExceeded bool
			for i := 0; i < 16; i++ {
				key := []byte(fmt.Sprintf("k%d", i))
				ok, err := tbl.Insert(key, []byte("v"))
				if !ok {
					var capErr CapacityExceededError
					if errors.As(err, &capErr) {
						sawCapacityExceeded = true
					}
				}
			}
			assert.True(t, sawCapacityExceeded)
		})
	}
}

func TestGetAvgProbes(t *testing.T) {
	t.Run("per-kind averages are zero before any operation of that kind", func(t *testing.T) {
		tbl, err := Create(KindLinear, 64, 0.75, nil)
		require.NoError(t, err)
		assert.Equal(t, 0.0, tbl.GetAvgInsertProbes())
		assert.Equal(t, 0.0, tbl.GetAvgLookupProbes())
		assert.Equal(t, 0.0, tbl.GetAvgDeleteProbes())
	})

	t.Run("insert probes accumulate into the average", func(t *testing.T) {
		tbl, err := Create(KindLinear, 64, 0.75, nil)
		require.NoError(t, err)
		_, err = tbl.Insert([]byte("a"), []byte("1"))
		require.NoError(t, err)
		assert.Greater(t, tbl.GetAvgInsertProbes(), 0.0)
	})
}

func TestProbeSequenceIsReadOnly(t *testing.T) {
	for _, k := range allKinds {
		t.Run(k.String(), func(t *testing.T) {
			tbl, err := Create(k, 64, defaultParam(k), nil)
			require.NoError(t, err)

			before := *tbl.GetStats()
			_ = tbl.ProbeSequence([]byte("probe-me"), 5)
			after := *tbl.GetStats()
			assert.Equal(t, before, after)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "elastic", KindElastic.String())
	assert.Equal(t, "funnel", KindFunnel.String())
	assert.Equal(t, "linear", KindLinear.String())
	assert.Equal(t, "uniform", KindUniform.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
