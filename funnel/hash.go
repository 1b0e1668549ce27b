// Package funnel implements funnel hashing: a small number of levels with
// geometrically decreasing, occupancy-gated sizes. An insert tries the
// first level under its load-factor threshold and probes a fixed number of
// buckets there before falling through to the next level, funneling
// unlucky keys deeper while keeping most keys near the top.
package funnel

import (
	"fmt"
	"math"

	"github.com/gopherhash/probehash/internal/slot"
)

const maxLevels = 8
const minLevelSize = 4

// level is one stage of the funnel cascade.
type level struct {
	Slots    []slot.Slot
	Occupied int
}

// levelThreshold is the load factor at or above which an insert skips a level
// entirely: 1 - 2^(-2*levelIndex). Level 0's literal threshold is 0, which
// would make every insert skip it outright; this implementation treats
// level 0's effective threshold as 1-delta/2 instead, so the first level
// still absorbs its fair share before the cascade gives up on it.
func levelThreshold(levelIndex int, delta float64) float64 {
	if levelIndex == 0 {
		return 1 - delta/2
	}
	return 1 - math.Pow(2, -2*float64(levelIndex))
}

// NewHashTableDefault creates a table with delta=0.1 and the default
// djb2+attempt hash.
func NewHashTableDefault(capacity int) (*HashTable, error) {
	return NewHashTable(capacity, 0.1, nil)
}

// NewHashTable creates a funnel hash table sized for capacity slots with
// the given delta (the reserved-capacity fraction) and hash. delta must be
// in range (0,1); hash defaults to slot.DefaultHash when nil.
//
// The number of levels is ceil(log2(1/delta)/4)+1, capped at 8. Level sizes
// follow the same geometric plan as elastic's sub-arrays: half the table,
// then halves of what remains, floored at minLevelSize; the last level
// absorbs whatever remains.
func NewHashTable(capacity int, delta float64, hash slot.HashFunc) (*HashTable, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("probehash/funnel: capacity must be positive")
	}
	if delta <= 0 || delta >= 1 {
		return nil, fmt.Errorf("probehash/funnel: delta must be in range (0, 1)")
	}
	if hash == nil {
		hash = slot.DefaultHash
	}

	numLevels := int(math.Ceil(math.Log2(1/delta)/4)) + 1
	if numLevels > maxLevels {
		numLevels = maxLevels
	}
	if numLevels < 1 {
		numLevels = 1
	}

	levels := make([]level, numLevels)
	allocated := 0
	for i := 0; i < numLevels; i++ {
		var size int
		switch {
		case i == 0:
			size = capacity / 2
		case i == numLevels-1:
			size = capacity - allocated
		default:
			size = capacity / (2 << uint(i))
		}
		if size < minLevelSize {
			size = minLevelSize
		}
		allocated += size
		levels[i] = level{Slots: make([]slot.Slot, size)}
	}

	t := &HashTable{
		Hash:      hash,
		Delta:     delta,
		TotalSize: capacity,
		Levels:    levels,
	}
	t.stats.TableSize = capacity
	return t, nil
}

// HashTable is the funnel-hashing cascade described in the package doc.
// Levels[0] is probed first; an insert moves on to a later level only once
// the earlier ones have reached their thresholds (1-delta/2 for level 0,
// 1-2^(-2*level) after it) or its scan of them found no empty slot. Level
// sizes halve from one level to the next, and the last level holds whatever
// capacity remains.
type HashTable struct {
	Hash          slot.HashFunc
	Delta         float64
	TotalSize     int
	TotalElements int
	Levels        []level

	stats     slot.Stats
	destroyed bool
}

// Insert installs key/value, overwriting in place on key match regardless
// of load factor. For a new key, insertion is refused once TotalElements
// reaches floor(TotalSize*(1-Delta)).
func (t *HashTable) Insert(key, value []byte) (bool, error) {
	t.checkLive()
	ok, probes := insert(t, key, value)
	t.stats.Record(slot.OpInsert, probes)
	if ok {
		t.stats.NumEntries = t.TotalElements
	}
	return ok, nil
}

// Lookup returns the value for key and true, or nil and false if absent.
func (t *HashTable) Lookup(key []byte) ([]byte, bool) {
	t.checkLive()
	value, ok, probes := lookup(t, key)
	t.stats.Record(slot.OpLookup, probes)
	return value, ok
}

// Delete removes key, returning false if it was not present.
func (t *HashTable) Delete(key []byte) bool {
	t.checkLive()
	ok, probes := del(t, key)
	t.stats.Record(slot.OpDelete, probes)
	if ok {
		t.stats.NumEntries = t.TotalElements
	}
	return ok
}

// ProbeSequence returns the first n slot indices key's probe sequence would
// visit, walking levels in order and exhausting each one's bucket before
// moving to the next. It has no effect on statistics.
func (t *HashTable) ProbeSequence(key []byte, n int) []int {
	out := make([]int, 0, n)
	for i := range t.Levels {
		if len(out) >= n {
			break
		}
		size := len(t.Levels[i].Slots)
		for j := 0; j < size && len(out) < n; j++ {
			out = append(out, int(levelProbePos(t, i, uint32(j), key)))
		}
	}
	return out
}

// Destroy releases the table's levels. Operations after Destroy are
// undefined; this implementation panics to surface misuse early.
func (t *HashTable) Destroy() {
	t.Levels = nil
	t.destroyed = true
}

// Stats returns a pointer to the table's live statistics record.
func (t *HashTable) Stats() *slot.Stats { return &t.stats }

// Len returns the number of elements currently stored.
func (t *HashTable) Len() int { return t.TotalElements }

// Cap returns the table's fixed capacity.
func (t *HashTable) Cap() int { return t.TotalSize }

func (t *HashTable) checkLive() {
	if t.destroyed {
		panic("probehash/funnel: use of table after Destroy")
	}
}
