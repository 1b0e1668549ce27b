// Package elastic implements elastic hashing: a cascade of geometrically
// shrinking sub-arrays probed with an injective (sub-array, attempt) pairing,
// routing inserts by a batch-selection rule that trades a small amount of
// insertion work for a worst-case O(log(1/delta)) lookup bound.
package elastic

import (
	"fmt"
	"math"

	"github.com/gopherhash/probehash/internal/slot"
)

// subArray is one level of the elastic cascade.
type subArray struct {
	Slots    []slot.Slot
	Occupied int
}

// NewHashTableDefault creates a table with delta=0.1 and the default
// djb2+attempt hash.
func NewHashTableDefault(capacity int) (*HashTable, error) {
	return NewHashTable(capacity, 0.1, nil)
}

// NewHashTable creates an elastic hash table sized for capacity slots, with
// the given delta (the fraction of the table elastic hashing holds in
// reserve to keep lookups fast) and hash. delta must be in range (0,1);
// hash defaults to slot.DefaultHash when nil.
//
// Capacity is carved into ceil(log2(capacity))+1 sub-arrays of geometrically
// decreasing size: half the table, then halves of what remains, with the
// last sub-array absorbing the remainder. A sub-array that would round down
// to zero gets a floor of one slot.
func NewHashTable(capacity int, delta float64, hash slot.HashFunc) (*HashTable, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("probehash/elastic: capacity must be positive")
	}
	if delta <= 0 || delta >= 1 {
		return nil, fmt.Errorf("probehash/elastic: delta must be in range (0, 1)")
	}
	if hash == nil {
		hash = slot.DefaultHash
	}

	numSubArrays := int(math.Ceil(math.Log2(float64(capacity)))) + 1
	subArrays := make([]subArray, numSubArrays)
	allocated := 0
	for i := 0; i < numSubArrays; i++ {
		var size int
		switch {
		case i == 0:
			size = capacity / 2
		case i == numSubArrays-1:
			size = capacity - allocated
		default:
			size = capacity / (2 << uint(i))
		}
		if size <= 0 {
			size = 1
		}
		allocated += size
		subArrays[i] = subArray{Slots: make([]slot.Slot, size)}
	}

	t := &HashTable{
		Hash:      hash,
		Delta:     delta,
		TotalSize: capacity,
		SubArrays: subArrays,
	}
	t.stats.TableSize = capacity
	return t, nil
}

// HashTable is the elastic-hashing cascade described in the package doc.
// Unlike linear and uniform, it has no single flat slot array: SubArrays[0]
// is the largest and most eagerly filled; later sub-arrays shrink
// geometrically (the last one holds whatever capacity remains) and are used
// as a last resort, so a lookup that exhausts the early, populous
// sub-arrays quickly has only a shrinking tail left to search.
type HashTable struct {
	Hash          slot.HashFunc
	Delta         float64
	TotalSize     int
	TotalElements int
	SubArrays     []subArray

	stats     slot.Stats
	destroyed bool
}

// Insert installs key/value, overwriting in place on key match regardless of
// how full the table is. For a new key, insertion is refused once
// TotalElements reaches floor(TotalSize*(1-Delta)) — elastic hashing holds
// that reserve back deliberately to keep lookup probe counts bounded.
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
// The search is capped per sub-array at max(20, 3*ceil(log2(size+1))) probes
// and at 200 probes overall, so a lookup for an absent key stays bounded
// regardless of key distribution.
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
// visit, walking sub-arrays in order and exhausting each one's full size
// before moving to the next. It has no effect on statistics.
func (t *HashTable) ProbeSequence(key []byte, n int) []int {
	out := make([]int, 0, n)
	for i := range t.SubArrays {
		if len(out) >= n {
			break
		}
		size := len(t.SubArrays[i].Slots)
		for j := 0; j < size && len(out) < n; j++ {
			out = append(out, int(probePos(t, i, uint32(j), key)))
		}
	}
	return out
}

// Destroy releases the table's sub-arrays. Operations after Destroy are
// undefined; this implementation panics to surface misuse early.
func (t *HashTable) Destroy() {
	t.SubArrays = nil
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
		panic("probehash/elastic: use of table after Destroy")
	}
}
