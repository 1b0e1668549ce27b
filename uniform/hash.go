// Package uniform implements the double-hashing (uniform probing) baseline:
// each attempt re-hashes the key with a fresh attempt counter instead of
// stepping linearly, giving probe sequences closer to a uniform random
// permutation than linear probing's.
package uniform

import (
	"fmt"

	"github.com/gopherhash/probehash/internal/slot"
)

// NewHashTableDefault creates a new hash table with a 0.75 max load factor
// and the default djb2+attempt hash.
func NewHashTableDefault(capacity int) (*HashTable, error) {
	return NewHashTable(capacity, 0.75, nil)
}

// NewHashTable creates a double-hashing table of capacity slots. alphaMax is
// the maximum load factor an insert will push the table to, and must be in
// range (0,1). hash defaults to slot.DefaultHash when nil.
func NewHashTable(capacity int, alphaMax float64, hash slot.HashFunc) (*HashTable, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("probehash/uniform: capacity must be positive")
	}
	if alphaMax <= 0 || alphaMax >= 1 {
		return nil, fmt.Errorf("probehash/uniform: alphaMax must be in range (0, 1)")
	}
	if hash == nil {
		hash = slot.DefaultHash
	}

	t := &HashTable{
		Hash:     hash,
		AlphaMax: alphaMax,
		Slots:    make([]slot.Slot, capacity),
	}
	t.stats.TableSize = capacity
	return t, nil
}

// HashTable probes pos_i = h(key,i) mod N for i=0,1,...,N-1, re-deriving the
// hash at every attempt rather than stepping linearly from a single seed.
// Like linear, deletion leaves no tombstone and does not repair broken probe
// sequences — the same documented limitation, preserved for comparability.
type HashTable struct {
	Hash          slot.HashFunc
	AlphaMax      float64
	Slots         []slot.Slot
	TotalElements int

	stats     slot.Stats
	destroyed bool
}

// Insert installs key/value, overwriting in place on key match. Refuses
// when (TotalElements+1)/N would exceed AlphaMax, and fails if no empty slot
// turns up within N probes.
func (t *HashTable) Insert(key, value []byte) (bool, error) {
	t.checkLive()
	if (float64(t.TotalElements+1))/float64(len(t.Slots)) > t.AlphaMax {
		t.stats.Record(slot.OpInsert, 0)
		return false, nil
	}

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
// visit. It has no effect on statistics.
func (t *HashTable) ProbeSequence(key []byte, n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, int(t.Hash(key, uint32(i))%uint32(len(t.Slots))))
	}
	return out
}

// Destroy releases the table's slots. Operations after Destroy are
// undefined; this implementation panics to surface misuse early.
func (t *HashTable) Destroy() {
	t.Slots = nil
	t.destroyed = true
}

// Stats returns a pointer to the table's live statistics record.
func (t *HashTable) Stats() *slot.Stats { return &t.stats }

// Len returns the number of elements currently stored.
func (t *HashTable) Len() int { return t.TotalElements }

// Cap returns the table's fixed capacity.
func (t *HashTable) Cap() int { return len(t.Slots) }

func (t *HashTable) checkLive() {
	if t.destroyed {
		panic("probehash/uniform: use of table after Destroy")
	}
}
