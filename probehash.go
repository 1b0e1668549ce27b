// Package probehash is the dispatch layer over the four probe-sequence
// table variants (elastic, funnel, linear, uniform): one Kind-tagged
// wrapper exposing create/insert/lookup/delete/destroy/statistics so
// callers — in particular the benchmark CLI — can compare variants through
// a single surface without knowing which one they're holding.
package probehash

import (
	"fmt"

	"github.com/gopherhash/probehash/elastic"
	"github.com/gopherhash/probehash/funnel"
	"github.com/gopherhash/probehash/internal/slot"
	"github.com/gopherhash/probehash/linear"
	"github.com/gopherhash/probehash/uniform"
)

// tableImpl is the capability every variant's HashTable satisfies. The
// dispatch layer holds one of these behind a Table rather than a table of
// function pointers — idiomatic Go prefers an interface value to a
// hand-rolled v-table.
type tableImpl interface {
	Insert(key, value []byte) (bool, error)
	Lookup(key []byte) ([]byte, bool)
	Delete(key []byte) bool
	Destroy()
	Stats() *slot.Stats
	Len() int
	Cap() int
	ProbeSequence(key []byte, n int) []int
}

// Table is the opaque, Kind-tagged handle every variant is exposed through.
// Its inner implementation is never exported; callers interact exclusively
// through Table's methods.
type Table struct {
	Kind  Kind
	Param float64
	N     int

	impl tableImpl
}

// Create builds a table of the given kind with n slots. param is
// interpreted by the variant: for KindElastic/KindFunnel it is the error
// bound δ ∈ (0,1); for KindLinear/KindUniform it is the ceiling load factor
// α_max ∈ (0,1). hash may be nil to use the default djb2+attempt hash.
func Create(kind Kind, n int, param float64, hash slot.HashFunc) (*Table, error) {
	var (
		impl tableImpl
		err  error
	)

	switch kind {
	case KindElastic:
		impl, err = elastic.NewHashTable(n, param, hash)
	case KindFunnel:
		impl, err = funnel.NewHashTable(n, param, hash)
	case KindLinear:
		impl, err = linear.NewHashTable(n, param, hash)
	case KindUniform:
		impl, err = uniform.NewHashTable(n, param, hash)
	default:
		return nil, InvalidArgumentError{msg: fmt.Sprintf("unknown kind %d", kind)}
	}
	if err != nil {
		return nil, InvalidArgumentError{msg: err.Error()}
	}

	return &Table{Kind: kind, Param: param, N: n, impl: impl}, nil
}

// Insert installs key/value, overwriting in place on key match. On failure
// it distinguishes, via the returned error, whether the table's fill
// ceiling was already reached (CapacityExceededError) or whether the
// variant's probe budget ran out while the table still had room
// (ProbeBudgetExhaustedError).
func (t *Table) Insert(key, value []byte) (bool, error) {
	ok, err := t.impl.Insert(key, value)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}
	if t.impl.Len() >= t.fillCeiling() {
		return false, CapacityExceededError{}
	}
	return false, ProbeBudgetExhaustedError{}
}

// Lookup returns the value for key and true, or nil and false if absent.
func (t *Table) Lookup(key []byte) ([]byte, bool) {
	return t.impl.Lookup(key)
}

// Delete removes key, returning false if it was not present.
func (t *Table) Delete(key []byte) bool {
	return t.impl.Delete(key)
}

// Destroy releases the table's underlying storage.
func (t *Table) Destroy() {
	t.impl.Destroy()
}

// GetStats returns a pointer to the table's live statistics record.
func (t *Table) GetStats() *slot.Stats {
	return t.impl.Stats()
}

// GetLoadFactor returns the fraction of slots currently occupied.
func (t *Table) GetLoadFactor() float64 {
	if t.impl.Cap() == 0 {
		return 0
	}
	return float64(t.impl.Len()) / float64(t.impl.Cap())
}

// GetAvgInsertProbes returns the mean probe count across all inserts.
func (t *Table) GetAvgInsertProbes() float64 { return t.impl.Stats().AvgInsertProbes() }

// GetAvgLookupProbes returns the mean probe count across all lookups.
func (t *Table) GetAvgLookupProbes() float64 { return t.impl.Stats().AvgLookupProbes() }

// GetAvgDeleteProbes returns the mean probe count across all deletes.
func (t *Table) GetAvgDeleteProbes() float64 { return t.impl.Stats().AvgDeleteProbes() }

// ProbeSequence returns the first n slot indices key's probe sequence would
// visit. It has no effect on statistics.
func (t *Table) ProbeSequence(key []byte, n int) []int {
	return t.impl.ProbeSequence(key, n)
}

// Len returns the number of elements currently stored.
func (t *Table) Len() int { return t.impl.Len() }

// Cap returns the table's fixed capacity.
func (t *Table) Cap() int { return t.impl.Cap() }

// fillCeiling returns the element count at or above which Insert refuses a
// new key outright, derived the same way each variant derives it
// internally: floor(N*(1-δ)) for elastic/funnel, floor(N*α_max) for
// linear/uniform.
func (t *Table) fillCeiling() int {
	switch t.Kind {
	case KindElastic, KindFunnel:
		return int(float64(t.N) * (1 - t.Param))
	default:
		return int(float64(t.N) * t.Param)
	}
}
