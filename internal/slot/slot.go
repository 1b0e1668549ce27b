// Package slot defines the storage and instrumentation primitives shared by
// every probehash table variant: the occupied/empty slot record, the hash
// seeding convention, and the cumulative statistics record.
package slot

import "slices"

// Slot holds one key/value pair owned exclusively by the slot array it
// belongs to. A Slot with Occupied false has no semantically meaningful
// Key/Value; callers must not read them.
type Slot struct {
	Key      []byte
	Value    []byte
	Occupied bool
}

// Fill installs key/value into the slot, taking an owned copy of both so the
// slot is independent of whatever buffer the caller passed in.
func (s *Slot) Fill(key, value []byte) {
	s.Key = CopyBytes(key)
	s.Value = CopyBytes(value)
	s.Occupied = true
}

// Replace overwrites the value of an already-occupied slot in place.
func (s *Slot) Replace(value []byte) {
	s.Value = CopyBytes(value)
}

// Clear releases the slot's buffers and marks it empty. There is no
// tombstone state: Clear returns the slot to exactly its zero value.
func (s *Slot) Clear() {
	s.Key = nil
	s.Value = nil
	s.Occupied = false
}

// Matches reports whether the slot is occupied by the given key.
func (s *Slot) Matches(key []byte) bool {
	return s.Occupied && slices.Equal(s.Key, key)
}

// CopyBytes returns an owned copy of b. A nil or empty b yields nil, so a
// slot filled with an empty key or value holds nil for it.
func CopyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

