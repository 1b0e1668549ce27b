package funnel

// levelHash mixes a key's attempt-seeded hash differently per level, so the
// same key does not walk a correlated probe sequence as it falls through
// the cascade: level 0 uses the hash untouched, level 1 folds its own high
// bits in, level 2 folds all four bytes together, and level 3+ salts with
// the level index times the golden-ratio constant 0x9E3779B9.
func levelHash(h uint32, levelIndex int) uint32 {
	switch levelIndex {
	case 0:
		return h
	case 1:
		return h ^ (h >> 16)
	case 2:
		return h ^ (h >> 8) ^ (h >> 16) ^ (h >> 24)
	default:
		return h ^ (uint32(levelIndex) * 0x9E3779B9)
	}
}

// levelProbePos is the position funnel hashing visits for key on attempt j
// within level levelIndex: each attempt reseeds the default hash with j,
// then the level-salted result is taken mod the level's size.
func levelProbePos(t *HashTable, levelIndex int, j uint32, key []byte) uint32 {
	size := uint32(len(t.Levels[levelIndex].Slots))
	h := t.Hash(key, j)
	return levelHash(h, levelIndex) % size
}

// insert walks levels in order, looking for an existing copy of key within
// the same first-fit scan that would place a new one: a level whose load
// factor already sits at or above its threshold is skipped without
// spending any probes on it, and a level's scan stops the moment it hits an
// empty slot — since insertion always fills the first empty slot an
// attempt sequence finds, a trailing empty slot means the key was never
// placed past that point, unless a deletion (which leaves no tombstone)
// has since emptied that slot.
func insert(t *HashTable, key, value []byte) (bool, uint32) {
	ceiling := int(float64(t.TotalSize) * (1 - t.Delta))

	var probes uint32
	for i := range t.Levels {
		lv := &t.Levels[i]
		size := len(lv.Slots)
		loadFactor := float64(lv.Occupied) / float64(size)
		if loadFactor >= levelThreshold(i, t.Delta) {
			continue
		}
		for j := uint32(0); j < uint32(size); j++ {
			pos := levelProbePos(t, i, j, key)
			probes++
			s := &lv.Slots[pos]
			if s.Occupied {
				if s.Matches(key) {
					s.Replace(value)
					return true, probes
				}
				continue
			}
			if t.TotalElements >= ceiling {
				return false, probes
			}
			s.Fill(key, value)
			lv.Occupied++
			t.TotalElements++
			return true, probes
		}
	}
	return false, probes
}

// lookup probes each level's attempt sequence, stopping at the first match
// (success) or the first empty slot in that level (move to the next
// level), matching the C reference's break-on-empty behavior.
func lookup(t *HashTable, key []byte) ([]byte, bool, uint32) {
	var probes uint32
	for i := range t.Levels {
		lv := &t.Levels[i]
		size := uint32(len(lv.Slots))
		for j := uint32(0); j < size; j++ {
			pos := levelProbePos(t, i, j, key)
			probes++
			s := &lv.Slots[pos]
			if !s.Occupied {
				break
			}
			if s.Matches(key) {
				return s.Value, true, probes
			}
		}
	}
	return nil, false, probes
}

// del probes each level's attempt sequence, stopping at the first match or
// the first empty slot in that level, same as lookup.
func del(t *HashTable, key []byte) (bool, uint32) {
	var probes uint32
	for i := range t.Levels {
		lv := &t.Levels[i]
		size := uint32(len(lv.Slots))
		for j := uint32(0); j < size; j++ {
			pos := levelProbePos(t, i, j, key)
			probes++
			s := &lv.Slots[pos]
			if !s.Occupied {
				break
			}
			if s.Matches(key) {
				s.Clear()
				lv.Occupied--
				t.TotalElements--
				return true, probes
			}
		}
	}
	return false, probes
}
