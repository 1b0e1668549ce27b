package linear

// insert walks pos, pos+1, pos+2, ... until it finds key (overwrite) or an
// empty slot (install). Returns whether it succeeded and how many slots it
// examined; probes start at 1 since the first access already counts.
func insert(t *HashTable, key, value []byte) (bool, uint32) {
	n := uint32(len(t.Slots))
	pos := t.Hash(key, 0) % n
	probes := uint32(1)

	for {
		s := &t.Slots[pos]
		if !s.Occupied {
			s.Fill(key, value)
			t.TotalElements++
			return true, probes
		}
		if s.Matches(key) {
			s.Replace(value)
			return true, probes
		}
		if probes >= n {
			return false, probes
		}
		pos = (pos + 1) % n
		probes++
	}
}

func lookup(t *HashTable, key []byte) ([]byte, bool, uint32) {
	n := uint32(len(t.Slots))
	pos := t.Hash(key, 0) % n
	probes := uint32(1)

	for {
		s := &t.Slots[pos]
		if !s.Occupied {
			return nil, false, probes
		}
		if s.Matches(key) {
			return s.Value, true, probes
		}
		if probes >= n {
			return nil, false, probes
		}
		pos = (pos + 1) % n
		probes++
	}
}

func del(t *HashTable, key []byte) (bool, uint32) {
	n := uint32(len(t.Slots))
	pos := t.Hash(key, 0) % n
	probes := uint32(1)

	for {
		s := &t.Slots[pos]
		if !s.Occupied {
			return false, probes
		}
		if s.Matches(key) {
			s.Clear()
			t.TotalElements--
			return true, probes
		}
		if probes >= n {
			return false, probes
		}
		pos = (pos + 1) % n
		probes++
	}
}
