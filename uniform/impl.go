package uniform

// insert tries pos_i = h(key,i) mod N for i=0,1,...,N-1, installing on the
// first empty slot or overwriting on a key match. Probes start at 1.
func insert(t *HashTable, key, value []byte) (bool, uint32) {
	n := uint32(len(t.Slots))
	probes := uint32(1)

	for i := uint32(0); i < n; i++ {
		pos := t.Hash(key, i) % n
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
		probes++
	}
	return false, probes - 1
}

func lookup(t *HashTable, key []byte) ([]byte, bool, uint32) {
	n := uint32(len(t.Slots))
	probes := uint32(1)

	for i := uint32(0); i < n; i++ {
		pos := t.Hash(key, i) % n
		s := &t.Slots[pos]
		if !s.Occupied {
			return nil, false, probes
		}
		if s.Matches(key) {
			return s.Value, true, probes
		}
		probes++
	}
	return nil, false, probes - 1
}

func del(t *HashTable, key []byte) (bool, uint32) {
	n := uint32(len(t.Slots))
	probes := uint32(1)

	for i := uint32(0); i < n; i++ {
		pos := t.Hash(key, i) % n
		s := &t.Slots[pos]
		if !s.Occupied {
			return false, probes
		}
		if s.Matches(key) {
			s.Clear()
			t.TotalElements--
			return true, probes
		}
		probes++
	}
	return false, probes - 1
}
