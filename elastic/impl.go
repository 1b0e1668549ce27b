package elastic

import (
	"math"
	"math/bits"
)

// phi is the injective pairing function mapping (sub-array index+1, attempt+1)
// to a single probe seed: below a leading 1, it emits each bit of j
// (least-significant first) preceded by a 1 flag bit, then a 0 separator
// bit, then i's bits (least-significant first). Distinct (i,j) pairs never
// collide while the encoding fits in 32 bits, so every sub-array/attempt
// combination gets an independent probe seed out of one hash call; longer
// encodings lose their high bits and can collide.
func phi(i, j uint32) uint32 {
	result := uint32(1)
	for tj := j; tj > 0; tj >>= 1 {
		result = (result << 2) | 2 | (tj & 1)
	}
	result <<= 1
	for ti := i; ti > 0; ti >>= 1 {
		result = (result << 1) | (ti & 1)
	}
	return result
}

// phiMap folds a hash value into a slot position within a sub-array of the
// given size, double-hashing style: pos = (h + j*(1+(h mod (size-1)))) mod
// size. For a fixed h, successive attempts j land on a fixed-step arithmetic
// sequence through the sub-array; probePos, its caller, passes a freshly
// seeded h for every attempt.
func phiMap(h, j, size uint32) uint32 {
	if size <= 1 {
		return 0
	}
	step := 1 + h%(size-1)
	return (h + j*step) % size
}

// probePos is the position elastic hashing visits for key on attempt j
// within sub-array subarrayIndex: it derives a per-(subarray,attempt) seed
// via phi, hashes key with that seed, then folds the hash into the
// sub-array with phiMap.
func probePos(t *HashTable, subarrayIndex int, j uint32, key []byte) uint32 {
	size := uint32(len(t.SubArrays[subarrayIndex].Slots))
	seed := phi(uint32(subarrayIndex)+1, j+1)
	h := t.Hash(key, seed)
	return phiMap(h, j, size)
}

// ceilLog2 returns ceil(log2(n)) for n>=1.
func ceilLog2(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len32(n - 1))
}

// calculateF computes the Case A probe budget F(epsilon1,delta) =
// ceil(4*ln(2/delta)/epsilon1), the number of slots elastic hashing is
// willing to examine in the fuller of a sub-array pair before falling back
// to the emptier one.
func calculateF(epsilon1, delta float64) uint32 {
	if epsilon1 <= 0 {
		epsilon1 = 1e-9
	}
	f := math.Ceil(4 * math.Log(2/delta) / epsilon1)
	return uint32(f)
}

// selectBatch walks the sub-array cascade from the front and returns the
// index of the first one whose occupancy is below its fill ceiling
// (size - delta*size/2). A key routes to that sub-array's (or, for the
// last one, to itself alone) insertion logic.
func selectBatch(t *HashTable) int {
	b := 0
	for b < len(t.SubArrays)-1 {
		cur := &t.SubArrays[b]
		ceiling := len(cur.Slots) - int(t.Delta*float64(len(cur.Slots))/2)
		if cur.Occupied < ceiling {
			break
		}
		b++
	}
	return b
}

// probeInto probes sub-array idx for up to limit attempts — the same
// attempts the insertion-routing rule already budgets for this sub-array.
// A slot occupied by a matching key is overwritten in place regardless of
// ceiling, since overwriting an existing key never grows TotalElements; an
// empty slot is used for a new key unless ceiling has already been
// reached, in which case the insert is refused there rather than scanning
// further.
func probeInto(t *HashTable, idx int, key, value []byte, limit uint32, ceiling int) (bool, uint32) {
	sa := &t.SubArrays[idx]
	var probes uint32
	for j := uint32(0); j < limit; j++ {
		pos := probePos(t, idx, j, key)
		probes++
		s := &sa.Slots[pos]
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
		sa.Occupied++
		t.TotalElements++
		return true, probes
	}
	return false, probes
}

// insertRouted applies the three-case elastic-hashing insertion rule to the
// batch-selected pair of sub-arrays (b, b+1):
//
//   - Case A: both sub-arrays have ample room (epsilon1 > delta/2, epsilon2
//     > 1/4) — probe only F(epsilon1,delta) slots of the fuller sub-array b
//     before falling back to a full probe of b+1.
//   - Case B: sub-array b is nearly full (epsilon1 <= delta/2) — skip it
//     entirely and probe only b+1.
//   - Case C: sub-array b+1 is getting full (epsilon2 <= 1/4) — probe only
//     b, accepting the extra insertion cost to protect b+1's lookup bound.
func insertRouted(t *HashTable, key, value []byte, b int, ceiling int) (bool, uint32) {
	arrI := &t.SubArrays[b]
	hasNext := b+1 < len(t.SubArrays)

	epsilon1 := 1 - float64(arrI.Occupied)/float64(len(arrI.Slots))
	epsilon2 := 1.0
	if hasNext {
		arrI1 := &t.SubArrays[b+1]
		epsilon2 = 1 - float64(arrI1.Occupied)/float64(len(arrI1.Slots))
	}

	switch {
	case !hasNext:
		return probeInto(t, b, key, value, uint32(len(arrI.Slots)), ceiling)
	case epsilon1 <= t.Delta/2:
		return probeInto(t, b+1, key, value, uint32(len(t.SubArrays[b+1].Slots)), ceiling)
	case epsilon2 <= 0.25:
		return probeInto(t, b, key, value, uint32(len(arrI.Slots)), ceiling)
	default:
		f := calculateF(epsilon1, t.Delta)
		ok, p1 := probeInto(t, b, key, value, f, ceiling)
		if ok {
			return true, p1
		}
		ok, p2 := probeInto(t, b+1, key, value, uint32(len(t.SubArrays[b+1].Slots)), ceiling)
		return ok, p1 + p2
	}
}

// insert selects a batch and routes the insertion through the three-case
// rule, overwriting an existing key in place wherever the routing scan
// happens to encounter it. A new key is refused once TotalElements has
// reached the table's fill ceiling, at the point the routing scan would
// otherwise have used an empty slot — never by a separate full-cascade
// pre-scan, so an insert's cost stays bounded by the same budget the
// three-case rule already allots it.
func insert(t *HashTable, key, value []byte) (bool, uint32) {
	ceiling := int(float64(t.TotalSize) * (1 - t.Delta))
	b := selectBatch(t)
	if b == 0 {
		return probeInto(t, 0, key, value, uint32(len(t.SubArrays[0].Slots)), ceiling)
	}
	return insertRouted(t, key, value, b, ceiling)
}

// lookup walks sub-arrays front to back, each capped at
// max(20, 3*ceil(log2(size+1))) probes and stopping at the first empty
// slot encountered (insertion takes the first empty slot it finds, but
// deletion leaves no tombstone, so a hole left by a deletion also ends the
// search in that sub-array), subject to a global 200-probe hard cap across
// the whole table.
func lookup(t *HashTable, key []byte) ([]byte, bool, uint32) {
	const hardCap = 200
	var probes uint32
	for i := range t.SubArrays {
		if probes >= hardCap {
			break
		}
		sa := &t.SubArrays[i]
		size := uint32(len(sa.Slots))
		maxProbes := uint32(20)
		if calc := 3 * ceilLog2(size+1); calc > maxProbes {
			maxProbes = calc
		}
		for j := uint32(0); j < maxProbes && probes < hardCap; j++ {
			pos := probePos(t, i, j, key)
			probes++
			s := &sa.Slots[pos]
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

// del walks every sub-array's full probe sequence (no caps — deletion must
// find a present key even past the lookup probe budget) and clears the
// first match, stopping early at the first empty slot per sub-array.
func del(t *HashTable, key []byte) (bool, uint32) {
	var probes uint32
	for i := range t.SubArrays {
		sa := &t.SubArrays[i]
		size := uint32(len(sa.Slots))
		for j := uint32(0); j < size; j++ {
			pos := probePos(t, i, j, key)
			probes++
			s := &sa.Slots[pos]
			if !s.Occupied {
				break
			}
			if s.Matches(key) {
				s.Clear()
				sa.Occupied--
				t.TotalElements--
				return true, probes
			}
		}
	}
	return false, probes
}
