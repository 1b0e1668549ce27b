package slot

// HashFunc computes a probe seed for key at the given attempt number.
// Variants never call a hash function more than once per probe; they
// compose their own seed (e.g. elastic's phi(i+1,j+1)) and feed it through
// the attempt parameter so the whole library shares one primitive.
type HashFunc func(key []byte, attempt uint32) uint32

// M is the modulus default_hash folds attempt-mixing into: the full 32-bit
// range.
const M = 1<<32 - 1

// DefaultHash is the canonical byte-string hash: djb2 on the key, then for
// attempt>0 combined with attempt*(1+(h mod (M-1))).
func DefaultHash(key []byte, attempt uint32) uint32 {
	var h uint32 = 5381
	for _, b := range key {
		h = h*33 + uint32(b)
	}
	if attempt > 0 {
		h2 := 1 + h%(M-1)
		h = h + attempt*h2
	}
	return h
}
