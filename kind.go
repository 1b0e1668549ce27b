package probehash

// Kind selects which probe-sequence scheme a Table uses. It is the Go
// analogue of the C reference's hash_type_t enum: a tag carried alongside
// the implementation rather than a union of function pointers. Create sets
// a Table's Kind to match the concrete type it builds.
type Kind int

const (
	// KindElastic selects elastic hashing: segmented sub-arrays, batch
	// selection, and the three-case insertion rule.
	KindElastic Kind = iota
	// KindFunnel selects funnel hashing: a level cascade with per-level
	// occupancy thresholds and level-keyed probe sequences.
	KindFunnel
	// KindLinear selects the classical linear-probing baseline.
	KindLinear
	// KindUniform selects the classical double-hashing baseline.
	KindUniform
)

// String returns the kind's name, lowercase, matching the package names
// under which each variant lives.
func (k Kind) String() string {
	switch k {
	case KindElastic:
		return "elastic"
	case KindFunnel:
		return "funnel"
	case KindLinear:
		return "linear"
	case KindUniform:
		return "uniform"
	default:
		return "unknown"
	}
}
