package slot

import "fmt"

// OpKind distinguishes the three instrumented operation kinds for the
// purpose of per-kind probe accounting.
type OpKind int

const (
	OpInsert OpKind = iota
	OpLookup
	OpDelete
)

// Stats is the cumulative, per-table statistics record. Every operation —
// successful or not — advances it. Bins: {0,1,2,3,4,5-8,9-16,17-32,33-64,>64}.
type Stats struct {
	TotalProbes   uint64
	NumOperations uint64
	AvgProbes     float64
	NumEntries    int
	TableSize     int
	MaxProbes     uint32
	ProbeDist     [10]uint32

	InsertProbes uint64
	LookupProbes uint64
	DeleteProbes uint64
	InsertOps    uint64
	LookupOps    uint64
	DeleteOps    uint64
}

// Record folds one operation's probe count into the statistics, updating
// totals, the per-kind bucket, max, average, and the histogram. It must be
// called exactly once per operation, including failed ones.
func (s *Stats) Record(kind OpKind, probes uint32) {
	s.TotalProbes += uint64(probes)
	s.NumOperations++
	s.AvgProbes = float64(s.TotalProbes) / float64(s.NumOperations)

	if probes > s.MaxProbes {
		s.MaxProbes = probes
	}

	switch {
	case probes == 0:
		s.ProbeDist[0]++
	case probes == 1:
		s.ProbeDist[1]++
	case probes == 2:
		s.ProbeDist[2]++
	case probes == 3:
		s.ProbeDist[3]++
	case probes == 4:
		s.ProbeDist[4]++
	case probes <= 8:
		s.ProbeDist[5]++
	case probes <= 16:
		s.ProbeDist[6]++
	case probes <= 32:
		s.ProbeDist[7]++
	case probes <= 64:
		s.ProbeDist[8]++
	default:
		s.ProbeDist[9]++
	}

	switch kind {
	case OpInsert:
		s.InsertOps++
		s.InsertProbes += uint64(probes)
	case OpLookup:
		s.LookupOps++
		s.LookupProbes += uint64(probes)
	case OpDelete:
		s.DeleteOps++
		s.DeleteProbes += uint64(probes)
	}
}

// AvgInsertProbes returns InsertProbes/InsertOps, or 0 if no inserts ran.
func (s *Stats) AvgInsertProbes() float64 { return avg(s.InsertProbes, s.InsertOps) }

// AvgLookupProbes returns LookupProbes/LookupOps, or 0 if no lookups ran.
func (s *Stats) AvgLookupProbes() float64 { return avg(s.LookupProbes, s.LookupOps) }

// AvgDeleteProbes returns DeleteProbes/DeleteOps, or 0 if no deletes ran.
func (s *Stats) AvgDeleteProbes() float64 { return avg(s.DeleteProbes, s.DeleteOps) }

// LoadFactor returns NumEntries/TableSize, or 0 if the table has no slots.
func (s *Stats) LoadFactor() float64 {
	if s.TableSize == 0 {
		return 0
	}
	return float64(s.NumEntries) / float64(s.TableSize)
}

func avg(num, denom uint64) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

// String renders a human-readable dump in the spirit of the C reference's
// print_hash_stats, for the benchmark CLI's verbose mode.
func (s *Stats) String() string {
	out := fmt.Sprintf(
		"entries=%d size=%d load=%.2f total_probes=%d avg_probes=%.2f max_probes=%d ops=%d\n",
		s.NumEntries, s.TableSize, s.LoadFactor(), s.TotalProbes, s.AvgProbes, s.MaxProbes, s.NumOperations,
	)
	out += fmt.Sprintf("  insert: ops=%d avg_probes=%.2f\n", s.InsertOps, s.AvgInsertProbes())
	out += fmt.Sprintf("  lookup: ops=%d avg_probes=%.2f\n", s.LookupOps, s.AvgLookupProbes())
	out += fmt.Sprintf("  delete: ops=%d avg_probes=%.2f\n", s.DeleteOps, s.AvgDeleteProbes())
	bounds := [10][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 8}, {9, 16}, {17, 32}, {33, 64}, {65, -1}}
	out += "  probe distribution:\n"
	for i, b := range bounds {
		if b[1] < 0 {
			out += fmt.Sprintf("    >%d: %d\n", b[0]-1, s.ProbeDist[i])
		} else {
			out += fmt.Sprintf("    %d-%d: %d\n", b[0], b[1], s.ProbeDist[i])
		}
	}
	return out
}
