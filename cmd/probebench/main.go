// Command probebench runs the same synthetic workload against all four
// probehash table kinds and prints two comparison tables: per-kind probe
// averages, and a normalization against linear probing.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/olekukonko/tablewriter"

	"github.com/gopherhash/probehash"
	"github.com/gopherhash/probehash/internal/slot"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "probebench:", err)
		os.Exit(1)
	}
}

type config struct {
	size         int
	ops          int
	load         float64
	insertRatio  float64
	lookupRatio  float64
	deleteRatio  float64
	seed         uint64
	verbose      bool
	hashName     string
}

func run(args []string) error {
	cfg, err := parseFlags(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if cfg.verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	hashFunc, err := resolveHash(cfg.hashName)
	if err != nil {
		return err
	}

	kinds := []probehash.Kind{probehash.KindElastic, probehash.KindFunnel, probehash.KindLinear, probehash.KindUniform}
	results := make(map[probehash.Kind]*slot.Stats, len(kinds))

	for _, kind := range kinds {
		logger.Info("running workload", "kind", kind.String())
		param := 0.05
		if kind == probehash.KindLinear || kind == probehash.KindUniform {
			param = cfg.load
		}

		tbl, err := probehash.Create(kind, cfg.size, param, hashFunc)
		if err != nil {
			return fmt.Errorf("create %s table: %w", kind, err)
		}

		runWorkload(tbl, cfg, logger)
		results[kind] = tbl.GetStats()
		if cfg.verbose {
			fmt.Fprintf(os.Stderr, "%s stats:\n%s", kind, results[kind])
		}
		tbl.Destroy()
	}

	printProbeAverages(kinds, results)
	printComparisonTable(kinds, results)
	return nil
}

func parseFlags(args []string) (config, error) {
	fs := flag.NewFlagSet("probebench", flag.ContinueOnError)
	cfg := config{}

	fs.IntVar(&cfg.size, "size", 100000, "hash table size (slot count)")
	fs.IntVar(&cfg.ops, "ops", 50000, "number of operations to perform")
	fs.Float64Var(&cfg.load, "load", 0.75, "target load factor ceiling for linear/uniform")
	fs.Float64Var(&cfg.insertRatio, "insert", 0.70, "fraction of operations that are inserts")
	fs.Float64Var(&cfg.lookupRatio, "lookup", 0.20, "fraction of operations that are lookups")
	fs.Float64Var(&cfg.deleteRatio, "delete", 0.10, "fraction of operations that are deletes")
	var seed int64
	fs.Int64Var(&seed, "seed", 0, "random seed (default: current time)")
	fs.BoolVar(&cfg.verbose, "verbose", false, "print progress to stderr")
	fs.StringVar(&cfg.hashName, "hash", "djb2", "hash function to use: djb2, xxhash, or siphash")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.size <= 0 {
		return cfg, fmt.Errorf("--size must be positive")
	}
	if cfg.ops <= 0 {
		return cfg, fmt.Errorf("--ops must be positive")
	}
	sum := cfg.insertRatio + cfg.lookupRatio + cfg.deleteRatio
	if sum < 0.99 || sum > 1.01 {
		return cfg, fmt.Errorf("--insert/--lookup/--delete must sum to 1.0 (±0.01), got %.4f", sum)
	}

	if seed == 0 {
		cfg.seed = uint64(time.Now().UnixNano())
	} else {
		cfg.seed = uint64(seed)
	}
	return cfg, nil
}

// resolveHash wraps a caller-selected digest into the func(key,attempt)
// shape every variant shares: fold the digest to 32 bits, then combine with
// attempt the same way slot.DefaultHash does, so swapping the underlying
// hash never changes the probe-sequence contract.
func resolveHash(name string) (slot.HashFunc, error) {
	switch name {
	case "", "djb2":
		return slot.DefaultHash, nil
	case "xxhash":
		return mixAttempt(func(key []byte) uint32 {
			return uint32(xxhash.Sum64(key))
		}), nil
	case "siphash":
		return mixAttempt(func(key []byte) uint32 {
			return uint32(siphash.Hash(0x0123456789abcdef, 0xfedcba9876543210, key))
		}), nil
	default:
		return nil, fmt.Errorf("unknown --hash %q (want djb2, xxhash, or siphash)", name)
	}
}

func mixAttempt(base func(key []byte) uint32) slot.HashFunc {
	const m = slot.M
	return func(key []byte, attempt uint32) uint32 {
		h := base(key)
		if attempt > 0 {
			h2 := 1 + h%(m-1)
			h += attempt * h2
		}
		return h
	}
}

func runWorkload(tbl *probehash.Table, cfg config, logger *slog.Logger) {
	rng := rand.NewChaCha8(seedBytes(cfg.seed))
	inserted := make([][]byte, 0, cfg.ops)

	for i := 0; i < cfg.ops; i++ {
		r := float64(rng.Uint64()%1_000_000) / 1_000_000
		switch {
		case r < cfg.insertRatio:
			key := randomBytes(rng, 15)
			value := randomBytes(rng, 15)
			if ok, _ := tbl.Insert(key, value); ok {
				inserted = append(inserted, key)
			}
		case r < cfg.insertRatio+cfg.lookupRatio:
			key := pickOrRandom(rng, inserted)
			tbl.Lookup(key)
		default:
			key := pickOrRandom(rng, inserted)
			tbl.Delete(key)
		}
	}

	logger.Info("workload complete", "load_factor", tbl.GetLoadFactor(), "elements", tbl.Len())
}

func pickOrRandom(rng *rand.ChaCha8, pool [][]byte) []byte {
	if len(pool) == 0 {
		return randomBytes(rng, 15)
	}
	return pool[rng.Uint64()%uint64(len(pool))]
}

func randomBytes(rng *rand.ChaCha8, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('a' + rng.Uint64()%26)
	}
	return out
}

func seedBytes(seed uint64) [32]byte {
	var b [32]byte
	binary.BigEndian.PutUint64(b[:8], seed)
	return b
}

func printProbeAverages(kinds []probehash.Kind, results map[probehash.Kind]*slot.Stats) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Hash Type", "Avg Probes", "Insert Probes", "Lookup Probes", "Delete Probes", "Load Factor"})
	for _, k := range kinds {
		s := results[k]
		table.Append([]string{
			k.String(),
			fmt.Sprintf("%.2f", s.AvgProbes),
			fmt.Sprintf("%.2f", s.AvgInsertProbes()),
			fmt.Sprintf("%.2f", s.AvgLookupProbes()),
			fmt.Sprintf("%.2f", s.AvgDeleteProbes()),
			fmt.Sprintf("%.2f", s.LoadFactor()),
		})
	}
	table.Render()
}

func printComparisonTable(kinds []probehash.Kind, results map[probehash.Kind]*slot.Stats) {
	baseline, ok := results[probehash.KindLinear]
	if !ok || baseline.AvgProbes == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Hash Type", "Probes/Linear", "Insert/Linear", "Lookup/Linear"})
	for _, k := range kinds {
		s := results[k]
		table.Append([]string{
			k.String(),
			fmt.Sprintf("%.2f", ratio(s.AvgProbes, baseline.AvgProbes)),
			fmt.Sprintf("%.2f", ratio(s.AvgInsertProbes(), baseline.AvgInsertProbes())),
			fmt.Sprintf("%.2f", ratio(s.AvgLookupProbes(), baseline.AvgLookupProbes())),
		})
	}
	table.Render()
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
