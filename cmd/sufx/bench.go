package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/viniciusth/suffixlcp"
)

type variant struct {
	name   string
	config func(*suffixlcp.Builder) *suffixlcp.Builder
}

var variants = map[string]variant{
	"sais":          {name: "sais", config: func(b *suffixlcp.Builder) *suffixlcp.Builder { return b }},
	"doubling":      {name: "doubling", config: func(b *suffixlcp.Builder) *suffixlcp.Builder { return b.UseDoubling() }},
	"naive":         {name: "naive", config: func(b *suffixlcp.Builder) *suffixlcp.Builder { return b.UseNaive() }},
	"sais_hybrid":   {name: "sais_hybrid", config: func(b *suffixlcp.Builder) *suffixlcp.Builder { return b.UseHybridRMQ() }},
	"sais_cached":   {name: "sais_cached", config: func(b *suffixlcp.Builder) *suffixlcp.Builder { return b.WithSearchCache(1024) }},
	"doubling_both": {name: "doubling_both", config: func(b *suffixlcp.Builder) *suffixlcp.Builder { return b.UseDoubling().UseHybridRMQ() }},
}

type benchParams struct {
	variant    string
	n          int
	alphabet   int
	p          int
	q          int
	runs       int
	cpuprofile string
}

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text []byte, v variant) (time.Duration, uint64, uint64, *suffixlcp.Index, error) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	idx, err := v.config(suffixlcp.NewBuilder(text)).Build()
	dur := time.Since(start)
	peak := mm.Stop()
	if err != nil {
		return 0, 0, 0, nil, err
	}
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, idx, nil
}

func measureQuery(idx *suffixlcp.Index, patterns [][]byte) (time.Duration, uint64, uint64) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	for _, p := range patterns {
		_ = idx.Search(p)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc
}

func runBenchmark(out io.Writer, v variant, params benchParams) error {
	for run := 0; run < params.runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text := make([]byte, params.n)
		for i := range text {
			text[i] = byte(r.Intn(params.alphabet) + 'a')
		}

		bt, bp, ba, idx, err := measureBuild(text, v)
		if err != nil {
			return errors.Wrapf(err, "Failed to build variant %s", v.name)
		}

		patterns := make([][]byte, params.q)
		for i := range patterns {
			start := r.Intn(params.n - params.p + 1)
			patterns[i] = text[start : start+params.p]
		}
		qt, qp, qa := measureQuery(idx, patterns)

		fmt.Fprintf(out, "%s,%d,%d,%d,%d,%.0f,%d,%d,%.0f,%d,%d\n",
			v.name, params.n, params.alphabet, params.p, params.q,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), qp, qa)
	}
	return nil
}

func newBenchCommand(ro *rootOptions) *cobra.Command {
	params := benchParams{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure build and search time and memory on random texts",
		Long: `Builds indexes over random texts and runs substring searches on them.
Prints one CSV line per run:
variant,n,alphabet,p,q,build_ns,build_peak,build_alloc,query_ns,query_peak,query_alloc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := variants[params.variant]
			if !ok {
				names := make([]string, 0, len(variants))
				for name := range variants {
					names = append(names, name)
				}
				slices.Sort(names)
				return errors.Errorf("invalid variant %q, available: %v", params.variant, names)
			}
			if params.n <= 0 || params.p <= 0 || params.q <= 0 || params.p > params.n ||
				params.alphabet < 1 || params.alphabet > 26 {
				return errors.New("need n > 0, 0 < p <= n, q > 0 and 1 <= alphabet <= 26")
			}

			if params.cpuprofile != "" {
				f, err := os.Create(params.cpuprofile)
				if err != nil {
					return errors.Wrap(err, "could not create CPU profile")
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return errors.Wrap(err, "could not start CPU profile")
				}
				defer pprof.StopCPUProfile()
			}

			ro.logger.DebugWith("Running benchmark",
				"variant", v.name,
				"n", params.n,
				"runs", params.runs)
			return runBenchmark(cmd.OutOrStdout(), v, params)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.variant, "variant", "sais", "Variant to benchmark")
	flags.IntVar(&params.n, "n", 1<<20, "Text length")
	flags.IntVar(&params.alphabet, "alphabet", 4, "Alphabet size")
	flags.IntVar(&params.p, "p", 8, "Pattern length")
	flags.IntVar(&params.q, "q", 10000, "Number of queries")
	flags.IntVar(&params.runs, "runs", 3, "Number of runs for averaging")
	flags.StringVar(&params.cpuprofile, "cpuprofile", "", "Write CPU profile to file")
	return cmd
}
