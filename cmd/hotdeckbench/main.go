package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"

	ds "github.com/wdm0006/hotdeck/pkg/dataset"
	"github.com/wdm0006/hotdeck/pkg/experiment"
	"github.com/wdm0006/hotdeck/pkg/logging"
	"github.com/wdm0006/hotdeck/pkg/report"
)

// synth builds a complete rows x cols table of values in [0, 100).
func synth(rnd *rand.Rand, rows, cols int) *ds.Table {
	data := make([]ds.Row, rows)
	for i := range data {
		r := make(ds.Row, cols)
		for j := range r {
			r[j] = ds.Value(rnd.Float64() * 100)
		}
		data[i] = r
	}
	return ds.MustNew(nil, data)
}

// mask drops each cell of complete with probability p.
func mask(rnd *rand.Rand, complete *ds.Table, p float64) *ds.Table {
	b := complete.ToBuilder()
	for i := 0; i < complete.Rows(); i++ {
		for j := 0; j < complete.Cols(); j++ {
			if rnd.Float64() < p {
				b.Set(i, j, math.NaN())
			}
		}
	}
	return b.Build()
}

type runSummary struct {
	Dataset    string  `json:"dataset"`
	Strategy   string  `json:"strategy"`
	Missing    int     `json:"missing_cells"`
	MAE        float64 `json:"mae"`
	Unfilled   int     `json:"unfilled"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	RowsPerSec float64 `json:"rows_per_sec"`
}

func summarize(results []experiment.Result, datasets []experiment.Dataset, rows int) []runSummary {
	missing := make(map[string]int, len(datasets))
	for _, d := range datasets {
		missing[d.Name] = d.Table.MissingCount()
	}
	runs := make([]runSummary, 0, len(results))
	for _, res := range results {
		r := runSummary{
			Dataset:    res.Dataset,
			Strategy:   res.Strategy,
			Missing:    missing[res.Dataset],
			ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
			RowsPerSec: rowsPerSec(rows, res.Elapsed),
		}
		if res.Eval != nil {
			r.MAE, r.Unfilled = res.Eval.MAE, res.Eval.Unfilled
		}
		runs = append(runs, r)
	}
	return runs
}

// rowsPerSec is zero when the run finished below the clock resolution.
func rowsPerSec(rows int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(rows) / elapsed.Seconds()
}

func main() {
	var (
		rows       = flag.Int("rows", 2_000, "rows in the synthetic table")
		cols       = flag.Int("cols", 8, "columns in the synthetic table")
		missing    = flag.String("missing", "0.01,0.10", "comma separated masking probabilities, one dataset each")
		strategies = flag.String("strategies", "mean,hotdeck,hotdeck+mean", "comma separated strategies")
		jsonOut    = flag.Bool("json", false, "emit JSON summary")
		seed       = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	strats, err := experiment.ParseStrategies(strings.Split(*strategies, ","))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rnd := rand.New(rand.NewSource(*seed))
	complete := synth(rnd, *rows, *cols)
	var datasets []experiment.Dataset
	for _, s := range strings.Split(*missing, ",") {
		var p float64
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &p); err != nil || p < 0 || p > 1 {
			fmt.Fprintf(os.Stderr, "bad missing probability %q\n", s)
			os.Exit(2)
		}
		name := fmt.Sprintf("missing%02.0f", p*100)
		datasets = append(datasets, experiment.Dataset{Name: name, Table: mask(rnd, complete, p)})
	}

	// Warm up
	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	runner := &experiment.Runner{Reference: complete, Logger: logging.Discard()}
	results, err := runner.Run(context.Background(), datasets, strats)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	runs := summarize(results, datasets, *rows)

	if *jsonOut {
		summary := map[string]any{
			"rows":                  *rows,
			"cols":                  *cols,
			"elapsed_ms":            elapsed.Milliseconds(),
			"mem_alloc_bytes":       msAfter.Alloc,
			"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
			"gc_num":                msAfter.NumGC - msBefore.NumGC,
			"runs":                  runs,
		}
		b, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d  Cols: %d\n", *rows, *cols)
	report.New(os.Stdout, nil).Table(results)
	for _, r := range runs {
		fmt.Printf("Throughput %s/%s: %.0f rows/s\n", r.Dataset, r.Strategy, r.RowsPerSec)
	}
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
