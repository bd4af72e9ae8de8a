package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"sea-block/internal/config"
	"sea-block/internal/sea"
)

func main() {
	steps := flag.Int("steps", 3000, "ticks to simulate per candidate")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	tuning := flag.String("config", "", "YAML tuning file used as the baseline")
	top := flag.Int("top", 5, "results to print")
	save := flag.String("save", "", "write the best candidate's configuration to this YAML file")
	var overrides, axes config.KVList
	flag.Var(&overrides, "set", "baseline override in key=value form (repeatable)")
	flag.Var(&axes, "sweep", "swept key with comma-separated values, e.g. restitution=0.2,0.5,0.8 (repeatable)")
	flag.Parse()

	logger := log.New(os.Stdout, "[drop-sweep] ", log.LstdFlags|log.Lmicroseconds)

	values, err := config.Resolve(*tuning, overrides)
	if err != nil {
		logger.Fatal(err)
	}
	base, err := sea.FromMap(values)
	if err != nil {
		logger.Fatal(err)
	}

	grid, err := parseAxes(axes)
	if err != nil {
		logger.Fatal(err)
	}
	if len(grid) == 0 {
		grid = defaultAxes
	}
	candidates := sea.Grid(grid)

	fmt.Printf("Sweeping %d candidates (%d workers, %d steps)\n", len(candidates), *workers, *steps)
	start := time.Now()
	records := sea.DropSweep(base, candidates, *steps, *workers)
	slices.SortStableFunc(records, func(a, b sea.SweepRecord) int {
		switch {
		case sea.Better(a, b):
			return -1
		case sea.Better(b, a):
			return 1
		}
		return 0
	})

	fmt.Printf("\nTop %d results (elapsed %s):\n", min(*top, len(records)), time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(records) && i < *top; i++ {
		rec := records[i]
		if rec.Err != nil {
			fmt.Printf("%2d) %s error: %v\n", i+1, describe(rec.Overrides), rec.Err)
			continue
		}
		s := rec.Stats
		fmt.Printf("%2d) %s settle=%d bounces=%d peaks=%d minY=%.3f final=%.3f vy=%.4f tunnelled=%v\n",
			i+1, describe(rec.Overrides), s.SettleStep, s.Bounces, len(s.Peaks), s.MinY, s.FinalY, s.FinalVY, s.Tunnelled)
	}

	if *save != "" && len(records) > 0 && records[0].Err == nil {
		best := base
		if err := best.Apply(records[0].Overrides); err != nil {
			logger.Fatal(err)
		}
		if err := config.Save(*save, "sea", best.Map()); err != nil {
			logger.Fatal(err)
		}
		logger.Printf("wrote %s", *save)
	}
}

var defaultAxes = map[string][]string{
	"restitution": {"0.2", "0.4", "0.6", "0.8"},
	"gravity":     {"0.005", "0.01", "0.02"},
	"time_step":   {"0.5", "1", "1.5"},
}

// parseAxes turns key=v1,v2 flags into value lists.
func parseAxes(axes config.KVList) (map[string][]string, error) {
	flat, err := axes.Map()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(flat))
	for k, v := range flat {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out[k] = append(out[k], item)
			}
		}
		if len(out[k]) == 0 {
			return nil, fmt.Errorf("sweep %s: no values", k)
		}
	}
	return out, nil
}

func describe(overrides map[string]string) string {
	if len(overrides) == 0 {
		return "baseline"
	}
	parts := make([]string, 0, len(overrides))
	for _, k := range slices.Sorted(maps.Keys(overrides)) {
		parts = append(parts, k+"="+overrides[k])
	}
	return strings.Join(parts, " ")
}
