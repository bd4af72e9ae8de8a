package sea

import (
	"maps"
	"slices"
	"sync"
)

// SweepRecord is one evaluated drop candidate.
type SweepRecord struct {
	Overrides map[string]string
	Stats     DropStats
	Err       error
}

// DropSweep runs DropResult for every candidate override set on top of base,
// spread over workers goroutines. Records come back in candidate order.
func DropSweep(base Config, candidates []map[string]string, steps, workers int) []SweepRecord {
	out := make([]SweepRecord, len(candidates))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < max(workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cfg := base
				rec := SweepRecord{Overrides: candidates[i]}
				if rec.Err = cfg.Apply(candidates[i]); rec.Err == nil {
					rec.Stats, rec.Err = DropResult(cfg, steps)
				}
				out[i] = rec
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// Grid expands per-key value lists into every combination. The last key in
// sorted order varies fastest.
func Grid(axes map[string][]string) []map[string]string {
	keys := slices.Sorted(maps.Keys(axes))
	combos := []map[string]string{{}}
	for _, k := range keys {
		var next []map[string]string
		for _, c := range combos {
			for _, v := range axes[k] {
				m := maps.Clone(c)
				m[k] = v
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos
}

// Better orders sweep records: runs without errors or tunnelling first,
// then settled runs by earliest settle step, then fewer bounces.
func Better(a, b SweepRecord) bool {
	if (a.Err == nil) != (b.Err == nil) {
		return a.Err == nil
	}
	if a.Stats.Tunnelled != b.Stats.Tunnelled {
		return !a.Stats.Tunnelled
	}
	as, bs := a.Stats.SettleStep >= 0, b.Stats.SettleStep >= 0
	if as != bs {
		return as
	}
	if as && a.Stats.SettleStep != b.Stats.SettleStep {
		return a.Stats.SettleStep < b.Stats.SettleStep
	}
	return a.Stats.Bounces < b.Stats.Bounces
}
