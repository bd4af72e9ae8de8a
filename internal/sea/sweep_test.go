package sea

import (
	"errors"
	"slices"
	"testing"
)

func TestGridCombinations(t *testing.T) {
	got := Grid(map[string][]string{
		"restitution": {"0.2", "0.8"},
		"gravity":     {"0.01", "0.02", "0.03"},
	})
	if len(got) != 6 {
		t.Fatalf("got %d combinations", len(got))
	}
	if got[0]["gravity"] != "0.01" || got[0]["restitution"] != "0.2" || got[1]["restitution"] != "0.8" {
		t.Fatalf("unexpected order: %v", got[:2])
	}
	if got := Grid(nil); len(got) != 1 || len(got[0]) != 0 {
		t.Fatalf("empty grid = %v", got)
	}
}

func TestDropSweepKeepsCandidateOrder(t *testing.T) {
	base := DefaultConfig()
	base.Width, base.Depth = 8, 8
	candidates := []map[string]string{
		{"restitution": "0.2"},
		{"wind": "1"},
		{"restitution": "0.9"},
	}
	records := DropSweep(base, candidates, 400, 3)
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if !errors.Is(records[1].Err, ErrUnknownParam) {
		t.Fatalf("bad candidate error = %v", records[1].Err)
	}
	for _, i := range []int{0, 2} {
		if records[i].Err != nil || records[i].Stats.Steps != 400 {
			t.Fatalf("record %d = %+v", i, records[i])
		}
		if records[i].Overrides["restitution"] != candidates[i]["restitution"] {
			t.Fatalf("record %d out of order", i)
		}
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b SweepRecord) int {
		switch {
		case Better(a, b):
			return -1
		case Better(b, a):
			return 1
		}
		return 0
	})
	if sorted[len(sorted)-1].Err == nil {
		t.Fatal("failed candidates should rank last")
	}
}

func TestBetter(t *testing.T) {
	settled := SweepRecord{Stats: DropStats{SettleStep: 100, Bounces: 4}}
	faster := SweepRecord{Stats: DropStats{SettleStep: 50, Bounces: 9}}
	restless := SweepRecord{Stats: DropStats{SettleStep: -1}}
	tunnelled := SweepRecord{Stats: DropStats{SettleStep: 10, Tunnelled: true}}
	failed := SweepRecord{Err: errors.New("x")}

	cases := []struct {
		a, b SweepRecord
	}{
		{faster, settled},
		{settled, restless},
		{restless, tunnelled},
		{tunnelled, failed},
	}
	for i, tc := range cases {
		if !Better(tc.a, tc.b) || Better(tc.b, tc.a) {
			t.Fatalf("case %d ranked wrong", i)
		}
	}
}
