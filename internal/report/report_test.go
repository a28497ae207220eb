package report

import (
	"context"
	"errors"
	"math"
	"testing"

	"bprna-core/stfile"
	"bprna-core/structure"
)

const helix = "../../core/stfile/testdata/helix.st"

func load(t *testing.T) *structure.Structure {
	t.Helper()
	s, err := stfile.Load(helix)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestEvaluateKeepsRecordOrder(t *testing.T) {
	s := load(t)
	for _, threads := range []int{1, 3, 0} {
		rs, err := Evaluate(context.Background(), Config{Threads: threads}, s)
		if err != nil {
			t.Fatalf("threads=%d: %v", threads, err)
		}
		want := s.Features()
		if len(rs) != len(want) {
			t.Fatalf("threads=%d: got %d results, want %d", threads, len(rs), len(want))
		}
		for i, r := range rs {
			if r.Label != want[i] || r.Index != i {
				t.Fatalf("threads=%d: result %d = %s (index %d), want %s", threads, i, r.Label, r.Index, want[i])
			}
		}
	}
}

func TestEvaluateReportsFailuresAsResults(t *testing.T) {
	s := load(t)
	rs, err := Evaluate(context.Background(), Config{Threads: 2}, s)
	if err != nil {
		t.Fatal(err)
	}
	byLabel := map[string]Result{}
	for _, r := range rs {
		byLabel[r.Label] = r
	}
	if r := byLabel["S1"]; !r.OK() || math.Abs(r.Energy-(-3.42-2.36)) > 1e-9 || !r.Canonical {
		t.Fatalf("S1 = %+v", r)
	}
	for _, l := range []string{"H1", "I1"} {
		if r := byLabel[l]; !errors.Is(r.Err, structure.ErrUndefinedEnergy) {
			t.Fatalf("%s: want undefined energy, got %+v", l, r)
		}
	}

	rs, err = Evaluate(context.Background(), Config{Threads: 2, Options: structure.EnergyOptions{Lenient: true}}, s)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rs {
		if !r.OK() {
			t.Fatalf("lenient %s: %v", r.Label, r.Err)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := load(t)
	sum, err := Summarize(context.Background(), Config{Threads: 4}, s)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Name != "bpRNA_toy_helix" || sum.Length != 40 || sum.PageNumber != 1 {
		t.Fatalf("descriptors: %+v", sum)
	}
	if sum.Evaluated != 4 || sum.Failed != 2 {
		t.Fatalf("evaluated %d failed %d, want 4 and 2", sum.Evaluated, sum.Failed)
	}
	want := (-3.42 - 2.36) + (-2.08 - 3.42) + (-2.35 - 2.24) + (3.8 - 2.35)
	if math.Abs(sum.Total-want) > 1e-9 {
		t.Fatalf("total = %.4f, want %.4f", sum.Total, want)
	}
	if sum.Params != "turner2004-subset" {
		t.Fatalf("params = %q", sum.Params)
	}
	if sum.Counts[0].Kind != structure.KindStem || sum.Counts[0].Count != 3 {
		t.Fatalf("counts[0] = %+v", sum.Counts[0])
	}
}

func TestForEachEnergyStopsOnVisitError(t *testing.T) {
	s := load(t)
	boom := errors.New("boom")
	n := 0
	err := ForEachEnergy(context.Background(), Config{Threads: 2}, s, func(Result) error {
		n++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if n != 1 {
		t.Fatalf("visit called %d times after error, want 1", n)
	}
}

func TestForEachEnergyCancelled(t *testing.T) {
	s := load(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachEnergy(ctx, Config{Threads: 1}, s, func(Result) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
