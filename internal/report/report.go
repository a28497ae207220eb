// internal/report/report.go
package report

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"bprna-core/structure"
)

// Config controls energy evaluation.
type Config struct {
	Threads int // worker goroutines; <=0 uses all CPUs
	Options structure.EnergyOptions
}

// Result is the outcome of evaluating one record. Index is the record's
// position in Structure.Evaluables, which is file order within each kind.
type Result struct {
	Index     int
	Label     string
	Kind      structure.Kind
	Energy    float64
	Canonical bool
	Err       error
}

// OK reports whether the record produced an energy.
func (r Result) OK() bool { return r.Err == nil }

// ForEachEnergy evaluates every evaluable record of s and calls visit once
// per record, in completion order. visit runs on a single goroutine. It
// returns the first error returned by visit, or the context error.
func ForEachEnergy(ctx context.Context, cfg Config, s *structure.Structure, visit func(Result) error) error {
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	items := s.Evaluables()
	set := cfg.Options.Params

	type job struct {
		idx int
		e   structure.Evaluable
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					r := Result{Index: j.idx, Label: j.e.Label(), Kind: j.e.Kind()}
					r.Energy, r.Err = j.e.Energy(cfg.Options)
					r.Canonical = j.e.Canonical(set)
					select {
					case results <- r:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for r := range results {
			if cerr != nil {
				continue
			}
			cerr = visit(r)
		}
	}()

feed:
	for i, e := range items {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, e: e}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}

// Evaluate collects ForEachEnergy's results in record order.
func Evaluate(ctx context.Context, cfg Config, s *structure.Structure) ([]Result, error) {
	var out []Result
	err := ForEachEnergy(ctx, cfg, s, func(r Result) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	SortResults(out)
	return out, nil
}

// SortResults restores record order.
func SortResults(rs []Result) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Index < rs[j].Index })
}
