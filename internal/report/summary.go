package report

import (
	"context"

	"bprna-core/params"
	"bprna-core/structure"
)

// KindCount is the number of records of one kind.
type KindCount struct {
	Kind  structure.Kind
	Count int
}

// Summary describes a structure and the sum of its evaluable energies.
// Records that fail to evaluate are counted in Failed and left out of Total.
type Summary struct {
	Name       string
	Length     int
	PageNumber int
	Counts     []KindCount
	Evaluated  int
	Failed     int
	Total      float64
	Params     string
}

// Counts lists per-kind record counts in Kind order.
func Counts(s *structure.Structure) []KindCount {
	return []KindCount{
		{structure.KindStem, s.NumStems()},
		{structure.KindHairpin, s.NumHairpins()},
		{structure.KindBulge, s.NumBulges()},
		{structure.KindInternalLoop, s.NumInternalLoops()},
		{structure.KindMultiLoop, s.NumMultiLoops()},
		{structure.KindExternalLoop, s.NumExternalLoops()},
		{structure.KindEnd, s.NumEnds()},
		{structure.KindNCBP, s.NumNCBPs()},
	}
}

// Summarize evaluates s and totals the result.
func Summarize(ctx context.Context, cfg Config, s *structure.Structure) (Summary, error) {
	sum := Summary{
		Name:       s.Name(),
		Length:     s.Length(),
		PageNumber: s.PageNumber(),
		Counts:     Counts(s),
	}
	set := cfg.Options.Params
	if set == nil {
		set = params.Default()
	}
	sum.Params = set.Name()
	err := ForEachEnergy(ctx, cfg, s, func(r Result) error {
		if !r.OK() {
			sum.Failed++
			return nil
		}
		sum.Evaluated++
		sum.Total += r.Energy
		return nil
	})
	return sum, err
}
