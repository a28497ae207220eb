// internal/output/convert.go
package output

import (
	"bprna-core/structure"
	"bprna/internal/report"
	"bprna/pkg/api"
)

func toAPISpans(spans []structure.Span) []api.SpanV1 {
	if len(spans) == 0 {
		return nil
	}
	out := make([]api.SpanV1, len(spans))
	for i, sp := range spans {
		out[i] = api.SpanV1{Start: sp.Start, Stop: sp.Stop}
	}
	return out
}

func toAPIClosing(cs ...structure.Closing) []api.ClosingV1 {
	out := make([]api.ClosingV1, len(cs))
	for i, c := range cs {
		out[i] = api.ClosingV1{Pair: c.Pair.String(), Five: c.Five, Three: c.Three}
	}
	return out
}

// ToAPIComponent converts a record of s to the stable wire schema (v1).
// Neighbors come from s's component array; multiloops and NCBPs have none.
func ToAPIComponent(s *structure.Structure, c structure.Component) api.ComponentV1 {
	v := api.ComponentV1{
		Label: c.Label(),
		Kind:  c.Kind().String(),
		Spans: toAPISpans(c.Spans()),
	}
	if nb, err := s.Neighbors(c.Label()); err == nil {
		for _, n := range nb {
			v.Neighbors = append(v.Neighbors, api.NeighborsV1{FivePrime: n.FivePrime, ThreePrime: n.ThreePrime})
		}
	}

	switch x := c.(type) {
	case *structure.Stem:
		five, three := x.Sequences()
		v.Sequences = []string{five, three}
	case *structure.Hairpin:
		v.Sequences = []string{x.Sequence()}
		v.Closing = toAPIClosing(x.Closing())
		v.PK = x.PK()
	case *structure.Bulge:
		v.Sequences = []string{x.Sequence()}
		five, three := x.ClosingPairs()
		v.Closing = toAPIClosing(five, three)
		v.PK = x.PK()
	case *structure.InternalLoop:
		five, three := x.Loops()
		v.Sequences = []string{five, three}
		for n := 1; n <= 2; n++ {
			h, _ := x.Half(n)
			v.Closing = append(v.Closing, toAPIClosing(h.Closing)...)
		}
	case *structure.MultiLoop:
		for _, u := range x.Subunits() {
			v.Subunits = append(v.Subunits, u.Label)
			v.Sequences = append(v.Sequences, u.Sequence)
		}
	case *structure.ExternalLoop:
		v.Sequences = []string{x.Sequence()}
		five, three := x.ClosingPairs()
		v.Closing = toAPIClosing(five, three)
	case *structure.End:
		v.Sequences = []string{x.Sequence()}
	case *structure.NCBP:
		v.Pair = x.Pair().String()
		v.Parent = x.Parent()
		five, three := x.Positions()
		v.Spans = []api.SpanV1{{Start: five, Stop: five}, {Start: three, Stop: three}}
	}
	return v
}

// ToAPIComponents converts a list of records of s.
func ToAPIComponents(s *structure.Structure, list []structure.Component) []api.ComponentV1 {
	out := make([]api.ComponentV1, 0, len(list))
	for _, c := range list {
		out = append(out, ToAPIComponent(s, c))
	}
	return out
}

// ToAPIEnergy converts an evaluation result.
func ToAPIEnergy(r report.Result) api.EnergyV1 {
	v := api.EnergyV1{
		Label:     r.Label,
		Kind:      r.Kind.String(),
		Canonical: r.Canonical,
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	} else {
		e := r.Energy
		v.Energy = &e
	}
	return v
}

func ToAPIEnergies(rs []report.Result) []api.EnergyV1 {
	out := make([]api.EnergyV1, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToAPIEnergy(r))
	}
	return out
}

func ToAPISummary(source string, sum report.Summary) api.SummaryV1 {
	v := api.SummaryV1{
		Source:      source,
		Name:        sum.Name,
		Length:      sum.Length,
		PageNumber:  sum.PageNumber,
		Counts:      make(map[string]int, len(sum.Counts)),
		Evaluated:   sum.Evaluated,
		Failed:      sum.Failed,
		TotalEnergy: sum.Total,
		Params:      sum.Params,
	}
	for _, kc := range sum.Counts {
		v.Counts[kc.Kind.String()] = kc.Count
	}
	return v
}

// ToAPIStructure exports every descriptor and record of s.
func ToAPIStructure(s *structure.Structure) api.StructureV1 {
	return api.StructureV1{
		Name:           s.Name(),
		Length:         s.Length(),
		PageNumber:     s.PageNumber(),
		Sequence:       s.Sequence(),
		DotBracket:     s.DotBracket(),
		StructureArray: s.StructureArray(),
		Varna:          s.Varna(),
		ComponentArray: s.ComponentArray(),
		Components:     ToAPIComponents(s, s.Components()),
	}
}
