// core/structure/stem.go
package structure

import (
	"fmt"

	"bprna-core/params"
)

// Stem is a run of stacked base pairs. The 5' arm pairs with the reversed
// 3' arm.
type Stem struct {
	label      string
	five       Span
	three      Span
	seq5, seq3 string

	outer, inner   Neighbors
	bulge5, bulge3 bool
}

// NewStem builds a stem from its two arms, which must be the same length.
func NewStem(label string, five Span, seq5 string, three Span, seq3 string) (*Stem, error) {
	if len(seq5) != len(seq3) {
		return nil, fmt.Errorf("stem %s: arm lengths differ (%d vs %d)", label, len(seq5), len(seq3))
	}
	return &Stem{label: label, five: five, three: three, seq5: seq5, seq3: seq3}, nil
}

func (s *Stem) Label() string  { return s.label }
func (s *Stem) Kind() Kind     { return KindStem }
func (s *Stem) String() string { return "Stem: " + s.label }
func (s *Stem) Spans() []Span  { return []Span{s.five, s.three} }
func (s *Stem) Len() int       { return len(s.seq5) }

// Arms returns the 5' and 3' arm spans.
func (s *Stem) Arms() (five, three Span) { return s.five, s.three }

// Sequences returns both arms, each read 5'→3'.
func (s *Stem) Sequences() (five, three string) { return s.seq5, s.seq3 }

// SetSequences rewrites both arms; the lengths must stay equal.
func (s *Stem) SetSequences(five, three string) error {
	if len(five) != len(three) {
		return fmt.Errorf("stem %s: arm lengths differ (%d vs %d)", s.label, len(five), len(three))
	}
	s.seq5, s.seq3 = five, three
	return nil
}

// Pairs returns the stacked base pairs from the outermost pair inwards.
func (s *Stem) Pairs() []params.BasePair {
	r := reverse(s.seq3)
	out := make([]params.BasePair, len(s.seq5))
	for i := range out {
		out[i] = params.BasePair{Five: s.seq5[i], Three: r[i]}
	}
	return out
}

// Neighbors returns the components flanking the outer end (before the 5'
// arm, after the 3' arm) and the inner end (before the 3' arm, after the
// 5' arm). Set by Structure.ResolveAdjacency.
func (s *Stem) Neighbors() (outer, inner Neighbors) { return s.outer, s.inner }

// AdjacentBulges reports single-nucleotide bulges next to the outer (five)
// and inner (three) end of the stem. Such ends skip the terminal AU penalty.
func (s *Stem) AdjacentBulges() (five, three bool) { return s.bulge5, s.bulge3 }

// Canonical reports whether every pair is Watson-Crick or wobble and the
// stem stacks at least once.
func (s *Stem) Canonical(_ *params.Set) bool {
	if s.Len() <= 1 {
		return false
	}
	for _, p := range s.Pairs() {
		if !p.Canonical() {
			return false
		}
	}
	return true
}

// Energy sums stacking, terminal AU/GU penalties, the symmetry penalty and,
// if requested, intermolecular initiation.
func (s *Stem) Energy(opt EnergyOptions) (float64, error) {
	n := s.Len()
	if n <= 1 {
		return 0, undefined(s.label, "stem of %d pair(s) has no stack", n)
	}
	set := opt.set()
	pairs := s.Pairs()

	var g float64
	if s.seq5 == s.seq3 {
		g += params.StemSymmetryPenalty
	}
	if pairs[0].TerminalAU() && !s.bulge5 {
		g += params.StemTerminalAUPenalty
	}
	if pairs[n-1].TerminalAU() && !s.bulge3 {
		g += params.StemTerminalAUPenalty
	}
	for i := 0; i < n-1; i++ {
		v, ok := set.Stack(pairs[i], pairs[i+1])
		if !ok {
			if opt.Lenient {
				continue
			}
			return 0, undefined(s.label, "no stacking parameter for %v/%v", pairs[i], pairs[i+1])
		}
		g += v
	}
	if opt.Intermolecular {
		g += params.IntermolecularInit
	}
	return g, nil
}
