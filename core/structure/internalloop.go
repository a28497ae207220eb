// core/structure/internalloop.go
package structure

import (
	"fmt"

	"bprna-core/params"
)

// LoopHalf is one strand of an internal loop, as written on its own line
// ("I1.1" or "I1.2").
type LoopHalf struct {
	Label    string
	Span     Span
	Sequence string
	Closing  Closing
}

// InternalLoop is a pair of unpaired runs on opposite strands between two
// helices. The first half lies 5' of the second.
type InternalLoop struct {
	label   string
	halves  [2]LoopHalf
	closing [2]params.BasePair

	outer, inner Neighbors
}

// NewInternalLoop joins the two halves of a loop. The second closing pair
// is stored reversed so both pairs read from the loop's 5' strand.
func NewInternalLoop(label string, first, second LoopHalf) *InternalLoop {
	return &InternalLoop{
		label:   label,
		halves:  [2]LoopHalf{first, second},
		closing: [2]params.BasePair{first.Closing.Pair, second.Closing.Pair.Reverse()},
	}
}

func (l *InternalLoop) Label() string  { return l.label }
func (l *InternalLoop) Kind() Kind     { return KindInternalLoop }
func (l *InternalLoop) String() string { return "InternalLoop: " + l.label }
func (l *InternalLoop) Spans() []Span  { return []Span{l.halves[0].Span, l.halves[1].Span} }

// Loops returns the two loop sequences, 5' half first.
func (l *InternalLoop) Loops() (five, three string) {
	return l.halves[0].Sequence, l.halves[1].Sequence
}

// ClosingPairs returns the outer (5') and inner (3') closing pairs.
func (l *InternalLoop) ClosingPairs() (five, three params.BasePair) {
	return l.closing[0], l.closing[1]
}

// Neighbors mirrors Stem.Neighbors for the two loop halves.
func (l *InternalLoop) Neighbors() (outer, inner Neighbors) { return l.outer, l.inner }

// Len is the total number of unpaired nucleotides.
func (l *InternalLoop) Len() int { return len(l.halves[0].Sequence) + len(l.halves[1].Sequence) }

// Half returns subunit 1 or 2.
func (l *InternalLoop) Half(n int) (LoopHalf, error) {
	if n != 1 && n != 2 {
		return LoopHalf{}, fmt.Errorf("internal loop %s: no subunit %d", l.label, n)
	}
	return l.halves[n-1], nil
}

// SetLoops rewrites both loop sequences.
func (l *InternalLoop) SetLoops(five, three string) {
	l.halves[0].Sequence, l.halves[1].Sequence = five, three
}

// tabulated looks up the 1x1, 1x2, 2x1 and 2x2 tables. 2x1 loops reuse the
// 1x2 table read from the opposite strand. ok is false when the loop size
// has no table; found reports a hit.
func (l *InternalLoop) tabulated(set *params.Set) (v float64, ok, found bool) {
	a, b := l.Loops()
	cp5, cp3 := l.closing[0], l.closing[1]
	switch {
	case len(a) == 1 && len(b) == 1:
		v, found = set.Internal1x1(cp5, cp3, a[0], b[0])
	case len(a) == 1 && len(b) == 2:
		v, found = set.Internal1x2(cp5, cp3, a[0], b[1], b[0])
	case len(a) == 2 && len(b) == 1:
		v, found = set.Internal1x2(cp3.Reverse(), cp5.Reverse(), b[0], a[1], a[0])
	case len(a) == 2 && len(b) == 2:
		v, found = set.Internal2x2(cp5, cp3,
			params.BasePair{Five: a[0], Three: b[1]},
			params.BasePair{Five: a[1], Three: b[0]})
	default:
		return 0, false, false
	}
	return v, true, found
}

// Canonical reports whether the parameters needed for a strict evaluation
// are present.
func (l *InternalLoop) Canonical(set *params.Set) bool {
	if a, b := l.Loops(); len(a) == 0 || len(b) == 0 {
		return false
	}
	set = paramsOrDefault(set)
	if _, sized, found := l.tabulated(set); sized {
		return found
	}
	_, err := l.mismatch(set, false)
	return err == nil
}

// Energy returns the tabulated value for small loops, otherwise initiation
// plus asymmetry, AU/GU closure and mismatch terms. In lenient mode a table
// miss on a small loop falls back to the general formula.
func (l *InternalLoop) Energy(opt EnergyOptions) (float64, error) {
	a, b := l.Loops()
	if len(a) == 0 || len(b) == 0 {
		return 0, undefined(l.label, "internal loop has an empty side (%dx%d)", len(a), len(b))
	}
	set := opt.set()
	if v, sized, found := l.tabulated(set); sized {
		if found {
			return v, nil
		}
		if !opt.Lenient {
			return 0, undefined(l.label, "no %dx%d loop parameter", len(a), len(b))
		}
	}
	return l.general(set, opt.Lenient)
}

func (l *InternalLoop) general(set *params.Set, lenient bool) (float64, error) {
	a, b := l.Loops()
	n := len(a) + len(b)

	init, ok := loopInit(set.InternalInit, n, params.InternalReferenceLen, params.InternalExtrapolation)
	if !ok {
		return 0, undefined(l.label, "no internal loop initiation for length %d", n)
	}
	asym := len(a) - len(b)
	if asym < 0 {
		asym = -asym
	}
	g := init + float64(asym)*params.InternalAsymmetryPenalty
	for _, cp := range l.closing {
		if cp.TerminalAU() {
			g += params.InternalTerminalAUPenalty
		}
	}
	mm, err := l.mismatch(set, lenient)
	if err != nil {
		return 0, err
	}
	return g + mm, nil
}

// mismatch returns the first-mismatch contribution. 1×(n-1) loops have
// none; 2x3 and 3x2 loops use the closing-pair specific table; everything
// else uses the generic mismatch bonuses.
func (l *InternalLoop) mismatch(set *params.Set, lenient bool) (float64, error) {
	a, b := l.Loops()
	n := len(a) + len(b)
	cp5, cp3 := l.closing[0], l.closing[1]

	type term struct {
		closing  params.BasePair
		mismatch params.BasePair
	}
	var terms [2]term
	switch {
	case (len(a) == 1 && len(b) == n-1) || (len(a) == n-1 && len(b) == 1):
		return 0, nil
	case len(a) == 2 && len(b) == 3:
		terms[0] = term{cp5, params.BasePair{Five: a[0], Three: b[len(b)-1]}}
		terms[1] = term{cp3.Reverse(), params.BasePair{Five: b[0], Three: a[len(a)-1]}}
	case len(a) == 3 && len(b) == 2:
		terms[0] = term{cp3.Reverse(), params.BasePair{Five: b[0], Three: a[len(a)-1]}}
		terms[1] = term{cp5.Reverse(), params.BasePair{Five: a[0], Three: b[len(b)-1]}}
	default:
		var g float64
		for _, mm := range []params.BasePair{
			{Five: a[0], Three: b[len(b)-1]},
			{Five: a[len(a)-1], Three: b[0]},
		} {
			v, ok := set.MismatchOther(mm)
			if !ok && !lenient {
				return 0, undefined(l.label, "no loop mismatch parameter for %v", mm)
			}
			g += v
		}
		return g, nil
	}

	var g float64
	for _, t := range terms {
		v, ok := set.Mismatch2x3(t.closing, t.mismatch)
		if !ok && !lenient {
			return 0, undefined(l.label, "no 2x3 mismatch parameter for %v on %v", t.mismatch, t.closing)
		}
		g += v
	}
	return g, nil
}
