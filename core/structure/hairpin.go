// core/structure/hairpin.go
package structure

import (
	"strings"

	"bprna-core/params"
)

// Hairpin is a loop closed by a single base pair.
type Hairpin struct {
	label     string
	span      Span
	seq       string
	closing   Closing
	pk        string
	neighbors Neighbors
}

// NewHairpin builds a hairpin. pk names the pseudoknot the loop takes part
// in, or is empty.
func NewHairpin(label string, span Span, seq string, closing Closing, pk string) *Hairpin {
	return &Hairpin{label: label, span: span, seq: seq, closing: closing, pk: pk}
}

func (h *Hairpin) Label() string        { return h.label }
func (h *Hairpin) Kind() Kind           { return KindHairpin }
func (h *Hairpin) String() string       { return "Hairpin: " + h.label }
func (h *Hairpin) Spans() []Span        { return []Span{h.span} }
func (h *Hairpin) Span() Span           { return h.span }
func (h *Hairpin) Sequence() string     { return h.seq }
func (h *Hairpin) Len() int             { return len(h.seq) }
func (h *Hairpin) Closing() Closing     { return h.closing }
func (h *Hairpin) PK() string           { return h.pk }
func (h *Hairpin) Neighbors() Neighbors { return h.neighbors }

func (h *Hairpin) SetSequence(seq string) { h.seq = seq }

func (h *Hairpin) firstMismatch() params.BasePair {
	return params.BasePair{Five: h.seq[0], Three: h.seq[len(h.seq)-1]}
}

// Canonical reports whether the loop is long enough and its terminal
// mismatch is tabulated.
func (h *Hairpin) Canonical(set *params.Set) bool {
	if h.Len() < 3 {
		return false
	}
	_, ok := paramsOrDefault(set).TerminalMismatch(h.closing.Pair, h.firstMismatch())
	return ok
}

// Energy evaluates the hairpin loop. Tabulated special loops win outright;
// triloops take initiation plus the all-C penalty; longer loops add the
// terminal mismatch and first-mismatch bonuses.
func (h *Hairpin) Energy(opt EnergyOptions) (float64, error) {
	n := h.Len()
	if n < 3 {
		return 0, undefined(h.label, "hairpin of %d nt is too short", n)
	}
	set := opt.set()
	if v, ok := set.SpecialHairpin(h.closing.Pair, h.seq); ok {
		return v, nil
	}

	init, ok := loopInit(set.HairpinInit, n, params.HairpinReferenceLen, params.LoopExtrapolation*params.R*params.T)
	if !ok {
		return 0, undefined(h.label, "no hairpin initiation for length %d", n)
	}
	allC := strings.Count(h.seq, "C") == n
	if n == 3 {
		if allC {
			return init + params.HairpinC3Loop, nil
		}
		return init, nil
	}

	mm := h.firstMismatch()
	g := init
	if v, ok := set.TerminalMismatch(h.closing.Pair, mm); ok {
		g += v
	} else if !opt.Lenient {
		return 0, undefined(h.label, "no terminal mismatch for %v on %v", mm, h.closing.Pair)
	}
	switch mm.String() {
	case "UU", "GA":
		g += params.HairpinUUGAFirstMismatch
	case "GG":
		g += params.HairpinGGFirstMismatch
		if h.closing.Pair == params.Pair("GU") {
			g += params.HairpinSpecialGUClosure
		}
	}
	if allC {
		g += float64(n)*params.HairpinCLoopA + params.HairpinCLoopB
	}
	return g, nil
}
