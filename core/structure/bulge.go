// core/structure/bulge.go
package structure

import (
	"math"

	"bprna-core/params"
)

// Bulge is an unpaired run on one strand between two stacked pairs.
type Bulge struct {
	label     string
	span      Span
	seq       string
	five      Closing // pair on the 5' side of the bulge
	three     Closing // pair on the 3' side, oriented to stack on five
	pk        string
	neighbors Neighbors
}

func NewBulge(label string, span Span, seq string, five, three Closing, pk string) *Bulge {
	return &Bulge{label: label, span: span, seq: seq, five: five, three: three, pk: pk}
}

func (b *Bulge) Label() string        { return b.label }
func (b *Bulge) Kind() Kind           { return KindBulge }
func (b *Bulge) String() string       { return "Bulge: " + b.label }
func (b *Bulge) Spans() []Span        { return []Span{b.span} }
func (b *Bulge) Span() Span           { return b.span }
func (b *Bulge) Sequence() string     { return b.seq }
func (b *Bulge) Len() int             { return len(b.seq) }
func (b *Bulge) PK() string           { return b.pk }
func (b *Bulge) Neighbors() Neighbors { return b.neighbors }

// ClosingPairs returns the flanking pairs, 5' side first.
func (b *Bulge) ClosingPairs() (five, three Closing) { return b.five, b.three }

func (b *Bulge) SetSequence(seq string) { b.seq = seq }

// Canonical reports whether a single-nucleotide bulge has a stacking entry
// across it. Longer bulges need only initiation terms.
func (b *Bulge) Canonical(set *params.Set) bool {
	switch {
	case b.Len() == 0:
		return false
	case b.Len() == 1:
		_, ok := paramsOrDefault(set).Stack(b.five.Pair, b.three.Pair)
		return ok
	}
	return true
}

// Energy evaluates the bulge. A single-nucleotide bulge keeps the stack
// across it and earns the special-C bonus when an adjacent pair opens with C.
func (b *Bulge) Energy(opt EnergyOptions) (float64, error) {
	n := b.Len()
	if n == 0 {
		return 0, undefined(b.label, "empty bulge")
	}
	set := opt.set()
	rt := params.R * params.T

	if n > 1 {
		v, ok := loopInit(set.BulgeInit, n, params.BulgeReferenceLen, params.LoopExtrapolation*rt)
		if !ok {
			return 0, undefined(b.label, "no bulge initiation for length %d", n)
		}
		return v, nil
	}

	init, ok := set.BulgeInit(1)
	if !ok {
		return 0, undefined(b.label, "no bulge initiation for length 1")
	}
	stack, ok := set.Stack(b.five.Pair, b.three.Pair)
	if !ok {
		if !opt.Lenient {
			return 0, undefined(b.label, "no stacking parameter for %v/%v", b.five.Pair, b.three.Pair)
		}
		stack = 0
	}

	c5, c3 := b.five.Pair.Five == 'C', b.three.Pair.Five == 'C'
	if b.seq == "C" && (c5 || c3) {
		states := 1
		if c5 {
			states++
		}
		if c3 {
			states++
		}
		return init + stack + params.BulgeSpecialC - rt*math.Log(float64(states)), nil
	}
	return init + stack, nil
}
