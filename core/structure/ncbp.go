// core/structure/ncbp.go
package structure

import "bprna-core/params"

// NCBP is a non-canonical base pair recorded inside another component.
// It does not occupy the component array.
type NCBP struct {
	label       string
	five, three int
	pair        params.BasePair
	parent      string
}

// NewNCBP builds a non-canonical pair; parent may be empty.
func NewNCBP(label string, five int, base5 byte, three int, base3 byte, parent string) *NCBP {
	return &NCBP{label: label, five: five, three: three, pair: params.BasePair{Five: base5, Three: base3}, parent: parent}
}

func (p *NCBP) Label() string         { return p.label }
func (p *NCBP) Kind() Kind            { return KindNCBP }
func (p *NCBP) String() string        { return "NCBP: " + p.label }
func (p *NCBP) Spans() []Span         { return nil }
func (p *NCBP) Pair() params.BasePair { return p.pair }

// Positions returns the 1-based positions of the two paired bases.
func (p *NCBP) Positions() (five, three int) { return p.five, p.three }

// Parent is the label of the enclosing component, or "" when none was given.
func (p *NCBP) Parent() string { return p.parent }
