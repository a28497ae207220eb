// core/structure/external.go
package structure

// ExternalLoop is an unpaired run outside every helix, between two
// top-level helices.
type ExternalLoop struct {
	label       string
	span        Span
	seq         string
	five, three Closing
	neighbors   Neighbors
}

func NewExternalLoop(label string, span Span, seq string, five, three Closing) *ExternalLoop {
	return &ExternalLoop{label: label, span: span, seq: seq, five: five, three: three}
}

func (x *ExternalLoop) Label() string        { return x.label }
func (x *ExternalLoop) Kind() Kind           { return KindExternalLoop }
func (x *ExternalLoop) String() string       { return "ExternalLoop: " + x.label }
func (x *ExternalLoop) Spans() []Span        { return []Span{x.span} }
func (x *ExternalLoop) Span() Span           { return x.span }
func (x *ExternalLoop) Sequence() string     { return x.seq }
func (x *ExternalLoop) Len() int             { return len(x.seq) }
func (x *ExternalLoop) Neighbors() Neighbors { return x.neighbors }

// ClosingPairs returns the pairs bounding the loop on its 5' and 3' sides.
func (x *ExternalLoop) ClosingPairs() (five, three Closing) { return x.five, x.three }

// End is an unpaired run at the 5' or 3' terminus of the molecule.
type End struct {
	label     string
	span      Span
	seq       string
	neighbors Neighbors
}

func NewEnd(label string, span Span, seq string) *End {
	return &End{label: label, span: span, seq: seq}
}

func (e *End) Label() string        { return e.label }
func (e *End) Kind() Kind           { return KindEnd }
func (e *End) String() string       { return "End: " + e.label }
func (e *End) Spans() []Span        { return []Span{e.span} }
func (e *End) Span() Span           { return e.span }
func (e *End) Sequence() string     { return e.seq }
func (e *End) Len() int             { return len(e.seq) }
func (e *End) Neighbors() Neighbors { return e.neighbors }

// Neighbor is the single component an end touches: the 3' side of a 5'
// end or the 5' side of a 3' end. EOM if the end covers the molecule.
func (e *End) Neighbor() string {
	if e.neighbors.FivePrime != "" && e.neighbors.FivePrime != EOM {
		return e.neighbors.FivePrime
	}
	if e.neighbors.ThreePrime != "" {
		return e.neighbors.ThreePrime
	}
	return EOM
}
