// core/structure/multiloop.go
package structure

import "strings"

// MultiLoopUnit is one unpaired segment of a multiloop, bounded by the
// closing pairs of two helices.
type MultiLoopUnit struct {
	ID       string // last character of the segment label ("M1.3" → "3"); not unique past 9 segments
	Label    string
	Span     Span
	Sequence string
	Five     Closing
	Three    Closing
}

// MultiLoop is a loop from which three or more helices radiate. Its segments
// are kept in file order.
type MultiLoop struct {
	label string
	units []MultiLoopUnit
}

func NewMultiLoop(label string) *MultiLoop {
	return &MultiLoop{label: label}
}

func (m *MultiLoop) Label() string  { return m.label }
func (m *MultiLoop) Kind() Kind     { return KindMultiLoop }
func (m *MultiLoop) String() string { return "MultiLoop: " + m.label }

// AddSubunit appends a segment; a repeated segment label replaces the
// earlier one in place.
func (m *MultiLoop) AddSubunit(u MultiLoopUnit) {
	for i := range m.units {
		if m.units[i].Label == u.Label {
			m.units[i] = u
			return
		}
	}
	m.units = append(m.units, u)
}

// Subunit finds a segment by its full label ("M1.11") or by the segment
// number after the dot ("11").
func (m *MultiLoop) Subunit(id string) (MultiLoopUnit, bool) {
	for _, u := range m.units {
		if u.Label == id || segmentNumber(u.Label) == id {
			return u, true
		}
	}
	return MultiLoopUnit{}, false
}

func segmentNumber(label string) string {
	if i := strings.LastIndexByte(label, '.'); i >= 0 {
		return label[i+1:]
	}
	return label
}

func (m *MultiLoop) Subunits() []MultiLoopUnit {
	return append([]MultiLoopUnit(nil), m.units...)
}

func (m *MultiLoop) NumSubunits() int { return len(m.units) }

func (m *MultiLoop) Spans() []Span {
	out := make([]Span, 0, len(m.units))
	for _, u := range m.units {
		out = append(out, u.Span)
	}
	return out
}

// Len is the total number of unpaired nucleotides across segments.
func (m *MultiLoop) Len() int {
	n := 0
	for _, u := range m.units {
		n += len(u.Sequence)
	}
	return n
}
