// core/structure/structure.go
package structure

import "fmt"

// Structure is one molecule's header descriptors, typed component records
// and per-nucleotide component array.
type Structure struct {
	name           string
	length         int
	pageNumber     int
	sequence       string
	dotBracket     string
	structureArray string
	varna          string

	array []string

	stems         registry[*Stem]
	hairpins      registry[*Hairpin]
	bulges        registry[*Bulge]
	internalLoops registry[*InternalLoop]
	multiLoops    registry[*MultiLoop]
	externalLoops registry[*ExternalLoop]
	ends          registry[*End]
	ncbps         registry[*NCBP]
}

func New() *Structure { return &Structure{} }

func (s *Structure) String() string { return "RNA: " + s.name }

func (s *Structure) Name() string           { return s.name }
func (s *Structure) Length() int            { return s.length }
func (s *Structure) PageNumber() int        { return s.pageNumber }
func (s *Structure) Sequence() string       { return s.sequence }
func (s *Structure) DotBracket() string     { return s.dotBracket }
func (s *Structure) StructureArray() string { return s.structureArray }
func (s *Structure) Varna() string          { return s.varna }

func (s *Structure) SetName(name string)         { s.name = name }
func (s *Structure) SetPageNumber(n int)         { s.pageNumber = n }
func (s *Structure) SetSequence(seq string)      { s.sequence = seq }
func (s *Structure) SetDotBracket(db string)     { s.dotBracket = db }
func (s *Structure) SetStructureArray(sa string) { s.structureArray = sa }
func (s *Structure) SetVarna(v string)           { s.varna = v }

// SetLength records the molecule length and allocates an empty component
// array of that size, discarding any previous assignments.
func (s *Structure) SetLength(n int) error {
	if n < 0 {
		return fmt.Errorf("negative length %d", n)
	}
	s.length = n
	s.array = make([]string, n)
	return nil
}

// Reset returns the structure to its empty state.
func (s *Structure) Reset() { *s = Structure{} }

func (s *Structure) AddStem(v *Stem) error {
	if err := s.assign(v.label, v.Spans()...); err != nil {
		return err
	}
	s.stems.put(v.label, v)
	return nil
}

func (s *Structure) AddHairpin(v *Hairpin) error {
	if err := s.assign(v.label, v.span); err != nil {
		return err
	}
	s.hairpins.put(v.label, v)
	return nil
}

func (s *Structure) AddBulge(v *Bulge) error {
	if err := s.assign(v.label, v.span); err != nil {
		return err
	}
	s.bulges.put(v.label, v)
	return nil
}

func (s *Structure) AddInternalLoop(v *InternalLoop) error {
	if err := s.assign(v.label, v.Spans()...); err != nil {
		return err
	}
	s.internalLoops.put(v.label, v)
	return nil
}

// AddMultiLoop records every segment under the multiloop's own label.
func (s *Structure) AddMultiLoop(v *MultiLoop) error {
	if err := s.assign(v.label, v.Spans()...); err != nil {
		return err
	}
	s.multiLoops.put(v.label, v)
	return nil
}

func (s *Structure) AddExternalLoop(v *ExternalLoop) error {
	if err := s.assign(v.label, v.span); err != nil {
		return err
	}
	s.externalLoops.put(v.label, v)
	return nil
}

func (s *Structure) AddEnd(v *End) error {
	if err := s.assign(v.label, v.span); err != nil {
		return err
	}
	s.ends.put(v.label, v)
	return nil
}

// AddNCBP records a non-canonical pair; the component array is untouched.
func (s *Structure) AddNCBP(v *NCBP) { s.ncbps.put(v.label, v) }

func (s *Structure) Stems() []*Stem                 { return s.stems.values() }
func (s *Structure) Hairpins() []*Hairpin           { return s.hairpins.values() }
func (s *Structure) Bulges() []*Bulge               { return s.bulges.values() }
func (s *Structure) InternalLoops() []*InternalLoop { return s.internalLoops.values() }
func (s *Structure) MultiLoops() []*MultiLoop       { return s.multiLoops.values() }
func (s *Structure) ExternalLoops() []*ExternalLoop { return s.externalLoops.values() }
func (s *Structure) Ends() []*End                   { return s.ends.values() }
func (s *Structure) NCBPs() []*NCBP                 { return s.ncbps.values() }

func (s *Structure) StemLabels() []string         { return s.stems.labels() }
func (s *Structure) HairpinLabels() []string      { return s.hairpins.labels() }
func (s *Structure) BulgeLabels() []string        { return s.bulges.labels() }
func (s *Structure) InternalLoopLabels() []string { return s.internalLoops.labels() }
func (s *Structure) MultiLoopLabels() []string    { return s.multiLoops.labels() }
func (s *Structure) ExternalLoopLabels() []string { return s.externalLoops.labels() }
func (s *Structure) EndLabels() []string          { return s.ends.labels() }
func (s *Structure) NCBPLabels() []string         { return s.ncbps.labels() }

func (s *Structure) NumStems() int         { return s.stems.len() }
func (s *Structure) NumHairpins() int      { return s.hairpins.len() }
func (s *Structure) NumBulges() int        { return s.bulges.len() }
func (s *Structure) NumInternalLoops() int { return s.internalLoops.len() }
func (s *Structure) NumMultiLoops() int    { return s.multiLoops.len() }
func (s *Structure) NumExternalLoops() int { return s.externalLoops.len() }
func (s *Structure) NumEnds() int          { return s.ends.len() }
func (s *Structure) NumNCBPs() int         { return s.ncbps.len() }

func lookup[T any](r *registry[T], kind Kind, label string) (T, error) {
	v, ok := r.get(label)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", kind, label, ErrNotFound)
	}
	return v, nil
}

func (s *Structure) Stem(label string) (*Stem, error) {
	return lookup(&s.stems, KindStem, label)
}

func (s *Structure) Hairpin(label string) (*Hairpin, error) {
	return lookup(&s.hairpins, KindHairpin, label)
}

func (s *Structure) Bulge(label string) (*Bulge, error) {
	return lookup(&s.bulges, KindBulge, label)
}

// InternalLoop accepts the parent label or either half's label ("I2.1").
func (s *Structure) InternalLoop(label string) (*InternalLoop, error) {
	return lookup(&s.internalLoops, KindInternalLoop, ParentLabel(label))
}

// MultiLoop accepts the parent label or a segment label ("M1.2").
func (s *Structure) MultiLoop(label string) (*MultiLoop, error) {
	return lookup(&s.multiLoops, KindMultiLoop, ParentLabel(label))
}

func (s *Structure) ExternalLoop(label string) (*ExternalLoop, error) {
	return lookup(&s.externalLoops, KindExternalLoop, label)
}

func (s *Structure) End(label string) (*End, error) {
	return lookup(&s.ends, KindEnd, label)
}

func (s *Structure) NCBP(label string) (*NCBP, error) {
	return lookup(&s.ncbps, KindNCBP, label)
}

func as[T Component](v T, err error) (Component, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Component dispatches on the label's sigil to the matching record.
func (s *Structure) Component(label string) (Component, error) {
	switch KindOf(label) {
	case KindStem:
		return as(s.Stem(label))
	case KindHairpin:
		return as(s.Hairpin(label))
	case KindBulge:
		return as(s.Bulge(label))
	case KindInternalLoop:
		return as(s.InternalLoop(label))
	case KindMultiLoop:
		return as(s.MultiLoop(label))
	case KindExternalLoop:
		return as(s.ExternalLoop(label))
	case KindEnd:
		return as(s.End(label))
	case KindNCBP:
		return as(s.NCBP(label))
	}
	return nil, fmt.Errorf("component %q: %w", label, ErrUnknownLabel)
}

// Features lists the labels of every evaluable record: stems, bulges,
// hairpins, then internal loops.
func (s *Structure) Features() []string {
	out := make([]string, 0, s.stems.len()+s.bulges.len()+s.hairpins.len()+s.internalLoops.len())
	out = append(out, s.stems.order...)
	out = append(out, s.bulges.order...)
	out = append(out, s.hairpins.order...)
	out = append(out, s.internalLoops.order...)
	return out
}

// Evaluables returns the records named by Features, in the same order.
func (s *Structure) Evaluables() []Evaluable {
	out := make([]Evaluable, 0, len(s.Features()))
	for _, v := range s.stems.values() {
		out = append(out, v)
	}
	for _, v := range s.bulges.values() {
		out = append(out, v)
	}
	for _, v := range s.hairpins.values() {
		out = append(out, v)
	}
	for _, v := range s.internalLoops.values() {
		out = append(out, v)
	}
	return out
}

// Components returns every record, grouped by kind in Kind order.
func (s *Structure) Components() []Component {
	var out []Component
	for _, v := range s.stems.values() {
		out = append(out, v)
	}
	for _, v := range s.hairpins.values() {
		out = append(out, v)
	}
	for _, v := range s.bulges.values() {
		out = append(out, v)
	}
	for _, v := range s.internalLoops.values() {
		out = append(out, v)
	}
	for _, v := range s.multiLoops.values() {
		out = append(out, v)
	}
	for _, v := range s.externalLoops.values() {
		out = append(out, v)
	}
	for _, v := range s.ends.values() {
		out = append(out, v)
	}
	for _, v := range s.ncbps.values() {
		out = append(out, v)
	}
	return out
}
