// core/structure/adjacency.go
package structure

import "fmt"

// assign writes label over the array positions of each span. Spans use
// 1-based inclusive coordinates; an empty span writes nothing. A position
// already owned by another label fails with ErrOverlap and nothing is written.
func (s *Structure) assign(label string, spans ...Span) error {
	for _, sp := range spans {
		if sp.Len() == 0 {
			continue
		}
		if s.array == nil {
			return fmt.Errorf("%s: %w", label, ErrNoArray)
		}
		if sp.Start < 1 || sp.Stop > len(s.array) {
			return fmt.Errorf("%s: span %v outside molecule of length %d", label, sp, len(s.array))
		}
		for i := sp.Start - 1; i < sp.Stop; i++ {
			if owner := s.array[i]; owner != "" && owner != label {
				return fmt.Errorf("%s: position %d: %w by %s", label, i+1, ErrOverlap, owner)
			}
		}
	}
	for _, sp := range spans {
		for i := sp.Start - 1; i < sp.Stop; i++ {
			s.array[i] = label
		}
	}
	return nil
}

// ComponentArray returns a copy of the per-nucleotide owner labels,
// 0-indexed.
func (s *Structure) ComponentArray() []string {
	return append([]string(nil), s.array...)
}

// At returns the label owning 1-based position pos.
func (s *Structure) At(pos int) (string, error) {
	if pos < 1 || pos > len(s.array) {
		return "", fmt.Errorf("position %d outside molecule of length %d", pos, len(s.array))
	}
	return s.array[pos-1], nil
}

// Unassigned lists 1-based positions no component claims.
func (s *Structure) Unassigned() []int {
	var out []int
	for i, l := range s.array {
		if l == "" {
			out = append(out, i+1)
		}
	}
	return out
}

// owner returns the label at 0-based index i, or EOM past either end.
func (s *Structure) owner(i int) string {
	if i < 0 || i >= len(s.array) {
		return EOM
	}
	return s.array[i]
}

// flank returns the owners immediately before and after a 1-based span.
func (s *Structure) flank(sp Span) Neighbors {
	return Neighbors{FivePrime: s.owner(sp.Start - 2), ThreePrime: s.owner(sp.Stop)}
}

// Neighbors computes the flanking components of label from the component
// array. Single-span components yield one pair. Stems and internal loops
// yield two: the outer pair (before the first span, after the second) and
// the inner pair (before the second span, after the first).
func (s *Structure) Neighbors(label string) ([]Neighbors, error) {
	c, err := s.Component(label)
	if err != nil {
		return nil, err
	}
	switch c.Kind() {
	case KindMultiLoop, KindNCBP:
		return nil, fmt.Errorf("%s: %w", label, ErrNoNeighbors)
	}
	spans := c.Spans()
	switch len(spans) {
	case 1:
		return []Neighbors{s.flank(spans[0])}, nil
	case 2:
		a, b := spans[0], spans[1]
		return []Neighbors{
			{FivePrime: s.owner(a.Start - 2), ThreePrime: s.owner(b.Stop)},
			{FivePrime: s.owner(b.Start - 2), ThreePrime: s.owner(a.Stop)},
		}, nil
	}
	return nil, fmt.Errorf("%s: %w", label, ErrNoNeighbors)
}

// ResolveAdjacency stores neighbor labels on every stem, bulge, hairpin,
// internal loop, external loop and end, then flags stems whose ends touch a
// single-nucleotide bulge. Multiloops and NCBPs are left without neighbors.
// It must run after the component array is complete.
func (s *Structure) ResolveAdjacency() error {
	for _, v := range s.stems.values() {
		nb, err := s.Neighbors(v.label)
		if err != nil {
			return err
		}
		v.outer, v.inner = nb[0], nb[1]
	}
	for _, v := range s.internalLoops.values() {
		nb, err := s.Neighbors(v.label)
		if err != nil {
			return err
		}
		v.outer, v.inner = nb[0], nb[1]
	}
	for _, v := range s.bulges.values() {
		v.neighbors = s.flank(v.span)
	}
	for _, v := range s.hairpins.values() {
		v.neighbors = s.flank(v.span)
	}
	for _, v := range s.externalLoops.values() {
		v.neighbors = s.flank(v.span)
	}
	for _, v := range s.ends.values() {
		v.neighbors = s.flank(v.span)
	}

	for _, v := range s.stems.values() {
		v.bulge5 = s.singleBulge(v.outer.FivePrime) || s.singleBulge(v.outer.ThreePrime)
		v.bulge3 = s.singleBulge(v.inner.FivePrime) || s.singleBulge(v.inner.ThreePrime)
	}
	return nil
}

func (s *Structure) singleBulge(label string) bool {
	if label == EOM || KindOf(label) != KindBulge {
		return false
	}
	b, ok := s.bulges.get(label)
	return ok && b.Len() == 1
}
