// core/params/params.go

// Package params holds the nearest-neighbor free-energy tables used by the
// structure energy engine. Values are ΔG°37 in kcal/mol.
//
// A Set is immutable after construction and safe for concurrent readers.
// This package has no dependencies on the rest of the module.
package params

import (
	"fmt"
	"strings"
)

// BasePair is an ordered (5', 3') pair of nucleotides.
type BasePair struct {
	Five, Three byte
}

// Pair builds a BasePair from a two-letter string such as "AU".
// It panics on malformed input and is meant for literals.
func Pair(s string) BasePair {
	p, err := ParsePair(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePair parses a two-letter pair ("GC"). Case is folded to upper.
func ParsePair(s string) (BasePair, error) {
	if len(s) != 2 {
		return BasePair{}, fmt.Errorf("base pair %q: want 2 letters", s)
	}
	u := strings.ToUpper(s)
	return BasePair{u[0], u[1]}, nil
}

// Reverse swaps the 5' and 3' bases.
func (p BasePair) Reverse() BasePair { return BasePair{p.Three, p.Five} }

// String renders the pair as two letters ("AU").
func (p BasePair) String() string { return string([]byte{p.Five, p.Three}) }

// Canonical reports whether the pair is Watson-Crick or wobble (AU, UA, GC, CG, GU, UG).
func (p BasePair) Canonical() bool {
	switch p.String() {
	case "AU", "UA", "GC", "CG", "GU", "UG":
		return true
	}
	return false
}

// TerminalAU reports whether the pair is AU, UA, GU or UG.
func (p BasePair) TerminalAU() bool {
	switch p.String() {
	case "AU", "UA", "GU", "UG":
		return true
	}
	return false
}

// StackKey addresses a stacking term: pair Outer followed by pair Inner
// reading the 5' strand 5'→3'.
type StackKey struct{ Outer, Inner BasePair }

// MismatchKey addresses a closing pair and the mismatch stacked on it.
type MismatchKey struct{ Closing, Mismatch BasePair }

// Loop1x1Key addresses a 1x1 internal loop.
type Loop1x1Key struct {
	Five, Three BasePair
	A, B        byte
}

// Loop1x2Key addresses a 1x2 internal loop (single base A, then B, C).
type Loop1x2Key struct {
	Five, Three BasePair
	A, B, C     byte
}

// Loop2x2Key addresses a 2x2 internal loop by its two stacked mismatches.
type Loop2x2Key struct {
	Five, Three BasePair
	M1, M2      BasePair
}

// Tables is the mutable input form of a Set.
type Tables struct {
	Name             string
	Stack            map[StackKey]float64
	HairpinInit      map[int]float64
	BulgeInit        map[int]float64
	InternalInit     map[int]float64
	TerminalMismatch map[MismatchKey]float64
	SpecialHairpins  map[BasePair]map[string]float64
	Internal1x1      map[Loop1x1Key]float64
	Internal1x2      map[Loop1x2Key]float64
	Internal2x2      map[Loop2x2Key]float64
	Mismatch2x3      map[MismatchKey]float64
	MismatchOther    map[BasePair]float64
}

// Set is a read-only parameter set.
type Set struct {
	t Tables
}

// New freezes a copy of t.
func New(t Tables) *Set {
	return &Set{t: t.clone()}
}

// Tables returns a deep copy of the set's tables, e.g. as a base for overrides.
func (s *Set) Tables() Tables { return s.t.clone() }

func (s *Set) Name() string { return s.t.Name }

func (s *Set) Stack(outer, inner BasePair) (float64, bool) {
	v, ok := s.t.Stack[StackKey{outer, inner}]
	return v, ok
}

func (s *Set) HairpinInit(n int) (float64, bool) {
	v, ok := s.t.HairpinInit[n]
	return v, ok
}

func (s *Set) BulgeInit(n int) (float64, bool) {
	v, ok := s.t.BulgeInit[n]
	return v, ok
}

func (s *Set) InternalInit(n int) (float64, bool) {
	v, ok := s.t.InternalInit[n]
	return v, ok
}

// TerminalMismatch looks up the hairpin terminal mismatch on a closing pair.
func (s *Set) TerminalMismatch(closing, mismatch BasePair) (float64, bool) {
	v, ok := s.t.TerminalMismatch[MismatchKey{closing, mismatch}]
	return v, ok
}

// SpecialHairpin looks up a tabulated hairpin by closing pair and loop sequence.
func (s *Set) SpecialHairpin(closing BasePair, loop string) (float64, bool) {
	m, ok := s.t.SpecialHairpins[closing]
	if !ok {
		return 0, false
	}
	v, ok := m[loop]
	return v, ok
}

func (s *Set) Internal1x1(five, three BasePair, a, b byte) (float64, bool) {
	v, ok := s.t.Internal1x1[Loop1x1Key{five, three, a, b}]
	return v, ok
}

func (s *Set) Internal1x2(five, three BasePair, a, b, c byte) (float64, bool) {
	v, ok := s.t.Internal1x2[Loop1x2Key{five, three, a, b, c}]
	return v, ok
}

func (s *Set) Internal2x2(five, three, m1, m2 BasePair) (float64, bool) {
	v, ok := s.t.Internal2x2[Loop2x2Key{five, three, m1, m2}]
	return v, ok
}

func (s *Set) Mismatch2x3(closing, mismatch BasePair) (float64, bool) {
	v, ok := s.t.Mismatch2x3[MismatchKey{closing, mismatch}]
	return v, ok
}

func (s *Set) MismatchOther(mismatch BasePair) (float64, bool) {
	v, ok := s.t.MismatchOther[mismatch]
	return v, ok
}

func (t Tables) clone() Tables {
	out := Tables{
		Name:             t.Name,
		Stack:            cloneMap(t.Stack),
		HairpinInit:      cloneMap(t.HairpinInit),
		BulgeInit:        cloneMap(t.BulgeInit),
		InternalInit:     cloneMap(t.InternalInit),
		TerminalMismatch: cloneMap(t.TerminalMismatch),
		SpecialHairpins:  make(map[BasePair]map[string]float64, len(t.SpecialHairpins)),
		Internal1x1:      cloneMap(t.Internal1x1),
		Internal1x2:      cloneMap(t.Internal1x2),
		Internal2x2:      cloneMap(t.Internal2x2),
		Mismatch2x3:      cloneMap(t.Mismatch2x3),
		MismatchOther:    cloneMap(t.MismatchOther),
	}
	for k, m := range t.SpecialHairpins {
		out.SpecialHairpins[k] = cloneMap(m)
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
