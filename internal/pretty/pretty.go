// Package pretty draws a component over its molecule as aligned text rows:
// sequence, dot-bracket, structure array, and a caret track marking the
// component's nucleotides.
package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"bprna-core/structure"
)

// Options control the ASCII rendering.
type Options struct {
	// Columns per block. If <=0, use default (60).
	Width int

	// Print only the blocks that contain at least one marked position.
	OnlyMarked bool

	// Draw the structure-array row (S/H/B/I/M/X/E letters).
	ShowArray bool

	// Glyphs
	CaretGlyph string // default "^"
	GapGlyph   string // default " "
}

// DefaultOptions is what `show` uses.
var DefaultOptions = Options{
	Width:      60,
	OnlyMarked: true,
	ShowArray:  true,
	CaretGlyph: "^",
	GapGlyph:   " ",
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultOptions.Width
	}
	return o.Width
}

func (o Options) caret() string {
	if o.CaretGlyph == "" {
		return DefaultOptions.CaretGlyph
	}
	return o.CaretGlyph
}

func (o Options) gap() string {
	if o.GapGlyph == "" {
		return DefaultOptions.GapGlyph
	}
	return o.GapGlyph
}

// Marks returns the 1-based positions a component occupies. NCBPs mark
// their two paired bases.
func Marks(c structure.Component) map[int]bool {
	m := map[int]bool{}
	if p, ok := c.(*structure.NCBP); ok {
		five, three := p.Positions()
		m[five], m[three] = true, true
		return m
	}
	for _, sp := range c.Spans() {
		for i := sp.Start; i <= sp.Stop; i++ {
			m[i] = true
		}
	}
	return m
}

func spanList(c structure.Component) string {
	if p, ok := c.(*structure.NCBP); ok {
		five, three := p.Positions()
		return fmt.Sprintf("%d,%d", five, three)
	}
	ss := make([]string, 0, 2)
	for _, sp := range c.Spans() {
		ss = append(ss, sp.String())
	}
	return strings.Join(ss, " ")
}

// slice returns s[from:to] padded with spaces where s is short.
func slice(s string, from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		if i < len(s) {
			b.WriteByte(s[i])
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Render prints c against the molecule of s.
func Render(s *structure.Structure, c structure.Component, opt Options) string {
	marks := Marks(c)
	n := s.Length()
	if l := len(s.Sequence()); l > n {
		n = l
	}
	w := opt.width()
	numW := len(strconv.Itoa(n))
	pad := strings.Repeat(" ", numW+1)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", c, c.Kind(), spanList(c))

	for from := 0; from < n; from += w {
		to := from + w
		if to > n {
			to = n
		}
		var caret strings.Builder
		hit := false
		for i := from; i < to; i++ {
			if marks[i+1] {
				caret.WriteString(opt.caret())
				hit = true
			} else {
				caret.WriteString(opt.gap())
			}
		}
		if opt.OnlyMarked && !hit {
			continue
		}
		fmt.Fprintf(&b, "%*d %s %d\n", numW, from+1, slice(s.Sequence(), from, to), to)
		fmt.Fprintf(&b, "%s%s\n", pad, slice(s.DotBracket(), from, to))
		if opt.ShowArray {
			fmt.Fprintf(&b, "%s%s\n", pad, slice(s.StructureArray(), from, to))
		}
		fmt.Fprintf(&b, "%s%s\n", pad, strings.TrimRight(caret.String(), " "))
	}
	return b.String()
}
