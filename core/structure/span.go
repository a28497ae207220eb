// core/structure/span.go
package structure

import (
	"fmt"

	"bprna-core/params"
)

// EOM marks a neighbor position that falls outside the molecule.
const EOM = "EOM"

// Span is an inclusive 1-based nucleotide range. Zero-length segments are
// written Stop = Start-1, as in "10..9".
type Span struct {
	Start, Stop int
}

func (s Span) Len() int {
	if s.Stop < s.Start {
		return 0
	}
	return s.Stop - s.Start + 1
}

func (s Span) Contains(pos int) bool { return pos >= s.Start && pos <= s.Stop }

func (s Span) String() string { return fmt.Sprintf("%d..%d", s.Start, s.Stop) }

// Closing is a base pair together with its 1-based positions.
type Closing struct {
	Pair        params.BasePair
	Five, Three int
}

func (c Closing) String() string {
	return fmt.Sprintf("(%d,%d) %c:%c", c.Five, c.Three, c.Pair.Five, c.Pair.Three)
}

// Neighbors names the components immediately 5' and 3' of a span
// (or of one end of a two-span component).
type Neighbors struct {
	FivePrime, ThreePrime string
}

func (n Neighbors) String() string { return "(" + n.FivePrime + ", " + n.ThreePrime + ")" }
