// core/stfile/records.go
package stfile

import (
	"fmt"
	"regexp"
	"strconv"

	"bprna-core/structure"
)

// internalLoopOpen matches the first half of an internal loop ("I12.1").
var internalLoopOpen = regexp.MustCompile(`^I\d+\.1$`)

type recordKind int

const (
	recSkip recordKind = iota
	recStem
	recHairpin
	recBulge
	recInternalLoop
	recMultiLoop
	recExternalLoop
	recEnd
	recNCBP
)

// classify maps a body line's leading token to the record it introduces.
// Second internal-loop halves, pseudoknot and segment summaries, and any
// other token are skipped.
func classify(label string) recordKind {
	switch structure.KindOf(label) {
	case structure.KindStem:
		return recStem
	case structure.KindHairpin:
		return recHairpin
	case structure.KindBulge:
		return recBulge
	case structure.KindInternalLoop:
		if internalLoopOpen.MatchString(label) {
			return recInternalLoop
		}
	case structure.KindMultiLoop:
		return recMultiLoop
	case structure.KindExternalLoop:
		return recExternalLoop
	case structure.KindEnd:
		return recEnd
	case structure.KindNCBP:
		return recNCBP
	}
	return recSkip
}

func needFields(f []string, n int) error {
	if len(f) < n {
		return fmt.Errorf("want at least %d fields, got %d", n, len(f))
	}
	return nil
}

// pkField returns the first PK{n} annotation among trailing fields.
func pkField(extra []string) string {
	for _, f := range extra {
		if id, ok := ParsePK(f); ok {
			return id
		}
	}
	return ""
}

// S1 1..3 "ACG" 8..10 "UAC"
func parseStem(f []string) (*structure.Stem, error) {
	if err := needFields(f, 5); err != nil {
		return nil, err
	}
	five, err := ParseSpan(f[1])
	if err != nil {
		return nil, err
	}
	three, err := ParseSpan(f[3])
	if err != nil {
		return nil, err
	}
	return structure.NewStem(f[0], five, ExtractSequence(f[2]), three, ExtractSequence(f[4]))
}

// H1 4..7 "UACG" (3,8) G:U [PK{1}]
func parseHairpin(f []string) (*structure.Hairpin, error) {
	if err := needFields(f, 5); err != nil {
		return nil, err
	}
	span, err := ParseSpan(f[1])
	if err != nil {
		return nil, err
	}
	cp, err := parseClosing(f[3], f[4])
	if err != nil {
		return nil, err
	}
	return structure.NewHairpin(f[0], span, ExtractSequence(f[2]), cp, pkField(f[5:])), nil
}

// B1 5..5 "A" (4,60) C:G (6,59) G:C [PK{1}]
//
// The trailing pair is reoriented so that its first base is the one on the
// bulge's strand, letting it stack on the preceding pair.
func parseBulge(f []string) (*structure.Bulge, error) {
	if err := needFields(f, 7); err != nil {
		return nil, err
	}
	span, err := ParseSpan(f[1])
	if err != nil {
		return nil, err
	}
	lead, err := parseClosing(f[3], f[4])
	if err != nil {
		return nil, err
	}
	trail, err := parseClosing(f[5], f[6])
	if err != nil {
		return nil, err
	}
	if abs(span.Stop-trail.Five) > abs(span.Stop-trail.Three) {
		trail = structure.Closing{Pair: trail.Pair.Reverse(), Five: trail.Three, Three: trail.Five}
	}
	return structure.NewBulge(f[0], span, ExtractSequence(f[2]), lead, trail, pkField(f[7:])), nil
}

// I1.1 5..6 "AA" (4,20) G:C
func parseLoopHalf(f []string) (structure.LoopHalf, error) {
	if err := needFields(f, 5); err != nil {
		return structure.LoopHalf{}, err
	}
	span, err := ParseSpan(f[1])
	if err != nil {
		return structure.LoopHalf{}, err
	}
	cp, err := parseClosing(f[3], f[4])
	if err != nil {
		return structure.LoopHalf{}, err
	}
	return structure.LoopHalf{Label: f[0], Span: span, Sequence: ExtractSequence(f[2]), Closing: cp}, nil
}

// M1.2 30..32 "GAA" (29,60) C:G (33,50) A:U
func parseMultiLoopUnit(f []string) (structure.MultiLoopUnit, error) {
	if err := needFields(f, 7); err != nil {
		return structure.MultiLoopUnit{}, err
	}
	span, err := ParseSpan(f[1])
	if err != nil {
		return structure.MultiLoopUnit{}, err
	}
	five, err := parseClosing(f[3], f[4])
	if err != nil {
		return structure.MultiLoopUnit{}, err
	}
	three, err := parseClosing(f[5], f[6])
	if err != nil {
		return structure.MultiLoopUnit{}, err
	}
	return structure.MultiLoopUnit{
		ID:       f[0][len(f[0])-1:],
		Label:    f[0],
		Span:     span,
		Sequence: ExtractSequence(f[2]),
		Five:     five,
		Three:    three,
	}, nil
}

// X1 20..22 "AAG" (19,5) C:G (23,40) G:C
func parseExternalLoop(f []string) (*structure.ExternalLoop, error) {
	if err := needFields(f, 7); err != nil {
		return nil, err
	}
	span, err := ParseSpan(f[1])
	if err != nil {
		return nil, err
	}
	five, err := parseClosing(f[3], f[4])
	if err != nil {
		return nil, err
	}
	three, err := parseClosing(f[5], f[6])
	if err != nil {
		return nil, err
	}
	return structure.NewExternalLoop(f[0], span, ExtractSequence(f[2]), five, three), nil
}

// E1 1..3 "GGA"
func parseEnd(f []string) (*structure.End, error) {
	if err := needFields(f, 3); err != nil {
		return nil, err
	}
	span, err := ParseSpan(f[1])
	if err != nil {
		return nil, err
	}
	return structure.NewEnd(f[0], span, ExtractSequence(f[2])), nil
}

// NCBP1 12 G 50 A [S3]
func parseNCBP(f []string) (*structure.NCBP, error) {
	if err := needFields(f, 5); err != nil {
		return nil, err
	}
	i, err := strconv.Atoi(f[1])
	if err != nil {
		return nil, fmt.Errorf("position %q: bad integer", f[1])
	}
	j, err := strconv.Atoi(f[3])
	if err != nil {
		return nil, fmt.Errorf("position %q: bad integer", f[3])
	}
	if len(f[2]) != 1 || len(f[4]) != 1 {
		return nil, fmt.Errorf("bases %q/%q: want single nucleotides", f[2], f[4])
	}
	parent := ""
	if len(f) > 5 {
		parent = f[5]
	}
	return structure.NewNCBP(f[0], i, f[2][0], j, f[4][0], parent), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
