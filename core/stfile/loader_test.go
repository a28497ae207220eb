package stfile

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bprna-core/params"
	"bprna-core/structure"
)

func loadFixture(t *testing.T, name string) (*structure.Structure, Stats) {
	t.Helper()
	s := structure.New()
	st, err := Loader{}.LoadInto(s, filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return s, st
}

func TestLoadHelix(t *testing.T) {
	s, st := loadFixture(t, "helix.st")

	if s.Name() != "bpRNA_toy_helix" || s.Length() != 40 || s.PageNumber() != 1 {
		t.Fatalf("header = %q/%d/%d", s.Name(), s.Length(), s.PageNumber())
	}
	if s.DotBracket() != "..(((.(((..(((............)))...)))))).." {
		t.Fatalf("dot-bracket = %q", s.DotBracket())
	}
	if got := []int{s.NumStems(), s.NumHairpins(), s.NumBulges(), s.NumInternalLoops(), s.NumMultiLoops(), s.NumExternalLoops(), s.NumEnds(), s.NumNCBPs()}; !reflect.DeepEqual(got, []int{3, 1, 1, 1, 0, 0, 2, 1}) {
		t.Fatalf("per-kind counts = %v", got)
	}
	if st.Records != 9 || !reflect.DeepEqual(st.Skipped, []int{18}) {
		t.Fatalf("stats = %+v", st)
	}

	arr := s.ComponentArray()
	if len(arr) != 40 {
		t.Fatalf("array length = %d", len(arr))
	}
	for pos, want := range map[int]string{1: "E1", 6: "B1", 10: "I1", 15: "H1", 31: "I1", 36: "S1", 40: "E2"} {
		if arr[pos-1] != want {
			t.Errorf("position %d = %q, want %q", pos, arr[pos-1], want)
		}
	}

	s1, _ := s.Stem("S1")
	outer, inner := s1.Neighbors()
	if outer != (structure.Neighbors{FivePrime: "E1", ThreePrime: "E2"}) || inner != (structure.Neighbors{FivePrime: "S2", ThreePrime: "B1"}) {
		t.Fatalf("S1 neighbors = %v / %v", outer, inner)
	}
	if _, f3 := s1.AdjacentBulges(); !f3 {
		t.Fatalf("S1 inner end touches B1")
	}
	e1, _ := s.End("E1")
	if e1.Neighbor() != "S1" {
		t.Fatalf("E1 neighbor = %q", e1.Neighbor())
	}

	il, _ := s.InternalLoop("I1.2")
	five, three := il.ClosingPairs()
	if five != params.Pair("CG") || three != params.Pair("GC") {
		t.Fatalf("I1 closing pairs = %v %v", five, three)
	}
	if a, b := il.Loops(); a != "AA" || b != "AGA" {
		t.Fatalf("I1 loops = %q %q", a, b)
	}
	nc, _ := s.NCBP("NCBP1")
	if nc.Parent() != "I1" || nc.Pair() != params.Pair("AG") {
		t.Fatalf("NCBP1 = %v parent %q", nc.Pair(), nc.Parent())
	}
}

func TestHelixEnergies(t *testing.T) {
	s, _ := loadFixture(t, "helix.st")
	rt := params.R * params.T

	cases := []struct {
		label   string
		lenient bool
		want    float64
		undef   bool
	}{
		{label: "S1", want: -3.42 - 2.36},
		{label: "S2", want: -2.08 - 3.42}, // AU end sits on the single-nt bulge
		{label: "S3", want: -2.35 - 2.24},
		{label: "B1", want: 3.8 - 2.35},
		{label: "H1", undef: true},
		{label: "H1", lenient: true, want: 6.4 + params.LoopExtrapolation*rt*math.Log(12.0/9.0) + params.HairpinUUGAFirstMismatch},
		{label: "I1", undef: true},
		{label: "I1", lenient: true, want: 2.0 + params.InternalAsymmetryPenalty},
	}
	for _, c := range cases {
		name := c.label
		if c.lenient {
			name += "/lenient"
		}
		t.Run(name, func(t *testing.T) {
			comp, err := s.Component(c.label)
			if err != nil {
				t.Fatal(err)
			}
			ev, ok := comp.(structure.Evaluable)
			if !ok {
				t.Fatalf("%s is not evaluable", c.label)
			}
			got, err := ev.Energy(structure.EnergyOptions{Lenient: c.lenient})
			if c.undef {
				if !errors.Is(err, structure.ErrUndefinedEnergy) {
					t.Fatalf("want undefined energy, got %v, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Energy: %v", err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("energy = %.6f, want %.6f", got, c.want)
			}
		})
	}
}

func TestLoadMultiLoop(t *testing.T) {
	s, st := loadFixture(t, "multiloop.st")

	if s.Length() != 30 || s.PageNumber() != 2 {
		t.Fatalf("length/page = %d/%d", s.Length(), s.PageNumber())
	}
	if !reflect.DeepEqual(st.Skipped, []int{21, 22}) || st.Records != 11 {
		t.Fatalf("stats = %+v", st)
	}
	m, err := s.MultiLoop("M1")
	if err != nil {
		t.Fatal(err)
	}
	if m.NumSubunits() != 3 {
		t.Fatalf("subunits = %d", m.NumSubunits())
	}
	u, ok := m.Subunit("3")
	if !ok || u.Sequence != "" || u.Span.Len() != 0 || u.Five.Pair != params.Pair("GC") {
		t.Fatalf("M1.3 = %+v", u)
	}
	if l, _ := s.At(11); l != "M1" {
		t.Fatalf("position 11 = %q, want M1", l)
	}
	h2, _ := s.Hairpin("H2")
	if h2.PK() != "1" {
		t.Fatalf("H2 pk = %q", h2.PK())
	}
	x1, _ := s.ExternalLoop("X1")
	if x1.Neighbors() != (structure.Neighbors{FivePrime: "S1", ThreePrime: "S4"}) {
		t.Fatalf("X1 neighbors = %v", x1.Neighbors())
	}
	s1, _ := s.Stem("S1")
	if _, inner := s1.Neighbors(); inner != (structure.Neighbors{FivePrime: "S3", ThreePrime: "M1"}) {
		t.Fatalf("S1 inner neighbors = %v", inner)
	}
	e1, _ := s.End("E1")
	if e1.Neighbor() != "S4" {
		t.Fatalf("E1 neighbor = %q", e1.Neighbor())
	}
	nc, _ := s.NCBP("NCBP1")
	if nc.Parent() != "" {
		t.Fatalf("NCBP1 parent = %q, want none", nc.Parent())
	}
}

const header = "#Name: t\n#Length: 10\nACGUACGUAC\n(((....)))\nSSSHHHHSSS\nNNNNNNNNNN\n"

func TestParseScenario(t *testing.T) {
	s, err := Parse(strings.NewReader(header +
		"S1 1..3 \"ACG\" 8..10 \"UAC\"\n" +
		"H1 4..7 \"UACG\" (3,8) G:U\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"S1", "S1", "S1", "H1", "H1", "H1", "H1", "S1", "S1", "S1"}
	if got := s.ComponentArray(); !reflect.DeepEqual(got, want) {
		t.Fatalf("array = %v", got)
	}
	nb, _ := s.Neighbors("S1")
	if nb[0] != (structure.Neighbors{FivePrime: structure.EOM, ThreePrime: structure.EOM}) {
		t.Fatalf("S1 outer = %v", nb[0])
	}
	nb, _ = s.Neighbors("H1")
	if nb[0] != (structure.Neighbors{FivePrime: "S1", ThreePrime: "S1"}) {
		t.Fatalf("H1 = %v", nb[0])
	}
}

func TestLengthDefaultsToSequence(t *testing.T) {
	s, err := Parse(strings.NewReader("ACGUACGUAC\n(((....)))\nSSSHHHHSSS\nNNNNNNNNNN\n" +
		"S1 1..3 \"ACG\" 8..10 \"UAC\"\nH1 4..7 \"UACG\" (3,8) G:U\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Length() != 10 {
		t.Fatalf("length = %d", s.Length())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	body := "S1 1..3 \"ACG\" 8..10 \"UAC\"\nH1 4..7 \"UACG\" (3,8) G:U\n"

	cases := []struct {
		name     string
		path     string
		sentinel error
		contains string
	}{
		{"extension", write("x.txt", header+body), ErrFileType, ".st"},
		{"missing file", filepath.Join(dir, "nope.st"), ErrFileAccess, "nope.st"},
		{"incomplete header", write("short.st", "#Name: t\nACGU\n((..\n"), ErrIncompleteHeader, "structure array"},
		{"bad length", write("len.st", "#Length: ten\n"+body), ErrMalformedRecord, "#Length"},
		{"bad span", write("span.st", header+"S1 1-3 \"ACG\" 8..10 \"UAC\"\n"), ErrMalformedRecord, "line 7"},
		{"short record", write("short_rec.st", header+"H1 4..7 \"UACG\"\n"), ErrMalformedRecord, "want at least 5 fields"},
		{"span past end", write("far.st", header+"E1 1..12 \"ACGUACGUACGU\"\n"), ErrMalformedRecord, "outside molecule"},
		{"dangling internal loop", write("il.st", header+body+"I1.1 5..5 \"A\" (4,7) A:C\n"), ErrMalformedRecord, "second half"},
		{"uncovered", write("gap.st", header+"S1 1..3 \"ACG\" 8..10 \"UAC\"\n"), ErrMalformedRecord, "not covered"},
		{"repeated first half", write("il11.st", header+"S1 1..3 \"ACG\" 8..10 \"UAC\"\n"+
			"I1.1 4..5 \"UA\" (3,8) G:U\nI1.1 6..7 \"CG\" (7,4) G:U\n"), ErrMalformedRecord, "second half"},
		{"overlap", write("overlap.st", header+body+"B1 3..5 \"GUA\" (2,9) C:A (6,7) C:G\n"), structure.ErrOverlap, "already assigned"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := structure.New()
			s.SetName("stale")
			_, err := Loader{}.LoadInto(s, c.path)
			if !errors.Is(err, c.sentinel) {
				t.Fatalf("want %v, got %v", c.sentinel, err)
			}
			if !strings.Contains(err.Error(), c.contains) {
				t.Fatalf("error %q does not mention %q", err, c.contains)
			}
			if s.Name() != "" || s.NumStems() != 0 || len(s.ComponentArray()) != 0 {
				t.Fatalf("structure not reset after failure")
			}
		})
	}
}

func TestLoadReportsRecordLine(t *testing.T) {
	_, err := Parse(strings.NewReader(header + "S1 1..3 \"ACG\" 8..10 \"UAC\"\nB1 4..4 \"U\" (3,8) G:U\n"))
	var re *RecordError
	if !errors.As(err, &re) {
		t.Fatalf("want *RecordError, got %v", err)
	}
	if re.Line != 8 || re.Label != "B1" {
		t.Fatalf("RecordError = %+v", re)
	}
}

func TestParseLargeMultiLoop(t *testing.T) {
	const n = 12
	var b strings.Builder
	b.WriteString("#Name: junction\n" + strings.Repeat("A", n) + "\n" + strings.Repeat(".", n) + "\n" +
		strings.Repeat("M", n) + "\n" + strings.Repeat("N", n) + "\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "M1.%d %d..%d \"A\" (%d,%d) G:C (%d,%d) C:G\n", i, i, i, i, i, i, i)
	}
	s, err := Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	m, err := s.MultiLoop("M1")
	if err != nil {
		t.Fatal(err)
	}
	if m.NumSubunits() != n || len(m.Spans()) != n || m.Len() != n {
		t.Fatalf("subunits = %d spans = %d len = %d", m.NumSubunits(), len(m.Spans()), m.Len())
	}
	for i, l := range s.ComponentArray() {
		if l != "M1" {
			t.Fatalf("position %d = %q, want M1", i+1, l)
		}
	}
	if u, ok := m.Subunit("11"); !ok || u.Label != "M1.11" || u.Span != (structure.Span{Start: 11, Stop: 11}) {
		t.Fatalf("Subunit(11) = %+v, %v", u, ok)
	}
	if u, ok := m.Subunit("M1.1"); !ok || u.Span.Start != 1 {
		t.Fatalf("Subunit(M1.1) = %+v, %v", u, ok)
	}
}

func TestParseWideInternalLoopLabel(t *testing.T) {
	if classify("I1000.1") != recInternalLoop || classify("I1000.2") != recSkip {
		t.Fatalf("classify I1000 halves = %v/%v", classify("I1000.1"), classify("I1000.2"))
	}
	s, err := Parse(strings.NewReader(header + "S1 1..3 \"ACG\" 8..10 \"UAC\"\n" +
		"I1000.1 4..5 \"UA\" (3,8) G:U\nI1000.2 6..7 \"CG\" (7,4) G:U\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.NumInternalLoops() != 1 {
		t.Fatalf("internal loops = %d", s.NumInternalLoops())
	}
	if l, _ := s.At(4); l != "I1000" {
		t.Fatalf("position 4 = %q", l)
	}
}
