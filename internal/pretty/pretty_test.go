package pretty

import (
	"strings"
	"testing"

	"bprna-core/stfile"
	"bprna-core/structure"
)

func helix(t *testing.T) *structure.Structure {
	t.Helper()
	s, err := stfile.Load("../../core/stfile/testdata/helix.st")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func render(t *testing.T, label string, opt Options) string {
	t.Helper()
	s := helix(t)
	c, err := s.Component(label)
	if err != nil {
		t.Fatal(err)
	}
	return Render(s, c, opt)
}

func TestRenderStemBlocks(t *testing.T) {
	got := render(t, "S1", Options{Width: 20, OnlyMarked: true, ShowArray: true})
	want := "Stem: S1  stem  3..5 36..38\n" +
		" 1 GAGCGAAGCAAGACGAAAUU 20\n" +
		"   ..(((.(((..(((......\n" +
		"   EESSSBSSSIISSSHHHHHH\n" +
		"     ^^^\n" +
		"21 UCAAAAGUCAGAGCUCGCUU 40\n" +
		"   ......)))...))))))..\n" +
		"   HHHHHHSSSIIISSSSSSEE\n" +
		"                  ^^^\n"
	if got != want {
		t.Fatalf("render mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSkipsUnmarkedBlocks(t *testing.T) {
	got := render(t, "E1", Options{Width: 20, OnlyMarked: true})
	if strings.Contains(got, "21 ") {
		t.Fatalf("second block should be skipped:\n%s", got)
	}
	all := render(t, "E1", Options{Width: 20})
	if !strings.Contains(all, "21 UCAAAAGUCAGAGCUCGCUU 40") {
		t.Fatalf("full render should include every block:\n%s", all)
	}
	if strings.Contains(all, "EESSS") {
		t.Fatalf("array row drawn without ShowArray:\n%s", all)
	}
}

func TestMarks(t *testing.T) {
	s := helix(t)
	nc, _ := s.Component("NCBP1")
	m := Marks(nc)
	if len(m) != 2 || !m[10] || !m[31] {
		t.Fatalf("NCBP marks = %v", m)
	}
	il, _ := s.Component("I1")
	if m := Marks(il); len(m) != 5 || !m[10] || !m[32] {
		t.Fatalf("I1 marks = %v", m)
	}
}

func TestDefaultOptionsStable(t *testing.T) {
	d := DefaultOptions
	if d.Width != 60 || d.CaretGlyph != "^" || !d.OnlyMarked || !d.ShowArray {
		t.Fatalf("DefaultOptions visual defaults changed: %+v", d)
	}
	got := render(t, "H1", Options{CaretGlyph: "*"})
	if !strings.Contains(got, "************") {
		t.Fatalf("custom caret not used:\n%s", got)
	}
}
