package params

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestPairHelpers(t *testing.T) {
	p := Pair("au")
	if p.String() != "AU" {
		t.Fatalf("Pair(au) = %q", p.String())
	}
	if p.Reverse() != Pair("UA") {
		t.Fatalf("Reverse = %v", p.Reverse())
	}
	if !Pair("GU").Canonical() || Pair("GA").Canonical() {
		t.Fatalf("Canonical misclassified")
	}
	if !Pair("UG").TerminalAU() || Pair("GC").TerminalAU() {
		t.Fatalf("TerminalAU misclassified")
	}
	if _, err := ParsePair("AUG"); err == nil {
		t.Fatalf("want error for 3-letter pair")
	}
}

func TestDefaultStackingIsSymmetric(t *testing.T) {
	d := Default()
	for k, v := range d.t.Stack {
		// 5'-WX-3'/3'-ZY-5' reads the same from the other strand.
		rev, ok := d.Stack(k.Inner.Reverse(), k.Outer.Reverse())
		if !ok {
			t.Fatalf("missing reverse of %v/%v", k.Outer, k.Inner)
		}
		if rev != v {
			t.Fatalf("%v/%v = %v but reverse = %v", k.Outer, k.Inner, v, rev)
		}
	}
	if v, _ := d.Stack(Pair("GC"), Pair("CG")); v != -3.42 {
		t.Fatalf("GC/CG = %v, want -3.42", v)
	}
}

func TestDefaultInitTablesCoverReferenceLengths(t *testing.T) {
	d := Default()
	if _, ok := d.HairpinInit(HairpinReferenceLen); !ok {
		t.Fatalf("hairpin init missing reference length")
	}
	if _, ok := d.BulgeInit(BulgeReferenceLen); !ok {
		t.Fatalf("bulge init missing reference length")
	}
	if _, ok := d.InternalInit(InternalReferenceLen); !ok {
		t.Fatalf("internal init missing reference length")
	}
	if _, ok := d.TerminalMismatch(Pair("CG"), Pair("GA")); ok {
		t.Fatalf("default set should not carry terminal mismatches")
	}
}

func TestSetIsACopy(t *testing.T) {
	tb := Tables{HairpinInit: map[int]float64{3: 1}}
	s := New(tb)
	tb.HairpinInit[3] = 99
	if v, _ := s.HairpinInit(3); v != 1 {
		t.Fatalf("Set aliased caller map: got %v", v)
	}
	out := s.Tables()
	out.HairpinInit[3] = 42
	if v, _ := s.HairpinInit(3); v != 1 {
		t.Fatalf("Tables() aliased internal map: got %v", v)
	}
}

func TestLoadYAMLOverridesDefault(t *testing.T) {
	s, err := LoadYAML(filepath.Join("testdata", "override.yaml"))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if s.Name() != "test-override" {
		t.Fatalf("name = %q", s.Name())
	}
	checks := []struct {
		name string
		got  func() (float64, bool)
		want float64
	}{
		{"inherited stack", func() (float64, bool) { return s.Stack(Pair("AU"), Pair("AU")) }, -0.93},
		{"added stack", func() (float64, bool) { return s.Stack(Pair("GU"), Pair("CG")) }, -1.41},
		{"overridden hairpin init", func() (float64, bool) { return s.HairpinInit(3) }, 5.0},
		{"inherited hairpin init", func() (float64, bool) { return s.HairpinInit(9) }, 6.4},
		{"terminal mismatch", func() (float64, bool) { return s.TerminalMismatch(Pair("CG"), Pair("GA")) }, -1.4},
		{"special hairpin", func() (float64, bool) { return s.SpecialHairpin(Pair("CG"), "GAAA") }, -3.0},
		{"1x1", func() (float64, bool) { return s.Internal1x1(Pair("CG"), Pair("CG"), 'A', 'A') }, 0.4},
		{"1x2", func() (float64, bool) { return s.Internal1x2(Pair("CG"), Pair("CG"), 'A', 'A', 'G') }, 2.2},
		{"2x2", func() (float64, bool) { return s.Internal2x2(Pair("CG"), Pair("CG"), Pair("AG"), Pair("GA")) }, 0.5},
		{"2x3", func() (float64, bool) { return s.Mismatch2x3(Pair("CG"), Pair("GA")) }, -1.1},
		{"other", func() (float64, bool) { return s.MismatchOther(Pair("AG")) }, -0.3},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			v, ok := c.got()
			if !ok || v != c.want {
				t.Fatalf("got %v (ok=%v), want %v", v, ok, c.want)
			}
		})
	}
}

func TestParseYAMLWithoutInheritStartsEmpty(t *testing.T) {
	s, err := ParseYAML(strings.NewReader("bulge_init:\n  1: 3.0\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if _, ok := s.Stack(Pair("AU"), Pair("AU")); ok {
		t.Fatalf("empty document should not inherit stacking")
	}
	if v, ok := s.BulgeInit(1); !ok || v != 3.0 {
		t.Fatalf("BulgeInit(1) = %v, %v", v, ok)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	cases := []struct {
		name, doc, want string
	}{
		{"bad stack key", "stack:\n  \"AUC:G\": 1\n", "stack: bad key"},
		{"wrong field count", "internal_1x1:\n  \"CG:CG:A\": 1\n", "want 4 fields"},
		{"unknown table", "stacks:\n  \"AU:AU\": 1\n", "failed to parse parameters"},
		{"unknown inherit", "inherit: turner99\n", "unknown inherit"},
		{"empty", "", "empty parameter document"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseYAML(strings.NewReader(c.doc))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("want error containing %q, got %v", c.want, err)
			}
		})
	}
}
