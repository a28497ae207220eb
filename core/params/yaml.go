// core/params/yaml.go
package params

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk form of a parameter file. Composite keys are
// colon-separated: stack "AU:CG", terminal_mismatch "CG:GA",
// internal_1x1 "CG:CG:A:A", internal_1x2 "CG:CG:A:A:G",
// internal_2x2 "CG:CG:AG:GA", mismatch_2x3 "CG:GA", mismatch_other "GA".
type document struct {
	Name             string                        `yaml:"name"`
	Inherit          string                        `yaml:"inherit"`
	Stack            map[string]float64            `yaml:"stack"`
	HairpinInit      map[int]float64               `yaml:"hairpin_init"`
	BulgeInit        map[int]float64               `yaml:"bulge_init"`
	InternalInit     map[int]float64               `yaml:"internal_init"`
	TerminalMismatch map[string]float64            `yaml:"terminal_mismatch"`
	SpecialHairpins  map[string]map[string]float64 `yaml:"special_hairpins"`
	Internal1x1      map[string]float64            `yaml:"internal_1x1"`
	Internal1x2      map[string]float64            `yaml:"internal_1x2"`
	Internal2x2      map[string]float64            `yaml:"internal_2x2"`
	Mismatch2x3      map[string]float64            `yaml:"mismatch_2x3"`
	MismatchOther    map[string]float64            `yaml:"mismatch_other"`
}

// LoadYAML reads a parameter file from disk.
func LoadYAML(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	defer f.Close()
	s, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("params %s: %w", path, err)
	}
	return s, nil
}

// ParseYAML decodes a parameter document. With "inherit: default" the
// document overrides the embedded tables; otherwise it starts empty.
func ParseYAML(r io.Reader) (*Set, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty parameter document")
		}
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}

	var t Tables
	switch strings.ToLower(doc.Inherit) {
	case "", "none":
		t = Tables{}.clone()
	case "default":
		t = Default().Tables()
	default:
		return nil, fmt.Errorf("unknown inherit %q (want default or none)", doc.Inherit)
	}
	if doc.Name != "" {
		t.Name = doc.Name
	}

	for k, v := range doc.HairpinInit {
		t.HairpinInit[k] = v
	}
	for k, v := range doc.BulgeInit {
		t.BulgeInit[k] = v
	}
	for k, v := range doc.InternalInit {
		t.InternalInit[k] = v
	}

	for k, v := range doc.Stack {
		f, err := splitKey("stack", k, 2, 2)
		if err != nil {
			return nil, err
		}
		t.Stack[StackKey{f.pair(0), f.pair(1)}] = v
	}
	for k, v := range doc.TerminalMismatch {
		f, err := splitKey("terminal_mismatch", k, 2, 2)
		if err != nil {
			return nil, err
		}
		t.TerminalMismatch[MismatchKey{f.pair(0), f.pair(1)}] = v
	}
	for k, m := range doc.SpecialHairpins {
		cp, err := ParsePair(k)
		if err != nil {
			return nil, fmt.Errorf("special_hairpins: %w", err)
		}
		if t.SpecialHairpins[cp] == nil {
			t.SpecialHairpins[cp] = map[string]float64{}
		}
		for loop, v := range m {
			t.SpecialHairpins[cp][strings.ToUpper(loop)] = v
		}
	}
	for k, v := range doc.Internal1x1 {
		f, err := splitKey("internal_1x1", k, 2, 2, 1, 1)
		if err != nil {
			return nil, err
		}
		t.Internal1x1[Loop1x1Key{f.pair(0), f.pair(1), f[2][0], f[3][0]}] = v
	}
	for k, v := range doc.Internal1x2 {
		f, err := splitKey("internal_1x2", k, 2, 2, 1, 1, 1)
		if err != nil {
			return nil, err
		}
		t.Internal1x2[Loop1x2Key{f.pair(0), f.pair(1), f[2][0], f[3][0], f[4][0]}] = v
	}
	for k, v := range doc.Internal2x2 {
		f, err := splitKey("internal_2x2", k, 2, 2, 2, 2)
		if err != nil {
			return nil, err
		}
		t.Internal2x2[Loop2x2Key{f.pair(0), f.pair(1), f.pair(2), f.pair(3)}] = v
	}
	for k, v := range doc.Mismatch2x3 {
		f, err := splitKey("mismatch_2x3", k, 2, 2)
		if err != nil {
			return nil, err
		}
		t.Mismatch2x3[MismatchKey{f.pair(0), f.pair(1)}] = v
	}
	for k, v := range doc.MismatchOther {
		f, err := splitKey("mismatch_other", k, 2)
		if err != nil {
			return nil, err
		}
		t.MismatchOther[f.pair(0)] = v
	}
	return New(t), nil
}

type keyFields []string

func (f keyFields) pair(i int) BasePair { return BasePair{f[i][0], f[i][1]} }

// splitKey splits a colon key and checks each field's letter count.
func splitKey(table, key string, widths ...int) (keyFields, error) {
	parts := strings.Split(strings.ToUpper(key), ":")
	if len(parts) != len(widths) {
		return nil, fmt.Errorf("%s: bad key %q: want %d fields, got %d", table, key, len(widths), len(parts))
	}
	for i, p := range parts {
		if len(p) != widths[i] {
			return nil, fmt.Errorf("%s: bad key %q: field %d must be %d letters", table, key, i+1, widths[i])
		}
	}
	return keyFields(parts), nil
}
