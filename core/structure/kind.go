// core/structure/kind.go
package structure

import (
	"strings"
	"unicode"
)

// Kind tags a component label's sigil. KindUnknown is an explicit value so
// that unrecognized labels can be inspected instead of silently dropped.
type Kind int

const (
	KindUnknown Kind = iota
	KindStem
	KindHairpin
	KindBulge
	KindInternalLoop
	KindMultiLoop
	KindExternalLoop
	KindEnd
	KindNCBP
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindStem:         "stem",
	KindHairpin:      "hairpin",
	KindBulge:        "bulge",
	KindInternalLoop: "internal-loop",
	KindMultiLoop:    "multiloop",
	KindExternalLoop: "external-loop",
	KindEnd:          "end",
	KindNCBP:         "ncbp",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Evaluable reports whether the kind has an energy model.
func (k Kind) Evaluable() bool {
	switch k {
	case KindStem, KindHairpin, KindBulge, KindInternalLoop:
		return true
	}
	return false
}

// ParseKind maps a kind name ("stem", "internal-loop", ...) back to a Kind.
// Single-letter sigils (S, H, B, I, M, X, E) are accepted too.
func ParseKind(name string) Kind {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kindNames {
		if n == s {
			return Kind(k)
		}
	}
	switch n {
	case "s":
		return KindStem
	case "h":
		return KindHairpin
	case "b":
		return KindBulge
	case "i", "internal", "internalloop":
		return KindInternalLoop
	case "m", "multi":
		return KindMultiLoop
	case "x", "external", "externalloop":
		return KindExternalLoop
	case "e":
		return KindEnd
	}
	return KindUnknown
}

// KindOf classifies a component label by its leading sigil. Multiloop and
// internal-loop labels may be given with or without their ".n" suffix.
func KindOf(label string) Kind {
	if strings.HasPrefix(label, "NCBP") {
		return KindNCBP
	}
	if label == "" {
		return KindUnknown
	}
	switch label[0] {
	case 'S':
		if len(label) > 1 && unicode.IsDigit(rune(label[1])) {
			return KindStem
		}
	case 'H':
		return KindHairpin
	case 'B':
		return KindBulge
	case 'I':
		return KindInternalLoop
	case 'M':
		return KindMultiLoop
	case 'X':
		return KindExternalLoop
	case 'E':
		return KindEnd
	}
	return KindUnknown
}

// ParentLabel strips a subunit suffix: "I3.2" → "I3", "M1.4" → "M1".
func ParentLabel(label string) string {
	if i := strings.IndexByte(label, '.'); i >= 0 {
		return label[:i]
	}
	return label
}
