// core/stfile/fields.go
package stfile

import (
	"fmt"
	"strconv"
	"strings"

	"bprna-core/params"
	"bprna-core/structure"
)

// ParseSpan parses "45..68".
func ParseSpan(s string) (structure.Span, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok {
		return structure.Span{}, fmt.Errorf("span %q: want start..stop", s)
	}
	start, err1 := strconv.Atoi(a)
	stop, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil {
		return structure.Span{}, fmt.Errorf("span %q: bad integer", s)
	}
	return structure.Span{Start: start, Stop: stop}, nil
}

// ParseIndexPair parses "(45,68)".
func ParseIndexPair(s string) (five, three int, err error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "("), ")")
	a, b, ok := strings.Cut(inner, ",")
	if !ok {
		return 0, 0, fmt.Errorf("index pair %q: want (i,j)", s)
	}
	five, err1 := strconv.Atoi(strings.TrimSpace(a))
	three, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("index pair %q: bad integer", s)
	}
	return five, three, nil
}

// ParseBasePair parses "A:G".
func ParseBasePair(s string) (params.BasePair, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(a) != 1 || len(b) != 1 {
		return params.BasePair{}, fmt.Errorf("base pair %q: want X:Y", s)
	}
	return params.BasePair{Five: a[0], Three: b[0]}, nil
}

// ExtractSequence keeps only the letters of a quoted sequence field,
// preserving case: `"GCaA"` → "GCaA".
func ExtractSequence(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParsePK extracts the pseudoknot id from an annotation such as "PK{1}".
func ParsePK(s string) (string, bool) {
	if !strings.HasPrefix(s, "PK{") || !strings.HasSuffix(s, "}") {
		return "", false
	}
	return s[3 : len(s)-1], true
}

func parseClosing(idx, bases string) (structure.Closing, error) {
	i, j, err := ParseIndexPair(idx)
	if err != nil {
		return structure.Closing{}, err
	}
	bp, err := ParseBasePair(bases)
	if err != nil {
		return structure.Closing{}, err
	}
	return structure.Closing{Pair: bp, Five: i, Three: j}, nil
}

// parseHeaderInt reads the integer after a directive, tolerating a
// trailing comma ("#Length: 118,").
func parseHeaderInt(v string) (int, error) {
	v = strings.TrimRight(strings.TrimSpace(v), ",")
	return strconv.Atoi(strings.TrimSpace(v))
}
