// core/stfile/loader.go

// Package stfile reads bpRNA structure-type (.st) files into a
// structure.Structure.
//
// A file has "#" header directives (#Name, #Length, #PageNumber; others are
// ignored), four mandatory descriptor lines (sequence, dot-bracket,
// structure array, alternate notation) and then one record per line,
// dispatched on the record label's sigil.
package stfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bprna-core/structure"
)

// Stats summarizes one load.
type Stats struct {
	Lines   int   // physical lines read
	Records int   // body records stored
	Skipped []int // 1-based line numbers of unrecognized body lines
}

// Loader reads .st files. The zero value is ready to use and logs nothing.
type Loader struct {
	Logger *slog.Logger
}

func (l Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Load reads path into a new Structure with adjacency resolved.
func Load(path string) (*structure.Structure, error) {
	s := structure.New()
	if _, err := (Loader{}).LoadInto(s, path); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse reads an already-open .st stream.
func Parse(r io.Reader) (*structure.Structure, error) {
	s := structure.New()
	if _, err := (Loader{}).ParseInto(s, r); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadInto replaces the contents of s with the file at path. On any error s
// is left empty.
func (l Loader) LoadInto(s *structure.Structure, path string) (Stats, error) {
	s.Reset()
	if !strings.HasSuffix(path, ".st") {
		return Stats{}, fmt.Errorf("%s: %w", path, ErrFileType)
	}
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	st, err := l.ParseInto(s, f)
	if err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	l.logger().Debug("structure loaded", "path", path, "name", s.Name(),
		"length", s.Length(), "records", st.Records, "skipped", len(st.Skipped))
	return st, nil
}

type line struct {
	no   int
	text string
}

// ParseInto replaces the contents of s with the records read from r. On any
// error s is left empty.
func (l Loader) ParseInto(s *structure.Structure, r io.Reader) (Stats, error) {
	s.Reset()
	st, err := l.parse(s, r)
	if err != nil {
		s.Reset()
	}
	return st, err
}

func (l Loader) parse(s *structure.Structure, r io.Reader) (Stats, error) {
	var st Stats
	log := l.logger()

	var lines []line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	for sc.Scan() {
		st.Lines++
		lines = append(lines, line{no: st.Lines, text: strings.TrimRight(sc.Text(), "\r")})
	}
	if err := sc.Err(); err != nil {
		return st, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	body, err := parseHeader(s, lines)
	if err != nil {
		return st, err
	}

	for i := 0; i < len(body); {
		ln := body[i]
		f := strings.Fields(ln.text)
		if len(f) == 0 {
			i++
			continue
		}
		label := f[0]
		consumed := 1
		var err error

		switch classify(label) {
		case recStem:
			var v *structure.Stem
			if v, err = parseStem(f); err == nil {
				err = s.AddStem(v)
			}
		case recHairpin:
			var v *structure.Hairpin
			if v, err = parseHairpin(f); err == nil {
				err = s.AddHairpin(v)
			}
		case recBulge:
			var v *structure.Bulge
			if v, err = parseBulge(f); err == nil {
				err = s.AddBulge(v)
			}
		case recInternalLoop:
			consumed, err = addInternalLoop(s, body[i:])
		case recMultiLoop:
			consumed, err = addMultiLoop(s, body[i:])
		case recExternalLoop:
			var v *structure.ExternalLoop
			if v, err = parseExternalLoop(f); err == nil {
				err = s.AddExternalLoop(v)
			}
		case recEnd:
			var v *structure.End
			if v, err = parseEnd(f); err == nil {
				err = s.AddEnd(v)
			}
		case recNCBP:
			var v *structure.NCBP
			if v, err = parseNCBP(f); err == nil {
				s.AddNCBP(v)
			}
		default:
			st.Skipped = append(st.Skipped, ln.no)
			log.Debug("skipping unrecognized record", "line", ln.no, "label", label)
			i++
			continue
		}
		if err != nil {
			var re *RecordError
			if !errors.As(err, &re) {
				err = &RecordError{Line: ln.no, Label: label, Err: err}
			}
			return st, err
		}
		st.Records++
		i += consumed
	}

	if missing := s.Unassigned(); len(missing) > 0 {
		return st, fmt.Errorf("%w: %d position(s) not covered by any component, first at %d",
			ErrMalformedRecord, len(missing), missing[0])
	}
	if err := s.ResolveAdjacency(); err != nil {
		return st, err
	}
	return st, nil
}

// parseHeader consumes directives and the four descriptor lines, allocating
// the component array, and returns the remaining body lines.
func parseHeader(s *structure.Structure, lines []line) ([]line, error) {
	descriptors := []struct {
		name string
		set  func(string)
	}{
		{"sequence", s.SetSequence},
		{"dot-bracket", s.SetDotBracket},
		{"structure array", s.SetStructureArray},
		{"alternate notation", s.SetVarna},
	}
	haveLength := false
	next := 0
	i := 0
	for ; i < len(lines) && next < len(descriptors); i++ {
		ln := lines[i]
		t := strings.TrimSpace(ln.text)
		switch {
		case t == "":
			continue
		case strings.HasPrefix(t, "#Name:"):
			s.SetName(strings.TrimSpace(t[len("#Name:"):]))
		case strings.HasPrefix(t, "#Length:"):
			n, err := parseHeaderInt(t[len("#Length:"):])
			if err == nil {
				err = s.SetLength(n)
			}
			if err != nil {
				return nil, &RecordError{Line: ln.no, Label: "#Length", Err: err}
			}
			haveLength = true
		case strings.HasPrefix(t, "#PageNumber:"):
			n, err := parseHeaderInt(t[len("#PageNumber:"):])
			if err != nil {
				return nil, &RecordError{Line: ln.no, Label: "#PageNumber", Err: err}
			}
			s.SetPageNumber(n)
		case strings.HasPrefix(t, "#"):
			continue
		default:
			descriptors[next].set(t)
			next++
		}
	}
	if next < len(descriptors) {
		return nil, fmt.Errorf("%w: missing %s line", ErrIncompleteHeader, descriptors[next].name)
	}
	if !haveLength {
		if err := s.SetLength(len(s.Sequence())); err != nil {
			return nil, err
		}
	}
	return lines[i:], nil
}

// addInternalLoop joins an "I<n>.1" line with the "I<n>.2" line after it.
func addInternalLoop(s *structure.Structure, rest []line) (int, error) {
	first := strings.Fields(rest[0].text)
	parent := structure.ParentLabel(first[0])
	if len(rest) < 2 {
		return 0, &RecordError{Line: rest[0].no, Label: first[0], Err: fmt.Errorf("internal loop %s has no second half", parent)}
	}
	second := strings.Fields(rest[1].text)
	if len(second) == 0 || second[0] != parent+".2" {
		return 0, &RecordError{Line: rest[1].no, Label: first[0], Err: fmt.Errorf("internal loop %s: next line is not its second half", parent)}
	}
	h1, err := parseLoopHalf(first)
	if err != nil {
		return 0, &RecordError{Line: rest[0].no, Label: first[0], Err: err}
	}
	h2, err := parseLoopHalf(second)
	if err != nil {
		return 0, &RecordError{Line: rest[1].no, Label: second[0], Err: err}
	}
	if err := s.AddInternalLoop(structure.NewInternalLoop(parent, h1, h2)); err != nil {
		return 0, &RecordError{Line: rest[0].no, Label: first[0], Err: err}
	}
	return 2, nil
}

// addMultiLoop gathers the consecutive lines sharing the first line's
// parent label into one multiloop.
func addMultiLoop(s *structure.Structure, rest []line) (int, error) {
	parent := structure.ParentLabel(strings.Fields(rest[0].text)[0])
	m := structure.NewMultiLoop(parent)
	n := 0
	for ; n < len(rest); n++ {
		f := strings.Fields(rest[n].text)
		if len(f) == 0 || structure.ParentLabel(f[0]) != parent {
			break
		}
		u, err := parseMultiLoopUnit(f)
		if err != nil {
			return 0, &RecordError{Line: rest[n].no, Label: f[0], Err: err}
		}
		m.AddSubunit(u)
	}
	if err := s.AddMultiLoop(m); err != nil {
		return 0, &RecordError{Line: rest[0].no, Label: parent, Err: err}
	}
	return n, nil
}
