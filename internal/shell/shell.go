// Package shell is an interactive explorer over one loaded structure.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"bprna-core/structure"
	"bprna/internal/output"
	"bprna/internal/pretty"
)

const prompt = "bprna> "

const help = `commands:
  list [kind]      records, optionally of one kind (stem, hairpin, ...)
  show LABEL       draw a record against the molecule
  energy LABEL     free energy of a stem, hairpin, bulge or internal loop
  neighbors LABEL  flanking records
  at POS           record owning a 1-based position
  info             descriptors and counts
  help
  quit`

var commands = []string{"list", "show", "energy", "neighbors", "at", "info", "help", "quit", "exit"}

// Session answers explorer commands about s.
type Session struct {
	s   *structure.Structure
	opt structure.EnergyOptions
	out io.Writer
}

func New(s *structure.Structure, opt structure.EnergyOptions, out io.Writer) *Session {
	return &Session{s: s, opt: opt, out: out}
}

// Exec runs one command line. quit is set for quit/exit.
func (x *Session) Exec(line string) (quit bool, err error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false, nil
	}
	arg := func() (string, error) {
		if len(f) < 2 {
			return "", fmt.Errorf("%s: missing argument", f[0])
		}
		return f[1], nil
	}

	switch strings.ToLower(f[0]) {
	case "quit", "exit":
		return true, nil
	case "help", "?":
		_, err = fmt.Fprintln(x.out, help)
	case "info":
		err = x.info()
	case "list", "ls":
		kind := structure.KindUnknown
		if len(f) > 1 {
			if kind = structure.ParseKind(f[1]); kind == structure.KindUnknown {
				return false, fmt.Errorf("list: unknown kind %q", f[1])
			}
		}
		err = x.list(kind)
	case "show":
		var label string
		if label, err = arg(); err == nil {
			err = x.show(label)
		}
	case "energy":
		var label string
		if label, err = arg(); err == nil {
			err = x.energy(label)
		}
	case "neighbors", "nb":
		var label string
		if label, err = arg(); err == nil {
			err = x.neighbors(label)
		}
	case "at":
		var p string
		if p, err = arg(); err == nil {
			err = x.at(p)
		}
	default:
		err = fmt.Errorf("unknown command %q (try help)", f[0])
	}
	return false, err
}

func (x *Session) info() error {
	_, err := fmt.Fprintf(x.out, "%s  length %d  page %d\n", x.s, x.s.Length(), x.s.PageNumber())
	if err != nil {
		return err
	}
	for _, c := range []struct {
		k structure.Kind
		n int
	}{
		{structure.KindStem, x.s.NumStems()},
		{structure.KindHairpin, x.s.NumHairpins()},
		{structure.KindBulge, x.s.NumBulges()},
		{structure.KindInternalLoop, x.s.NumInternalLoops()},
		{structure.KindMultiLoop, x.s.NumMultiLoops()},
		{structure.KindExternalLoop, x.s.NumExternalLoops()},
		{structure.KindEnd, x.s.NumEnds()},
		{structure.KindNCBP, x.s.NumNCBPs()},
	} {
		if _, err := fmt.Fprintf(x.out, "  %-14s %d\n", c.k, c.n); err != nil {
			return err
		}
	}
	return nil
}

func (x *Session) list(kind structure.Kind) error {
	var rows []string
	for _, c := range x.s.Components() {
		if kind != structure.KindUnknown && c.Kind() != kind {
			continue
		}
		rows = append(rows, output.FormatComponentRowTSV(output.ToAPIComponent(x.s, c)))
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(x.out, "(none)")
		return err
	}
	_, err := fmt.Fprintln(x.out, strings.Join(rows, "\n"))
	return err
}

func (x *Session) show(label string) error {
	c, err := x.s.Component(label)
	if err != nil {
		return err
	}
	_, err = io.WriteString(x.out, pretty.Render(x.s, c, pretty.DefaultOptions))
	return err
}

func (x *Session) energy(label string) error {
	c, err := x.s.Component(label)
	if err != nil {
		return err
	}
	ev, ok := c.(structure.Evaluable)
	if !ok {
		return fmt.Errorf("%s: no energy model for %s records", label, c.Kind())
	}
	e, err := ev.Energy(x.opt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(x.out, "%s\t%s kcal/mol\n", label, output.FormatEnergy(e))
	return err
}

func (x *Session) neighbors(label string) error {
	nb, err := x.s.Neighbors(label)
	if err != nil {
		return err
	}
	for i, n := range nb {
		side := ""
		if len(nb) == 2 {
			side = [2]string{"outer ", "inner "}[i]
		}
		if _, err := fmt.Fprintf(x.out, "%s%s\n", side, n); err != nil {
			return err
		}
	}
	return nil
}

func (x *Session) at(p string) error {
	pos, err := strconv.Atoi(p)
	if err != nil {
		return fmt.Errorf("at: position %q: bad integer", p)
	}
	label, err := x.s.At(pos)
	if err != nil {
		return err
	}
	if label == "" {
		label = "(unassigned)"
	}
	_, err = fmt.Fprintln(x.out, label)
	return err
}

// Complete offers command names for the first word and record labels after.
func (x *Session) Complete(line string) []string {
	var cands []string
	f := strings.Fields(line)
	if len(f) == 0 || (len(f) == 1 && !strings.HasSuffix(line, " ")) {
		cands = commands
	} else {
		for _, c := range x.s.Components() {
			cands = append(cands, c.Label())
		}
	}
	prefix, word := "", line
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		prefix, word = line[:i+1], line[i+1:]
	}
	var out []string
	for _, c := range cands {
		if strings.HasPrefix(c, word) {
			out = append(out, prefix+c)
		}
	}
	sort.Strings(out)
	return out
}

// Run reads commands until quit, EOF, Ctrl-C or ctx cancellation. History
// is loaded from and saved to historyPath when it is non-empty.
func (x *Session) Run(ctx context.Context, historyPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(x.Complete)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for ctx.Err() == nil {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(x.out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		quit, err := x.Exec(line)
		if err != nil {
			fmt.Fprintf(x.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return ctx.Err()
}
