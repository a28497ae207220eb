// internal/app/commands.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bprna-core/structure"
	"bprna/internal/output"
	"bprna/internal/pretty"
	"bprna/internal/report"
	"bprna/internal/shell"
	"bprna/internal/writers"
	"bprna/pkg/api"
)

const historyFile = ".bprna_history"

func (e *env) reportConfig() report.Config {
	return report.Config{Threads: e.cfg.Threads, Options: e.opt}
}

func (e *env) writeDoc(d writers.Document) error {
	return outputErr(writers.WriteDoc(e.out, e.cfg.Output, d))
}

// lookup resolves a label, mapping a missing or malformed one to a usage error.
func lookup(s *structure.Structure, label string) (structure.Component, error) {
	c, err := s.Component(label)
	if err != nil {
		return nil, withCode(ExitUsage, err)
	}
	return c, nil
}

func newSummaryCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE.st",
		Short: "Descriptors, per-kind counts and total energy of a structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			sum, err := report.Summarize(cmd.Context(), e.reportConfig(), s)
			if err != nil {
				return err
			}
			v := output.ToAPISummary(args[0], sum)
			return e.writeDoc(writers.Document{
				Value: v,
				Text:  func(w io.Writer) error { return output.WriteSummaryText(w, v) },
			})
		},
	}
}

func newComponentsCmd(e *env) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:     "components FILE.st",
		Aliases: []string{"ls"},
		Short:   "List every record with its spans, sequences and neighbors",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			want := structure.KindUnknown
			if kind != "" {
				if want = structure.ParseKind(kind); want == structure.KindUnknown {
					return withCode(ExitUsage, fmt.Errorf("--kind %q: unknown component kind", kind))
				}
			}
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			var list []structure.Component
			for _, c := range s.Components() {
				if want == structure.KindUnknown || c.Kind() == want {
					list = append(list, c)
				}
			}
			return outputErr(writers.WriteComponents(e.out, e.cfg.Output, e.cfg.Header, output.ToAPIComponents(s, list)))
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "only records of this kind (stem, hairpin, bulge, internal-loop, multiloop, external-loop, end, ncbp)")
	return cmd
}

func newEnergyCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energy FILE.st",
		Short: "Free energy of every stem, hairpin, bulge and internal loop",
		Long: `Evaluates every stem, hairpin, bulge and internal loop concurrently and
writes one row per record. A record whose energy is undefined under the
active parameter tables is reported with an error column; it does not stop
the run. Exits 1 when the file has nothing to evaluate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			return e.runEnergy(cmd.Context(), s, args[0])
		},
	}
	cmd.Flags().Bool("sort", false, "write rows in file order instead of completion order")
	bindFlags(e.v, cmd.Flags(), "sort")
	return cmd
}

func (e *env) runEnergy(parent context.Context, s *structure.Structure, path string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	in, writeErr := writers.StartEnergyWriter(e.out, e.cfg.Output, e.cfg.Sort, e.cfg.Header, 64)
	var total, failed int
	perr := report.ForEachEnergy(ctx, e.reportConfig(), s, func(r report.Result) error {
		total++
		if !r.OK() {
			failed++
			e.log.Warn("energy undefined", "label", r.Label, "err", r.Err)
		}
		select {
		case in <- r:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(in)

	if err := outputErr(<-writeErr); err != nil {
		return err
	}
	if perr != nil {
		return perr
	}
	if total == 0 {
		return withCode(ExitNoResult, fmt.Errorf("%s: no stems, hairpins, bulges or internal loops to evaluate", path))
	}
	e.log.Debug("energy evaluated", "path", path, "records", total, "failed", failed)
	return nil
}

func newNeighborsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors FILE.st LABEL",
		Short: "Records flanking LABEL (outer and inner pairs for stems and internal loops)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			label := args[1]
			nb, err := s.Neighbors(label)
			if err != nil {
				return withCode(ExitUsage, err)
			}
			v := make([]api.NeighborsV1, len(nb))
			for i, n := range nb {
				v[i] = api.NeighborsV1{FivePrime: n.FivePrime, ThreePrime: n.ThreePrime}
			}
			return e.writeDoc(writers.Document{
				Value: v,
				Text:  func(w io.Writer) error { return output.WriteNeighborsText(w, label, v, e.cfg.Header) },
			})
		},
	}
}

func newShowCmd(e *env) *cobra.Command {
	var opt = pretty.DefaultOptions
	var all bool
	cmd := &cobra.Command{
		Use:   "show FILE.st LABEL",
		Short: "Draw LABEL against the sequence and dot-bracket",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			c, err := lookup(s, args[1])
			if err != nil {
				return err
			}
			opt.OnlyMarked = !all
			return e.writeDoc(writers.Document{
				Value: output.ToAPIComponent(s, c),
				Text: func(w io.Writer) error {
					_, err := io.WriteString(w, pretty.Render(s, c, opt))
					return err
				},
			})
		},
	}
	cmd.Flags().IntVar(&opt.Width, "width", opt.Width, "columns per block")
	cmd.Flags().BoolVar(&all, "all", false, "draw every block, not only those touching LABEL")
	return cmd
}

func newExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE.st",
		Short: "Whole structure: descriptors, component array and every record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			v := output.ToAPIStructure(s)
			return e.writeDoc(writers.Document{
				Value: v,
				Text:  func(w io.Writer) error { return output.WriteStructureText(w, v, e.cfg.Header) },
			})
		},
	}
}

func newShellCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "shell FILE.st",
		Short: "Interactive explorer over one structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.load(args[0])
			if err != nil {
				return err
			}
			hist := ""
			if home, err := os.UserHomeDir(); err == nil {
				hist = filepath.Join(home, historyFile)
			}
			return shell.New(s, e.opt, e.stdout).Run(cmd.Context(), hist)
		},
	}
}
