// internal/app/root.go
package app

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"bprna-core/params"
	"bprna-core/stfile"
	"bprna-core/structure"
	"bprna/internal/config"
	"bprna/internal/logging"
	"bprna/internal/version"
)

// env is the per-invocation state shared by the commands.
type env struct {
	stdout io.Writer // unbuffered, for the interactive shell
	out    io.Writer
	stderr io.Writer

	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     *slog.Logger
	opt     structure.EnergyOptions
}

func (e *env) logger() *slog.Logger {
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(e.stderr, nil))
	}
	return e.log
}

// setup merges flags, environment and config file, then builds the logger
// and energy options.
func (e *env) setup(cmd *cobra.Command) error {
	if cmd.Flags().Changed("no-header") {
		noHeader, _ := cmd.Flags().GetBool("no-header")
		e.v.Set("header", !noHeader)
	}
	cfg, err := config.Load(e.v, e.cfgFile)
	if err != nil {
		return withCode(ExitUsage, err)
	}
	e.cfg = cfg

	log, err := logging.New(e.stderr, cfg.LogLevel, cfg.Quiet)
	if err != nil {
		return withCode(ExitUsage, err)
	}
	e.log = log

	e.opt = structure.EnergyOptions{Lenient: cfg.Lenient, Intermolecular: cfg.Intermolecular}
	if cfg.Params != "" {
		set, err := params.LoadYAML(cfg.Params)
		if err != nil {
			return withCode(ExitUsage, err)
		}
		e.opt.Params = set
		e.log.Debug("parameter tables loaded", "path", cfg.Params, "name", set.Name())
	}
	return nil
}

// load reads one structure file.
func (e *env) load(path string) (*structure.Structure, error) {
	s := structure.New()
	st, err := stfile.Loader{Logger: e.log}.LoadInto(s, path)
	if err != nil {
		return nil, withCode(ExitUsage, err)
	}
	if len(st.Skipped) > 0 {
		e.log.Info("skipped unrecognized lines", "path", path, "lines", st.Skipped)
	}
	return s, nil
}

// bindFlags makes each named flag a viper source for the key of the same name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			panic("bind flag " + name + ": " + err.Error())
		}
	}
}

func newRootCmd(e *env) *cobra.Command {
	e.v = config.New()

	root := &cobra.Command{
		Use:   "bprna",
		Short: "Inspect bpRNA structure-type (.st) files and score their loops and helices",
		Long: `bprna reads the structure-type files written by bpRNA, resolves which
structural element owns each nucleotide, and evaluates nearest-neighbor free
energies (Turner 2004) for stems, hairpins, bulges and internal loops.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return e.setup(cmd) },
	}
	root.SetVersionTemplate("bprna version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&e.cfgFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.BoolP("quiet", "q", false, "log errors only")
	pf.StringP("output", "o", "text", "output format: text, json, jsonl, msgpack")
	pf.Bool("no-header", false, "omit the header row in text output")
	pf.String("params", "", "YAML parameter tables (default: embedded Turner 2004 subset)")
	pf.Bool("lenient", false, "substitute zero for missing table entries")
	pf.Bool("intermolecular", false, "add the duplex initiation term to stem energies")
	pf.IntP("threads", "t", 0, "evaluation workers (0 = all CPUs)")

	bindFlags(e.v, pf, "log-level", "quiet", "output", "params", "lenient", "intermolecular", "threads")

	root.AddCommand(
		newSummaryCmd(e),
		newComponentsCmd(e),
		newEnergyCmd(e),
		newNeighborsCmd(e),
		newShowCmd(e),
		newExportCmd(e),
		newShellCmd(e),
	)
	return root
}
