package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cespare/setcover"
	"github.com/cespare/setcover/backend"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		flags      = defaultConfig()
		configFile string
		debug      bool
	)
	cmd := &cobra.Command{
		Use:   "setcover",
		Short: "Decide Set Cover instances with a SAT solver",
		Long: `Setcover decides whether a Set Cover instance has a cover of at most k sets.

The instance file holds the universe size, the number of sets and k, each on
its own line, followed by one line per set: its size and then its elements.
The instance is encoded as CNF, written in DIMACS format to the output file,
and handed to a SAT solver. If the formula is satisfiable, the chosen sets are
printed and checked against the universe.

The default exec backend runs an external solver as
  <solver> -model -verb=<verb> <output>
and reads its verdict from the exit code (10 SAT, 20 UNSAT).`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, configFile)
			if err != nil {
				return err
			}
			if debug {
				cfg.LogLevel = "debug"
			}
			return run(cmd.Context(), cfg, stdout, stderr)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&flags.Input, "input", "i", flags.Input, "The instance file.")
	fs.StringVarP(&flags.Output, "output", "o", flags.Output, "Output file for the DIMACS format (i.e. the CNF formula).")
	fs.StringVarP(&flags.Solver, "solver", "s", flags.Solver, "The SAT solver executable used by the exec backend.")
	fs.IntVarP(&flags.Verbosity, "verb", "v", flags.Verbosity, "Verbosity of the SAT solver used (0 or 1).")
	fs.StringVar(&flags.Backend, "backend", flags.Backend, "Solver backend: exec, gophersat, gini or dpll.")
	fs.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Give up on the solver after this long (0 means never).")
	fs.StringVar(&flags.MetricsFile, "metrics-file", flags.MetricsFile, "Write Prometheus metrics to this file.")
	fs.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error.")
	fs.BoolVar(&flags.Strict, "strict", flags.Strict, "Fail on set count mismatches and on uncovered elements instead of warning.")
	fs.StringVar(&configFile, "config", "", "YAML file with settings; flags given on the command line take precedence.")
	fs.BoolVar(&debug, "debug", false, "Log at debug level, including dumps of the instance and formula.")
	return cmd
}

// resolveConfig layers the defaults, the config file and the flags that
// were actually set.
func resolveConfig(cmd *cobra.Command, flags Config, configFile string) (Config, error) {
	cfg := defaultConfig()
	if configFile != "" {
		if err := loadConfigFile(&cfg, configFile); err != nil {
			return Config{}, err
		}
	}
	overlays := []struct {
		flag  string
		apply func()
	}{
		{"input", func() { cfg.Input = flags.Input }},
		{"output", func() { cfg.Output = flags.Output }},
		{"solver", func() { cfg.Solver = flags.Solver }},
		{"verb", func() { cfg.Verbosity = flags.Verbosity }},
		{"backend", func() { cfg.Backend = flags.Backend }},
		{"timeout", func() { cfg.Timeout = flags.Timeout }},
		{"metrics-file", func() { cfg.MetricsFile = flags.MetricsFile }},
		{"log-level", func() { cfg.LogLevel = flags.LogLevel }},
		{"strict", func() { cfg.Strict = flags.Strict }},
	}
	for _, o := range overlays {
		if cmd.Flags().Changed(o.flag) {
			o.apply()
		}
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.level()}))

	inst, err := setcover.LoadInstance(cfg.Input)
	if err != nil {
		return err
	}
	solver, err := backend.New(cfg.Backend, backend.Exec{
		Binary:    cfg.Solver,
		CNFPath:   cfg.Output,
		Verbosity: cfg.Verbosity,
		Timeout:   cfg.Timeout,
	})
	if err != nil {
		return err
	}
	if cfg.Backend != "exec" {
		if cfg.Output != "" {
			solver = &backend.Tee{Path: cfg.Output, Solver: solver}
		}
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}
	}

	r := &setcover.Runner{
		Solver: solver,
		Logger: logger,
		Strict: cfg.Strict,
	}
	if cfg.MetricsFile != "" {
		r.Metrics = setcover.NewMetrics()
	}
	rep, res, runErr := r.Run(ctx, inst)
	if res != nil && len(res.Output) > 0 {
		stdout.Write(res.Output)
	}
	if rep != nil {
		if err := rep.Print(stdout); err != nil {
			return err
		}
	}
	if r.Metrics != nil {
		if err := r.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("cannot write metrics", "file", cfg.MetricsFile, "err", err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("%s: %w", cfg.Input, runErr)
	}
	return nil
}
