package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/rstn/internal/config"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg  *config.Config
	log  *slog.Logger
	diag *diagPrinter
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "rstnc [file.rstn]",
		Short: "rstn compiler",
		Long: `rstnc checks rstn programs and translates them to Python.

Given a file, rstnc parses and type-checks it and prints the generated
Python code. The subcommands expose the individual front end stages.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.gen(cmd.OutOrStdout(), args[0], "")
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./rstn.toml if present)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log each compiler phase")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(
		a.tokensCmd(),
		a.astCmd(),
		a.checkCmd(),
		a.symbolsCmd(),
		a.genCmd(),
		versionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger and the
// diagnostic printer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.noColor {
		cfg.Output.Color = false
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	if a.verbose {
		level = slog.LevelDebug
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.diag = newDiagPrinter(cmd.ErrOrStderr(), cfg.Output.Color)
	a.log.Debug("config loaded", "path", a.cfgFile, "resolution", cfg.Check.Resolution, "all_errors", cfg.Check.AllErrors)
	return nil
}
