package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vegasq/tablemerge/internal/config"
	"github.com/vegasq/tablemerge/internal/logging"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger zerolog.Logger
	logOut io.Closer

	stdout io.Writer
	stderr io.Writer

	// Global flags
	configFile string
	verbose    bool
	quiet      bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		logger: zerolog.Nop(),
		stdout: stdout,
		stderr: stderr,
	}
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if a.logOut != nil {
		_ = a.logOut.Close()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tablemerge",
		Short: "Join two tabular files on a shared column",
		Long: `tablemerge left-joins a primary file with a secondary file on a column
both files share.

Every primary row whose key matches a secondary row is merged with the first
such row; the rest are reported as unmatched. Keys are compared as trimmed
text, so " 42" in a CSV matches the number 42 in a spreadsheet.

Supported inputs: csv, tsv, xlsx, xlsm, parquet, json and jsonl.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./.tablemerge.yaml or $HOME/.tablemerge.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	flags.String("log-format", "auto", "log format: auto, console or json")
	flags.String("encoding", "", "text encoding of csv/tsv inputs, e.g. windows-1252 (default utf-8)")
	a.bindFlag(flags, config.KeyLogFormat, "log-format")
	a.bindFlag(flags, config.KeyEncoding, "encoding")

	root.AddCommand(
		a.mergeCommand(),
		a.columnsCommand(),
		a.inspectCommand(),
		a.versionCommand(),
	)
	return root
}

// bindFlag makes an explicitly set flag override the config key.
func (a *app) bindFlag(flags *pflag.FlagSet, key, name string) {
	if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", name, err))
	}
}

// setup loads configuration and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose && a.quiet {
		return fmt.Errorf("--verbose and --quiet cannot be used together")
	}
	if err := config.Init(a.v, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if err := a.configureLogging(); err != nil {
		return err
	}
	cmd.SetContext(logging.WithLogger(cmd.Context(), &a.logger))

	if cfg.ConfigFile != "" {
		a.logger.Debug().Str("file", cfg.ConfigFile).Msg("using config file")
	}
	a.logger.Debug().Str("command", cmd.Name()).Msg("starting")
	return nil
}

func (a *app) configureLogging() error {
	level := a.cfg.LogLevel
	switch {
	case a.verbose:
		level = "debug"
	case a.quiet:
		level = "error"
	}

	lc := &logging.Config{
		Level:   level,
		Format:  a.cfg.LogFormat,
		Output:  a.cfg.LogOutput,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
	if out := strings.ToLower(a.cfg.LogOutput); out == "" || out == "stderr" {
		lc.Writer = a.stderr
	}
	logger, closer, err := logging.Configure(lc)
	if err != nil {
		return err
	}
	a.logger, a.logOut = logger, closer
	return nil
}
