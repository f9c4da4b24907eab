// Package cmd provides the CLI commands for meshidx.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/meshidx/internal/config"
	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
	"github.com/Aman-CERP/meshidx/internal/indexfile"
	"github.com/Aman-CERP/meshidx/internal/logging"
	"github.com/Aman-CERP/meshidx/internal/output"
	"github.com/Aman-CERP/meshidx/internal/profiling"
	"github.com/Aman-CERP/meshidx/pkg/version"
)

// app carries per-invocation state shared by subcommands.
type app struct {
	debug      bool
	quiet      bool
	jsonErrors bool
	configDir  string
	cpuProfile string
	memProfile string

	cfg      *config.Config
	logger   *slog.Logger
	cleanup  func()
	profiler *profiling.Profiler
}

// close stops profiling and releases the debug log file.
func (a *app) close() error {
	var err error
	if a.profiler != nil {
		err = a.profiler.Stop()
		a.profiler = nil
	}
	if a.cleanup != nil {
		a.logger.Debug("debug logging stopped")
		a.cleanup()
		a.cleanup = nil
	}
	return err
}

// setup loads configuration and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if p := profiling.NewProfiler(a.cpuProfile, a.memProfile); p.Enabled() {
		if err := p.Start(); err != nil {
			return err
		}
		a.profiler = p
	}

	if a.debug {
		lc := logging.DebugConfig()
		lc.Echo = cmd.ErrOrStderr()
		logger, cleanup, err := logging.Setup(lc)
		if err != nil {
			return meshErrors.New(meshErrors.ErrCodeIOFailure, "failed to setup debug logging", err)
		}
		a.logger = logger
		a.cleanup = cleanup
		a.logger.Info("debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.Group("build", version.LogAttrs()...),
			slog.String("command", cmd.CommandPath()))
		return nil
	}

	a.logger = logging.NewConsole(cmd.ErrOrStderr(), cfg.Logging.Level)
	return nil
}

// writerOptions builds index file options from the loaded config.
func (a *app) writerOptions() (indexfile.Options, error) {
	perm, err := a.cfg.FileMode()
	if err != nil {
		return indexfile.Options{}, meshErrors.ConfigError(err.Error(), err)
	}
	return indexfile.Options{
		Atomic:  a.cfg.Output.Atomic,
		Lock:    a.cfg.Output.Lock,
		LockDir: indexfile.DefaultLockDir(),
		Perm:    perm,
	}, nil
}

// status returns the stderr status writer.
func (a *app) status(w io.Writer) *output.Writer {
	return output.New(w, output.WithQuiet(a.quiet))
}

// NewRootCmd creates the root command for the meshidx CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meshidx",
		Short: "Generate vertex-index files for visualizer mesh topologies",
		Long: `meshidx writes the triangle and point index lists that the visualizer
pairs with its vertex buffers: a spectrogram grid, a circular fan,
a point cloud and a spiral ribbon.

Each topology takes a sample size (row width) and a history (row count)
and writes one record per line.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.SetVersionTemplate("meshidx version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return meshErrors.ValidationError(err.Error(), err).
			WithSuggestion("run with --help for usage")
	})

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to ~/.meshidx/logs/")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Suppress status output")
	cmd.PersistentFlags().BoolVar(&a.jsonErrors, "json-errors", false, "Report failures on stderr as a JSON object")
	cmd.PersistentFlags().StringVar(&a.configDir, "config-dir", ".", "Directory to search for .meshidx.yaml")
	cmd.PersistentFlags().StringVar(&a.cpuProfile, "cpuprofile", "", "Write a CPU profile to `file`")
	cmd.PersistentFlags().StringVar(&a.memProfile, "memprofile", "", "Write a heap profile to `file` on exit")

	for _, name := range topologyCommands {
		cmd.AddCommand(newTopologyCmd(a, name))
	}
	cmd.AddCommand(newAllCmd(a))
	cmd.AddCommand(newTopologiesCmd())
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with the process arguments and reports
// any failure on stderr.
func Execute(ctx context.Context) error {
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil && a.logger != nil {
		a.logger.Debug("command failed", slog.Any("error", meshErrors.FormatForLog(err)))
	}
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		a.reportError(stderr, err)
	}
	return err
}

// reportError prints err for the user, as JSON when --json-errors is set.
func (a *app) reportError(w io.Writer, err error) {
	if !a.jsonErrors {
		_, _ = fmt.Fprint(w, meshErrors.FormatForCLI(err))
		return
	}
	data, jerr := meshErrors.FormatJSON(err)
	if jerr != nil {
		_, _ = fmt.Fprint(w, meshErrors.FormatForCLI(err))
		return
	}
	_, _ = fmt.Fprintf(w, "%s\n", data)
}

// requireInt returns the value of a required int flag, or MissingArgument.
func requireInt(cmd *cobra.Command, name string) (int, error) {
	if !cmd.Flags().Changed(name) {
		return 0, meshErrors.MissingArgument(name)
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, meshErrors.ValidationError(fmt.Sprintf("invalid --%s", name), err)
	}
	return v, nil
}
