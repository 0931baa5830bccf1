package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/clodeb/logoexport"
	"github.com/clodeb/logoexport/config"
	"github.com/clodeb/logoexport/handler/progress"
	"github.com/clodeb/logoexport/version"
	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configFile string
	rootDir    string
	variant    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   version.Name,
	Short: "resize the brand logos into favicons, icons and landing logos",
	Long: `logoexport resizes the full logo and the icon-only logo into the fixed set of
favicons, icons and landing-page logos, centering each on a transparent canvas.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if f, ok := cmd.OutOrStdout().(interface{ Fd() uintptr }); ok && !term.IsTerminal(int(f.Fd())) {
			color.NoColor = true
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeLog, err := newExporter(cmd)
		if err != nil {
			return err
		}
		defer closeLog()
		_, err = e.Run(cmd.Context())
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default .logoexport.yml in the root directory)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "directory sources and outputs are resolved against (default current directory)")
	rootCmd.PersistentFlags().StringVarP(&variant, "variant", "", "", fmt.Sprintf("output table %v (default %s)", logoexport.Variants(), logoexport.DefaultVariant))
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "", false, "debug logging and stack traces on error")
}

// execute runs the root command and returns the process exit status.
func execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", color.RedString("error:"), err)
		if debug {
			b, jerr := json.MarshalIndent(errors.StackTraces(err), "", "  ")
			if jerr == nil {
				_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), string(b))
			}
		}
		return 1
	}
	return 0
}

// newExporter builds an exporter from the config file and flags. Flags win
// over the config file. The returned func closes the log file, if any.
func newExporter(cmd *cobra.Command) (_ *logoexport.Exporter, _ func() error, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	noop := func() error { return nil }

	cfg, err := config.Load(configFile, rootDir)
	if err != nil {
		return nil, noop, err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handlers := []slog.Handler{progress.New(cmd.OutOrStdout(), level)}
	closeLog := noop
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closeLog = f.Close
	}
	logger := slog.New(slogmulti.Fanout(handlers...))
	if p := cfg.Path(); p != "" {
		logger.Debug("loaded config", slog.String("path", p))
	}

	opts := cfg.Options()
	if rootDir != "" {
		opts = append(opts, logoexport.WithRoot(rootDir))
	}
	if variant != "" {
		opts = append(opts, logoexport.WithVariant(variant))
	}
	opts = append(opts, logoexport.WithLogger(logger))

	e, err := logoexport.New(opts...)
	if err != nil {
		_ = closeLog()
		return nil, noop, err
	}
	return e, closeLog, nil
}
