// Package cli implements the msgcore command line.
package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/msgcore/internal/config"
	"github.com/roach88/msgcore/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Config    string
	Process   string
	StorePath string
	EngineDir string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the msgcore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "msgcore",
		Short: "msgcore - cross-process delivery core",
		Long: `Inspect and drive the delivery core shared by the main app and its
extensions: replay the change log, inspect cursors and history, send and
open return receipts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError, ErrCodeBadInput,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to msgcore.yaml")
	cmd.PersistentFlags().StringVar(&opts.Process, "process", "", "process kind (main_app|notification_extension|share_extension)")
	cmd.PersistentFlags().StringVar(&opts.StorePath, "db", "", "path to the shared store (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.EngineDir, "engine-dir", "", "engine directory holding cursors (overrides config)")

	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewCursorCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewReceiptCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewScenarioCommand(opts))

	return cmd
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func (o *RootOptions) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.Config != "" {
		var err error
		if cfg, err = config.Load(o.Config); err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, ErrCodeConfig, "failed to load config", err)
		}
	}
	if o.Process != "" {
		cfg.Process = ir.ProcessKind(o.Process)
	}
	if o.StorePath != "" {
		cfg.StorePath = o.StorePath
	}
	if o.EngineDir != "" {
		cfg.EngineDir = o.EngineDir
	}
	if err := cfg.Process.Validate(); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, ErrCodeConfig, "invalid process", err)
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
