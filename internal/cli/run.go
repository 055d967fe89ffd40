package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/msgcore/internal/notification"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the delivery core until interrupted",
		Long: `Open the engine for one process kind, replay once, then replay after
every commit another process makes to the shared store. Notifications are
printed one per line (as JSON envelopes with --format json) and, when
bridge.redis_url is configured, forwarded to Redis.

Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(rootOpts, cmd)
		},
	}
}

func runEngine(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(err)
	}
	e, err := openEngine(cmd, cfg)
	if err != nil {
		return f.Fail(err)
	}

	out := cmd.OutOrStdout()
	sub := e.Subscribe(func(n notification.Notification) {
		if opts.Format != "json" {
			fmt.Fprintln(out, n.Name())
			return
		}
		body, err := notification.Encode(n)
		if err != nil {
			f.VerboseLog("encode %s: %v", n.Name(), err)
			return
		}
		out.Write(append(body, '\n'))
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f.VerboseLog("running as %s on %s", cfg.Process, cfg.StorePath)
	runErr := e.Run(ctx)
	if err := e.Close(); err != nil {
		f.VerboseLog("close: %v", err)
	}
	<-sub.Done()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return f.Fail(WrapExitError(ExitFailure, ErrCodeGeneric, "engine stopped", runErr))
	}
	return nil
}
