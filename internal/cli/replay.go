package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/msgcore/internal/config"
	"github.com/roach88/msgcore/internal/engine"
	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/replay"
)

// ReplayOutput is the printed result of one replay attempt.
type ReplayOutput struct {
	replay.Result
	Notifications []notification.Name `json:"notifications"`
}

func (r ReplayOutput) String() string {
	var b strings.Builder
	if r.Bootstrapped {
		fmt.Fprintf(&b, "Cursor bootstrapped at %d", r.To)
		return b.String()
	}
	fmt.Fprintf(&b, "Replayed %d..%d: %d records applied", r.From, r.To, r.Applied)
	if r.Purged > 0 {
		fmt.Fprintf(&b, ", %d purged", r.Purged)
	}
	if r.Lost > 0 {
		fmt.Fprintf(&b, "\nWarning: %d positions were removed before this process consumed them", r.Lost)
	}
	for _, n := range r.Notifications {
		fmt.Fprintf(&b, "\n  %s", n)
	}
	return b.String()
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Run one replay attempt for this process kind",
		Long: `Consume every change committed by other processes since this process
kind's saved cursor, deliver the resulting notifications, and advance the
cursor. The first replay of a process kind only records the current head.

Exit codes:
  0 - Replay succeeded
  1 - Replay attempt failed (cursor left unchanged)
  2 - Command error (config, store not found, etc.)

Examples:
  msgcore replay --db ./shared/msgcore.db --engine-dir ./engine
  msgcore replay --config msgcore.yaml --process share_extension --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, cmd)
		},
	}
}

func runReplay(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(err)
	}
	e, err := openEngine(cmd, cfg)
	if err != nil {
		return f.Fail(err)
	}

	var names []notification.Name
	sub := e.Subscribe(func(n notification.Notification) {
		names = append(names, n.Name())
	})

	res, err := e.Wake(cmd.Context())
	// Close drains the router so every notification has been seen.
	closeErr := e.Close()
	<-sub.Done()
	if err != nil {
		return f.Fail(WrapExitError(ExitFailure, ErrCodeReplay, "replay failed", err))
	}
	if closeErr != nil {
		f.VerboseLog("close: %v", closeErr)
	}
	if names == nil {
		names = []notification.Name{}
	}
	return f.SuccessFlow(res.FlowID, ReplayOutput{Result: res, Notifications: names})
}

// openEngine opens the engine with its log written to the command's stderr.
func openEngine(cmd *cobra.Command, cfg config.Config) (*engine.Engine, error) {
	log, err := logging.NewWithWriter(cfg.Process, cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig, "invalid log level", err)
	}
	e, err := engine.Open(cfg, engine.WithLogger(log))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeStore, "failed to open engine", err)
	}
	return e, nil
}
