package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/msgcore/internal/cursor"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/store"
)

// CursorOutput describes one process kind's cursor.
type CursorOutput struct {
	Process ir.ProcessKind `json:"process"`
	Path    string         `json:"path"`
	Found   bool           `json:"found"`
	Corrupt bool           `json:"corrupt,omitempty"`
	Cursor  ir.LogCursor   `json:"cursor"`
	Head    ir.LogCursor   `json:"head"`
	Behind  int64          `json:"behind"`
}

func (c CursorOutput) String() string {
	switch {
	case c.Corrupt:
		return fmt.Sprintf("%s: cursor file %s is corrupt; the next replay bootstraps", c.Process, c.Path)
	case !c.Found:
		return fmt.Sprintf("%s: no cursor yet; the next replay bootstraps at %d", c.Process, c.Head)
	default:
		return fmt.Sprintf("%s: cursor %d, head %d (%d behind)", c.Process, c.Cursor, c.Head, c.Behind)
	}
}

// CursorResetOutput is printed by cursor reset.
type CursorResetOutput struct {
	Process ir.ProcessKind `json:"process"`
	Path    string         `json:"path"`
}

func (c CursorResetOutput) String() string {
	return fmt.Sprintf("%s: cursor removed; the next replay bootstraps", c.Process)
}

// NewCursorCommand creates the cursor command group.
func NewCursorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Inspect or reset a process kind's change log cursor",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the saved cursor and how far it trails the head",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCursorShow(rootOpts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the saved cursor",
		Long: `Delete the saved cursor. The next replay bootstraps at the current head;
changes committed before then are never delivered to this process kind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCursorReset(rootOpts, cmd)
		},
	})
	return cmd
}

func runCursorShow(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(err)
	}
	cursors, err := cursor.New(cfg.EngineDir, cfg.Process)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeCursor, "failed to open cursor", err))
	}
	st, err := openStore(cfg.StorePath)
	if err != nil {
		return f.Fail(err)
	}
	defer st.Close()

	head, err := st.CurrentLogPosition(cmd.Context())
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeStore, "failed to read head", err))
	}

	out := CursorOutput{Process: cfg.Process, Path: cursors.Path(), Head: head}
	c, found, err := cursors.Load()
	switch {
	case err == nil:
		out.Found = found
		out.Cursor = c
		if found {
			out.Behind = int64(head) - int64(c)
		}
	case errors.Is(err, cursor.ErrCorrupt):
		out.Found = true
		out.Corrupt = true
	default:
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeCursor, "failed to read cursor", err))
	}
	return f.Success(out)
}

func runCursorReset(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(err)
	}
	cursors, err := cursor.New(cfg.EngineDir, cfg.Process)
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeCursor, "failed to open cursor", err))
	}
	if err := cursors.Delete(); err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeCursor, "failed to delete cursor", err))
	}
	return f.Success(CursorResetOutput{Process: cfg.Process, Path: cursors.Path()})
}

// openStore opens an existing shared store. A missing file is a command
// error rather than a new empty store.
func openStore(path string) (*store.Store, error) {
	if !fileExists(path) {
		return nil, NewExitError(ExitCommandError, ErrCodeStore, fmt.Sprintf("store not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeStore, "failed to open store", err)
	}
	return st, nil
}
