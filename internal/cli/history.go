package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/msgcore/internal/store"
)

// HistoryOutput summarizes the shared change log.
type HistoryOutput struct {
	store.HistoryStats
	MaxRecords int    `json:"max_records"`
	MaxAge     string `json:"max_age"`
}

func (h HistoryOutput) String() string {
	s := fmt.Sprintf("Change log: %d records", h.Count)
	if h.Count > 0 {
		s += fmt.Sprintf(" (seq %d..%d)", h.Oldest, h.Head)
	}
	s += fmt.Sprintf(", head %d", h.Head)
	if h.TruncatedThrough > 0 {
		s += fmt.Sprintf(", removed through %d", h.TruncatedThrough)
	}
	return s + fmt.Sprintf("\nRetention: max %d records, max age %s", h.MaxRecords, h.MaxAge)
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Summarize the shared change log",
		Long: `Show how many change records the shared store holds, the range of
positions they cover, and the watermark below which records were removed,
either after every process consumed them or by the retention cap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd)
		},
	}
}

func runHistory(opts *RootOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	cfg, err := opts.loadConfig()
	if err != nil {
		return f.Fail(err)
	}
	st, err := openStore(cfg.StorePath)
	if err != nil {
		return f.Fail(err)
	}
	defer st.Close()

	stats, err := st.HistoryStats(cmd.Context())
	if err != nil {
		return f.Fail(WrapExitError(ExitCommandError, ErrCodeStore, "failed to read history", err))
	}
	return f.Success(HistoryOutput{
		HistoryStats: stats,
		MaxRecords:   cfg.History.MaxRecords,
		MaxAge:       cfg.History.MaxAge.String(),
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
