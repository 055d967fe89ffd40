package harness

import (
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/replay"
	"github.com/roach88/msgcore/internal/store"
)

// Trace event types.
const (
	TraceWrite   = "write"
	TraceWake    = "wake"
	TracePublish = "publish"
	TraceAdvance = "advance"
)

// TraceEvent records one executed step.
type TraceEvent struct {
	Step    int            `json:"step"`
	Type    string         `json:"type"`
	Process ir.ProcessKind `json:"process,omitempty"`

	// Op and Head are set for writes. Head is the log position after commit.
	Op   string       `json:"op,omitempty"`
	Head ir.LogCursor `json:"head,omitempty"`

	// Wake is the replay outcome.
	Wake *replay.Result `json:"wake,omitempty"`

	// Event is the published event kind.
	Event string `json:"event,omitempty"`

	// Advance is how far the clock moved.
	Advance string `json:"advance,omitempty"`
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true when every assertion held.
	Pass   bool         `json:"pass"`
	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`

	// Notifications holds, per process kind that ran an engine, the names
	// it delivered, sorted.
	Notifications map[ir.ProcessKind][]notification.Name `json:"notifications"`

	// Cursors holds the saved cursor of every process kind that has one.
	Cursors map[ir.ProcessKind]ir.LogCursor `json:"cursors"`

	// Lost sums Result.Lost over every wake of a process kind.
	Lost map[ir.ProcessKind]int64 `json:"lost"`

	// History is the change log summary before the engines closed.
	History store.HistoryStats `json:"history"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:          true,
		Trace:         []TraceEvent{},
		Errors:        []string{},
		Notifications: make(map[ir.ProcessKind][]notification.Name),
		Cursors:       make(map[ir.ProcessKind]ir.LogCursor),
		Lost:          make(map[ir.ProcessKind]int64),
	}
}

// AddError records a failed assertion.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addTrace(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
