package replay

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/cursor"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/queue"
	"github.com/roach88/msgcore/internal/store"
)

var (
	// ErrCorruptCursor means the cursor file could not be decoded. The file
	// has been deleted; the next attempt bootstraps.
	ErrCorruptCursor = errors.New("replay: corrupt cursor file")
	// ErrClosed is returned once the replayer stopped accepting work.
	ErrClosed = errors.New("replay: closed")
)

// Consumer reacts to replayed records inside the replay transaction.
// Apply must be idempotent: after a failed attempt the same records are
// delivered again.
type Consumer interface {
	Apply(ctx context.Context, tx *store.Tx, records []ir.ChangeRecord) error
}

// CursorStore persists the last consumed position of one process kind.
type CursorStore interface {
	Load() (ir.LogCursor, bool, error)
	Save(ir.LogCursor) error
	Delete() error
}

// Result describes one finished attempt.
type Result struct {
	FlowID       string       `json:"flow_id"`
	Bootstrapped bool         `json:"bootstrapped"`
	From         ir.LogCursor `json:"from"`
	To           ir.LogCursor `json:"to"`
	Applied      int          `json:"applied"`
	Purged       int64        `json:"purged"`
	// Lost is how many positions between From and the truncation watermark
	// were removed before this process consumed them.
	Lost int64 `json:"lost"`
}

type request struct {
	ctx    context.Context
	flowID string
	reply  chan outcome
}

type outcome struct {
	res Result
	err error
}

// Option configures a Replayer.
type Option func(*Replayer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Replayer) { r.log = logging.OrNop(l) }
}

// WithTracer overrides the tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Replayer) { r.tracer = t }
}

// Replayer tails the shared change log for one process kind.
type Replayer struct {
	store    *store.Store
	cursors  CursorStore
	consumer Consumer
	kind     ir.ProcessKind
	log      *zap.Logger
	tracer   trace.Tracer
	worker   *queue.Worker[request]
}

// New creates a replayer. The process kind is the store's author.
func New(st *store.Store, cursors CursorStore, consumer Consumer, opts ...Option) (*Replayer, error) {
	if st == nil {
		return nil, errors.New("replay: store is required")
	}
	if cursors == nil {
		return nil, errors.New("replay: cursor store is required")
	}
	if consumer == nil {
		return nil, errors.New("replay: consumer is required")
	}
	r := &Replayer{
		store:    st,
		cursors:  cursors,
		consumer: consumer,
		kind:     st.Author(),
		log:      zap.NewNop(),
		tracer:   otel.Tracer("msgcore/replay"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.worker = queue.NewWorker(r.handle)
	return r, nil
}

// Replay runs one attempt and waits for it. Attempts queued before it run
// first.
func (r *Replayer) Replay(ctx context.Context, flowID string) (Result, error) {
	reply := make(chan outcome, 1)
	if !r.worker.Submit(request{ctx: ctx, flowID: flowID, reply: reply}) {
		return Result{}, ErrClosed
	}
	select {
	case o := <-reply:
		return o.res, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// ReplayAsync queues an attempt and returns. Failures are logged.
func (r *Replayer) ReplayAsync(flowID string) bool {
	return r.worker.Submit(request{ctx: context.Background(), flowID: flowID})
}

// Pending returns the number of queued attempts.
func (r *Replayer) Pending() int {
	return r.worker.Len()
}

// Close stops accepting attempts and waits for queued ones to finish.
func (r *Replayer) Close() {
	r.worker.Close()
	<-r.worker.Done()
}

func (r *Replayer) handle(req request) {
	log := logging.WithFlow(r.log, req.flowID)
	var o outcome
	if err := req.ctx.Err(); err != nil {
		o.err = err
	} else {
		o.res, o.err = r.replay(req.ctx, req.flowID, log)
	}

	switch {
	case o.err == nil:
	case errors.Is(o.err, ErrCorruptCursor):
		log.Warn("cursor file discarded, next replay bootstraps", zap.Error(o.err))
	default:
		log.Error("replay aborted, cursor unchanged", zap.Error(o.err))
	}
	if req.reply != nil {
		req.reply <- o
	}
}

func (r *Replayer) replay(ctx context.Context, flowID string, log *zap.Logger) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "replay", trace.WithAttributes(
		attribute.String("flow.id", flowID),
		attribute.String("process.kind", string(r.kind)),
	))
	defer span.End()

	res, err := r.attempt(ctx, flowID, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(
		attribute.Int64("replay.from", int64(res.From)),
		attribute.Int64("replay.to", int64(res.To)),
		attribute.Int("replay.applied", res.Applied),
	)
	return res, nil
}

func (r *Replayer) attempt(ctx context.Context, flowID string, log *zap.Logger) (Result, error) {
	res := Result{FlowID: flowID}

	saved, found, loadErr := r.cursors.Load()
	if loadErr != nil && !errors.Is(loadErr, cursor.ErrCorrupt) {
		return res, fmt.Errorf("load cursor: %w", loadErr)
	}

	var records []ir.ChangeRecord
	err := r.store.Update(ctx, func(tx *store.Tx) error {
		head, err := tx.CurrentLogPosition(ctx)
		if err != nil {
			return err
		}
		res.To = head

		switch {
		case loadErr != nil:
			return r.discardCursor(loadErr)
		case !found:
			res.Bootstrapped = true
			res.From = head
			return nil
		case saved > head:
			return r.discardCursor(fmt.Errorf("cursor %d is ahead of head %d", saved, head))
		}
		res.From = saved

		truncated, err := tx.TruncatedThrough(ctx)
		if err != nil {
			return err
		}
		if saved < truncated {
			res.Lost = int64(truncated - saved)
		}

		records, err = tx.FetchRecords(ctx, saved, head)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		if err := r.consumer.Apply(ctx, tx, records); err != nil {
			return fmt.Errorf("apply records: %w", err)
		}
		res.Applied = len(records)
		return nil
	})
	if err != nil {
		return res, err
	}

	if res.Lost > 0 {
		log.Warn("change history was removed before this process consumed it",
			zap.Int64("cursor", int64(res.From)),
			zap.Int64("missed", res.Lost),
		)
	}
	if res.Bootstrapped || res.To != res.From {
		if err := r.cursors.Save(res.To); err != nil {
			return res, fmt.Errorf("save cursor: %w", err)
		}
	}
	if res.Bootstrapped {
		log.Info("cursor bootstrapped", zap.Int64("head", int64(res.To)))
		return res, nil
	}

	if r.kind.IsPrimary() {
		res.Purged = r.purge(ctx, res.To, log)
	}
	log.Info("replayed",
		zap.Int64("from", int64(res.From)),
		zap.Int64("to", int64(res.To)),
		zap.Int("applied", res.Applied),
		zap.Int64("purged", res.Purged),
	)
	return res, nil
}

// purge removes entries before head. Failure is logged; the next attempt
// purges again.
func (r *Replayer) purge(ctx context.Context, head ir.LogCursor, log *zap.Logger) int64 {
	var n int64
	err := r.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		n, err = tx.PurgeRecords(ctx, head)
		return err
	})
	if err != nil {
		log.Error("purge history", zap.Int64("before", int64(head)), zap.Error(err))
		return 0
	}
	return n
}

func (r *Replayer) discardCursor(cause error) error {
	if err := r.cursors.Delete(); err != nil {
		return fmt.Errorf("%w: %v (delete failed: %v)", ErrCorruptCursor, cause, err)
	}
	return fmt.Errorf("%w: %v", ErrCorruptCursor, cause)
}
