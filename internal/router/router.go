// Package router republishes engine events as external notifications.
//
// Events are dispatched by category:
//
//	pass-through, fan-out  → delivery queue (one goroutine)
//	receipt ingestion      → receipt queue (one goroutine)
//	hydration              → bounded pool, each in its own read transaction
//
// No ordering holds across categories. A hydration whose entity has since
// been deleted drops its event.
package router

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/roach88/msgcore/internal/events"
	"github.com/roach88/msgcore/internal/identity"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/pubsub"
	"github.com/roach88/msgcore/internal/queue"
	"github.com/roach88/msgcore/internal/store"
)

var errUnmapped = errors.New("no notification for event")

// Reader opens short-lived read transactions.
type Reader interface {
	View(ctx context.Context, fn func(*store.Tx) error) error
}

// Hydrator builds read-model snapshots inside a transaction.
type Hydrator interface {
	OwnedIdentity(ctx context.Context, tx *store.Tx, owned ir.CryptoID) (ir.OwnedIdentitySnapshot, error)
	OwnedDevices(ctx context.Context, tx *store.Tx, owned ir.CryptoID) (ir.OwnedDevicesSnapshot, error)
	Contact(ctx context.Context, tx *store.Tx, owned, contact ir.CryptoID) (ir.ContactSnapshot, error)
	Group(ctx context.Context, tx *store.Tx, owned ir.CryptoID, group ir.GroupID) (ir.GroupSnapshot, error)
}

// Publisher receives external notifications.
type Publisher interface {
	Publish(notification.Notification) int
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Router) { r.log = logging.OrNop(l) }
}

// WithMaxConcurrentHydrations bounds concurrent hydration transactions.
func WithMaxConcurrentHydrations(n int64) Option {
	return func(r *Router) {
		if n > 0 {
			r.hydrationSlots = n
		}
	}
}

// Router subscribes to the engine bus and publishes notifications.
type Router struct {
	reader     Reader
	identities Hydrator
	out        Publisher
	log        *zap.Logger

	hydrationSlots int64
	sem            *semaphore.Weighted

	sub        *pubsub.Subscription[events.Event]
	delivery   *queue.Worker[events.Event]
	receipts   *queue.Worker[events.Event]
	hydrations *queue.Worker[events.Event]
	inflight   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	published atomic.Int64
	dropped   atomic.Int64
}

// New wires a router between source and out. Every collaborator is required.
func New(source *pubsub.Bus[events.Event], reader Reader, identities Hydrator, out Publisher, opts ...Option) (*Router, error) {
	switch {
	case source == nil:
		return nil, errors.New("router: event source is required")
	case reader == nil:
		return nil, errors.New("router: store reader is required")
	case identities == nil:
		return nil, errors.New("router: identity hydrator is required")
	case out == nil:
		return nil, errors.New("router: notification publisher is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		reader:         reader,
		identities:     identities,
		out:            out,
		log:            zap.NewNop(),
		hydrationSlots: 4,
		ctx:            ctx,
		cancel:         cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.sem = semaphore.NewWeighted(r.hydrationSlots)
	r.delivery = queue.NewWorker(r.deliver)
	r.receipts = queue.NewWorker(r.deliver)
	r.hydrations = queue.NewWorker(r.startHydration)
	r.sub = source.Subscribe(r.Handle)
	return r, nil
}

// Handle dispatches one event. It never blocks on hydration or delivery.
func (r *Router) Handle(e events.Event) {
	if e == nil {
		logging.Fault(r.log, "nil event dropped")
		r.dropped.Add(1)
		return
	}
	var accepted bool
	switch categoryOf(e) {
	case categoryReceipt:
		accepted = r.receipts.Submit(e)
	case categoryHydration:
		accepted = r.hydrations.Submit(e)
	default:
		accepted = r.delivery.Submit(e)
	}
	if !accepted {
		r.dropped.Add(1)
		r.log.Debug("router closed, event dropped", zap.Stringer("event", e.Kind()))
	}
}

// deliver translates events that need no store access.
func (r *Router) deliver(e events.Event) {
	n, err := r.translate(r.ctx, nil, e)
	r.publish(e, n, err)
}

// startHydration runs on one goroutine and hands each event to the pool,
// waiting for a free slot.
func (r *Router) startHydration(e events.Event) {
	if err := r.sem.Acquire(r.ctx, 1); err != nil {
		r.dropped.Add(1)
		return
	}
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		defer r.sem.Release(1)

		var n notification.Notification
		err := r.reader.View(r.ctx, func(tx *store.Tx) error {
			var err error
			n, err = r.translate(r.ctx, tx, e)
			return err
		})
		r.publish(e, n, err)
	}()
}

func (r *Router) publish(e events.Event, n notification.Notification, err error) {
	switch {
	case err == nil:
		r.out.Publish(n)
		r.published.Add(1)
		return
	case errors.Is(err, identity.ErrNotFound):
		r.log.Info("entity gone before hydration, event dropped",
			zap.Stringer("event", e.Kind()), zap.Error(err))
	case errors.Is(err, errUnmapped):
		logging.Fault(r.log, "event has no notification mapping",
			zap.Stringer("event", e.Kind()), zap.Error(err))
	case errors.Is(err, errNoTransaction):
		logging.Fault(r.log, "hydrating event routed without a transaction",
			zap.Stringer("event", e.Kind()), zap.Error(err))
	default:
		r.log.Warn("hydration failed, event dropped",
			zap.Stringer("event", e.Kind()), zap.Error(err))
	}
	r.dropped.Add(1)
}

// Published returns how many notifications were published.
func (r *Router) Published() int64 {
	return r.published.Load()
}

// Dropped returns how many events were dropped.
func (r *Router) Dropped() int64 {
	return r.dropped.Load()
}

// Close unsubscribes and drains every queue. Events already received are
// still translated and published.
func (r *Router) Close() {
	r.sub.Close()
	<-r.sub.Done()

	for _, w := range []*queue.Worker[events.Event]{r.delivery, r.receipts, r.hydrations} {
		w.Close()
	}
	for _, w := range []*queue.Worker[events.Event]{r.delivery, r.receipts, r.hydrations} {
		<-w.Done()
	}
	r.inflight.Wait()
	r.cancel()
}
