package harness

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/config"
	"github.com/roach88/msgcore/internal/cursor"
	"github.com/roach88/msgcore/internal/engine"
	"github.com/roach88/msgcore/internal/events"
	"github.com/roach88/msgcore/internal/identity"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/notification"
	"github.com/roach88/msgcore/internal/pubsub"
	"github.com/roach88/msgcore/internal/store"
	"github.com/roach88/msgcore/internal/testutil"
)

// Epoch is the manual clock's starting reading.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Harness drives one engine per process kind over a shared store.
type Harness struct {
	cfg     config.Config
	clock   *testutil.ManualClock
	flows   *testutil.FixedFlowGenerator
	engines map[ir.ProcessKind]*engine.Engine
	subs    map[ir.ProcessKind]*pubsub.Subscription[notification.Notification]

	mu       sync.Mutex
	received map[ir.ProcessKind][]notification.Name
}

// Run executes a scenario in a fresh temporary directory and returns the
// result. A non-nil error means a step could not run; failed assertions are
// reported in Result.Errors.
func Run(s *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "msgcore-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario dir: %w", err)
	}
	defer os.RemoveAll(dir)

	h := New(dir, s)
	result := NewResult()
	ctx := context.Background()

	runErr := h.execute(ctx, s.Steps, result)
	if runErr == nil {
		runErr = h.captureHistory(ctx, result)
	}
	if err := errors.Join(runErr, h.Close()); err != nil {
		return nil, err
	}
	if err := h.collect(result); err != nil {
		return nil, err
	}

	for i, a := range s.Assertions {
		if err := Evaluate(a, result); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return result, nil
}

// New creates a harness rooted at dir. Engines open lazily, the first time a
// step names their process kind.
func New(dir string, s *Scenario) *Harness {
	cfg := config.Default()
	cfg.StorePath = filepath.Join(dir, "shared.db")
	cfg.EngineDir = filepath.Join(dir, "engine")
	cfg.History = config.History{}
	if s.History != nil {
		cfg.History = config.History{MaxRecords: s.History.MaxRecords, MaxAge: s.History.MaxAge}
	}
	return &Harness{
		cfg:      cfg,
		clock:    testutil.NewManualClock(Epoch),
		flows:    testutil.NewFixedFlowGenerator(s.FlowID),
		engines:  make(map[ir.ProcessKind]*engine.Engine),
		subs:     make(map[ir.ProcessKind]*pubsub.Subscription[notification.Notification]),
		received: make(map[ir.ProcessKind][]notification.Name),
	}
}

func (h *Harness) engine(kind ir.ProcessKind) (*engine.Engine, error) {
	if e, ok := h.engines[kind]; ok {
		return e, nil
	}
	cfg := h.cfg
	cfg.Process = kind
	e, err := engine.Open(cfg,
		engine.WithLogger(zap.NewNop()),
		engine.WithFlowIDs(h.flows),
		engine.WithClock(h.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s engine: %w", kind, err)
	}
	h.mu.Lock()
	h.received[kind] = []notification.Name{}
	h.mu.Unlock()
	h.subs[kind] = e.Subscribe(func(n notification.Notification) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.received[kind] = append(h.received[kind], n.Name())
	})
	h.engines[kind] = e
	return e, nil
}

func (h *Harness) execute(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		var err error
		switch {
		case step.Wake != "":
			err = h.wake(ctx, i, step.Wake, result)
		case step.Write != nil:
			err = h.write(ctx, i, step.Write, result)
		case step.Publish != nil:
			err = h.publish(i, step.Publish, result)
		default:
			h.clock.Advance(step.Advance.Duration)
			result.addTrace(TraceEvent{Step: i, Type: TraceAdvance, Advance: step.Advance.String()})
		}
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func (h *Harness) wake(ctx context.Context, i int, kind ir.ProcessKind, result *Result) error {
	e, err := h.engine(kind)
	if err != nil {
		return err
	}
	res, err := e.Wake(ctx)
	if err != nil {
		return fmt.Errorf("wake %s: %w", kind, err)
	}
	result.Lost[kind] += res.Lost
	result.addTrace(TraceEvent{Step: i, Type: TraceWake, Process: kind, Wake: &res})
	return nil
}

func (h *Harness) write(ctx context.Context, i int, w *WriteStep, result *Result) error {
	e, err := h.engine(w.Process)
	if err != nil {
		return err
	}
	owned, err := ir.ParseCryptoID(w.Owned)
	if err != nil {
		return err
	}
	id := ir.MessageID{OwnedIdentity: owned}
	if w.UID != "" {
		if id.UID, err = shortUID(w.UID); err != nil {
			return err
		}
	}
	var contact ir.CryptoID
	if w.Contact != "" {
		if contact, err = ir.ParseCryptoID(w.Contact); err != nil {
			return err
		}
	}

	now := h.clock.Now()
	st := e.Store()
	err = st.Update(ctx, func(tx *store.Tx) error {
		switch w.Op {
		case OpInsertMessage:
			return tx.InsertOutboxMessage(ctx, store.OutboxMessage{ID: id, IsAppMessageWithUserContent: true})
		case OpMarkUploaded:
			return tx.MarkOutboxMessageUploaded(ctx, id, now)
		case OpUploadMessage:
			if err := tx.InsertOutboxMessage(ctx, store.OutboxMessage{ID: id, IsAppMessageWithUserContent: true}); err != nil {
				return err
			}
			return tx.MarkOutboxMessageUploaded(ctx, id, now)
		case OpDeleteMessage:
			return tx.DeleteOutboxMessage(ctx, id)
		case OpPutOwnedIdentity:
			return identity.PutOwnedIdentity(ctx, tx, ir.OwnedIdentitySnapshot{
				Identity:    owned,
				DisplayName: w.Name,
				IsActive:    true,
			})
		case OpPutContact:
			return identity.PutContact(ctx, tx, ir.ContactSnapshot{
				OwnedIdentity:      owned,
				Identity:           contact,
				TrustedDisplayName: w.Name,
				IsActive:           true,
			})
		case OpDeleteContact:
			return identity.DeleteContact(ctx, tx, owned, contact)
		default:
			return fmt.Errorf("unknown op %q", w.Op)
		}
	})
	if err != nil {
		return fmt.Errorf("%s by %s: %w", w.Op, w.Process, err)
	}

	head, err := st.CurrentLogPosition(ctx)
	if err != nil {
		return err
	}
	result.addTrace(TraceEvent{Step: i, Type: TraceWrite, Process: w.Process, Op: w.Op, Head: head})
	return nil
}

func (h *Harness) publish(i int, p *PublishStep, result *Result) error {
	ev, err := buildEvent(p)
	if err != nil {
		return err
	}
	e, err := h.engine(p.Process)
	if err != nil {
		return err
	}
	e.Publish(ev)
	result.addTrace(TraceEvent{Step: i, Type: TracePublish, Process: p.Process, Event: ev.Kind().String()})
	return nil
}

func (h *Harness) captureHistory(ctx context.Context, result *Result) error {
	for _, e := range h.engines {
		stats, err := e.Store().HistoryStats(ctx)
		if err != nil {
			return err
		}
		result.History = stats
		return nil
	}
	return nil
}

// Close closes every engine and waits for each subscription to drain.
func (h *Harness) Close() error {
	var errs []error
	for _, kind := range h.kinds() {
		errs = append(errs, h.engines[kind].Close())
		<-h.subs[kind].Done()
	}
	return errors.Join(errs...)
}

// collect reads what each process kind delivered and saved. Call after Close.
func (h *Harness) collect(result *Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, kind := range h.kinds() {
		names := slices.Clone(h.received[kind])
		slices.Sort(names)
		result.Notifications[kind] = names

		cursors, err := cursor.New(h.cfg.EngineDir, kind)
		if err != nil {
			return err
		}
		c, found, err := cursors.Load()
		if err != nil {
			return fmt.Errorf("load %s cursor: %w", kind, err)
		}
		if found {
			result.Cursors[kind] = c
		}
	}
	return nil
}

func (h *Harness) kinds() []ir.ProcessKind {
	kinds := make([]ir.ProcessKind, 0, len(h.engines))
	for k := range h.engines {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// shortUID decodes up to 32 hex bytes into a zero-padded UID so scenarios
// can write "01" instead of 64 characters.
func shortUID(s string) (ir.UID, error) {
	var u ir.UID
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, fmt.Errorf("parse uid: %w", err)
	}
	if len(b) == 0 || len(b) > ir.UIDLength {
		return u, fmt.Errorf("parse uid: want 1 to %d bytes, got %d", ir.UIDLength, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// buildEvent maps a publish step to its event. Only identity and well-known
// events are publishable; outbox events come from replayed writes.
func buildEvent(p *PublishStep) (events.Event, error) {
	parse := func(field, s string) (ir.CryptoID, error) {
		if s == "" {
			return nil, fmt.Errorf("%s is required for %s", field, p.Event)
		}
		return ir.ParseCryptoID(s)
	}
	pair := func() (owned, contact ir.CryptoID, err error) {
		if owned, err = parse("owned", p.Owned); err != nil {
			return nil, nil, err
		}
		contact, err = parse("contact", p.Contact)
		return owned, contact, err
	}

	switch p.Event {
	case events.KindWellKnownHasBeenUpdated.String():
		if p.ServerURL == "" {
			return nil, fmt.Errorf("server_url is required for %s", p.Event)
		}
		return events.WellKnownHasBeenUpdated{ServerURL: p.ServerURL}, nil
	case events.KindContactIdentityIsNowTrusted.String():
		owned, contact, err := pair()
		return events.ContactIdentityIsNowTrusted{OwnedIdentity: owned, ContactIdentity: contact}, err
	case events.KindNewTrustedContactIdentityDetails.String():
		owned, contact, err := pair()
		return events.NewTrustedContactIdentityDetails{OwnedIdentity: owned, ContactIdentity: contact}, err
	case events.KindContactWasDeleted.String():
		owned, contact, err := pair()
		return events.ContactWasDeleted{OwnedIdentity: owned, ContactIdentity: contact}, err
	case events.KindOwnedIdentityWasDeactivated.String():
		owned, err := parse("owned", p.Owned)
		return events.OwnedIdentityWasDeactivated{OwnedIdentity: owned}, err
	case events.KindOwnedIdentityWasReactivated.String():
		owned, err := parse("owned", p.Owned)
		return events.OwnedIdentityWasReactivated{OwnedIdentity: owned}, err
	default:
		return nil, fmt.Errorf("unsupported event %q", p.Event)
	}
}
