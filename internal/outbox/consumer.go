// Package outbox reacts to replayed outbox bookkeeping changes.
//
// Another process (typically the share or notification extension) may upload
// or finish a message; the change reaches this process through the change
// log and becomes an engine event here. Every reaction is remembered per
// process, so applying the same records again emits nothing.
package outbox

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/events"
	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
	"github.com/roach88/msgcore/internal/store"
)

// Publisher receives the events produced by a committed Apply.
type Publisher interface {
	Publish(events.Event) int
}

// Consumer is the downstream consumer of the replayer.
type Consumer struct {
	store *store.Store
	bus   Publisher
	log   *zap.Logger
}

// New creates a consumer. Both collaborators are required.
func New(st *store.Store, bus Publisher, log *zap.Logger) (*Consumer, error) {
	if st == nil {
		return nil, errors.New("outbox: store is required")
	}
	if bus == nil {
		return nil, errors.New("outbox: publisher is required")
	}
	return &Consumer{store: st, bus: bus, log: logging.OrNop(log)}, nil
}

// Apply reacts to records inside the replay transaction. Events are published
// only once tx commits.
func (c *Consumer) Apply(ctx context.Context, tx *store.Tx, records []ir.ChangeRecord) error {
	var out []events.Event

	acked, err := c.acknowledgedMessages(ctx, tx)
	if err != nil {
		return err
	}
	if len(acked) > 0 {
		out = append(out, events.OutboxMessagesAndAllTheirAttachmentsWereAcknowledged{Acks: acked})
	}

	uploaded, err := c.uploadedMessages(ctx, tx, records)
	if err != nil {
		return err
	}
	out = append(out, uploaded...)

	if len(out) == 0 {
		return nil
	}
	tx.AfterCommit(func() {
		for _, e := range out {
			c.bus.Publish(e)
		}
	})
	c.log.Debug("outbox changes applied",
		zap.Int("records", len(records)),
		zap.Int("acknowledged", len(acked)),
		zap.Int("uploaded", len(uploaded)),
	)
	return nil
}

// acknowledgedMessages returns the tombstones this process has not reacted to.
func (c *Consumer) acknowledgedMessages(ctx context.Context, tx *store.Tx) ([]ir.MessageAck, error) {
	tombstones, err := tx.DeletedOutboxMessages(ctx)
	if err != nil {
		return nil, err
	}
	var acks []ir.MessageAck
	for _, d := range tombstones {
		inserted, err := tx.RememberAck(ctx, d.ID, store.AckAcknowledged)
		if err != nil {
			return nil, err
		}
		if inserted {
			acks = append(acks, ir.MessageAck{MessageID: d.ID, TimestampFromServer: d.TimestampFromServer})
		}
	}
	return acks, nil
}

// uploadedMessages walks records newest first and reacts once per message
// whose server timestamp changed.
func (c *Consumer) uploadedMessages(ctx context.Context, tx *store.Tx, records []ir.ChangeRecord) ([]events.Event, error) {
	var out []events.Event
	seen := make(map[string]struct{})
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.Entity != ir.EntityOutboxMessage || r.Op != ir.OpUpdate || !r.Touches(ir.PropertyTimestampFromServer) {
			continue
		}
		if _, ok := seen[r.EntityKey]; ok {
			continue
		}
		seen[r.EntityKey] = struct{}{}

		id, err := store.ParseMessageKey(r.EntityKey)
		if err != nil {
			c.log.Warn("skipping change with malformed key", zap.Int64("seq", int64(r.Seq)), zap.Error(err))
			continue
		}
		m, found, err := tx.OutboxMessage(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found || m.TimestampFromServer == nil {
			// Already deleted; the tombstone path covers it.
			continue
		}
		inserted, err := tx.RememberAck(ctx, id, store.AckUploaded)
		if err != nil {
			return nil, err
		}
		if !inserted {
			continue
		}
		out = append(out, events.OutboxMessageWasUploaded{
			MessageID:                   id,
			TimestampFromServer:         *m.TimestampFromServer,
			IsAppMessageWithUserContent: m.IsAppMessageWithUserContent,
			IsVoipMessage:               m.IsVoipMessage,
		})
	}
	return out, nil
}

// DeleteAcknowledgementHistory removes the tombstones of messages the app has
// finished with.
func (c *Consumer) DeleteAcknowledgementHistory(ctx context.Context, ids []ir.MessageID) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	err := c.store.Update(ctx, func(tx *store.Tx) error {
		var err error
		n, err = tx.DeleteDeletedOutboxMessages(ctx, ids)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete acknowledgement history: %w", err)
	}
	c.log.Debug("acknowledgement history deleted", zap.Int64("tombstones", n))
	return nil
}
