package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/msgcore/internal/ir"
)

func TestOutbox_LifecycleAppendsChanges(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	id := testMessageID(1, 7)
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.InsertOutboxMessage(ctx, OutboxMessage{ID: id, IsAppMessageWithUserContent: true})
	}))
	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.MarkOutboxMessageUploaded(ctx, id, ts)
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		m, found, err := tx.OutboxMessage(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, m.TimestampFromServer)
		assert.True(t, ts.Equal(*m.TimestampFromServer))
		assert.True(t, m.IsAppMessageWithUserContent)
		assert.False(t, m.IsVoipMessage)
		return nil
	}))

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.DeleteOutboxMessage(ctx, id)
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		_, found, err := tx.OutboxMessage(ctx, id)
		require.NoError(t, err)
		assert.False(t, found)

		tombstones, err := tx.DeletedOutboxMessages(ctx)
		require.NoError(t, err)
		require.Len(t, tombstones, 1)
		assert.Equal(t, id.Key(), tombstones[0].ID.Key())

		records, err := tx.FetchRecords(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, ir.OpInsert, records[0].Op)
		assert.Equal(t, ir.OpUpdate, records[1].Op)
		assert.True(t, records[1].Touches(ir.PropertyTimestampFromServer))
		assert.Equal(t, ir.OpDelete, records[2].Op)
		assert.Equal(t, id.Key(), records[2].EntityKey)
		return nil
	}))
}

func TestOutbox_InsertIdempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	id := testMessageID(1, 1)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Update(ctx, func(tx *Tx) error {
			return tx.InsertOutboxMessage(ctx, OutboxMessage{ID: id})
		}))
	}

	head, err := s.CurrentLogPosition(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, head, "duplicate insert must not log a change")
}

func TestOutbox_MarkUploadedMissing(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	err := s.Update(ctx, func(tx *Tx) error {
		return tx.MarkOutboxMessageUploaded(ctx, testMessageID(1, 1), time.Now())
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOutbox_DeleteRequiresServerTimestamp(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	id := testMessageID(1, 1)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.InsertOutboxMessage(ctx, OutboxMessage{ID: id})
	}))
	err := s.Update(ctx, func(tx *Tx) error {
		return tx.DeleteOutboxMessage(ctx, id)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no server timestamp")
}

func TestRememberAck_PerProcess(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/shared.db"
	app, err := Open(path, WithAuthor(ir.ProcessMainApp))
	require.NoError(t, err)
	defer app.Close()
	ext, err := Open(path, WithAuthor(ir.ProcessNotificationExtension))
	require.NoError(t, err)
	defer ext.Close()

	id := testMessageID(2, 2)
	remember := func(s *Store) bool {
		var inserted bool
		require.NoError(t, s.Update(ctx, func(tx *Tx) error {
			var err error
			inserted, err = tx.RememberAck(ctx, id, AckUploaded)
			return err
		}))
		return inserted
	}

	assert.True(t, remember(app))
	assert.False(t, remember(app))
	assert.True(t, remember(ext), "each process remembers independently")
}

func TestDeleteDeletedOutboxMessages(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	a, b := testMessageID(1, 1), testMessageID(1, 2)
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		for _, id := range []ir.MessageID{a, b} {
			if err := tx.InsertOutboxMessage(ctx, OutboxMessage{ID: id, TimestampFromServer: &ts}); err != nil {
				return err
			}
			if err := tx.DeleteOutboxMessage(ctx, id); err != nil {
				return err
			}
			if _, err := tx.RememberAck(ctx, id, AckUploaded); err != nil {
				return err
			}
			if _, err := tx.RememberAck(ctx, id, AckAcknowledged); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		n, err := tx.DeleteDeletedOutboxMessages(ctx, []ir.MessageID{a})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		left, err := tx.DeletedOutboxMessages(ctx)
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, b.Key(), left[0].ID.Key())

		acks, err := tx.CountAcks(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, acks, "both acks of the remaining tombstone are kept")

		uploaded, err := tx.RememberAck(ctx, a, AckUploaded)
		require.NoError(t, err)
		assert.True(t, uploaded, "upload ack of a cleared tombstone is gone")
		return nil
	}))
}

func TestParseMessageKey(t *testing.T) {
	id := testMessageID(3, 9)
	parsed, err := ParseMessageKey(id.Key())
	require.NoError(t, err)
	assert.Equal(t, id.Key(), parsed.Key())

	_, err = ParseMessageKey("no-separator")
	require.Error(t, err)
}
