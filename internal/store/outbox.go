package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/msgcore/internal/ir"
)

// OutboxMessage is the bookkeeping row for a message being sent.
type OutboxMessage struct {
	ID                          ir.MessageID
	TimestampFromServer         *time.Time
	IsAppMessageWithUserContent bool
	IsVoipMessage               bool
}

// DeletedOutboxMessage is the tombstone of a fully acknowledged message.
type DeletedOutboxMessage struct {
	ID                  ir.MessageID
	TimestampFromServer time.Time
}

// Ack kinds remembered per process.
const (
	AckUploaded     = "uploaded"
	AckAcknowledged = "acknowledged"
)

// InsertOutboxMessage adds a message to the outbox.
// Uses ON CONFLICT DO NOTHING for idempotency; the change is only logged when
// a row was actually inserted.
func (t *Tx) InsertOutboxMessage(ctx context.Context, m OutboxMessage) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO outbox_messages
		(owned_identity, uid, timestamp_from_server, is_app_message_with_user_content, is_voip_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		m.ID.OwnedIdentity.String(),
		m.ID.UID.String(),
		nullableUnixNano(m.TimestampFromServer),
		m.IsAppMessageWithUserContent,
		m.IsVoipMessage,
		t.store.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	return t.AppendChange(ctx, ir.EntityOutboxMessage, ir.OpInsert, m.ID.Key())
}

// MarkOutboxMessageUploaded records the server timestamp of an uploaded message.
func (t *Tx) MarkOutboxMessageUploaded(ctx context.Context, id ir.MessageID, timestampFromServer time.Time) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE outbox_messages SET timestamp_from_server = ?
		WHERE owned_identity = ? AND uid = ?
	`, timestampFromServer.UnixNano(), id.OwnedIdentity.String(), id.UID.String())
	if err != nil {
		return fmt.Errorf("mark outbox message uploaded: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mark outbox message uploaded: %s: %w", id.Key(), ErrNotFound)
	}
	return t.AppendChange(ctx, ir.EntityOutboxMessage, ir.OpUpdate, id.Key(), ir.PropertyTimestampFromServer)
}

// DeleteOutboxMessage removes an uploaded message and leaves a tombstone.
// The message must have a server timestamp.
func (t *Tx) DeleteOutboxMessage(ctx context.Context, id ir.MessageID) error {
	m, found, err := t.OutboxMessage(ctx, id)
	if err != nil {
		return fmt.Errorf("delete outbox message: %w", err)
	}
	if !found {
		return fmt.Errorf("delete outbox message: %s: %w", id.Key(), ErrNotFound)
	}
	if m.TimestampFromServer == nil {
		return fmt.Errorf("delete outbox message: %s has no server timestamp", id.Key())
	}

	if _, err := t.tx.ExecContext(ctx, `
		DELETE FROM outbox_messages WHERE owned_identity = ? AND uid = ?
	`, id.OwnedIdentity.String(), id.UID.String()); err != nil {
		return fmt.Errorf("delete outbox message: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, `
		INSERT INTO deleted_outbox_messages (owned_identity, uid, timestamp_from_server)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING
	`, id.OwnedIdentity.String(), id.UID.String(), m.TimestampFromServer.UnixNano()); err != nil {
		return fmt.Errorf("delete outbox message: tombstone: %w", err)
	}
	return t.AppendChange(ctx, ir.EntityOutboxMessage, ir.OpDelete, id.Key())
}

// OutboxMessage reads one outbox message.
func (t *Tx) OutboxMessage(ctx context.Context, id ir.MessageID) (OutboxMessage, bool, error) {
	var (
		ts         sql.NullInt64
		appContent bool
		voip       bool
	)
	err := t.tx.QueryRowContext(ctx, `
		SELECT timestamp_from_server, is_app_message_with_user_content, is_voip_message
		FROM outbox_messages WHERE owned_identity = ? AND uid = ?
	`, id.OwnedIdentity.String(), id.UID.String()).Scan(&ts, &appContent, &voip)
	if errors.Is(err, sql.ErrNoRows) {
		return OutboxMessage{}, false, nil
	}
	if err != nil {
		return OutboxMessage{}, false, fmt.Errorf("read outbox message: %w", err)
	}

	m := OutboxMessage{ID: id, IsAppMessageWithUserContent: appContent, IsVoipMessage: voip}
	if ts.Valid {
		v := time.Unix(0, ts.Int64).UTC()
		m.TimestampFromServer = &v
	}
	return m, true, nil
}

// DeletedOutboxMessages lists every tombstone.
func (t *Tx) DeletedOutboxMessages(ctx context.Context) ([]DeletedOutboxMessage, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT owned_identity, uid, timestamp_from_server
		FROM deleted_outbox_messages
		ORDER BY timestamp_from_server ASC, owned_identity ASC, uid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list deleted outbox messages: %w", err)
	}
	defer rows.Close()

	var out []DeletedOutboxMessage
	for rows.Next() {
		var owned, uid string
		var ts int64
		if err := rows.Scan(&owned, &uid, &ts); err != nil {
			return nil, fmt.Errorf("list deleted outbox messages: scan: %w", err)
		}
		id, err := parseMessageID(owned, uid)
		if err != nil {
			return nil, fmt.Errorf("list deleted outbox messages: %w", err)
		}
		out = append(out, DeletedOutboxMessage{ID: id, TimestampFromServer: time.Unix(0, ts).UTC()})
	}
	return out, rows.Err()
}

// DeleteDeletedOutboxMessages removes tombstones in one statement batch and
// forgets every process's upload and acknowledgement of them.
func (t *Tx) DeleteDeletedOutboxMessages(ctx context.Context, ids []ir.MessageID) (int64, error) {
	var total int64
	for _, id := range ids {
		res, err := t.tx.ExecContext(ctx, `
			DELETE FROM deleted_outbox_messages WHERE owned_identity = ? AND uid = ?
		`, id.OwnedIdentity.String(), id.UID.String())
		if err != nil {
			return total, fmt.Errorf("delete tombstones: %w", err)
		}
		n, _ := res.RowsAffected()
		total += n

		if _, err := t.tx.ExecContext(ctx, `
			DELETE FROM process_acks WHERE owned_identity = ? AND uid = ? AND kind IN (?, ?)
		`, id.OwnedIdentity.String(), id.UID.String(), AckAcknowledged, AckUploaded); err != nil {
			return total, fmt.Errorf("delete tombstones: acks: %w", err)
		}
	}
	return total, nil
}

// RememberAck records that this process reacted to (id, kind).
// Returns inserted=false when the process had already done so.
func (t *Tx) RememberAck(ctx context.Context, id ir.MessageID, kind string) (inserted bool, err error) {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO process_acks (process, owned_identity, uid, kind, acked_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, string(t.store.author), id.OwnedIdentity.String(), id.UID.String(), kind, t.store.now().UnixNano())
	if err != nil {
		return false, fmt.Errorf("remember ack: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remember ack: %w", err)
	}
	return n > 0, nil
}

// CountAcks returns how many acknowledgements this process remembers.
func (t *Tx) CountAcks(ctx context.Context) (int, error) {
	var n int
	err := t.tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM process_acks WHERE process = ?
	`, string(t.store.author)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count acks: %w", err)
	}
	return n, nil
}

// ParseMessageKey reverses ir.MessageID.Key.
func ParseMessageKey(key string) (ir.MessageID, error) {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return parseMessageID(key[:i], key[i+1:])
		}
	}
	return ir.MessageID{}, fmt.Errorf("malformed message key %q", key)
}

func parseMessageID(owned, uid string) (ir.MessageID, error) {
	o, err := ir.ParseCryptoID(owned)
	if err != nil {
		return ir.MessageID{}, err
	}
	u, err := ir.ParseUID(uid)
	if err != nil {
		return ir.MessageID{}, err
	}
	return ir.MessageID{OwnedIdentity: o, UID: u}, nil
}

func nullableUnixNano(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}
