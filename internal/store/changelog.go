package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/ir"
)

const metaTruncatedThrough = "truncated_through"

// CurrentLogPosition returns the seq of the most recent change ever
// committed, including changes that were since purged. Zero for a new store.
func (t *Tx) CurrentLogPosition(ctx context.Context) (ir.LogCursor, error) {
	var head int64
	err := t.tx.QueryRowContext(ctx, `
		SELECT COALESCE((SELECT seq FROM sqlite_sequence WHERE name = 'change_log'), 0)
	`).Scan(&head)
	if err != nil {
		return 0, fmt.Errorf("current log position: %w", err)
	}
	return ir.LogCursor(head), nil
}

// FetchRecords returns the changes with after < seq <= upTo in seq order.
func (t *Tx) FetchRecords(ctx context.Context, after, upTo ir.LogCursor) ([]ir.ChangeRecord, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT seq, author, entity, op, entity_key, changed, committed_at
		FROM change_log
		WHERE seq > ? AND seq <= ?
		ORDER BY seq ASC
	`, int64(after), int64(upTo))
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer rows.Close()

	var records []ir.ChangeRecord
	for rows.Next() {
		var (
			r           ir.ChangeRecord
			seq         int64
			author, op  string
			changed     string
			committedAt int64
		)
		if err := rows.Scan(&seq, &author, &r.Entity, &op, &r.EntityKey, &changed, &committedAt); err != nil {
			return nil, fmt.Errorf("fetch records: scan: %w", err)
		}
		r.Seq = ir.LogCursor(seq)
		r.Author = ir.ProcessKind(author)
		r.Op = ir.ChangeOp(op)
		if changed != "" {
			r.Changed = strings.Split(changed, ",")
		}
		r.CommittedAt = time.Unix(0, committedAt).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return records, nil
}

// PurgeRecords deletes every change with seq < before and returns the number
// deleted. The purged range is recorded in the truncation watermark so a
// lagging process can tell it missed history.
func (t *Tx) PurgeRecords(ctx context.Context, before ir.LogCursor) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM change_log WHERE seq < ?`, int64(before))
	if err != nil {
		return 0, fmt.Errorf("purge records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge records: %w", err)
	}
	if n > 0 {
		if err := t.raiseTruncatedThrough(ctx, int64(before)-1); err != nil {
			return 0, fmt.Errorf("purge records: %w", err)
		}
	}
	return n, nil
}

// AppendChange records one change committed by this transaction.
func (t *Tx) AppendChange(ctx context.Context, entity string, op ir.ChangeOp, key string, changed ...string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO change_log (author, entity, op, entity_key, changed, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(t.store.author), entity, string(op), key, strings.Join(changed, ","), t.store.now().UnixNano())
	if err != nil {
		return fmt.Errorf("append change: %w", err)
	}
	t.appended = true
	return nil
}

// TruncatedThrough returns the highest seq removed from the log, by a purge
// or by the retention policy. Zero if nothing was ever removed.
func (t *Tx) TruncatedThrough(ctx context.Context) (ir.LogCursor, error) {
	var v int64
	err := t.tx.QueryRowContext(ctx, `SELECT value FROM store_meta WHERE key = ?`, metaTruncatedThrough).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("truncated through: %w", err)
	}
	return ir.LogCursor(v), nil
}

func (t *Tx) raiseTruncatedThrough(ctx context.Context, seq int64) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO store_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)
	`, metaTruncatedThrough, seq)
	return err
}

// enforceRetention trims history beyond the retention cap. Trimmed entries
// may not have been consumed by every process; the loss is logged.
func (t *Tx) enforceRetention(ctx context.Context) error {
	p := t.store.retention
	if p.MaxRecords <= 0 && p.MaxAge <= 0 {
		return nil
	}

	var cutoff int64
	if p.MaxRecords > 0 {
		var seq int64
		err := t.tx.QueryRowContext(ctx, `
			SELECT seq FROM change_log ORDER BY seq DESC LIMIT 1 OFFSET ?
		`, p.MaxRecords).Scan(&seq)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("enforce retention: %w", err)
		default:
			cutoff = seq
		}
	}
	if p.MaxAge > 0 {
		var seq sql.NullInt64
		threshold := t.store.now().Add(-p.MaxAge).UnixNano()
		err := t.tx.QueryRowContext(ctx, `
			SELECT MAX(seq) FROM change_log WHERE committed_at < ?
		`, threshold).Scan(&seq)
		if err != nil {
			return fmt.Errorf("enforce retention: %w", err)
		}
		if seq.Valid && seq.Int64 > cutoff {
			cutoff = seq.Int64
		}
	}
	if cutoff == 0 {
		return nil
	}

	res, err := t.tx.ExecContext(ctx, `DELETE FROM change_log WHERE seq <= ?`, cutoff)
	if err != nil {
		return fmt.Errorf("enforce retention: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("enforce retention: %w", err)
	}
	if n == 0 {
		return nil
	}
	if err := t.raiseTruncatedThrough(ctx, cutoff); err != nil {
		return fmt.Errorf("enforce retention: %w", err)
	}

	t.store.log.Warn("change history trimmed by retention policy; unconsumed entries are lost",
		zap.Int64("dropped", n),
		zap.Int64("through_seq", cutoff),
		zap.Int("max_records", p.MaxRecords),
		zap.Duration("max_age", p.MaxAge),
	)
	return nil
}

// HistoryStats summarizes the change log.
type HistoryStats struct {
	Head             ir.LogCursor `json:"head"`
	Oldest           ir.LogCursor `json:"oldest"`
	Count            int64        `json:"count"`
	TruncatedThrough ir.LogCursor `json:"truncated_through"`
}

// HistoryStats reads a summary of the change log.
func (s *Store) HistoryStats(ctx context.Context) (HistoryStats, error) {
	var stats HistoryStats
	err := s.View(ctx, func(tx *Tx) error {
		var err error
		if stats.Head, err = tx.CurrentLogPosition(ctx); err != nil {
			return err
		}
		if stats.TruncatedThrough, err = tx.TruncatedThrough(ctx); err != nil {
			return err
		}
		var oldest int64
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(MIN(seq), 0), COUNT(*) FROM change_log
		`).Scan(&oldest, &stats.Count)
		if err != nil {
			return fmt.Errorf("history stats: %w", err)
		}
		stats.Oldest = ir.LogCursor(oldest)
		return nil
	})
	return stats, err
}
