package store

import (
	"context"
	"fmt"
	"time"
)

// UploadTask is a durable registry row for one in-flight background upload.
type UploadTask struct {
	ChannelID string
	TaskID    string
	Body      []byte
	CreatedAt time.Time
}

// PutUploadTask records a task before its upload starts.
func (s *Store) PutUploadTask(ctx context.Context, task UploadTask) error {
	_, err := s.writer.ExecContext(ctx, `
		INSERT INTO upload_tasks (channel_id, task_id, body, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, task.ChannelID, task.TaskID, task.Body, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("put upload task: %w", err)
	}
	return nil
}

// DeleteUploadTask removes a completed task. Deleting a missing task is a no-op.
func (s *Store) DeleteUploadTask(ctx context.Context, channelID, taskID string) error {
	_, err := s.writer.ExecContext(ctx, `
		DELETE FROM upload_tasks WHERE channel_id = ? AND task_id = ?
	`, channelID, taskID)
	if err != nil {
		return fmt.Errorf("delete upload task: %w", err)
	}
	return nil
}

// ListUploadTasks returns the tasks registered on a channel, oldest first.
func (s *Store) ListUploadTasks(ctx context.Context, channelID string) ([]UploadTask, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, body, created_at FROM upload_tasks
		WHERE channel_id = ?
		ORDER BY created_at ASC, task_id ASC
	`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list upload tasks: %w", err)
	}
	defer rows.Close()

	var tasks []UploadTask
	for rows.Next() {
		task := UploadTask{ChannelID: channelID}
		var createdAt int64
		if err := rows.Scan(&task.TaskID, &task.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("list upload tasks: scan: %w", err)
		}
		task.CreatedAt = time.Unix(0, createdAt).UTC()
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
