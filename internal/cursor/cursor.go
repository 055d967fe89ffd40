// Package cursor persists, per process kind, the last change-log position a
// process has fully consumed.
//
// Each process kind owns exactly one file under <engineDir>/history/. Files
// are msgpack-encoded and replaced atomically (write temp file, fsync,
// rename), so a crash leaves either the old or the new cursor on disk.
package cursor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/msgcore/internal/ir"
)

// HistoryDir is the directory, relative to the engine directory, that holds
// cursor files.
const HistoryDir = "history"

// ErrCorrupt is returned by Load when the cursor file exists but cannot be decoded.
var ErrCorrupt = errors.New("cursor file is corrupt")

// FileName returns the cursor file name for a process kind.
func FileName(kind ir.ProcessKind) (string, error) {
	switch kind {
	case ir.ProcessMainApp:
		return "tokenForMainApp.data", nil
	case ir.ProcessNotificationExtension:
		return "tokenForNotificationExtension.data", nil
	case ir.ProcessShareExtension:
		return "tokenForShareExtension.data", nil
	default:
		return "", fmt.Errorf("no cursor file for process kind %q", string(kind))
	}
}

// record is the on-disk layout.
type record struct {
	Version int   `msgpack:"v"`
	Cursor  int64 `msgpack:"c"`
}

// Store reads and writes one process kind's cursor file.
type Store struct {
	path string
}

// New creates the history directory if needed and returns the store for kind.
func New(engineDir string, kind ir.ProcessKind) (*Store, error) {
	name, err := FileName(kind)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(engineDir, HistoryDir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, name)}, nil
}

// Path returns the cursor file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted cursor.
// Returns found=false when no file exists, and ErrCorrupt when the file
// cannot be read back as a cursor.
func (s *Store) Load() (c ir.LogCursor, found bool, err error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Version != ir.CursorFormatVersion {
		return 0, false, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, rec.Version)
	}
	if rec.Cursor < 0 {
		return 0, false, fmt.Errorf("%w: negative position %d", ErrCorrupt, rec.Cursor)
	}
	return ir.LogCursor(rec.Cursor), true, nil
}

// Save atomically replaces the cursor file.
func (s *Store) Save(c ir.LogCursor) error {
	data, err := msgpack.Marshal(record{Version: ir.CursorFormatVersion, Cursor: int64(c)})
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

// Delete removes the cursor file. Deleting a missing file is a no-op.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete cursor: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
