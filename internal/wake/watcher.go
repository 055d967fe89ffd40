// Package wake turns writes to the shared store by other processes into
// replay triggers.
package wake

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/logging"
)

// DefaultDebounce coalesces bursts of writes into one trigger.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches the store's directory and calls trigger once per burst of
// writes to the database file or its WAL.
type Watcher struct {
	fsw      *fsnotify.Watcher
	names    map[string]struct{}
	trigger  func()
	debounce time.Duration
	log      *zap.Logger
}

// New watches the directory holding dbPath.
func New(dbPath string, trigger func(), debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if trigger == nil {
		return nil, errors.New("wake: trigger is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("wake: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("wake: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("wake: watch %s: %w", filepath.Dir(abs), err)
	}

	base := filepath.Base(abs)
	return &Watcher{
		fsw:      fsw,
		names:    map[string]struct{}{base: {}, base + "-wal": {}},
		trigger:  trigger,
		debounce: debounce,
		log:      logging.OrNop(log),
	}, nil
}

// Run delivers triggers until ctx is done. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if !armed {
				timer.Reset(w.debounce)
				armed = true
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("store watcher error", zap.Error(err))

		case <-timer.C:
			armed = false
			w.trigger()
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	_, ok := w.names[filepath.Base(ev.Name)]
	return ok
}
