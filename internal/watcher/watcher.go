// Package watcher observes the tournament record directory and evicts
// cached derivations when record files change.
//
// The cache's (id, mtime) key already guards against staleness; the
// watcher only makes eviction eager so memory is not held for records
// that were rewritten or deleted. A watcher failure therefore degrades
// service quality, never correctness.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Evictor receives eviction callbacks for changed tournament ids.
type Evictor interface {
	Evict(id string)
}

// Watcher tails fsnotify events for one results directory.
type Watcher struct {
	dir     string
	evictor Evictor
	logger  *slog.Logger

	// debounce coalesces editor write bursts for the same record.
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
}

// New creates a watcher over the given results directory.
func New(dir string, evictor Evictor, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:      dir,
		evictor:  evictor,
		logger:   logger,
		debounce: 500 * time.Millisecond,
		pending:  make(map[string]struct{}),
	}
}

// Run watches until the context is canceled. Errors setting up the
// underlying fsnotify watcher are returned so the caller can decide to
// continue without eager eviction.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching record store", slog.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			id := tournamentID(event.Name)
			if id == "" {
				continue
			}
			w.schedule(id)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("record watcher error", slog.String("error", err.Error()))
		}
	}
}

// schedule queues an eviction and (re)arms the debounce timer.
func (w *Watcher) schedule(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[id] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	ids := make([]string, 0, len(w.pending))
	for id := range w.pending {
		ids = append(ids, id)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	for _, id := range ids {
		w.logger.Debug("record changed", slog.String("tournament", id))
		w.evictor.Evict(id)
	}
}

// tournamentID maps an event path to a tournament id, or "" for paths
// that are not record files.
func tournamentID(path string) string {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ".yaml"):
		return strings.TrimSuffix(base, ".yaml")
	case strings.HasSuffix(base, ".yml"):
		return strings.TrimSuffix(base, ".yml")
	default:
		return ""
	}
}
