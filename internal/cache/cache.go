// Package cache provides a read-through cache of interpreted
// tournaments keyed by (tournament id, record modification time).
//
// The record store is the only source of truth; a cached derivation is
// valid exactly as long as the record file's mtime is unchanged. A
// stale or missing entry triggers a fresh load and interpretation, so
// callers always observe state consistent with the file on disk.
package cache

import (
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/scio-ly/resultsmcp/internal/interp"
	"github.com/scio-ly/resultsmcp/internal/record"
)

// DefaultSize is the default number of interpreted tournaments kept in
// memory. A mid-size season corpus fits comfortably.
const DefaultSize = 128

type entry struct {
	modTime time.Time
	result  *interp.Result
}

// Interpreter is a caching front for load-plus-interpret. With size 0
// it degrades to pass-through recomputation on every call.
type Interpreter struct {
	store  *record.Store
	cache  *lru.Cache[string, entry]
	logger *slog.Logger
}

// New creates a caching interpreter over the given store.
func New(store *record.Store, size int, logger *slog.Logger) *Interpreter {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Interpreter{store: store, logger: logger}
	if size > 0 {
		c.cache, _ = lru.New[string, entry](size)
	}
	return c
}

// Get returns the derived result for a tournament, recomputing when the
// record changed on disk since it was cached.
func (c *Interpreter) Get(id string) (*interp.Result, error) {
	if c.cache == nil {
		return c.interpret(id)
	}

	modTime, err := c.store.ModTime(id)
	if err != nil {
		c.cache.Remove(id)
		return nil, err
	}

	if e, ok := c.cache.Get(id); ok && e.modTime.Equal(modTime) {
		return e.result, nil
	}

	result, err := c.interpret(id)
	if err != nil {
		return nil, err
	}
	c.cache.Add(id, entry{modTime: modTime, result: result})
	return result, nil
}

// Evict drops a tournament's cached derivation. Called by the record
// watcher when the underlying file changes or disappears.
func (c *Interpreter) Evict(id string) {
	if c.cache == nil {
		return
	}
	if c.cache.Remove(id) {
		c.logger.Debug("evicted cached tournament", slog.String("tournament", id))
	}
}

// Len returns the number of cached derivations.
func (c *Interpreter) Len() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

func (c *Interpreter) interpret(id string) (*interp.Result, error) {
	t, err := c.store.Load(id)
	if err != nil {
		return nil, err
	}
	return interp.Interpret(t)
}
