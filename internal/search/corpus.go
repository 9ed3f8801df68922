package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/scio-ly/resultsmcp/internal/cache"
	"github.com/scio-ly/resultsmcp/internal/record"
)

// CorpusSource aggregates every tournament in the local record store
// into search entries: one per tournament plus one per team.
//
// Loads run in parallel. A record that fails to load or interpret is
// logged and skipped; a partial corpus is acceptable for search, unlike
// for a direct tournament query.
type CorpusSource struct {
	store   *record.Store
	interp  *cache.Interpreter
	workers int
	logger  *slog.Logger
}

// NewCorpusSource creates a corpus source over the record store.
// The cache interpreter is shared with the query path, so a search
// warm-up also warms direct lookups.
func NewCorpusSource(store *record.Store, interp *cache.Interpreter, workers int, logger *slog.Logger) *CorpusSource {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CorpusSource{store: store, interp: interp, workers: workers, logger: logger}
}

// Entries loads and interprets every stored tournament.
func (s *CorpusSource) Entries(ctx context.Context) ([]Entry, error) {
	ids, err := s.store.List()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	perID := make(map[string][]Entry, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.interp.Get(id)
			if err != nil {
				s.logger.Warn("skipping unloadable record",
					slog.String("tournament", id),
					slog.String("error", err.Error()))
				return nil
			}

			t := result.Tournament
			title := t.Name
			if title == "" {
				title = t.ID
			}
			entries := make([]Entry, 0, 1+len(result.Standings))
			entries = append(entries, Entry{
				ID:       t.ID,
				Kind:     KindTournament,
				Name:     title,
				Text:     strings.Join([]string{title, t.Location, t.State, string(t.Level), t.ID}, " "),
				Location: t.Location,
			})
			for _, st := range result.Standings {
				tm := st.Team
				entries = append(entries, Entry{
					ID:       fmt.Sprintf("%s/%d", t.ID, tm.Number),
					Kind:     KindTeam,
					Name:     tm.DisplayName(),
					Text:     strings.Join([]string{tm.School, tm.City, tm.State, title}, " "),
					Location: tm.City,
				})
			}

			mu.Lock()
			perID[id] = entries
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Assemble in listing order so equal-score search ties are stable.
	var all []Entry
	for _, id := range ids {
		all = append(all, perID[id]...)
	}
	return all, nil
}
