package search

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Weighting for the two match fields. A hit on the primary name field
// counts double a hit on the concatenated secondary text.
const (
	nameWeight = 2
	textWeight = 1
)

// Options tunes index construction.
type Options struct {
	// MinScore discards matches scoring below it as noise.
	MinScore int
	// MaxResults caps the result list when the caller passes no limit.
	MaxResults int
}

// Index is an immutable in-memory search corpus.
type Index struct {
	entries []Entry
	opts    Options
}

// Build materializes the source's corpus into an index.
func Build(ctx context.Context, source Source, opts Options) (*Index, error) {
	entries, err := source.Entries(ctx)
	if err != nil {
		return nil, err
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	return &Index{entries: entries, opts: opts}, nil
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search ranks entries against a free-text query, best match first.
// An empty kind searches every entry kind; a positive limit truncates
// the result list. Queries are normalized before matching so casual
// synonyms and case differences rank identically; a multi-token query
// that matches nothing is retried with one token left out at a time.
func (ix *Index) Search(query string, kind Kind, limit int) []Result {
	query = Normalize(query)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = ix.opts.MaxResults
	}

	pool := ix.entries
	if kind != "" {
		pool = make([]Entry, 0, len(ix.entries))
		for _, e := range ix.entries {
			if e.Kind == kind {
				pool = append(pool, e)
			}
		}
	}

	scores := matchScores(pool, query)
	if len(scores) == 0 {
		scores = relaxedScores(pool, query)
	}

	results := make([]Result, 0, len(scores))
	for i, score := range scores {
		if score < ix.opts.MinScore {
			continue
		}
		results = append(results, Result{Entry: pool[i], Score: score})
	}

	// Best first; equal scores order by id for determinism.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.ID < results[j].Entry.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// matchScores runs the weighted two-field match: the name and the
// secondary text are scored separately, then combined. An entry
// matching on both fields sums both contributions, keeping name hits
// dominant.
func matchScores(pool []Entry, query string) map[int]int {
	scores := make(map[int]int, len(pool))
	names := make([]string, len(pool))
	texts := make([]string, len(pool))
	for i, e := range pool {
		names[i] = e.Name
		texts[i] = e.Text
	}
	for _, m := range fuzzy.Find(query, names) {
		scores[m.Index] += m.Score * nameWeight
	}
	for _, m := range fuzzy.Find(query, texts) {
		scores[m.Index] += m.Score * textWeight
	}
	return scores
}

// relaxedScores retries a query that matched nothing with one token
// left out at a time, keeping each entry's best score across the
// retries. Subsequence matching cannot bridge a substituted character,
// so a single misspelled token would otherwise sink the whole query.
func relaxedScores(pool []Entry, query string) map[int]int {
	tokens := strings.Fields(query)
	if len(tokens) < 2 {
		return nil
	}

	best := make(map[int]int)
	for skip := range tokens {
		rest := make([]string, 0, len(tokens)-1)
		for i, tok := range tokens {
			if i != skip {
				rest = append(rest, tok)
			}
		}
		for i, score := range matchScores(pool, strings.Join(rest, " ")) {
			if cur, ok := best[i]; !ok || score > cur {
				best[i] = score
			}
		}
	}
	return best
}
