// Package search builds an in-memory fuzzy-searchable corpus of
// tournaments, teams, and schools and ranks entries against free-text
// queries.
//
// Two corpus sources exist: the local record store (every tournament
// loaded and interpreted) and the external read-only catalog. Both feed
// the same index, so ranking and formatting are identical regardless of
// where the entries came from.
package search

import "context"

// Kind classifies a search entry.
type Kind string

const (
	KindTournament Kind = "tournament"
	KindTeam       Kind = "team"
	KindSchool     Kind = "school"
)

// Entry is one searchable record.
type Entry struct {
	// ID addresses the underlying object: a tournament id, or a
	// "<tournament>/<team-number>" pair for teams.
	ID string

	Kind Kind

	// Name is the primary match field, weighted above Text.
	Name string

	// Text concatenates the secondary searchable fields: location,
	// identifiers, keywords, and the owning tournament's title.
	Text string

	// Location is kept separately for display.
	Location string
}

// Result is one ranked match.
type Result struct {
	Entry Entry

	// Score is the weighted similarity; higher is better. Results are
	// returned best-first.
	Score int
}

// Source supplies the entries an index is built from.
type Source interface {
	// Entries materializes the full corpus. Implementations decide how
	// partial failure is handled: corpus aggregation skips unloadable
	// records, catalog fetches fail the whole call.
	Entries(ctx context.Context) ([]Entry, error)
}
