package search

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scio-ly/resultsmcp/internal/cache"
	"github.com/scio-ly/resultsmcp/internal/record"
)

const corpusRecord = `
Tournament:
  name: Golden Gate Invitational
  level: Invitational
  location: San Francisco
  state: CA
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: Redwood High School
    city: Oakland
    state: CA
  - number: 2
    school: Sequoia High School
    city: Irvine
    state: CA
Placings:
  - team: 1
    event: Anatomy
    place: 1
  - team: 2
    event: Anatomy
    place: 2
`

func corpusSource(t *testing.T, records map[string]string) *CorpusSource {
	t.Helper()
	dir := t.TempDir()
	for id, content := range records {
		require.NoError(t, os.WriteFile(filepath.Join(dir, id+".yaml"), []byte(content), 0o644))
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := record.NewStore(dir)
	return NewCorpusSource(store, cache.New(store, 8, logger), 2, logger)
}

func TestCorpusSource_Entries(t *testing.T) {
	source := corpusSource(t, map[string]string{"2024-01-20_golden_gate_invitational_c": corpusRecord})

	entries, err := source.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, KindTournament, entries[0].Kind)
	assert.Equal(t, "Golden Gate Invitational", entries[0].Name)
	assert.Equal(t, "2024-01-20_golden_gate_invitational_c", entries[0].ID)

	var teamIDs []string
	for _, e := range entries[1:] {
		assert.Equal(t, KindTeam, e.Kind)
		teamIDs = append(teamIDs, e.ID)
	}
	assert.ElementsMatch(t, []string{
		"2024-01-20_golden_gate_invitational_c/1",
		"2024-01-20_golden_gate_invitational_c/2",
	}, teamIDs)
}

func TestCorpusSource_SkipsUnloadableRecords(t *testing.T) {
	source := corpusSource(t, map[string]string{
		"good": corpusRecord,
		"bad":  "Tournament: [unclosed",
	})

	entries, err := source.Entries(context.Background())
	require.NoError(t, err)

	// The broken record is skipped; the good one still indexes fully.
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.NotContains(t, e.ID, "bad")
	}
}

func TestCorpusSource_EmptyStore(t *testing.T) {
	source := corpusSource(t, nil)

	entries, err := source.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
