package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesFromCode(t *testing.T) {
	tests := []struct {
		code      string
		category  Category
		severity  Severity
		retryable bool
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityFatal, false},
		{ErrCodeRecordMalformed, CategoryParse, SeverityError, false},
		{ErrCodeCatalogUnreachable, CategoryFetch, SeverityError, true},
		{ErrCodeInvalidArgument, CategoryValidation, SeverityError, false},
		{ErrCodeInternal, CategoryInternal, SeverityError, false},
		{ErrCodeTournamentNotFound, CategoryNotFound, SeverityError, false},
		{ErrCodeDanglingTeam, CategoryConsistency, SeverityError, false},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			err := New(tc.code, "boom", nil)
			assert.Equal(t, tc.category, err.Category)
			assert.Equal(t, tc.severity, err.Severity)
			assert.Equal(t, tc.retryable, err.Retryable)
		})
	}
}

func TestError_Format(t *testing.T) {
	err := New(ErrCodeTournamentNotFound, "tournament \"x\" not found", nil)
	assert.Equal(t, `[ERR_601_TOURNAMENT_NOT_FOUND] tournament "x" not found`, err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(ErrCodeInternal, cause)
	require.NotNil(t, err)
	assert.Equal(t, cause, stderrors.Unwrap(err))
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := TournamentNotFound("2024-demo")
	assert.ErrorIs(t, err, New(ErrCodeTournamentNotFound, "anything", nil))
	assert.NotErrorIs(t, err, New(ErrCodeTeamNotFound, "anything", nil))
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeTeamNotFound, "no such team", nil).
		WithDetail("tournament", "demo").
		WithDetail("team", "42").
		WithSuggestion("Check the roster.")

	assert.Equal(t, "demo", err.Details["tournament"])
	assert.Equal(t, "42", err.Details["team"])
	assert.Equal(t, "Check the roster.", err.Suggestion)
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryNotFound, CategoryOf(TeamNotFound("t", "x")))
	assert.Equal(t, CategoryInternal, CategoryOf(fmt.Errorf("plain")))

	// Wrapped ResultsErrors are still classified.
	wrapped := fmt.Errorf("context: %w", EventNotFound("t", "Anatomy"))
	assert.Equal(t, CategoryNotFound, CategoryOf(wrapped))
}

func TestNotFoundHelpers(t *testing.T) {
	assert.True(t, IsNotFound(TournamentNotFound("x")))
	assert.True(t, IsNotFound(PlacementNotFound("t", "1", "Anatomy")))
	assert.False(t, IsNotFound(Validation("bad input")))

	assert.True(t, IsTournamentNotFound(TournamentNotFound("x")))
	assert.False(t, IsTournamentNotFound(TeamNotFound("t", "x")))
	assert.False(t, IsTournamentNotFound(fmt.Errorf("plain")))
}

func TestDomainConstructors(t *testing.T) {
	err := TournamentNotFound("2024-demo")
	assert.Equal(t, ErrCodeTournamentNotFound, err.Code)
	assert.Equal(t, "2024-demo", err.Details["tournament"])
	assert.NotEmpty(t, err.Suggestion)

	perr := Parse("2024-demo", "Teams", "duplicate team number 3")
	assert.Equal(t, ErrCodeFieldInvalid, perr.Code)
	assert.Contains(t, perr.Message, "duplicate team number 3")

	cerr := Consistency(ErrCodeDanglingEvent, "2024-demo", "event")
	assert.Equal(t, CategoryConsistency, cerr.Category)

	ferr := Fetch("https://example.com/x.json", fmt.Errorf("timeout"))
	assert.True(t, ferr.Retryable)
}
