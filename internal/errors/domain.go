package errors

import "fmt"

// Domain constructors for the error taxonomy. Each wraps New with the
// right code so call sites stay one line.

// TournamentNotFound indicates no record exists for the given tournament id.
func TournamentNotFound(id string) *ResultsError {
	return New(ErrCodeTournamentNotFound, fmt.Sprintf("tournament %q not found", id), nil).
		WithDetail("tournament", id).
		WithSuggestion("Use list_tournaments to see available tournament ids.")
}

// TeamNotFound indicates no team matched the given number or school name.
func TeamNotFound(tournament, team string) *ResultsError {
	return New(ErrCodeTeamNotFound, fmt.Sprintf("team %q not found in tournament %q", team, tournament), nil).
		WithDetail("tournament", tournament).
		WithDetail("team", team)
}

// EventNotFound indicates the event is not held at the tournament.
func EventNotFound(tournament, event string) *ResultsError {
	return New(ErrCodeEventNotFound, fmt.Sprintf("event %q not held at tournament %q", event, tournament), nil).
		WithDetail("tournament", tournament).
		WithDetail("event", event)
}

// PlacementNotFound indicates the team has no recorded placement in the event.
func PlacementNotFound(tournament, team, event string) *ResultsError {
	return New(ErrCodePlacementNotFound,
		fmt.Sprintf("no placement recorded for team %q in event %q at tournament %q", team, event, tournament), nil).
		WithDetail("tournament", tournament).
		WithDetail("team", team).
		WithDetail("event", event)
}

// Parse indicates a malformed or missing field in a tournament record.
func Parse(id, field, reason string) *ResultsError {
	return New(ErrCodeFieldInvalid,
		fmt.Sprintf("tournament %q: field %q: %s", id, field, reason), nil).
		WithDetail("tournament", id).
		WithDetail("field", field)
}

// MissingField indicates a required record field is absent.
func MissingField(id, field string) *ResultsError {
	return New(ErrCodeFieldMissing,
		fmt.Sprintf("tournament %q: required field %q is missing", id, field), nil).
		WithDetail("tournament", id).
		WithDetail("field", field)
}

// Consistency indicates a placement referencing an undeclared team or event.
func Consistency(code, id, ref string) *ResultsError {
	return New(code, fmt.Sprintf("tournament %q: placement references undeclared %s", id, ref), nil).
		WithDetail("tournament", id).
		WithDetail("reference", ref)
}

// Fetch indicates the external catalog could not be reached or read.
func Fetch(source string, cause error) *ResultsError {
	return New(ErrCodeCatalogUnreachable,
		fmt.Sprintf("failed to fetch %s: %v", source, cause), cause).
		WithDetail("source", source).
		WithSuggestion("Check network connectivity and retry.")
}

// Validation indicates malformed caller arguments.
func Validation(msg string) *ResultsError {
	return New(ErrCodeInvalidArgument, msg, nil)
}
