// Package query answers structured questions against one interpreted
// tournament. Every operation is a stateless read over derived state;
// nothing is cached or mutated here.
package query

import (
	"sort"
	"strconv"
	"strings"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
	"github.com/scio-ly/resultsmcp/internal/interp"
	"github.com/scio-ly/resultsmcp/internal/record"
)

// Engine wraps one tournament's derived result set.
type Engine struct {
	result *interp.Result
}

// New creates an engine over an interpreted tournament.
func New(result *interp.Result) *Engine {
	return &Engine{result: result}
}

// Tournament returns the underlying raw tournament.
func (e *Engine) Tournament() *record.Tournament {
	return e.result.Tournament
}

// Result returns the full derived result set.
func (e *Engine) Result() *interp.Result {
	return e.result
}

// ResolveTeam resolves a caller-supplied team reference in two stages:
// an exact team-number match first, then a case-insensitive substring
// match on school name. When several schools share the substring the
// lowest team number wins; substring matching can therefore pick an
// unintended team, which is why number lookup is tried first.
func (e *Engine) ResolveTeam(ref string) (*interp.Standing, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, rerrors.Validation("team must be a team number or school name")
	}

	if number, err := strconv.Atoi(ref); err == nil {
		if s := e.result.Standing(number); s != nil {
			return s, nil
		}
		return nil, rerrors.TeamNotFound(e.result.Tournament.ID, ref)
	}

	needle := strings.ToLower(ref)
	var match *interp.Standing
	for _, s := range e.result.Standings {
		name := strings.ToLower(s.Team.DisplayName())
		if strings.Contains(name, needle) {
			if match == nil || s.Team.Number < match.Team.Number {
				match = s
			}
		}
	}
	if match == nil {
		return nil, rerrors.TeamNotFound(e.result.Tournament.ID, ref)
	}
	return match, nil
}

// Placement answers the placement question for a team. With an empty
// event it returns the team's overall standing; otherwise the single
// placement for the (team, event) pair.
func (e *Engine) Placement(teamRef, event string) (*interp.Standing, *interp.Placing, error) {
	standing, err := e.ResolveTeam(teamRef)
	if err != nil {
		return nil, nil, err
	}
	if event == "" {
		return standing, nil, nil
	}

	if e.result.Tournament.EventByName(event) == nil {
		return nil, nil, rerrors.EventNotFound(e.result.Tournament.ID, event)
	}
	for _, pl := range standing.Placings {
		if pl.Event == event {
			return standing, pl, nil
		}
	}
	return nil, nil, rerrors.PlacementNotFound(e.result.Tournament.ID, teamRef, event)
}

// Rankings returns teams ordered by derived rank ascending. A positive
// limit truncates the list without renumbering ranks; exhibition teams
// are excluded since they hold no rank.
func (e *Engine) Rankings(limit int) []*interp.Standing {
	var ranked []*interp.Standing
	for _, s := range e.result.Standings {
		if s.Team.Exhibition {
			continue
		}
		ranked = append(ranked, s)
	}
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// Roster returns every team, exhibition and disqualified included,
// ordered by team number.
func (e *Engine) Roster() []*interp.Standing {
	roster := make([]*interp.Standing, len(e.result.Standings))
	copy(roster, e.result.Standings)
	sort.Slice(roster, func(i, j int) bool {
		return roster[i].Team.Number < roster[j].Team.Number
	})
	return roster
}

// AllPlacements returns every placement for a team across all events,
// dropped ones included, ordered by event name.
func (e *Engine) AllPlacements(teamRef string) (*interp.Standing, []*interp.Placing, error) {
	standing, err := e.ResolveTeam(teamRef)
	if err != nil {
		return nil, nil, err
	}
	return standing, standing.Placings, nil
}

// Info summarizes the tournament: title, team count, and event names.
type Info struct {
	ID        string
	Title     string
	Level     record.Level
	Location  string
	State     string
	Division  string
	Date      string
	DropCount int
	TeamCount int
	Events    []string
}

// Info returns the tournament summary. The title falls back to the
// tournament id when the record has no name and none could be derived.
func (e *Engine) Info() Info {
	t := e.result.Tournament
	title := t.Name
	if title == "" {
		title = t.ID
	}
	events := make([]string, 0, len(t.Events))
	for _, ev := range t.Events {
		events = append(events, ev.Name)
	}
	sort.Strings(events)
	return Info{
		ID:        t.ID,
		Title:     title,
		Level:     t.Level,
		Location:  t.Location,
		State:     t.State,
		Division:  t.Division,
		Date:      t.Date,
		DropCount: t.DropCount,
		TeamCount: len(t.Teams),
		Events:    events,
	}
}
