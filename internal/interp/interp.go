// Package interp derives official results from a raw tournament record:
// per-event placement rankings, per-team totals under the drop rule,
// and overall team ranks.
//
// Derivation is deterministic and all-or-nothing: a record either fully
// interprets or the whole operation fails. Nothing here is persisted;
// repeated interpretation of the same record yields identical results.
package interp

import (
	"sort"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
	"github.com/scio-ly/resultsmcp/internal/record"
)

// Placing is one team's derived outcome in one event.
type Placing struct {
	Team  *record.Team
	Event string

	// Place is the derived standard-competition place, or 0 for a
	// disqualified or no-show result (carried from the input, never
	// produced by ranking).
	Place  int
	Points int
	Tie    bool

	// Dropped marks a placement excluded from the team's total under
	// the drop-worst-N rule. Dropped placements stay visible as data.
	Dropped bool

	Disqualified bool

	// countable is true when the placement feeds the team's total:
	// not disqualified and not in a trial event.
	countable bool
}

func (p *Placing) score() int { return p.Points }

func (p *Placing) setRank(place int, tie bool) {
	p.Place = place
	p.Tie = tie
}

// Standing is one team's derived overall result.
type Standing struct {
	Team *record.Team

	TotalPoints int

	// Rank is the overall standard-competition rank. Exhibition teams
	// carry rank 0: they are listed but occupy no rank slot.
	Rank int
	Tie  bool

	// Placings holds every placement for the team, dropped ones
	// included, ordered by event name.
	Placings []*Placing
}

func (s *Standing) score() int { return s.TotalPoints }

func (s *Standing) setRank(place int, tie bool) {
	s.Rank = place
	s.Tie = tie
}

// Result is the fully derived state for one tournament.
type Result struct {
	Tournament *record.Tournament

	// Standings is ordered: ranked teams by rank, then disqualified
	// teams, then exhibition teams.
	Standings []*Standing

	byTeam  map[int]*Standing
	byEvent map[string][]*Placing
}

// Interpret derives the full result set for a loaded tournament.
// Any placement referencing an undeclared team or event fails the whole
// derivation with a consistency error.
func Interpret(t *record.Tournament) (*Result, error) {
	r := &Result{
		Tournament: t,
		byTeam:     make(map[int]*Standing, len(t.Teams)),
		byEvent:    make(map[string][]*Placing, len(t.Events)),
	}

	for _, tm := range t.Teams {
		s := &Standing{Team: tm}
		r.byTeam[tm.Number] = s
		r.Standings = append(r.Standings, s)
	}

	trial := make(map[string]bool, len(t.Events))
	for _, ev := range t.Events {
		trial[ev.Name] = ev.Trial || ev.TrialOnly
		r.byEvent[ev.Name] = nil
	}

	// Consistency pass: every placement must reference a declared team
	// and event before any ranking happens.
	for _, p := range t.Placements {
		standing, ok := r.byTeam[p.TeamNumber]
		if !ok {
			return nil, rerrors.Consistency(rerrors.ErrCodeDanglingTeam, t.ID, "team")
		}
		if _, ok := r.byEvent[p.Event]; !ok {
			return nil, rerrors.Consistency(rerrors.ErrCodeDanglingEvent, t.ID, "event")
		}

		pl := &Placing{
			Team:         standing.Team,
			Event:        p.Event,
			Points:       p.Points,
			Disqualified: p.Disqualified,
			countable:    !p.Disqualified && !trial[p.Event],
		}
		standing.Placings = append(standing.Placings, pl)
		r.byEvent[p.Event] = append(r.byEvent[p.Event], pl)
	}

	for name := range r.byEvent {
		rankEvent(r.byEvent[name])
	}

	for _, s := range r.Standings {
		sort.Slice(s.Placings, func(i, j int) bool {
			return s.Placings[i].Event < s.Placings[j].Event
		})
		applyDrops(s, t.DropCount)
		s.TotalPoints = 0
		for _, pl := range s.Placings {
			if pl.countable && !pl.Dropped {
				s.TotalPoints += pl.Points
			}
		}
	}

	rankOverall(r.Standings)
	return r, nil
}

// rankEvent orders one event's placements by points ascending and
// assigns standard competition ranks. Disqualified and no-show
// placements keep place 0 and sort after every scored placement.
func rankEvent(placings []*Placing) {
	scored := make([]rankable, 0, len(placings))
	for _, pl := range placings {
		if !pl.Disqualified {
			scored = append(scored, pl)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score() < scored[j].score()
	})
	assignRanks(scored)

	sort.SliceStable(placings, func(i, j int) bool {
		if placings[i].Disqualified != placings[j].Disqualified {
			return !placings[i].Disqualified
		}
		if placings[i].Points != placings[j].Points {
			return placings[i].Points < placings[j].Points
		}
		return placings[i].Team.Number < placings[j].Team.Number
	})
}

// applyDrops marks a team's N worst countable placements dropped.
//
// Boundary rule: when several placements tie on points at the drop
// cutoff, the one whose event name sorts first lexicographically is
// dropped first. This is the deterministic tie-break for the classic
// off-by-one dispute; increasing N can never raise a total.
func applyDrops(s *Standing, n int) {
	if n <= 0 {
		return
	}
	candidates := make([]*Placing, 0, len(s.Placings))
	for _, pl := range s.Placings {
		if pl.countable {
			candidates = append(candidates, pl)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Points != candidates[j].Points {
			return candidates[i].Points > candidates[j].Points
		}
		return candidates[i].Event < candidates[j].Event
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	for _, pl := range candidates[:n] {
		pl.Dropped = true
	}
}

// rankOverall assigns overall ranks and fixes the standings order.
//
// The ranking pool excludes exhibition teams entirely: they appear in
// listings but never occupy or shift a rank slot. Disqualified teams
// rank after every qualified team, ordered among themselves by points,
// so their presence cannot change any other team's rank number.
func rankOverall(standings []*Standing) {
	var ranked, dq, exhibition []*Standing
	for _, s := range standings {
		switch {
		case s.Team.Exhibition:
			exhibition = append(exhibition, s)
		case s.Team.Disqualified:
			dq = append(dq, s)
		default:
			ranked = append(ranked, s)
		}
	}

	byPoints := func(group []*Standing) {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].TotalPoints != group[j].TotalPoints {
				return group[i].TotalPoints < group[j].TotalPoints
			}
			return group[i].Team.Number < group[j].Team.Number
		})
	}
	byPoints(ranked)
	byPoints(dq)
	byPoints(exhibition)

	pool := make([]rankable, len(ranked))
	for i, s := range ranked {
		pool[i] = s
	}
	assignRanks(pool)

	dqPool := make([]rankable, len(dq))
	for i, s := range dq {
		dqPool[i] = s
	}
	assignRanks(dqPool)
	for _, s := range dq {
		s.Rank += len(ranked)
	}

	ordered := make([]*Standing, 0, len(standings))
	ordered = append(ordered, ranked...)
	ordered = append(ordered, dq...)
	ordered = append(ordered, exhibition...)
	copy(standings, ordered)
}

// Standing returns the derived standing for a team number, or nil.
func (r *Result) Standing(teamNumber int) *Standing {
	return r.byTeam[teamNumber]
}

// EventPlacings returns one event's placements ordered best-first, or
// nil when the event is not held at the tournament.
func (r *Result) EventPlacings(event string) []*Placing {
	return r.byEvent[event]
}

// Countable reports whether the placing feeds its team's total.
func (p *Placing) Countable() bool {
	return p.countable
}
