package record

import (
	"fmt"

	"gopkg.in/yaml.v3"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
)

// rawRecord mirrors the on-disk YAML shape. Kept private: the loader is
// the boundary between the interchange format and the typed model.
type rawRecord struct {
	Tournament rawTournament  `yaml:"Tournament"`
	Events     []rawEvent     `yaml:"Events"`
	Teams      []rawTeam      `yaml:"Teams"`
	Placings   []rawPlacement `yaml:"Placings"`
}

type rawTournament struct {
	Name     string `yaml:"name"`
	Level    string `yaml:"level"`
	Location string `yaml:"location"`
	State    string `yaml:"state"`
	Division string `yaml:"division"`
	Date     string `yaml:"date"`
	Drops    int    `yaml:"worst placings dropped"`
}

type rawEvent struct {
	Name      string `yaml:"name"`
	Trial     bool   `yaml:"trial"`
	TrialOnly bool   `yaml:"trialed"`
}

type rawTeam struct {
	Number       int    `yaml:"number"`
	School       string `yaml:"school"`
	Suffix       string `yaml:"suffix"`
	City         string `yaml:"city"`
	State        string `yaml:"state"`
	Disqualified bool   `yaml:"disqualified"`
	Exhibition   bool   `yaml:"exhibition"`
}

type rawPlacement struct {
	Team         int    `yaml:"team"`
	Event        string `yaml:"event"`
	Place        int    `yaml:"place"`
	Points       *int   `yaml:"points"`
	Disqualified bool   `yaml:"disqualified"`
}

// Load parses one raw tournament record and validates its structural
// invariants. It returns a parse error naming the malformed field;
// callers get either a fully valid Tournament or nothing.
func Load(data []byte, id string) (*Tournament, error) {
	var raw rawRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, rerrors.New(rerrors.ErrCodeRecordMalformed,
			fmt.Sprintf("tournament %q: invalid YAML: %v", id, err), err)
	}

	t := &Tournament{
		ID:        id,
		Name:      raw.Tournament.Name,
		Level:     Level(raw.Tournament.Level),
		Location:  raw.Tournament.Location,
		State:     raw.Tournament.State,
		Division:  raw.Tournament.Division,
		Date:      raw.Tournament.Date,
		DropCount: raw.Tournament.Drops,
	}

	if t.Level == "" {
		return nil, rerrors.MissingField(id, "Tournament.level")
	}
	if t.DropCount < 0 {
		return nil, rerrors.Parse(id, "Tournament.worst placings dropped", "must not be negative")
	}
	if t.Name == "" {
		t.Name = deriveTitle(t.Level, t.Location, t.State)
	}

	if len(raw.Events) == 0 {
		return nil, rerrors.MissingField(id, "Events")
	}
	seenEvents := make(map[string]bool, len(raw.Events))
	for i, ev := range raw.Events {
		if ev.Name == "" {
			return nil, rerrors.MissingField(id, fmt.Sprintf("Events[%d].name", i))
		}
		if seenEvents[ev.Name] {
			return nil, rerrors.Parse(id, "Events", fmt.Sprintf("duplicate event %q", ev.Name))
		}
		seenEvents[ev.Name] = true
		t.Events = append(t.Events, &Event{
			Name:      ev.Name,
			Trial:     ev.Trial,
			TrialOnly: ev.TrialOnly,
		})
	}

	if len(raw.Teams) == 0 {
		return nil, rerrors.MissingField(id, "Teams")
	}
	seenTeams := make(map[int]bool, len(raw.Teams))
	for i, tm := range raw.Teams {
		if tm.Number <= 0 {
			return nil, rerrors.Parse(id, fmt.Sprintf("Teams[%d].number", i), "must be a positive integer")
		}
		if tm.School == "" {
			return nil, rerrors.MissingField(id, fmt.Sprintf("Teams[%d].school", i))
		}
		if seenTeams[tm.Number] {
			return nil, rerrors.Parse(id, "Teams", fmt.Sprintf("duplicate team number %d", tm.Number))
		}
		seenTeams[tm.Number] = true
		t.Teams = append(t.Teams, &Team{
			Number:       tm.Number,
			School:       tm.School,
			Suffix:       tm.Suffix,
			City:         tm.City,
			State:        tm.State,
			Disqualified: tm.Disqualified,
			Exhibition:   tm.Exhibition,
		})
	}

	type pair struct {
		team  int
		event string
	}
	seenPairs := make(map[pair]bool, len(raw.Placings))
	for i, p := range raw.Placings {
		if p.Event == "" {
			return nil, rerrors.MissingField(id, fmt.Sprintf("Placings[%d].event", i))
		}
		if p.Place < 0 {
			return nil, rerrors.Parse(id, fmt.Sprintf("Placings[%d].place", i), "must not be negative")
		}
		key := pair{team: p.Team, event: p.Event}
		if seenPairs[key] {
			return nil, rerrors.Parse(id, "Placings",
				fmt.Sprintf("duplicate placement for team %d in event %q", p.Team, p.Event))
		}
		seenPairs[key] = true

		// Points default to the raw place: in this domain a team's
		// score for an event is its finishing position.
		points := p.Place
		if p.Points != nil {
			points = *p.Points
		}
		t.Placements = append(t.Placements, &Placement{
			TeamNumber:   p.Team,
			Event:        p.Event,
			Points:       points,
			Place:        p.Place,
			Disqualified: p.Disqualified || p.Place == 0,
		})
	}

	return t, nil
}
