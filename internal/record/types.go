// Package record loads raw per-tournament YAML records into typed,
// validated entities. Downstream code never touches raw parsed mappings:
// the loader is the only place that sees the interchange shape.
package record

// Level classifies a tournament within a season.
type Level string

const (
	LevelInvitational Level = "Invitational"
	LevelRegionals    Level = "Regionals"
	LevelStates       Level = "States"
	LevelNationals    Level = "Nationals"
)

// Tournament is one competition's full raw result record.
// Immutable once loaded; derived state lives in package interp.
type Tournament struct {
	// ID is the stable store key, derived from the record filename.
	ID string

	// Name is the explicit display title, or the derived title when the
	// record carries none. Empty when no title can be derived.
	Name string

	Level    Level
	Location string
	State    string
	Division string
	Date     string

	// DropCount is the number of worst placements excluded from each
	// team's total ("worst placings dropped" in the raw record).
	DropCount int

	Teams      []*Team
	Events     []*Event
	Placements []*Placement
}

// Team identifies one school's entry at a tournament.
type Team struct {
	// Number is unique within the tournament.
	Number int

	School string
	// Suffix distinguishes multiple teams from one school ("A", "B").
	Suffix string
	City   string
	State  string

	Disqualified bool
	Exhibition   bool
}

// DisplayName renders the team as "School Suffix" for listings.
func (t *Team) DisplayName() string {
	if t.Suffix != "" {
		return t.School + " " + t.Suffix
	}
	return t.School
}

// Event is one competition event held at a tournament.
// Trial flags are carried through untouched; their scoring meaning is
// interpreted by the tournament, not reinterpreted here.
type Event struct {
	Name      string
	Trial     bool
	TrialOnly bool
}

// Placement is the recorded outcome of one team in one event.
// Place 0 always means disqualified or no-show; it is carried from the
// input, never produced by ranking.
type Placement struct {
	TeamNumber int
	Event      string

	// Points is the penalty-style score (lower is better).
	Points int

	// Place is the raw recorded place. The interpreter recomputes the
	// official place from points; 0 passes through as-is.
	Place int

	Disqualified bool
}

// TeamByNumber returns the team with the given number, or nil.
func (t *Tournament) TeamByNumber(number int) *Team {
	for _, tm := range t.Teams {
		if tm.Number == number {
			return tm
		}
	}
	return nil
}

// EventByName returns the event with the given name, or nil.
func (t *Tournament) EventByName(name string) *Event {
	for _, ev := range t.Events {
		if ev.Name == name {
			return ev
		}
	}
	return nil
}
