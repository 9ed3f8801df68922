package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
	"github.com/scio-ly/resultsmcp/internal/record"
)

// buildTournament assembles a minimal tournament for interpreter tests.
// Placements are given as team -> event -> points; points of 0 mean a
// disqualified/no-show placement.
func buildTournament(drops int, teams []*record.Team, events []string, points map[int]map[string]int) *record.Tournament {
	t := &record.Tournament{
		ID:        "demo-2024",
		Name:      "Demo Invitational",
		Level:     record.LevelInvitational,
		Location:  "Demo University",
		State:     "CA",
		DropCount: drops,
		Teams:     teams,
	}
	for _, ev := range events {
		t.Events = append(t.Events, &record.Event{Name: ev})
	}
	for teamNumber, perEvent := range points {
		for ev, pts := range perEvent {
			t.Placements = append(t.Placements, &record.Placement{
				TeamNumber:   teamNumber,
				Event:        ev,
				Points:       pts,
				Place:        pts,
				Disqualified: pts == 0,
			})
		}
	}
	return t
}

func team(number int, school string) *record.Team {
	return &record.Team{Number: number, School: school}
}

func TestInterpret_EventTies(t *testing.T) {
	// Two teams scoring identical points share a place with the tie
	// flag; the next distinct score's place accounts for the group.
	tt := buildTournament(0,
		[]*record.Team{team(1, "Alpha"), team(2, "Beta"), team(3, "Gamma"), team(4, "Delta")},
		[]string{"Astronomy"},
		map[int]map[string]int{
			1: {"Astronomy": 10},
			2: {"Astronomy": 10},
			3: {"Astronomy": 12},
			4: {"Astronomy": 9},
		})

	result, err := Interpret(tt)
	require.NoError(t, err)

	placings := result.EventPlacings("Astronomy")
	require.Len(t, placings, 4)

	assert.Equal(t, 4, placings[0].Team.Number)
	assert.Equal(t, 1, placings[0].Place)
	assert.False(t, placings[0].Tie)

	assert.Equal(t, 2, placings[1].Place)
	assert.True(t, placings[1].Tie)
	assert.Equal(t, 2, placings[2].Place)
	assert.True(t, placings[2].Tie)

	// Ties consume place numbers: next distinct score lands on 4.
	assert.Equal(t, 3, placings[3].Team.Number)
	assert.Equal(t, 4, placings[3].Place)
	assert.False(t, placings[3].Tie)
}

func TestInterpret_PlaceZeroCarriedThrough(t *testing.T) {
	tt := buildTournament(0,
		[]*record.Team{team(1, "Alpha"), team(2, "Beta")},
		[]string{"Codebusters"},
		map[int]map[string]int{
			1: {"Codebusters": 5},
			2: {"Codebusters": 0},
		})

	result, err := Interpret(tt)
	require.NoError(t, err)

	placings := result.EventPlacings("Codebusters")
	require.Len(t, placings, 2)
	assert.Equal(t, 1, placings[0].Place)
	// Disqualified placement keeps place 0 and sorts last.
	assert.Equal(t, 2, placings[1].Team.Number)
	assert.Equal(t, 0, placings[1].Place)
	assert.True(t, placings[1].Disqualified)
}

func TestInterpret_OverallRankingDemoExample(t *testing.T) {
	// demo-2024: A=40, B=40, C=55 must rank [A(1,tie), B(1,tie), C(3)].
	tt := buildTournament(0,
		[]*record.Team{team(1, "A"), team(2, "B"), team(3, "C")},
		[]string{"Anatomy"},
		map[int]map[string]int{
			1: {"Anatomy": 40},
			2: {"Anatomy": 40},
			3: {"Anatomy": 55},
		})

	result, err := Interpret(tt)
	require.NoError(t, err)

	require.Len(t, result.Standings, 3)
	assert.Equal(t, 1, result.Standings[0].Rank)
	assert.True(t, result.Standings[0].Tie)
	assert.Equal(t, 1, result.Standings[1].Rank)
	assert.True(t, result.Standings[1].Tie)
	assert.Equal(t, 3, result.Standings[2].Rank)
	assert.False(t, result.Standings[2].Tie)
	assert.Equal(t, "C", result.Standings[2].Team.School)
}

func TestInterpret_ExhibitionOccupiesNoRankSlot(t *testing.T) {
	base := []*record.Team{team(1, "Alpha"), team(2, "Beta")}
	points := map[int]map[string]int{
		1: {"Fermi Questions": 2},
		2: {"Fermi Questions": 4},
	}

	without, err := Interpret(buildTournament(0, base, []string{"Fermi Questions"}, points))
	require.NoError(t, err)

	exhibition := &record.Team{Number: 3, School: "Guest", Exhibition: true}
	withTeams := []*record.Team{team(1, "Alpha"), team(2, "Beta"), exhibition}
	withPoints := map[int]map[string]int{
		1: {"Fermi Questions": 2},
		2: {"Fermi Questions": 4},
		3: {"Fermi Questions": 1},
	}
	with, err := Interpret(buildTournament(0, withTeams, []string{"Fermi Questions"}, withPoints))
	require.NoError(t, err)

	// Adding an exhibition team changes no other team's rank.
	for _, tm := range []int{1, 2} {
		assert.Equal(t, without.Standing(tm).Rank, with.Standing(tm).Rank,
			"team %d rank shifted by exhibition team", tm)
	}

	// The exhibition team is listed but holds rank 0.
	guest := with.Standing(3)
	require.NotNil(t, guest)
	assert.Zero(t, guest.Rank)
	assert.Equal(t, guest, with.Standings[len(with.Standings)-1])
}

func TestInterpret_DisqualifiedNeverShiftsOtherRanks(t *testing.T) {
	teams := []*record.Team{team(1, "Alpha"), team(2, "Beta"), team(3, "Gamma")}
	points := map[int]map[string]int{
		1: {"Forensics": 3},
		2: {"Forensics": 5},
		3: {"Forensics": 1}, // best score
	}

	clean, err := Interpret(buildTournament(0, teams, []string{"Forensics"}, points))
	require.NoError(t, err)
	assert.Equal(t, 2, clean.Standing(1).Rank)
	assert.Equal(t, 3, clean.Standing(2).Rank)

	// Disqualify the leader: the other teams' ranks must improve only
	// by its removal from the pool, and the DQ team ranks after them.
	dqTeams := []*record.Team{team(1, "Alpha"), team(2, "Beta"),
		{Number: 3, School: "Gamma", Disqualified: true}}
	dq, err := Interpret(buildTournament(0, dqTeams, []string{"Forensics"}, points))
	require.NoError(t, err)

	assert.Equal(t, 1, dq.Standing(1).Rank)
	assert.Equal(t, 2, dq.Standing(2).Rank)
	assert.Equal(t, 3, dq.Standing(3).Rank)

	// Its recorded points survive.
	assert.Equal(t, 1, dq.Standing(3).TotalPoints)
}

func TestApplyDrops_WorstNExcluded(t *testing.T) {
	tt := buildTournament(1,
		[]*record.Team{team(1, "Alpha")},
		[]string{"Anatomy", "Botany", "Chem Lab"},
		map[int]map[string]int{
			1: {"Anatomy": 3, "Botany": 9, "Chem Lab": 5},
		})

	result, err := Interpret(tt)
	require.NoError(t, err)

	st := result.Standing(1)
	assert.Equal(t, 8, st.TotalPoints)

	var dropped []string
	for _, pl := range st.Placings {
		if pl.Dropped {
			dropped = append(dropped, pl.Event)
		}
	}
	assert.Equal(t, []string{"Botany"}, dropped)
}

func TestApplyDrops_BoundaryTie(t *testing.T) {
	// Two events tie on points at the drop cutoff: the event name that
	// sorts first lexicographically is dropped first.
	tt := buildTournament(1,
		[]*record.Team{team(1, "Alpha")},
		[]string{"Anatomy", "Botany", "Chem Lab"},
		map[int]map[string]int{
			1: {"Anatomy": 9, "Botany": 9, "Chem Lab": 2},
		})

	result, err := Interpret(tt)
	require.NoError(t, err)

	st := result.Standing(1)
	assert.Equal(t, 11, st.TotalPoints)
	for _, pl := range st.Placings {
		assert.Equal(t, pl.Event == "Anatomy", pl.Dropped, "event %s", pl.Event)
	}
}

func TestApplyDrops_MonotonicTotals(t *testing.T) {
	teams := []*record.Team{team(1, "Alpha")}
	events := []string{"Anatomy", "Botany", "Chem Lab", "Dynamic Planet"}
	points := map[int]map[string]int{
		1: {"Anatomy": 7, "Botany": 2, "Chem Lab": 7, "Dynamic Planet": 4},
	}

	prev := -1
	first := true
	for n := 0; n <= 5; n++ {
		result, err := Interpret(buildTournament(n, teams, events, points))
		require.NoError(t, err)
		total := result.Standing(1).TotalPoints
		if !first {
			assert.LessOrEqual(t, total, prev, "drop count %d raised the total", n)
		}
		prev = total
		first = false
	}
}

func TestInterpret_TrialEventsExcludedFromTotals(t *testing.T) {
	tt := buildTournament(0,
		[]*record.Team{team(1, "Alpha")},
		[]string{"Anatomy"},
		map[int]map[string]int{1: {"Anatomy": 4}})
	tt.Events = append(tt.Events, &record.Event{Name: "Ping Pong Parachute", Trial: true})
	tt.Placements = append(tt.Placements, &record.Placement{
		TeamNumber: 1, Event: "Ping Pong Parachute", Points: 1, Place: 1,
	})

	result, err := Interpret(tt)
	require.NoError(t, err)

	st := result.Standing(1)
	assert.Equal(t, 4, st.TotalPoints)
	require.Len(t, st.Placings, 2)
}

func TestInterpret_ConsistencyErrors(t *testing.T) {
	t.Run("dangling team", func(t *testing.T) {
		tt := buildTournament(0, []*record.Team{team(1, "Alpha")}, []string{"Anatomy"}, nil)
		tt.Placements = []*record.Placement{{TeamNumber: 99, Event: "Anatomy", Points: 1, Place: 1}}

		result, err := Interpret(tt)
		assert.Nil(t, result, "interpreter must not return partial state")
		require.Error(t, err)
		assert.Equal(t, rerrors.CategoryConsistency, rerrors.CategoryOf(err))
	})

	t.Run("dangling event", func(t *testing.T) {
		tt := buildTournament(0, []*record.Team{team(1, "Alpha")}, []string{"Anatomy"}, nil)
		tt.Placements = []*record.Placement{{TeamNumber: 1, Event: "Underwater Basket Weaving", Points: 1, Place: 1}}

		result, err := Interpret(tt)
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Equal(t, rerrors.CategoryConsistency, rerrors.CategoryOf(err))
	})
}

func TestInterpret_Deterministic(t *testing.T) {
	teams := []*record.Team{team(2, "Beta"), team(1, "Alpha"), team(3, "Gamma")}
	events := []string{"Anatomy", "Botany"}
	points := map[int]map[string]int{
		1: {"Anatomy": 1, "Botany": 3},
		2: {"Anatomy": 2, "Botany": 2},
		3: {"Anatomy": 3, "Botany": 1},
	}

	a, err := Interpret(buildTournament(1, teams, events, points))
	require.NoError(t, err)
	b, err := Interpret(buildTournament(1, teams, events, points))
	require.NoError(t, err)

	require.Equal(t, len(a.Standings), len(b.Standings))
	for i := range a.Standings {
		assert.Equal(t, a.Standings[i].Team.Number, b.Standings[i].Team.Number)
		assert.Equal(t, a.Standings[i].Rank, b.Standings[i].Rank)
		assert.Equal(t, a.Standings[i].TotalPoints, b.Standings[i].TotalPoints)
	}
}
