package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
)

const validRecord = `
Tournament:
  name: Golden Gate Invitational
  level: Invitational
  location: Golden Gate University
  state: CA
  division: C
  date: 2024-02-10
  worst placings dropped: 1
Events:
  - name: Anatomy and Physiology
  - name: Codebusters
  - name: Ping Pong Parachute
    trial: true
Teams:
  - number: 1
    school: Redwood High School
    suffix: A
    city: Oakland
    state: CA
  - number: 2
    school: Sequoia High School
    exhibition: true
Placings:
  - team: 1
    event: Anatomy and Physiology
    place: 3
  - team: 1
    event: Codebusters
    place: 0
  - team: 2
    event: Anatomy and Physiology
    place: 1
    points: 5
`

func TestLoad_ValidRecord(t *testing.T) {
	tournament, err := Load([]byte(validRecord), "2024-02-10_golden_gate_invitational_c")
	require.NoError(t, err)

	assert.Equal(t, "2024-02-10_golden_gate_invitational_c", tournament.ID)
	assert.Equal(t, "Golden Gate Invitational", tournament.Name)
	assert.Equal(t, LevelInvitational, tournament.Level)
	assert.Equal(t, "C", tournament.Division)
	assert.Equal(t, 1, tournament.DropCount)

	require.Len(t, tournament.Events, 3)
	assert.True(t, tournament.EventByName("Ping Pong Parachute").Trial)

	require.Len(t, tournament.Teams, 2)
	redwood := tournament.TeamByNumber(1)
	require.NotNil(t, redwood)
	assert.Equal(t, "Redwood High School A", redwood.DisplayName())
	assert.True(t, tournament.TeamByNumber(2).Exhibition)

	require.Len(t, tournament.Placements, 3)
}

func TestLoad_PointsDefaultToPlace(t *testing.T) {
	tournament, err := Load([]byte(validRecord), "t")
	require.NoError(t, err)

	// No explicit points: place doubles as the score.
	assert.Equal(t, 3, tournament.Placements[0].Points)
	// Explicit points override the place.
	assert.Equal(t, 5, tournament.Placements[2].Points)
	assert.Equal(t, 1, tournament.Placements[2].Place)
}

func TestLoad_PlaceZeroMeansDisqualified(t *testing.T) {
	tournament, err := Load([]byte(validRecord), "t")
	require.NoError(t, err)

	assert.True(t, tournament.Placements[1].Disqualified)
	assert.False(t, tournament.Placements[0].Disqualified)
}

func TestLoad_InvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "Tournament: [unclosed"},
		{"missing level", `
Tournament:
  location: Somewhere
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
`},
		{"negative drops", `
Tournament:
  level: Invitational
  worst placings dropped: -1
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
`},
		{"no events", `
Tournament:
  level: Invitational
Teams:
  - number: 1
    school: X
`},
		{"duplicate event", `
Tournament:
  level: Invitational
Events:
  - name: Anatomy
  - name: Anatomy
Teams:
  - number: 1
    school: X
`},
		{"no teams", `
Tournament:
  level: Invitational
Events:
  - name: Anatomy
`},
		{"non-positive team number", `
Tournament:
  level: Invitational
Events:
  - name: Anatomy
Teams:
  - number: 0
    school: X
`},
		{"duplicate team number", `
Tournament:
  level: Invitational
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
  - number: 1
    school: Y
`},
		{"negative place", `
Tournament:
  level: Invitational
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
Placings:
  - team: 1
    event: Anatomy
    place: -2
`},
		{"duplicate placement", `
Tournament:
  level: Invitational
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
Placings:
  - team: 1
    event: Anatomy
    place: 1
  - team: 1
    event: Anatomy
    place: 2
`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tournament, err := Load([]byte(tc.yaml), "bad")
			assert.Nil(t, tournament)
			require.Error(t, err)
			assert.Equal(t, rerrors.CategoryParse, rerrors.CategoryOf(err))
		})
	}
}

func TestLoad_DerivedTitles(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		location string
		state    string
		want     string
	}{
		{"nationals", "Nationals", "Caltech", "CA",
			"Science Olympiad National Tournament"},
		{"states", "States", "", "OH",
			"OH Science Olympiad State Tournament"},
		{"states northern california", "States", "", "nCA",
			"Northern California Science Olympiad State Tournament"},
		{"states southern california", "States", "", "sCA",
			"Southern California Science Olympiad State Tournament"},
		{"regionals", "Regionals", "Orange County", "CA",
			"Orange County Regional Tournament"},
		{"invitational", "Invitational", "MIT", "MA",
			"MIT Invitational"},
		{"unknown level", "Scrimmage", "Somewhere", "CA", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			yamlDoc := `
Tournament:
  level: ` + tc.level + `
  location: "` + tc.location + `"
  state: ` + tc.state + `
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
`
			tournament, err := Load([]byte(yamlDoc), "t")
			require.NoError(t, err)
			assert.Equal(t, tc.want, tournament.Name)
		})
	}
}

func TestLoad_ExplicitNameWins(t *testing.T) {
	yamlDoc := `
Tournament:
  name: The Big One
  level: Nationals
Events:
  - name: Anatomy
Teams:
  - number: 1
    school: X
`
	tournament, err := Load([]byte(yamlDoc), "t")
	require.NoError(t, err)
	assert.Equal(t, "The Big One", tournament.Name)
}
