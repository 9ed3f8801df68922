package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	rerrors "github.com/scio-ly/resultsmcp/internal/errors"
	"github.com/scio-ly/resultsmcp/internal/interp"
	"github.com/scio-ly/resultsmcp/internal/search"
)

// Tool inputs. Field docs become the JSON schema shown to clients.

// ListTournamentsInput is empty; the tool takes no arguments.
type ListTournamentsInput struct{}

// TournamentInput identifies one tournament.
type TournamentInput struct {
	ID string `json:"id" jsonschema:"tournament id as returned by list_tournaments"`
}

// PlacementInput identifies a team and optionally one event.
type PlacementInput struct {
	ID    string `json:"id" jsonschema:"tournament id"`
	Team  string `json:"team" jsonschema:"team number, or a substring of the school name"`
	Event string `json:"event,omitempty" jsonschema:"event name; omit for the team's overall rank and points"`
}

// RankingsInput identifies a tournament with an optional result cap.
type RankingsInput struct {
	ID    string `json:"id" jsonschema:"tournament id"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of teams to return; ranks are never renumbered"`
}

// AllPlacementsInput identifies one team.
type AllPlacementsInput struct {
	ID   string `json:"id" jsonschema:"tournament id"`
	Team string `json:"team" jsonschema:"team number, or a substring of the school name"`
}

// SearchInput is a free-text query over the search corpus.
type SearchInput struct {
	Query string `json:"query" jsonschema:"free-text query, e.g. a school, city, or tournament name"`
	Type  string `json:"type,omitempty" jsonschema:"restrict results: tournament, team, or school"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10"`
}

// FetchInput identifies the tournament to fetch in full.
type FetchInput struct {
	ID string `json:"id" jsonschema:"tournament id"`
}

// Tool outputs. A non-empty Message means the question had no answer
// (missing tournament, team, or placement); that is a normal result,
// not a protocol error.

// TeamOutput is one team with identity, status, and derived standing.
type TeamOutput struct {
	Number       int    `json:"number"`
	School       string `json:"school"`
	Suffix       string `json:"suffix,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Disqualified bool   `json:"disqualified,omitempty"`
	Exhibition   bool   `json:"exhibition,omitempty"`
	Rank         int    `json:"rank,omitempty"`
	Tie          bool   `json:"tie,omitempty"`
	TotalPoints  int    `json:"total_points"`
}

// PlacingOutput is one derived placement.
type PlacingOutput struct {
	Event        string `json:"event"`
	Place        int    `json:"place"`
	Points       int    `json:"points"`
	Tie          bool   `json:"tie,omitempty"`
	Dropped      bool   `json:"dropped,omitempty"`
	Disqualified bool   `json:"disqualified,omitempty"`
}

// ListTournamentsOutput lists every stored tournament id.
type ListTournamentsOutput struct {
	Tournaments []string `json:"tournaments"`
	Count       int      `json:"count"`
}

// InfoOutput summarizes one tournament.
type InfoOutput struct {
	Message   string   `json:"message,omitempty"`
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Level     string   `json:"level,omitempty"`
	Location  string   `json:"location,omitempty"`
	State     string   `json:"state,omitempty"`
	Division  string   `json:"division,omitempty"`
	Date      string   `json:"date,omitempty"`
	DropCount int      `json:"worst_placings_dropped,omitempty"`
	TeamCount int      `json:"team_count,omitempty"`
	Events    []string `json:"events,omitempty"`
}

// TeamsOutput is the full roster of one tournament.
type TeamsOutput struct {
	Message    string       `json:"message,omitempty"`
	Tournament string       `json:"tournament,omitempty"`
	Teams      []TeamOutput `json:"teams,omitempty"`
}

// PlacementOutput answers a single placement question.
type PlacementOutput struct {
	Message    string         `json:"message,omitempty"`
	Tournament string         `json:"tournament,omitempty"`
	Team       *TeamOutput    `json:"team,omitempty"`
	Placing    *PlacingOutput `json:"placing,omitempty"`
}

// RankingsOutput is the overall ranking of one tournament.
type RankingsOutput struct {
	Message    string       `json:"message,omitempty"`
	Tournament string       `json:"tournament,omitempty"`
	Title      string       `json:"title,omitempty"`
	Rankings   []TeamOutput `json:"rankings,omitempty"`
}

// AllPlacementsOutput is every placement of one team.
type AllPlacementsOutput struct {
	Message    string          `json:"message,omitempty"`
	Tournament string          `json:"tournament,omitempty"`
	Team       *TeamOutput     `json:"team,omitempty"`
	Placements []PlacingOutput `json:"placements,omitempty"`
}

// SearchResultOutput is one ranked search hit.
type SearchResultOutput struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Score    int    `json:"score"`
}

// SearchOutput is the ranked result list for a query.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// TeamPlacementsOutput pairs a team with its placements for fetch.
type TeamPlacementsOutput struct {
	Team     TeamOutput      `json:"team"`
	Placings []PlacingOutput `json:"placings"`
}

// FetchOutput is the full derived record for one tournament.
type FetchOutput struct {
	Message  string                 `json:"message,omitempty"`
	ID       string                 `json:"id,omitempty"`
	Title    string                 `json:"title,omitempty"`
	URL      string                 `json:"url,omitempty"`
	Info     *InfoOutput            `json:"info,omitempty"`
	Rankings []TeamOutput           `json:"rankings,omitempty"`
	Teams    []TeamPlacementsOutput `json:"teams,omitempty"`
}

// registerTools registers every tool with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_tournaments",
		Description: "List the id of every tournament in the result store. Ids are sorted lexicographically and are the keys every other tool takes.",
	}, s.handleListTournaments)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_tournament_info",
		Description: "Summarize one tournament: title, level, location, date, team count, and the events held.",
	}, s.handleTournamentInfo)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_tournament_teams",
		Description: "Full team roster of one tournament with school, status flags, and derived rank and points.",
	}, s.handleTournamentTeams)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_team_placement",
		Description: "How a team placed: overall rank and points when no event is given, or the single placement in one event. Teams resolve by number or school-name substring.",
	}, s.handleTeamPlacement)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_tournament_rankings",
		Description: "Official overall rankings under the scoring rules: ties share a place, exhibition teams hold no rank, drops are applied.",
	}, s.handleTournamentRankings)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_team_all_placements",
		Description: "Every placement of one team across all events, including dropped results (flagged), ordered by event name.",
	}, s.handleTeamAllPlacements)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy search across tournaments, teams, and schools. Tolerates misspellings; results are ranked best match first.",
	}, s.handleSearch)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "fetch",
		Description: "Fetch one tournament's full derived record: info, rankings, and every team's placements, plus the canonical results URL.",
	}, s.handleFetch)

	s.logger.Info("MCP tools registered", "count", 8)
}

func (s *Server) handleListTournaments(ctx context.Context, _ *mcp.CallToolRequest, _ ListTournamentsInput) (
	*mcp.CallToolResult,
	ListTournamentsOutput,
	error,
) {
	ids, err := s.store.List()
	if err != nil {
		return nil, ListTournamentsOutput{}, MapError(err)
	}
	return nil, ListTournamentsOutput{Tournaments: ids, Count: len(ids)}, nil
}

func (s *Server) handleTournamentInfo(ctx context.Context, _ *mcp.CallToolRequest, input TournamentInput) (
	*mcp.CallToolResult,
	InfoOutput,
	error,
) {
	if input.ID == "" {
		return nil, InfoOutput{}, NewInvalidParamsError("id parameter is required")
	}
	eng, err := s.engine(input.ID)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, InfoOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, InfoOutput{}, MapError(err)
	}
	info := eng.Info()
	return nil, InfoOutput{
		ID:        info.ID,
		Title:     info.Title,
		Level:     string(info.Level),
		Location:  info.Location,
		State:     info.State,
		Division:  info.Division,
		Date:      info.Date,
		DropCount: info.DropCount,
		TeamCount: info.TeamCount,
		Events:    info.Events,
	}, nil
}

func (s *Server) handleTournamentTeams(ctx context.Context, _ *mcp.CallToolRequest, input TournamentInput) (
	*mcp.CallToolResult,
	TeamsOutput,
	error,
) {
	if input.ID == "" {
		return nil, TeamsOutput{}, NewInvalidParamsError("id parameter is required")
	}
	eng, err := s.engine(input.ID)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, TeamsOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, TeamsOutput{}, MapError(err)
	}

	roster := eng.Roster()
	teams := make([]TeamOutput, 0, len(roster))
	for _, st := range roster {
		teams = append(teams, teamOutput(st))
	}
	return nil, TeamsOutput{Tournament: input.ID, Teams: teams}, nil
}

func (s *Server) handleTeamPlacement(ctx context.Context, _ *mcp.CallToolRequest, input PlacementInput) (
	*mcp.CallToolResult,
	PlacementOutput,
	error,
) {
	if input.ID == "" || input.Team == "" {
		return nil, PlacementOutput{}, NewInvalidParamsError("id and team parameters are required")
	}
	eng, err := s.engine(input.ID)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, PlacementOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, PlacementOutput{}, MapError(err)
	}

	standing, placing, err := eng.Placement(input.Team, input.Event)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, PlacementOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, PlacementOutput{}, MapError(err)
	}

	out := PlacementOutput{Tournament: input.ID}
	team := teamOutput(standing)
	out.Team = &team
	if placing != nil {
		p := placingOutput(placing)
		out.Placing = &p
	}
	return nil, out, nil
}

func (s *Server) handleTournamentRankings(ctx context.Context, _ *mcp.CallToolRequest, input RankingsInput) (
	*mcp.CallToolResult,
	RankingsOutput,
	error,
) {
	if input.ID == "" {
		return nil, RankingsOutput{}, NewInvalidParamsError("id parameter is required")
	}
	if input.Limit < 0 {
		return nil, RankingsOutput{}, NewInvalidParamsError("limit must not be negative")
	}
	eng, err := s.engine(input.ID)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, RankingsOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, RankingsOutput{}, MapError(err)
	}

	standings := eng.Rankings(input.Limit)
	rankings := make([]TeamOutput, 0, len(standings))
	for _, st := range standings {
		rankings = append(rankings, teamOutput(st))
	}
	return nil, RankingsOutput{
		Tournament: input.ID,
		Title:      eng.Info().Title,
		Rankings:   rankings,
	}, nil
}

func (s *Server) handleTeamAllPlacements(ctx context.Context, _ *mcp.CallToolRequest, input AllPlacementsInput) (
	*mcp.CallToolResult,
	AllPlacementsOutput,
	error,
) {
	if input.ID == "" || input.Team == "" {
		return nil, AllPlacementsOutput{}, NewInvalidParamsError("id and team parameters are required")
	}
	eng, err := s.engine(input.ID)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, AllPlacementsOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, AllPlacementsOutput{}, MapError(err)
	}

	standing, placings, err := eng.AllPlacements(input.Team)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, AllPlacementsOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, AllPlacementsOutput{}, MapError(err)
	}

	out := AllPlacementsOutput{Tournament: input.ID}
	team := teamOutput(standing)
	out.Team = &team
	out.Placements = make([]PlacingOutput, 0, len(placings))
	for _, pl := range placings {
		out.Placements = append(out.Placements, placingOutput(pl))
	}
	return nil, out, nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}
	var kind search.Kind
	switch input.Type {
	case "", "all":
	case string(search.KindTournament), string(search.KindTeam), string(search.KindSchool):
		kind = search.Kind(input.Type)
	default:
		return nil, SearchOutput{}, NewInvalidParamsError("type must be tournament, team, or school")
	}

	index, err := s.buildIndex(ctx)
	if err != nil {
		return nil, SearchOutput{}, MapError(err)
	}

	results := index.Search(input.Query, kind, input.Limit)
	out := SearchOutput{Results: make([]SearchResultOutput, 0, len(results)), Count: len(results)}
	for _, r := range results {
		out.Results = append(out.Results, SearchResultOutput{
			ID:       r.Entry.ID,
			Kind:     string(r.Entry.Kind),
			Name:     r.Entry.Name,
			Location: r.Entry.Location,
			Score:    r.Score,
		})
	}
	return nil, out, nil
}

func (s *Server) handleFetch(ctx context.Context, _ *mcp.CallToolRequest, input FetchInput) (
	*mcp.CallToolResult,
	FetchOutput,
	error,
) {
	if input.ID == "" {
		return nil, FetchOutput{}, NewInvalidParamsError("id parameter is required")
	}
	eng, err := s.engine(input.ID)
	if err != nil {
		if rerrors.IsNotFound(err) {
			return nil, FetchOutput{Message: notFoundMessage(err)}, nil
		}
		return nil, FetchOutput{}, MapError(err)
	}

	info := eng.Info()
	infoOut := InfoOutput{
		ID:        info.ID,
		Title:     info.Title,
		Level:     string(info.Level),
		Location:  info.Location,
		State:     info.State,
		Division:  info.Division,
		Date:      info.Date,
		DropCount: info.DropCount,
		TeamCount: info.TeamCount,
		Events:    info.Events,
	}

	ranked := eng.Rankings(0)
	rankings := make([]TeamOutput, 0, len(ranked))
	for _, st := range ranked {
		rankings = append(rankings, teamOutput(st))
	}

	roster := eng.Roster()
	teams := make([]TeamPlacementsOutput, 0, len(roster))
	for _, st := range roster {
		placings := make([]PlacingOutput, 0, len(st.Placings))
		for _, pl := range st.Placings {
			placings = append(placings, placingOutput(pl))
		}
		teams = append(teams, TeamPlacementsOutput{Team: teamOutput(st), Placings: placings})
	}

	return nil, FetchOutput{
		ID:       info.ID,
		Title:    info.Title,
		URL:      fmt.Sprintf(CanonicalURL, info.ID),
		Info:     &infoOut,
		Rankings: rankings,
		Teams:    teams,
	}, nil
}

// teamOutput converts a derived standing to its wire shape.
func teamOutput(st *interp.Standing) TeamOutput {
	return TeamOutput{
		Number:       st.Team.Number,
		School:       st.Team.School,
		Suffix:       st.Team.Suffix,
		City:         st.Team.City,
		State:        st.Team.State,
		Disqualified: st.Team.Disqualified,
		Exhibition:   st.Team.Exhibition,
		Rank:         st.Rank,
		Tie:          st.Tie,
		TotalPoints:  st.TotalPoints,
	}
}

// placingOutput converts a derived placing to its wire shape.
func placingOutput(pl *interp.Placing) PlacingOutput {
	return PlacingOutput{
		Event:        pl.Event,
		Place:        pl.Place,
		Points:       pl.Points,
		Tie:          pl.Tie,
		Dropped:      pl.Dropped,
		Disqualified: pl.Disqualified,
	}
}

// notFoundMessage renders a not-found error as a normal user-readable
// answer. A missing tournament or team is an expected, common case and
// must not surface as a protocol failure.
func notFoundMessage(err error) string {
	var re *rerrors.ResultsError
	if errors.As(err, &re) {
		if re.Suggestion != "" {
			return fmt.Sprintf("%s %s", re.Message, re.Suggestion)
		}
		return re.Message
	}
	return "Not found."
}
