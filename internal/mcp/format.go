package mcp

import (
	"fmt"
	"strings"

	"github.com/scio-ly/resultsmcp/internal/interp"
	"github.com/scio-ly/resultsmcp/internal/query"
	"github.com/scio-ly/resultsmcp/internal/search"
)

// FormatSearchResults formats ranked search results as markdown.
func FormatSearchResults(q string, results []search.Result) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q", q)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Search Results for %q\n\n", q))
	sb.WriteString(fmt.Sprintf("Found %d result", len(results)))
	if len(results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, r.Entry.Name))
		sb.WriteString(fmt.Sprintf("- **Kind:** %s\n", r.Entry.Kind))
		if r.Entry.Location != "" {
			sb.WriteString(fmt.Sprintf("- **Location:** %s\n", r.Entry.Location))
		}
		sb.WriteString(fmt.Sprintf("- **Id:** `%s`\n\n", r.Entry.ID))
	}
	return sb.String()
}

// FormatInfo formats a tournament summary as markdown.
func FormatInfo(info query.Info) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", info.Title))
	sb.WriteString(fmt.Sprintf("- **Id:** `%s`\n", info.ID))
	if info.Level != "" {
		sb.WriteString(fmt.Sprintf("- **Level:** %s\n", info.Level))
	}
	if info.Location != "" {
		sb.WriteString(fmt.Sprintf("- **Location:** %s, %s\n", info.Location, info.State))
	}
	if info.Date != "" {
		sb.WriteString(fmt.Sprintf("- **Date:** %s\n", info.Date))
	}
	sb.WriteString(fmt.Sprintf("- **Teams:** %d\n", info.TeamCount))
	if info.DropCount > 0 {
		sb.WriteString(fmt.Sprintf("- **Worst placings dropped:** %d\n", info.DropCount))
	}
	if len(info.Events) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Events (%d):** %s\n", len(info.Events), strings.Join(info.Events, ", ")))
	}
	return sb.String()
}

// FormatRankings formats overall standings as a markdown table.
// Exhibition teams carry no rank and render as "EX"; disqualified
// teams render their rank with a "DQ" marker.
func FormatRankings(title string, standings []*interp.Standing) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Rankings: %s\n\n", title))
	sb.WriteString("| Rank | Team | School | Points |\n")
	sb.WriteString("|-----:|-----:|--------|-------:|\n")
	for _, st := range standings {
		rank := fmt.Sprint(st.Rank)
		switch {
		case st.Team.Exhibition:
			rank = "EX"
		case st.Team.Disqualified:
			rank += " DQ"
		case st.Tie:
			rank += "T"
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %d |\n",
			rank, st.Team.Number, st.Team.DisplayName(), st.TotalPoints))
	}
	return sb.String()
}
