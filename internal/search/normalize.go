package search

import "strings"

// querySynonyms collapses casual user vocabulary onto the canonical
// field names used in entry text, so semantically equivalent queries
// produce the same ranked set. Users say "team" when they mean the
// school fielding it, and "tourney" for tournament.
var querySynonyms = map[string]string{
	"team":    "school",
	"teams":   "school",
	"tourney": "tournament",
	"comp":    "tournament",
	"invite":  "invitational",
	"regs":    "regionals",
	"state":   "states",
	"natty":   "nationals",
	"nats":    "nationals",
}

// Normalize case-folds a query and rewrites casual synonyms to their
// canonical terms. Applied to every query before matching.
func Normalize(query string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	for i, f := range fields {
		if canonical, ok := querySynonyms[f]; ok {
			fields[i] = canonical
		}
	}
	return strings.Join(fields, " ")
}
