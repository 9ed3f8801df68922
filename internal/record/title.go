package record

import "fmt"

// regionNames expands the state abbreviations that are regions rather
// than states before they are substituted into a derived title.
var regionNames = map[string]string{
	"nCA": "Northern California",
	"sCA": "Southern California",
}

// deriveTitle builds a display title for records without an explicit
// name. Levels outside the known four yield an empty title; callers
// fall back to the tournament id.
func deriveTitle(level Level, location, state string) string {
	switch level {
	case LevelNationals:
		return "Science Olympiad National Tournament"
	case LevelStates:
		region := state
		if full, ok := regionNames[state]; ok {
			region = full
		}
		return fmt.Sprintf("%s Science Olympiad State Tournament", region)
	case LevelRegionals:
		return fmt.Sprintf("%s Regional Tournament", location)
	case LevelInvitational:
		return fmt.Sprintf("%s Invitational", location)
	default:
		return ""
	}
}
