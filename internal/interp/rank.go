package interp

// rankable is anything that can enter a standard-competition-ranking
// pool: a per-event placing or a team's overall standing.
type rankable interface {
	score() int
	setRank(place int, tie bool)
}

// assignRanks applies standard competition ranking to entries already
// sorted by ascending score (points are penalties, lower is better).
// Entries with equal score share a place and are flagged as tied; the
// next distinct score's place is the previous place plus the size of
// the tie group, so ties consume place numbers.
func assignRanks(entries []rankable) {
	i := 0
	for i < len(entries) {
		j := i + 1
		for j < len(entries) && entries[j].score() == entries[i].score() {
			j++
		}
		tie := j-i > 1
		for k := i; k < j; k++ {
			entries[k].setRank(i+1, tie)
		}
		i = j
	}
}
