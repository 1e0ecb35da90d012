package domain

// CategoryForRound returns the category contested in the given 1-indexed
// qualification round. Categories rotate round-robin:
// categories[(round-1) mod len(categories)]. The caller guarantees that
// categories is not empty.
func CategoryForRound(round int, categories []string) string {
	n := len(categories)
	idx := (round - 1) % n
	if idx < 0 {
		idx += n
	}
	return categories[idx]
}

// FinaleCategory returns the category of the given 1-indexed finale round.
// Finale categories are explicitly sequenced, not rotated; the caller
// guarantees 1 <= round <= len(sequence).
func FinaleCategory(round int, sequence []string) string {
	return sequence[round-1]
}
