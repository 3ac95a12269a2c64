package bracket

// SideRound holds the matches of one round drawn on each half of the bracket.
// The final is never split and is drawn in the center.
type SideRound struct {
	Round int     `json:"round"`
	Left  []Match `json:"left"`
	Right []Match `json:"right"`
}

func Split(matches []Match, totalRounds, participantCount int) []SideRound {
	rounds, _ := ByRound(matches)
	split := make([]SideRound, 0, totalRounds)

	for r := 1; r <= totalRounds; r++ {
		sr := SideRound{Round: r, Left: []Match{}, Right: []Match{}}

		switch {
		case totalRounds == 1, r == totalRounds:
		case participantCount == 3 && r == 1:
			sr.Left = append(sr.Left, rounds[r]...)
		default:
			roundMatches := rounds[r]
			half := (len(roundMatches) + 1) / 2
			sr.Left = append(sr.Left, roundMatches[:half]...)
			sr.Right = append(sr.Right, roundMatches[half:]...)
		}

		split = append(split, sr)
	}

	return split
}
